package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewStatusCmd создаёт команду просмотра текущего run'а.
func NewStatusCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the run tracked by a status server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			status, err := client.Status()
			if err != nil {
				return err
			}

			if out.JSONMode() {
				out.JSON(status)
				return nil
			}

			out.Table(
				[]string{"RUN_ID", "STATUS", "STYLE", "WORKERS", "TOTAL", "SUCCEEDED", "FAILED", "STARTED"},
				[][]string{{
					status.RunID, status.Status, status.Style,
					strconv.Itoa(status.Workers), strconv.Itoa(status.Total),
					strconv.Itoa(status.Succeeded), strconv.Itoa(status.Failed),
					status.StartedAt,
				}},
			)

			if len(status.InFlight) > 0 {
				rows := make([][]string, len(status.InFlight))
				for i, f := range status.InFlight {
					rows[i] = []string{f.Task, strconv.Itoa(f.WorkerID), f.StartedAt}
				}
				out.Success("")
				out.Table([]string{"TASK", "WORKER", "STARTED"}, rows)
			}

			if status.Error != "" {
				out.Error(status.Error)
			}
			return nil
		},
	}
}
