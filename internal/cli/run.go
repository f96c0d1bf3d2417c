package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/Kannon/internal/config"
	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/strategy"
	"github.com/shaiso/Kannon/internal/worker"
)

// RunReport: итог run'а для --json.
type RunReport struct {
	Run      *domain.Run     `json:"run"`
	Mode     string          `json:"mode"`
	Duration string          `json:"duration"`
	Results  []worker.Result `json:"results"`
}

// NewRunCmd создаёт команду запуска одного пакета задач.
func NewRunCmd(outputFn func() *Output) *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a batch of visual stories",
		Long: `Generate --iterations visual stories from one dataset.

With --parallel 0 tasks run one after another and the first failure aborts
the run. With --parallel N tasks are distributed over N workers through a
shared queue; a failed task does not stop the other workers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, config.KeyDataset)
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)
			out := outputFn()

			rt, err := Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.StartServer(); err != nil {
				return err
			}

			out.Timestamp(time.Now())
			run, summary, err := rt.RunBatch(cmd.Context())
			printSummary(out, run, summary)
			out.Timestamp(time.Now())

			return err
		},
	}

	addBatchFlags(cmd.Flags())

	return cmd
}

// printSummary выводит результаты задач run'а.
func printSummary(out *Output, run *domain.Run, summary *strategy.Summary) {
	if summary == nil {
		return
	}

	if out.JSONMode() {
		out.JSON(RunReport{
			Run:      run,
			Mode:     summary.Mode,
			Duration: formatDuration(summary.Duration()),
			Results:  summary.Results,
		})
		return
	}

	headers := []string{"TASK", "WORKER", "STATUS", "DURATION", "PATH / ERROR"}
	rows := make([][]string, len(summary.Results))
	for i, r := range summary.Results {
		status, detail := string(domain.TaskStatusSucceeded), r.Path
		if r.Failed() {
			status, detail = string(domain.TaskStatusFailed), r.Error
		}
		rows[i] = []string{r.Task, strconv.Itoa(r.WorkerID), status, formatDuration(r.Duration), detail}
	}
	out.Table(headers, rows)
}
