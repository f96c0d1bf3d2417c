package cli

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shaiso/Kannon/internal/config"
	"github.com/shaiso/Kannon/internal/repo"
)

// NewHistoryCmd создаёт группу команд журнала run'ов (нужен --db-url).
func NewHistoryCmd(outputFn func() *Output) *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse the run journal",
	}
	cmd.PersistentFlags().String(config.KeyDBURL, "", "PostgreSQL URL of the run journal (required)")

	cmd.AddCommand(
		newHistoryListCmd(v, outputFn),
		newHistoryTasksCmd(v, outputFn),
	)

	return cmd
}

// openJournal загружает конфигурацию и подключается к БД журнала.
func openJournal(cmd *cobra.Command, v *viper.Viper) (*Runtime, error) {
	cfg, err := loadConfig(cmd, v, config.KeyDBURL)
	if err != nil {
		return nil, err
	}
	return Open(cmd.Context(), cfg, setupLogger(cfg))
}

func newHistoryListCmd(v *viper.Viper, outputFn func() *Output) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openJournal(cmd, v)
			if err != nil {
				return err
			}
			defer rt.Close()

			runs, err := repo.NewRunRepo(rt.Pool()).ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			headers := []string{"ID", "STATUS", "STYLE", "TASKS", "WORKERS", "STARTED", "FINISHED"}
			rows := make([][]string, len(runs))
			for i, r := range runs {
				rows[i] = []string{
					r.ID.String(), string(r.Status), string(r.Style),
					strconv.Itoa(r.Iterations), strconv.Itoa(r.Workers),
					formatTime(r.StartedAt), formatTime(r.FinishedAt),
				}
			}

			outputFn().Print(headers, rows, runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")

	return cmd
}

func newHistoryTasksCmd(v *viper.Viper, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks RUN_ID",
		Short: "List task attempts of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run ID %q: %w", args[0], err)
			}

			rt, err := openJournal(cmd, v)
			if err != nil {
				return err
			}
			defer rt.Close()

			if _, err := repo.NewRunRepo(rt.Pool()).GetByID(cmd.Context(), runID); err != nil {
				return err
			}

			attempts, err := repo.NewTaskRepo(rt.Pool()).ListByRunID(cmd.Context(), runID)
			if err != nil {
				return err
			}

			headers := []string{"TASK", "WORKER", "STATUS", "STARTED", "FINISHED", "PATH / ERROR"}
			rows := make([][]string, len(attempts))
			for i, a := range attempts {
				detail := a.Path
				if a.Error != "" {
					detail = a.Error
				}
				rows[i] = []string{
					a.Name, strconv.Itoa(a.WorkerID), string(a.Status),
					formatTime(&a.StartedAt), formatTime(a.FinishedAt), detail,
				}
			}

			outputFn().Print(headers, rows, attempts)
			return nil
		},
	}
}
