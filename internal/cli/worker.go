package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shaiso/Kannon/internal/config"
	"github.com/shaiso/Kannon/internal/strategy"
)

// NewWorkerCmd создаёт команду воркера-процесса.
//
// Воркер потребляет очередь run'а из RabbitMQ до sentinel'а и печатает
// в stdout JSON-отчёт. Если часть задач завершилась ошибкой, код выхода
// strategy.ExitCodeTasksFailed.
func NewWorkerCmd() *cobra.Command {
	v := config.New()

	var runID string
	var workerID int

	cmd := &cobra.Command{
		Use:    "worker",
		Short:  "Consume a run queue (started by run --runtime process)",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(runID)
			if err != nil {
				return fmt.Errorf("invalid --run-id %q: %w", runID, err)
			}
			if workerID < 1 {
				return fmt.Errorf("invalid --worker-id %d: must be >= 1", workerID)
			}

			v.Set(config.KeyRuntime, config.RuntimeProcess)
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)

			rt, err := Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			report, runErr := rt.ServeWorker(cmd.Context(), id, workerID)
			if err := strategy.EncodeReport(cmd.OutOrStdout(), report); err != nil {
				return errors.Join(runErr, fmt.Errorf("write report: %w", err))
			}
			if runErr != nil {
				return runErr
			}

			if err := report.Err(); err != nil {
				return &ExitError{Code: strategy.ExitCodeTasksFailed, Err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "Run ID whose queue to consume")
	cmd.Flags().IntVar(&workerID, "worker-id", 0, "Worker number, starting at 1")
	cmd.Flags().String(config.KeyBrokerURL, "", "RabbitMQ URL")
	addPipelineFlags(cmd.Flags())
	cmd.MarkFlagRequired("run-id")
	cmd.MarkFlagRequired("worker-id")

	return cmd
}
