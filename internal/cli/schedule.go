package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/Kannon/internal/config"
	"github.com/shaiso/Kannon/internal/scheduler"
)

// NewScheduleCmd создаёт команду запуска пакетов по cron-расписанию.
//
// Каждое срабатывание строит новый фиксированный пакет задач. Ошибка
// одного пакета не останавливает расписание.
func NewScheduleCmd(outputFn func() *Output) *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate batches on a cron schedule",
		Example: `  kannon schedule --cron "0 * * * *" --dataset timeline.csv --parallel 4
  kannon schedule --cron @daily --timezone Asia/Tokyo --dataset timeline.csv --max-runs 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, config.KeyDataset, config.KeyCron)
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

			s, err := scheduler.New(scheduler.Config{
				CronExpr: cfg.Cron,
				Timezone: cfg.Timezone,
				MaxRuns:  cfg.MaxRuns,
				Logger:   logger,
				Job: func(ctx context.Context, due time.Time) error {
					out.Timestamp(time.Now())
					run, summary, err := rt.RunBatch(ctx)
					printSummary(out, run, summary)
					out.Timestamp(time.Now())
					return err
				},
			})
			if err != nil {
				return err
			}

			out.Success("Next run at " + s.NextDue().Local().Format(TimeLayout))

			if err := s.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	addBatchFlags(cmd.Flags())
	cmd.Flags().String(config.KeyCron, "", "Cron expression: 5 fields or a descriptor like @hourly (required)")
	cmd.Flags().String(config.KeyTimezone, "", "IANA timezone of the cron expression (default UTC)")
	cmd.Flags().Int(config.KeyMaxRuns, 0, "Stop after this many runs (0 for no limit)")

	return cmd
}
