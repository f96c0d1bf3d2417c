package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shaiso/Kannon/internal/config"
	"github.com/shaiso/Kannon/internal/lock"
	"github.com/shaiso/Kannon/internal/telemetry"
)

// addBatchFlags регистрирует флаги пакета задач (run, schedule).
func addBatchFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyDataset, "", "Path to input dataset (required)")
	fs.Int(config.KeyIterations, 3, "Number of tasks in the batch")
	fs.Int(config.KeyParallel, 0, "Number of parallel workers (0 for sequential)")
	fs.String(config.KeyRuntime, config.RuntimeInProc, "Worker runtime: inproc (goroutines) or process (RabbitMQ + Redis)")
	fs.String(config.KeyBrokerURL, "", "RabbitMQ URL for --runtime process")
	fs.String(config.KeyMetricsAddr, "", "Serve /healthz, /metrics and /status on this address")
	addPipelineFlags(fs)
}

// addPipelineFlags регистрирует флаги тела задачи (run, schedule, worker).
func addPipelineFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyStyle, "ukiyo-e", "Artistic style: ukiyo-e, sumi-e or minimalist")
	fs.String(config.KeyOutput, "output", "Directory for visual outputs")
	fs.String(config.KeyExclusive, "pipeline", "Exclusive region scope: pipeline or persist")
	fs.String(config.KeyRedisAddr, "", "Redis address for the cross-process exclusive region")
	fs.Duration(config.KeyLockTTL, lock.DefaultTTL, "TTL of the cross-process exclusive region")
	fs.String(config.KeyDBURL, "", "PostgreSQL URL of the run journal (optional)")
}

// loadConfig привязывает флаги команды к v и загружает конфигурацию.
func loadConfig(cmd *cobra.Command, v *viper.Viper, required ...string) (*config.Config, error) {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.Load(v, required...)
}

// setupLogger настраивает глобальный логгер. Логи всегда идут в stderr.
func setupLogger(cfg *config.Config) *slog.Logger {
	return telemetry.SetupLogger(telemetry.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: os.Stderr,
	})
}
