// Kannon: пакетная генерация visual stories в японской эстетике.
//
// Использование:
//
//	kannon [--config FILE] [--log-level LEVEL] [--log-format FORMAT] [--json] <command> [flags]
//
// Команды:
//
//	run       Сгенерировать пакет visual stories
//	schedule  Генерировать пакеты по cron-расписанию
//	status    Показать текущий run с сервера состояния
//	history   Журнал run'ов (PostgreSQL)
//	worker    Воркер-процесс (запускается из run --runtime process)
//	version   Версия
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/Kannon/internal/cli"
	"github.com/shaiso/Kannon/internal/config"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var statusAddr string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "kannon",
		Short:         "Kannon: visual storytelling in Japanese aesthetics",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(config.KeyConfig, "", "Config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "INFO", "Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().String(config.KeyLogFormat, "text", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(statusAddr) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	statusCmd := cli.NewStatusCmd(clientFn, outputFn)
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:9090", "Status server address")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "kannon", version)
		},
	}

	rootCmd.AddCommand(
		cli.NewRunCmd(outputFn),
		cli.NewScheduleCmd(outputFn),
		cli.NewWorkerCmd(),
		cli.NewHistoryCmd(outputFn),
		statusCmd,
		versionCmd,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
