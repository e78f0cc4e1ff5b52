package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/grantHarris/chatlog-model-tuner/internal/config"
	"github.com/grantHarris/chatlog-model-tuner/internal/logger"
)

var (
	version    = "dev"
	configPath string
)

func main() {
	_ = godotenv.Load() // loads .env

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chatlog",
		Short:         "Turn exported chat transcripts into annotated threads and training pairs",
		Version:       version,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (default $CHATLOG_CONFIG)")

	rootCmd.AddCommand(normalizeCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(formatCmd())
	return rootCmd
}

// setup loads configuration and returns a logger tagged for one stage run.
func setup(cmd *cobra.Command, stage string) (config.Config, *logger.Logger, error) {
	// arguments are valid by now; runtime failures should not print usage
	cmd.SilenceUsage = true

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewWithLevel(cfg.Environment, cfg.LogLevel).WithRun(stage)
	return cfg, log, nil
}
