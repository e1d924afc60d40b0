package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "summary",
		Short:         "Meeting transcript summarization service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := newServeCmd()
	// a bare "summary" starts the API
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCmd())
	return root
}

// setup loads configuration and builds the process logger.
func setup(cmd *cobra.Command) (context.Context, *config.Config, *slog.Logger, error) {
	// until the configured logger exists
	bootLog := logger.Default()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error("failed to load configuration", slog.String("error", err.Error()))
		return nil, nil, nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		bootLog.Error("invalid log level", slog.String("error", err.Error()))
		return nil, nil, nil, err
	}
	log := logger.New(logger.Config{
		Level:      level,
		Output:     os.Stderr,
		AddSource:  level == slog.LevelDebug,
		JSONFormat: cfg.Log.JSON,
	})
	logger.SetDefault(log)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Port),
		slog.String("db_driver", cfg.Database.Driver),
		slog.String("model", cfg.Completion.Model),
		slog.Bool("completion_key_set", cfg.Completion.APIKey != ""),
		slog.Bool("smtp_configured", cfg.SMTP.Host != ""))

	return logger.WithContext(cmd.Context(), log), cfg, log, nil
}
