package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/services/summary/clients/completion"
	"github.com/xilidan/meeting-summary/services/summary/clients/mailer"
	"github.com/xilidan/meeting-summary/services/summary/handler"
	"github.com/xilidan/meeting-summary/services/summary/server"
	"github.com/xilidan/meeting-summary/services/summary/usecase"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := run(ctx, cfg, log); err != nil {
				log.Error("application terminated with error", slog.String("error", err.Error()))
				return err
			}
			log.Info("application terminated successfully")
			return nil
		},
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	completer := completion.New(&cfg.Completion, log).
		WithHTTPClient(&http.Client{Timeout: cfg.Completion.Timeout})
	sender := mailer.New(&cfg.SMTP, log)
	uc := usecase.New(cfg, store, completer, sender, log)

	srv := server.New(cfg, handler.New(uc, log), log)
	return srv.Start(ctx)
}
