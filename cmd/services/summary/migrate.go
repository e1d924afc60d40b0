package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/services/summary/storage"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			store, err := openStorage(ctx, cfg, log)
			if err != nil {
				log.Error("migration failed", slog.String("error", err.Error()))
				return err
			}
			defer store.Close()
			log.Info("schema is up to date")
			return nil
		},
	}
}

// openStorage connects to the configured database and ensures the schema exists.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	dialect, err := storage.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	log.Debug("opening database", slog.String("dialect", string(dialect)))
	db, err := storage.Open(ctx, dialect, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := storage.New(db, dialect)
	if err := store.InitSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	log.Info("database ready", slog.String("dialect", string(dialect)))
	return store, nil
}
