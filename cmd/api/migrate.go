package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"newsroom/internal/config"
	"newsroom/internal/infra/adapter/persistence/mongodb"
	"newsroom/internal/infra/db"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the article store schema",
		Long: `Creates the Postgres articles table and indexes, or for MongoDB the listing
indexes, and rewrites legacy documents that still carry a top-level sourceName
into the nested source shape. Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cfg.Store, logger)
		},
	}
}

func runMigrate(ctx context.Context, sc config.StoreConfig, logger *slog.Logger) error {
	switch sc.Driver {
	case config.DriverPostgres:
		database, err := db.OpenPostgres(ctx, sc)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()
		if err := db.MigrateUp(database); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("postgres schema is up to date")
		return nil

	case config.DriverMongo:
		client, coll, err := db.OpenMongo(ctx, sc)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongodb.EnsureIndexes(ctx, coll); err != nil {
			return err
		}
		migrated, err := mongodb.MigrateLegacySource(ctx, coll)
		if err != nil {
			return err
		}
		logger.Info("mongo collection is up to date",
			slog.String("collection", sc.MongoCollection),
			slog.Int64("legacy_source_migrated", migrated))
		return nil
	}
	return fmt.Errorf("unknown store driver %q", sc.Driver)
}
