package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/observability"
	"github.com/spec-kit/blog-service/internal/persistence"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigration(cmd, (*persistence.Migrator).Up)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations (drops every table)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigration(cmd, (*persistence.Migrator).Down)
		},
	})
	return cmd
}

func runMigration(cmd *cobra.Command, step func(*persistence.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Postgres.DSN == "" {
		return oops.Code("CONFIG_INVALID").Errorf("POSTGRES_DSN environment variable is required")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	m, err := persistence.NewMigrator(cfg.Postgres.DSN, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close migrator", zap.Error(err))
		}
	}()

	if err := step(m); err != nil {
		return err
	}
	cmd.Println("migrations completed")
	return nil
}

func migrateUp(dsn string, logger *zap.Logger) error {
	m, err := persistence.NewMigrator(dsn, logger)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck
	return m.Up()
}
