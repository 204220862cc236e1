package db

import (
	"context"
	"embed"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateCommands lists the goose commands Migrate accepts.
var MigrateCommands = []string{"up", "up-by-one", "down", "redo", "status", "version"}

// Migrate runs a goose command against the embedded migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string) error {
	if !slices.Contains(MigrateCommands, command) {
		return fmt.Errorf("unsupported migrate command %q", command)
	}

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := goose.RunContext(ctx, command, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
