package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
	"github.com/tuanvumaihuynh/catalog-search/internal/log"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	timeout := flags.Duration("timeout", 5*time.Minute, "abort the migration after this long")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [%s]\n", os.Args[0], strings.Join(db.MigrateCommands, "|"))
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	command := "up"
	if flags.NArg() > 0 {
		command = flags.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	logger.InfoContext(ctx, "running database migration", slog.String("command", command))

	if err := db.Migrate(ctx, pgxPool, command); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	logger.InfoContext(ctx, "database migration completed successfully", slog.String("command", command))

	return nil
}
