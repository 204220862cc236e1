package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/tuanvumaihuynh/catalog-search/internal/catalogio"
	"github.com/tuanvumaihuynh/catalog-search/internal/config"
	"github.com/tuanvumaihuynh/catalog-search/internal/log"
	"github.com/tuanvumaihuynh/catalog-search/internal/repository"
	"github.com/tuanvumaihuynh/catalog-search/internal/service"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/db"
)

const (
	fileFlag         = "file"
	keepExistingFlag = "keep-existing"
	dryRunFlag       = "dry-run"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running import application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	file := flags.StringP(fileFlag, "f", "", "product export to load (JSON array)")
	keepExisting := flags.Bool(keepExistingFlag, false, "append to the collection instead of replacing it")
	dryRun := flags.Bool(dryRunFlag, false, "decode the file and report without writing")
	_ = flags.Parse(os.Args[1:])

	if *file == "" {
		return errors.New("--" + fileFlag + " flag: required")
	}

	ctx, cancel := context.WithCancel(context.Background())
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

	products, err := catalogio.DecodeFile(*file)
	if err != nil {
		return fmt.Errorf("error reading products: %w", err)
	}
	logger.InfoContext(ctx, "products decoded", slog.String("file", *file), slog.Int("count", len(products)))

	if *dryRun {
		return nil
	}

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)
	importService := service.NewImportService(logger, dbClient, repository.NewProductRepository(dbClient))

	if _, err := importService.ImportProducts(ctx, service.ImportProductsParams{
		Products:     products,
		KeepExisting: *keepExisting,
	}); err != nil {
		return fmt.Errorf("error importing products: %w", err)
	}

	return nil
}
