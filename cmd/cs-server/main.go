package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/catalog-search/internal/catalogio"
	"github.com/tuanvumaihuynh/catalog-search/internal/config"
	"github.com/tuanvumaihuynh/catalog-search/internal/event"
	"github.com/tuanvumaihuynh/catalog-search/internal/http"
	"github.com/tuanvumaihuynh/catalog-search/internal/llm"
	"github.com/tuanvumaihuynh/catalog-search/internal/log"
	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/repository"
	"github.com/tuanvumaihuynh/catalog-search/internal/service"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/db"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/mq"
	"github.com/tuanvumaihuynh/catalog-search/internal/telemetry"
	"github.com/tuanvumaihuynh/catalog-search/pkg/cmdutil"
	"github.com/tuanvumaihuynh/catalog-search/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running server application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Store    config.Store
		HTTP     config.HTTP
		Search   config.Search
		LLM      config.LLM
		Relay    config.Relay
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	var (
		productRepository repository.ProductRepository
		health            db.HealthChecker
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		var products []model.Product
		if cfg.Store.SeedFile != "" {
			products, err = catalogio.DecodeFile(cfg.Store.SeedFile)
			if err != nil {
				return fmt.Errorf("error loading seed file: %w", err)
			}
		}
		logger.InfoContext(ctx, "serving products from memory", slog.Int("count", len(products)))

		productRepository = repository.NewMemoryProductRepository(products)
		health = db.HealthCheckFunc(func(context.Context) (bool, error) { return true, nil })
	default:
		// The pool is created by the first request that needs it.
		dbClient := db.NewLazyClient(cfg.Postgres)
		defer dbClient.Close()

		productRepository = repository.NewProductRepository(dbClient)
		health = dbClient
	}

	completer, err := llm.NewGeminiClient(ctx, cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("error creating gemini client: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	var publisher event.Publisher = event.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()

		kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
		if err != nil {
			return fmt.Errorf("error creating kafka consumer: %w", err)
		}
		defer kafkaConsumer.Close()

		relay := event.NewRelay(cfg.Relay, cfg.Kafka.Topic, logger, kafkaProducer)
		publisher = relay

		wg.Go(func() {
			cleanup := relay.Run(ctx)
			logger.InfoContext(ctx, "relay service started")

			<-interruptChan

			logger.InfoContext(ctx, "relay service is shutting down")
			cleanup()

			logger.InfoContext(ctx, "relay service is stopped")
		})

		wg.Go(func() {
			svc := event.New(logger, cfg.Kafka.Topic, kafkaConsumer)
			cleanup, err := svc.Run(ctx)
			if err != nil {
				panic(fmt.Errorf("error running event service: %w", err))
			}
			logger.InfoContext(ctx, "event service started")

			<-interruptChan

			logger.InfoContext(ctx, "event service is shutting down")
			cleanup()

			logger.InfoContext(ctx, "event service is stopped")
		})
	} else {
		logger.InfoContext(ctx, "kafka is not configured, search events are discarded")
	}

	catalogService := service.NewCatalogService(cfg.Search, logger, v, productRepository, completer, publisher)

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, catalogService, health)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Wait()

	return nil
}
