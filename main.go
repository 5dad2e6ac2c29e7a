package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/joho/godotenv"

	"github.com/jobboardhq/job-aggregator-service/common/config"
	"github.com/jobboardhq/job-aggregator-service/common/db"
	"github.com/jobboardhq/job-aggregator-service/common/messaging"
	"github.com/jobboardhq/job-aggregator-service/common/scrape"
	"github.com/jobboardhq/job-aggregator-service/common/storage"
	"github.com/jobboardhq/job-aggregator-service/scheduler"
	"github.com/jobboardhq/job-aggregator-service/scraper"
	"github.com/jobboardhq/job-aggregator-service/search"
	"github.com/jobboardhq/job-aggregator-service/sources/glassdoor"
)

func main() {
	// INITIATE CONFIGURATION
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file, using environment variables")
	}

	cfg := config.DefaultConfig()
	cfg.LoadFromEnv()

	// Create a base context with cancel for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// INITIATE DATABASES
	dbConn, err := db.SetupDatabase(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup database")
	}
	defer dbConn.Close()

	// INITIATE NATS CLIENT
	natsClient, err := messaging.SetupNatsBroker(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup NATS client")
	}
	if natsClient != nil {
		defer natsClient.Close()
	}

	// INITIATE SCRAPE PIPELINE
	fetchClient := scrape.NewClient(cfg.Scraper.RequestTimeout)
	if cfg.GCS.SnapshotBucket != "" {
		gcsStorage, err := storage.NewGCSStorage(ctx, storage.GCSConfig{
			ProjectID:       cfg.GCS.ProjectID,
			CredentialsFile: cfg.GCS.CredentialsFile,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup GCS storage")
		}
		fetchClient = fetchClient.WithSnapshots(gcsStorage, cfg.GCS.SnapshotBucket)
	}

	adapters := scraper.DefaultAdapters(fetchClient)
	aggregator := scraper.NewAggregator(adapters...)
	persister := scraper.NewPersister(dbConn.Queries)
	sweeper := scraper.NewSweeper(dbConn.Queries, cfg.Scraper.RetentionDays)

	defer func() {
		for _, adapter := range adapters {
			if closer, ok := adapter.(*glassdoor.Adapter); ok {
				closer.Close()
			}
		}
	}()

	// INITIATE SCHEDULER
	sched := scheduler.New(aggregator, persister, sweeper, natsClient, cfg.Scraper)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scrape scheduler")
	}
	defer sched.Stop()

	searchSvc := search.NewService(dbConn.Pool, dbConn.Queries)

	// INITIATE SERVER
	server, err := NewAppHttpServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create the server")
	}

	// Inject dependencies
	server.SetDB(dbConn)
	server.SetScheduler(sched)
	server.SetScraping(aggregator, persister)
	server.SetSearchService(searchSvc)

	// Setup routes
	server.setupRoute()

	// Start server in a goroutine
	go func() {
		if err := server.start(); err != nil {
			log.Error().Err(err).Msg("Server error")
			cancel()
		}
	}()

	log.Info().Str("address", cfg.Listen.Addr()).Msg("Server started successfully")

	// Wait for shutdown signal
	<-shutdown
	log.Info().Msg("Shutdown signal received")

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server gracefully stopped")
}
