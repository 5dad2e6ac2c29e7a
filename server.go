package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common"
	"github.com/jobboardhq/job-aggregator-service/common/config"
	"github.com/jobboardhq/job-aggregator-service/common/db"
	"github.com/jobboardhq/job-aggregator-service/handler"
	"github.com/jobboardhq/job-aggregator-service/middlewares"
	"github.com/jobboardhq/job-aggregator-service/scheduler"
	"github.com/jobboardhq/job-aggregator-service/scraper"
	"github.com/jobboardhq/job-aggregator-service/search"
)

type AppHttpServer struct {
	router     *chi.Mux
	cfg        config.Config
	server     *http.Server
	db         *db.DB
	scheduler  *scheduler.Scheduler
	aggregator *scraper.Aggregator
	persister  *scraper.Persister
	searchSvc  *search.Service
}

func NewAppHttpServer(cfg config.Config) (*AppHttpServer, error) {
	r := chi.NewRouter()

	// Basic CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-KEY"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Scrape-backed endpoints can block on several upstream fetches.
	r.Use(middleware.Timeout(2 * time.Minute))

	server := &AppHttpServer{
		router: r,
		cfg:    cfg,
	}
	return server, nil
}

// SetDB sets the database dependency
func (s *AppHttpServer) SetDB(db *db.DB) {
	s.db = db
}

// SetScheduler sets the scrape scheduler dependency
func (s *AppHttpServer) SetScheduler(sched *scheduler.Scheduler) {
	s.scheduler = sched
}

// SetScraping sets the aggregation pipeline dependencies
func (s *AppHttpServer) SetScraping(aggregator *scraper.Aggregator, persister *scraper.Persister) {
	s.aggregator = aggregator
	s.persister = persister
}

// SetSearchService sets the unified search dependency
func (s *AppHttpServer) SetSearchService(svc *search.Service) {
	s.searchSvc = svc
}

func (s *AppHttpServer) setupRoute() {
	r := s.router

	// Public health endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"` + common.AppName + `"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		// Handlers
		externalJobHandler := handler.NewExternalJobHandler(s.db, s.searchSvc, s.aggregator, s.persister, s.cfg)
		unifiedJobHandler := handler.NewUnifiedJobHandler(s.db, s.searchSvc, s.cfg)
		healthHandler := handler.NewHealthHandler(s.db)
		adminHandler := handler.NewAdminHandler(s.scheduler)

		r.Mount("/external-jobs", externalJobHandler.Router())
		r.Mount("/unified-jobs", unifiedJobHandler.Router())
		r.Mount("/health", healthHandler.Router())

		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewares.ApiKey(s.cfg.Security.AdminApiKey))
			r.Mount("/", adminHandler.Router())
		})
	})
}

func (s *AppHttpServer) start() error {
	r := s.router
	cfg := s.cfg
	log.Info().Msg("Starting up server...")

	s.server = &http.Server{
		Addr:         cfg.Listen.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// This starts the server in a goroutine from main
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// stop gracefully shuts down the server
func (s *AppHttpServer) stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
