package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common/config"
	"github.com/jobboardhq/job-aggregator-service/common/db"
	"github.com/jobboardhq/job-aggregator-service/common/utils"
	"github.com/jobboardhq/job-aggregator-service/middlewares"
	"github.com/jobboardhq/job-aggregator-service/repository"
	"github.com/jobboardhq/job-aggregator-service/scraper"
	"github.com/jobboardhq/job-aggregator-service/search"
)

const (
	cacheKeySources  = "external_jobs:sources"
	cacheKeyOverview = "external_jobs:overview"
	cacheTTL         = 5 * time.Minute

	maxOnDemandLimit = 50
)

type ExternalJobHandler struct {
	db         *db.DB
	searchSvc  *search.Service
	aggregator *scraper.Aggregator
	persister  *scraper.Persister
	router     *chi.Mux
	cfg        config.Config
}

func NewExternalJobHandler(db *db.DB, searchSvc *search.Service, aggregator *scraper.Aggregator, persister *scraper.Persister, cfg config.Config) *ExternalJobHandler {
	h := &ExternalJobHandler{
		db:         db,
		searchSvc:  searchSvc,
		aggregator: aggregator,
		persister:  persister,
		cfg:        cfg,
	}

	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Post("/search", h.handleScrapeSearch)
	r.Get("/sources/list", h.handleListSources)
	r.Get("/stats/overview", h.handleOverview)
	r.Get("/{id}", h.handleGet)

	// Moderation endpoints are key-guarded.
	r.Group(func(r chi.Router) {
		r.Use(middlewares.ApiKey(cfg.Security.AdminApiKey))
		r.Patch("/{id}/status", h.handleSetStatus)
		r.Post("/bulk-update", h.handleBulkUpdate)
	})

	h.router = r
	return h
}

func (h *ExternalJobHandler) Router() *chi.Mux {
	return h.router
}

func (h *ExternalJobHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := search.ExternalListParams{
		Query:          q.Get("search"),
		Location:       q.Get("location"),
		SourceSite:     q.Get("source_site"),
		EmploymentType: q.Get("employment_type"),
		RemoteOnly:     q.Get("remote_work") == "true",
		Page:           utils.QueryInt(r, "page", 1),
		Limit:          utils.QueryInt(r, "limit", h.cfg.Scraper.DefaultLimit),
	}

	jobs, pagination, err := h.searchSvc.ListExternal(r.Context(), params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list external jobs")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list external jobs")
		return
	}

	utils.WritePagination(w, http.StatusOK, jobs, pagination.Page, pagination.Limit, pagination.Total)
}

func (h *ExternalJobHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.db.Queries.GetExternalJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteError(w, http.StatusNotFound, "External job not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Failed to fetch external job")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch external job")
		return
	}

	utils.WriteJSON(w, http.StatusOK, job)
}

type ScrapeSearchParams struct {
	Query    string   `json:"query" validate:"required"`
	Location string   `json:"location"`
	Limit    int      `json:"limit"`
	Sources  []string `json:"sources"`
}

// handleScrapeSearch runs an on-demand multi-source scrape for a caller
// supplied query and persists the results before responding.
func (h *ExternalJobHandler) handleScrapeSearch(w http.ResponseWriter, r *http.Request) {
	var p ScrapeSearchParams

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if p.Limit <= 0 {
		p.Limit = h.cfg.Scraper.DefaultLimit
	}
	if p.Limit > maxOnDemandLimit {
		p.Limit = maxOnDemandLimit
	}

	candidates := h.aggregator.WithSources(p.Sources).ScrapeAllSources(r.Context(), p.Query, p.Location, p.Limit)
	saved := h.persister.SaveJobs(r.Context(), candidates)
	h.invalidateCaches(r.Context())

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Found %d new jobs", len(saved)),
		"scraped": len(candidates),
		"saved":   len(saved),
		"jobs":    saved,
	})
}

func (h *ExternalJobHandler) handleListSources(w http.ResponseWriter, r *http.Request) {
	var cached []repository.ListSourceSitesRow
	if h.readCache(r.Context(), cacheKeySources, &cached) {
		utils.WriteJSON(w, http.StatusOK, cached)
		return
	}

	sources, err := h.db.Queries.ListSourceSites(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list source sites")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list source sites")
		return
	}

	h.writeCache(r.Context(), cacheKeySources, sources)
	utils.WriteJSON(w, http.StatusOK, sources)
}

type externalOverview struct {
	repository.GetExternalJobsOverviewRow
	RecentJobs int64 `json:"recent_jobs"`
}

func (h *ExternalJobHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	var cached externalOverview
	if h.readCache(r.Context(), cacheKeyOverview, &cached) {
		utils.WriteJSON(w, http.StatusOK, cached)
		return
	}

	overview, err := h.db.Queries.GetExternalJobsOverview(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch external jobs overview")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch overview")
		return
	}

	recent, err := h.db.Queries.CountRecentExternalJobs(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to count recent external jobs")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch overview")
		return
	}

	result := externalOverview{GetExternalJobsOverviewRow: overview, RecentJobs: recent}
	h.writeCache(r.Context(), cacheKeyOverview, result)
	utils.WriteJSON(w, http.StatusOK, result)
}

type SetStatusParams struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *ExternalJobHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p SetStatusParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.db.Queries.SetExternalJobActive(r.Context(), repository.SetExternalJobActiveParams{
		ID:       id,
		IsActive: *p.IsActive,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteError(w, http.StatusNotFound, "External job not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Failed to update external job status")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update job status")
		return
	}

	h.invalidateCaches(r.Context())
	utils.WriteJSON(w, http.StatusOK, job)
}

type BulkUpdateParams struct {
	Action string   `json:"action" validate:"required,oneof=activate deactivate"`
	JobIds []string `json:"job_ids" validate:"required,min=1"`
}

func (h *ExternalJobHandler) handleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	var p BulkUpdateParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.db.Queries.BulkSetExternalJobsActive(r.Context(), repository.BulkSetExternalJobsActiveParams{
		IsActive: p.Action == "activate",
		JobIds:   p.JobIds,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to bulk update external jobs")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to bulk update jobs")
		return
	}

	h.invalidateCaches(r.Context())
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Successfully %sd %d jobs", p.Action, updated),
		"updated": updated,
	})
}

// readCache loads a cached JSON value; cache misses and errors both read as
// misses.
func (h *ExternalJobHandler) readCache(ctx context.Context, key string, target interface{}) bool {
	if h.db.Redis == nil {
		return false
	}
	raw, err := h.db.Redis.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), target) == nil
}

// writeCache stores a JSON value best-effort.
func (h *ExternalJobHandler) writeCache(ctx context.Context, key string, value interface{}) {
	if h.db.Redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := h.db.Redis.Set(ctx, key, string(raw), cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache response")
	}
}

func (h *ExternalJobHandler) invalidateCaches(ctx context.Context) {
	if h.db.Redis == nil {
		return
	}
	for _, key := range []string{cacheKeySources, cacheKeyOverview, cacheKeyUnifiedOverview} {
		if err := h.db.Redis.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cache")
		}
	}
}
