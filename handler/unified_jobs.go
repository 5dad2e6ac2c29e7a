package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common"
	"github.com/jobboardhq/job-aggregator-service/common/config"
	"github.com/jobboardhq/job-aggregator-service/common/db"
	"github.com/jobboardhq/job-aggregator-service/common/utils"
	"github.com/jobboardhq/job-aggregator-service/search"
)

const cacheKeyUnifiedOverview = "unified_jobs:overview"

type UnifiedJobHandler struct {
	db        *db.DB
	searchSvc *search.Service
	router    *chi.Mux
	cfg       config.Config
}

func NewUnifiedJobHandler(db *db.DB, searchSvc *search.Service, cfg config.Config) *UnifiedJobHandler {
	h := &UnifiedJobHandler{
		db:        db,
		searchSvc: searchSvc,
		cfg:       cfg,
	}

	r := chi.NewRouter()
	r.Get("/search", h.handleSearch)
	r.Get("/stats/overview", h.handleOverview)
	r.Get("/{id}", h.handleGet)

	h.router = r
	return h
}

func (h *UnifiedJobHandler) Router() *chi.Mux {
	return h.router
}

// handleSearch serves the unified search across the internal and external job
// stores. The source_type query parameter selects internal, external, or all.
func (h *UnifiedJobHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := search.SearchParams{
		Query:          q.Get("query"),
		Location:       q.Get("location"),
		EmploymentType: q.Get("employment_type"),
		RemoteOnly:     q.Get("remote_work") == "true",
		SourceType:     q.Get("source_type"),
		Page:           utils.QueryInt(r, "page", 1),
		Limit:          utils.QueryInt(r, "limit", h.cfg.Scraper.DefaultLimit),
	}

	jobs, pagination, err := h.searchSvc.Search(r.Context(), params)
	if err != nil {
		log.Error().Err(err).Msg("Unified search failed")
		utils.WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.WritePagination(w, http.StatusOK, jobs, pagination.Page, pagination.Limit, pagination.Total)
}

func (h *UnifiedJobHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.searchSvc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Job not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Failed to fetch unified job")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch job")
		return
	}

	utils.WriteJSON(w, http.StatusOK, job)
}

func (h *UnifiedJobHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	var cached search.Overview
	if h.readCache(r.Context(), cacheKeyUnifiedOverview, &cached) {
		utils.WriteJSON(w, http.StatusOK, cached)
		return
	}

	overview, err := h.searchSvc.GetOverview(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch unified overview")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch overview")
		return
	}

	h.writeCache(r.Context(), cacheKeyUnifiedOverview, overview)
	utils.WriteJSON(w, http.StatusOK, overview)
}

func (h *UnifiedJobHandler) readCache(ctx context.Context, key string, target interface{}) bool {
	if h.db.Redis == nil {
		return false
	}
	raw, err := h.db.Redis.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), target) == nil
}

func (h *UnifiedJobHandler) writeCache(ctx context.Context, key string, value interface{}) {
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
