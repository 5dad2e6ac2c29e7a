package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/jobboardhq/job-aggregator-service/common"
	"github.com/jobboardhq/job-aggregator-service/common/utils"
	"github.com/jobboardhq/job-aggregator-service/scheduler"
)

// AdminHandler exposes scraping operations control. The whole router is
// mounted behind the admin API key middleware.
type AdminHandler struct {
	scheduler *scheduler.Scheduler
	router    *chi.Mux
}

func NewAdminHandler(sched *scheduler.Scheduler) *AdminHandler {
	h := &AdminHandler{
		scheduler: sched,
	}

	r := chi.NewRouter()
	r.Get("/scraping/status", h.handleStatus)
	r.Get("/scraping/errors", h.handleErrors)
	r.Post("/scraping/trigger", h.handleTrigger)
	r.Post("/scraping/control", h.handleControl)

	h.router = r
	return h
}

func (h *AdminHandler) Router() *chi.Mux {
	return h.router
}

func (h *AdminHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.scheduler.Status())
}

func (h *AdminHandler) handleErrors(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.scheduler.Errors())
}

// handleTrigger kicks off a full sweep in the background. A sweep already in
// flight yields a conflict instead of a queued run.
func (h *AdminHandler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.TriggerAsync(); err != nil {
		if errors.Is(err, common.ErrScrapeInProgress) {
			utils.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to trigger scraping")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to trigger scraping")
		return
	}

	utils.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "Job scraping triggered"})
}

type ControlParams struct {
	Action string `json:"action" validate:"required,oneof=start stop"`
}

func (h *AdminHandler) handleControl(w http.ResponseWriter, r *http.Request) {
	var p ControlParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch p.Action {
	case "start":
		if err := h.scheduler.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start scheduler")
			utils.WriteError(w, http.StatusInternalServerError, "Failed to start scheduled scraping")
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Scheduled scraping started"})
	case "stop":
		h.scheduler.Stop()
		utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Scheduled scraping stopped"})
	}
}
