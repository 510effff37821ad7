package goalshandler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"scorecard/internal/domain/goals"
	"scorecard/internal/transport/http/api"
	"scorecard/internal/transport/http/middleware"
)

type Handler struct {
	Service *goals.Service
}

func NewHandler(service *goals.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Get("/{goalID}", h.handleGetGoal)
		r.Post("/{goalID}/key-results/{keyIndex}/progress", h.handleRecordProgress)
		r.Get("/{goalID}/key-results/latest", h.handleLatestProgress)
	})
}

func (h *Handler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	goal, err := h.Service.Goal(r.Context(), chi.URLParam(r, "goalID"))
	if errors.Is(err, goals.ErrGoalNotFound) {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_fetch_failed", "failed to fetch goal", requestID)
		return
	}
	api.Success(w, goal, requestID)
}

func (h *Handler) handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	keyIndex, err := strconv.Atoi(chi.URLParam(r, "keyIndex"))
	if err != nil || keyIndex < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_key_index", "key index must be a non-negative integer", requestID)
		return
	}

	var payload struct {
		Progress *float64 `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.Progress == nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "progress is required", requestID)
		return
	}
	progress := int(math.Round(*payload.Progress))

	entry, goal, err := h.Service.RecordProgress(r.Context(), chi.URLParam(r, "goalID"), keyIndex, progress, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, goals.ErrGoalNotFound):
			api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", requestID)
		case errors.Is(err, goals.ErrInvalidKeyIndex):
			api.Fail(w, http.StatusBadRequest, "invalid_key_index", "key index must be a non-negative integer", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "progress_record_failed", "failed to record progress", requestID)
		}
		return
	}

	api.Created(w, map[string]any{"entry": entry, "goal": goal}, requestID)
}

func (h *Handler) handleLatestProgress(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	latest, err := h.Service.LatestProgressPerKey(r.Context(), chi.URLParam(r, "goalID"))
	if errors.Is(err, goals.ErrGoalNotFound) {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "progress_fetch_failed", "failed to fetch latest progress", requestID)
		return
	}
	api.Success(w, latest, requestID)
}
