package scoringhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scorecard/internal/domain/scoring"
	"scorecard/internal/platform/jobs"
	"scorecard/internal/transport/http/api"
	"scorecard/internal/transport/http/middleware"
	"scorecard/internal/transport/http/shared"
)

type Handler struct {
	Service *scoring.Service
	Jobs    *jobs.Service
}

func NewHandler(service *scoring.Service, jobsSvc *jobs.Service) *Handler {
	return &Handler{Service: service, Jobs: jobsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Post("/recalculate", h.handleRecalculate)
		r.Post("/recalculate-all", h.handleRecalculateAll)
		r.Get("/records", h.handleListRecords)
		r.Get("/records/{recordID}/pdf", h.handleScorecardPDF)
	})
}

type periodPayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Period    string `json:"period"`
}

func (p periodPayload) coerce(w http.ResponseWriter, requestID string) (scoring.Period, bool) {
	start, err := shared.ParseDate(p.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start date", requestID)
		return scoring.Period{}, false
	}
	end, err := shared.ParseDate(p.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end date", requestID)
		return scoring.Period{}, false
	}
	return scoring.CoercePeriod(time.Now(), start, end, p.Period), true
}

func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload struct {
		EmployeeID string `json:"employeeId"`
		periodPayload
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	period, ok := payload.coerce(w, requestID)
	if !ok {
		return
	}

	result, err := h.Service.Recalculate(r.Context(), payload.EmployeeID, period, user.UserID)
	if err != nil {
		h.failRecalculate(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) failRecalculate(w http.ResponseWriter, err error, requestID string) {
	var stageErr *scoring.StageError
	switch {
	case errors.Is(err, scoring.ErrMissingEmployeeID):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee id required", requestID)
	case errors.Is(err, scoring.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.As(err, &stageErr):
		api.FailWithDetails(w, http.StatusInternalServerError, "recalculate_failed",
			"recalculation failed", map[string]any{"stage": stageErr.Stage}, requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "recalculate_failed", "recalculation failed", requestID)
	}
}

func (h *Handler) handleRecalculateAll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload periodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	period, ok := payload.coerce(w, requestID)
	if !ok {
		return
	}

	run := func(ctx context.Context) (any, error) {
		return h.Service.RecalculateAll(ctx, period, user.UserID)
	}

	var outcomes any
	var err error
	if h.Jobs != nil {
		outcomes, err = h.Jobs.RunNow(r.Context(), jobs.JobPerformanceRecalc, run)
	} else {
		outcomes, err = run(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "recalculate_all_failed", "batch recalculation failed", requestID)
		return
	}
	api.Success(w, outcomes, requestID)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	records, err := h.Service.Records(r.Context(), r.URL.Query().Get("employeeId"), r.URL.Query().Get("period"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "record_list_failed", "failed to list performance records", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleScorecardPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	recordID := chi.URLParam(r, "recordID")

	path, err := h.Service.GenerateScorecardPDF(r.Context(), recordID)
	if errors.Is(err, scoring.ErrRecordNotFound) {
		api.Fail(w, http.StatusNotFound, "record_not_found", "performance record not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scorecard_pdf_failed", "failed to generate scorecard", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=scorecard-"+recordID+".pdf")
	http.ServeFile(w, r, path)
}
