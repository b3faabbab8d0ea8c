/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes report processing and the worker/bonus configuration via REST.
  Handles HTTP request/response, JSON serialization, and delegates to the
  payroll engine and the stores.

ENDPOINTS:
  Reports:
    POST   /api/reports/process         Compute payroll for one report
                                        ?format=csv|xlsx|pdf returns a file

  Workers:
    GET    /api/workers                 List workers (sorted by name)
    PUT    /api/workers                 Create or update by name
    GET    /api/workers/{name}          Get one worker
    DELETE /api/workers/{name}          Delete one worker

  Bonuses:
    GET    /api/bonuses                 Current bonus amounts
    PUT    /api/bonuses                 Replace bonus amounts

  Health:
    GET    /api/health

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call the engine or store
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid body, invalid worker or bonus amounts
  - 404: Worker not found (unknown_worker also lists known_workers)
  - 422: Report has no worker name
  - 503: Directory or bonus table unavailable
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/warp/attendance-payroll/export"
	"github.com/warp/attendance-payroll/factory"
	"github.com/warp/attendance-payroll/generic"
	"github.com/warp/attendance-payroll/payroll"
	"go.uber.org/zap"
)

// maxReportBytes bounds a report body. Real reports are a few KB.
const maxReportBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine        *payroll.Engine
	Workers       generic.WorkerStore
	Bonuses       generic.BonusStore
	WorkerFactory *factory.WorkerFactory
	Logger        *zap.Logger
}

// NewHandler creates a handler whose engine reads the given stores.
func NewHandler(workers generic.WorkerStore, bonuses generic.BonusStore, logger *zap.Logger, opts ...payroll.Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]payroll.Option{payroll.WithLogger(logger.Named("engine"))}, opts...)
	return &Handler{
		Engine:        payroll.NewEngine(workers, bonuses, opts...),
		Workers:       workers,
		Bonuses:       bonuses,
		WorkerFactory: factory.NewWorkerFactory(),
		Logger:        logger,
	}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// ProcessReport computes the payroll for one attendance report.
//
// Body is either a ProcessReportRequest (application/json) or the raw
// report (text/plain) with holidays/justified as repeated query params.
func (h *Handler) ProcessReport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid format", err)
		return
	}

	req, err := decodeProcessRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Engine.ProcessReport(r.Context(), req.Text, payroll.Overrides{
		Holidays:  generic.NewDateSet(req.Holidays...),
		Justified: generic.NewDateSet(req.Justified...),
	})
	if err != nil {
		h.writeDomainError(w, "Failed to process report", err)
		return
	}

	if format == export.FormatJSON {
		writeJSON(w, http.StatusOK, ToPayrollResultDTO(res))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(res.WorkerName)))
	w.WriteHeader(http.StatusOK)
	if err := export.Write(w, format, res); err != nil {
		// headers are gone; all we can do is log
		h.Logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
	}
}

func decodeProcessRequest(r *http.Request) (ProcessReportRequest, error) {
	body := io.LimitReader(r.Body, maxReportBytes)

	var req ProcessReportRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/plain") {
		text, err := io.ReadAll(body)
		if err != nil {
			return req, err
		}
		q := r.URL.Query()
		req.Text = string(text)
		req.Holidays = q["holiday"]
		req.Justified = q["justified"]
		return req, nil
	}

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

// ListWorkers returns all workers.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Workers.ListWorkers(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list workers", err)
		return
	}

	dtos := make([]factory.WorkerJSON, len(workers))
	for i, p := range workers {
		dtos[i] = h.WorkerFactory.ToJSON(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorker returns a single worker.
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	p, err := h.Workers.LookupWorker(r.Context(), name)
	if err != nil {
		h.writeDomainError(w, "Failed to get worker", err)
		return
	}
	writeJSON(w, http.StatusOK, h.WorkerFactory.ToJSON(*p))
}

// SaveWorker creates or updates a worker keyed by normalized name.
func (h *Handler) SaveWorker(w http.ResponseWriter, r *http.Request) {
	var wj factory.WorkerJSON
	if err := json.NewDecoder(r.Body).Decode(&wj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := h.WorkerFactory.FromJSON(wj)
	if err != nil {
		h.writeDomainError(w, "Invalid worker", err)
		return
	}

	saved, err := h.Workers.SaveWorker(r.Context(), *p)
	if err != nil {
		h.writeDomainError(w, "Failed to save worker", err)
		return
	}

	h.Logger.Info("worker saved", zap.String("worker", saved.Name), zap.String("id", saved.ID))
	writeJSON(w, http.StatusOK, h.WorkerFactory.ToJSON(*saved))
}

// DeleteWorker removes a worker.
func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.Workers.DeleteWorker(r.Context(), name); err != nil {
		h.writeDomainError(w, "Failed to delete worker", err)
		return
	}

	h.Logger.Info("worker deleted", zap.String("worker", generic.NormalizeName(name)))
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// BONUS HANDLERS
// =============================================================================

// GetBonuses returns the bonus table.
func (h *Handler) GetBonuses(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bonuses.LookupBonusAmounts(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to get bonuses", err)
		return
	}
	writeJSON(w, http.StatusOK, BonusesDTO{Bonus1: b.Bonus1, Bonus2: b.Bonus2})
}

// SetBonuses replaces the bonus table.
func (h *Handler) SetBonuses(w http.ResponseWriter, r *http.Request) {
	var req BonusesDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	b := generic.BonusAmounts{Bonus1: req.Bonus1, Bonus2: req.Bonus2}
	if err := h.Bonuses.SetBonusAmounts(r.Context(), b); err != nil {
		h.writeDomainError(w, "Failed to set bonuses", err)
		return
	}

	h.Logger.Info("bonuses updated",
		zap.String("bonus1", b.Bonus1.String()),
		zap.String("bonus2", b.Bonus2.String()))
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// HEALTH
// =============================================================================

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness, and database reachability when the store can
// be pinged.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Workers.(pinger)
	if !ok {
		writeJSON(w, http.StatusOK, HealthDTO{Status: "ok"})
		return
	}
	if err := p.Ping(r.Context()); err != nil {
		h.Logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthDTO{Status: "degraded", Database: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok", Database: "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine and store errors to a status and code.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	status, code := classify(err)
	resp := ErrorResponse{Error: message, Code: code, Details: err.Error()}

	var unknown *generic.UnknownWorkerError
	if errors.As(err, &unknown) {
		resp.KnownWorkers = unknown.Known
		if resp.KnownWorkers == nil {
			resp.KnownWorkers = []string{}
		}
	}

	if status >= http.StatusInternalServerError {
		h.Logger.Error(message, zap.String("code", code), zap.Error(err))
	}
	writeJSON(w, status, resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, generic.ErrUnknownWorker):
		return http.StatusNotFound, "unknown_worker"
	case errors.Is(err, generic.ErrWorkerNotFound):
		return http.StatusNotFound, "worker_not_found"
	case errors.Is(err, generic.ErrMissingName):
		return http.StatusUnprocessableEntity, "missing_name"
	case errors.Is(err, generic.ErrInvalidWorker):
		return http.StatusBadRequest, "invalid_worker"
	case errors.Is(err, generic.ErrInvalidBonus):
		return http.StatusBadRequest, "invalid_bonus"
	case generic.IsRetryable(err):
		return http.StatusServiceUnavailable, "lookup_failed"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "timeout"
	}
	return http.StatusInternalServerError, "internal"
}
