package compliance

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/handlers"
	"github.com/fibreflow/workforce/pkg/routes"
)

// ErrInvalidContractor indicates a malformed contractor id path parameter.
var ErrInvalidContractor = errors.New("invalid contractor id")

// Handler provides HTTP endpoints for compliance evaluation and report export.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "compliance"),
	}
}

// Routes returns the route group definition for compliance endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/compliance",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/contractors/{contractorId}", Handler: h.Metrics},
			{Method: "GET", Pattern: "/contractors/{contractorId}/report", Handler: h.Report},
		},
	}
}

// Metrics evaluates and returns the contractor's current compliance metrics.
// Each request recomputes from the live document set; clients refresh by
// requesting again.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	contractorID, err := uuid.Parse(r.PathValue("contractorId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidContractor)
		return
	}

	m, err := h.sys.ForContractor(r.Context(), contractorID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, m)
}

// Report evaluates the contractor's compliance and returns it as a CSV download.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	contractorID, err := uuid.Parse(r.PathValue("contractorId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidContractor)
		return
	}

	m, err := h.sys.ForContractor(r.Context(), contractorID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("compliance-%s.csv", contractorID)
	handlers.RespondCSV(w, filename, RenderReport(*m))
}
