package queue

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/handlers"
	"github.com/fibreflow/workforce/pkg/routes"
)

var errInvalidContractor = errors.New("invalid contractor id")

// Handler provides HTTP endpoints for the approval queue view.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "queue"),
	}
}

// Routes returns the route group definition for queue endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/queue",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/contractors/{contractorId}", Handler: h.List},
		},
	}
}

// List returns the contractor's documents filtered and sorted per the
// query parameters. The view is recomputed on every request.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	contractorID, err := uuid.Parse(r.PathValue("contractorId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidContractor)
		return
	}

	view, err := ViewFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	entries, err := h.sys.ForContractor(r.Context(), contractorID, view)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
