package onboarding

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/handlers"
	"github.com/fibreflow/workforce/pkg/middleware"
	"github.com/fibreflow/workforce/pkg/routes"
)

const actorHeader = "X-Actor-Id"

var (
	errInvalidContractor = errors.New("invalid contractor id")
	errInvalidItem       = errors.New("invalid checklist item id")
	errInvalidBody       = errors.New("invalid request body")
	errActorMissing      = errors.New("no actor identity on request")
)

// Handler provides HTTP endpoints for onboarding progress.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "onboarding"),
	}
}

// Routes returns the route group definition for onboarding endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/onboarding",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/contractors/{contractorId}", Handler: h.Progress},
			{Method: "POST", Pattern: "/contractors/{contractorId}", Handler: h.Start},
			{Method: "PUT", Pattern: "/contractors/{contractorId}/items/{itemId}", Handler: h.Toggle},
			{Method: "POST", Pattern: "/contractors/{contractorId}/submit", Handler: h.Submit},
			{Method: "POST", Pattern: "/contractors/{contractorId}/decision", Handler: h.Decide},
		},
	}
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	progress, err := h.sys.Progress(r.Context(), contractorID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, progress)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	progress, err := h.sys.Start(r.Context(), contractorID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, progress)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidItem)
		return
	}

	var cmd ToggleCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}

	cmd.ContractorID = contractorID
	cmd.ItemID = itemID

	progress, err := h.sys.Toggle(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, progress)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	progress, err := h.sys.Submit(r.Context(), contractorID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, progress)
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	actor, ok := middleware.Actor(r.Context())
	if !ok {
		if actor = r.Header.Get(actorHeader); actor == "" {
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, errActorMissing)
			return
		}
	}

	var cmd DecisionCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}

	cmd.ContractorID = contractorID
	cmd.ActorID = actor

	progress, err := h.sys.Decide(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, progress)
}

func (h *Handler) contractorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("contractorId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidContractor)
		return uuid.Nil, false
	}
	return id, true
}
