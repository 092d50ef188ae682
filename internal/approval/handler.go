package approval

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/internal/documents"
	"github.com/fibreflow/workforce/pkg/handlers"
	"github.com/fibreflow/workforce/pkg/middleware"
	"github.com/fibreflow/workforce/pkg/routes"
)

// actorHeader is the fallback actor source when token auth is disabled.
const actorHeader = "X-Actor-Id"

var (
	errInvalidBody  = errors.New("invalid request body")
	errActorMissing = errors.New("no actor identity on request")
)

// Handler provides HTTP endpoints for approval decisions.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "approval"),
	}
}

// Routes returns the route group definition for approval endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/approvals",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/batch", Handler: h.ProcessBatch},
			{Method: "POST", Pattern: "/{documentId}", Handler: h.Process},
		},
	}
}

// Process applies a single approve/reject decision to the document in the path.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, documents.ErrNotFound)
		return
	}

	actor, ok := requestActor(r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errActorMissing)
		return
	}

	var cmd ProcessCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}

	cmd.DocumentID = documentID
	cmd.ActorID = actor

	doc, err := h.sys.Process(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

// ProcessBatch applies a decision to every document in the request body,
// returning the per-document aggregate result.
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errActorMissing)
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}

	req.ActorID = actor

	result, err := h.sys.ProcessBatch(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// requestActor resolves the deciding actor: the verified token subject
// when auth middleware is active, otherwise the X-Actor-Id header.
func requestActor(r *http.Request) (string, bool) {
	if actor, ok := middleware.Actor(r.Context()); ok {
		return actor, true
	}
	if actor := r.Header.Get(actorHeader); actor != "" {
		return actor, true
	}
	return "", false
}
