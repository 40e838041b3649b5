package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/campaign-engine/internal/storage"
	"github.com/jwebster45206/campaign-engine/pkg/party"
	"github.com/jwebster45206/campaign-engine/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SessionHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewSessionHandler(s storage.Storage, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		storage: s,
		logger:  logger,
	}
}

// CreateSessionRequest defines the request body for creating a new session.
// Party takes precedence over PartySummary: when specs are given, the
// summary is derived from the built roster.
type CreateSessionRequest struct {
	PartySummary  string              `json:"party_summary,omitempty"`
	Party         []*party.MemberSpec `json:"party,omitempty"`
	ContentRating string              `json:"content_rating,omitempty"`
}

// ServeHTTP handles HTTP requests for session operations
// Routes:
// POST /v1/sessions         - Create new session
// GET /v1/sessions/{id}     - Read session by ID
// DELETE /v1/sessions/{id}  - Delete session by ID
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimPrefix(r.URL.Path, "/v1/sessions")
	var sessionID uuid.UUID
	var err error

	if path != "" && path != "/" {
		idStr := strings.Trim(path, "/")
		sessionID, err = uuid.Parse(idStr)
		if err != nil {
			h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
			h.writeError(w, http.StatusBadRequest, "Invalid session ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)

	case http.MethodGet:
		if sessionID == uuid.Nil {
			h.writeError(w, http.StatusBadRequest, "Session ID is required for GET requests")
			return
		}
		h.handleRead(w, r, sessionID)

	case http.MethodDelete:
		if sessionID == uuid.Nil {
			h.writeError(w, http.StatusBadRequest, "Session ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, sessionID)

	default:
		h.logger.Warn("Method not allowed for session endpoint", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.Body != nil {
		// Body is optional; a bare POST creates a session with defaults.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			h.logger.Warn("Invalid request body", "error", err)
			h.writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	ss := state.NewSessionState()
	if req.PartySummary != "" {
		ss.PartySummary = req.PartySummary
	}
	if len(req.Party) > 0 {
		roster, err := party.NewRoster(req.Party)
		if err != nil {
			h.logger.Warn("Invalid party spec", "error", err)
			h.writeError(w, http.StatusBadRequest, "Invalid party: "+err.Error())
			return
		}
		ss.PartySummary = roster.Summary()
	}
	if req.ContentRating != "" {
		ss.ContentRating = req.ContentRating
	}

	if err := h.storage.SaveSession(r.Context(), ss.ID, ss); err != nil {
		h.logger.Error("Failed to save new session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.logger.Info("Session created", "session_id", ss.ID)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ss); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	ss, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if ss == nil {
		h.writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	// Reads serve the player surface; DM secrets stay server-side.
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ss.PlayerView()); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "session_id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	h.logger.Info("Session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
