package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/campaign-engine/internal/services"
	"github.com/jwebster45206/campaign-engine/internal/storage"
	"github.com/jwebster45206/campaign-engine/pkg/chat"
	"github.com/jwebster45206/campaign-engine/pkg/extract"
	"github.com/jwebster45206/campaign-engine/pkg/prompts"
	"github.com/jwebster45206/campaign-engine/pkg/scene"
	"github.com/jwebster45206/campaign-engine/pkg/state"
	"github.com/jwebster45206/campaign-engine/pkg/textfilter"
)

// GenerateTimeout bounds one backend generation call. If the backend does
// not answer in time the turn fails whole: no partial merge, no save.
const GenerateTimeout = 60 * time.Second

// TurnProcessor runs one player turn end to end: load session, assemble
// the request, call the backend, extract narration and patch, merge, save.
type TurnProcessor struct {
	storage storage.Storage
	llm     services.LLMService
	filter  *textfilter.NarrationFilter
	logger  *slog.Logger
}

func NewTurnProcessor(s storage.Storage, llm services.LLMService, logger *slog.Logger) *TurnProcessor {
	return &TurnProcessor{
		storage: s,
		llm:     llm,
		filter:  textfilter.NewNarrationFilter(),
		logger:  logger,
	}
}

// ProcessTurn executes one turn against the given session. The session is
// mutated and saved only after a successful generation; a backend error or
// timeout leaves stored state untouched.
func (p *TurnProcessor) ProcessTurn(ctx context.Context, req *chat.TurnRequest) (*chat.TurnResponse, error) {
	ss, err := p.storage.LoadSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if ss == nil {
		return nil, ErrSessionNotFound
	}

	logger := p.logger.With("session_id", req.SessionID)

	params := scene.BuildParams{
		Location:        ss.Location,
		LocationDetail:  ss.LocationDetail,
		InCombat:        ss.InCombat,
		InitiativeOrder: ss.InitiativeOrder,
		PlayerActions:   req.Actions,
	}
	if req.Scene != nil {
		params.VisibleElements = req.Scene.VisibleElements
		params.Environmental = req.Scene.Environmental
		params.CurrentTurn = req.Scene.CurrentTurn
		params.Combatants = req.Scene.Combatants
		params.RelevantAbilities = req.Scene.RelevantAbilities
	}
	packet := scene.Build(params)

	builder := prompts.New().
		WithSessionState(ss).
		WithScene(packet)
	if req.Message != "" {
		builder = builder.WithExtraContext(req.Message)
	}

	prompt, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	raw, err := p.llm.Generate(genCtx, prompt)
	if err != nil {
		logger.Error("Generation failed, session unchanged", "error", err)
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	narration, patch := extract.Parse(raw)
	if patch == nil {
		logger.Debug("No state update in reply")
	} else {
		state.NewPatchWorker(ss, patch, logger).Apply()
	}

	if textfilter.ShouldFilter(ss.ContentRating) {
		narration = p.filter.Filter(narration)
	}

	if err := p.storage.SaveSession(ctx, req.SessionID, ss); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &chat.TurnResponse{
		SessionID: req.SessionID,
		Narration: narration,
	}, nil
}

// ErrSessionNotFound reports a turn against an unknown session.
var ErrSessionNotFound = fmt.Errorf("session not found")

// TurnHandler handles POST /v1/turn
type TurnHandler struct {
	processor *TurnProcessor
	logger    *slog.Logger
}

func NewTurnHandler(processor *TurnProcessor, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for turn endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'session_id' and 'message' or 'actions'.")
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("Invalid turn request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.processor.ProcessTurn(r.Context(), &req)
	if err != nil {
		if err == ErrSessionNotFound {
			h.writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		h.logger.Error("Turn processing failed", "session_id", req.SessionID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to process turn. Please try again.")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Error encoding turn response", "error", err)
	}
}

func (h *TurnHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(chat.TurnResponse{Error: msg}); err != nil {
		h.logger.Error("Error encoding error response", "error", err)
	}
}
