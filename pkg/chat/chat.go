package chat

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jwebster45206/campaign-engine/pkg/scene"
)

// TurnRequest is one player turn submitted to the campaign-engine api.
type TurnRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	// Message is free-text input from the table, included in the prompt
	// as additional context.
	Message string `json:"message,omitempty"`
	// Actions are per-character actions awaiting narration this round.
	Actions []scene.PlayerAction `json:"actions,omitempty"`
	// Scene carries the caller's view of the immediate surroundings. The
	// scene packet is rebuilt every turn, so these details never persist
	// past the request.
	Scene *ScenePayload `json:"scene,omitempty"`
}

// ScenePayload is the per-turn scene detail supplied by the caller, who
// owns the table view the session summary doesn't carry: what's visible,
// environmental factors, and live combatant numbers from the roster.
type ScenePayload struct {
	VisibleElements   []string                `json:"visible_elements,omitempty"`
	Environmental     []string                `json:"environmental,omitempty"`
	CurrentTurn       string                  `json:"current_turn,omitempty"`
	Combatants        []scene.CombatantStatus `json:"combatants,omitempty"`
	RelevantAbilities []string                `json:"relevant_abilities,omitempty"`
}

// Validate checks that the request can be processed.
func (r *TurnRequest) Validate() error {
	if r.SessionID == uuid.Nil {
		return fmt.Errorf("session_id is required")
	}
	if r.Message == "" && len(r.Actions) == 0 {
		return fmt.Errorf("message or actions required")
	}
	return nil
}

// TurnResponse is the player-facing result of one turn. It carries the
// cleaned narration only - the raw patch never leaves the server.
type TurnResponse struct {
	SessionID uuid.UUID `json:"session_id,omitempty"`
	Narration string    `json:"narration,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Chat roles, as defined by the LLM provider APIs.
const (
	ChatRoleUser   = "user"
	ChatRoleAgent  = "assistant"
	ChatRoleSystem = "system"
)

// ChatMessage is a single message in a provider conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
