package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/campaign-engine/pkg/bounded"
)

// List capacities for the session summary. These keep the rendered state
// block within a predictable token budget.
const (
	MaxActiveNPCs   = 5
	MaxActiveQuests = 3
	MaxRecentEvents = 5
	MaxSecrets      = 3

	// Only this many recent events appear in the rendered prompt.
	PromptEventLimit = 3
)

// Quest status values.
const (
	QuestStatusActive    = "active"
	QuestStatusCompleted = "completed"
	QuestStatusFailed    = "failed"
)

// NPCInfo is a compact NPC representation for the session summary.
type NPCInfo struct {
	Name     string `json:"name"`
	Attitude string `json:"attitude"` // e.g. "friendly", "neutral", "suspicious", "hostile"
	Note     string `json:"note"`     // one-line motivation or role
}

func (n NPCInfo) String() string {
	return fmt.Sprintf("%s (%s): %s", n.Name, n.Attitude, n.Note)
}

// QuestInfo is a compact quest representation for the session summary.
type QuestInfo struct {
	Title     string `json:"title"`
	Status    string `json:"status"` // active, completed, failed
	Objective string `json:"objective"`
}

func (q QuestInfo) String() string {
	marker := "[ ]"
	if q.Status == QuestStatusCompleted {
		marker = "[X]"
	}
	return fmt.Sprintf("%s %s: %s", marker, q.Title, q.Objective)
}

// SessionState is the rolling summary of a campaign session. It is the
// coherence anchor sent with every backend call, and the only record that
// survives from turn to turn. All mutation goes through the named mutators
// or ApplyStateUpdate.
type SessionState struct {
	ID uuid.UUID `json:"id"`

	// Party state, produced by the roster and treated as opaque here.
	PartySummary string `json:"party_summary"`

	Location       string `json:"location"`
	LocationDetail string `json:"location_detail"`

	CurrentObjective string `json:"current_objective"`

	ActiveNPCs   []NPCInfo   `json:"active_npcs"`
	ActiveQuests []QuestInfo `json:"active_quests"`
	RecentEvents []string    `json:"recent_events"`

	// DMSecrets are shown to the backend only, never on the player surface.
	DMSecrets []string `json:"dm_secrets"`

	InCombat        bool     `json:"in_combat"`
	InitiativeOrder []string `json:"initiative_order"`

	TimeOfDay   string `json:"time_of_day"`
	DaysElapsed int    `json:"days_elapsed"`

	// ContentRating gates narration filtering on the player surface.
	ContentRating string `json:"content_rating,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewSessionState creates a session with campaign-opening defaults.
func NewSessionState() *SessionState {
	return &SessionState{
		ID:               uuid.New(),
		Location:         "The Rusty Dragon Inn",
		LocationDetail:   "Main hall, evening",
		CurrentObjective: "Begin your adventure",
		TimeOfDay:        "evening",
	}
}

// AddEvent records a recent event, keeping only the newest MaxRecentEvents.
func (s *SessionState) AddEvent(event string) {
	s.RecentEvents = bounded.Append(s.RecentEvents, event, MaxRecentEvents, bounded.Oldest)
}

// AddNPC adds or updates an NPC. Names match case-insensitively; an update
// mutates the existing entry in place rather than appending.
func (s *SessionState) AddNPC(name, attitude, note string) {
	for i := range s.ActiveNPCs {
		if strings.EqualFold(s.ActiveNPCs[i].Name, name) {
			s.ActiveNPCs[i].Attitude = attitude
			s.ActiveNPCs[i].Note = note
			return
		}
	}
	s.ActiveNPCs = bounded.Append(s.ActiveNPCs,
		NPCInfo{Name: name, Attitude: attitude, Note: note},
		MaxActiveNPCs, bounded.Oldest)
}

// UpdateNPCAttitude changes a known NPC's attitude. Unknown names are a
// silent no-op.
func (s *SessionState) UpdateNPCAttitude(name, attitude string) {
	for i := range s.ActiveNPCs {
		if strings.EqualFold(s.ActiveNPCs[i].Name, name) {
			s.ActiveNPCs[i].Attitude = attitude
			return
		}
	}
}

// AddQuest adds an active quest. When over capacity, the oldest completed
// quest is evicted first, falling back to the oldest entry.
func (s *SessionState) AddQuest(title, objective string) {
	s.ActiveQuests = bounded.Append(s.ActiveQuests,
		QuestInfo{Title: title, Status: QuestStatusActive, Objective: objective},
		MaxActiveQuests, evictCompletedFirst)
}

func evictCompletedFirst(quests []QuestInfo) int {
	for i, q := range quests {
		if q.Status == QuestStatusCompleted {
			return i
		}
	}
	return 0
}

// CompleteQuest marks a quest completed by case-insensitive title match.
// Unknown titles are a silent no-op.
func (s *SessionState) CompleteQuest(title string) {
	for i := range s.ActiveQuests {
		if strings.EqualFold(s.ActiveQuests[i].Title, title) {
			s.ActiveQuests[i].Status = QuestStatusCompleted
			return
		}
	}
}

// AddSecret records a DM-only note, keeping the newest MaxSecrets.
func (s *SessionState) AddSecret(secret string) {
	s.DMSecrets = bounded.Append(s.DMSecrets, secret, MaxSecrets, bounded.Oldest)
}

// ApplyStateUpdate fans a sparse patch out to the mutators. A nil or empty
// patch is a no-op, and unusable patch fields are skipped rather than
// surfaced as errors.
func (s *SessionState) ApplyStateUpdate(patch *StatePatch) {
	NewPatchWorker(s, patch, nil).Apply()
}

// ToPrompt renders the session summary as a compact text block for the
// backend prompt. Section order is fixed and empty sections are omitted;
// other components and their tests depend on this contract. The render
// includes DM secrets and must never reach the player surface; use
// ToPlayerPrompt there.
func (s *SessionState) ToPrompt() string {
	lines := s.promptLines()

	if len(s.DMSecrets) > 0 {
		lines = append(lines, "DM NOTES (hidden from players):")
		for _, secret := range s.DMSecrets {
			lines = append(lines, "  - "+secret)
		}
	}

	return strings.Join(lines, "\n")
}

// ToPlayerPrompt renders the session summary without DM secrets, for
// player-facing surfaces.
func (s *SessionState) ToPlayerPrompt() string {
	return strings.Join(s.promptLines(), "\n")
}

// PlayerView returns a copy of the session with DM secrets stripped, for
// serving over player-facing APIs. The original is untouched.
func (s *SessionState) PlayerView() *SessionState {
	view := *s
	view.DMSecrets = nil
	return &view
}

func (s *SessionState) promptLines() []string {
	lines := []string{"=== SESSION STATE ==="}

	if s.PartySummary != "" {
		lines = append(lines, "PARTY: "+s.PartySummary)
	}

	lines = append(lines, fmt.Sprintf("LOCATION: %s - %s", s.Location, s.LocationDetail))
	lines = append(lines, fmt.Sprintf("TIME: %s, Day %d", s.TimeOfDay, s.DaysElapsed+1))

	if s.InCombat {
		initStr := "Not set"
		if len(s.InitiativeOrder) > 0 {
			initStr = strings.Join(s.InitiativeOrder, " > ")
		}
		lines = append(lines, "COMBAT: Active. Initiative: "+initStr)
	}

	lines = append(lines, "OBJECTIVE: "+s.CurrentObjective)

	if len(s.ActiveNPCs) > 0 {
		lines = append(lines, "KEY NPCs:")
		for _, npc := range s.ActiveNPCs {
			lines = append(lines, "  - "+npc.String())
		}
	}

	if len(s.ActiveQuests) > 0 {
		lines = append(lines, "QUESTS:")
		for _, quest := range s.ActiveQuests {
			lines = append(lines, "  - "+quest.String())
		}
	}

	if len(s.RecentEvents) > 0 {
		lines = append(lines, "RECENT:")
		events := s.RecentEvents
		if len(events) > PromptEventLimit {
			events = events[len(events)-PromptEventLimit:]
		}
		for _, event := range events {
			lines = append(lines, "  - "+event)
		}
	}

	return lines
}
