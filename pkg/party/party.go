// Package party tracks the player characters' live combat numbers. The
// session summary carries only a rendered one-line digest; authoritative
// HP lives here, on d20 actors, and hp_changes patches are applied against
// this roster rather than the session state.
package party

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/campaign-engine/pkg/conditions"
	"github.com/jwebster45206/campaign-engine/pkg/scene"
)

// MemberSpec is the serializable description of a party member.
type MemberSpec struct {
	Name      string   `json:"name"`
	Class     string   `json:"class,omitempty"`
	Level     int      `json:"level,omitempty"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"max_hp"`
	AC        int      `json:"ac"`
	Dexterity int      `json:"dexterity,omitempty"`
	Abilities []string `json:"abilities,omitempty"` // relevant-now hints for the scene packet
}

// Member is the runtime representation of one party member.
type Member struct {
	Spec       *MemberSpec
	Actor      *d20.Actor
	Conditions []string // active condition names, fed to the condition engine
}

// NewMemberFromSpec builds a member's d20 actor from its spec.
func NewMemberFromSpec(spec *MemberSpec) (*Member, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("member name is required")
	}

	actor, err := d20.NewActor(spec.Name).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(map[string]int{"dexterity": spec.Dexterity}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	if spec.HP != spec.MaxHP && spec.HP > 0 {
		if err := actor.SetHP(spec.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}

	return &Member{Spec: spec, Actor: actor}, nil
}

// Roster is the active party.
type Roster struct {
	Members []*Member
}

// NewRoster builds a roster from specs.
func NewRoster(specs []*MemberSpec) (*Roster, error) {
	r := &Roster{Members: make([]*Member, 0, len(specs))}
	for _, spec := range specs {
		m, err := NewMemberFromSpec(spec)
		if err != nil {
			return nil, err
		}
		r.Members = append(r.Members, m)
	}
	return r, nil
}

// Find returns the member with the given name, case-insensitively.
func (r *Roster) Find(name string) *Member {
	for _, m := range r.Members {
		if strings.EqualFold(m.Spec.Name, name) {
			return m
		}
	}
	return nil
}

// ApplyHPChanges applies a patch's hp_changes map to the roster. Unknown
// names are skipped; deltas are clamped to [0, max]. Like the rest of the
// merge path this never fails, it only skips.
func (r *Roster) ApplyHPChanges(changes map[string]int, logger *slog.Logger) {
	for name, delta := range changes {
		m := r.Find(name)
		if m == nil {
			if logger != nil {
				logger.Debug("HP change for unknown combatant skipped", "name", name)
			}
			continue
		}
		hp := m.Actor.HP() + delta
		if hp < 0 {
			hp = 0
		}
		if hp > m.Actor.MaxHP() {
			hp = m.Actor.MaxHP()
		}
		if err := m.Actor.SetHP(hp); err != nil {
			if logger != nil {
				logger.Warn("Failed to apply HP change", "name", name, "hp", hp, "error", err)
			}
			continue
		}
		if logger != nil {
			logger.Debug("HP changed", "name", name, "delta", delta, "hp", hp)
		}
	}
}

// Summary renders the one-line party digest carried in the session
// summary, e.g. "Thorin (Fighter 23/31 HP), Elara (Cleric 18/18 HP)".
func (r *Roster) Summary() string {
	parts := make([]string, 0, len(r.Members))
	for _, m := range r.Members {
		class := m.Spec.Class
		if class == "" {
			class = "Adventurer"
		}
		parts = append(parts, fmt.Sprintf("%s (%s %d/%d HP)",
			m.Spec.Name, class, m.Actor.HP(), m.Actor.MaxHP()))
	}
	return strings.Join(parts, ", ")
}

// Combatants builds the scene packet's combatant snapshot, resolving each
// member's condition names through the condition engine.
func (r *Roster) Combatants() []scene.CombatantStatus {
	out := make([]scene.CombatantStatus, 0, len(r.Members))
	for _, m := range r.Members {
		out = append(out, scene.CombatantStatus{
			Name:       m.Spec.Name,
			HPCurrent:  m.Actor.HP(),
			HPMax:      m.Actor.MaxHP(),
			Conditions: conditions.DisplayNames(m.Conditions),
			IsPlayer:   true,
		})
	}
	return out
}

// AbilityHints collects the members' relevant-now ability notes.
func (r *Roster) AbilityHints() []string {
	var hints []string
	for _, m := range r.Members {
		for _, a := range m.Spec.Abilities {
			hints = append(hints, fmt.Sprintf("%s: %s", m.Spec.Name, a))
		}
	}
	return hints
}

// InitiativeRoll is one member's rolled initiative.
type InitiativeRoll struct {
	Name string
	Roll int
}

// RollInitiative rolls d20 + dexterity modifier for each member and
// returns the results sorted highest first. Ties keep roster order.
func (r *Roster) RollInitiative() []InitiativeRoll {
	rolls := make([]InitiativeRoll, 0, len(r.Members))
	for _, m := range r.Members {
		mod := 0
		if dex, ok := m.Actor.Attribute("dexterity"); ok {
			mod = (dex - 10) / 2
		}
		rolls = append(rolls, InitiativeRoll{
			Name: m.Spec.Name,
			Roll: rand.IntN(20) + 1 + mod,
		})
	}
	sort.SliceStable(rolls, func(i, j int) bool {
		return rolls[i].Roll > rolls[j].Roll
	})
	return rolls
}

// FormatInitiative renders rolls for the opening prompt.
func FormatInitiative(rolls []InitiativeRoll) string {
	lines := make([]string, 0, len(rolls))
	for _, r := range rolls {
		lines = append(lines, fmt.Sprintf("%s: %d", r.Name, r.Roll))
	}
	return strings.Join(lines, "\n")
}

// FormatPartyList renders the roster for the opening prompt.
func (r *Roster) FormatPartyList() string {
	lines := make([]string, 0, len(r.Members))
	for _, m := range r.Members {
		class := m.Spec.Class
		if class == "" {
			class = "Adventurer"
		}
		lines = append(lines, fmt.Sprintf("- %s, %s %d", m.Spec.Name, class, m.Spec.Level))
	}
	return strings.Join(lines, "\n")
}
