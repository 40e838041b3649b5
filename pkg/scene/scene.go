// Package scene builds the per-turn scene packet: the immediate
// surroundings and combat snapshot sent alongside the session summary.
// A packet is rebuilt from scratch every turn and never persisted, so a
// stale combat snapshot can't drift into the next turn.
package scene

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/campaign-engine/pkg/bounded"
)

// MaxVisibleElements caps the VISIBLE section of the rendered packet.
const MaxVisibleElements = 5

// CombatantStatus is the live status of one combatant in the current fight.
// Conditions carries display names supplied by the condition engine; the
// packet does not interpret their numeric effects.
type CombatantStatus struct {
	Name       string   `json:"name"`
	HPCurrent  int      `json:"hp_current"`
	HPMax      int      `json:"hp_max"`
	Conditions []string `json:"conditions,omitempty"`
	IsPlayer   bool     `json:"is_player"`
}

func (c CombatantStatus) String() string {
	condStr := ""
	if len(c.Conditions) > 0 {
		condStr = fmt.Sprintf(" [%s]", strings.Join(c.Conditions, ", "))
	}
	return fmt.Sprintf("%s: %d/%d HP%s", c.Name, c.HPCurrent, c.HPMax, condStr)
}

// PlayerAction is one pending player input awaiting narration.
type PlayerAction struct {
	Character string `json:"character"`
	Action    string `json:"action"`
}

// Packet is the immediate scene context, rebuilt each turn.
type Packet struct {
	ImmediateLocation string
	VisibleElements   []string
	Environmental     []string

	InCombat        bool
	InitiativeOrder []string
	CurrentTurn     string
	Combatants      []CombatantStatus

	RelevantAbilities []string
	PlayerActions     []PlayerAction
}

// SetCombatState populates the combat snapshot. All combat fields are set
// together; there is no way to represent a partial combat state.
func (p *Packet) SetCombatState(initiative []string, current string, combatants []CombatantStatus) {
	p.InCombat = true
	p.InitiativeOrder = initiative
	p.CurrentTurn = current
	p.Combatants = combatants
}

// AddVisible records a visible element, suppressing duplicates and keeping
// at most MaxVisibleElements.
func (p *Packet) AddVisible(element string) {
	p.VisibleElements = bounded.AppendUnique(p.VisibleElements, element, MaxVisibleElements, bounded.Oldest)
}

// AddEnvironmental records an environmental factor, suppressing duplicates.
func (p *Packet) AddEnvironmental(factor string) {
	p.Environmental = bounded.AppendUnique(p.Environmental, factor, 0, bounded.Oldest)
}

// SetPlayerActions replaces the pending player actions.
func (p *Packet) SetPlayerActions(actions []PlayerAction) {
	p.PlayerActions = actions
}

// ToPrompt renders the scene for the backend prompt. Section order is
// fixed and empty sections are omitted, matching the session summary's
// rendering contract.
func (p *Packet) ToPrompt() string {
	lines := []string{"=== CURRENT SCENE ==="}

	if p.ImmediateLocation != "" {
		lines = append(lines, "WHERE: "+p.ImmediateLocation)
	}

	if len(p.VisibleElements) > 0 {
		lines = append(lines, "VISIBLE:")
		for _, elem := range p.VisibleElements {
			lines = append(lines, "  - "+elem)
		}
	}

	if p.InCombat {
		lines = append(lines, "", "COMBAT STATUS:")
		lines = append(lines, "  Initiative: "+strings.Join(p.InitiativeOrder, " > "))
		lines = append(lines, "  Current turn: "+p.CurrentTurn)
		if len(p.Combatants) > 0 {
			lines = append(lines, "  Combatants:")
			for _, c := range p.Combatants {
				marker := "[NPC]"
				if c.IsPlayer {
					marker = "[PC]"
				}
				lines = append(lines, fmt.Sprintf("    %s %s", marker, c.String()))
			}
		}
	}

	if len(p.RelevantAbilities) > 0 {
		lines = append(lines, "", "RELEVANT NOW:")
		for _, ability := range p.RelevantAbilities {
			lines = append(lines, "  - "+ability)
		}
	}

	if len(p.Environmental) > 0 {
		lines = append(lines, "", "ENVIRONMENT:")
		for _, factor := range p.Environmental {
			lines = append(lines, "  - "+factor)
		}
	}

	if len(p.PlayerActions) > 0 {
		lines = append(lines, "", "PLAYER ACTIONS THIS ROUND:")
		for _, a := range p.PlayerActions {
			lines = append(lines, fmt.Sprintf("  - %s: %q", a.Character, a.Action))
		}
	}

	return strings.Join(lines, "\n")
}

// BuildParams carries everything needed to construct a scene packet for
// one turn. Combatants are included in the packet only when InCombat is
// set and combatant data is present.
type BuildParams struct {
	Location          string
	LocationDetail    string
	InCombat          bool
	InitiativeOrder   []string
	CurrentTurn       string
	VisibleElements   []string
	Environmental     []string
	PlayerActions     []PlayerAction
	Combatants        []CombatantStatus
	RelevantAbilities []string
}

// Build constructs a fresh scene packet from the current turn's data.
func Build(params BuildParams) *Packet {
	p := &Packet{
		ImmediateLocation: fmt.Sprintf("%s - %s", params.Location, params.LocationDetail),
		VisibleElements:   params.VisibleElements,
		Environmental:     params.Environmental,
		PlayerActions:     params.PlayerActions,
		RelevantAbilities: params.RelevantAbilities,
	}

	if params.InCombat && len(params.Combatants) > 0 {
		p.SetCombatState(params.InitiativeOrder, params.CurrentTurn, params.Combatants)
	}

	return p
}
