package scene

import (
	"fmt"
	"strings"
	"testing"
)

func TestPacket_AddVisible(t *testing.T) {
	p := &Packet{}
	p.AddVisible("fireplace")
	p.AddVisible("fireplace")
	if len(p.VisibleElements) != 1 {
		t.Errorf("expected duplicate suppressed, got %v", p.VisibleElements)
	}

	for i := 0; i < 10; i++ {
		p.AddVisible(fmt.Sprintf("element %d", i))
	}
	if len(p.VisibleElements) != MaxVisibleElements {
		t.Errorf("expected %d elements, got %d", MaxVisibleElements, len(p.VisibleElements))
	}
}

func TestPacket_AddEnvironmental_Unbounded(t *testing.T) {
	p := &Packet{}
	for i := 0; i < 20; i++ {
		p.AddEnvironmental(fmt.Sprintf("factor %d", i))
	}
	p.AddEnvironmental("factor 0")
	if len(p.Environmental) != 20 {
		t.Errorf("expected 20 unique factors, got %d", len(p.Environmental))
	}
}

func TestPacket_SetCombatState(t *testing.T) {
	p := &Packet{}
	combatants := []CombatantStatus{
		{Name: "Thorin", HPCurrent: 23, HPMax: 31, IsPlayer: true},
		{Name: "Goblin", HPCurrent: 4, HPMax: 6},
	}
	p.SetCombatState([]string{"Thorin", "Goblin"}, "Thorin", combatants)

	if !p.InCombat || p.CurrentTurn != "Thorin" || len(p.Combatants) != 2 {
		t.Errorf("expected all combat fields set together, got %+v", p)
	}
}

func TestPacket_ToPrompt(t *testing.T) {
	t.Run("full packet", func(t *testing.T) {
		p := Build(BuildParams{
			Location:        "Sandpoint",
			LocationDetail:  "Town square",
			InCombat:        true,
			InitiativeOrder: []string{"Thorin", "Goblin", "Elara"},
			CurrentTurn:     "Thorin",
			VisibleElements: []string{"Overturned cart", "Burning stall"},
			Environmental:   []string{"Smoke reduces visibility"},
			PlayerActions:   []PlayerAction{{Character: "Thorin", Action: "I charge the goblin"}},
			Combatants: []CombatantStatus{
				{Name: "Thorin", HPCurrent: 23, HPMax: 31, IsPlayer: true},
				{Name: "Goblin", HPCurrent: 4, HPMax: 6, Conditions: []string{"prone"}},
			},
			RelevantAbilities: []string{"Thorin: Power Attack active"},
		})

		expected := `=== CURRENT SCENE ===
WHERE: Sandpoint - Town square
VISIBLE:
  - Overturned cart
  - Burning stall

COMBAT STATUS:
  Initiative: Thorin > Goblin > Elara
  Current turn: Thorin
  Combatants:
    [PC] Thorin: 23/31 HP
    [NPC] Goblin: 4/6 HP [prone]

RELEVANT NOW:
  - Thorin: Power Attack active

ENVIRONMENT:
  - Smoke reduces visibility

PLAYER ACTIONS THIS ROUND:
  - Thorin: "I charge the goblin"`

		if got := p.ToPrompt(); got != expected {
			t.Errorf("prompt mismatch:\nexpected:\n%s\n\ngot:\n%s", expected, got)
		}
	})

	t.Run("empty sections omitted", func(t *testing.T) {
		p := Build(BuildParams{Location: "Sandpoint", LocationDetail: "Town square"})
		got := p.ToPrompt()

		for _, header := range []string{"VISIBLE:", "COMBAT STATUS:", "RELEVANT NOW:", "ENVIRONMENT:", "PLAYER ACTIONS"} {
			if strings.Contains(got, header) {
				t.Errorf("expected %q omitted, got:\n%s", header, got)
			}
		}
	})

	t.Run("combat requires combatant data", func(t *testing.T) {
		p := Build(BuildParams{
			Location:        "Sandpoint",
			LocationDetail:  "Town square",
			InCombat:        true,
			InitiativeOrder: []string{"Thorin"},
		})
		if p.InCombat {
			t.Error("expected no combat snapshot without combatant data")
		}
	})
}
