// Package conditions maps named status effects to their numeric modifiers.
// The scene packet consumes only the display names; combat math consumes
// the aggregated Effect.
package conditions

import "strings"

// Effect is the numeric impact of one or more conditions on a combatant.
type Effect struct {
	AttackModifier int
	ACModifier     int
	SaveModifier   int
	SkillModifier  int
	SpeedModifier  int
	LosesDexToAC   bool
	CannotAct      bool
}

// add merges another effect into this one. Modifiers stack; flags latch.
func (e *Effect) add(other Effect) {
	e.AttackModifier += other.AttackModifier
	e.ACModifier += other.ACModifier
	e.SaveModifier += other.SaveModifier
	e.SkillModifier += other.SkillModifier
	e.SpeedModifier += other.SpeedModifier
	e.LosesDexToAC = e.LosesDexToAC || other.LosesDexToAC
	e.CannotAct = e.CannotAct || other.CannotAct
}

// Condition is one named status effect.
type Condition struct {
	Name        string
	Description string
	Effect      Effect
}

// registry keys are lowercase condition names.
var registry = map[string]Condition{
	"blinded": {
		Name:        "Blinded",
		Description: "Cannot see; all checks relying on vision fail",
		Effect:      Effect{ACModifier: -2, LosesDexToAC: true, SkillModifier: -4},
	},
	"dazed": {
		Name:        "Dazed",
		Description: "Can take no actions this round",
		Effect:      Effect{CannotAct: true},
	},
	"entangled": {
		Name:        "Entangled",
		Description: "Movement impeded by webs, vines, or ropes",
		Effect:      Effect{AttackModifier: -2, SpeedModifier: -15},
	},
	"fatigued": {
		Name:        "Fatigued",
		Description: "Cannot run or charge; weakened",
		Effect:      Effect{AttackModifier: -1, ACModifier: -1},
	},
	"frightened": {
		Name:        "Frightened",
		Description: "Must flee the source of fear if possible",
		Effect:      Effect{AttackModifier: -2, SaveModifier: -2, SkillModifier: -2},
	},
	"grappled": {
		Name:        "Grappled",
		Description: "Held by an opponent",
		Effect:      Effect{AttackModifier: -2, LosesDexToAC: true},
	},
	"prone": {
		Name:        "Prone",
		Description: "Lying on the ground",
		Effect:      Effect{AttackModifier: -4, ACModifier: -4},
	},
	"shaken": {
		Name:        "Shaken",
		Description: "Rattled by fear",
		Effect:      Effect{AttackModifier: -2, SaveModifier: -2, SkillModifier: -2},
	},
	"sickened": {
		Name:        "Sickened",
		Description: "Nauseated and distracted",
		Effect:      Effect{AttackModifier: -2, SaveModifier: -2, SkillModifier: -2},
	},
	"stunned": {
		Name:        "Stunned",
		Description: "Drops held items, can take no actions",
		Effect:      Effect{ACModifier: -2, LosesDexToAC: true, CannotAct: true},
	},
}

// Get looks up a condition by name, case-insensitively.
func Get(name string) (Condition, bool) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// DisplayNames resolves condition names to their canonical display form.
// Unknown names pass through unchanged so backend-invented conditions
// still render in the combat snapshot.
func DisplayNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if c, ok := Get(name); ok {
			out = append(out, c.Name)
			continue
		}
		out = append(out, name)
	}
	return out
}

// Aggregate sums the numeric effects of the named conditions. Unknown
// names contribute nothing.
func Aggregate(names []string) Effect {
	var total Effect
	for _, name := range names {
		if c, ok := Get(name); ok {
			total.add(c.Effect)
		}
	}
	return total
}
