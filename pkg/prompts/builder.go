package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/campaign-engine/pkg/scene"
	"github.com/jwebster45206/campaign-engine/pkg/state"
)

// Builder assembles a single request string for the backend using a fluent
// interface. Section order is fixed: contract, session state, scene,
// optional extra context, optional output instruction.
type Builder struct {
	session           *state.SessionState
	scene             *scene.Packet
	extraContext      string
	outputInstruction bool
}

// New creates a prompt builder. The output instruction is included by
// default; disable it for flavor-only renders where no write-back is
// expected.
func New() *Builder {
	return &Builder{outputInstruction: true}
}

// WithSessionState sets the session summary. Required.
func (b *Builder) WithSessionState(s *state.SessionState) *Builder {
	b.session = s
	return b
}

// WithScene sets the per-turn scene packet. Required.
func (b *Builder) WithScene(p *scene.Packet) *Builder {
	b.scene = p
	return b
}

// WithExtraContext adds a free-text addendum after the scene render.
func (b *Builder) WithExtraContext(text string) *Builder {
	b.extraContext = text
	return b
}

// WithOutputInstruction toggles the trailing output-format block.
func (b *Builder) WithOutputInstruction(include bool) *Builder {
	b.outputInstruction = include
	return b
}

// Build concatenates the request sections in their fixed order.
func (b *Builder) Build() (string, error) {
	if b.session == nil {
		return "", fmt.Errorf("session state is required")
	}
	if b.scene == nil {
		return "", fmt.Errorf("scene packet is required")
	}

	parts := []string{
		DMContract,
		"",
		b.session.ToPrompt(),
		"",
		b.scene.ToPrompt(),
	}

	if b.extraContext != "" {
		parts = append(parts, "", "=== ADDITIONAL CONTEXT ===", b.extraContext)
	}

	if b.outputInstruction {
		parts = append(parts, "", OutputInstruction)
	}

	return strings.Join(parts, "\n"), nil
}

// BuildOpeningPrompt assembles the session-opening request. It embeds the
// party roster and rolled initiative, forbids inventing extra characters,
// and mandates the exact closing sentence naming the first actor and their
// roll. Like every state-bearing request, it ends with the generic output
// instruction.
func BuildOpeningPrompt(session *state.SessionState, partyText, initiativeText, firstPlayer string, firstRoll int) (string, error) {
	opening := &scene.Packet{
		ImmediateLocation: "The Rusty Dragon Inn - Main hall, evening",
		VisibleElements: []string{
			"Warm tavern with crackling fireplace",
			"Local patrons drinking and talking quietly",
			"Bar counter with bottles and mugs",
			"Innkeeper Ameiko (Tian woman) polishing glasses",
			"Stairs leading to guest rooms",
		},
		Environmental: []string{
			"Warm and inviting atmosphere",
			"Normal lighting from fire and candles",
			"Smell of ale and cooking food",
		},
	}

	instruction := fmt.Sprintf(`=== OPENING SCENE ===
Create the opening scene for this adventure.

PLAYER CHARACTERS (these are the PLAYERS, not NPCs):
%s

INITIATIVE ROLLED:
%s

INSTRUCTIONS:
1. Set the scene at the Rusty Dragon Inn (4-5 sentences max)
2. Describe the atmosphere - warm tavern, locals drinking, innkeeper Ameiko
3. Do NOT introduce other adventurers or performers as NPCs
4. Announce initiative order
5. End with: "%s, you rolled %d for initiative. It's your turn. What do you do?"`,
		partyText, initiativeText, firstPlayer, firstRoll)

	return New().
		WithSessionState(session).
		WithScene(opening).
		WithExtraContext(instruction).
		Build()
}

// BuildActionPrompt assembles the per-round request: every pending player
// action in the scene must be narrated, and the response must name the
// next actor.
func BuildActionPrompt(session *state.SessionState, p *scene.Packet, nextPlayer string) (string, error) {
	instruction := fmt.Sprintf(`=== PROCESS ACTIONS ===
Narrate the outcome of each player action above.

INSTRUCTIONS:
1. Describe what happens for EACH character's action (2-3 sentences total)
2. Advance the story - NPCs react, discoveries made, consequences happen
3. End with: "%s, it's your turn. What do you do?"
4. If combat, state HP changes and conditions clearly`, nextPlayer)

	return New().
		WithSessionState(session).
		WithScene(p).
		WithExtraContext(instruction).
		Build()
}
