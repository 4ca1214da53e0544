package resolver

import (
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

// ApplyInput is one decoded turn and the state it applies to
type ApplyInput struct {
	State   *entities.GameState
	Payload *turn.Payload
}

// Suggestion is one next action offered to the player. Battle moves are
// marked so the caller routes them through the d20 roll.
type Suggestion struct {
	Label  string
	Action string
	Move   bool
}

// ApplyOutput is everything a turn produced besides the state mutation
type ApplyOutput struct {
	Intents     []intents.Intent
	Suggestions []Suggestion

	InBattle bool

	// RecordNarrative is set when the narrative was non-empty and the raw
	// payload belongs in the conversation log.
	RecordNarrative bool

	// EvolutionReady is set when the player can now pick an evolution
	EvolutionReady bool
}
