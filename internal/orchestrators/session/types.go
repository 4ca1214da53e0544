package session

import (
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/resolver"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	"github.com/KirkDiggler/rpg-narrator/internal/repositories/saves"
)

// Status is how a turn ended
type Status string

// Turn statuses
const (
	// StatusApplied means the response was parsed and applied
	StatusApplied Status = "applied"

	// StatusAbandoned means the response could not be parsed; state is
	// unchanged and the fallback message was shown
	StatusAbandoned Status = "abandoned"

	// StatusFailed means the completion call failed after retries
	StatusFailed Status = "failed"
)

// Outcome reports one resolved turn
type Outcome struct {
	Status      Status
	Intents     []intents.Intent
	Suggestions []resolver.Suggestion
	InBattle    bool

	// EvolutionReady is set when the player can now pick an evolution
	EvolutionReady bool

	// Evolutions holds the options generated by this turn, set only the
	// first time the player becomes eligible
	Evolutions []entities.EvolutionOption

	// Roll is the d20 result when the action was an attack, otherwise 0
	Roll int

	// Err is the provider or parse failure for failed and abandoned turns
	Err error
}

// SubmitInput is text typed or picked by the player
type SubmitInput struct {
	Text string
}

// RunTurnInput is one turn sent to the narrator as is. Silent turns are
// recorded in the conversation but not echoed to the player.
type RunTurnInput struct {
	Text   string
	Silent bool
}

// RegenerateInput selects the assistant entry to replace
type RegenerateInput struct {
	Index int
}

// EditNarrativeInput rewrites the narrative of a stored assistant entry
type EditNarrativeInput struct {
	Index     int
	Narrative string
}

// LearnSkillInput unlocks a skill. An empty Target means the player.
type LearnSkillInput struct {
	Target string
	Skill  string
	Racial bool
}

// UpgradeInput raises a base stat. An empty Target means the player.
type UpgradeInput struct {
	Target string
	Stat   string
}

// EvolveInput picks one of the offered evolutions
type EvolveInput struct {
	Name string
}

// EquipInput moves gear from its pool into a slot
type EquipInput struct {
	ItemID string
	Kind   entities.GearKind
}

// UnequipInput empties a slot
type UnequipInput struct {
	Slot entities.Slot
}

// SaveInput names the slot to write
type SaveInput struct {
	Slot string
}

// SaveOutput describes the written save
type SaveOutput struct {
	Summary saves.Summary
}

// LoadInput names the slot to read
type LoadInput struct {
	Slot string
}

// LoadOutput carries the restored transcript for display
type LoadOutput struct {
	Transcript []intents.Intent
}

// Snapshot is a copy of the session for rendering
type Snapshot struct {
	GameID       string
	Universe     string
	State        *entities.GameState
	Conversation []providers.Message
	Busy         bool
	Autoplaying  bool
	CanUndo      bool
}
