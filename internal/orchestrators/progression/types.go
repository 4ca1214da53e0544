package progression

import (
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
)

// AwardPlayerXPInput grants experience to the player
type AwardPlayerXPInput struct {
	State  *entities.GameState
	Amount int
}

// AwardPlayerXPOutput reports level changes
type AwardPlayerXPOutput struct {
	LevelsGained   int
	EvolutionReady bool
	Intents        []intents.Intent
}

// AwardPartyMemberXPInput grants experience to a party member by exact name
type AwardPartyMemberXPInput struct {
	State  *entities.GameState
	Name   string
	Amount int
}

// AwardPartyMemberXPOutput reports level changes
type AwardPartyMemberXPOutput struct {
	LevelsGained int
	Intents      []intents.Intent
}

// SpendSkillPointInput unlocks a skill. An empty Target means the player;
// Racial selects the player's racial skills instead of the class tree.
type SpendSkillPointInput struct {
	State  *entities.GameState
	Target string
	Skill  string
	Racial bool
}

// SpendSkillPointOutput confirms the unlock
type SpendSkillPointOutput struct {
	Intents []intents.Intent
}

// SpendUpgradePointInput raises a base stat by one. An empty Target means
// the player, who spends upgrade points; party members spend skill points.
type SpendUpgradePointInput struct {
	State  *entities.GameState
	Target string
	Stat   string
}

// SpendUpgradePointOutput reports the new base value
type SpendUpgradePointOutput struct {
	Stat  string
	Value int
}

// EnsureEvolutionsInput asks for the player's evolution options
type EnsureEvolutionsInput struct {
	State *entities.GameState
}

// EnsureEvolutionsOutput carries the cached or freshly generated options
type EnsureEvolutionsOutput struct {
	Eligible  bool
	Generated bool
	Options   []entities.EvolutionOption
}

// ChooseEvolutionInput commits the player to an evolution
type ChooseEvolutionInput struct {
	State *entities.GameState
	Name  string
}

// ChooseEvolutionOutput confirms the evolution
type ChooseEvolutionOutput struct {
	Evolution string
	Intents   []intents.Intent
}
