package combat

import (
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	dicesession "github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session"
)

// OnBattleEndInput is the state whose battle just ended
type OnBattleEndInput struct {
	State *entities.GameState
}

// OnBattleEndOutput lists the summons that were dismissed
type OnBattleEndOutput struct {
	Dismissed []*entities.PartyMember
	Intents   []intents.Intent
}

// RollForActionInput is the player text to roll for. OnRoll, when set, is
// called with the result before the roll delay starts.
type RollForActionInput struct {
	GameID string
	Action string
	OnRoll func(roll int)
}

// RollForActionOutput carries the d20 result and the annotated action
type RollForActionOutput struct {
	Roll int
	Text string
}

// RecentRollsInput selects a game's roll history
type RecentRollsInput struct {
	GameID string
	Limit  int
}

// RecentRollsOutput lists rolls oldest first
type RecentRollsOutput struct {
	Rolls []dicesession.Roll
}
