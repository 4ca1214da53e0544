package character

import (
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
)

// ResolveRaceInput names a predefined or custom race
type ResolveRaceInput struct {
	Name string
}

// ResolveRaceOutput carries the race and whether it was generated
type ResolveRaceOutput struct {
	Race      *entities.Race
	Generated bool
}

// ResolveClassInput names a predefined or custom class
type ResolveClassInput struct {
	Name string
}

// ResolveClassOutput carries the class and whether it was generated
type ResolveClassOutput struct {
	Class     *entities.Class
	Generated bool
}

// NewGameInput selects the setting and character for a new game
type NewGameInput struct {
	Universe string
	Race     *entities.Race
	Class    *entities.Class
}

// NewGameOutput is a fresh game state and the first player message
type NewGameOutput struct {
	State         *entities.GameState
	OpeningPrompt string
}
