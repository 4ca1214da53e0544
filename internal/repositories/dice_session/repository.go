// Package dicesession stores the d20 rolls made during a game so a session
// can show its recent roll history.
package dicesession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session Repository

// Roll is one resolved die roll
type Roll struct {
	// Player text the roll was made for
	Action string `json:"action"`

	// Die size, 20 for action checks
	Size int `json:"size"`

	Result   int       `json:"result"`
	RolledAt time.Time `json:"rolled_at"`
}

// RollLog is the ordered roll history of one game, oldest first
type RollLog struct {
	GameID string
	Rolls  []Roll
}

// AppendInput contains parameters for recording a roll
type AppendInput struct {
	GameID string
	Roll   Roll

	// TTL refreshes the log expiry; zero uses the repository default
	TTL time.Duration
}

// AppendOutput contains the result of recording a roll
type AppendOutput struct {
	Length int
}

// GetInput contains parameters for retrieving a roll log
type GetInput struct {
	GameID string

	// Limit returns only the newest rolls; zero returns everything kept
	Limit int
}

// GetOutput contains the result of retrieving a roll log
type GetOutput struct {
	Log *RollLog
}

// DeleteInput contains parameters for deleting a roll log
type DeleteInput struct {
	GameID string
}

// DeleteOutput contains the result of deleting a roll log
type DeleteOutput struct {
	RollsDeleted int
}

// Repository defines the interface for roll log storage operations
type Repository interface {
	// Append records a roll at the end of the game's log
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// Get retrieves the game's roll log
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the game's roll log
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
