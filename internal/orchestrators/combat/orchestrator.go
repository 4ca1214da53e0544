// Package combat handles the battle lifecycle around a turn: attack
// detection, the d20 roll for attacks and summon cleanup when a battle ends.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	dicesession "github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session"
)

const (
	// ActionDie is the die rolled for attacks
	ActionDie = 20

	// DefaultRollDelay is how long the roll is shown before the turn is sent
	DefaultRollDelay = 3500 * time.Millisecond

	// BattleEndMessage is announced when summons are dismissed
	BattleEndMessage = "As the last foe falls, your summoned allies fade away..."
)

// Service defines combat lifecycle operations
type Service interface {
	OnBattleEnd(ctx context.Context, input *OnBattleEndInput) (*OnBattleEndOutput, error)
	RollForAction(ctx context.Context, input *RollForActionInput) (*RollForActionOutput, error)
	RecentRolls(ctx context.Context, input *RecentRollsInput) (*RecentRollsOutput, error)
}

// Config holds the dependencies for the combat orchestrator. RollLog is
// optional; without it rolls are not recorded.
type Config struct {
	Roller    dice.Roller
	Clock     clock.Clock
	RollLog   dicesession.Repository
	RollDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.RollDelay < 0 {
		vb.Field("RollDelay", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	roller    dice.Roller
	clock     clock.Clock
	rollLog   dicesession.Repository
	rollDelay time.Duration
}

// NewOrchestrator creates a new combat orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller:    cfg.Roller,
		clock:     cfg.Clock,
		rollLog:   cfg.RollLog,
		rollDelay: cfg.RollDelay,
	}, nil
}

// InBattle reports whether the state has any active encounter
func InBattle(state *entities.GameState) bool {
	return state != nil && state.InBattle()
}

// IsAttack reports whether text should be resolved with a d20 roll
func IsAttack(state *entities.GameState, text string) bool {
	if !InBattle(state) {
		return false
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "attack") || strings.Contains(lower, "use my")
}

// MoveAction is the player text for choosing a move in battle
func MoveAction(move string) string {
	return fmt.Sprintf("I use my %s attack.", strings.TrimSpace(move))
}

// AnnotateRoll appends a roll result to the player's action
func AnnotateRoll(action string, roll int) string {
	return fmt.Sprintf("%s (I rolled a %d on my d20).", action, roll)
}

var rollSuffix = regexp.MustCompile(`\s*\(I rolled a \d+ on my d20\)\.$`)

// StripRoll removes an AnnotateRoll suffix so the action can be rolled again
func StripRoll(text string) string {
	return rollSuffix.ReplaceAllString(text, "")
}

// OnBattleEnd dismisses every summon. The message is only emitted when
// something was dismissed.
func (o *orchestrator) OnBattleEnd(_ context.Context, input *OnBattleEndInput) (*OnBattleEndOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}

	dismissed := input.State.RemoveSummons()
	output := &OnBattleEndOutput{Dismissed: dismissed}
	if len(dismissed) == 0 {
		return output, nil
	}

	slog.Info("Battle ended, summons dismissed", "count", len(dismissed))
	output.Intents = []intents.Intent{intents.System(BattleEndMessage)}
	return output, nil
}

// RollForAction rolls a d20, records it, reports it through OnRoll, then
// holds for the roll delay so the result is on screen before the turn is sent.
func (o *orchestrator) RollForAction(ctx context.Context, input *RollForActionInput) (*RollForActionOutput, error) {
	if input == nil || strings.TrimSpace(input.Action) == "" {
		return nil, errors.InvalidArgument("action is required")
	}

	result, err := o.roller.Roll(ActionDie)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll d20")
	}

	slog.Info("Dice rolled successfully", "game_id", input.GameID, "result", result)

	if o.rollLog != nil && input.GameID != "" {
		_, err := o.rollLog.Append(ctx, dicesession.AppendInput{
			GameID: input.GameID,
			Roll: dicesession.Roll{
				Action:   input.Action,
				Size:     ActionDie,
				Result:   result,
				RolledAt: o.clock.Now(),
			},
		})
		if err != nil {
			slog.Warn("Failed to record roll", "game_id", input.GameID, "error", err)
		}
	}

	if input.OnRoll != nil {
		input.OnRoll(result)
	}

	if err := o.clock.Sleep(ctx, o.rollDelay); err != nil {
		if ctxErr := errors.FromContext(ctx); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(err, "roll delay interrupted")
	}

	return &RollForActionOutput{
		Roll: result,
		Text: AnnotateRoll(input.Action, result),
	}, nil
}

// RecentRolls returns the recorded rolls for a game, empty without a log
func (o *orchestrator) RecentRolls(ctx context.Context, input *RecentRollsInput) (*RecentRollsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}
	if o.rollLog == nil {
		return &RecentRollsOutput{}, nil
	}

	out, err := o.rollLog.Get(ctx, dicesession.GetInput{GameID: input.GameID, Limit: input.Limit})
	if err != nil {
		if errors.IsNotFound(err) {
			return &RecentRollsOutput{}, nil
		}
		return nil, errors.Wrap(err, "failed to load roll history")
	}

	return &RecentRollsOutput{Rolls: out.Log.Rolls}, nil
}
