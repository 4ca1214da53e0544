package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
)

var (
	rollGameID  string
	rollHistory int
)

var rollCmd = &cobra.Command{
	Use:   "roll [action]",
	Short: "Roll a d20",
	Long: `Roll the d20 used for attacks. When redis is reachable the roll is recorded
in the game's roll log. Examples:

  narrator roll
  narrator roll "I swing at the troll" --game game_123 --history 5`,
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().StringVar(&rollGameID, "game", "cli", "Game whose roll log records the roll")
	rollCmd.Flags().IntVar(&rollHistory, "history", 0, "Also print this many recent rolls")
}

func runRoll(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	var cleanup closers
	defer cleanup.close()

	clk := clock.New()
	rollLog := openRollLog(ctx, cfg, clk, &cleanup)

	svc, err := newCombat(cfg, clk, rollLog, false)
	if err != nil {
		return err
	}

	action := strings.TrimSpace(strings.Join(args, " "))
	if action == "" {
		action = "I roll the die"
	}

	out, err := svc.RollForAction(ctx, &combat.RollForActionInput{GameID: rollGameID, Action: action})
	if err != nil {
		return fmt.Errorf("failed to roll: %w", err)
	}
	fmt.Printf("🎲 d20: %d\n", out.Roll)

	if rollHistory <= 0 {
		return nil
	}
	if rollLog == nil {
		fmt.Println("Roll history needs redis (REDIS_ADDR).")
		return nil
	}

	recent, err := svc.RecentRolls(ctx, &combat.RecentRollsInput{GameID: rollGameID, Limit: rollHistory})
	if err != nil {
		return fmt.Errorf("failed to read roll history: %w", err)
	}
	fmt.Printf("\nRecent rolls for %s:\n", rollGameID)
	for _, r := range recent.Rolls {
		fmt.Printf("  %2d  %s  %s\n", r.Result, r.RolledAt.Local().Format(time.TimeOnly), r.Action)
	}
	return nil
}
