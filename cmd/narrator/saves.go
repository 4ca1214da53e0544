package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-narrator/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-narrator/internal/stats"
)

var savesTimeout time.Duration

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save slots",
	Long:  `List, inspect and delete the save slots of the configured backend (SAVE_BACKEND).`,
}

var listSavesCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	RunE:  runListSaves,
}

var showSaveCmd = &cobra.Command{
	Use:   "show [slot]",
	Short: "Show the character in a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowSave,
}

var deleteSaveCmd = &cobra.Command{
	Use:   "delete [slot]",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteSave,
}

func init() {
	savesCmd.PersistentFlags().DurationVar(&savesTimeout, "timeout", 10*time.Second, "Backend timeout")

	savesCmd.AddCommand(listSavesCmd)
	savesCmd.AddCommand(showSaveCmd)
	savesCmd.AddCommand(deleteSaveCmd)
}

// withSaves opens the backend for one command
func withSaves(cmd *cobra.Command, fn func(ctx context.Context, repo saves.Repository) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), savesTimeout)
	defer cancel()

	var cleanup closers
	defer cleanup.close()

	repo, err := openSaves(ctx, cfg, &cleanup)
	if err != nil {
		return err
	}
	return fn(ctx, repo)
}

func runListSaves(cmd *cobra.Command, _ []string) error {
	return withSaves(cmd, func(ctx context.Context, repo saves.Repository) error {
		out, err := repo.List(ctx, saves.ListInput{})
		if err != nil {
			return fmt.Errorf("failed to list saves: %w", err)
		}
		if len(out.Saves) == 0 {
			fmt.Println("No saved games.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLOT\tCHARACTER\tLEVEL\tTURNS\tSAVED")
		for _, s := range out.Saves {
			fmt.Fprintf(w, "%s\t%s %s\t%d\t%d\t%s\n",
				s.Slot, s.Race, s.Class, s.Level, s.Turns, s.SavedAt.Local().Format(time.DateTime))
		}
		return w.Flush()
	})
}

func runShowSave(cmd *cobra.Command, args []string) error {
	slot := args[0]
	return withSaves(cmd, func(ctx context.Context, repo saves.Repository) error {
		out, err := repo.Get(ctx, saves.GetInput{Slot: slot})
		if err != nil {
			return fmt.Errorf("failed to read slot %s: %w", slot, err)
		}
		doc := out.Document
		state := doc.State()
		p := state.Player

		fmt.Printf("Slot: %s\n", slot)
		if doc.Universe != "" {
			fmt.Printf("Universe: %s\n", doc.Universe)
		}
		if p.Race != nil && p.Class != nil {
			fmt.Printf("Character: %s %s\n", p.Race.Name, p.Class.Name)
		}
		fmt.Printf("Level %d (XP %d/%d), HP %d/%d\n", p.Level, p.XP, p.XPToNextLevel, p.HP, p.MaxHP)
		fmt.Printf("Stats: %s\n", stats.Format(p.Stats))
		if p.Evolution != "" {
			fmt.Printf("Evolution: %s\n", p.Evolution)
		}
		if len(state.Party) > 0 {
			fmt.Printf("Party:\n")
			for _, m := range state.Party {
				fmt.Printf("  - %s (level %d)\n", m.Name, m.Level)
			}
		}
		if len(state.Inventory) > 0 {
			fmt.Printf("Inventory:\n")
			for _, it := range state.Inventory {
				fmt.Printf("  - %s x%d\n", it.Name, it.Quantity)
			}
		}
		fmt.Printf("Conversation: %d messages\n", len(doc.Conversation))
		return nil
	})
}

func runDeleteSave(cmd *cobra.Command, args []string) error {
	slot := args[0]
	return withSaves(cmd, func(ctx context.Context, repo saves.Repository) error {
		if _, err := repo.Delete(ctx, saves.DeleteInput{Slot: slot}); err != nil {
			return fmt.Errorf("failed to delete slot %s: %w", slot, err)
		}
		fmt.Printf("Deleted slot %s.\n", slot)
		return nil
	})
}
