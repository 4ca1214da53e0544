package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-narrator/internal/catalog"
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/media"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/progression"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/resolver"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	"github.com/KirkDiggler/rpg-narrator/internal/providers/elevenlabs"
	"github.com/KirkDiggler/rpg-narrator/internal/providers/fireworks"
	"github.com/KirkDiggler/rpg-narrator/internal/providers/gemini"
	"github.com/KirkDiggler/rpg-narrator/internal/tui"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

var (
	playSlot     string
	playRace     string
	playClass    string
	playUniverse string
	playLoad     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or continue a game",
	Long: `Start a new game, or continue a saved one with --load. Races and classes
outside the built-in catalog are generated by the narrator. Examples:

  narrator play --race Dwarf --class Warrior --universe "Middle-earth"
  narrator play --race "Clockwork Gnome" --class Tinkerer
  narrator play --load --slot autosave`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playSlot, "slot", tui.DefaultSlot, "Save slot used by /save and --load")
	playCmd.Flags().StringVar(&playRace, "race", "Human", "Race of a new character")
	playCmd.Flags().StringVar(&playClass, "class", "Warrior", "Class of a new character")
	playCmd.Flags().StringVar(&playUniverse, "universe", "a classic high-fantasy realm", "Setting of a new game")
	playCmd.Flags().BoolVar(&playLoad, "load", false, "Continue the game saved in --slot")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.RequireCompletion(); err != nil {
		return err
	}

	var cleanup closers
	defer cleanup.close()

	llm, err := gemini.New(ctx, &gemini.Config{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
	})
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	cleanup.add(func() { _ = llm.Close() })

	clk := clock.New()
	bus := events.NewBus()

	saveRepo, err := openSaves(ctx, cfg, &cleanup)
	if err != nil {
		return err
	}
	rollLog := openRollLog(ctx, cfg, clk, &cleanup)

	combatSvc, err := newCombat(cfg, clk, rollLog, true)
	if err != nil {
		return err
	}
	progressionSvc, err := progression.NewOrchestrator(&progression.Config{Completion: llm})
	if err != nil {
		return err
	}

	var images providers.ImageProvider
	if cfg.FireworksAPIKey != "" {
		img, err := fireworks.New(&fireworks.Config{APIKey: cfg.FireworksAPIKey})
		if err != nil {
			return fmt.Errorf("failed to create image client: %w", err)
		}
		images = img
	}

	mediaSvc, err := startMedia(ctx, images, clk, bus, &cleanup)
	if err != nil {
		return err
	}

	applier, err := resolver.NewApplier(&resolver.Config{
		Progression: progressionSvc,
		Combat:      combatSvc,
		Images:      images,
		IDs:         idgen.NewUUIDSet(),
		ImageStyle:  cfg.ImageStyle,
	})
	if err != nil {
		return err
	}
	completer, err := resolver.NewCompleter(&resolver.CompleterConfig{
		Provider: llm,
		Attempts: cfg.RetryAttempts,
		Backoff:  cfg.RetryBackoff,
		Options: providers.CompletionOptions{
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxOutputTokens,
			JSONMode:    true,
		},
	})
	if err != nil {
		return err
	}
	parser, err := turn.NewParser(&turn.ParserConfig{Repairer: llm})
	if err != nil {
		return err
	}

	gameCfg := &session.Config{
		GameID:           idgen.NewUUID(idgen.PrefixGame).Generate(),
		Completer:        completer,
		Parser:           parser,
		Applier:          applier,
		Combat:           combatSvc,
		Progression:      progressionSvc,
		Bus:              bus,
		Clock:            clk,
		Saves:            saveRepo,
		Media:            mediaSvc,
		HistoryWindow:    cfg.HistoryWindow,
		AutoplayInterval: cfg.AutoplayInterval,
	}
	uiCfg := &tui.Config{Media: mediaSvc, Slot: playSlot}

	if playLoad {
		// The saved game replaces this placeholder before the first turn
		gameCfg.State = entities.NewGameState(nil)
		gameCfg.Universe = playUniverse
		uiCfg.LoadSlot = playSlot
	} else {
		fmt.Printf("Preparing a %s %s in %s...\n", playRace, playClass, playUniverse)
		fresh, err := newGame(ctx, llm)
		if err != nil {
			return err
		}
		gameCfg.State = fresh.State
		gameCfg.Universe = playUniverse
		uiCfg.Opening = fresh.OpeningPrompt
	}

	game, err := session.New(gameCfg)
	if err != nil {
		return err
	}
	uiCfg.Session = game

	slog.Info("Game started", "game_id", game.GameID(), "load", playLoad, "slot", playSlot)
	return tui.Run(ctx, uiCfg, bus)
}

// startMedia runs scene images and narration when an image provider is
// configured. It returns nil when it is not.
func startMedia(ctx context.Context, images providers.ImageProvider, clk clock.Clock, bus events.EventBus, cleanup *closers) (media.Service, error) {
	if images == nil {
		slog.Info("Scene images disabled, FIREWORKS_API_KEY is not set")
		return nil, nil
	}

	mediaCfg := &media.Config{
		Images:     images,
		Clock:      clk,
		VoiceID:    cfg.ElevenLabsVoiceID,
		ImageStyle: cfg.ImageStyle,
	}
	if cfg.ElevenLabsAPIKey != "" {
		speech, err := elevenlabs.New(&elevenlabs.Config{
			APIKey:         cfg.ElevenLabsAPIKey,
			DefaultVoiceID: cfg.ElevenLabsVoiceID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create speech client: %w", err)
		}
		mediaCfg.Speech = speech
		mediaCfg.SpeechEnabled = cfg.TTSEnabled
	}

	svc, err := media.NewOrchestrator(mediaCfg)
	if err != nil {
		return nil, err
	}
	unsubscribe := svc.Subscribe(bus)
	svc.Start(ctx)
	cleanup.add(func() {
		unsubscribe()
		svc.Close()
	})
	return svc, nil
}

// newGame resolves the chosen race and class and builds the starting state
func newGame(ctx context.Context, llm providers.CompletionProvider) (*character.NewGameOutput, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	creator, err := character.NewOrchestrator(&character.Config{Completion: llm, Catalog: cat})
	if err != nil {
		return nil, err
	}

	race, err := creator.ResolveRace(ctx, &character.ResolveRaceInput{Name: playRace})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve race %q: %w", playRace, err)
	}
	class, err := creator.ResolveClass(ctx, &character.ResolveClassInput{Name: playClass})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class %q: %w", playClass, err)
	}

	return creator.NewGame(ctx, &character.NewGameInput{
		Universe: playUniverse,
		Race:     race.Race,
		Class:    class.Class,
	})
}
