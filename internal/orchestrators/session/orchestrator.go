// Package session owns one running game: the game state, the conversation
// with the narrator and the turn loop around them.
//
// A turn clones the state, sends the conversation window to the narrator,
// parses and applies the response to the clone and swaps it in only once
// the turn succeeded. One turn runs at a time; while it is in flight every
// other mutating call fails with FailedPrecondition.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/rpg-narrator/internal/orchestrators/session Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/media"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/progression"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/resolver"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-narrator/internal/prompts"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	dicesession "github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-narrator/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-narrator/internal/savegame"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

const (
	// DefaultHistoryWindow is how many conversation entries are sent per turn
	DefaultHistoryWindow = 10

	// DefaultAutoplayInterval separates autoplay turns when speech is off
	DefaultAutoplayInterval = 3 * time.Second

	errTurnInProgress = "a turn is already in progress"
	errNoSaveBackend  = "no save backend is configured"
	errNothingToUndo  = "nothing to undo"
)

var walkingPattern = regexp.MustCompile(`(?i)\b(walk\w*|go|goes|going|move[sd]?|moving|travel\w*|explor\w*|proceed\w*|advanc\w*|head(s|ing)? to)\b`)

// Completer sends a conversation to the narrator model
type Completer interface {
	Complete(ctx context.Context, messages []providers.Message) (string, error)
}

// Parser decodes the narrator's raw reply
type Parser interface {
	Parse(ctx context.Context, raw string) (*turn.Payload, turn.Strategy, error)
}

// Service defines the operations on a running game
type Service interface {
	GameID() string

	// Submit stops autoplay and resolves player input, rolling a d20
	// first when the input is an attack in battle
	Submit(ctx context.Context, input *SubmitInput) (*Outcome, error)

	// RunTurn resolves one turn with the text as given
	RunTurn(ctx context.Context, input *RunTurnInput) (*Outcome, error)

	StartAutoplay()
	StopAutoplay()
	Autoplaying() bool

	// RunAutoplay plays silent turns until autoplay is stopped, a turn
	// fails or ctx is done. onOutcome is called after every turn.
	RunAutoplay(ctx context.Context, onOutcome func(*Outcome)) error

	// Undo drops the last player and narrator exchange from the
	// conversation. Game state is not rolled back.
	Undo() error

	// Regenerate discards an assistant entry and everything after it and
	// resends the player message that produced it
	Regenerate(ctx context.Context, input *RegenerateInput) (*Outcome, error)

	EditNarrative(input *EditNarrativeInput) error

	LearnSkill(ctx context.Context, input *LearnSkillInput) (*progression.SpendSkillPointOutput, error)
	Upgrade(ctx context.Context, input *UpgradeInput) (*progression.SpendUpgradePointOutput, error)
	Evolutions(ctx context.Context) (*progression.EnsureEvolutionsOutput, error)
	Evolve(ctx context.Context, input *EvolveInput) (*progression.ChooseEvolutionOutput, error)
	Equip(ctx context.Context, input *EquipInput) error
	Unequip(ctx context.Context, input *UnequipInput) error

	RecentRolls(ctx context.Context, limit int) ([]dicesession.Roll, error)

	Snapshot() *Snapshot

	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)
}

// Config holds the game to run and its dependencies. Saves and Media are
// optional: without Saves, Save and Load fail; without Media, autoplay
// always waits AutoplayInterval between turns.
type Config struct {
	GameID       string
	Universe     string
	State        *entities.GameState
	Conversation []providers.Message

	Completer   Completer
	Parser      Parser
	Applier     resolver.Applier
	Combat      combat.Service
	Progression progression.Service
	Bus         events.EventBus
	Clock       clock.Clock

	Saves saves.Repository
	Media media.Service

	HistoryWindow    int
	AutoplayInterval time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("GameID", c.GameID, vb)
	if c.State == nil || c.State.Player == nil {
		vb.RequiredField("State")
	}
	if c.Completer == nil {
		vb.RequiredField("Completer")
	}
	if c.Parser == nil {
		vb.RequiredField("Parser")
	}
	if c.Applier == nil {
		vb.RequiredField("Applier")
	}
	if c.Combat == nil {
		vb.RequiredField("Combat")
	}
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.HistoryWindow < 0 {
		vb.Field("HistoryWindow", "must not be negative")
	}
	if c.AutoplayInterval < 0 {
		vb.Field("AutoplayInterval", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	gameID      string
	completer   Completer
	parser      Parser
	applier     resolver.Applier
	combat      combat.Service
	progression progression.Service
	bus         events.EventBus
	clock       clock.Clock
	saves       saves.Repository
	media       media.Service

	historyWindow    int
	autoplayInterval time.Duration

	mu           sync.Mutex
	universe     string
	system       string
	state        *entities.GameState
	conversation []providers.Message
	busy         bool
	autoplay     bool
}

// New creates a session around an existing game state
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	system, err := prompts.Narrator(prompts.NarratorData{Universe: cfg.Universe})
	if err != nil {
		return nil, err
	}

	o := &orchestrator{
		gameID:           cfg.GameID,
		completer:        cfg.Completer,
		parser:           cfg.Parser,
		applier:          cfg.Applier,
		combat:           cfg.Combat,
		progression:      cfg.Progression,
		bus:              cfg.Bus,
		clock:            cfg.Clock,
		saves:            cfg.Saves,
		media:            cfg.Media,
		historyWindow:    cfg.HistoryWindow,
		autoplayInterval: cfg.AutoplayInterval,
		universe:         cfg.Universe,
		system:           system,
		state:            cfg.State,
		conversation:     slices.Clone(cfg.Conversation),
	}
	if o.historyWindow == 0 {
		o.historyWindow = DefaultHistoryWindow
	}
	if o.autoplayInterval == 0 {
		o.autoplayInterval = DefaultAutoplayInterval
	}
	return o, nil
}

func (o *orchestrator) GameID() string {
	return o.gameID
}

// window is the system prompt plus the tail of the conversation. Callers
// hold mu.
func (o *orchestrator) window() []providers.Message {
	history := o.conversation
	if len(history) > o.historyWindow {
		history = history[len(history)-o.historyWindow:]
	}
	out := make([]providers.Message, 0, len(history)+1)
	out = append(out, providers.Message{Role: providers.RoleSystem, Content: o.system})
	return append(out, history...)
}

func (o *orchestrator) release() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
}

func (o *orchestrator) source() *entities.Player {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Player
}

func (o *orchestrator) publish(ctx context.Context, source *entities.Player, list []intents.Intent) {
	if len(list) == 0 {
		return
	}
	if err := intents.Publish(ctx, o.bus, source, list); err != nil {
		slog.Warn("Failed to publish intents", "game_id", o.gameID, "error", err)
	}
}

// dropPending removes the player message of a turn that was canceled
// before the narrator answered
func (o *orchestrator) dropPending(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := len(o.conversation)
	if n > 0 && o.conversation[n-1].Role == providers.RoleUser && o.conversation[n-1].Content == text {
		o.conversation = o.conversation[:n-1]
	}
}

func failureIntent(err error) intents.Intent {
	if errors.IsUnavailable(err) {
		return intents.Narrative(resolver.ConnectionFailureMessage)
	}
	return intents.System(fmt.Sprintf("The narrator could not answer: %s", errors.GetMessage(err)))
}

func (o *orchestrator) fail(ctx context.Context, source *entities.Player, err error) *Outcome {
	slog.Error("Turn failed", "game_id", o.gameID, "error", err)
	o.StopAutoplay()

	out := &Outcome{Status: StatusFailed, Intents: []intents.Intent{failureIntent(err)}, Err: err}
	o.publish(ctx, source, out.Intents)
	return out
}

func (o *orchestrator) RunTurn(ctx context.Context, input *RunTurnInput) (*Outcome, error) {
	if input == nil || strings.TrimSpace(input.Text) == "" {
		return nil, errors.InvalidArgument("turn text is required")
	}
	text := strings.TrimSpace(input.Text)

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errTurnInProgress)
	}
	o.busy = true
	o.conversation = append(o.conversation, providers.Message{Role: providers.RoleUser, Content: text})
	messages := o.window()
	working := o.state.Clone()
	o.mu.Unlock()
	defer o.release()

	if !input.Silent {
		o.publish(ctx, working.Player, []intents.Intent{intents.PlayerMessage(text)})
	}

	slog.Info("Resolving turn", "game_id", o.gameID, "silent", input.Silent, "messages", len(messages))

	raw, err := o.completer.Complete(ctx, messages)
	if err != nil {
		if ctxErr := errors.FromContext(ctx); ctxErr != nil {
			o.dropPending(text)
			return nil, ctxErr
		}
		return o.fail(ctx, working.Player, err), nil
	}

	payload, strategy, err := o.parser.Parse(ctx, raw)
	if err != nil {
		if ctxErr := errors.FromContext(ctx); ctxErr != nil {
			o.dropPending(text)
			return nil, ctxErr
		}
		slog.Warn("Abandoning turn", "game_id", o.gameID, "error", err)
		out := &Outcome{
			Status:  StatusAbandoned,
			Intents: []intents.Intent{intents.Narrative(turn.FallbackMessage)},
			Err:     err,
		}
		o.publish(ctx, working.Player, out.Intents)
		return out, nil
	}
	slog.Debug("Turn response parsed", "strategy", strategy, "payload", string(payload.Raw))

	applied, err := o.applier.Apply(ctx, &resolver.ApplyInput{State: working, Payload: payload})
	if err != nil {
		return o.fail(ctx, working.Player, err), nil
	}

	turnIntents := applied.Intents
	var evolutions []entities.EvolutionOption
	if applied.EvolutionReady {
		evolutions = o.offerEvolutions(ctx, working)
		if len(evolutions) > 0 {
			turnIntents = append(slices.Clone(turnIntents), evolutionNotice(working.Player.Level, evolutions))
		}
	}

	o.mu.Lock()
	o.state = working
	if applied.RecordNarrative {
		o.conversation = append(o.conversation, providers.Message{Role: providers.RoleAssistant, Content: string(payload.Raw)})
	}
	o.mu.Unlock()

	o.publish(ctx, working.Player, turnIntents)

	slog.Info("Turn applied",
		"game_id", o.gameID,
		"strategy", strategy,
		"in_battle", applied.InBattle,
		"intents", len(turnIntents))

	return &Outcome{
		Status:         StatusApplied,
		Intents:        turnIntents,
		Suggestions:    applied.Suggestions,
		InBattle:       applied.InBattle,
		EvolutionReady: applied.EvolutionReady,
		Evolutions:     evolutions,
	}, nil
}

// offerEvolutions generates the evolution options the first time the player
// becomes eligible. It returns nil when they were already offered.
func (o *orchestrator) offerEvolutions(ctx context.Context, state *entities.GameState) []entities.EvolutionOption {
	out, err := o.progression.EnsureEvolutions(ctx, &progression.EnsureEvolutionsInput{State: state})
	if err != nil {
		slog.Warn("Failed to generate evolution options", "game_id", o.gameID, "error", err)
		return nil
	}
	if !out.Generated {
		return nil
	}
	return out.Options
}

func evolutionNotice(level int, options []entities.EvolutionOption) intents.Intent {
	names := make([]string, len(options))
	for i, opt := range options {
		names[i] = opt.Name
	}
	return intents.System(fmt.Sprintf("You reached level %d and can now evolve: %s.", level, strings.Join(names, ", ")))
}

// submit routes attacks through the d20 roll before running the turn
func (o *orchestrator) submit(ctx context.Context, text string, silent bool) (*Outcome, error) {
	o.mu.Lock()
	attack := combat.IsAttack(o.state, text)
	o.mu.Unlock()

	roll := 0
	if attack {
		source := o.source()
		rolled, err := o.combat.RollForAction(ctx, &combat.RollForActionInput{
			GameID: o.gameID,
			Action: text,
			OnRoll: func(result int) {
				o.publish(ctx, source, []intents.Intent{intents.DiceRoll(result)})
			},
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll for action")
		}
		roll = rolled.Roll
		text = rolled.Text
	}

	out, err := o.RunTurn(ctx, &RunTurnInput{Text: text, Silent: silent})
	if err != nil {
		return nil, err
	}
	out.Roll = roll
	return out, nil
}

func (o *orchestrator) Submit(ctx context.Context, input *SubmitInput) (*Outcome, error) {
	if input == nil || strings.TrimSpace(input.Text) == "" {
		return nil, errors.InvalidArgument("text is required")
	}
	text := strings.TrimSpace(input.Text)

	o.StopAutoplay()

	o.mu.Lock()
	busy := o.busy
	o.mu.Unlock()
	if busy {
		return nil, errors.FailedPrecondition(errTurnInProgress)
	}

	if walkingPattern.MatchString(text) {
		o.publish(ctx, o.source(), []intents.Intent{intents.Sound(intents.SoundWalking)})
	}

	return o.submit(ctx, text, false)
}

func (o *orchestrator) StartAutoplay() {
	o.mu.Lock()
	o.autoplay = true
	o.mu.Unlock()
	slog.Info("Autoplay started", "game_id", o.gameID)
}

func (o *orchestrator) StopAutoplay() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.autoplay {
		o.autoplay = false
		slog.Info("Autoplay stopped", "game_id", o.gameID)
	}
}

func (o *orchestrator) Autoplaying() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.autoplay
}

// pause waits for narration to finish when speech is on, otherwise for the
// autoplay interval
func (o *orchestrator) pause(ctx context.Context) error {
	if o.media != nil && o.media.SpeechEnabled() {
		return o.media.WaitIdle(ctx)
	}
	if err := o.clock.Sleep(ctx, o.autoplayInterval); err != nil {
		if ctxErr := errors.FromContext(ctx); ctxErr != nil {
			return ctxErr
		}
		return errors.Wrap(err, "autoplay pause interrupted")
	}
	return nil
}

func (o *orchestrator) RunAutoplay(ctx context.Context, onOutcome func(*Outcome)) error {
	for o.Autoplaying() {
		out, err := o.RunTurn(ctx, &RunTurnInput{Text: prompts.ContinueStory, Silent: true})
		if err != nil {
			o.StopAutoplay()
			return err
		}
		if onOutcome != nil {
			onOutcome(out)
		}
		if out.Status == StatusFailed || !o.Autoplaying() {
			return nil
		}
		if err := o.pause(ctx); err != nil {
			o.StopAutoplay()
			return err
		}
	}
	return nil
}

// canUndo reports whether the conversation ends in a player then narrator
// pair. Callers hold mu.
func (o *orchestrator) canUndo() bool {
	n := len(o.conversation)
	return n >= 2 &&
		o.conversation[n-1].Role == providers.RoleAssistant &&
		o.conversation[n-2].Role == providers.RoleUser
}

func (o *orchestrator) Undo() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.busy {
		return errors.FailedPrecondition(errTurnInProgress)
	}
	if !o.canUndo() {
		return errors.FailedPrecondition(errNothingToUndo)
	}
	o.conversation = o.conversation[:len(o.conversation)-2]

	slog.Info("Undid last exchange", "game_id", o.gameID, "remaining", len(o.conversation))
	return nil
}

func (o *orchestrator) Regenerate(ctx context.Context, input *RegenerateInput) (*Outcome, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	o.StopAutoplay()

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errTurnInProgress)
	}
	i := input.Index
	if i < 1 || i >= len(o.conversation) ||
		o.conversation[i].Role != providers.RoleAssistant ||
		o.conversation[i-1].Role != providers.RoleUser {
		o.mu.Unlock()
		return nil, errors.InvalidArgumentf("entry %d is not a narrator reply to a player message", i)
	}
	prompt := o.conversation[i-1].Content
	o.conversation = o.conversation[:i-1]
	o.mu.Unlock()

	slog.Info("Regenerating turn", "game_id", o.gameID, "index", i)

	return o.submit(ctx, combat.StripRoll(prompt), prompt == prompts.ContinueStory)
}

func (o *orchestrator) EditNarrative(input *EditNarrativeInput) error {
	if input == nil || strings.TrimSpace(input.Narrative) == "" {
		return errors.InvalidArgument("narrative is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.busy {
		return errors.FailedPrecondition(errTurnInProgress)
	}
	i := input.Index
	if i < 0 || i >= len(o.conversation) || o.conversation[i].Role != providers.RoleAssistant {
		return errors.InvalidArgumentf("entry %d is not a narrator reply", i)
	}

	rewritten, err := turn.RewriteNarrative(o.conversation[i].Content, input.Narrative)
	if err != nil {
		return errors.Wrapf(err, "failed to edit entry %d", i)
	}
	o.conversation[i].Content = rewritten
	return nil
}

// mutate runs fn against a copy of the state under the turn guard and
// keeps the copy only when fn succeeds
func (o *orchestrator) mutate(ctx context.Context, fn func(state *entities.GameState) ([]intents.Intent, error)) error {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return errors.FailedPrecondition(errTurnInProgress)
	}
	o.busy = true
	working := o.state.Clone()
	o.mu.Unlock()
	defer o.release()

	list, err := fn(working)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.state = working
	o.mu.Unlock()

	o.publish(ctx, working.Player, list)
	return nil
}

func (o *orchestrator) LearnSkill(ctx context.Context, input *LearnSkillInput) (*progression.SpendSkillPointOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *progression.SpendSkillPointOutput
	err := o.mutate(ctx, func(state *entities.GameState) ([]intents.Intent, error) {
		var err error
		out, err = o.progression.SpendSkillPoint(ctx, &progression.SpendSkillPointInput{
			State:  state,
			Target: input.Target,
			Skill:  input.Skill,
			Racial: input.Racial,
		})
		if err != nil {
			return nil, err
		}
		return out.Intents, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Upgrade(ctx context.Context, input *UpgradeInput) (*progression.SpendUpgradePointOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *progression.SpendUpgradePointOutput
	err := o.mutate(ctx, func(state *entities.GameState) ([]intents.Intent, error) {
		var err error
		out, err = o.progression.SpendUpgradePoint(ctx, &progression.SpendUpgradePointInput{
			State:  state,
			Target: input.Target,
			Stat:   input.Stat,
		})
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Evolutions(ctx context.Context) (*progression.EnsureEvolutionsOutput, error) {
	var out *progression.EnsureEvolutionsOutput
	err := o.mutate(ctx, func(state *entities.GameState) ([]intents.Intent, error) {
		var err error
		out, err = o.progression.EnsureEvolutions(ctx, &progression.EnsureEvolutionsInput{State: state})
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Evolve(ctx context.Context, input *EvolveInput) (*progression.ChooseEvolutionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out *progression.ChooseEvolutionOutput
	err := o.mutate(ctx, func(state *entities.GameState) ([]intents.Intent, error) {
		var err error
		out, err = o.progression.ChooseEvolution(ctx, &progression.ChooseEvolutionInput{
			State: state,
			Name:  input.Name,
		})
		if err != nil {
			return nil, err
		}
		return out.Intents, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Equip(ctx context.Context, input *EquipInput) error {
	if input == nil || input.ItemID == "" {
		return errors.InvalidArgument("item ID is required")
	}
	return o.mutate(ctx, func(state *entities.GameState) ([]intents.Intent, error) {
		return nil, state.Equip(input.ItemID, input.Kind)
	})
}

func (o *orchestrator) Unequip(ctx context.Context, input *UnequipInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	return o.mutate(ctx, func(state *entities.GameState) ([]intents.Intent, error) {
		return nil, state.Unequip(input.Slot)
	})
}

func (o *orchestrator) RecentRolls(ctx context.Context, limit int) ([]dicesession.Roll, error) {
	out, err := o.combat.RecentRolls(ctx, &combat.RecentRollsInput{GameID: o.gameID, Limit: limit})
	if err != nil {
		return nil, err
	}
	return out.Rolls, nil
}

func (o *orchestrator) Snapshot() *Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &Snapshot{
		GameID:       o.gameID,
		Universe:     o.universe,
		State:        o.state.Clone(),
		Conversation: slices.Clone(o.conversation),
		Busy:         o.busy,
		Autoplaying:  o.autoplay,
		CanUndo:      o.canUndo(),
	}
}

func (o *orchestrator) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if o.saves == nil {
		return nil, errors.FailedPrecondition(errNoSaveBackend)
	}
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errTurnInProgress)
	}
	doc := savegame.New(o.state, o.conversation, o.clock.Now())
	doc.Universe = o.universe
	o.mu.Unlock()

	out, err := o.saves.Save(ctx, saves.SaveInput{Slot: input.Slot, Document: doc})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Slot)
	}

	slog.Info("Game saved", "game_id", o.gameID, "slot", input.Slot, "turns", out.Summary.Turns)
	return &SaveOutput{Summary: out.Summary}, nil
}

func (o *orchestrator) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if o.saves == nil {
		return nil, errors.FailedPrecondition(errNoSaveBackend)
	}
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	o.StopAutoplay()

	out, err := o.saves.Get(ctx, saves.GetInput{Slot: input.Slot})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load slot %s", input.Slot)
	}
	doc := out.Document

	var system string
	if doc.Universe != "" {
		if system, err = prompts.Narrator(prompts.NarratorData{Universe: doc.Universe}); err != nil {
			return nil, err
		}
	}
	state := doc.State()

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errTurnInProgress)
	}
	o.state = state
	o.conversation = slices.Clone(doc.Conversation)
	if system != "" {
		o.universe = doc.Universe
		o.system = system
	}
	o.mu.Unlock()

	replay := savegame.ReplayConversation(doc.Conversation)
	o.publish(ctx, state.Player, replay.Intents)

	slog.Info("Game loaded", "game_id", o.gameID, "slot", input.Slot, "messages", len(doc.Conversation))
	return &LoadOutput{Transcript: replay.Transcript}, nil
}
