// Package resolver turns a decoded narrator response into game state
// changes and side-effect intents, and wraps the completion provider with
// the turn retry policy.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/progression"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	"github.com/KirkDiggler/rpg-narrator/internal/stats"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

// Applier applies decoded turns to a game state
type Applier interface {
	Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error)
}

// Config holds the dependencies for the applier. Images is optional;
// without it every new entity gets its fallback icon.
type Config struct {
	Progression progression.Service
	Combat      combat.Service
	Images      providers.ImageProvider
	IDs         *idgen.Set
	ImageStyle  string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.Combat == nil {
		vb.RequiredField("Combat")
	}
	if c.IDs == nil {
		vb.RequiredField("IDs")
	}

	return vb.Build()
}

type applier struct {
	progression progression.Service
	combat      combat.Service
	images      providers.ImageProvider
	ids         *idgen.Set
	style       string
}

// NewApplier creates a new turn applier
func NewApplier(cfg *Config) (Applier, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &applier{
		progression: cfg.Progression,
		combat:      cfg.Combat,
		images:      cfg.Images,
		ids:         cfg.IDs,
		style:       cfg.ImageStyle,
	}, nil
}

// DefeatXP is the experience granted for defeating an encounter
func DefeatXP(maxHP int) int {
	return maxHP/2 + 10
}

// Apply runs the update categories in a fixed order. Later steps depend on
// earlier ones: battle end is detected only after defeated encounters are
// removed. Malformed records are skipped individually and updates naming
// an absent member or encounter are ignored.
func (a *applier) Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error) {
	if input == nil || input.State == nil || input.State.Player == nil {
		return nil, errors.InvalidArgument("game state is required")
	}
	if input.Payload == nil {
		return nil, errors.InvalidArgument("payload is required")
	}

	state := input.State
	p := input.Payload
	out := &ApplyOutput{}

	wasInBattle := state.InBattle()

	if p.SoundEffect == intents.SoundPurchase {
		out.Intents = append(out.Intents, intents.Sound(p.SoundEffect))
	}
	if narrative := strings.TrimSpace(p.Narrative); narrative != "" {
		out.Intents = append(out.Intents, intents.Narrative(narrative))
		out.RecordNarrative = true
	}
	if prompt := strings.TrimSpace(p.ImagePrompt); prompt != "" {
		out.Intents = append(out.Intents, intents.SceneImage(prompt))
	}
	if location := strings.TrimSpace(p.LocationType); location != "" {
		out.Intents = append(out.Intents, intents.Music(location))
	}

	a.addItems(ctx, state, p.NewItems)
	a.addPartyMembers(ctx, state, p.NewPartyMembers)
	a.addGear(ctx, state, entities.GearKindWeapon, p.NewWeapons)
	a.addGear(ctx, state, entities.GearKindArmor, p.NewArmor)
	a.addGear(ctx, state, entities.GearKindRing, p.NewRings)
	a.addEncounters(ctx, state, p.NewEncounters)

	a.applyPlayerUpdates(ctx, state, p.PlayerUpdates, out)
	a.applyPartyMemberUpdates(ctx, state, p.PartyMemberUpdates, out)
	a.applyEncounterUpdates(state, p.EncounterUpdates)
	a.applyDefeated(ctx, state, p.EncountersDefeated, out)

	out.InBattle = state.InBattle()
	if wasInBattle && !out.InBattle {
		ended, err := a.combat.OnBattleEnd(ctx, &combat.OnBattleEndInput{State: state})
		if err != nil {
			slog.Warn("Battle end handling failed", "error", err)
		} else {
			out.Intents = append(out.Intents, ended.Intents...)
		}
	}

	for _, used := range p.ItemsUsed {
		if err := used.Validate(); err != nil {
			slog.Warn("Skipping incomplete used item", "error", err)
			continue
		}
		state.RemoveInventoryItem(used.Name.String(), int(used.Quantity))
	}

	for _, name := range p.PartyMembersLeft {
		if state.RemovePartyMember(name) == nil {
			slog.Debug("Departing party member not found", "name", name)
		}
	}

	out.Suggestions = suggestions(state, p.SuggestedActions, out.InBattle)
	labels := make([]string, 0, len(out.Suggestions))
	for _, s := range out.Suggestions {
		labels = append(labels, s.Label)
	}
	out.Intents = append(out.Intents, intents.Suggestions(labels, out.InBattle))

	return out, nil
}

func (a *applier) addItems(ctx context.Context, state *entities.GameState, items []turn.NewItem) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			slog.Warn("Skipping incomplete item", "error", err)
			continue
		}

		entry := entities.InventoryItem{
			Name:        item.Name.String(),
			Quantity:    int(item.Quantity),
			Description: item.Description.String(),
			IconPrompt:  item.IconPrompt.String(),
		}
		if state.FindInventoryItem(entry.Name) == nil {
			entry.IconURL = a.icon(ctx, entry.Name, providers.IconRequest(entry.IconPrompt, a.style), FallbackItemIcon)
		}
		state.AddInventoryItem(entry)
	}
}

func hasPartyMember(state *entities.GameState, name string) bool {
	for _, m := range state.Party {
		if strings.EqualFold(m.Name, name) {
			return true
		}
	}
	return false
}

func (a *applier) addPartyMembers(ctx context.Context, state *entities.GameState, members []turn.NewPartyMember) {
	for _, nm := range members {
		if err := nm.Validate(); err != nil {
			slog.Warn("Skipping incomplete party member", "error", err)
			continue
		}
		name := nm.Name.String()
		if hasPartyMember(state, name) {
			slog.Warn("Skipping duplicate party member", "name", name)
			continue
		}

		level, skillPoints := entities.StartingLevel, 1
		if nm.Level != nil && *nm.Level > 0 {
			level = int(*nm.Level)
		}
		if nm.SkillPoints != nil && *nm.SkillPoints >= 0 {
			skillPoints = int(*nm.SkillPoints)
		}

		tree := make([]entities.Skill, 0, len(nm.SkillTree))
		for _, s := range nm.SkillTree {
			if s.Name.String() == "" {
				continue
			}
			tree = append(tree, entities.Skill{
				Name:        s.Name.String(),
				Description: s.Description.String(),
				Level:       int(s.Level),
			})
		}

		member := &entities.PartyMember{
			ID:              a.ids.PartyMember.Generate(),
			Name:            name,
			Description:     nm.Description.String(),
			FullDescription: nm.FullDescription.String(),
			HP:              int(nm.HP),
			MaxHP:           int(nm.HP),
			Level:           level,
			XPToNextLevel:   entities.StartingXPToLevel,
			SkillPoints:     skillPoints,
			Stats:           stats.Clone(nm.Stats),
			BaseStats:       stats.Clone(nm.Stats),
			Moveset:         nm.Moveset.Split(),
			SkillTree:       tree,
			IsSummon:        nm.IsSummon,
			IconPrompt:      nm.IconPrompt.String(),
		}
		member.IconURL = a.icon(ctx, name, providers.AvatarRequest(member.IconPrompt, a.style), FallbackPartyIcon)

		if err := state.AddPartyMember(member); err != nil {
			slog.Warn("Skipping party member", "name", name, "error", err)
		}
	}
}

func (a *applier) gearID(kind entities.GearKind) string {
	switch kind {
	case entities.GearKindArmor:
		return a.ids.Armor.Generate()
	case entities.GearKindRing:
		return a.ids.Ring.Generate()
	default:
		return a.ids.Weapon.Generate()
	}
}

func (a *applier) addGear(ctx context.Context, state *entities.GameState, kind entities.GearKind, list []turn.NewGear) {
	for _, ng := range list {
		if err := ng.Validate(); err != nil {
			slog.Warn("Skipping incomplete gear", "kind", kind, "error", err)
			continue
		}

		gear := &entities.Gear{
			ID:          a.gearID(kind),
			Name:        ng.Name.String(),
			Stats:       ng.Stats.String(),
			Description: ng.Description.String(),
			IconPrompt:  ng.IconPrompt.String(),
		}
		gear.IconURL = a.icon(ctx, gear.Name, providers.IconRequest(gear.IconPrompt, a.style), FallbackGearIcon(kind))
		state.AddGear(kind, gear)
	}
}

func (a *applier) addEncounters(ctx context.Context, state *entities.GameState, list []turn.NewEncounter) {
	for _, ne := range list {
		if err := ne.Validate(); err != nil {
			slog.Warn("Skipping incomplete encounter", "error", err)
			continue
		}
		name := ne.Name.String()
		if state.FindEncounter(name) != nil {
			slog.Warn("Skipping duplicate encounter", "name", name)
			continue
		}

		enc := &entities.Encounter{
			ID:            a.ids.Encounter.Generate(),
			Name:          name,
			HP:            int(ne.HP),
			MaxHP:         int(ne.HP),
			StatusEffects: entities.StatusEffects{},
		}
		enc.IconURL = a.icon(ctx, name, providers.IconRequest(ne.IconPrompt.String(), a.style), FallbackEncounterIcon)

		if err := state.AddEncounter(enc); err != nil {
			slog.Warn("Skipping encounter", "name", name, "error", err)
		}
	}
}

func (a *applier) awardPlayerXP(ctx context.Context, state *entities.GameState, amount int, out *ApplyOutput) {
	res, err := a.progression.AwardPlayerXP(ctx, &progression.AwardPlayerXPInput{State: state, Amount: amount})
	if err != nil {
		slog.Warn("Failed to award player XP", "amount", amount, "error", err)
		return
	}
	out.Intents = append(out.Intents, res.Intents...)
	out.EvolutionReady = out.EvolutionReady || res.EvolutionReady
}

func (a *applier) applyPlayerUpdates(ctx context.Context, state *entities.GameState, u turn.PlayerUpdates, out *ApplyOutput) {
	pl := state.Player

	if u.DamageTaken != 0 {
		state.SetPlayerHP(pl.HP - int(u.DamageTaken))
	}
	if u.HealingReceived != 0 {
		state.SetPlayerHP(pl.HP + int(u.HealingReceived))
	}
	if u.XPGained > 0 {
		a.awardPlayerXP(ctx, state, int(u.XPGained), out)
	}
	for _, effect := range u.StatusApplied.Split() {
		state.AddStatusEffect(pl, effect)
	}
	for _, effect := range u.StatusRemoved.Split() {
		state.RemoveStatusEffect(pl, effect)
	}
}

func (a *applier) applyPartyMemberUpdates(ctx context.Context, state *entities.GameState, updates []turn.PartyMemberUpdate, out *ApplyOutput) {
	for _, u := range updates {
		name := u.Name.String()
		m := state.FindPartyMember(name)
		if m == nil {
			slog.Debug("Ignoring update for unknown party member", "name", name)
			continue
		}

		hp := m.HP - int(u.DamageTaken) + int(u.HealingReceived)
		state.SetPartyMemberHP(name, hp)

		if u.XPGained > 0 {
			res, err := a.progression.AwardPartyMemberXP(ctx, &progression.AwardPartyMemberXPInput{
				State:  state,
				Name:   name,
				Amount: int(u.XPGained),
			})
			if err != nil {
				slog.Warn("Failed to award party member XP", "name", name, "error", err)
				continue
			}
			out.Intents = append(out.Intents, res.Intents...)
		}
	}
}

func (a *applier) applyEncounterUpdates(state *entities.GameState, updates []turn.EncounterUpdate) {
	for _, u := range updates {
		name := u.Name.String()
		enc := state.FindEncounter(name)
		if enc == nil {
			slog.Debug("Ignoring update for unknown encounter", "name", name)
			continue
		}

		if u.DamageTaken != 0 {
			state.SetEncounterHP(name, enc.HP-int(u.DamageTaken))
		}
		for _, effect := range u.StatusApplied.Split() {
			state.AddStatusEffect(enc, effect)
		}
		for _, effect := range u.StatusRemoved.Split() {
			state.RemoveStatusEffect(enc, effect)
		}
	}
}

func (a *applier) applyDefeated(ctx context.Context, state *entities.GameState, names []string, out *ApplyOutput) {
	for _, name := range names {
		enc := state.RemoveEncounter(name)
		if enc == nil {
			slog.Debug("Ignoring defeat of unknown encounter", "name", name)
			continue
		}

		xp := DefeatXP(enc.MaxHP)
		a.awardPlayerXP(ctx, state, xp, out)
		out.Intents = append(out.Intents, intents.System(fmt.Sprintf("You defeated the %s and gained %d XP!", enc.Name, xp)))
	}
}

// suggestions offers the class moveset in battle and the narrator's
// suggestions otherwise, or when the class has no moves.
func suggestions(state *entities.GameState, suggested []string, inBattle bool) []Suggestion {
	var out []Suggestion
	if moves := state.Player.Moveset(); inBattle && len(moves) > 0 {
		for _, move := range moves {
			out = append(out, Suggestion{Label: move, Action: combat.MoveAction(move), Move: true})
		}
		return out
	}

	for _, action := range suggested {
		if action = strings.TrimSpace(action); action != "" {
			out = append(out, Suggestion{Label: action, Action: action})
		}
	}
	return out
}
