// Package progression implements experience, level ups, skill and stat
// spending, and class evolution.
package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/prompts"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	"github.com/KirkDiggler/rpg-narrator/internal/stats"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

const (
	// DefaultEvolutionLevel is the player level that unlocks evolution
	DefaultEvolutionLevel = 10

	// DefaultEvolutionOptions is how many paths are generated
	DefaultEvolutionOptions = 2

	// UpgradePointsPerLevel is granted to the player on each level up
	UpgradePointsPerLevel = 3

	xpGrowthNumerator   = 3
	xpGrowthDenominator = 2
)

// Service defines progression operations on a game state
type Service interface {
	AwardPlayerXP(ctx context.Context, input *AwardPlayerXPInput) (*AwardPlayerXPOutput, error)
	AwardPartyMemberXP(ctx context.Context, input *AwardPartyMemberXPInput) (*AwardPartyMemberXPOutput, error)
	SpendSkillPoint(ctx context.Context, input *SpendSkillPointInput) (*SpendSkillPointOutput, error)
	SpendUpgradePoint(ctx context.Context, input *SpendUpgradePointInput) (*SpendUpgradePointOutput, error)
	EnsureEvolutions(ctx context.Context, input *EnsureEvolutionsInput) (*EnsureEvolutionsOutput, error)
	ChooseEvolution(ctx context.Context, input *ChooseEvolutionInput) (*ChooseEvolutionOutput, error)
}

// Config holds the dependencies for the progression orchestrator
type Config struct {
	Completion       providers.CompletionProvider
	EvolutionLevel   int
	EvolutionOptions int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Completion == nil {
		vb.RequiredField("Completion")
	}
	if c.EvolutionLevel < 0 {
		vb.Field("EvolutionLevel", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	completion       providers.CompletionProvider
	evolutionLevel   int
	evolutionOptions int
}

// NewOrchestrator creates a new progression orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		completion:       cfg.Completion,
		evolutionLevel:   cfg.EvolutionLevel,
		evolutionOptions: cfg.EvolutionOptions,
	}
	if o.evolutionLevel == 0 {
		o.evolutionLevel = DefaultEvolutionLevel
	}
	if o.evolutionOptions <= 0 {
		o.evolutionOptions = DefaultEvolutionOptions
	}
	return o, nil
}

func nextThreshold(current int) int {
	if current <= 0 {
		return entities.StartingXPToLevel
	}
	return current * xpGrowthNumerator / xpGrowthDenominator
}

func requireState(state *entities.GameState) error {
	if state == nil || state.Player == nil {
		return errors.InvalidArgument("game state is required")
	}
	return nil
}

func (o *orchestrator) evolutionReady(p *entities.Player) bool {
	return p.Level >= o.evolutionLevel && p.Evolution == ""
}

// AwardPlayerXP adds experience and applies every level up it pays for,
// one message per level.
func (o *orchestrator) AwardPlayerXP(_ context.Context, input *AwardPlayerXPInput) (*AwardPlayerXPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireState(input.State); err != nil {
		return nil, err
	}

	p := input.State.Player
	output := &AwardPlayerXPOutput{}
	if input.Amount <= 0 {
		output.EvolutionReady = o.evolutionReady(p)
		return output, nil
	}

	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = entities.StartingXPToLevel
	}

	p.XP += input.Amount
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = nextThreshold(p.XPToNextLevel)
		p.SkillPoints++
		p.UpgradePoints += UpgradePointsPerLevel
		output.LevelsGained++
		output.Intents = append(output.Intents, intents.System(fmt.Sprintf(
			"LEVEL UP! You are now level %d. You have gained a skill point and %d upgrade points!",
			p.Level, UpgradePointsPerLevel)))
	}

	if output.LevelsGained > 0 {
		slog.Info("Player leveled up", "level", p.Level, "levels_gained", output.LevelsGained)
	}

	output.EvolutionReady = o.evolutionReady(p)
	return output, nil
}

// AwardPartyMemberXP adds experience to a non-summon party member
func (o *orchestrator) AwardPartyMemberXP(_ context.Context, input *AwardPartyMemberXPInput) (*AwardPartyMemberXPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireState(input.State); err != nil {
		return nil, err
	}

	m := input.State.FindPartyMember(input.Name)
	if m == nil {
		return nil, errors.NotFoundf("party member %q not found", input.Name)
	}

	output := &AwardPartyMemberXPOutput{}
	if input.Amount <= 0 || m.IsSummon {
		return output, nil
	}

	if m.XPToNextLevel <= 0 {
		m.XPToNextLevel = entities.StartingXPToLevel
	}

	m.XP += input.Amount
	for m.XP >= m.XPToNextLevel {
		m.XP -= m.XPToNextLevel
		m.Level++
		m.XPToNextLevel = nextThreshold(m.XPToNextLevel)
		m.SkillPoints++
		output.LevelsGained++
		output.Intents = append(output.Intents, intents.System(fmt.Sprintf(
			"%s has reached level %d and gained a skill point!", m.Name, m.Level)))
	}

	return output, nil
}

func findSkill(tree []entities.Skill, name string) int {
	for i := range tree {
		if strings.EqualFold(tree[i].Name, strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func checkUnlock(name string, unlocked bool, required, level, points int) error {
	switch {
	case unlocked:
		return errors.FailedPreconditionf("%s is already unlocked", name)
	case points < 1:
		return errors.FailedPrecondition("not enough skill points").WithMeta("skill", name)
	case level < required:
		return errors.FailedPreconditionf("%s requires level %d", name, required).
			WithMeta("level", level)
	}
	return nil
}

// SpendSkillPoint unlocks a class skill, racial skill or party member skill
func (o *orchestrator) SpendSkillPoint(_ context.Context, input *SpendSkillPointInput) (*SpendSkillPointOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireState(input.State); err != nil {
		return nil, err
	}

	if input.Target != "" {
		return o.spendMemberSkillPoint(input)
	}

	p := input.State.Player

	if input.Racial {
		idx := -1
		for i := range p.RacialSkills {
			if strings.EqualFold(p.RacialSkills[i].Name, strings.TrimSpace(input.Skill)) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errors.NotFoundf("racial skill %q not found", input.Skill)
		}
		rs := &p.RacialSkills[idx]
		if err := checkUnlock(rs.Name, rs.Unlocked, rs.Level, p.Level, p.SkillPoints); err != nil {
			return nil, err
		}
		rs.Unlocked = true
		p.SkillPoints--
		input.State.RecalculateStats()

		return &SpendSkillPointOutput{Intents: []intents.Intent{
			intents.System(fmt.Sprintf("You have unlocked the racial trait: %s!", rs.Name)),
		}}, nil
	}

	idx := findSkill(p.SkillTree, input.Skill)
	if idx < 0 {
		return nil, errors.NotFoundf("skill %q not found", input.Skill)
	}
	skill := &p.SkillTree[idx]
	if err := checkUnlock(skill.Name, skill.Unlocked, skill.Level, p.Level, p.SkillPoints); err != nil {
		return nil, err
	}
	skill.Unlocked = true
	p.SkillPoints--
	p.AppendMove(skill.Name)
	input.State.RecalculateStats()

	return &SpendSkillPointOutput{Intents: []intents.Intent{
		intents.System(fmt.Sprintf("You have learned the skill: %s!", skill.Name)),
	}}, nil
}

func (o *orchestrator) spendMemberSkillPoint(input *SpendSkillPointInput) (*SpendSkillPointOutput, error) {
	m := input.State.FindPartyMember(input.Target)
	if m == nil {
		return nil, errors.NotFoundf("party member %q not found", input.Target)
	}

	idx := findSkill(m.SkillTree, input.Skill)
	if idx < 0 {
		return nil, errors.NotFoundf("skill %q not found for %s", input.Skill, m.Name)
	}
	skill := &m.SkillTree[idx]
	if err := checkUnlock(skill.Name, skill.Unlocked, skill.Level, m.Level, m.SkillPoints); err != nil {
		return nil, err
	}
	skill.Unlocked = true
	m.SkillPoints--
	m.AppendMove(skill.Name)

	return &SpendSkillPointOutput{Intents: []intents.Intent{
		intents.System(fmt.Sprintf("%s has learned the skill: %s!", m.Name, skill.Name)),
	}}, nil
}

// SpendUpgradePoint raises one base stat by one point
func (o *orchestrator) SpendUpgradePoint(_ context.Context, input *SpendUpgradePointInput) (*SpendUpgradePointOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireState(input.State); err != nil {
		return nil, err
	}

	if input.Target != "" {
		m := input.State.FindPartyMember(input.Target)
		if m == nil {
			return nil, errors.NotFoundf("party member %q not found", input.Target)
		}
		if m.SkillPoints < 1 {
			return nil, errors.FailedPreconditionf("%s has no skill points", m.Name)
		}
		if m.BaseStats == nil {
			m.BaseStats = stats.Clone(m.Stats)
		}
		key, ok := stats.FindKey(m.BaseStats, input.Stat)
		if !ok {
			return nil, errors.InvalidArgumentf("%s has no stat %q", m.Name, input.Stat)
		}
		m.SkillPoints--
		m.BaseStats[key]++
		if m.Stats == nil {
			m.Stats = map[string]int{}
		}
		m.Stats[key]++
		return &SpendUpgradePointOutput{Stat: key, Value: m.BaseStats[key]}, nil
	}

	p := input.State.Player
	if p.UpgradePoints < 1 {
		return nil, errors.FailedPrecondition("no upgrade points available")
	}
	key, ok := stats.FindKey(p.BaseStats, input.Stat)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown stat %q", input.Stat)
	}
	p.UpgradePoints--
	p.BaseStats[key]++
	input.State.RecalculateStats()

	return &SpendUpgradePointOutput{Stat: key, Value: p.BaseStats[key]}, nil
}

type evolutionResponse struct {
	Evolutions []entities.EvolutionOption `json:"evolutions"`
}

// EnsureEvolutions returns the player's evolution options, generating them
// the first time the player is eligible. Generated options are cached on
// the player and never regenerated.
func (o *orchestrator) EnsureEvolutions(ctx context.Context, input *EnsureEvolutionsInput) (*EnsureEvolutionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireState(input.State); err != nil {
		return nil, err
	}

	p := input.State.Player
	if !o.evolutionReady(p) {
		return &EnsureEvolutionsOutput{}, nil
	}
	if len(p.AvailableEvolutions) > 0 {
		return &EnsureEvolutionsOutput{Eligible: true, Options: p.AvailableEvolutions}, nil
	}

	className := "Adventurer"
	if p.Class != nil && p.Class.Name != "" {
		className = p.Class.Name
	}

	system, err := prompts.Evolution(prompts.EvolutionData{
		Class: className,
		Level: p.Level,
		Count: o.evolutionOptions,
	})
	if err != nil {
		return nil, err
	}

	raw, err := o.completion.Complete(ctx, []providers.Message{
		{Role: providers.RoleSystem, Content: system},
		{Role: providers.RoleUser, Content: fmt.Sprintf("Generate evolutions for %s.", className)},
	}, providers.CompletionOptions{JSONMode: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate evolution options")
	}

	options, err := decodeEvolutions(raw)
	if err != nil {
		return nil, err
	}

	p.AvailableEvolutions = options
	slog.Info("Generated evolution options", "class", className, "count", len(options))

	return &EnsureEvolutionsOutput{Eligible: true, Generated: true, Options: options}, nil
}

func decodeEvolutions(raw string) ([]entities.EvolutionOption, error) {
	text := turn.StripFences(raw)
	if object, ok := turn.ExtractObject(text); ok {
		text = object
	}

	var resp evolutionResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "evolution options were not valid JSON")
	}

	var out []entities.EvolutionOption
	for _, opt := range resp.Evolutions {
		if strings.TrimSpace(opt.Name) == "" {
			continue
		}
		out = append(out, opt)
	}
	if len(out) == 0 {
		return nil, errors.Unavailable("no evolution options were generated")
	}
	return out, nil
}

// ChooseEvolution applies an evolution permanently
func (o *orchestrator) ChooseEvolution(_ context.Context, input *ChooseEvolutionInput) (*ChooseEvolutionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireState(input.State); err != nil {
		return nil, err
	}

	p := input.State.Player
	if p.Evolution != "" {
		return nil, errors.FailedPreconditionf("already evolved into %s", p.Evolution)
	}
	if p.Level < o.evolutionLevel {
		return nil, errors.FailedPreconditionf("evolution requires level %d", o.evolutionLevel)
	}

	var chosen *entities.EvolutionOption
	for i := range p.AvailableEvolutions {
		if strings.EqualFold(p.AvailableEvolutions[i].Name, strings.TrimSpace(input.Name)) {
			chosen = &p.AvailableEvolutions[i]
			break
		}
	}
	if chosen == nil {
		return nil, errors.NotFoundf("evolution %q is not available", input.Name)
	}

	p.Evolution = chosen.Name
	for _, bonus := range chosen.Bonuses {
		if skill, ok := stats.UnlockedSkill(bonus); ok {
			p.AppendMove(skill)
			continue
		}
		stats.ApplyBonusString(bonus, p.BaseStats)
	}
	input.State.RecalculateStats()

	slog.Info("Player evolved", "evolution", p.Evolution)

	return &ChooseEvolutionOutput{
		Evolution: p.Evolution,
		Intents:   []intents.Intent{intents.System(fmt.Sprintf("You have evolved into a %s!", p.Evolution))},
	}, nil
}
