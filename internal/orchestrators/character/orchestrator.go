// Package character implements character creation: predefined or
// generated races and classes, and the starting game state.
package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-narrator/internal/catalog"
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/prompts"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	"github.com/KirkDiggler/rpg-narrator/internal/stats"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

// Service defines character creation operations
type Service interface {
	// ResolveRace returns a catalog race, generating unknown names
	ResolveRace(ctx context.Context, input *ResolveRaceInput) (*ResolveRaceOutput, error)

	// ResolveClass returns a catalog class, generating unknown names
	ResolveClass(ctx context.Context, input *ResolveClassInput) (*ResolveClassOutput, error)

	NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error)
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	Completion providers.CompletionProvider
	Catalog    *catalog.Catalog
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Completion == nil {
		vb.RequiredField("Completion")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

type orchestrator struct {
	completion providers.CompletionProvider
	catalog    *catalog.Catalog
}

// NewOrchestrator creates a new character orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		completion: cfg.Completion,
		catalog:    cfg.Catalog,
	}, nil
}

type generatedSkill struct {
	Name        turn.FlexString `json:"name"`
	Description turn.FlexString `json:"description"`
	Level       turn.FlexInt    `json:"level"`
	Bonus       turn.FlexString `json:"bonus"`
}

type generatedRace struct {
	Stats             turn.FlexStats   `json:"stats"`
	TraitsDescription turn.FlexString  `json:"traits_description"`
	RacialSkills      []generatedSkill `json:"racial_skills"`
}

type generatedClass struct {
	Moveset   turn.FlexList    `json:"moveset"`
	SkillTree []generatedSkill `json:"skill_tree"`
}

func (o *orchestrator) generate(ctx context.Context, system, name string, target any) error {
	raw, err := o.completion.Complete(ctx, []providers.Message{
		{Role: providers.RoleSystem, Content: system},
		{Role: providers.RoleUser, Content: name},
	}, providers.CompletionOptions{JSONMode: true})
	if err != nil {
		return errors.Wrapf(err, "failed to generate %s", name)
	}

	text := turn.StripFences(raw)
	if object, ok := turn.ExtractObject(text); ok {
		text = object
	}
	if err := json.Unmarshal([]byte(text), target); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "generated data for %s was not valid JSON", name)
	}
	return nil
}

// ResolveRace returns a catalog race, generating unknown names
func (o *orchestrator) ResolveRace(ctx context.Context, input *ResolveRaceInput) (*ResolveRaceOutput, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument("race name is required")
	}
	name := strings.TrimSpace(input.Name)

	if race, ok := o.catalog.Race(name); ok {
		return &ResolveRaceOutput{Race: race}, nil
	}

	system, err := prompts.Race(prompts.CreationData{Name: name})
	if err != nil {
		return nil, err
	}

	var gen generatedRace
	if err := o.generate(ctx, system, name, &gen); err != nil {
		return nil, err
	}

	vb := errors.NewValidationBuilder()
	if len(gen.Stats) == 0 {
		vb.RequiredField("stats")
	}
	errors.ValidateRequired("traits_description", gen.TraitsDescription.String(), vb)
	if err := vb.Build(); err != nil {
		return nil, errors.Wrapf(err, "generated race %s is incomplete", name)
	}

	race := &entities.Race{
		Name:              name,
		Stats:             stats.Format(gen.Stats),
		TraitsDescription: gen.TraitsDescription.String(),
	}
	for _, s := range gen.RacialSkills {
		if s.Name.String() == "" {
			continue
		}
		race.RacialSkills = append(race.RacialSkills, entities.RacialSkill{
			Name:        s.Name.String(),
			Description: s.Description.String(),
			Level:       int(s.Level),
			Bonus:       s.Bonus.String(),
		})
	}

	slog.Info("Generated race", "name", name, "racial_skills", len(race.RacialSkills))
	return &ResolveRaceOutput{Race: race, Generated: true}, nil
}

// ResolveClass returns a catalog class, generating unknown names
func (o *orchestrator) ResolveClass(ctx context.Context, input *ResolveClassInput) (*ResolveClassOutput, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument("class name is required")
	}
	name := strings.TrimSpace(input.Name)

	if class, ok := o.catalog.Class(name); ok {
		return &ResolveClassOutput{Class: class}, nil
	}

	system, err := prompts.Class(prompts.CreationData{Name: name})
	if err != nil {
		return nil, err
	}

	var gen generatedClass
	if err := o.generate(ctx, system, name, &gen); err != nil {
		return nil, err
	}

	moveset := gen.Moveset.Split()
	if len(moveset) == 0 {
		return nil, errors.InvalidArgumentf("generated class %s has no moveset", name)
	}

	class := &entities.Class{Name: name, Moveset: moveset}
	for _, s := range gen.SkillTree {
		if s.Name.String() == "" {
			continue
		}
		class.SkillTree = append(class.SkillTree, entities.Skill{
			Name:        s.Name.String(),
			Description: s.Description.String(),
			Level:       int(s.Level),
		})
	}
	slices.SortStableFunc(class.SkillTree, func(a, b entities.Skill) int { return a.Level - b.Level })

	slog.Info("Generated class", "name", name, "skills", len(class.SkillTree))
	return &ResolveClassOutput{Class: class, Generated: true}, nil
}

// NewGame builds the starting state for a race and class
func (o *orchestrator) NewGame(_ context.Context, input *NewGameInput) (*NewGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("universe", strings.TrimSpace(input.Universe), vb)
	if input.Race == nil || input.Race.Name == "" {
		vb.RequiredField("race")
	}
	if input.Class == nil || input.Class.Name == "" {
		vb.RequiredField("class")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	race := *input.Race
	race.RacialSkills = slices.Clone(input.Race.RacialSkills)
	class := *input.Class
	class.Moveset = slices.Clone(input.Class.Moveset)
	class.SkillTree = slices.Clone(input.Class.SkillTree)

	skillTree := slices.Clone(class.SkillTree)
	for i := range skillTree {
		skillTree[i].Unlocked = false
	}
	racialSkills := slices.Clone(race.RacialSkills)
	for i := range racialSkills {
		racialSkills[i].Unlocked = false
	}

	player := &entities.Player{
		HP:            entities.StartingHP,
		MaxHP:         entities.StartingHP,
		StatusEffects: entities.StatusEffects{},
		Level:         entities.StartingLevel,
		XPToNextLevel: entities.StartingXPToLevel,
		SkillPoints:   1,
		BaseStats:     stats.Parse(race.Stats),
		SkillTree:     skillTree,
		RacialSkills:  racialSkills,
		Class:         &class,
		Race:          &race,
	}
	state := entities.NewGameState(player)
	state.RecalculateStats()

	opening, err := prompts.Opening(prompts.OpeningData{
		Universe: strings.TrimSpace(input.Universe),
		Race:     race.Name,
		Class:    class.Name,
		Traits:   race.TraitsDescription,
		Stats:    race.Stats,
		Moveset:  strings.Join(class.Moveset, ", "),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("New game created", "race", race.Name, "class", class.Name, "universe", input.Universe)

	return &NewGameOutput{State: state, OpeningPrompt: opening}, nil
}
