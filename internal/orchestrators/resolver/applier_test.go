package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/progression"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	providersmock "github.com/KirkDiggler/rpg-narrator/internal/providers/mock"
	"github.com/KirkDiggler/rpg-narrator/internal/testutils"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

type fixedRoller struct{}

func (fixedRoller) Roll(int) (int, error)         { return 10, nil }
func (fixedRoller) RollN(n, _ int) ([]int, error) { return make([]int, n), nil }

type ApplierTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockImages *providersmock.MockImageProvider
	applier    Applier
	state      *entities.GameState
	ctx        context.Context
}

func (s *ApplierTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockImages = providersmock.NewMockImageProvider(s.ctrl)

	prog, err := progression.NewOrchestrator(&progression.Config{
		Completion: providersmock.NewMockCompletionProvider(s.ctrl),
	})
	s.Require().NoError(err)

	cmb, err := combat.NewOrchestrator(&combat.Config{
		Roller: fixedRoller{},
		Clock:  clock.NewFixed(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)

	a, err := NewApplier(&Config{
		Progression: prog,
		Combat:      cmb,
		Images:      s.mockImages,
		IDs:         idgen.NewSequentialSet(),
		ImageStyle:  "pixel",
	})
	s.Require().NoError(err)
	s.applier = a

	s.state = testutils.NewTestGameState()
	s.ctx = context.Background()
}

func (s *ApplierTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestApplierSuite(t *testing.T) {
	suite.Run(t, new(ApplierTestSuite))
}

func (s *ApplierTestSuite) apply(p *turn.Payload) *ApplyOutput {
	out, err := s.applier.Apply(s.ctx, &ApplyInput{State: s.state, Payload: p})
	s.Require().NoError(err)
	return out
}

func kinds(list []intents.Intent) []intents.Kind {
	var out []intents.Kind
	for _, in := range list {
		out = append(out, in.Kind)
	}
	return out
}

func messages(list []intents.Intent) []string {
	var out []string
	for _, in := range intents.Messages(list) {
		out = append(out, in.Text)
	}
	return out
}

func (s *ApplierTestSuite) TestNewApplier_Validation() {
	_, err := NewApplier(&Config{})
	s.Error(err)

	_, err = NewApplier(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ApplierTestSuite) TestApply_RequiresPayload() {
	_, err := s.applier.Apply(s.ctx, &ApplyInput{State: s.state})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ApplierTestSuite) TestApply_PresentationIntents() {
	out := s.apply(&turn.Payload{
		Narrative:        "  You enter the tavern.  ",
		ImagePrompt:      "a smoky tavern",
		LocationType:     "tavern",
		SoundEffect:      "purchase",
		SuggestedActions: []string{"Order an ale", " ", "Talk to the barkeep"},
	})

	s.True(out.RecordNarrative)
	s.False(out.InBattle)
	s.Equal([]intents.Kind{
		intents.KindSound,
		intents.KindMessage,
		intents.KindSceneImage,
		intents.KindMusic,
		intents.KindSuggestions,
	}, kinds(out.Intents))
	s.Equal("You enter the tavern.", out.Intents[1].Text)
	s.Equal("a smoky tavern", out.Intents[2].Prompt)
	s.Equal("tavern", out.Intents[3].LocationType)

	s.Equal([]Suggestion{
		{Label: "Order an ale", Action: "Order an ale"},
		{Label: "Talk to the barkeep", Action: "Talk to the barkeep"},
	}, out.Suggestions)
}

func (s *ApplierTestSuite) TestApply_EmptyNarrativeIsNotRecorded() {
	out := s.apply(&turn.Payload{Narrative: "   ", SoundEffect: "explosion"})

	s.False(out.RecordNarrative)
	s.Equal([]intents.Kind{intents.KindSuggestions}, kinds(out.Intents))
}

func (s *ApplierTestSuite) TestApply_NewItemsMergeWithoutNewIcon() {
	s.mockImages.EXPECT().
		Generate(s.ctx, providers.ImageRequest{
			Prompt:      "a torch, 8-bit pixel art icon, simple, white background",
			AspectRatio: providers.AspectSquare,
		}).
		Return("https://img/torch.png", nil).
		Times(1)

	s.apply(&turn.Payload{NewItems: []turn.NewItem{
		{Name: "Torch", Quantity: 2, Description: "Lights the way", IconPrompt: "a torch"},
		{Name: "torch", Quantity: 3, Description: "Lights the way", IconPrompt: "a torch"},
		{Name: "Rope", Quantity: 1, Description: "", IconPrompt: "rope"},
	}})

	s.Require().Len(s.state.Inventory, 1)
	s.Equal("Torch", s.state.Inventory[0].Name)
	s.Equal(5, s.state.Inventory[0].Quantity)
	s.Equal("https://img/torch.png", s.state.Inventory[0].IconURL)
}

func (s *ApplierTestSuite) TestApply_IconFailureUsesFallback() {
	s.mockImages.EXPECT().
		Generate(s.ctx, gomock.Any()).
		Return("", errors.Unavailable("image service down")).
		Times(4)

	s.apply(&turn.Payload{
		NewWeapons: []turn.NewGear{{Name: "Sword", Stats: "+2 Strength", Description: "Sharp", IconPrompt: "sword"}},
		NewArmor:   []turn.NewGear{{Name: "Mail", Stats: "+1 Agility", Description: "Heavy", IconPrompt: "mail"}},
		NewRings:   []turn.NewGear{{Name: "Band", Stats: "+1 Magic", Description: "Shiny", IconPrompt: "ring"}},
		NewEncounters: []turn.NewEncounter{
			{Name: "Goblin", HP: 20, IconPrompt: "goblin"},
		},
	})

	s.Require().Len(s.state.Weapons, 1)
	s.Equal(FallbackWeaponIcon, s.state.Weapons[0].IconURL)
	s.Equal("weapon_1", s.state.Weapons[0].ID)
	s.Equal(FallbackArmorIcon, s.state.Armors[0].IconURL)
	s.Equal(FallbackRingIcon, s.state.Rings[0].IconURL)
	s.Require().Len(s.state.Encounters, 1)
	s.Equal(FallbackEncounterIcon, s.state.Encounters[0].IconURL)
	s.Equal(20, s.state.Encounters[0].MaxHP)
}

func (s *ApplierTestSuite) TestApply_NewPartyMembers() {
	s.mockImages.EXPECT().
		Generate(s.ctx, providers.ImageRequest{
			Prompt:      "a grey wolf, 8-bit pixel art character avatar",
			AspectRatio: providers.AspectSquare,
		}).
		Return("https://img/wolf.png", nil)

	level := turn.FlexInt(2)
	s.apply(&turn.Payload{NewPartyMembers: []turn.NewPartyMember{
		{
			Name:            "Wolf",
			Description:     "Loyal beast",
			FullDescription: "A grey wolf that follows you.",
			Stats:           turn.FlexStats{"Strength": 6, "Agility": 9},
			Moveset:         turn.FlexList{"Bite, Howl"},
			IconPrompt:      "a grey wolf",
			HP:              25,
			Level:           &level,
			SkillTree:       []turn.NewSkill{{Name: "Pounce", Level: 3}, {Name: ""}},
		},
		{Name: "Nameless"},
	}})

	s.Require().Len(s.state.Party, 1)
	m := s.state.Party[0]
	s.Equal("party_1", m.ID)
	s.Equal(25, m.HP)
	s.Equal(25, m.MaxHP)
	s.Equal(2, m.Level)
	s.Equal(1, m.SkillPoints)
	s.Equal([]string{"Bite", "Howl"}, m.Moveset)
	s.Equal(9, m.BaseStats["Agility"])
	s.Require().Len(m.SkillTree, 1)
	s.False(m.SkillTree[0].Unlocked)
	s.Equal("https://img/wolf.png", m.IconURL)
}

func (s *ApplierTestSuite) TestApply_DuplicatesSkipped() {
	s.Require().NoError(s.state.AddEncounter(testutils.NewTestEncounter("e1", "Goblin", 20)))
	s.Require().NoError(s.state.AddPartyMember(testutils.NewTestPartyMember("p1", "Wolf", false)))

	s.apply(&turn.Payload{
		NewEncounters: []turn.NewEncounter{{Name: "Goblin", HP: 50, IconPrompt: "goblin"}},
		NewPartyMembers: []turn.NewPartyMember{{
			Name: "wolf", Description: "d", FullDescription: "f", Stats: turn.FlexStats{"Strength": 1},
			Moveset: turn.FlexList{"Bite"}, IconPrompt: "wolf", HP: 10,
		}},
	})

	s.Len(s.state.Encounters, 1)
	s.Equal(20, s.state.Encounters[0].MaxHP)
	s.Len(s.state.Party, 1)
}

func (s *ApplierTestSuite) TestApply_PlayerUpdates() {
	s.state.Player.HP = 50

	out := s.apply(&turn.Payload{PlayerUpdates: turn.PlayerUpdates{
		DamageTaken:     80,
		HealingReceived: 10,
		XPGained:        120,
		StatusApplied:   turn.FlexList{"Poisoned, Burning"},
		StatusRemoved:   turn.FlexList{"burning"},
	}})

	p := s.state.Player
	s.Equal(10, p.HP, "damage clamps at zero before healing applies")
	s.Equal(2, p.Level)
	s.Equal(entities.StatusEffects{"poisoned"}, p.StatusEffects)
	s.Contains(messages(out.Intents), "LEVEL UP! You are now level 2. You have gained a skill point and 3 upgrade points!")
}

func (s *ApplierTestSuite) TestApply_HealingClampsAtMax() {
	s.state.Player.HP = 95

	s.apply(&turn.Payload{PlayerUpdates: turn.PlayerUpdates{HealingReceived: 50}})

	s.Equal(100, s.state.Player.HP)
}

func (s *ApplierTestSuite) TestApply_HugeHealingStillClamps() {
	parser, err := turn.NewParser(&turn.ParserConfig{})
	s.Require().NoError(err)
	payload, _, err := parser.Parse(s.ctx, `{"narrative":"Light pours over you.","player_updates":{"healing_received":1e20}}`)
	s.Require().NoError(err)

	s.state.Player.HP = 50
	s.apply(payload)

	s.Equal(100, s.state.Player.HP)
}

func (s *ApplierTestSuite) TestApply_PartyMemberUpdates() {
	s.Require().NoError(s.state.AddPartyMember(testutils.NewTestPartyMember("p1", "Wolf", false)))

	out := s.apply(&turn.Payload{PartyMemberUpdates: []turn.PartyMemberUpdate{
		{Name: "Wolf", DamageTaken: 12, HealingReceived: 2, XPGained: 100},
		{Name: "Ghost", DamageTaken: 99},
		{Name: "wolf", DamageTaken: 99},
	}})

	m := s.state.FindPartyMember("Wolf")
	s.Equal(20, m.HP)
	s.Equal(2, m.Level)
	s.Equal([]string{"Wolf has reached level 2 and gained a skill point!"}, messages(out.Intents))
}

func (s *ApplierTestSuite) TestApply_EncounterUpdates() {
	s.Require().NoError(s.state.AddEncounter(testutils.NewTestEncounter("e1", "Goblin", 20)))

	out := s.apply(&turn.Payload{EncounterUpdates: []turn.EncounterUpdate{
		{Name: "Goblin", DamageTaken: 25, StatusApplied: turn.FlexList{"Stunned"}},
		{Name: "Dragon", DamageTaken: 5},
	}})

	enc := s.state.FindEncounter("Goblin")
	s.Equal(0, enc.HP)
	s.True(enc.StatusEffects.Has("stunned"))
	s.True(out.InBattle, "an encounter at zero HP stays until defeated")
}

func (s *ApplierTestSuite) TestApply_DefeatEndsBattleAndDismissesSummons() {
	s.Require().NoError(s.state.AddEncounter(testutils.NewTestEncounter("e1", "Orc", 40)))
	s.Require().NoError(s.state.AddPartyMember(testutils.NewTestPartyMember("p1", "Skeleton", true)))

	out := s.apply(&turn.Payload{
		Narrative:          "The orc falls.",
		EncountersDefeated: []string{"Orc", "Ghost"},
		SuggestedActions:   []string{"Loot the body"},
	})

	s.Empty(s.state.Encounters)
	s.Empty(s.state.Summons())
	s.False(out.InBattle)
	s.Equal(30, s.state.Player.XP)
	s.Equal([]string{
		"The orc falls.",
		"You defeated the Orc and gained 30 XP!",
		combat.BattleEndMessage,
	}, messages(out.Intents))
	s.Equal([]Suggestion{{Label: "Loot the body", Action: "Loot the body"}}, out.Suggestions)
}

func (s *ApplierTestSuite) TestApply_NoBattleEndWhileEncountersRemain() {
	s.Require().NoError(s.state.AddEncounter(testutils.NewTestEncounter("e1", "Orc", 40)))
	s.Require().NoError(s.state.AddEncounter(testutils.NewTestEncounter("e2", "Troll", 60)))
	s.Require().NoError(s.state.AddPartyMember(testutils.NewTestPartyMember("p1", "Skeleton", true)))

	out := s.apply(&turn.Payload{EncountersDefeated: []string{"Orc"}})

	s.True(out.InBattle)
	s.Len(s.state.Summons(), 1)
	s.Equal([]Suggestion{
		{Label: "Slash", Action: "I use my Slash attack.", Move: true},
		{Label: "Block", Action: "I use my Block attack.", Move: true},
		{Label: "Charge", Action: "I use my Charge attack.", Move: true},
	}, out.Suggestions)
	last := out.Intents[len(out.Intents)-1]
	s.Equal(intents.KindSuggestions, last.Kind)
	s.True(last.InBattle)
	s.Equal([]string{"Slash", "Block", "Charge"}, last.Actions)
}

func (s *ApplierTestSuite) TestApply_SummonsStayOutsideBattle() {
	s.Require().NoError(s.state.AddPartyMember(testutils.NewTestPartyMember("p1", "Skeleton", true)))

	out := s.apply(&turn.Payload{Narrative: "Quiet."})

	s.Len(s.state.Summons(), 1)
	s.NotContains(messages(out.Intents), combat.BattleEndMessage)
}

func (s *ApplierTestSuite) TestApply_ItemsUsedAndMembersLeaving() {
	s.state.AddInventoryItem(entities.InventoryItem{Name: "Potion", Quantity: 2})
	s.Require().NoError(s.state.AddPartyMember(testutils.NewTestPartyMember("p1", "Wolf", false)))

	s.apply(&turn.Payload{
		ItemsUsed:        []turn.ItemUsed{{Name: "potion", Quantity: 1}, {Name: "Elixir", Quantity: 1}, {Name: "Potion"}},
		PartyMembersLeft: []string{"WOLF", "Nobody"},
	})

	s.Require().Len(s.state.Inventory, 1)
	s.Equal(1, s.state.Inventory[0].Quantity)
	s.Empty(s.state.Party)
}

func (s *ApplierTestSuite) TestApply_EvolutionReady() {
	s.state.Player.Level = 9
	s.state.Player.XP = 90

	out := s.apply(&turn.Payload{PlayerUpdates: turn.PlayerUpdates{XPGained: 10}})

	s.Equal(10, s.state.Player.Level)
	s.True(out.EvolutionReady)
}

func (s *ApplierTestSuite) TestApply_FromModelJSON() {
	parser, err := turn.NewParser(&turn.ParserConfig{})
	s.Require().NoError(err)

	s.mockImages.EXPECT().Generate(s.ctx, gomock.Any()).Return("https://img/rat.png", nil)

	payload, strategy, err := parser.Parse(s.ctx, "Sure! ```json\n"+`{
		"narrative": "A rat attacks!",
		"new_encounters": [{"name": "Rat", "hp": "8", "icon_prompt": "a rat"}],
		"player_updates": {"damage_taken": 3, "status_applied": "bitten"},
		"suggested_actions": ["Run"]
	}`+"\n```")
	s.Require().NoError(err)
	s.Equal(turn.StrategyExtraction, strategy)

	out := s.apply(payload)

	s.True(out.InBattle)
	s.Equal(97, s.state.Player.HP)
	s.True(s.state.Player.StatusEffects.Has("bitten"))
	s.Equal("https://img/rat.png", s.state.Encounters[0].IconURL)
	s.Equal("Slash", out.Suggestions[0].Label)
}
