package turn_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

func parse(t *testing.T, raw string) *turn.Payload {
	t.Helper()
	parser, err := turn.NewParser(&turn.ParserConfig{})
	require.NoError(t, err)
	payload, _, err := parser.Parse(context.Background(), raw)
	require.NoError(t, err)
	return payload
}

func TestPayloadFullDocument(t *testing.T) {
	payload := parse(t, `{
		"narrative": "You swing at the Goblin Scout.",
		"image_prompt": null,
		"location_type": "battle",
		"new_items": [{"name": "Potion", "quantity": 2, "description": "Heals", "icon_prompt": "red flask"}],
		"new_party_members": [],
		"items_used": [{"name": "Torch", "quantity": 1}],
		"party_members_left": [{"name": "Bob"}],
		"new_weapons": [],
		"new_armor": [],
		"new_rings": [{"name": "Band", "stats": "+1 Strength", "description": "Plain", "icon_prompt": "ring"}],
		"new_encounters": [],
		"encounter_updates": [{"name": "Goblin Scout", "damage_taken": 15, "status_applied": null}],
		"player_updates": {"damage_taken": 4, "healing_received": 0, "status_applied": "bleeding", "xp_gained": 0},
		"encounters_defeated": ["Rat"],
		"suggested_actions": ["Attack again", "Dodge", "Drink potion"],
		"sound_effect": null,
		"party_member_updates": [{"name": "Wolf", "xp_gained": 10}]
	}`)

	assert.Equal(t, "You swing at the Goblin Scout.", payload.Narrative)
	assert.Empty(t, payload.ImagePrompt)
	assert.Empty(t, payload.SoundEffect)
	require.Len(t, payload.NewItems, 1)
	assert.Equal(t, 2, int(payload.NewItems[0].Quantity))
	assert.NoError(t, payload.NewItems[0].Validate())
	assert.Equal(t, []string{"Bob"}, payload.PartyMembersLeft)
	require.Len(t, payload.NewRings, 1)
	require.Len(t, payload.EncounterUpdates, 1)
	assert.Equal(t, 15, int(payload.EncounterUpdates[0].DamageTaken))
	assert.Empty(t, payload.EncounterUpdates[0].StatusApplied)
	assert.Equal(t, 4, int(payload.PlayerUpdates.DamageTaken))
	assert.Equal(t, turn.FlexList{"bleeding"}, payload.PlayerUpdates.StatusApplied)
	assert.Equal(t, []string{"Rat"}, payload.EncountersDefeated)
	assert.Len(t, payload.SuggestedActions, 3)
	require.Len(t, payload.PartyMemberUpdates, 1)
	assert.Equal(t, 10, int(payload.PartyMemberUpdates[0].XPGained))
}

func TestPayloadToleratesWrongTypes(t *testing.T) {
	payload := parse(t, `{
		"narrative": "Still works",
		"new_items": "none",
		"items_used": [{"name": "Arrow", "quantity": "3"}, 42, {"name": "Bolt", "quantity": 1}],
		"player_updates": {"damage_taken": "7", "xp_gained": true},
		"encounters_defeated": [{"name": "Orc"}, "Troll", 5],
		"suggested_actions": "Run"
	}`)

	assert.Equal(t, "Still works", payload.Narrative)
	assert.Empty(t, payload.NewItems)
	require.Len(t, payload.ItemsUsed, 2)
	assert.Equal(t, 3, int(payload.ItemsUsed[0].Quantity))
	assert.Equal(t, "Bolt", payload.ItemsUsed[1].Name.String())
	assert.Equal(t, 7, int(payload.PlayerUpdates.DamageTaken))
	assert.Zero(t, int(payload.PlayerUpdates.XPGained))
	assert.Equal(t, []string{"Orc", "Troll"}, payload.EncountersDefeated)
	assert.Equal(t, []string{"Run"}, payload.SuggestedActions)
}

func TestFlexIntSaturates(t *testing.T) {
	payload := parse(t, `{
		"narrative": "A surge of power",
		"player_updates": {"healing_received": 1e20, "damage_taken": "1e20", "xp_gained": "1e400"},
		"encounter_updates": [{"name": "Orc", "damage_taken": -1e20}]
	}`)

	assert.Equal(t, math.MaxInt32, int(payload.PlayerUpdates.HealingReceived))
	assert.Equal(t, math.MaxInt32, int(payload.PlayerUpdates.DamageTaken))
	assert.Equal(t, math.MaxInt32, int(payload.PlayerUpdates.XPGained))
	require.Len(t, payload.EncounterUpdates, 1)
	assert.Equal(t, math.MinInt32, int(payload.EncounterUpdates[0].DamageTaken))
}

func TestNewPartyMemberDecoding(t *testing.T) {
	payload := parse(t, `{"new_party_members": [{
		"name": "Lyra",
		"hp": 40,
		"description": "Wise Wizard",
		"full_description": "An elf of many years.",
		"stats": "Intelligence: 16, Wisdom: 14",
		"moveset": "Fireball, Mage Armor",
		"icon_prompt": "elf wizard",
		"skill_tree": [{"name": "Blink", "description": "Teleport", "level": 2}, "oops"],
		"is_summon": false
	}]}`)

	require.Len(t, payload.NewPartyMembers, 1)
	m := payload.NewPartyMembers[0]
	assert.NoError(t, m.Validate())
	assert.Equal(t, turn.FlexStats{"Intelligence": 16, "Wisdom": 14}, m.Stats)
	assert.Equal(t, []string{"Fireball", "Mage Armor"}, m.Moveset.Split())
	assert.Nil(t, m.Level)
	assert.Nil(t, m.SkillPoints)
	require.Len(t, m.SkillTree, 1)
	assert.Equal(t, 2, int(m.SkillTree[0].Level))
}

func TestValidateRequiredFields(t *testing.T) {
	assert.Error(t, turn.NewItem{Name: "Potion", Quantity: 1}.Validate())
	assert.Error(t, turn.NewEncounter{Name: "Goblin", IconPrompt: "goblin"}.Validate())
	assert.NoError(t, turn.NewEncounter{Name: "Goblin", HP: 5, IconPrompt: "goblin"}.Validate())
	assert.Error(t, turn.NewGear{Name: "Sword", Description: "Sharp", IconPrompt: "sword"}.Validate())
	assert.Error(t, turn.ItemUsed{Name: "Torch"}.Validate())
	assert.Error(t, turn.NewPartyMember{Name: "Lyra"}.Validate())
}

func TestFlexStatsObject(t *testing.T) {
	payload := parse(t, `{"new_party_members": [{"name": "Rex", "stats": {"Strength": "12", "Speed": 9}}]}`)
	require.Len(t, payload.NewPartyMembers, 1)
	assert.Equal(t, turn.FlexStats{"Strength": 12, "Speed": 9}, payload.NewPartyMembers[0].Stats)
}

func TestExtractObjectIsGreedy(t *testing.T) {
	obj, ok := turn.ExtractObject(`x {"a": {"b": 1}} y }`)
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}} y }`, obj)

	_, ok = turn.ExtractObject("no braces")
	assert.False(t, ok)
}
