package testutils

import (
	"github.com/KirkDiggler/rpg-narrator/internal/entities"
)

// NewTestPlayer returns a level 1 player with a small skill tree, one racial
// trait and a three-move class.
func NewTestPlayer() *entities.Player {
	return &entities.Player{
		HP:            100,
		MaxHP:         100,
		StatusEffects: entities.StatusEffects{},
		Level:         1,
		XP:            0,
		XPToNextLevel: 100,
		SkillPoints:   1,
		UpgradePoints: 0,
		BaseStats:     map[string]int{"Strength": 10, "Agility": 12, "Magic": 8},
		SkillTree: []entities.Skill{
			{Name: "Cleave", Description: "Strike all foes", Level: 1},
			{Name: "Whirlwind", Description: "Spin attack", Level: 3},
		},
		RacialSkills: []entities.RacialSkill{
			{Name: "Stoneskin", Description: "Hard as rock", Level: 1, Bonus: "+2 Strength"},
		},
		Class: &entities.Class{Name: "Warrior", Moveset: []string{"Slash", "Block", "Charge"}},
		Race:  &entities.Race{Name: "Dwarf", Stats: "Strength: 10, Agility: 12, Magic: 8"},
	}
}

// NewTestGameState wraps NewTestPlayer in a fresh state with derived stats
func NewTestGameState() *entities.GameState {
	state := entities.NewGameState(NewTestPlayer())
	state.RecalculateStats()
	return state
}

// NewTestEncounter returns a full-health encounter
func NewTestEncounter(id, name string, hp int) *entities.Encounter {
	return &entities.Encounter{
		ID:            id,
		Name:          name,
		HP:            hp,
		MaxHP:         hp,
		StatusEffects: entities.StatusEffects{},
	}
}

// NewTestPartyMember returns a level 1 companion
func NewTestPartyMember(id, name string, summon bool) *entities.PartyMember {
	return &entities.PartyMember{
		ID:            id,
		Name:          name,
		HP:            30,
		MaxHP:         30,
		Level:         1,
		XPToNextLevel: 100,
		SkillPoints:   1,
		Stats:         map[string]int{"Strength": 5},
		BaseStats:     map[string]int{"Strength": 5},
		Moveset:       []string{"Bite"},
		SkillTree:     []entities.Skill{{Name: "Howl", Level: 1}},
		IsSummon:      summon,
	}
}
