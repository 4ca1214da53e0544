package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-narrator/internal/stats"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Human", "Elf", "Dwarf"}, c.RaceNames())
	assert.Equal(t, []string{"Warrior", "Mage", "Rogue"}, c.ClassNames())
}

func TestRace(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	elf, ok := c.Race("elf")
	require.True(t, ok)
	assert.Equal(t, "Elf", elf.Name)
	assert.Equal(t, 13, stats.Parse(elf.Stats)["Dexterity"])
	require.Len(t, elf.RacialSkills, 3)
	for _, rs := range elf.RacialSkills {
		assert.False(t, rs.Unlocked)
		assert.NotEmpty(t, stats.ParseBonus(rs.Bonus), rs.Name)
	}

	_, ok = c.Race("Orc")
	assert.False(t, ok)
}

func TestClass_ReturnsCopy(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	warrior, ok := c.Class("WARRIOR")
	require.True(t, ok)
	assert.Equal(t, []string{"Power Attack", "Shield Bash", "Second Wind"}, warrior.Moveset)
	require.Len(t, warrior.SkillTree, 5)
	assert.Equal(t, 2, warrior.SkillTree[0].Level)

	warrior.Moveset[0] = "Changed"
	warrior.SkillTree[0].Unlocked = true

	again, _ := c.Class("Warrior")
	assert.Equal(t, "Power Attack", again.Moveset[0])
	assert.False(t, again.SkillTree[0].Unlocked)
}
