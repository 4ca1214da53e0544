package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-narrator/internal/stats"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]int
	}{
		{
			name:     "well formed",
			input:    "Strength: 10, Agility: 12",
			expected: map[string]int{"Strength": 10, "Agility": 12},
		},
		{
			name:     "empty",
			input:    "",
			expected: map[string]int{},
		},
		{
			name:     "skips malformed segments",
			input:    "Strength: 10, garbage, Wisdom: high, : 4, Charisma:-2",
			expected: map[string]int{"Strength": 10, "Charisma": -2},
		},
		{
			name:     "extra whitespace",
			input:    "  Magic Power :  7 ",
			expected: map[string]int{"Magic Power": 7},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stats.Parse(tc.input))
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	m := map[string]int{"Strength": 10, "Agility": 12, "Luck": -1}
	assert.Equal(t, "Agility: 12, Luck: -1, Strength: 10", stats.Format(m))
	assert.Equal(t, m, stats.Parse(stats.Format(m)))
	assert.Equal(t, "", stats.Format(nil))
}

func TestParseBonus(t *testing.T) {
	bonuses := stats.ParseBonus("+2 Strength, -1 Agility, sharp edge, +3 Magic Power")
	assert.Equal(t, []stats.Bonus{
		{Stat: "Strength", Delta: 2},
		{Stat: "Agility", Delta: -1},
		{Stat: "Magic Power", Delta: 3},
	}, bonuses)
}

func TestApplyBonusString(t *testing.T) {
	target := map[string]int{"Strength": 10, "Agility": 12}

	applied := stats.ApplyBonusString("+2 strength, -1 Agility, +5 Charisma", target)

	assert.Equal(t, 2, applied)
	assert.Equal(t, map[string]int{"Strength": 12, "Agility": 11}, target)
}

func TestApplyBonusStringIgnoresDamageDice(t *testing.T) {
	target := map[string]int{"Strength": 10}
	assert.Zero(t, stats.ApplyBonusString("1d8 slashing", target))
	assert.Equal(t, 10, target["Strength"])
}

func TestUnlockedSkill(t *testing.T) {
	name, ok := stats.UnlockedSkill("Unlocks new skill: Dragon Breath")
	assert.True(t, ok)
	assert.Equal(t, "Dragon Breath", name)

	_, ok = stats.UnlockedSkill("+3 Strength")
	assert.False(t, ok)
}

func TestFindKey(t *testing.T) {
	m := map[string]int{"Strength": 1}
	key, ok := stats.FindKey(m, "STRENGTH")
	assert.True(t, ok)
	assert.Equal(t, "Strength", key)

	_, ok = stats.FindKey(m, "Wisdom")
	assert.False(t, ok)
}
