package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-narrator/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("weapon")
	assert.Equal(t, "weapon_1", g.Generate())
	assert.Equal(t, "weapon_2", g.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestPrefixedGenerator(t *testing.T) {
	g := idgen.NewPrefixed(idgen.PrefixGame)
	a, b := g.Generate(), g.Generate()
	assert.True(t, strings.HasPrefix(a, "game_"))
	assert.NotEqual(t, a, b)
}

func TestSets(t *testing.T) {
	seq := idgen.NewSequentialSet()
	assert.Equal(t, "ring_1", seq.Ring.Generate())
	assert.Equal(t, "enc_1", seq.Encounter.Generate())

	uuids := idgen.NewUUIDSet()
	assert.True(t, strings.HasPrefix(uuids.PartyMember.Generate(), "party_"))
}
