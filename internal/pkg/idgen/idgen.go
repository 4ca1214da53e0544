// Package idgen provides ID generation utilities
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// Prefixes for the entities the narrator assigns ids to.
const (
	PrefixGame        = "game"
	PrefixWeapon      = "weapon"
	PrefixArmor       = "armor"
	PrefixRing        = "ring"
	PrefixPartyMember = "party"
	PrefixEncounter   = "enc"
)

// PrefixedGenerator generates IDs with a specific prefix
type PrefixedGenerator struct {
	prefix string
}

// NewPrefixed creates a new generator with the given prefix
func NewPrefixed(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: prefix}
}

// Generate creates a new ID with the format: prefix_timestamp_random
func (g *PrefixedGenerator) Generate() string {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(fmt.Sprintf("crypto/rand.Read failed: %v", err))
	}
	return fmt.Sprintf("%s_%d_%s", g.prefix, time.Now().UnixNano(), hex.EncodeToString(randomBytes))
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// Set bundles one generator per entity kind.
type Set struct {
	Weapon      Generator
	Armor       Generator
	Ring        Generator
	PartyMember Generator
	Encounter   Generator
}

// NewUUIDSet returns a Set backed by prefixed UUIDs
func NewUUIDSet() *Set {
	return &Set{
		Weapon:      NewUUID(PrefixWeapon),
		Armor:       NewUUID(PrefixArmor),
		Ring:        NewUUID(PrefixRing),
		PartyMember: NewUUID(PrefixPartyMember),
		Encounter:   NewUUID(PrefixEncounter),
	}
}

// NewSequentialSet returns a deterministic Set for tests
func NewSequentialSet() *Set {
	return &Set{
		Weapon:      NewSequential(PrefixWeapon),
		Armor:       NewSequential(PrefixArmor),
		Ring:        NewSequential(PrefixRing),
		PartyMember: NewSequential(PrefixPartyMember),
		Encounter:   NewSequential(PrefixEncounter),
	}
}
