package entities

import (
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

// GearKind identifies which pool a piece of gear belongs to
type GearKind string

// Gear kinds
const (
	GearKindWeapon GearKind = "weapon"
	GearKindArmor  GearKind = "armor"
	GearKindRing   GearKind = "ring"
)

// Slot is an equipment slot
type Slot string

// Equipment slots
const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
	SlotRing1  Slot = "ring1"
	SlotRing2  Slot = "ring2"
)

// ParseSlot validates a slot name
func ParseSlot(s string) (Slot, error) {
	switch slot := Slot(s); slot {
	case SlotWeapon, SlotArmor, SlotRing1, SlotRing2:
		return slot, nil
	default:
		return "", errors.InvalidArgumentf("unknown equipment slot %q", s)
	}
}

// Kind returns the gear kind a slot holds
func (s Slot) Kind() GearKind {
	switch s {
	case SlotWeapon:
		return GearKindWeapon
	case SlotArmor:
		return GearKindArmor
	default:
		return GearKindRing
	}
}

// InventoryItem is a stackable consumable or trinket. Names are unique
// case-insensitively and Quantity is always at least 1.
type InventoryItem struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	IconPrompt  string `json:"iconPrompt,omitempty"`
}

// Gear is a weapon, armor piece or ring. Stats is a bonus string such as
// "+2 Strength, +1 Agility".
type Gear struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stats       string `json:"stats"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	IconPrompt  string `json:"iconPrompt,omitempty"`
}

// Equipment holds the four equipment slots
type Equipment struct {
	Weapon *Gear `json:"weapon"`
	Armor  *Gear `json:"armor"`
	Ring1  *Gear `json:"ring1"`
	Ring2  *Gear `json:"ring2"`
}

// Equipped returns occupied slots in bonus-application order:
// weapon, armor, ring1, ring2.
func (e *Equipment) Equipped() []*Gear {
	var out []*Gear
	for _, g := range []*Gear{e.Weapon, e.Armor, e.Ring1, e.Ring2} {
		if g != nil {
			out = append(out, g)
		}
	}
	return out
}

// Get returns the gear in slot, nil when empty
func (e *Equipment) Get(slot Slot) *Gear {
	switch slot {
	case SlotWeapon:
		return e.Weapon
	case SlotArmor:
		return e.Armor
	case SlotRing1:
		return e.Ring1
	case SlotRing2:
		return e.Ring2
	}
	return nil
}

func (e *Equipment) set(slot Slot, g *Gear) {
	switch slot {
	case SlotWeapon:
		e.Weapon = g
	case SlotArmor:
		e.Armor = g
	case SlotRing1:
		e.Ring1 = g
	case SlotRing2:
		e.Ring2 = g
	}
}
