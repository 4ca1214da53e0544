package entities

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/stats"
)

// GameState is the aggregate owned by one game session. All mutation goes
// through its methods so HP stays within [0, MaxHP], inventory names stay
// unique and Player.Stats stays derived from BaseStats.
type GameState struct {
	Player     *Player          `json:"player"`
	Party      []*PartyMember   `json:"partyMembers"`
	Inventory  []*InventoryItem `json:"inventoryItems"`
	Weapons    []*Gear          `json:"weapons"`
	Armors     []*Gear          `json:"armors"`
	Rings      []*Gear          `json:"rings"`
	Equipment  *Equipment       `json:"equipment"`
	Encounters []*Encounter     `json:"activeEncounters"`
}

// NewGameState returns an empty state around player
func NewGameState(player *Player) *GameState {
	if player == nil {
		player = &Player{}
	}
	if player.BaseStats == nil {
		player.BaseStats = map[string]int{}
	}
	if player.StatusEffects == nil {
		player.StatusEffects = StatusEffects{}
	}
	return &GameState{
		Player:     player,
		Party:      []*PartyMember{},
		Inventory:  []*InventoryItem{},
		Weapons:    []*Gear{},
		Armors:     []*Gear{},
		Rings:      []*Gear{},
		Equipment:  &Equipment{},
		Encounters: []*Encounter{},
	}
}

// Clone returns a deep copy for renderers and snapshots
func (g *GameState) Clone() *GameState {
	data, err := json.Marshal(g)
	if err != nil {
		panic("entities: game state is not serialisable: " + err.Error())
	}
	out := &GameState{}
	if err := json.Unmarshal(data, out); err != nil {
		panic("entities: game state round trip failed: " + err.Error())
	}
	return out
}

func clampHP(hp, maxHP int) int {
	if hp < 0 {
		return 0
	}
	if hp > maxHP {
		return maxHP
	}
	return hp
}

// SetPlayerHP sets player HP clamped to [0, MaxHP]
func (g *GameState) SetPlayerHP(hp int) {
	g.Player.HP = clampHP(hp, g.Player.MaxHP)
}

// SetPartyMemberHP sets a member's HP by exact name. Unknown names are a
// no-op and return false.
func (g *GameState) SetPartyMemberHP(name string, hp int) bool {
	m := g.FindPartyMember(name)
	if m == nil {
		return false
	}
	m.HP = clampHP(hp, m.MaxHP)
	return true
}

// SetEncounterHP sets an encounter's HP by exact name
func (g *GameState) SetEncounterHP(name string, hp int) bool {
	e := g.FindEncounter(name)
	if e == nil {
		return false
	}
	e.HP = clampHP(hp, e.MaxHP)
	return true
}

// AddStatusEffect adds effect to target. Reports whether the set changed.
func (g *GameState) AddStatusEffect(target StatusTarget, effect string) bool {
	if target == nil {
		return false
	}
	return target.Statuses().Add(effect)
}

// RemoveStatusEffect removes effect from target. Reports whether the set
// changed.
func (g *GameState) RemoveStatusEffect(target StatusTarget, effect string) bool {
	if target == nil {
		return false
	}
	return target.Statuses().Remove(effect)
}

// RecalculateStats rebuilds Player.Stats: base stats, then equipped gear in
// slot order, then unlocked racial skills.
func (g *GameState) RecalculateStats() {
	p := g.Player
	next := stats.Clone(p.BaseStats)
	if next == nil {
		next = map[string]int{}
	}

	if g.Equipment != nil {
		for _, gear := range g.Equipment.Equipped() {
			stats.ApplyBonusString(gear.Stats, next)
		}
	}

	for _, rs := range p.RacialSkills {
		if rs.Unlocked {
			stats.ApplyBonusString(rs.Bonus, next)
		}
	}

	p.Stats = next
}

func (g *GameState) pool(kind GearKind) *[]*Gear {
	switch kind {
	case GearKindWeapon:
		return &g.Weapons
	case GearKindArmor:
		return &g.Armors
	default:
		return &g.Rings
	}
}

// AddGear appends gear to the pool for its kind
func (g *GameState) AddGear(kind GearKind, gear *Gear) {
	p := g.pool(kind)
	*p = append(*p, gear)
}

func takeGear(pool *[]*Gear, id string) *Gear {
	for i, gear := range *pool {
		if gear.ID == id {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			return gear
		}
	}
	return nil
}

// Equip moves gear from its pool into a slot. Weapons and armor replace the
// current piece, which returns to the pool. Rings fill ring1, then ring2,
// and otherwise evict ring1.
func (g *GameState) Equip(itemID string, kind GearKind) error {
	pool := g.pool(kind)
	gear := takeGear(pool, itemID)
	if gear == nil {
		return errors.NotFoundf("%s %q not found", kind, itemID).WithMeta("item_id", itemID)
	}
	if g.Equipment == nil {
		g.Equipment = &Equipment{}
	}

	slot := SlotWeapon
	switch kind {
	case GearKindArmor:
		slot = SlotArmor
	case GearKindRing:
		switch {
		case g.Equipment.Ring1 == nil:
			slot = SlotRing1
		case g.Equipment.Ring2 == nil:
			slot = SlotRing2
		default:
			slot = SlotRing1
		}
	}

	if previous := g.Equipment.Get(slot); previous != nil {
		*pool = append(*pool, previous)
	}
	g.Equipment.set(slot, gear)

	g.RecalculateStats()
	return nil
}

// Unequip returns the gear in slot to its pool. An empty slot is a no-op.
func (g *GameState) Unequip(slot Slot) error {
	if _, err := ParseSlot(string(slot)); err != nil {
		return err
	}
	if g.Equipment == nil {
		return nil
	}
	gear := g.Equipment.Get(slot)
	if gear == nil {
		return nil
	}
	g.AddGear(slot.Kind(), gear)
	g.Equipment.set(slot, nil)

	g.RecalculateStats()
	return nil
}

// FindInventoryItem matches names case-insensitively
func (g *GameState) FindInventoryItem(name string) *InventoryItem {
	name = strings.TrimSpace(name)
	for _, item := range g.Inventory {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	return nil
}

// AddInventoryItem merges into an existing stack with the same name, else
// appends a new stack. Non-positive quantities are rejected.
func (g *GameState) AddInventoryItem(item InventoryItem) bool {
	if item.Quantity < 1 || strings.TrimSpace(item.Name) == "" {
		return false
	}
	if existing := g.FindInventoryItem(item.Name); existing != nil {
		existing.Quantity += item.Quantity
		return true
	}
	g.Inventory = append(g.Inventory, &item)
	return true
}

// RemoveInventoryItem decrements a stack, dropping it at zero. Unknown
// names are logged and leave the inventory untouched.
func (g *GameState) RemoveInventoryItem(name string, quantity int) bool {
	for i, item := range g.Inventory {
		if !strings.EqualFold(item.Name, strings.TrimSpace(name)) {
			continue
		}
		item.Quantity -= quantity
		if item.Quantity <= 0 {
			g.Inventory = append(g.Inventory[:i], g.Inventory[i+1:]...)
		}
		return true
	}
	slog.Warn("Inventory item not found", "item", name, "quantity", quantity)
	return false
}

// FindPartyMember matches names exactly
func (g *GameState) FindPartyMember(name string) *PartyMember {
	for _, m := range g.Party {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// AddPartyMember appends a member; names must be unique case-insensitively
func (g *GameState) AddPartyMember(m *PartyMember) error {
	for _, existing := range g.Party {
		if strings.EqualFold(existing.Name, m.Name) {
			return errors.AlreadyExistsf("party member %q already exists", m.Name)
		}
	}
	g.Party = append(g.Party, m)
	return nil
}

// RemovePartyMember removes a member, matching names case-insensitively
func (g *GameState) RemovePartyMember(name string) *PartyMember {
	for i, m := range g.Party {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			g.Party = append(g.Party[:i], g.Party[i+1:]...)
			return m
		}
	}
	return nil
}

// Summons returns party members that exist only for the current battle
func (g *GameState) Summons() []*PartyMember {
	var out []*PartyMember
	for _, m := range g.Party {
		if m.IsSummon {
			out = append(out, m)
		}
	}
	return out
}

// RemoveSummons drops every summon and returns them
func (g *GameState) RemoveSummons() []*PartyMember {
	kept := g.Party[:0]
	var removed []*PartyMember
	for _, m := range g.Party {
		if m.IsSummon {
			removed = append(removed, m)
			continue
		}
		kept = append(kept, m)
	}
	g.Party = kept
	return removed
}

// FindEncounter matches names exactly
func (g *GameState) FindEncounter(name string) *Encounter {
	for _, e := range g.Encounters {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// AddEncounter appends an encounter; names must be unique among active ones
func (g *GameState) AddEncounter(e *Encounter) error {
	if g.FindEncounter(e.Name) != nil {
		return errors.AlreadyExistsf("encounter %q is already active", e.Name)
	}
	if e.StatusEffects == nil {
		e.StatusEffects = StatusEffects{}
	}
	g.Encounters = append(g.Encounters, e)
	return nil
}

// RemoveEncounter removes an encounter by exact name and returns it
func (g *GameState) RemoveEncounter(name string) *Encounter {
	for i, e := range g.Encounters {
		if e.Name == name {
			g.Encounters = append(g.Encounters[:i], g.Encounters[i+1:]...)
			return e
		}
	}
	return nil
}

// InBattle reports whether any encounter is active
func (g *GameState) InBattle() bool {
	return len(g.Encounters) > 0
}
