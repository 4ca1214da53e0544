// Package entities holds the game-state model: the player, their party,
// inventory, equipment and active encounters, plus the mutation operations
// that keep those values within their invariants.
package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Entity types reported through core.Entity
const (
	EntityTypePlayer      = "player"
	EntityTypePartyMember = "party_member"
	EntityTypeEncounter   = "encounter"

	// PlayerID is the fixed id of the single player character
	PlayerID = "player"
)

// Progression defaults for fresh characters and recruits
const (
	StartingLevel     = 1
	StartingXPToLevel = 100
	StartingHP        = 100
)

// Skill is an entry in a class skill tree
type Skill struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Level       int    `json:"level" yaml:"level"`
	Unlocked    bool   `json:"unlocked" yaml:"-"`
}

// RacialSkill is a racial trait whose bonus string applies while unlocked
type RacialSkill struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Level       int    `json:"level" yaml:"level"`
	Bonus       string `json:"bonus" yaml:"bonus"`
	Unlocked    bool   `json:"unlocked" yaml:"-"`
}

// EvolutionOption is one of the generated evolution paths offered at the
// evolution level. Bonuses are either stat bonus strings or skill unlocks.
type EvolutionOption struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Bonuses     []string `json:"bonuses"`
}

// Class is the player's chosen class
type Class struct {
	Name      string   `json:"name" yaml:"name"`
	Moveset   []string `json:"moveset" yaml:"moveset"`
	SkillTree []Skill  `json:"skill_tree,omitempty" yaml:"skill_tree"`
}

// Race is the player's chosen race
type Race struct {
	Name              string        `json:"name" yaml:"name"`
	Stats             string        `json:"stats" yaml:"stats"`
	TraitsDescription string        `json:"traits_description" yaml:"traits_description"`
	RacialSkills      []RacialSkill `json:"racial_skills,omitempty" yaml:"racial_skills"`
}

// Player is the single player character. Stats is derived: only
// GameState.RecalculateStats writes it.
type Player struct {
	HP                  int               `json:"hp"`
	MaxHP               int               `json:"maxHp"`
	StatusEffects       StatusEffects     `json:"statusEffects"`
	Level               int               `json:"level"`
	XP                  int               `json:"xp"`
	XPToNextLevel       int               `json:"xpToNextLevel"`
	SkillPoints         int               `json:"skillPoints"`
	UpgradePoints       int               `json:"upgradePoints"`
	Stats               map[string]int    `json:"stats"`
	BaseStats           map[string]int    `json:"baseStats"`
	SkillTree           []Skill           `json:"skillTree"`
	RacialSkills        []RacialSkill     `json:"racialSkills"`
	Evolution           string            `json:"evolution,omitempty"`
	AvailableEvolutions []EvolutionOption `json:"availableEvolutions,omitempty"`
	Class               *Class            `json:"class,omitempty"`
	Race                *Race             `json:"race,omitempty"`
}

// GetID implements core.Entity
func (p *Player) GetID() string { return PlayerID }

// GetType implements core.Entity
func (p *Player) GetType() string { return EntityTypePlayer }

// Statuses implements StatusTarget
func (p *Player) Statuses() *StatusEffects { return &p.StatusEffects }

// Moveset returns the class moveset, empty without a class
func (p *Player) Moveset() []string {
	if p.Class == nil {
		return nil
	}
	return p.Class.Moveset
}

// AppendMove adds a move to the class moveset unless already present
func (p *Player) AppendMove(move string) {
	if p.Class == nil {
		p.Class = &Class{}
	}
	for _, m := range p.Class.Moveset {
		if m == move {
			return
		}
	}
	p.Class.Moveset = append(p.Class.Moveset, move)
}

// PartyMember is a companion or summon travelling with the player.
// Summons are removed when a battle ends.
type PartyMember struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	FullDescription string         `json:"full_description"`
	HP              int            `json:"hp"`
	MaxHP           int            `json:"maxHp"`
	Level           int            `json:"level"`
	XP              int            `json:"xp"`
	XPToNextLevel   int            `json:"xpToNextLevel"`
	SkillPoints     int            `json:"skill_points"`
	Stats           map[string]int `json:"stats"`
	BaseStats       map[string]int `json:"baseStats"`
	Moveset         []string       `json:"moveset"`
	SkillTree       []Skill        `json:"skill_tree"`
	IsSummon        bool           `json:"is_summon"`
	IconURL         string         `json:"iconUrl"`
	IconPrompt      string         `json:"icon_prompt,omitempty"`
}

// GetID implements core.Entity
func (m *PartyMember) GetID() string { return m.ID }

// GetType implements core.Entity
func (m *PartyMember) GetType() string { return EntityTypePartyMember }

// AppendMove adds a move to the member's moveset unless already present
func (m *PartyMember) AppendMove(move string) {
	for _, existing := range m.Moveset {
		if existing == move {
			return
		}
	}
	m.Moveset = append(m.Moveset, move)
}

// Encounter is an active opponent. Names are unique among active encounters.
type Encounter struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	HP            int           `json:"hp"`
	MaxHP         int           `json:"maxHp"`
	StatusEffects StatusEffects `json:"statusEffects"`
	IconURL       string        `json:"iconUrl"`
}

// GetID implements core.Entity
func (e *Encounter) GetID() string { return e.ID }

// GetType implements core.Entity
func (e *Encounter) GetType() string { return EntityTypeEncounter }

// Statuses implements StatusTarget
func (e *Encounter) Statuses() *StatusEffects { return &e.StatusEffects }

var (
	_ core.Entity  = (*Player)(nil)
	_ core.Entity  = (*PartyMember)(nil)
	_ core.Entity  = (*Encounter)(nil)
	_ StatusTarget = (*Player)(nil)
	_ StatusTarget = (*Encounter)(nil)
)
