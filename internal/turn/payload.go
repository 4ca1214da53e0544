// Package turn decodes the narrator model's per-turn JSON document.
//
// Decoding is tolerant per field: a wrong-typed field is logged and treated
// as absent, and each array element decodes independently so one malformed
// record never discards its siblings. Required-field checks happen when the
// records are applied (see Validate on each record type).
package turn

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

// Payload is one decoded turn
type Payload struct {
	Narrative          string
	ImagePrompt        string
	LocationType       string
	SoundEffect        string
	NewItems           []NewItem
	NewPartyMembers    []NewPartyMember
	ItemsUsed          []ItemUsed
	PartyMembersLeft   []string
	NewWeapons         []NewGear
	NewArmor           []NewGear
	NewRings           []NewGear
	NewEncounters      []NewEncounter
	EncounterUpdates   []EncounterUpdate
	PlayerUpdates      PlayerUpdates
	EncountersDefeated []string
	SuggestedActions   []string
	PartyMemberUpdates []PartyMemberUpdate

	// Raw is the compact JSON object as received, stored in the
	// conversation log so later turns see the model's own structure.
	Raw json.RawMessage
}

// NewItem is an acquired inventory item
type NewItem struct {
	Name        FlexString `json:"name"`
	Quantity    FlexInt    `json:"quantity"`
	Description FlexString `json:"description"`
	IconPrompt  FlexString `json:"icon_prompt"`
}

// Validate checks required fields
func (n NewItem) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", n.Name.String(), vb)
	errors.ValidatePositive("quantity", int(n.Quantity), vb)
	errors.ValidateRequired("description", n.Description.String(), vb)
	errors.ValidateRequired("icon_prompt", n.IconPrompt.String(), vb)
	return vb.Build()
}

// NewSkill is a skill-tree entry on a recruited party member
type NewSkill struct {
	Name        FlexString `json:"name"`
	Description FlexString `json:"description"`
	Level       FlexInt    `json:"level"`
}

// NewPartyMember is a recruit or summon joining the party
type NewPartyMember struct {
	Name            FlexString
	Description     FlexString
	FullDescription FlexString
	Stats           FlexStats
	Moveset         FlexList
	IconPrompt      FlexString
	HP              FlexInt
	IsSummon        bool
	Level           *FlexInt
	SkillPoints     *FlexInt
	SkillTree       []NewSkill
}

// UnmarshalJSON decodes the member field by field and its skill tree
// element by element so one bad skill does not drop the recruit.
func (n *NewPartyMember) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	d := decoder{scope: "new_party_members"}
	d.field(fields, "name", &n.Name)
	d.field(fields, "description", &n.Description)
	d.field(fields, "full_description", &n.FullDescription)
	d.field(fields, "stats", &n.Stats)
	d.field(fields, "moveset", &n.Moveset)
	d.field(fields, "icon_prompt", &n.IconPrompt)
	d.field(fields, "hp", &n.HP)
	d.field(fields, "is_summon", &n.IsSummon)
	if raw, ok := fields["level"]; ok && !bytes.Equal(bytes.TrimSpace(raw), null) {
		n.Level = new(FlexInt)
		d.field(fields, "level", n.Level)
	}
	if raw, ok := fields["skill_points"]; ok && !bytes.Equal(bytes.TrimSpace(raw), null) {
		n.SkillPoints = new(FlexInt)
		d.field(fields, "skill_points", n.SkillPoints)
	}
	n.SkillTree = decodeList[NewSkill](d, fields, "skill_tree")
	return nil
}

// Validate checks required fields
func (n NewPartyMember) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", n.Name.String(), vb)
	errors.ValidateRequired("description", n.Description.String(), vb)
	errors.ValidateRequired("full_description", n.FullDescription.String(), vb)
	errors.ValidateRequired("icon_prompt", n.IconPrompt.String(), vb)
	errors.ValidatePositive("hp", int(n.HP), vb)
	if len(n.Stats) == 0 {
		vb.RequiredField("stats")
	}
	if len(n.Moveset.Split()) == 0 {
		vb.RequiredField("moveset")
	}
	return vb.Build()
}

// NewGear is a found weapon, armor piece or ring
type NewGear struct {
	Name        FlexString `json:"name"`
	Stats       FlexString `json:"stats"`
	Description FlexString `json:"description"`
	IconPrompt  FlexString `json:"icon_prompt"`
}

// Validate checks required fields
func (n NewGear) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", n.Name.String(), vb)
	errors.ValidateRequired("stats", n.Stats.String(), vb)
	errors.ValidateRequired("description", n.Description.String(), vb)
	errors.ValidateRequired("icon_prompt", n.IconPrompt.String(), vb)
	return vb.Build()
}

// NewEncounter is an enemy entering the scene
type NewEncounter struct {
	Name       FlexString `json:"name"`
	HP         FlexInt    `json:"hp"`
	IconPrompt FlexString `json:"icon_prompt"`
}

// Validate checks required fields
func (n NewEncounter) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", n.Name.String(), vb)
	errors.ValidatePositive("hp", int(n.HP), vb)
	errors.ValidateRequired("icon_prompt", n.IconPrompt.String(), vb)
	return vb.Build()
}

// ItemUsed is an inventory item consumed or lost
type ItemUsed struct {
	Name     FlexString `json:"name"`
	Quantity FlexInt    `json:"quantity"`
}

// Validate checks required fields
func (n ItemUsed) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", n.Name.String(), vb)
	errors.ValidatePositive("quantity", int(n.Quantity), vb)
	return vb.Build()
}

// EncounterUpdate changes an active encounter
type EncounterUpdate struct {
	Name          FlexString `json:"name"`
	DamageTaken   FlexInt    `json:"damage_taken"`
	StatusApplied FlexList   `json:"status_applied"`
	StatusRemoved FlexList   `json:"status_removed"`
}

// PlayerUpdates changes the player
type PlayerUpdates struct {
	DamageTaken     FlexInt  `json:"damage_taken"`
	HealingReceived FlexInt  `json:"healing_received"`
	XPGained        FlexInt  `json:"xp_gained"`
	StatusApplied   FlexList `json:"status_applied"`
	StatusRemoved   FlexList `json:"status_removed"`
}

// UnmarshalJSON decodes each update independently
func (p *PlayerUpdates) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	d := decoder{scope: "player_updates"}
	d.field(fields, "damage_taken", &p.DamageTaken)
	d.field(fields, "healing_received", &p.HealingReceived)
	d.field(fields, "xp_gained", &p.XPGained)
	d.field(fields, "status_applied", &p.StatusApplied)
	d.field(fields, "status_removed", &p.StatusRemoved)
	return nil
}

// PartyMemberUpdate changes a party member
type PartyMemberUpdate struct {
	Name            FlexString `json:"name"`
	DamageTaken     FlexInt    `json:"damage_taken"`
	HealingReceived FlexInt    `json:"healing_received"`
	XPGained        FlexInt    `json:"xp_gained"`
}

// decoder reads fields out of an object, logging rather than failing
type decoder struct {
	scope string
}

func (d decoder) field(fields map[string]json.RawMessage, key string, target any) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		slog.Warn("Ignoring malformed turn field", "scope", d.scope, "field", key, "error", err)
		return false
	}
	return true
}

func decodeList[T any](d decoder, fields map[string]json.RawMessage, key string) []T {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), null) {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		slog.Warn("Ignoring non-array turn field", "scope", d.scope, "field", key, "error", err)
		return nil
	}

	out := make([]T, 0, len(elements))
	for i, element := range elements {
		var v T
		if err := json.Unmarshal(element, &v); err != nil {
			slog.Warn("Skipping malformed turn record", "scope", d.scope, "field", key, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func names(list []FlexName) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		if n != "" {
			out = append(out, string(n))
		}
	}
	return out
}

// decodePayload builds a Payload from a JSON object
func decodePayload(object []byte) (*Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(object, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.InvalidArgument("turn document is null")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, object); err != nil {
		return nil, err
	}

	d := decoder{scope: "turn"}
	p := &Payload{Raw: compact.Bytes()}

	var narrative, imagePrompt, location, sound FlexString
	d.field(fields, "narrative", &narrative)
	d.field(fields, "image_prompt", &imagePrompt)
	d.field(fields, "location_type", &location)
	d.field(fields, "sound_effect", &sound)
	p.Narrative = narrative.String()
	p.ImagePrompt = imagePrompt.String()
	p.LocationType = location.String()
	p.SoundEffect = sound.String()

	p.NewItems = decodeList[NewItem](d, fields, "new_items")
	p.NewPartyMembers = decodeList[NewPartyMember](d, fields, "new_party_members")
	p.ItemsUsed = decodeList[ItemUsed](d, fields, "items_used")
	p.PartyMembersLeft = names(decodeList[FlexName](d, fields, "party_members_left"))
	p.NewWeapons = decodeList[NewGear](d, fields, "new_weapons")
	p.NewArmor = decodeList[NewGear](d, fields, "new_armor")
	p.NewRings = decodeList[NewGear](d, fields, "new_rings")
	p.NewEncounters = decodeList[NewEncounter](d, fields, "new_encounters")
	p.EncounterUpdates = decodeList[EncounterUpdate](d, fields, "encounter_updates")
	p.EncountersDefeated = names(decodeList[FlexName](d, fields, "encounters_defeated"))
	p.PartyMemberUpdates = decodeList[PartyMemberUpdate](d, fields, "party_member_updates")
	d.field(fields, "player_updates", &p.PlayerUpdates)

	var suggestions FlexList
	d.field(fields, "suggested_actions", &suggestions)
	p.SuggestedActions = suggestions

	return p, nil
}
