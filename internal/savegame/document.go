// Package savegame defines the persisted game document and reads saves
// written by older versions of the game.
//
// A document holds the full conversation plus every piece of game state.
// Decode accepts legacy saves: stat strings instead of maps, comma-joined
// movesets, a player without baseStats or upgradePoints, and missing
// collections.
package savegame

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	"github.com/KirkDiggler/rpg-narrator/internal/stats"
	"github.com/KirkDiggler/rpg-narrator/internal/turn"
)

// Document is one saved game
type Document struct {
	Conversation     []providers.Message       `json:"conversation"`
	Player           *entities.Player          `json:"player"`
	PartyMembers     []*entities.PartyMember   `json:"partyMembers"`
	InventoryItems   []*entities.InventoryItem `json:"inventoryItems"`
	Weapons          []*entities.Gear          `json:"weapons"`
	Armors           []*entities.Gear          `json:"armors"`
	Rings            []*entities.Gear          `json:"rings"`
	Equipment        *entities.Equipment       `json:"equipment"`
	ActiveEncounters []*entities.Encounter     `json:"activeEncounters"`
	Universe         string                    `json:"universe,omitempty"`
	SavedAt          time.Time                 `json:"savedAt,omitzero"`
}

// New captures state and conversation. Both are copied.
func New(state *entities.GameState, conversation []providers.Message, savedAt time.Time) *Document {
	s := state.Clone()
	return &Document{
		Conversation:     slices.Clone(conversation),
		Player:           s.Player,
		PartyMembers:     s.Party,
		InventoryItems:   s.Inventory,
		Weapons:          s.Weapons,
		Armors:           s.Armors,
		Rings:            s.Rings,
		Equipment:        s.Equipment,
		ActiveEncounters: s.Encounters,
		SavedAt:          savedAt,
	}
}

// State builds a game state from the document with derived stats
// recalculated
func (d *Document) State() *entities.GameState {
	state := entities.NewGameState(d.Player)
	if d.PartyMembers != nil {
		state.Party = d.PartyMembers
	}
	if d.InventoryItems != nil {
		state.Inventory = d.InventoryItems
	}
	if d.Weapons != nil {
		state.Weapons = d.Weapons
	}
	if d.Armors != nil {
		state.Armors = d.Armors
	}
	if d.Rings != nil {
		state.Rings = d.Rings
	}
	if d.Equipment != nil {
		state.Equipment = d.Equipment
	}
	if d.ActiveEncounters != nil {
		state.Encounters = d.ActiveEncounters
	}
	state.RecalculateStats()
	return state
}

// Encode renders the document as indented JSON
func Encode(d *Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode save")
	}
	return data, nil
}

// Decode reads a save, migrating legacy shapes. A document without a
// conversation is rejected.
func Decode(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "save file is not valid JSON")
	}
	if raw, ok := fields["conversation"]; !ok || string(raw) == "null" {
		return nil, errors.InvalidArgument("invalid save file format: missing conversation")
	}

	if raw, ok := fields["player"]; ok {
		migrated, err := migrateStats(raw, true)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to migrate player")
		}
		fields["player"] = migrated
	}

	if raw, ok := fields["partyMembers"]; ok {
		var members []json.RawMessage
		if err := json.Unmarshal(raw, &members); err == nil {
			for i, m := range members {
				migrated, err := migrateStats(m, false)
				if err != nil {
					return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to migrate party member %d", i)
				}
				members[i] = migrated
			}
			migrated, err := json.Marshal(members)
			if err != nil {
				return nil, errors.Wrap(err, "failed to migrate party")
			}
			fields["partyMembers"] = migrated
		}
	}

	normalized, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to migrate save")
	}

	doc := &Document{}
	if err := json.Unmarshal(normalized, doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "save file is corrupt")
	}
	if doc.Player == nil {
		doc.Player = DefaultPlayer()
	}
	return doc, nil
}

// DefaultPlayer is used for saves that carry no player
func DefaultPlayer() *entities.Player {
	return &entities.Player{
		HP:            entities.StartingHP,
		MaxHP:         entities.StartingHP,
		StatusEffects: entities.StatusEffects{},
		Level:         entities.StartingLevel,
		XPToNextLevel: entities.StartingXPToLevel,
		SkillPoints:   1,
		Stats:         map[string]int{},
		BaseStats:     map[string]int{},
	}
}

// migrateStats turns legacy stat and moveset strings into a map and a list
// and fills a missing baseStats from stats. A string stats field always resets party member
// baseStats; the player keeps a stored baseStats.
func migrateStats(raw json.RawMessage, player bool) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return raw, nil
	}

	statsRaw, hasStats := obj["stats"]
	var current map[string]int
	legacy := false
	if hasStats && string(statsRaw) != "null" {
		var asString string
		if json.Unmarshal(statsRaw, &asString) == nil {
			current = stats.Parse(asString)
			legacy = true
		} else {
			var flex turn.FlexStats
			if err := json.Unmarshal(statsRaw, &flex); err != nil {
				return nil, err
			}
			current = flex
		}
	}
	if current == nil {
		current = map[string]int{}
	}

	encoded, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	obj["stats"] = encoded

	if player {
		if err := migrateClassMoveset(obj); err != nil {
			return nil, err
		}
	} else if moves, ok := splitMoveset(obj["moveset"]); ok {
		if obj["moveset"], err = json.Marshal(moves); err != nil {
			return nil, err
		}
	}

	base, hasBase := obj["baseStats"]
	missingBase := !hasBase || string(base) == "null"
	if missingBase || (legacy && !player) {
		obj["baseStats"] = encoded
	}

	return json.Marshal(obj)
}

// splitMoveset reads a legacy comma-joined moveset. ok is false when raw is
// not a string.
func splitMoveset(raw json.RawMessage) ([]string, bool) {
	var joined string
	if raw == nil || json.Unmarshal(raw, &joined) != nil {
		return nil, false
	}
	moves := []string{}
	for _, m := range strings.Split(joined, ",") {
		if m = strings.TrimSpace(m); m != "" {
			moves = append(moves, m)
		}
	}
	return moves, true
}

func migrateClassMoveset(player map[string]json.RawMessage) error {
	var class map[string]json.RawMessage
	if raw, ok := player["class"]; !ok || json.Unmarshal(raw, &class) != nil || class == nil {
		return nil
	}
	moves, ok := splitMoveset(class["moveset"])
	if !ok {
		return nil
	}
	var err error
	if class["moveset"], err = json.Marshal(moves); err != nil {
		return err
	}
	player["class"], err = json.Marshal(class)
	return err
}

// Replay is what a loaded conversation shows and re-requests
type Replay struct {
	// Transcript holds player and narrator messages in order
	Transcript []intents.Intent

	// Intents re-request the last scene image and music
	Intents []intents.Intent
}

// ReplayConversation rebuilds the visible transcript. Stored assistant
// entries show their narrative, or their raw text when not JSON.
func ReplayConversation(conversation []providers.Message) *Replay {
	out := &Replay{}
	var scene, location string

	for _, m := range conversation {
		switch m.Role {
		case providers.RoleUser:
			out.Transcript = append(out.Transcript, intents.PlayerMessage(m.Content))
		case providers.RoleAssistant:
			entry := turn.ReadEntry(m.Content)
			out.Transcript = append(out.Transcript, intents.Narrative(entry.Narrative))
			if entry.ImagePrompt != "" {
				scene = entry.ImagePrompt
			}
			if entry.LocationType != "" {
				location = entry.LocationType
			}
		}
	}

	if scene != "" {
		out.Intents = append(out.Intents, intents.SceneImage(scene))
	}
	if location != "" {
		out.Intents = append(out.Intents, intents.Music(location))
	}
	return out
}
