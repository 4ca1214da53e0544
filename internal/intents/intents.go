// Package intents describes the side effects a turn asks the front end to
// perform (show a message, draw a scene, change music, play a sound, offer
// suggestions). Game logic only produces intents; consumers subscribe to
// them on an rpg-toolkit event bus.
package intents

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

// Kind of intent
type Kind string

// Intent kinds
const (
	KindMessage     Kind = "message"
	KindSceneImage  Kind = "scene_image"
	KindMusic       Kind = "music"
	KindSound       Kind = "sound"
	KindSuggestions Kind = "suggestions"
	KindDiceRoll    Kind = "dice_roll"
)

// Sender of a message intent
type Sender string

// Message senders
const (
	SenderAI     Sender = "ai"
	SenderSystem Sender = "system"
	SenderPlayer Sender = "player"
)

// Sound effects
const (
	// SoundPurchase is the only sound effect the narrator requests
	SoundPurchase = "purchase"

	// SoundWalking plays when the player sets off somewhere
	SoundWalking = "walking"
)

// Intent is one requested side effect. Only the fields relevant to Kind
// are set.
type Intent struct {
	Kind         Kind
	Sender       Sender
	Text         string
	Prompt       string
	LocationType string
	Sound        string
	Actions      []string
	InBattle     bool
	Roll         int
}

// Narrative is a message from the Dungeon Master
func Narrative(text string) Intent {
	return Intent{Kind: KindMessage, Sender: SenderAI, Text: text}
}

// System is a game-engine message (level ups, loot, failures)
func System(text string) Intent {
	return Intent{Kind: KindMessage, Sender: SenderSystem, Text: text}
}

// PlayerMessage echoes player input
func PlayerMessage(text string) Intent {
	return Intent{Kind: KindMessage, Sender: SenderPlayer, Text: text}
}

// SceneImage requests a new scene illustration
func SceneImage(prompt string) Intent {
	return Intent{Kind: KindSceneImage, Prompt: prompt}
}

// Music requests music for a location type
func Music(locationType string) Intent {
	return Intent{Kind: KindMusic, LocationType: locationType}
}

// Sound requests a one-shot sound effect
func Sound(effect string) Intent {
	return Intent{Kind: KindSound, Sound: effect}
}

// Suggestions offers next actions. In battle they are class moves.
func Suggestions(actions []string, inBattle bool) Intent {
	return Intent{Kind: KindSuggestions, Actions: actions, InBattle: inBattle}
}

// DiceRoll shows the d20 result rolled for an attack
func DiceRoll(roll int) Intent {
	return Intent{Kind: KindDiceRoll, Roll: roll}
}

// EventType is the bus topic for an intent kind
func EventType(kind Kind) string {
	return "narrator.intent." + string(kind)
}

// Event carries an Intent over an rpg-toolkit event bus
type Event struct {
	*events.GameEvent
	Intent Intent
}

// NewEvent wraps an intent raised on behalf of source
func NewEvent(source core.Entity, in Intent) *Event {
	return &Event{
		GameEvent: events.NewGameEvent(EventType(in.Kind), source, nil),
		Intent:    in,
	}
}

// FromEvent unwraps an intent received by a bus handler
func FromEvent(e events.Event) (Intent, bool) {
	ie, ok := e.(*Event)
	if !ok {
		return Intent{}, false
	}
	return ie.Intent, true
}

// Publish sends each intent in order. Publishing stops at the first
// handler error.
func Publish(ctx context.Context, bus events.EventBus, source core.Entity, list []Intent) error {
	for _, in := range list {
		if err := bus.Publish(ctx, NewEvent(source, in)); err != nil {
			return errors.Wrapf(err, "failed to publish %s intent", in.Kind)
		}
	}
	return nil
}

// Messages filters message intents, in order
func Messages(list []Intent) []Intent {
	var out []Intent
	for _, in := range list {
		if in.Kind == KindMessage {
			out = append(out, in)
		}
	}
	return out
}
