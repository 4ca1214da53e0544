package tui

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
)

// displayed are the intent kinds the log shows
var displayed = []intents.Kind{
	intents.KindMessage,
	intents.KindDiceRoll,
	intents.KindSceneImage,
	intents.KindSuggestions,
}

// Subscribe forwards displayed intents to send and returns a func that
// removes the handlers
func Subscribe(bus events.EventBus, send func(tea.Msg)) func() {
	forward := func(_ context.Context, e events.Event) error {
		if in, ok := intents.FromEvent(e); ok {
			send(intentMsg{intent: in})
		}
		return nil
	}

	ids := make([]string, 0, len(displayed))
	for _, kind := range displayed {
		ids = append(ids, bus.SubscribeFunc(intents.EventType(kind), 0, forward))
	}
	return func() {
		for _, id := range ids {
			if err := bus.Unsubscribe(id); err != nil {
				slog.Warn("Failed to unsubscribe terminal handler", "subscription", id, "error", err)
			}
		}
	}
}

// Run plays the game in the terminal until the player quits or ctx is done
func Run(ctx context.Context, cfg *Config, bus events.EventBus) error {
	if bus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	m, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := Subscribe(bus, p.Send)
	defer unsubscribe()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "terminal UI failed")
	}
	return nil
}
