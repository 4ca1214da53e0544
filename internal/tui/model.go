// Package tui is the terminal front end. It renders intents published on
// the event bus, the session snapshot and the current suggestions, and
// turns typed input into session calls. It holds no game state of its own.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/media"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/resolver"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/session"
)

const (
	// DefaultSlot is used by /save and /load without an argument
	DefaultSlot = "autosave"

	recentRolls = 5
	logShare    = 0.7

	placeholderIdle     = "What do you do? (/help for commands)"
	placeholderBusy     = "The narrator is thinking..."
	placeholderAutoplay = "Autoplay is on. Type to take over."
)

// Config holds what the model drives. Media is optional.
type Config struct {
	Session session.Service
	Media   media.Service

	// Slot is the default save slot
	Slot string

	// Opening is sent as the first turn of a new game
	Opening string

	// LoadSlot restores a saved game before play starts
	LoadSlot string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Session == nil {
		vb.RequiredField("Session")
	}
	if c.Opening != "" && c.LoadSlot != "" {
		vb.Field("Opening", "cannot start a new game and load one at once")
	}
	return vb.Build()
}

// entry is one block of the log
type entry struct {
	intent intents.Intent
	err    string
}

// Model is the bubbletea model for a running game
type Model struct {
	ctx     context.Context
	session session.Service
	media   media.Service
	slot    string
	opening string
	load    string

	input    textinput.Model
	viewport viewport.Model

	log         []entry
	suggestions []resolver.Suggestion
	snap        *session.Snapshot

	// busy is set while a turn runs; input is disabled
	busy bool

	// autoplay is set while the autoplay loop runs; typed input waits in
	// pending until the loop has stopped
	autoplay bool
	pending  string

	width  int
	height int
}

// intentMsg carries an intent from the event bus
type intentMsg struct {
	intent intents.Intent
}

// turnDoneMsg ends a turn started by the player
type turnDoneMsg struct {
	outcome *session.Outcome
	err     error
}

// autoplayDoneMsg ends the autoplay loop
type autoplayDoneMsg struct {
	err error
}

// commandDoneMsg reports a slash command that ran in the background
type commandDoneMsg struct {
	notice string
	err    error
}

// loadedMsg replaces the log with a restored transcript
type loadedMsg struct {
	transcript []intents.Intent
	slot       string
	err        error
}

// New creates the model. ctx bounds every session call it makes.
func New(ctx context.Context, cfg *Config) (Model, error) {
	if cfg == nil {
		return Model{}, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, errors.Wrap(err, "invalid config")
	}

	slot := cfg.Slot
	if slot == "" {
		slot = DefaultSlot
	}

	ti := textinput.New()
	ti.Placeholder = placeholderIdle
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	m := Model{
		ctx:      ctx,
		session:  cfg.Session,
		media:    cfg.Media,
		slot:     slot,
		opening:  cfg.Opening,
		load:     cfg.LoadSlot,
		input:    ti,
		viewport: viewport.New(80, 20),
		busy:     cfg.Opening != "" || cfg.LoadSlot != "",
	}
	return m.refresh(), nil
}

func (m Model) Init() tea.Cmd {
	switch {
	case m.load != "":
		return tea.Batch(textinput.Blink, m.loadGame(m.load))
	case m.opening != "":
		return tea.Batch(textinput.Blink, m.runTurn(m.opening))
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.session.StopAutoplay()
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.input.Reset()
			return m.handleInput(text)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.layout(), nil

	case intentMsg:
		switch msg.intent.Kind {
		case intents.KindSuggestions:
			m.suggestions = suggestionsFrom(msg.intent)
		case intents.KindMessage, intents.KindDiceRoll, intents.KindSceneImage:
			m.log = append(m.log, entry{intent: msg.intent})
		default:
			return m, nil
		}
		m.snap = m.session.Snapshot()
		return m.layout(), nil

	case turnDoneMsg:
		m.busy = false
		m = m.refresh()
		if msg.err != nil && !errors.IsCanceled(msg.err) {
			m.log = append(m.log, entry{err: errors.GetMessage(msg.err)})
		}
		if msg.outcome != nil && len(msg.outcome.Suggestions) > 0 {
			m.suggestions = msg.outcome.Suggestions
		}
		return m.layout(), nil

	case autoplayDoneMsg:
		m.autoplay = false
		m = m.refresh()
		if msg.err != nil && !errors.IsCanceled(msg.err) {
			m.log = append(m.log, entry{err: errors.GetMessage(msg.err)})
		}
		if m.pending != "" {
			text := m.pending
			m.pending = ""
			return m.handleInput(text)
		}
		return m.layout(), nil

	case commandDoneMsg:
		m = m.refresh()
		switch {
		case msg.err != nil:
			m.log = append(m.log, entry{err: errors.GetMessage(msg.err)})
		case msg.notice != "":
			m.log = append(m.log, entry{intent: intents.System(msg.notice)})
		}
		return m.layout(), nil

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m = m.refresh()
			m.log = append(m.log, entry{err: errors.GetMessage(msg.err)})
			return m.layout(), nil
		}
		m.log = nil
		for _, in := range msg.transcript {
			m.log = append(m.log, entry{intent: in})
		}
		m.log = append(m.log, entry{intent: intents.System("Loaded slot " + msg.slot + ".")})
		m.suggestions = nil
		m.slot = msg.slot
		m = m.refresh()
		return m.layout(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh re-reads the session and syncs the input state
func (m Model) refresh() Model {
	m.snap = m.session.Snapshot()
	switch {
	case m.busy:
		m.input.Placeholder = placeholderBusy
		m.input.Blur()
	case m.autoplay:
		m.input.Placeholder = placeholderAutoplay
		m.input.Focus()
	default:
		m.input.Placeholder = placeholderIdle
		m.input.Focus()
	}
	return m
}

func (m Model) logWidth() int {
	if m.width == 0 {
		return m.viewport.Width
	}
	return int(float64(m.width) * logShare)
}

// layout sizes the viewport around the suggestions and redraws the log
func (m Model) layout() Model {
	if m.width > 0 {
		rows := min(len(m.suggestions), maxSuggested)
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(m.height-rows-6, 3)
		m.input.Width = max(m.width-4, 10)
	}
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
	return m
}

func (m Model) renderLog() string {
	width := m.logWidth()
	blocks := make([]string, 0, len(m.log))
	for _, e := range m.log {
		if e.err != "" {
			blocks = append(blocks, errorStyle.Width(width).Render(e.err))
			continue
		}
		if block := renderIntent(e.intent, width); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) View() string {
	panelWidth := max(m.width-m.logWidth()-4, 20)
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		renderPanel(m.snap, panelWidth, m.viewport.Height),
	)

	parts := []string{main}
	if sg := renderSuggestions(m.suggestions, m.logWidth()); sg != "" {
		parts = append(parts, sg)
	}
	parts = append(parts,
		"\n"+m.input.View(),
		helpStyle.Render("/1-/9 pick a suggestion, /help for commands, Esc to quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// suggestionsFrom rebuilds suggestions from a published intent. In battle
// the actions are class moves.
func suggestionsFrom(in intents.Intent) []resolver.Suggestion {
	out := make([]resolver.Suggestion, 0, len(in.Actions))
	for _, action := range in.Actions {
		if in.InBattle {
			out = append(out, resolver.Suggestion{Label: action, Action: combat.MoveAction(action), Move: true})
			continue
		}
		out = append(out, resolver.Suggestion{Label: action, Action: action})
	}
	return out
}

func (m Model) handleInput(text string) (tea.Model, tea.Cmd) {
	cmd, ok, err := ParseCommand(text)
	if err != nil {
		m.log = append(m.log, entry{err: errors.GetMessage(err)})
		return m.layout(), nil
	}
	if !ok {
		return m.submit(text)
	}
	if cmd.Typed != "" {
		m.log = append(m.log, entry{intent: intents.System(fmt.Sprintf("/%s: running /%s", cmd.Typed, cmd.Name))})
	}
	return m.runCommand(cmd)
}

// submit sends player text, waiting for autoplay to wind down first
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	if m.autoplay {
		m.session.StopAutoplay()
		m.pending = text
		m.log = append(m.log, entry{intent: intents.System("Autoplay stopped. Your action goes next.")})
		return m.layout(), nil
	}
	m.busy = true
	m = m.refresh()
	return m.layout(), m.submitTurn(text)
}

func (m Model) submitTurn(text string) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		out, err := s.Submit(ctx, &session.SubmitInput{Text: text})
		return turnDoneMsg{outcome: out, err: err}
	}
}

func (m Model) runTurn(text string) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		out, err := s.RunTurn(ctx, &session.RunTurnInput{Text: text, Silent: true})
		return turnDoneMsg{outcome: out, err: err}
	}
}

func (m Model) loadGame(slot string) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		out, err := s.Load(ctx, &session.LoadInput{Slot: slot})
		if err != nil {
			return loadedMsg{slot: slot, err: err}
		}
		return loadedMsg{slot: slot, transcript: out.Transcript}
	}
}

func (m Model) runAutoplay() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		return autoplayDoneMsg{err: s.RunAutoplay(ctx, nil)}
	}
}

// background runs fn off the update loop; session calls that publish
// intents must never run inside Update
func background(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		notice, err := fn()
		return commandDoneMsg{notice: notice, err: err}
	}
}
