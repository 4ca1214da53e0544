package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		isCmd  bool
		expect Command
	}{
		{name: "plain text", input: "I open the door", isCmd: false},
		{name: "save with slot", input: "/save  slot-2 ", isCmd: true, expect: Command{Name: CmdSave, Args: "slot-2"}},
		{name: "case insensitive", input: "/UNDO", isCmd: true, expect: Command{Name: CmdUndo}},
		{name: "suggestion", input: "/3", isCmd: true, expect: Command{Name: CmdPick, Index: 3}},
		{name: "alias", input: "/exit", isCmd: true, expect: Command{Name: CmdQuit}},
		{name: "member target", input: "/upgrade Lyra: Strength", isCmd: true, expect: Command{Name: CmdUpgrade, Args: "Lyra: Strength"}},
		{name: "misspelled", input: "/uppgrade Strength", isCmd: true, expect: Command{Name: CmdUpgrade, Args: "Strength", Typed: "uppgrade"}},
		{name: "short misspelling", input: "/sve", isCmd: true, expect: Command{Name: CmdSave, Typed: "sve"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok, err := ParseCommand(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.isCmd, ok)
			assert.Equal(t, tc.expect, cmd)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: "/"},
		{name: "suggestion out of range", input: "/12"},
		{name: "zero", input: "/0"},
		{name: "unknown", input: "/dance wildly"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, err := ParseCommand(tc.input)
			assert.True(t, ok)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestSplitTarget(t *testing.T) {
	target, value := splitTarget("Lyra: Fireball")
	assert.Equal(t, "Lyra", target)
	assert.Equal(t, "Fireball", value)

	target, value = splitTarget("Strength")
	assert.Empty(t, target)
	assert.Equal(t, "Strength", value)
}

func TestHelpText(t *testing.T) {
	help := HelpText()
	for _, name := range commandNames() {
		assert.Contains(t, help, "/"+name)
	}
}
