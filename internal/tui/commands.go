package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

// Command names
const (
	CmdPick      = "pick"
	CmdSave      = "save"
	CmdLoad      = "load"
	CmdUndo      = "undo"
	CmdRegen     = "regen"
	CmdEdit      = "edit"
	CmdAutoplay  = "autoplay"
	CmdEquip     = "equip"
	CmdUnequip   = "unequip"
	CmdLearn     = "learn"
	CmdTrait     = "trait"
	CmdUpgrade   = "upgrade"
	CmdEvolve    = "evolve"
	CmdRolls     = "rolls"
	CmdSpeech    = "speech"
	CmdGallery   = "gallery"
	CmdHelp      = "help"
	CmdQuit      = "quit"
	maxSuggested = 9
)

var commandHelp = map[string]string{
	CmdSave:     "/save [slot]           save the game",
	CmdLoad:     "/load [slot]           load a saved game",
	CmdUndo:     "/undo                  forget the last exchange",
	CmdRegen:    "/regen                 ask for the last reply again",
	CmdEdit:     "/edit <text>           rewrite the last reply",
	CmdAutoplay: "/autoplay              let the story continue by itself",
	CmdEquip:    "/equip <item>          equip a weapon, armor or ring",
	CmdUnequip:  "/unequip <slot>        weapon, armor, ring1 or ring2",
	CmdLearn:    "/learn <skill>         unlock a class skill (member: /learn Name: skill)",
	CmdTrait:    "/trait <trait>         unlock a racial trait",
	CmdUpgrade:  "/upgrade <stat>        raise a stat (member: /upgrade Name: stat)",
	CmdEvolve:   "/evolve [name]         list or choose an evolution",
	CmdRolls:    "/rolls                 recent d20 rolls",
	CmdSpeech:   "/speech                toggle narration",
	CmdGallery:  "/gallery               list generated scenes",
	CmdHelp:     "/help                  this list",
	CmdQuit:     "/quit                  leave the game",
}

var aliases = map[string]string{
	"exit":      CmdQuit,
	"q":         CmdQuit,
	"auto":      CmdAutoplay,
	"retry":     CmdRegen,
	"redo":      CmdRegen,
	"tts":       CmdSpeech,
	"evolution": CmdEvolve,
	"?":         CmdHelp,
}

// Command is a parsed slash command
type Command struct {
	Name string
	Args string

	// Index is the 1-based suggestion number for CmdPick
	Index int

	// Typed is what the player wrote when it was corrected to Name
	Typed string
}

// commandNames returns every command in a stable order
func commandNames() []string {
	names := make([]string, 0, len(commandHelp))
	for name := range commandHelp {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// closest finds the command nearest to verb within the edit limit
func closest(verb string) (string, bool) {
	best, bestDist := "", -1
	for _, name := range commandNames() {
		dist := levenshtein.ComputeDistance(verb, name)
		if dist > distanceLimit(len(name)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best, bestDist >= 0
}

// ParseCommand reads a slash command. Plain text returns ok=false. Slightly
// misspelled commands are corrected; unknown ones are InvalidArgument.
func ParseCommand(input string) (cmd Command, ok bool, err error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return Command{}, false, nil
	}

	verb, args, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	verb = strings.ToLower(strings.TrimSpace(verb))
	args = strings.TrimSpace(args)
	if verb == "" {
		return Command{}, true, errors.InvalidArgument("empty command, try /help")
	}

	if n, convErr := strconv.Atoi(verb); convErr == nil {
		if n < 1 || n > maxSuggested {
			return Command{}, true, errors.InvalidArgumentf("pick a suggestion between 1 and %d", maxSuggested)
		}
		return Command{Name: CmdPick, Index: n}, true, nil
	}

	if _, known := commandHelp[verb]; known {
		return Command{Name: verb, Args: args}, true, nil
	}
	if name, known := aliases[verb]; known {
		return Command{Name: name, Args: args}, true, nil
	}
	if name, found := closest(verb); found {
		return Command{Name: name, Args: args, Typed: verb}, true, nil
	}
	return Command{}, true, errors.InvalidArgumentf("unknown command /%s, try /help", verb)
}

// splitTarget reads "Name: value" as a party member target
func splitTarget(args string) (target, value string) {
	if before, after, found := strings.Cut(args, ":"); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return "", strings.TrimSpace(args)
}

// HelpText lists every command
func HelpText() string {
	lines := make([]string, 0, len(commandHelp)+1)
	lines = append(lines, "/1 ... /9              take a numbered suggestion")
	for _, name := range commandNames() {
		lines = append(lines, commandHelp[name])
	}
	return strings.Join(lines, "\n")
}
