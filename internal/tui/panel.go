package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/resolver"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-narrator/internal/stats"
)

var (
	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87AFD7")).
			Italic(true)

	diceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F")).
			Bold(true)

	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AFD787"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF875F")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// renderIntent formats one message-like intent as a log entry. Intents
// with nothing to show return "".
func renderIntent(in intents.Intent, width int) string {
	switch in.Kind {
	case intents.KindMessage:
		switch in.Sender {
		case intents.SenderPlayer:
			return playerStyle.Width(width).Render("> " + in.Text)
		case intents.SenderSystem:
			return systemStyle.Width(width).Render(in.Text)
		default:
			return narratorStyle.Width(width).Render(in.Text)
		}
	case intents.KindDiceRoll:
		return diceStyle.Render(fmt.Sprintf("d20: %d", in.Roll))
	case intents.KindSceneImage:
		return sceneStyle.Width(width).Render("[scene] " + in.Prompt)
	}
	return ""
}

func renderSuggestions(list []resolver.Suggestion, width int) string {
	if len(list) == 0 {
		return ""
	}
	lines := make([]string, 0, len(list))
	for i, sg := range list {
		if i >= maxSuggested {
			break
		}
		style := suggestionStyle
		if sg.Move {
			style = moveStyle
		}
		lines = append(lines, style.Width(width).Render(fmt.Sprintf("/%d %s", i+1, sg.Label)))
	}
	return strings.Join(lines, "\n")
}

func gearName(g *entities.Gear) string {
	if g == nil {
		return "-"
	}
	if g.Stats == "" {
		return g.Name
	}
	return g.Name + " (" + g.Stats + ")"
}

func section(b *strings.Builder, title string, lines []string) {
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(lines) == 0 {
		b.WriteString("(none)\n\n")
		return
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// renderPanel draws the character sheet beside the log
func renderPanel(snap *session.Snapshot, width, height int) string {
	if snap == nil || snap.State == nil || snap.State.Player == nil {
		return ""
	}
	state := snap.State
	p := state.Player

	var b strings.Builder

	hero := []string{fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP)}
	if p.Race != nil && p.Class != nil {
		hero = append([]string{p.Race.Name + " " + p.Class.Name}, hero...)
	}
	hero = append(hero, fmt.Sprintf("Level %d  XP %d/%d", p.Level, p.XP, p.XPToNextLevel))
	if p.SkillPoints > 0 || p.UpgradePoints > 0 {
		hero = append(hero, fmt.Sprintf("Skill pts %d  Upgrade pts %d", p.SkillPoints, p.UpgradePoints))
	}
	if p.Evolution != "" {
		hero = append(hero, "Evolution: "+p.Evolution)
	}
	if snap.Autoplaying {
		hero = append(hero, "[autoplay]")
	}
	section(&b, "HERO", hero)

	statLines := make([]string, 0, len(p.Stats))
	for _, name := range stats.Names(p.Stats) {
		statLines = append(statLines, fmt.Sprintf("%s: %d", name, p.Stats[name]))
	}
	section(&b, "STATS", statLines)

	if len(p.StatusEffects) > 0 {
		section(&b, "STATUS", []string(p.StatusEffects))
	}

	eq := state.Equipment
	if eq == nil {
		eq = &entities.Equipment{}
	}
	section(&b, "EQUIPMENT", []string{
		"Weapon: " + gearName(eq.Weapon),
		"Armor:  " + gearName(eq.Armor),
		"Ring 1: " + gearName(eq.Ring1),
		"Ring 2: " + gearName(eq.Ring2),
	})

	var items []string
	for _, it := range state.Inventory {
		items = append(items, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
	}
	for _, pool := range [][]*entities.Gear{state.Weapons, state.Armors, state.Rings} {
		for _, g := range pool {
			items = append(items, gearName(g))
		}
	}
	section(&b, "INVENTORY", items)

	var party []string
	for _, m := range state.Party {
		line := fmt.Sprintf("%s L%d HP %d/%d", m.Name, m.Level, m.HP, m.MaxHP)
		if m.IsSummon {
			line += " (summon)"
		}
		party = append(party, line)
	}
	section(&b, "PARTY", party)

	if len(state.Encounters) > 0 {
		var foes []string
		for _, e := range state.Encounters {
			line := fmt.Sprintf("%s HP %d/%d", e.Name, e.HP, e.MaxHP)
			if len(e.StatusEffects) > 0 {
				line += " [" + strings.Join(e.StatusEffects, ", ") + "]"
			}
			foes = append(foes, line)
		}
		section(&b, "ENCOUNTERS", foes)
	}

	return panelStyle.Width(width).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}
