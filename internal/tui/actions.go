package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

// fail logs a command error without touching the session
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.log = append(m.log, entry{err: errors.GetMessage(err)})
	return m.layout(), nil
}

func (m Model) notice(text string) (tea.Model, tea.Cmd) {
	m.log = append(m.log, entry{intent: intents.System(text)})
	return m.layout(), nil
}

// lastReply is the conversation index of the newest narrator reply
func (m Model) lastReply() (int, bool) {
	if m.snap == nil {
		return 0, false
	}
	for i := len(m.snap.Conversation) - 1; i > 0; i-- {
		if m.snap.Conversation[i].Role == providers.RoleAssistant {
			return i, true
		}
	}
	return 0, false
}

// findGear looks an unequipped item up by name across the gear pools
func (m Model) findGear(name string) (*entities.Gear, entities.GearKind, bool) {
	if m.snap == nil || m.snap.State == nil {
		return nil, "", false
	}
	pools := []struct {
		kind entities.GearKind
		gear []*entities.Gear
	}{
		{entities.GearKindWeapon, m.snap.State.Weapons},
		{entities.GearKindArmor, m.snap.State.Armors},
		{entities.GearKindRing, m.snap.State.Rings},
	}
	for _, pool := range pools {
		for _, g := range pool.gear {
			if strings.EqualFold(g.Name, name) {
				return g, pool.kind, true
			}
		}
	}
	return nil, "", false
}

func (m Model) runCommand(cmd Command) (tea.Model, tea.Cmd) {
	s, ctx := m.session, m.ctx

	switch cmd.Name {
	case CmdQuit:
		s.StopAutoplay()
		return m, tea.Quit

	case CmdHelp:
		return m.notice(HelpText())

	case CmdPick:
		if cmd.Index > len(m.suggestions) {
			return m.fail(errors.InvalidArgumentf("there is no suggestion %d", cmd.Index))
		}
		return m.submit(m.suggestions[cmd.Index-1].Action)

	case CmdAutoplay:
		if m.autoplay {
			s.StopAutoplay()
			return m.notice("Autoplay will stop after this turn.")
		}
		s.StartAutoplay()
		m.autoplay = true
		m = m.refresh()
		m.log = append(m.log, entry{intent: intents.System("Autoplay started.")})
		return m.layout(), m.runAutoplay()
	}

	// Everything below changes or reads the game and waits for the
	// current turn or autoplay loop.
	if m.autoplay {
		return m.fail(errors.FailedPrecondition("stop autoplay first with /autoplay"))
	}

	switch cmd.Name {
	case CmdSave:
		slot := cmd.Args
		if slot == "" {
			slot = m.slot
		}
		return m, background(func() (string, error) {
			out, err := s.Save(ctx, &session.SaveInput{Slot: slot})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Saved to slot %s (%d turns).", out.Summary.Slot, out.Summary.Turns), nil
		})

	case CmdLoad:
		slot := cmd.Args
		if slot == "" {
			slot = m.slot
		}
		m.busy = true
		m = m.refresh()
		return m, m.loadGame(slot)

	case CmdUndo:
		if err := s.Undo(); err != nil {
			return m.fail(err)
		}
		m = m.refresh()
		return m.notice("The last exchange was forgotten.")

	case CmdRegen:
		index, ok := m.lastReply()
		if !ok {
			return m.fail(errors.FailedPrecondition("there is no reply to regenerate"))
		}
		m.busy = true
		m = m.refresh()
		return m.layout(), func() tea.Msg {
			out, err := s.Regenerate(ctx, &session.RegenerateInput{Index: index})
			return turnDoneMsg{outcome: out, err: err}
		}

	case CmdEdit:
		index, ok := m.lastReply()
		if !ok {
			return m.fail(errors.FailedPrecondition("there is no reply to edit"))
		}
		if err := s.EditNarrative(&session.EditNarrativeInput{Index: index, Narrative: cmd.Args}); err != nil {
			return m.fail(err)
		}
		m = m.refresh()
		return m.notice("The last reply now reads: " + cmd.Args)

	case CmdEquip:
		if cmd.Args == "" {
			return m.fail(errors.InvalidArgument("name the item to equip"))
		}
		gear, kind, ok := m.findGear(cmd.Args)
		if !ok {
			return m.fail(errors.NotFoundf("you are not carrying %q", cmd.Args))
		}
		return m, background(func() (string, error) {
			if err := s.Equip(ctx, &session.EquipInput{ItemID: gear.ID, Kind: kind}); err != nil {
				return "", err
			}
			return "Equipped " + gear.Name + ".", nil
		})

	case CmdUnequip:
		slot, err := entities.ParseSlot(strings.ToLower(cmd.Args))
		if err != nil {
			return m.fail(err)
		}
		return m, background(func() (string, error) {
			if err := s.Unequip(ctx, &session.UnequipInput{Slot: slot}); err != nil {
				return "", err
			}
			return "Unequipped your " + string(slot) + ".", nil
		})

	case CmdLearn, CmdTrait:
		target, skill := splitTarget(cmd.Args)
		if skill == "" {
			return m.fail(errors.InvalidArgument("name the skill to learn"))
		}
		racial := cmd.Name == CmdTrait
		return m, background(func() (string, error) {
			_, err := s.LearnSkill(ctx, &session.LearnSkillInput{Target: target, Skill: skill, Racial: racial})
			return "", err
		})

	case CmdUpgrade:
		target, stat := splitTarget(cmd.Args)
		if stat == "" {
			return m.fail(errors.InvalidArgument("name the stat to upgrade"))
		}
		return m, background(func() (string, error) {
			out, err := s.Upgrade(ctx, &session.UpgradeInput{Target: target, Stat: stat})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s is now %d.", out.Stat, out.Value), nil
		})

	case CmdEvolve:
		if cmd.Args == "" {
			return m, background(func() (string, error) {
				out, err := s.Evolutions(ctx)
				if err != nil {
					return "", err
				}
				if !out.Eligible {
					return "You are not ready to evolve yet.", nil
				}
				lines := []string{"Choose an evolution with /evolve <name>:"}
				for _, opt := range out.Options {
					lines = append(lines, fmt.Sprintf("  %s: %s (%s)", opt.Name, opt.Description, strings.Join(opt.Bonuses, ", ")))
				}
				return strings.Join(lines, "\n"), nil
			})
		}
		name := cmd.Args
		return m, background(func() (string, error) {
			_, err := s.Evolve(ctx, &session.EvolveInput{Name: name})
			return "", err
		})

	case CmdRolls:
		return m, background(func() (string, error) {
			rolls, err := s.RecentRolls(ctx, recentRolls)
			if err != nil {
				return "", err
			}
			if len(rolls) == 0 {
				return "No dice rolled yet.", nil
			}
			results := make([]string, 0, len(rolls))
			for _, r := range rolls {
				results = append(results, strconv.Itoa(r.Result))
			}
			return "Recent d20 rolls: " + strings.Join(results, ", "), nil
		})

	case CmdSpeech:
		if m.media == nil {
			return m.fail(errors.FailedPrecondition("narration is not configured"))
		}
		enabled := !m.media.SpeechEnabled()
		m.media.SetSpeechEnabled(enabled)
		if enabled {
			return m.notice("Narration on.")
		}
		return m.notice("Narration off.")

	case CmdGallery:
		if m.media == nil {
			return m.fail(errors.FailedPrecondition("scene images are not configured"))
		}
		gallery := m.media.Gallery()
		if len(gallery) == 0 {
			return m.notice("No scenes drawn yet.")
		}
		lines := make([]string, 0, len(gallery))
		for _, img := range gallery {
			lines = append(lines, fmt.Sprintf("%d. %s", img.Index, img.Prompt))
		}
		return m.notice(strings.Join(lines, "\n"))
	}

	return m.fail(errors.InvalidArgumentf("unknown command /%s", cmd.Name))
}
