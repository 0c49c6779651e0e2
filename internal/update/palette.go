package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m, nil
	}

	var pending tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			next, addCmd := m.addHabit(a.Title, a.Segment)
			m = next
			pending = addCmd
			return commands.Result{Message: fmt.Sprintf("adding habit: %s", a.Title)}, nil
		},
		Days: func(d commands.DaysArgs) (commands.Result, error) {
			habit, ok := m.currentHabit()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no habit selected"}
			}
			habit.Weekdays = d.Days
			pending = m.saveHabitCmd(habit)
			m.replaceEntry(habit)
			return commands.Result{Message: fmt.Sprintf("weekdays set: %s", d.Days)}, nil
		},
		Remind: func(r commands.RemindArgs) (commands.Result, error) {
			habit, ok := m.currentHabit()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no habit selected"}
			}
			if r.Off {
				habit.NotificationsEnabled = false
				habit.NotificationTime = nil
				habit.NotificationOffset = model.OffsetAtTime
			} else {
				at := r.At
				habit.NotificationsEnabled = true
				habit.NotificationTime = &at
				habit.NotificationOffset = r.Offset
				if habit.VisualTime == nil {
					habit.VisualTime = &at
				}
			}
			pending = m.saveHabitCmd(habit)
			m.replaceEntry(habit)
			if r.Off {
				return commands.Result{Message: "reminders disabled"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("reminder at %s minus %dm", r.At, int(r.Offset))}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			switch {
			case g.Today:
				m.setSelectedDate(nowDay())
			case g.Date != nil:
				m.setSelectedDate(*g.Date)
			default:
				m.setSelectedDate(m.SelectedDate.AddDate(0, 0, g.DeltaDay))
			}
			pending = m.loadHabitsCmd()
			return commands.Result{Message: fmt.Sprintf("date: %s", m.SelectedDate.Format("2006-01-02"))}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "history":
				next, histCmd := m.openHistoryForSelection()
				m = next.(Model)
				pending = histCmd
				return commands.Result{Message: "showing history"}, nil
			case "help":
				m.HelpVisible = true
				return commands.Result{Message: "showing help"}, nil
			default:
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", s.Subject)}
			}
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m, pending
}
