package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3)
	if m.Engine != nil {
		cmds = append(cmds, waitForTriggerCmd(m.Engine.C()))
	}
	if cmd := m.loadHabitsCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.reconcileAllCmd(); cmd != nil {
		cmds = append(cmds, cmd, m.syncSpinner.Tick)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncBubbleData()

	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		keyStr := typed.String()
		if m.Habits.CaptureMode && keyStr != "ctrl+c" {
			next, cmd := m.handleCaptureKey(typed)
			return next, cmd
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Habits:
			m.CurrentView = ViewHabits
			return m, nil
		case m.Keys.History, "H":
			return m.openHistoryForSelection()
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewHabits {
			return m.handleHabitsKey(typed)
		}
		if m.CurrentView == ViewHistory {
			return m.handleHistoryKey(typed), nil
		}
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if typed.View == ViewHabits || typed.View == ViewHistory {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		if strings.Contains(typed.Text, "armed") {
			m.spinnerActive = false
		}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case HabitsLoadedMsg:
		m.Habits.Entries = typed.Entries
		if m.Habits.Cursor >= len(typed.Entries) {
			m.Habits.Cursor = 0
		}
		m.syncSelectedHabitToCursor()
		return m, nil
	case HabitAddedMsg:
		m.Habits.Entries = append(m.Habits.Entries, HabitEntry{Habit: typed.Habit})
		m.Habits.Cursor = len(m.Habits.Entries) - 1
		m.syncSelectedHabitToCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("habit added: %s", typed.Habit.Title), IsError: false}
		m.notify("Habit", m.Status.Text, "info")
		return m, nil
	case HabitToggledMsg:
		m.applyToggle(typed)
		return m, nil
	case HabitSavedMsg:
		m.replaceEntry(typed.Habit)
		if typed.Warn != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("saved with reminder errors: %v", typed.Warn), IsError: true}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("habit saved, %d trigger(s) armed", typed.Scheduled), IsError: false}
		}
		m.notify("Habit", m.Status.Text, levelFromError(typed.Warn != nil))
		return m, nil
	case HabitDeletedMsg:
		m.removeEntry(typed.ID)
		m.Status = StatusBar{Text: "habit deleted", IsError: false}
		m.notify("Habit", m.Status.Text, "info")
		return m, nil
	case HistoryLoadedMsg:
		m.History = HistoryState{HabitID: typed.HabitID, HabitTitle: typed.Title, Months: typed.Months}
		m.CurrentView = ViewHistory
		return m, nil
	case TriggerFiredMsg:
		m.TriggerLog = append(m.TriggerLog, typed.Event)
		if len(m.TriggerLog) > 20 {
			m.TriggerLog = m.TriggerLog[len(m.TriggerLog)-20:]
		}
		m.Status = StatusBar{Text: typed.Event.Body, IsError: false}
		m.notify(typed.Event.Title, typed.Event.Body, "info")
		if m.Engine != nil {
			return m, waitForTriggerCmd(m.Engine.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := m.renderCommandPalette() + m.renderHelpIfVisible()
	switch m.CurrentView {
	case ViewHabits:
		leftPane = m.renderHabitsView()
	case ViewHistory:
		leftPane = m.renderHistoryView()
	}
	notificationView := ""
	if len(m.TriggerLog) > 0 {
		last := m.TriggerLog[len(m.TriggerLog)-1]
		notificationView = fmt.Sprintf("last-reminder: %s @ %s", last.ID, last.TriggerAt.Format("15:04:05"))
	}
	if m.spinnerActive {
		spin := m.syncSpinner.View()
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "reconcile: " + spin + " running"}, "\n"))
	}
	notificationView = strings.TrimSpace(strings.Join([]string{
		notificationView,
		strings.TrimSpace(m.renderNotificationsView()),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("habitd | date: %s | selected: %s", m.SelectedDate.Format("2006-01-02"), m.SelectedHabitID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s habits | %s history | / cmd | %s help | %s quit", m.Keys.Habits, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) openHistoryForSelection() (tea.Model, tea.Cmd) {
	habit, ok := m.currentHabit()
	if !ok {
		m.Status = StatusBar{Text: "no habit selected", IsError: true}
		return m, nil
	}
	if cmd := m.loadHistoryCmd(habit); cmd != nil {
		return m, cmd
	}
	// Without a store there is no history to load; still switch views.
	m.History = HistoryState{HabitID: habit.ID, HabitTitle: habit.Title}
	m.CurrentView = ViewHistory
	return m, nil
}

func (m *Model) setSelectedDate(date time.Time) {
	m.SelectedDate = model.DayOf(date)
}
