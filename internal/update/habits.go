package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Habits.Cursor > 0 {
			m.Habits.Cursor--
		}
		m.syncSelectedHabitToCursor()
	case "down", "j":
		if m.Habits.Cursor < len(m.Habits.Entries)-1 {
			m.Habits.Cursor++
		}
		m.syncSelectedHabitToCursor()
	case " ", "x":
		habit, ok := m.currentHabit()
		if !ok {
			return m, nil
		}
		if cmd := m.toggleHabitCmd(habit.ID); cmd != nil {
			return m, cmd
		}
		// Without a store, flip in memory so the UI stays usable.
		entry := &m.Habits.Entries[m.Habits.Cursor]
		entry.Done = !entry.Done
	case "a":
		m.Habits.CaptureMode = true
		m.Habits.Input = ""
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "quick add active", IsError: false}
	case "D":
		habit, ok := m.currentHabit()
		if !ok {
			return m, nil
		}
		if cmd := m.deleteHabitCmd(habit.ID); cmd != nil {
			return m, cmd
		}
		m.removeEntry(habit.ID)
	case "h":
		m.setSelectedDate(m.SelectedDate.AddDate(0, 0, -1))
		return m, m.loadHabitsCmd()
	case "l":
		m.setSelectedDate(m.SelectedDate.AddDate(0, 0, 1))
		return m, m.loadHabitsCmd()
	case "t":
		m.setSelectedDate(nowDay())
		return m, m.loadHabitsCmd()
	}
	return m, nil
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Habits.CaptureMode = false
		m.Habits.Input = ""
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "quick add closed", IsError: false}
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.quickAddInput.Value())
		m.Habits.CaptureMode = false
		m.Habits.Input = ""
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
		if title == "" {
			m.Status = StatusBar{Text: "habit title is empty", IsError: true}
			return m, nil
		}
		return m.addHabit(title, model.SegmentMorning)
	}
	if msg.Type == tea.KeyRunes {
		m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
		m.Habits.Input = m.quickAddInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	m.Habits.Input = m.quickAddInput.Value()
	return m, nil
}

// addHabit routes the creation through the store when one is wired, or keeps
// the habit in memory otherwise.
func (m Model) addHabit(title string, segment model.DaySegment) (Model, tea.Cmd) {
	if cmd := m.addHabitCmd(title, segment); cmd != nil {
		return m, cmd
	}
	h := model.Habit{
		ID:        fmt.Sprintf("habit-%d", len(m.Habits.Entries)+1),
		Title:     title,
		Segment:   segment,
		Repeating: true,
		Weekdays:  model.EveryDay(),
		Position:  len(m.Habits.Entries),
		CreatedAt: nowDay(),
	}
	m.Habits.Entries = append(m.Habits.Entries, HabitEntry{Habit: h})
	m.Habits.Cursor = len(m.Habits.Entries) - 1
	m.syncSelectedHabitToCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("habit added: %s", title), IsError: false}
	return m, nil
}

func (m *Model) syncSelectedHabitToCursor() {
	if habit, ok := m.currentHabit(); ok {
		m.SelectedHabitID = habit.ID
	}
}

func (m *Model) applyToggle(msg HabitToggledMsg) {
	for i := range m.Habits.Entries {
		if m.Habits.Entries[i].Habit.ID != msg.HabitID {
			continue
		}
		m.Habits.Entries[i].Done = msg.Completed
		break
	}
	tally := m.dailyTally()
	verb := "done"
	if msg.Delta < 0 {
		verb = "undone"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("marked %s, %d/%d today", verb, tally.Completed, tally.Total), IsError: false}
}

func (m *Model) replaceEntry(h model.Habit) {
	for i := range m.Habits.Entries {
		if m.Habits.Entries[i].Habit.ID == h.ID {
			m.Habits.Entries[i].Habit = h
			return
		}
	}
}

func (m *Model) removeEntry(id string) {
	kept := m.Habits.Entries[:0]
	for _, entry := range m.Habits.Entries {
		if entry.Habit.ID != id {
			kept = append(kept, entry)
		}
	}
	m.Habits.Entries = kept
	if m.Habits.Cursor >= len(m.Habits.Entries) && m.Habits.Cursor > 0 {
		m.Habits.Cursor--
	}
	m.syncSelectedHabitToCursor()
}
