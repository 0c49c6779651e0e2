package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleHistoryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewHabits
	case "h":
		if m.History.Cursor > 0 {
			m.History.Cursor--
		}
	case "l":
		if m.History.Cursor < len(m.History.Months)-1 {
			m.History.Cursor++
		}
	}
	return m
}
