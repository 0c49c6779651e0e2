package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/habitd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

// renderHelpMarkdown feeds the scrollable help viewport.
func (m Model) renderHelpMarkdown() string {
	var b strings.Builder
	b.WriteString("# habitd keys\n\n## global\n\n")
	for _, kb := range m.globalBindings() {
		b.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	b.WriteString("\n## current view\n\n")
	for _, kb := range m.viewBindings() {
		b.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	return views.RenderMarkdown(b.String())
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Habits, Action: "switch to Habits"},
		{Key: m.Keys.History, Action: "history for selected habit"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewHabits:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle completion"},
			{Key: "a", Action: "quick add habit"},
			{Key: "D", Action: "delete habit"},
			{Key: "h/l", Action: "previous/next day"},
			{Key: "t", Action: "jump to today"},
		}
	case ViewHistory:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next month"},
			{Key: "esc", Action: "back to habits"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
