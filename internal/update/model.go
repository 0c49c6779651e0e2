package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/notify"
	"github.com/sandeepkv93/habitd/internal/reminder"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/tracker"
)

type View string

const (
	ViewHabits  View = "Habits"
	ViewHistory View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Habits  string
	History string
	Help    string
	Quit    string
}

// HabitEntry pairs a habit with its completion state on the selected date.
type HabitEntry struct {
	Habit model.Habit
	Done  bool
}

type HabitsState struct {
	Entries     []HabitEntry
	Cursor      int
	CaptureMode bool
	Input       string
}

type HistoryState struct {
	HabitID    string
	HabitTitle string
	Months     []tracker.MonthReport
	Cursor     int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView     View
	SelectedDate    time.Time
	SelectedHabitID string
	Habits          HabitsState
	History         HistoryState
	Palette         CommandPaletteState
	HelpVisible     bool
	Notifications   []notify.Notification
	DesktopEnabled  bool
	notifier        notify.DesktopNotifier
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error
	TriggerLog      []scheduler.TriggerEvent
	Engine          *scheduler.Engine
	tracker         *tracker.Service
	reconciler      *reminder.Reconciler
	// Bubble components used for rich TUI controls
	habitList     list.Model
	historyTable  table.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	dayProgress   progress.Model
	syncSpinner   spinner.Model
	helpModel     help.Model
	helpViewport  viewport.Model
	spinnerActive bool
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type HabitsLoadedMsg struct {
	Entries []HabitEntry
}

type HabitAddedMsg struct {
	Habit model.Habit
}

type HabitToggledMsg struct {
	HabitID   string
	Completed bool
	Delta     int
}

// HabitSavedMsg follows an edit that may affect reminders; Scheduled counts
// the triggers registered by the reconcile pass.
type HabitSavedMsg struct {
	Habit     model.Habit
	Scheduled int
	Warn      error
}

type HabitDeletedMsg struct {
	ID string
}

type HistoryLoadedMsg struct {
	HabitID string
	Title   string
	Months  []tracker.MonthReport
}

type TriggerFiredMsg struct {
	Event scheduler.TriggerEvent
}

func NewModel() Model {
	m := Model{
		CurrentView:  ViewHabits,
		SelectedDate: model.DayOf(time.Now()),
		notifier:     notify.NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Habits:  "1",
			History: "2",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithDeps(svc *tracker.Service, engine *scheduler.Engine, rec *reminder.Reconciler, notifier notify.DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel()
	m.tracker = svc
	m.Engine = engine
	m.reconciler = rec
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	// The startup reconcile pass runs from Init; show the spinner until its
	// status lands.
	m.spinnerActive = svc != nil && rec != nil
	return m
}

func (m *Model) initBubbleComponents() {
	m.habitList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.habitList.Title = "Habits (list)"
	m.habitList.SetShowHelp(false)
	m.habitList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Month", Width: 14},
		{Title: "Done", Width: 6},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.dayProgress = progress.New(progress.WithDefaultGradient())

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Habits.Entries))
	for _, entry := range m.Habits.Entries {
		desc := string(entry.Habit.Segment)
		if entry.Habit.VisualTime != nil {
			desc += " @" + entry.Habit.VisualTime.String()
		}
		items = append(items, listItem{title: entry.Habit.Title, description: desc})
	}
	m.habitList.SetItems(items)
	if len(items) > 0 && m.Habits.Cursor < len(items) {
		m.habitList.Select(m.Habits.Cursor)
	}

	rows := make([]table.Row, 0, len(m.History.Months))
	for _, month := range m.History.Months {
		rows = append(rows, table.Row{monthLabel(month), itoa(len(month.Days))})
	}
	m.historyTable.SetRows(rows)
	if len(rows) > 0 && m.History.Cursor < len(rows) {
		m.historyTable.SetCursor(m.History.Cursor)
	}

	m.quickAddInput.SetValue(m.Habits.Input)
	m.commandInput.SetValue(m.Palette.Input)
	if m.Habits.CaptureMode {
		m.quickAddInput.Focus()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	_ = m.dayProgress.SetPercent(m.dailyTally().Fraction())
	if m.HelpVisible {
		m.helpViewport.SetContent(m.renderHelpMarkdown())
	}
}

// dailyTally computes progress across habits due on the selected date.
func (m Model) dailyTally() tracker.Tally {
	habits := make([]model.Habit, 0, len(m.Habits.Entries))
	done := make(map[string]bool, len(m.Habits.Entries))
	for _, entry := range m.Habits.Entries {
		habits = append(habits, entry.Habit)
		done[entry.Habit.ID] = entry.Done
	}
	return tracker.DailyTally(habits, m.SelectedDate, func(id string) bool { return done[id] })
}

func (m Model) currentHabit() (model.Habit, bool) {
	if len(m.Habits.Entries) == 0 {
		return model.Habit{}, false
	}
	if m.Habits.Cursor < 0 || m.Habits.Cursor >= len(m.Habits.Entries) {
		return model.Habit{}, false
	}
	return m.Habits.Entries[m.Habits.Cursor].Habit, true
}
