package update

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/tracker"
)

func entryFor(id, title string, segment model.DaySegment, done bool) HabitEntry {
	return HabitEntry{
		Habit: model.Habit{
			ID:        id,
			Title:     title,
			Segment:   segment,
			Repeating: true,
			Weekdays:  model.EveryDay(),
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Done: done,
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	if m.CurrentView != ViewHabits {
		t.Fatalf("expected default view %q, got %q", ViewHabits, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if !m.SelectedDate.Equal(model.DayOf(m.SelectedDate)) {
		t.Fatalf("expected selected date at start of day, got %v", m.SelectedDate)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	errMsg := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: errMsg})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := NewModel()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestQuickAddHabitWithKeyboard(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	next := updated.(Model)
	if !next.Habits.CaptureMode {
		t.Fatal("expected capture mode after a")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("drink water")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if len(next.Habits.Entries) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(next.Habits.Entries))
	}
	if next.Habits.Entries[0].Habit.Title != "drink water" {
		t.Fatalf("unexpected habit title: %q", next.Habits.Entries[0].Habit.Title)
	}
	if next.Habits.CaptureMode {
		t.Fatal("expected capture mode closed after enter")
	}
	if next.Habits.Entries[0].Habit.Weekdays != model.EveryDay() {
		t.Fatalf("expected every-day default, got %s", next.Habits.Entries[0].Habit.Weekdays)
	}
}

func TestHabitKeyNavigationUpdatesSelection(t *testing.T) {
	m := NewModel()
	m.Habits.Entries = []HabitEntry{
		entryFor("first", "A", model.SegmentMorning, false),
		entryFor("second", "B", model.SegmentEvening, false),
	}
	m.Habits.Cursor = 0
	m.syncSelectedHabitToCursor()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	next := updated.(Model)
	if next.Habits.Cursor != 1 || next.SelectedHabitID != "second" {
		t.Fatalf("expected selection second, got cursor=%d id=%q", next.Habits.Cursor, next.SelectedHabitID)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	next = updated.(Model)
	if next.Habits.Cursor != 0 || next.SelectedHabitID != "first" {
		t.Fatalf("expected selection first, got cursor=%d id=%q", next.Habits.Cursor, next.SelectedHabitID)
	}
}

func TestSpaceTogglesCompletionInMemory(t *testing.T) {
	m := NewModel()
	m.Habits.Entries = []HabitEntry{entryFor("h1", "Run", model.SegmentMorning, false)}
	m.syncSelectedHabitToCursor()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if !next.Habits.Entries[0].Done {
		t.Fatal("expected habit marked done")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next = updated.(Model)
	if next.Habits.Entries[0].Done {
		t.Fatal("expected habit unmarked after second toggle")
	}
}

func TestDateNavigationKeys(t *testing.T) {
	m := NewModel()
	start := m.SelectedDate

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	next := updated.(Model)
	if !next.SelectedDate.Equal(start.AddDate(0, 0, -1)) {
		t.Fatalf("expected previous day, got %v", next.SelectedDate)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	next = updated.(Model)
	if !next.SelectedDate.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("expected next day, got %v", next.SelectedDate)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	next = updated.(Model)
	if !next.SelectedDate.Equal(nowDay()) {
		t.Fatalf("expected today, got %v", next.SelectedDate)
	}
}

func TestViewRendersSegmentSectionsAndProgress(t *testing.T) {
	m := NewModel()
	m.SelectedDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	m.Habits.Entries = []HabitEntry{
		entryFor("h1", "Run", model.SegmentMorning, true),
		entryFor("h2", "Read", model.SegmentEvening, false),
	}
	m.syncSelectedHabitToCursor()
	m.Status = StatusBar{Text: "all good"}

	out := m.View()
	if !strings.Contains(out, "Morning:") || !strings.Contains(out, "Afternoon:") || !strings.Contains(out, "Evening:") {
		t.Fatalf("missing segment sections in view: %q", out)
	}
	if !strings.Contains(out, "[x] Run") {
		t.Fatalf("missing done checkbox: %q", out)
	}
	if !strings.Contains(out, "[ ] Read") {
		t.Fatalf("missing open checkbox: %q", out)
	}
	if !strings.Contains(out, "1/2") {
		t.Fatalf("missing progress tally: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("missing status line: %q", out)
	}
	if !strings.Contains(out, "date: 2026-03-09") {
		t.Fatalf("missing date in header: %q", out)
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("add stretch seg:evening")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatal("expected palette closed after execution")
	}
	if len(next.Habits.Entries) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(next.Habits.Entries))
	}
	if next.Habits.Entries[0].Habit.Segment != model.SegmentEvening {
		t.Fatalf("unexpected segment: %s", next.Habits.Entries[0].Habit.Segment)
	}
}

func TestPaletteGotoCommand(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("goto 2026-04-01")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.SelectedDate.Format("2006-01-02") != "2026-04-01" {
		t.Fatalf("expected selected date 2026-04-01, got %s", next.SelectedDate.Format("2006-01-02"))
	}
}

func TestPaletteDaysRequiresSelection(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("days mon")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !next.Status.IsError {
		t.Fatalf("expected error status without selection, got %+v", next.Status)
	}
}

func TestHistoryNavigationKeys(t *testing.T) {
	m := NewModel()
	m.CurrentView = ViewHistory
	m.History = HistoryState{
		HabitTitle: "Run",
		Months: []tracker.MonthReport{
			{Year: 2026, Month: time.January, Days: []int{3, 4}},
			{Year: 2026, Month: time.March, Days: []int{2}},
		},
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	next := updated.(Model)
	if next.History.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", next.History.Cursor)
	}

	out := next.View()
	if !strings.Contains(out, "history: Run") {
		t.Fatalf("missing history header: %q", out)
	}
	if !strings.Contains(out, "Jan 2026 (2 done)") {
		t.Fatalf("missing month summary: %q", out)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEscape})
	next = updated.(Model)
	if next.CurrentView != ViewHabits {
		t.Fatalf("expected habits view after esc, got %q", next.CurrentView)
	}
}

func TestInitWithEngineReturnsListenerCmd(t *testing.T) {
	engine := scheduler.NewEngine(1)
	m := NewModelWithDeps(nil, engine, nil, nil, DefaultRuntimeConfig())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected trigger wait cmd when engine is attached")
	}
}

func TestTriggerFiredMsgAppendsLogAndRearms(t *testing.T) {
	engine := scheduler.NewEngine(1)
	m := NewModelWithDeps(nil, engine, nil, nil, DefaultRuntimeConfig())
	ev := scheduler.TriggerEvent{
		ID:        "habit-1-2",
		HabitID:   "habit-1",
		Title:     "Run",
		Body:      "Reminder: Run in 15 minutes",
		TriggerAt: time.Date(2026, 3, 9, 7, 45, 0, 0, time.UTC),
	}

	updated, cmd := m.Update(TriggerFiredMsg{Event: ev})
	next := updated.(Model)
	if len(next.TriggerLog) != 1 || next.TriggerLog[0].ID != "habit-1-2" {
		t.Fatalf("unexpected trigger log: %#v", next.TriggerLog)
	}
	if cmd == nil {
		t.Fatal("expected listener rearm cmd")
	}
	if next.Status.Text != "Reminder: Run in 15 minutes" {
		t.Fatalf("expected reminder body as status, got %q", next.Status.Text)
	}
	if len(next.Notifications) == 0 || next.Notifications[len(next.Notifications)-1].Title != "Run" {
		t.Fatalf("expected notification logged: %#v", next.Notifications)
	}
}
