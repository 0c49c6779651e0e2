package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

func waitForTriggerCmd(ch <-chan scheduler.TriggerEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TriggerFiredMsg{Event: ev}
	}
}

func (m Model) loadHabitsCmd() tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	svc := m.tracker
	date := m.SelectedDate
	return func() tea.Msg {
		ctx := context.Background()
		habits, err := svc.Habits(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		entries := make([]HabitEntry, 0, len(habits))
		for _, h := range habits {
			done, err := svc.IsCompleted(ctx, h.ID, date)
			if err != nil {
				return AppErrorMsg{Err: err}
			}
			entries = append(entries, HabitEntry{Habit: h, Done: done})
		}
		return HabitsLoadedMsg{Entries: entries}
	}
}

func (m Model) toggleHabitCmd(habitID string) tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	svc := m.tracker
	date := m.SelectedDate
	return func() tea.Msg {
		completion, delta, err := svc.Toggle(context.Background(), habitID, date)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return HabitToggledMsg{HabitID: habitID, Completed: completion.Completed, Delta: delta}
	}
}

func (m Model) addHabitCmd(title string, segment model.DaySegment) tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	svc := m.tracker
	position := len(m.Habits.Entries)
	return func() tea.Msg {
		created, err := svc.CreateHabit(context.Background(), model.Habit{
			Title:     title,
			Segment:   segment,
			Repeating: true,
			Weekdays:  model.EveryDay(),
			Position:  position,
		})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return HabitAddedMsg{Habit: created}
	}
}

// saveHabitCmd persists an edit and re-runs reminder reconciliation, since the
// edit may have changed the weekday set, notification toggle, time, or offset.
func (m Model) saveHabitCmd(h model.Habit) tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	svc := m.tracker
	rec := m.reconciler
	return func() tea.Msg {
		ctx := context.Background()
		if err := svc.UpdateHabit(ctx, h); err != nil {
			return AppErrorMsg{Err: err}
		}
		scheduled := 0
		var warn error
		if rec != nil {
			triggers, err := rec.Reconcile(ctx, h)
			scheduled = len(triggers)
			warn = err
		}
		return HabitSavedMsg{Habit: h, Scheduled: scheduled, Warn: warn}
	}
}

// deleteHabitCmd cancels the habit's pending triggers before removing the
// record.
func (m Model) deleteHabitCmd(habitID string) tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	svc := m.tracker
	rec := m.reconciler
	return func() tea.Msg {
		ctx := context.Background()
		if rec != nil {
			if err := rec.Remove(ctx, habitID); err != nil {
				return AppErrorMsg{Err: err}
			}
		}
		if err := svc.DeleteHabit(ctx, habitID); err != nil {
			return AppErrorMsg{Err: err}
		}
		return HabitDeletedMsg{ID: habitID}
	}
}

func (m Model) loadHistoryCmd(h model.Habit) tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	svc := m.tracker
	upTo := m.SelectedDate
	return func() tea.Msg {
		months, err := svc.MonthHistory(context.Background(), h, upTo)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return HistoryLoadedMsg{HabitID: h.ID, Title: h.Title, Months: months}
	}
}

// reconcileAllCmd re-registers every habit's triggers, run once on startup so
// the engine reflects the stored configuration.
func (m Model) reconcileAllCmd() tea.Cmd {
	if m.tracker == nil || m.reconciler == nil {
		return nil
	}
	svc := m.tracker
	rec := m.reconciler
	return func() tea.Msg {
		ctx := context.Background()
		habits, err := svc.Habits(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		scheduled := 0
		for _, h := range habits {
			triggers, err := rec.Reconcile(ctx, h)
			if err != nil {
				return AppErrorMsg{Err: err}
			}
			scheduled += len(triggers)
		}
		return SetStatusMsg{Text: itoa(scheduled) + " reminder trigger(s) armed"}
	}
}
