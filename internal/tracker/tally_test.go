package tracker

import (
	"testing"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

func tallyHabit(id string, days model.WeekdaySet) model.Habit {
	return model.Habit{
		ID:        id,
		Title:     "h-" + id,
		Segment:   model.SegmentMorning,
		Repeating: true,
		Weekdays:  days,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDailyTallyCountsOnlyDueHabits(t *testing.T) {
	monday := time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local) // a Monday
	habits := []model.Habit{
		tallyHabit("a", model.NewWeekdaySet(time.Monday)),
		tallyHabit("b", model.NewWeekdaySet(time.Monday, time.Friday)),
		tallyHabit("c", model.NewWeekdaySet(time.Tuesday)), // not due
	}
	done := map[string]bool{"a": true, "c": true}

	got := DailyTally(habits, monday, func(id string) bool { return done[id] })
	if got.Total != 2 {
		t.Fatalf("expected 2 due habits, got %d", got.Total)
	}
	if got.Completed != 1 {
		t.Fatalf("expected 1 completed, got %d", got.Completed)
	}
	if frac := got.Fraction(); frac != 0.5 {
		t.Fatalf("expected fraction 0.5, got %v", frac)
	}
}

func TestDailyTallyEmptyDay(t *testing.T) {
	sunday := time.Date(2026, 3, 8, 10, 0, 0, 0, time.Local)
	habits := []model.Habit{tallyHabit("a", model.NewWeekdaySet(time.Monday))}

	got := DailyTally(habits, sunday, func(string) bool { return true })
	if got.Total != 0 || got.Completed != 0 {
		t.Fatalf("expected empty tally, got %+v", got)
	}
	if got.Fraction() != 0 {
		t.Fatalf("empty day fraction must be 0, got %v", got.Fraction())
	}
}
