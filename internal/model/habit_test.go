package model

import (
	"errors"
	"testing"
	"time"
)

func validHabit() Habit {
	return Habit{
		ID:        "habit-1",
		Title:     "Morning run",
		Segment:   SegmentMorning,
		Repeating: true,
		Weekdays:  NewWeekdaySet(time.Monday, time.Wednesday, time.Friday),
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestHabitValidate(t *testing.T) {
	if err := validHabit().Validate(); err != nil {
		t.Fatalf("valid habit rejected: %v", err)
	}
}

func TestHabitValidateRejectsRepeatingWithoutWeekdays(t *testing.T) {
	h := validHabit()
	h.Weekdays = 0
	if err := h.Validate(); !errors.Is(err, ErrNoWeekdays) {
		t.Fatalf("expected ErrNoWeekdays, got %v", err)
	}
}

func TestHabitValidateRejectsDatedWithoutDate(t *testing.T) {
	h := validHabit()
	h.Repeating = false
	if err := h.Validate(); !errors.Is(err, ErrNoSpecificDate) {
		t.Fatalf("expected ErrNoSpecificDate, got %v", err)
	}
}

func TestHabitValidateRejectsBadOffset(t *testing.T) {
	h := validHabit()
	h.NotificationOffset = 45
	if err := h.Validate(); !errors.Is(err, ErrInvalidOffset) {
		t.Fatalf("expected ErrInvalidOffset, got %v", err)
	}
}

func TestHabitValidateRejectsEnabledNotificationsWithoutTime(t *testing.T) {
	h := validHabit()
	h.NotificationsEnabled = true
	if err := h.Validate(); err == nil {
		t.Fatal("expected error for enabled notifications without a time")
	}
}

func TestHabitSchedulable(t *testing.T) {
	h := validHabit()
	if h.Schedulable() {
		t.Fatal("habit without notifications should not be schedulable")
	}

	at := NewClockTime(8, 0)
	h.NotificationsEnabled = true
	h.NotificationTime = &at
	if !h.Schedulable() {
		t.Fatal("expected habit to be schedulable")
	}

	h.Weekdays = 0
	if h.Schedulable() {
		t.Fatal("habit with no weekdays should not be schedulable")
	}
}

func TestWeekdaySetOperations(t *testing.T) {
	s := NewWeekdaySet(time.Monday, time.Wednesday)
	if !s.Has(time.Monday) || !s.Has(time.Wednesday) || s.Has(time.Sunday) {
		t.Fatalf("unexpected membership: %v", s.Days())
	}
	if s.Count() != 2 {
		t.Fatalf("expected count 2, got %d", s.Count())
	}

	s = s.With(time.Sunday).Without(time.Monday)
	want := []time.Weekday{time.Sunday, time.Wednesday}
	got := s.Days()
	if len(got) != len(want) {
		t.Fatalf("unexpected days: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("days[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if EveryDay().Count() != 7 {
		t.Fatalf("expected 7 days in EveryDay, got %d", EveryDay().Count())
	}
	if !WeekdaySet(0).IsEmpty() {
		t.Fatal("zero set should be empty")
	}
}

func TestWeekdaySetString(t *testing.T) {
	cases := []struct {
		set  WeekdaySet
		want string
	}{
		{NewWeekdaySet(), "none"},
		{EveryDay(), "every day"},
		{NewWeekdaySet(time.Monday, time.Friday), "Mon,Fri"},
		{NewWeekdaySet(time.Sunday), "Sun"},
	}
	for _, tc := range cases {
		if got := tc.set.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestReminderOffsetIsValid(t *testing.T) {
	for _, o := range []ReminderOffset{0, 5, 15, 30, 60} {
		if !o.IsValid() {
			t.Fatalf("offset %d should be valid", o)
		}
	}
	for _, o := range []ReminderOffset{-5, 1, 10, 45, 90} {
		if o.IsValid() {
			t.Fatalf("offset %d should be invalid", o)
		}
	}
}
