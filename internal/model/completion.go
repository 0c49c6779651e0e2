package model

import (
	"errors"
	"strings"
	"time"
)

// Completion records whether a habit was done on one calendar day. A record
// with Completed=false is distinguishable from no record at all: it means the
// habit was marked done and later unchecked.
type Completion struct {
	ID        string
	HabitID   string
	Day       time.Time
	Completed bool
}

func (c Completion) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: completion id is required")
	}
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("model: completion habit_id is required")
	}
	if c.Day.IsZero() {
		return errors.New("model: completion day is required")
	}
	return nil
}

// DayOf truncates t to the start of its calendar day in its own location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports calendar-day equality in a's location, ignoring the
// time-of-day component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
