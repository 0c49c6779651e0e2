package model

import "time"

// IsDue reports whether the habit is scheduled on the calendar day of date.
//
// Repeating habits are due on their selected weekdays; dated habits on their
// specific date only. Malformed configuration (no weekdays selected, missing
// specific date) resolves to never due rather than failing.
func (h Habit) IsDue(date time.Time) bool {
	if h.Repeating {
		return h.Weekdays.Has(date.Weekday())
	}
	if h.SpecificDate == nil {
		return false
	}
	return SameDay(date, *h.SpecificDate)
}
