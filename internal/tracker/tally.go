package tracker

import (
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

// Tally is the day's progress across due habits.
type Tally struct {
	Completed int
	Total     int
}

// Fraction maps the tally onto [0, 1]; an empty day counts as zero progress.
func (t Tally) Fraction() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Completed) / float64(t.Total)
}

// DailyTally counts the habits due on date and how many of them isDone reports
// completed. Habits not due that day are excluded from both counts.
func DailyTally(habits []model.Habit, date time.Time, isDone func(habitID string) bool) Tally {
	var out Tally
	for _, h := range habits {
		if !h.IsDue(date) {
			continue
		}
		out.Total++
		if isDone(h.ID) {
			out.Completed++
		}
	}
	return out
}
