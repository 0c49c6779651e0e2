package reminder

import (
	"fmt"

	"github.com/sandeepkv93/habitd/internal/model"
)

// Plan derives the full trigger set for a habit: one recurring weekly trigger
// per selected weekday, firing at the notification time minus the configured
// offset. The subtraction wraps across hour and day boundaries; the weekday
// of the trigger is the habit's selected weekday either way.
//
// A habit that does not qualify for scheduling yields an empty plan.
func Plan(h model.Habit) []Trigger {
	if !h.Schedulable() {
		return nil
	}
	at := h.NotificationTime.MinusMinutes(int(h.NotificationOffset))
	body := bodyText(h.Title, h.NotificationOffset)

	days := h.Weekdays.Days()
	out := make([]Trigger, 0, len(days))
	for _, d := range days {
		out = append(out, Trigger{
			Key:   TriggerKey{HabitID: h.ID, Weekday: d},
			At:    at,
			Title: h.Title,
			Body:  body,
		})
	}
	return out
}

func bodyText(title string, offset model.ReminderOffset) string {
	switch {
	case offset == model.OffsetAtTime:
		return fmt.Sprintf("Time for: %s!", title)
	case offset == model.OffsetHour:
		return fmt.Sprintf("Reminder: %s in 1 hour", title)
	default:
		return fmt.Sprintf("Reminder: %s in %d minutes", title, int(offset))
	}
}
