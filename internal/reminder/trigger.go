package reminder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

var ErrInvalidTriggerKey = errors.New("reminder: invalid trigger key")

// TriggerKey addresses one recurring weekly trigger owned by a habit. It is
// kept structured internally and serialized to the notification service's
// "{habitID}-{weekday}" form only at the boundary, where weekdays use the
// Sunday=1..Saturday=7 convention.
type TriggerKey struct {
	HabitID string
	Weekday time.Weekday
}

func (k TriggerKey) String() string {
	return fmt.Sprintf("%s-%d", k.HabitID, int(k.Weekday)+1)
}

// ParseTriggerKey inverts TriggerKey.String. Habit ids may themselves contain
// dashes, so the weekday is taken from the final segment.
func ParseTriggerKey(raw string) (TriggerKey, error) {
	idx := strings.LastIndex(raw, "-")
	if idx <= 0 || idx == len(raw)-1 {
		return TriggerKey{}, fmt.Errorf("%w: %q", ErrInvalidTriggerKey, raw)
	}
	n, err := strconv.Atoi(raw[idx+1:])
	if err != nil || n < 1 || n > 7 {
		return TriggerKey{}, fmt.Errorf("%w: %q", ErrInvalidTriggerKey, raw)
	}
	return TriggerKey{HabitID: raw[:idx], Weekday: time.Weekday(n - 1)}, nil
}

// Trigger is one recurring weekly notification request: fire every Weekday at
// At, carrying the habit's title and an offset-describing body.
type Trigger struct {
	Key   TriggerKey
	At    model.ClockTime
	Title string
	Body  string
}

// OwnedKeys returns every identifier a habit may have registered under: one
// per weekday plus the bare habit id used by the legacy single-trigger form.
// Cancellation always covers all of them regardless of current configuration.
func OwnedKeys(habitID string) []string {
	out := make([]string, 0, 8)
	for d := time.Sunday; d <= time.Saturday; d++ {
		out = append(out, TriggerKey{HabitID: habitID, Weekday: d}.String())
	}
	return append(out, habitID)
}
