package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidClockTime = errors.New("model: invalid clock time")

// ClockTime is a wall-clock time of day with minute precision, independent of
// any particular date.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ClockTimeOf extracts the hour and minute of t in its own location.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (c ClockTime) Validate() error {
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidClockTime, c.Hour, c.Minute)
	}
	return nil
}

// MinusMinutes subtracts m minutes, wrapping across hour and day boundaries.
// The weekday of a wrapped time is left to the caller.
func (c ClockTime) MinusMinutes(m int) ClockTime {
	total := c.Hour*60 + c.Minute - m
	const day = 24 * 60
	total %= day
	if total < 0 {
		total += day
	}
	return ClockTime{Hour: total / 60, Minute: total % 60}
}

// On places the clock time onto the calendar day of date, in date's location.
func (c ClockTime) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClockTime parses "15:04" formatted input.
func ParseClockTime(raw string) (ClockTime, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, raw)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}
