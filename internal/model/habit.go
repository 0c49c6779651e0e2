package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidSegment = errors.New("model: invalid day segment")
	ErrInvalidOffset  = errors.New("model: invalid reminder offset")
	ErrNoWeekdays     = errors.New("model: repeating habit needs at least one weekday")
	ErrNoSpecificDate = errors.New("model: dated habit needs a specific date")
)

type DaySegment string

const (
	SegmentMorning   DaySegment = "Morning"
	SegmentAfternoon DaySegment = "Afternoon"
	SegmentEvening   DaySegment = "Evening"
)

func (s DaySegment) IsValid() bool {
	switch s {
	case SegmentMorning, SegmentAfternoon, SegmentEvening:
		return true
	default:
		return false
	}
}

// Segments lists the day segments in display order.
func Segments() []DaySegment {
	return []DaySegment{SegmentMorning, SegmentAfternoon, SegmentEvening}
}

// ReminderOffset is the number of minutes before the reminder time that a
// notification fires.
type ReminderOffset int

const (
	OffsetAtTime  ReminderOffset = 0
	OffsetFive    ReminderOffset = 5
	OffsetFifteen ReminderOffset = 15
	OffsetThirty  ReminderOffset = 30
	OffsetHour    ReminderOffset = 60
)

func (o ReminderOffset) IsValid() bool {
	switch o {
	case OffsetAtTime, OffsetFive, OffsetFifteen, OffsetThirty, OffsetHour:
		return true
	default:
		return false
	}
}

// WeekdaySet is a set of weekdays stored as a bitmask, bit 0 = Sunday.
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// EveryDay contains all seven weekdays.
func EveryDay() WeekdaySet {
	return NewWeekdaySet(
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	)
}

func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

func (s WeekdaySet) Without(d time.Weekday) WeekdaySet {
	return s &^ (1 << uint(d))
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) IsEmpty() bool {
	return s&0x7f == 0
}

func (s WeekdaySet) Count() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Days returns the selected weekdays in Sunday..Saturday order.
func (s WeekdaySet) Days() []time.Weekday {
	out := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s WeekdaySet) String() string {
	if s.IsEmpty() {
		return "none"
	}
	if s == EveryDay() {
		return "every day"
	}
	parts := make([]string, 0, 7)
	for _, d := range s.Days() {
		parts = append(parts, d.String()[:3])
	}
	return strings.Join(parts, ",")
}

// Habit is a user-defined recurring or single-date practice.
//
// A repeating habit is due on the weekdays in Weekdays; a non-repeating habit
// is due only on SpecificDate. VisualTime is the time shown next to the habit;
// NotificationTime mirrors it while notifications are on. Completions are kept
// in storage, keyed by habit id and day, not embedded here.
type Habit struct {
	ID                   string
	Title                string
	Segment              DaySegment
	Repeating            bool
	Weekdays             WeekdaySet
	SpecificDate         *time.Time
	VisualTime           *ClockTime
	NotificationsEnabled bool
	NotificationTime     *ClockTime
	NotificationOffset   ReminderOffset
	Position             int
	CreatedAt            time.Time
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Title) == "" {
		return errors.New("model: habit title is required")
	}
	if !h.Segment.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSegment, h.Segment)
	}
	if h.CreatedAt.IsZero() {
		return errors.New("model: habit created_at is required")
	}
	if h.Repeating && h.Weekdays.IsEmpty() {
		return ErrNoWeekdays
	}
	if !h.Repeating && h.SpecificDate == nil {
		return ErrNoSpecificDate
	}
	if !h.NotificationOffset.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, h.NotificationOffset)
	}
	if h.NotificationsEnabled && h.NotificationTime == nil {
		return errors.New("model: notification time is required when notifications are enabled")
	}
	if h.VisualTime != nil {
		if err := h.VisualTime.Validate(); err != nil {
			return err
		}
	}
	if h.NotificationTime != nil {
		if err := h.NotificationTime.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Schedulable reports whether the habit qualifies for reminder registration:
// notifications on, a time set, and at least one weekday selected.
func (h Habit) Schedulable() bool {
	return h.NotificationsEnabled && h.NotificationTime != nil && !h.Weekdays.IsEmpty()
}
