package storage

import "time"

// DayLayout is the canonical text form of a calendar day in the store.
const DayLayout = "2006-01-02"

type Habit struct {
	ID                   string
	Title                string
	Segment              string
	Repeating            bool
	Weekdays             int
	SpecificDay          *string
	VisualTime           *string
	NotificationsEnabled bool
	NotificationTime     *string
	NotificationOffset   int
	Position             int
	CreatedAt            time.Time
}

type Completion struct {
	ID        string
	HabitID   string
	Day       string
	Completed bool
	CreatedAt time.Time
}

type HabitListFilter struct {
	Segment string
	Limit   int
	Offset  int
}

type CompletionListFilter struct {
	HabitID string
	FromDay string
	ToDay   string
	Limit   int
	Offset  int
}
