package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateHabit(ctx context.Context, in Habit) error
	GetHabit(ctx context.Context, id string) (Habit, error)
	UpdateHabit(ctx context.Context, in Habit) error
	DeleteHabit(ctx context.Context, id string) error
	ListHabits(ctx context.Context, filter HabitListFilter) ([]Habit, error)

	// GetCompletion returns the completion row for one habit-day, or
	// ErrNotFound when the habit was never marked for that day.
	GetCompletion(ctx context.Context, habitID, day string) (Completion, error)
	ListCompletions(ctx context.Context, filter CompletionListFilter) ([]Completion, error)

	// ToggleCompletion flips the habit's completion for the day inside a
	// single write transaction. The first toggle for a day inserts a row
	// with newID and completed=true; later toggles flip the existing row in
	// place, so at most one row ever exists per habit-day.
	ToggleCompletion(ctx context.Context, habitID, day, newID string, now time.Time) (Completion, error)
}
