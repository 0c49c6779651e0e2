package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/storage"
)

// Service is the habit-tracking core: habit CRUD, completion toggling, and
// history queries over a storage.Repository. It owns identity assignment and
// the model/storage conversion; reminder reconciliation stays with the caller.
type Service struct {
	repo storage.Repository
	now  func() time.Time
}

func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceAt fixes the clock, for tests.
func NewServiceAt(repo storage.Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// CreateHabit assigns an id and creation time when missing, validates, and
// persists the habit. The stored habit is returned.
func (s *Service) CreateHabit(ctx context.Context, h model.Habit) (model.Habit, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now().UTC()
	}
	if err := h.Validate(); err != nil {
		return model.Habit{}, err
	}
	if err := s.repo.CreateHabit(ctx, toStorageHabit(h)); err != nil {
		return model.Habit{}, fmt.Errorf("create habit: %w", err)
	}
	return h, nil
}

func (s *Service) UpdateHabit(ctx context.Context, h model.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateHabit(ctx, toStorageHabit(h)); err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return nil
}

// DeleteHabit removes the habit; its completions go with it via the store's
// cascade.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	if err := s.repo.DeleteHabit(ctx, id); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

func (s *Service) Habit(ctx context.Context, id string) (model.Habit, error) {
	row, err := s.repo.GetHabit(ctx, id)
	if err != nil {
		return model.Habit{}, fmt.Errorf("get habit: %w", err)
	}
	return fromStorageHabit(row)
}

// Habits returns every habit in position order.
func (s *Service) Habits(ctx context.Context) ([]model.Habit, error) {
	rows, err := s.repo.ListHabits(ctx, storage.HabitListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	out := make([]model.Habit, 0, len(rows))
	for _, row := range rows {
		h, err := fromStorageHabit(row)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// IsCompleted reports whether the habit is marked done on date's calendar day.
// A missing record and an unchecked record both read as false.
func (s *Service) IsCompleted(ctx context.Context, habitID string, date time.Time) (bool, error) {
	row, err := s.repo.GetCompletion(ctx, habitID, dayKey(date))
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get completion: %w", err)
	}
	return row.Completed, nil
}

// Toggle flips the habit's completion for date's calendar day and returns the
// resulting record plus the tally delta: +1 when the day became done, -1 when
// it became undone. The flip is a single store transaction.
func (s *Service) Toggle(ctx context.Context, habitID string, date time.Time) (model.Completion, int, error) {
	row, err := s.repo.ToggleCompletion(ctx, habitID, dayKey(date), uuid.NewString(), s.now().UTC())
	if err != nil {
		return model.Completion{}, 0, fmt.Errorf("toggle completion: %w", err)
	}
	completion, err := fromStorageCompletion(row)
	if err != nil {
		return model.Completion{}, 0, err
	}
	delta := -1
	if completion.Completed {
		delta = 1
	}
	return completion, delta, nil
}

// CompletedDays lists the days in [from, to] on which the habit was done,
// ascending.
func (s *Service) CompletedDays(ctx context.Context, habitID string, from, to time.Time) ([]time.Time, error) {
	rows, err := s.repo.ListCompletions(ctx, storage.CompletionListFilter{
		HabitID: habitID,
		FromDay: dayKey(from),
		ToDay:   dayKey(to),
	})
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		if !row.Completed {
			continue
		}
		c, err := fromStorageCompletion(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c.Day)
	}
	return out, nil
}

// MonthHistory groups a habit's completed days by month, from the habit's
// creation month through the month of upTo. Months with no completions are
// omitted.
func (s *Service) MonthHistory(ctx context.Context, h model.Habit, upTo time.Time) ([]MonthReport, error) {
	createdLocal := h.CreatedAt.In(upTo.Location())
	from := time.Date(createdLocal.Year(), createdLocal.Month(), 1, 0, 0, 0, 0, upTo.Location())
	to := model.DayOf(upTo)
	if to.Before(from) {
		return nil, nil
	}

	days, err := s.CompletedDays(ctx, h.ID, from, to)
	if err != nil {
		return nil, err
	}

	var reports []MonthReport
	for _, day := range days {
		y, m := day.Year(), day.Month()
		if n := len(reports); n > 0 && reports[n-1].Year == y && reports[n-1].Month == m {
			reports[n-1].Days = append(reports[n-1].Days, day.Day())
			continue
		}
		reports = append(reports, MonthReport{Year: y, Month: m, Days: []int{day.Day()}})
	}
	return reports, nil
}

// MonthReport is one month's worth of completed days for a habit.
type MonthReport struct {
	Year  int
	Month time.Month
	Days  []int // day-of-month, ascending
}
