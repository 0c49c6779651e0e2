package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/habitd/internal/model"
)

// Notifier is the local notification service the reconciler drives. Schedule
// registers one recurring weekly trigger; Cancel removes any pending triggers
// with the given ids, silently skipping ids that are not registered.
type Notifier interface {
	Schedule(ctx context.Context, t Trigger) error
	Cancel(ctx context.Context, ids []string) error
}

// Reconciler brings the notification service in line with a habit's current
// reminder configuration. It must be invoked after every mutation to the
// notification toggle, time, offset, or weekday set; it does not observe
// state itself.
type Reconciler struct {
	notifier Notifier
}

func NewReconciler(n Notifier) *Reconciler {
	return &Reconciler{notifier: n}
}

// Reconcile cancels every trigger the habit may own, then, if the habit
// qualifies, registers the current plan. Individual registration failures do
// not block the remaining triggers; they are collected and returned alongside
// the triggers that did register.
func (r *Reconciler) Reconcile(ctx context.Context, h model.Habit) ([]Trigger, error) {
	if err := r.notifier.Cancel(ctx, OwnedKeys(h.ID)); err != nil {
		return nil, fmt.Errorf("cancel triggers for %s: %w", h.ID, err)
	}

	plan := Plan(h)
	if len(plan) == 0 {
		return nil, nil
	}

	scheduled := make([]Trigger, 0, len(plan))
	var errs []error
	for _, t := range plan {
		if err := r.notifier.Schedule(ctx, t); err != nil {
			errs = append(errs, fmt.Errorf("schedule %s: %w", t.Key, err))
			continue
		}
		scheduled = append(scheduled, t)
	}
	return scheduled, errors.Join(errs...)
}

// Remove cancels all of a habit's triggers without rescheduling, for use when
// the habit itself is deleted.
func (r *Reconciler) Remove(ctx context.Context, habitID string) error {
	if err := r.notifier.Cancel(ctx, OwnedKeys(habitID)); err != nil {
		return fmt.Errorf("cancel triggers for %s: %w", habitID, err)
	}
	return nil
}
