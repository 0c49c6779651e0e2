package scheduler

import (
	"context"
	"time"

	"github.com/sandeepkv93/habitd/internal/reminder"
)

// Notifier adapts the engine to the reconciler's notification service
// interface. Weekly triggers are anchored at their next occurrence in local
// time; the engine re-arms each firing a week ahead.
type Notifier struct {
	engine *Engine
	now    func() time.Time
}

func NewNotifier(engine *Engine) *Notifier {
	return &Notifier{engine: engine, now: time.Now}
}

// NewNotifierAt is like NewNotifier with an injected clock, for tests.
func NewNotifierAt(engine *Engine, now func() time.Time) *Notifier {
	return &Notifier{engine: engine, now: now}
}

func (n *Notifier) Schedule(_ context.Context, t reminder.Trigger) error {
	return n.engine.Schedule(TriggerEvent{
		ID:        t.Key.String(),
		HabitID:   t.Key.HabitID,
		Title:     t.Title,
		Body:      t.Body,
		Weekday:   t.Key.Weekday,
		TriggerAt: nextOccurrence(n.now(), t.Key.Weekday, t.At.Hour, t.At.Minute),
	})
}

func (n *Notifier) Cancel(_ context.Context, ids []string) error {
	n.engine.Cancel(ids)
	return nil
}

// nextOccurrence finds the first instant strictly after now that falls on the
// given weekday at hour:minute in now's location.
func nextOccurrence(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	y, m, d := now.Date()
	candidate := time.Date(y, m, d+daysAhead, hour, minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}
