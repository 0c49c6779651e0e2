package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

type fakeNotifier struct {
	pending    map[string]Trigger
	cancelled  []string
	ops        []string
	failFor    map[string]error
	cancelErr  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		pending: make(map[string]Trigger),
		failFor: make(map[string]error),
	}
}

func (f *fakeNotifier) Schedule(_ context.Context, t Trigger) error {
	f.ops = append(f.ops, "schedule:"+t.Key.String())
	if err := f.failFor[t.Key.String()]; err != nil {
		return err
	}
	f.pending[t.Key.String()] = t
	return nil
}

func (f *fakeNotifier) Cancel(_ context.Context, ids []string) error {
	f.ops = append(f.ops, "cancel")
	if f.cancelErr != nil {
		return f.cancelErr
	}
	for _, id := range ids {
		delete(f.pending, id)
		f.cancelled = append(f.cancelled, id)
	}
	return nil
}

func TestReconcileRegistersPlannedTriggers(t *testing.T) {
	n := newFakeNotifier()
	r := NewReconciler(n)

	scheduled, err := r.Reconcile(context.Background(), reminderHabit())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(scheduled) != 2 || len(n.pending) != 2 {
		t.Fatalf("expected 2 pending triggers, got scheduled=%d pending=%d", len(scheduled), len(n.pending))
	}

	mon := n.pending["habit-rem-2"]
	if mon.At != model.NewClockTime(7, 45) || mon.Key.Weekday != time.Monday {
		t.Fatalf("unexpected Monday trigger: %+v", mon)
	}
	if _, ok := n.pending["habit-rem-4"]; !ok {
		t.Fatal("missing Wednesday trigger")
	}
}

func TestReconcileCancelsBeforeScheduling(t *testing.T) {
	n := newFakeNotifier()
	// A stale trigger from a weekday that is no longer selected, plus a
	// legacy single-trigger registration.
	n.pending["habit-rem-6"] = Trigger{}
	n.pending["habit-rem"] = Trigger{}

	r := NewReconciler(n)
	if _, err := r.Reconcile(context.Background(), reminderHabit()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if len(n.ops) == 0 || n.ops[0] != "cancel" {
		t.Fatalf("expected cancel before scheduling, ops: %v", n.ops)
	}
	if _, stale := n.pending["habit-rem-6"]; stale {
		t.Fatal("stale trigger survived reconcile")
	}
	if _, legacy := n.pending["habit-rem"]; legacy {
		t.Fatal("legacy trigger survived reconcile")
	}
}

func TestReconcileDisabledLeavesNoTriggers(t *testing.T) {
	n := newFakeNotifier()
	for _, id := range OwnedKeys("habit-rem") {
		n.pending[id] = Trigger{}
	}

	h := reminderHabit()
	h.NotificationsEnabled = false

	r := NewReconciler(n)
	scheduled, err := r.Reconcile(context.Background(), h)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if scheduled != nil {
		t.Fatalf("expected no scheduled triggers, got %d", len(scheduled))
	}
	if len(n.pending) != 0 {
		t.Fatalf("expected zero pending triggers for the habit, got %d", len(n.pending))
	}
}

func TestReconcilePartialFailureDoesNotBlockRemaining(t *testing.T) {
	n := newFakeNotifier()
	n.failFor["habit-rem-2"] = errors.New("permission denied")

	r := NewReconciler(n)
	scheduled, err := r.Reconcile(context.Background(), reminderHabit())
	if err == nil {
		t.Fatal("expected an error for the failed trigger")
	}
	if len(scheduled) != 1 || scheduled[0].Key.Weekday != time.Wednesday {
		t.Fatalf("expected Wednesday to register anyway, got %+v", scheduled)
	}
}

func TestReconcileCancelFailureAborts(t *testing.T) {
	n := newFakeNotifier()
	n.cancelErr = errors.New("service unavailable")

	r := NewReconciler(n)
	if _, err := r.Reconcile(context.Background(), reminderHabit()); err == nil {
		t.Fatal("expected error when cancellation fails")
	}
	// Nothing may be scheduled on top of unknown pending state.
	for _, op := range n.ops {
		if op != "cancel" {
			t.Fatalf("unexpected op after failed cancel: %v", n.ops)
		}
	}
}

func TestRemoveCancelsAllKeys(t *testing.T) {
	n := newFakeNotifier()
	for _, id := range OwnedKeys("h9") {
		n.pending[id] = Trigger{}
	}

	r := NewReconciler(n)
	if err := r.Remove(context.Background(), "h9"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(n.pending) != 0 {
		t.Fatalf("expected all triggers cancelled, %d left", len(n.pending))
	}
}
