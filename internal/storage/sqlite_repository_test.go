package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func testHabit(id string, created time.Time) Habit {
	return Habit{
		ID:        id,
		Title:     "Morning run",
		Segment:   "Morning",
		Repeating: true,
		Weekdays:  0b0101010, // Mon, Wed, Fri
		Position:  1,
		CreatedAt: created,
	}
}

func TestHabitCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-01T08:00:00Z")

	habit := testHabit("habit-1", created)
	visual := "07:30"
	habit.VisualTime = &visual
	if err := repo.CreateHabit(ctx, habit); err != nil {
		t.Fatalf("create habit: %v", err)
	}

	got, err := repo.GetHabit(ctx, habit.ID)
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if got.Title != habit.Title || got.Weekdays != habit.Weekdays || !got.Repeating {
		t.Fatalf("unexpected habit get result: %#v", got)
	}
	if got.VisualTime == nil || *got.VisualTime != "07:30" {
		t.Fatalf("visual time did not round trip: %#v", got.VisualTime)
	}
	if got.SpecificDay != nil {
		t.Fatalf("expected nil specific day, got %q", *got.SpecificDay)
	}

	habit.Title = "Evening run"
	habit.Segment = "Evening"
	habit.NotificationsEnabled = true
	notifTime := "19:00"
	habit.NotificationTime = &notifTime
	habit.NotificationOffset = 15
	if err := repo.UpdateHabit(ctx, habit); err != nil {
		t.Fatalf("update habit: %v", err)
	}

	evening, err := repo.ListHabits(ctx, HabitListFilter{Segment: "Evening"})
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	if len(evening) != 1 || evening[0].ID != habit.ID || evening[0].NotificationOffset != 15 {
		t.Fatalf("unexpected evening list: %#v", evening)
	}

	if err := repo.DeleteHabit(ctx, habit.ID); err != nil {
		t.Fatalf("delete habit: %v", err)
	}
	_, err = repo.GetHabit(ctx, habit.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestListHabitsOrderedByPosition(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-01T08:00:00Z")

	for i, id := range []string{"habit-c", "habit-a", "habit-b"} {
		h := testHabit(id, created.Add(time.Duration(i)*time.Minute))
		h.Position = 3 - i
		if err := repo.CreateHabit(ctx, h); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	list, err := repo.ListHabits(ctx, HabitListFilter{})
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	if len(list) != 3 || list[0].ID != "habit-b" || list[1].ID != "habit-a" || list[2].ID != "habit-c" {
		t.Fatalf("unexpected order: %v, %v, %v", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestToggleCompletionCreatesThenFlipsInPlace(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-01T08:00:00Z")

	habit := testHabit("habit-tog", created)
	if err := repo.CreateHabit(ctx, habit); err != nil {
		t.Fatalf("create habit: %v", err)
	}

	day := "2026-03-10"
	first, err := repo.ToggleCompletion(ctx, habit.ID, day, "comp-1", created)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if first.ID != "comp-1" || !first.Completed {
		t.Fatalf("unexpected first toggle result: %#v", first)
	}

	second, err := repo.ToggleCompletion(ctx, habit.ID, day, "comp-unused", created)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.ID != "comp-1" {
		t.Fatalf("second toggle created a new row: %#v", second)
	}
	if second.Completed {
		t.Fatal("second toggle should have unchecked the day")
	}

	// Exactly one row exists for the habit-day throughout.
	list, err := repo.ListCompletions(ctx, CompletionListFilter{HabitID: habit.ID})
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 completion row, got %d", len(list))
	}
	if list[0].Completed {
		t.Fatal("row should be unchecked after the second toggle")
	}
}

func TestGetCompletionDistinguishesUncheckedFromMissing(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-01T08:00:00Z")

	habit := testHabit("habit-miss", created)
	if err := repo.CreateHabit(ctx, habit); err != nil {
		t.Fatalf("create habit: %v", err)
	}

	if _, err := repo.GetCompletion(ctx, habit.ID, "2026-03-10"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for never-marked day, got %v", err)
	}

	if _, err := repo.ToggleCompletion(ctx, habit.ID, "2026-03-10", "comp-1", created); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if _, err := repo.ToggleCompletion(ctx, habit.ID, "2026-03-10", "comp-x", created); err != nil {
		t.Fatalf("toggle off: %v", err)
	}

	got, err := repo.GetCompletion(ctx, habit.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("get unchecked completion: %v", err)
	}
	if got.Completed {
		t.Fatal("expected unchecked row to persist")
	}
}

func TestListCompletionsByDayRange(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-01T08:00:00Z")

	habit := testHabit("habit-range", created)
	if err := repo.CreateHabit(ctx, habit); err != nil {
		t.Fatalf("create habit: %v", err)
	}
	for i, day := range []string{"2026-02-27", "2026-03-05", "2026-03-20", "2026-04-01"} {
		id := "comp-" + string(rune('a'+i))
		if _, err := repo.ToggleCompletion(ctx, habit.ID, day, id, created); err != nil {
			t.Fatalf("toggle %s: %v", day, err)
		}
	}

	march, err := repo.ListCompletions(ctx, CompletionListFilter{
		HabitID: habit.ID,
		FromDay: "2026-03-01",
		ToDay:   "2026-03-31",
	})
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(march) != 2 || march[0].Day != "2026-03-05" || march[1].Day != "2026-03-20" {
		t.Fatalf("unexpected march completions: %#v", march)
	}
}

func TestDeleteHabitCascadesCompletions(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-01T08:00:00Z")

	habit := testHabit("habit-cascade", created)
	if err := repo.CreateHabit(ctx, habit); err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if _, err := repo.ToggleCompletion(ctx, habit.ID, "2026-03-10", "comp-1", created); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := repo.DeleteHabit(ctx, habit.ID); err != nil {
		t.Fatalf("delete habit: %v", err)
	}

	list, err := repo.ListCompletions(ctx, CompletionListFilter{HabitID: habit.ID})
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected cascade delete of completions, %d left", len(list))
	}
}
