package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateHabit(ctx context.Context, in Habit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, title, segment, repeating, weekdays, specific_day, visual_time,
			notifications_enabled, notification_time, notification_offset, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Segment, boolInt(in.Repeating), in.Weekdays,
		nullString(in.SpecificDay), nullString(in.VisualTime),
		boolInt(in.NotificationsEnabled), nullString(in.NotificationTime),
		in.NotificationOffset, in.Position, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, id string) (Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, segment, repeating, weekdays, specific_day, visual_time,
			notifications_enabled, notification_time, notification_offset, position, created_at
		FROM habits WHERE id = ?`, id)
	habit, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Habit{}, ErrNotFound
		}
		return Habit{}, err
	}
	return habit, nil
}

func (r *SQLiteRepository) UpdateHabit(ctx context.Context, in Habit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE habits
		SET title = ?, segment = ?, repeating = ?, weekdays = ?, specific_day = ?, visual_time = ?,
			notifications_enabled = ?, notification_time = ?, notification_offset = ?, position = ?
		WHERE id = ?`,
		in.Title, in.Segment, boolInt(in.Repeating), in.Weekdays,
		nullString(in.SpecificDay), nullString(in.VisualTime),
		boolInt(in.NotificationsEnabled), nullString(in.NotificationTime),
		in.NotificationOffset, in.Position, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteHabit(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListHabits(ctx context.Context, filter HabitListFilter) ([]Habit, error) {
	query := `SELECT id, title, segment, repeating, weekdays, specific_day, visual_time,
		notifications_enabled, notification_time, notification_offset, position, created_at
		FROM habits`
	args := make([]any, 0, 3)
	if filter.Segment != "" {
		query += ` WHERE segment = ?`
		args = append(args, filter.Segment)
	}
	query += ` ORDER BY position ASC, created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Habit, 0)
	for rows.Next() {
		habit, scanErr := scanHabit(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, habit)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetCompletion(ctx context.Context, habitID, day string) (Completion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, habit_id, day, completed, created_at
		FROM completions WHERE habit_id = ? AND day = ?`, habitID, day)
	item, err := scanCompletion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Completion{}, ErrNotFound
		}
		return Completion{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) ListCompletions(ctx context.Context, filter CompletionListFilter) ([]Completion, error) {
	query := `SELECT id, habit_id, day, completed, created_at FROM completions`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.HabitID != "" {
		clauses = append(clauses, "habit_id = ?")
		args = append(args, filter.HabitID)
	}
	if filter.FromDay != "" {
		clauses = append(clauses, "day >= ?")
		args = append(args, filter.FromDay)
	}
	if filter.ToDay != "" {
		clauses = append(clauses, "day <= ?")
		args = append(args, filter.ToDay)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY day ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Completion, 0)
	for rows.Next() {
		item, scanErr := scanCompletion(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ToggleCompletion(ctx context.Context, habitID, day, newID string, now time.Time) (Completion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Completion{}, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, habit_id, day, completed, created_at
		FROM completions WHERE habit_id = ? AND day = ?`, habitID, day)
	existing, err := scanCompletion(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		created := Completion{ID: newID, HabitID: habitID, Day: day, Completed: true, CreatedAt: now}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO completions (id, habit_id, day, completed, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			created.ID, created.HabitID, created.Day, boolInt(created.Completed), mustTime(created.CreatedAt),
		); err != nil {
			return Completion{}, fmt.Errorf("insert completion: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return Completion{}, fmt.Errorf("commit toggle: %w", err)
		}
		return created, nil
	case err != nil:
		return Completion{}, err
	default:
		existing.Completed = !existing.Completed
		if _, err := tx.ExecContext(ctx, `
			UPDATE completions SET completed = ? WHERE id = ?`,
			boolInt(existing.Completed), existing.ID,
		); err != nil {
			return Completion{}, fmt.Errorf("flip completion: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return Completion{}, fmt.Errorf("commit toggle: %w", err)
		}
		return existing, nil
	}
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(s scanner) (Habit, error) {
	var out Habit
	var repeating int
	var specificDay sql.NullString
	var visualTime sql.NullString
	var notifEnabled int
	var notifTime sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Segment, &repeating, &out.Weekdays,
		&specificDay, &visualTime, &notifEnabled, &notifTime,
		&out.NotificationOffset, &out.Position, &created); err != nil {
		return Habit{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Habit{}, err
	}
	out.Repeating = repeating == 1
	out.NotificationsEnabled = notifEnabled == 1
	out.SpecificDay = optString(specificDay)
	out.VisualTime = optString(visualTime)
	out.NotificationTime = optString(notifTime)
	out.CreatedAt = createdAt
	return out, nil
}

func scanCompletion(s scanner) (Completion, error) {
	var out Completion
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.HabitID, &out.Day, &completed, &created); err != nil {
		return Completion{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Completion{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func optString(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
