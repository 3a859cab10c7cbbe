package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/name"
)

// Exercise is a named, ordered list of fragment records.
type Exercise struct {
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	CreatedAt time.Time         `json:"createdAt"`
	Records   []fragment.Record `json:"fragments"`
}

// Summary describes an exercise without its fragments.
type Summary struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Fragments int       `json:"fragments"`
}

// Save inserts or replaces an exercise and all of its fragments in one transaction.
// On replace, the original creation time is kept.
func (db *DB) Save(ctx context.Context, ex Exercise) error {
	if err := name.Validate(ex.Name); err != nil {
		return fmt.Errorf("store: save: %w", err)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	created := ex.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO exercises (name, title, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title = excluded.title
	`, ex.Name, ex.Title, created.UTC())
	if err != nil {
		return fmt.Errorf("store: upsert exercise: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM fragments WHERE exercise = ?`, ex.Name); err != nil {
		return fmt.Errorf("store: clear fragments: %w", err)
	}

	if len(ex.Records) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO fragments (exercise, position, text, word_count, is_long)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare fragment insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, r := range ex.Records {
			if _, err := stmt.ExecContext(ctx, ex.Name, i+1, r.Text, r.WordCount, r.IsLong); err != nil {
				return fmt.Errorf("store: insert fragment %d: %w", i+1, err)
			}
		}
	}

	return tx.Commit()
}

// Get loads an exercise with its fragments ordered by position.
// Returns ErrNotFound if no exercise has that name.
func (db *DB) Get(ctx context.Context, exerciseName string) (Exercise, error) {
	ex := Exercise{Name: exerciseName}
	err := db.conn.QueryRowContext(ctx,
		`SELECT title, created_at FROM exercises WHERE name = ?`, exerciseName,
	).Scan(&ex.Title, &ex.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, fmt.Errorf("%q: %w", exerciseName, ErrNotFound)
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("store: get exercise: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT position, text, word_count, is_long
		FROM fragments
		WHERE exercise = ?
		ORDER BY position`, exerciseName)
	if err != nil {
		return Exercise{}, fmt.Errorf("store: get fragments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r fragment.Record
		if err := rows.Scan(&r.Order, &r.Text, &r.WordCount, &r.IsLong); err != nil {
			return Exercise{}, fmt.Errorf("store: scan fragment: %w", err)
		}
		ex.Records = append(ex.Records, r)
	}
	if err := rows.Err(); err != nil {
		return Exercise{}, fmt.Errorf("store: get fragments: %w", err)
	}
	return ex, nil
}

// List returns every exercise, newest first.
func (db *DB) List(ctx context.Context) ([]Summary, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT e.name, e.title, e.created_at, COUNT(f.position)
		FROM exercises e
		LEFT JOIN fragments f ON f.exercise = e.name
		GROUP BY e.name
		ORDER BY e.created_at DESC, e.name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Name, &s.Title, &s.CreatedAt, &s.Fragments); err != nil {
			return nil, fmt.Errorf("store: scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes an exercise and its fragments.
// Returns ErrNotFound if no exercise has that name.
func (db *DB) Delete(ctx context.Context, exerciseName string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM exercises WHERE name = ?`, exerciseName)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", exerciseName, ErrNotFound)
	}
	return nil
}
