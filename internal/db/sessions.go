package db

import (
	"context"
	"fmt"
	"time"

	"github.com/j-veylop/focus-tui/internal/models"
)

const sqlTimeLayout = "2006-01-02 15:04:05"

// parseTimeString reads a completed_at column written by InsertSession.
func parseTimeString(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(sqlTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// InsertSession appends a completed interval to the session log.
func (db *DB) InsertSession(ctx context.Context, rec models.SessionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("session record has no id")
	}

	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	query := `
		INSERT INTO sessions (id, mode, minutes, date_key, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Mode),
		rec.Minutes,
		rec.DateKey,
		completedAt.UTC().Format(sqlTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// RecentSessions returns the newest sessions first.
func (db *DB) RecentSessions(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	query := `
		SELECT id, mode, minutes, date_key, completed_at
		FROM sessions
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.SessionRecord
	for rows.Next() {
		var (
			rec         models.SessionRecord
			mode        string
			completedAt string
		)
		if err := rows.Scan(&rec.ID, &mode, &rec.Minutes, &rec.DateKey, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Mode = models.SessionMode(mode)
		if t, ok := parseTimeString(completedAt); ok {
			rec.CompletedAt = t
		}
		sessions = append(sessions, rec)
	}

	return sessions, rows.Err()
}

// SessionCountsByDay returns focus session counts per date key on or after
// fromKey. An empty fromKey returns every day.
func (db *DB) SessionCountsByDay(ctx context.Context, fromKey string) (map[string]int, error) {
	query := `
		SELECT date_key, COUNT(*)
		FROM sessions
		WHERE mode = ? AND date_key >= ?
		GROUP BY date_key
	`

	rows, err := db.QueryContext(ctx, query, string(models.SessionFocus), fromKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query session counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan session count: %w", err)
		}
		counts[key] = count
	}

	return counts, rows.Err()
}

// FocusMinutesTotal returns the minutes of every focus session ever logged.
func (db *DB) FocusMinutesTotal(ctx context.Context) (int, error) {
	var total int
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(minutes), 0) FROM sessions WHERE mode = ?`,
		string(models.SessionFocus),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum focus minutes: %w", err)
	}
	return total, nil
}
