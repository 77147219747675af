// Package repository implements domain repositories backed by SQLite.
package repository

import (
	"context"
	"database/sql"
	"time"

	"sheetdesk/internal/domain"
)

var _ domain.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo stores activity log entries in SQLite.
type ActivityRepo struct {
	db *sql.DB
}

// NewActivityRepo creates a new ActivityRepo.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Insert appends one activity entry. A zero ID or timestamp is filled in.
func (r *ActivityRepo) Insert(ctx context.Context, e *domain.ActivityEntry) error {
	if e == nil {
		return domain.ErrValidation("activity entry is required")
	}
	if e.Action == "" {
		return domain.ErrValidation("activity action is required")
	}
	if e.ID == "" {
		e.ID = domain.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, action, sheet_name, detail, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Action, e.SheetName, e.Detail, e.RowCount, e.CreatedAt)
	if err != nil {
		return mapDBError(err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first. The UUIDv7 ID is
// the tiebreak for entries sharing a timestamp.
func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, sheet_name, detail, row_count, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, domain.ClampActivityLimit(limit))
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	entries := make([]domain.ActivityEntry, 0)
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.SheetName, &e.Detail, &e.RowCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
