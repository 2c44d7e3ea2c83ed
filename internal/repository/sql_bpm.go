package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/etude/internal/db"
	"github.com/alexanderramin/etude/internal/domain"
)

// SQLBPMRepo implements BPMRepo on SQLite or Postgres.
type SQLBPMRepo struct {
	db db.DBTX
}

func NewSQLBPMRepo(conn db.DBTX) *SQLBPMRepo {
	return &SQLBPMRepo{db: conn}
}

func (r *SQLBPMRepo) List(ctx context.Context, userID string) ([]domain.BPMEntry, error) {
	query := `SELECT id, family, bpm, updated_at FROM mastery_bpm WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing mastery bpms: %w", err)
	}
	defer rows.Close()
	return r.scanBPMs(rows)
}

func (r *SQLBPMRepo) Get(ctx context.Context, userID, id string) (int, error) {
	query := `SELECT bpm FROM mastery_bpm WHERE user_id = ? AND id = ?`
	var bpm int
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(&bpm)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting mastery bpm: %w", err)
	}
	return bpm, nil
}

// Raise upserts e only when e.BPM exceeds the stored value. The comparison
// runs in the database, so concurrent writers cannot lower a record.
func (r *SQLBPMRepo) Raise(ctx context.Context, userID string, e domain.BPMEntry) (bool, error) {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = nowUTC()
	}
	query := `INSERT INTO mastery_bpm (user_id, id, family, bpm, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO UPDATE SET
			family = excluded.family,
			bpm = excluded.bpm,
			updated_at = excluded.updated_at
		WHERE excluded.bpm > mastery_bpm.bpm`
	res, err := r.db.ExecContext(ctx, query,
		userID,
		e.ID,
		string(e.Family),
		e.BPM,
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("raising mastery bpm: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting raised mastery bpms: %w", err)
	}
	return n > 0, nil
}

func (r *SQLBPMRepo) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM mastery_bpm WHERE user_id = ? AND id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("deleting mastery bpm: %w", err)
	}
	return nil
}

func (r *SQLBPMRepo) DeleteFamily(ctx context.Context, userID string, family domain.Family) (int64, error) {
	query := `DELETE FROM mastery_bpm WHERE user_id = ? AND family = ?`
	res, err := r.db.ExecContext(ctx, query, userID, string(family))
	if err != nil {
		return 0, fmt.Errorf("deleting %s mastery bpms: %w", family, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted mastery bpms: %w", err)
	}
	return n, nil
}

func (r *SQLBPMRepo) scanBPMs(rows *sql.Rows) ([]domain.BPMEntry, error) {
	var out []domain.BPMEntry
	for rows.Next() {
		var e domain.BPMEntry
		var family, updatedAtStr string
		if err := rows.Scan(&e.ID, &family, &e.BPM, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning mastery bpm row: %w", err)
		}
		e.Family = domain.Family(family)
		updatedAt, err := parseTime(updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing mastery bpm updated_at: %w", err)
		}
		e.UpdatedAt = updatedAt
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mastery bpms: %w", err)
	}
	return out, nil
}
