package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/etude/internal/db"
	"github.com/alexanderramin/etude/internal/domain"
)

// SQLStatusRepo implements StatusRepo on SQLite or Postgres.
type SQLStatusRepo struct {
	db db.DBTX
}

// NewSQLStatusRepo creates a new SQLStatusRepo. Postgres connections must
// already be bound with db.DialectPostgres.Bind.
func NewSQLStatusRepo(conn db.DBTX) *SQLStatusRepo {
	return &SQLStatusRepo{db: conn}
}

func (r *SQLStatusRepo) List(ctx context.Context, userID string) ([]domain.StatusEntry, error) {
	query := `SELECT id, family, status, updated_at FROM practice_status WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	defer rows.Close()
	return r.scanStatuses(rows)
}

// Upsert writes e. A row already holding e.Status is left as is.
func (r *SQLStatusRepo) Upsert(ctx context.Context, userID string, e domain.StatusEntry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = nowUTC()
	}
	query := `INSERT INTO practice_status (user_id, id, family, status, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO UPDATE SET
			family = excluded.family,
			status = excluded.status,
			updated_at = excluded.updated_at
		WHERE practice_status.status <> excluded.status`
	_, err := r.db.ExecContext(ctx, query,
		userID,
		e.ID,
		string(e.Family),
		string(e.Status),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting status: %w", err)
	}
	return nil
}

func (r *SQLStatusRepo) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM practice_status WHERE user_id = ? AND id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}
	return nil
}

func (r *SQLStatusRepo) DeleteFamily(ctx context.Context, userID string, family domain.Family) (int64, error) {
	query := `DELETE FROM practice_status WHERE user_id = ? AND family = ?`
	res, err := r.db.ExecContext(ctx, query, userID, string(family))
	if err != nil {
		return 0, fmt.Errorf("deleting %s statuses: %w", family, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted statuses: %w", err)
	}
	return n, nil
}

// scanStatuses scans status rows.
func (r *SQLStatusRepo) scanStatuses(rows *sql.Rows) ([]domain.StatusEntry, error) {
	var out []domain.StatusEntry
	for rows.Next() {
		var e domain.StatusEntry
		var family, status, updatedAtStr string
		if err := rows.Scan(&e.ID, &family, &status, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning status row: %w", err)
		}
		e.Family = domain.Family(family)
		e.Status = domain.Status(status)
		updatedAt, err := parseTime(updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing status updated_at: %w", err)
		}
		e.UpdatedAt = updatedAt
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating statuses: %w", err)
	}
	return out, nil
}
