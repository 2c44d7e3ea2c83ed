package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/etude/internal/db"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/google/uuid"
)

// SQLPracticeLogRepo implements PracticeLogRepo on SQLite or Postgres.
type SQLPracticeLogRepo struct {
	db  db.DBTX
	now func() time.Time
}

// LogRepoOption configures a SQLPracticeLogRepo.
type LogRepoOption func(*SQLPracticeLogRepo)

// WithLogClock overrides the clock used to stamp new entries.
func WithLogClock(now func() time.Time) LogRepoOption {
	return func(r *SQLPracticeLogRepo) { r.now = now }
}

func NewSQLPracticeLogRepo(conn db.DBTX, opts ...LogRepoOption) *SQLPracticeLogRepo {
	r := &SQLPracticeLogRepo{db: conn, now: nowUTC}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *SQLPracticeLogRepo) Insert(ctx context.Context, userID string, draft domain.LogDraft) (*domain.PracticeLogEntry, error) {
	if draft.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration %d", domain.ErrInvalidDomainValue, draft.DurationMinutes)
	}
	items, err := domain.MarshalItems(draft.Items)
	if err != nil {
		return nil, fmt.Errorf("encoding log items: %w", err)
	}
	e := &domain.PracticeLogEntry{
		ID:              uuid.New().String(),
		UserID:          userID,
		DurationMinutes: draft.DurationMinutes,
		Items:           draft.Items,
		Notes:           draft.Notes,
		CreatedAt:       r.now().UTC(),
	}

	query := `INSERT INTO practice_logs (id, user_id, duration_minutes, items, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.DurationMinutes,
		string(items),
		e.Notes,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting practice log: %w", err)
	}
	return e, nil
}

func (r *SQLPracticeLogRepo) List(ctx context.Context, userID string, limit int) ([]*domain.PracticeLogEntry, error) {
	query := `SELECT id, user_id, duration_minutes, items, notes, created_at
		FROM practice_logs WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing practice logs: %w", err)
	}
	defer rows.Close()

	var out []*domain.PracticeLogEntry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating practice logs: %w", err)
	}
	return out, nil
}

func (r *SQLPracticeLogRepo) GetByID(ctx context.Context, userID, id string) (*domain.PracticeLogEntry, error) {
	query := `SELECT id, user_id, duration_minutes, items, notes, created_at
		FROM practice_logs WHERE user_id = ? AND id = ?`
	e, err := r.scanEntry(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("practice log: %w", ErrNotFound)
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLPracticeLogRepo) scanEntry(row scanner) (*domain.PracticeLogEntry, error) {
	var e domain.PracticeLogEntry
	var items, createdAtStr string
	if err := row.Scan(&e.ID, &e.UserID, &e.DurationMinutes, &items, &e.Notes, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning practice log: %w", err)
	}
	return r.populateEntry(&e, items, createdAtStr)
}

func (r *SQLPracticeLogRepo) populateEntry(e *domain.PracticeLogEntry, items, createdAtStr string) (*domain.PracticeLogEntry, error) {
	decoded, err := domain.UnmarshalItems([]byte(items))
	if err != nil {
		return nil, fmt.Errorf("practice log %s: %w", e.ID, err)
	}
	e.Items = decoded
	createdAt, err := parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing practice log created_at: %w", err)
	}
	e.CreatedAt = createdAt
	return e, nil
}
