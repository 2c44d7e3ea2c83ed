package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/alexanderramin/etude/internal/mastery"
	"github.com/alexanderramin/etude/internal/repository"
)

type sessionLogService struct {
	stores   *StoreRegistry
	logs     repository.PracticeLogRepo
	observer UseCaseObserver
}

func NewSessionLogService(stores *StoreRegistry, logs repository.PracticeLogRepo, observers ...UseCaseObserver) SessionLogService {
	return &sessionLogService{
		stores:   stores,
		logs:     logs,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionLogService) LogSession(ctx context.Context, userID string, req contract.LogSessionRequest) (entry *domain.PracticeLogEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{"duration_min": req.DurationMinutes, "items": len(req.Items)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: session duration must be positive, got %d", domain.ErrInvalidDomainValue, req.DurationMinutes)
	}
	for _, item := range req.Items {
		if _, err := identity.ShapeID(item); err != nil {
			return nil, err
		}
	}

	entry, err = s.logs.Insert(ctx, userID, domain.LogDraft{
		DurationMinutes: req.DurationMinutes,
		Items:           req.Items,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, persistErr("appending session", err)
	}
	fields["log_id"] = entry.ID
	return entry, nil
}

// SubmitSnapshot records a clean run of req.Item: the debounce guard admits
// the (shape, BPM) pair, then the shape's mastery BPM is raised and a
// zero-duration entry is appended in one transaction. A failure after
// admission leaves nothing behind and releases the guard so the same
// snapshot can be retried at once.
func (s *sessionLogService) SubmitSnapshot(ctx context.Context, userID string, req contract.SnapshotRequest) (resp *contract.SnapshotResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit-snapshot",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	shapeID, err := identity.ShapeID(req.Item)
	if err != nil {
		return nil, err
	}
	bpm := itemBPM(req.Item)
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: snapshot bpm %d", domain.ErrInvalidDomainValue, bpm)
	}
	fields["shape_id"] = shapeID
	fields["bpm"] = bpm

	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp = &contract.SnapshotResponse{ShapeID: shapeID, BPM: bpm}
	guard := store.Guard()
	ticket, ok := guard.Admit(mastery.SnapshotKey(shapeID, bpm))
	fields["accepted"] = ok
	if !ok {
		return resp, nil
	}

	raised, entry, err := store.RecordSnapshot(ctx, shapeID, bpm, domain.LogDraft{
		Items: []domain.PracticeItem{req.Item},
		Notes: req.Notes,
	})
	if err != nil {
		guard.Rollback(ticket)
		return nil, err
	}

	fields["new_record"] = raised
	resp.Accepted = true
	resp.NewRecord = raised
	resp.Entry = entry
	return resp, nil
}

func (s *sessionLogService) ListLog(ctx context.Context, userID string, req contract.ListLogRequest) ([]*domain.PracticeLogEntry, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	entries, err := s.logs.List(ctx, userID, req.Limit)
	if err != nil {
		return nil, persistErr("listing log", err)
	}
	return entries, nil
}

// LastTargetedBPM returns the BPM of the most recent log item played on
// shapeID, or 0 if the shape was never logged.
func (s *sessionLogService) LastTargetedBPM(ctx context.Context, userID, shapeID string) (int, error) {
	if _, err := identity.ValidateShapeKey(shapeID); err != nil {
		return 0, err
	}
	entries, err := s.ListLog(ctx, userID, contract.ListLogRequest{})
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		for _, item := range e.Items {
			id, err := identity.ShapeID(item)
			if err != nil || id != shapeID {
				continue
			}
			if bpm := itemBPM(item); bpm > 0 {
				return bpm, nil
			}
		}
	}
	return 0, nil
}

func itemBPM(item domain.PracticeItem) int {
	switch it := item.(type) {
	case domain.ScalePractice:
		return it.EffectiveBPM()
	case domain.DohnanyiPractice:
		return it.BPM
	case domain.HanonPractice:
		return it.BPM
	default:
		return 0
	}
}

// persistErr marks a repository failure as retryable unless the repository
// rejected the input itself.
func persistErr(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidDomainValue) || errors.Is(err, domain.ErrPersistenceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistenceUnavailable, op, err)
}
