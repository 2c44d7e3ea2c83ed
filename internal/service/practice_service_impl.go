package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
)

type practiceService struct {
	stores   *StoreRegistry
	observer UseCaseObserver
}

func NewPracticeService(stores *StoreRegistry, observers ...UseCaseObserver) PracticeService {
	return &practiceService{stores: stores, observer: useCaseObserverOrNoop(observers)}
}

func (s *practiceService) GetStatus(ctx context.Context, userID, id string) (domain.Status, error) {
	if _, err := identity.ValidateStatusKey(id); err != nil {
		return "", err
	}
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return "", err
	}
	return store.Status(id), nil
}

func (s *practiceService) SetStatus(ctx context.Context, userID, id string, status domain.Status) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "set-status",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"id": id, "status": string(status)},
		})
	}()

	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return err
	}
	return store.SetStatus(ctx, id, status)
}

func (s *practiceService) ListStatuses(ctx context.Context, userID string) ([]contract.StatusView, error) {
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}
	statuses := store.Statuses()
	out := make([]contract.StatusView, 0, len(statuses))
	for id, st := range statuses {
		out = append(out, contract.StatusView{ID: id, Family: identity.FamilyOf(id), Status: st})
	}
	slices.SortFunc(out, func(a, b contract.StatusView) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *practiceService) GetMasteryBPM(ctx context.Context, userID, shapeID string) (int, error) {
	if _, err := identity.ValidateShapeKey(shapeID); err != nil {
		return 0, err
	}
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return 0, err
	}
	return store.MasteryBPM(shapeID), nil
}

func (s *practiceService) RaiseMasteryBPM(ctx context.Context, userID, shapeID string, bpm int) (resp *contract.RaiseBPMResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"shape_id": shapeID, "bpm": bpm}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "raise-mastery-bpm",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}
	raised, err := store.RaiseMasteryBPM(ctx, shapeID, bpm)
	if err != nil {
		return nil, err
	}
	fields["new_record"] = raised
	return &contract.RaiseBPMResponse{
		ShapeID:   shapeID,
		BPM:       store.MasteryBPM(shapeID),
		NewRecord: raised,
	}, nil
}

func (s *practiceService) ResetMasteryBPM(ctx context.Context, userID, shapeID string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reset-mastery-bpm",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"shape_id": shapeID},
		})
	}()

	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return err
	}
	return store.ResetMasteryBPM(ctx, shapeID)
}

func (s *practiceService) ListBPMs(ctx context.Context, userID string) ([]contract.BPMView, error) {
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}
	bpms := store.BPMs()
	out := make([]contract.BPMView, 0, len(bpms))
	for id, bpm := range bpms {
		out = append(out, contract.BPMView{ShapeID: id, Family: identity.FamilyOf(id), BPM: bpm})
	}
	slices.SortFunc(out, func(a, b contract.BPMView) int { return strings.Compare(a.ShapeID, b.ShapeID) })
	return out, nil
}

func (s *practiceService) ClearFamily(ctx context.Context, userID string, family domain.Family) (resp *contract.ClearFamilyResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"family": string(family)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "clear-family",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if !family.Valid() {
		return nil, fmt.Errorf("%w: family %q", domain.ErrInvalidDomainValue, family)
	}
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}
	res, err := store.ClearFamily(ctx, family)
	if err != nil {
		return nil, err
	}
	fields["statuses"] = res.Statuses
	fields["bpms"] = res.BPMs
	return &contract.ClearFamilyResponse{Family: family, Statuses: res.Statuses, BPMs: res.BPMs}, nil
}
