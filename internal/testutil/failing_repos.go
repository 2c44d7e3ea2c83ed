package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/repository"
)

// ErrInjected is the default error returned by the flaky repositories.
var ErrInjected = errors.New("injected persistence failure")

// FlakyStatusRepo wraps a StatusRepo, counts write calls and fails reads or
// writes on demand.
type FlakyStatusRepo struct {
	repository.StatusRepo
	FailReads  atomic.Bool
	FailWrites atomic.Bool
	Writes     atomic.Int32
}

func (r *FlakyStatusRepo) List(ctx context.Context, userID string) ([]domain.StatusEntry, error) {
	if r.FailReads.Load() {
		return nil, ErrInjected
	}
	return r.StatusRepo.List(ctx, userID)
}

func (r *FlakyStatusRepo) Upsert(ctx context.Context, userID string, e domain.StatusEntry) error {
	r.Writes.Add(1)
	if r.FailWrites.Load() {
		return ErrInjected
	}
	return r.StatusRepo.Upsert(ctx, userID, e)
}

func (r *FlakyStatusRepo) Delete(ctx context.Context, userID, id string) error {
	r.Writes.Add(1)
	if r.FailWrites.Load() {
		return ErrInjected
	}
	return r.StatusRepo.Delete(ctx, userID, id)
}

// FlakyBPMRepo is the BPMRepo counterpart of FlakyStatusRepo.
type FlakyBPMRepo struct {
	repository.BPMRepo
	FailReads  atomic.Bool
	FailWrites atomic.Bool
	Writes     atomic.Int32
}

func (r *FlakyBPMRepo) List(ctx context.Context, userID string) ([]domain.BPMEntry, error) {
	if r.FailReads.Load() {
		return nil, ErrInjected
	}
	return r.BPMRepo.List(ctx, userID)
}

func (r *FlakyBPMRepo) Get(ctx context.Context, userID, id string) (int, error) {
	if r.FailReads.Load() {
		return 0, ErrInjected
	}
	return r.BPMRepo.Get(ctx, userID, id)
}

func (r *FlakyBPMRepo) Raise(ctx context.Context, userID string, e domain.BPMEntry) (bool, error) {
	r.Writes.Add(1)
	if r.FailWrites.Load() {
		return false, ErrInjected
	}
	return r.BPMRepo.Raise(ctx, userID, e)
}

func (r *FlakyBPMRepo) Delete(ctx context.Context, userID, id string) error {
	r.Writes.Add(1)
	if r.FailWrites.Load() {
		return ErrInjected
	}
	return r.BPMRepo.Delete(ctx, userID, id)
}

// FlakyLogRepo fails Insert on demand.
type FlakyLogRepo struct {
	repository.PracticeLogRepo
	FailWrites atomic.Bool
	Inserts    atomic.Int32
}

func (r *FlakyLogRepo) Insert(ctx context.Context, userID string, draft domain.LogDraft) (*domain.PracticeLogEntry, error) {
	r.Inserts.Add(1)
	if r.FailWrites.Load() {
		return nil, ErrInjected
	}
	return r.PracticeLogRepo.Insert(ctx, userID, draft)
}
