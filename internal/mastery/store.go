// Package mastery holds one user's practice statuses and mastery BPMs.
//
// The repository is the source of truth: every mutation is written through
// first and the in-memory maps change only after the write succeeds. Other
// processes may write the same rows, so status writes and resets always
// reach the repository and BPM records are compared in the database.
package mastery

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/alexanderramin/etude/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Reader is the read side of a store, consumed by grade aggregation and
// recommendations.
type Reader interface {
	Status(id string) domain.Status
	MasteryBPM(shapeID string) int
}

// Backend bundles the persistence collaborators of a Store.
type Backend struct {
	Statuses  repository.StatusRepo
	BPMs      repository.BPMRepo
	Resetter  repository.FamilyResetter
	Snapshots repository.SnapshotRecorder
}

type Store struct {
	mu      sync.RWMutex
	backend Backend
	now     func() time.Time
	guard   *Guard

	userID   string
	statuses map[string]domain.Status
	bpms     map[string]int
}

var _ Reader = (*Store)(nil)

type Option func(*storeConfig)

type storeConfig struct {
	now    func() time.Time
	window time.Duration
}

// WithClock sets the clock used for row timestamps and the snapshot guard.
func WithClock(now func() time.Time) Option {
	return func(c *storeConfig) { c.now = now }
}

// WithSnapshotWindow sets the snapshot debounce window.
func WithSnapshotWindow(d time.Duration) Option {
	return func(c *storeConfig) { c.window = d }
}

func NewStore(backend Backend, opts ...Option) *Store {
	cfg := storeConfig{now: time.Now, window: DefaultSnapshotWindow}
	for _, o := range opts {
		o(&cfg)
	}
	return &Store{
		backend:  backend,
		now:      cfg.now,
		guard:    NewGuard(cfg.window, cfg.now),
		statuses: map[string]domain.Status{},
		bpms:     map[string]int{},
	}
}

// Bind loads userID's state, replacing whatever was loaded before. On
// failure the store is left unbound.
func (s *Store) Bind(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}

	var (
		statuses []domain.StatusEntry
		bpms     []domain.BPMEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statuses, err = s.backend.Statuses.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		bpms, err = s.backend.BPMs.List(gctx, userID)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.guard.Reset()
	s.userID = ""
	s.statuses = map[string]domain.Status{}
	s.bpms = map[string]int{}
	if err != nil {
		return unavailable("loading progress", err)
	}

	for _, e := range statuses {
		if e.Status != domain.StatusUntouched {
			s.statuses[e.ID] = e.Status
		}
	}
	for _, e := range bpms {
		if e.BPM > 0 {
			s.bpms[e.ID] = e.BPM
		}
	}
	s.userID = userID
	return nil
}

// Unbind drops the bound user and all loaded state.
func (s *Store) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.statuses = map[string]domain.Status{}
	s.bpms = map[string]int{}
	s.guard.Reset()
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Guard returns the store's snapshot debounce guard.
func (s *Store) Guard() *Guard { return s.guard }

// Status returns the status of a practice ID; absent means untouched.
func (s *Store) Status(id string) domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.statuses[id]; ok {
		return st
	}
	return domain.StatusUntouched
}

// SetStatus upserts status, or deletes the entry when status is untouched.
func (s *Store) SetStatus(ctx context.Context, id string, status domain.Status) error {
	family, err := identity.ValidateStatusKey(id)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidDomainValue, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return domain.ErrNotAuthenticated
	}

	if status == domain.StatusUntouched {
		if err := s.backend.Statuses.Delete(ctx, s.userID, id); err != nil {
			return unavailable("clearing status", err)
		}
		delete(s.statuses, id)
		return nil
	}

	entry := domain.StatusEntry{ID: id, Family: family, Status: status, UpdatedAt: s.now().UTC()}
	if err := s.backend.Statuses.Upsert(ctx, s.userID, entry); err != nil {
		return unavailable("saving status", err)
	}
	s.statuses[id] = status
	return nil
}

// MasteryBPM returns the highest confirmed BPM for a shape, 0 if none.
func (s *Store) MasteryBPM(shapeID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bpms[shapeID]
}

// RaiseMasteryBPM stores max(current, bpm) and reports whether bpm set a
// new record. A candidate at or below the loaded record is a no-op. When
// another writer already stored a higher record the raise is refused by
// the repository and the local record is refreshed from it.
func (s *Store) RaiseMasteryBPM(ctx context.Context, shapeID string, bpm int) (bool, error) {
	family, err := identity.ValidateShapeKey(shapeID)
	if err != nil {
		return false, err
	}
	if bpm <= 0 {
		return false, fmt.Errorf("%w: bpm %d", domain.ErrInvalidDomainValue, bpm)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return false, domain.ErrNotAuthenticated
	}
	if bpm <= s.bpms[shapeID] {
		return false, nil
	}
	entry := domain.BPMEntry{ID: shapeID, Family: family, BPM: bpm, UpdatedAt: s.now().UTC()}
	raised, err := s.backend.BPMs.Raise(ctx, s.userID, entry)
	if err != nil {
		return false, unavailable("saving mastery bpm", err)
	}
	if raised {
		s.bpms[shapeID] = bpm
		return true, nil
	}
	stored, err := s.backend.BPMs.Get(ctx, s.userID, shapeID)
	if err != nil {
		return false, unavailable("reading mastery bpm", err)
	}
	s.setBPM(shapeID, stored)
	return false, nil
}

// RecordSnapshot raises shapeID's record to bpm and appends draft to the
// log in one transaction. Nothing changes locally unless both writes commit.
func (s *Store) RecordSnapshot(ctx context.Context, shapeID string, bpm int, draft domain.LogDraft) (bool, *domain.PracticeLogEntry, error) {
	family, err := identity.ValidateShapeKey(shapeID)
	if err != nil {
		return false, nil, err
	}
	if bpm <= 0 {
		return false, nil, fmt.Errorf("%w: bpm %d", domain.ErrInvalidDomainValue, bpm)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return false, nil, domain.ErrNotAuthenticated
	}
	if s.backend.Snapshots == nil {
		return false, nil, fmt.Errorf("%w: no snapshot recorder", domain.ErrPersistenceUnavailable)
	}
	entry := domain.BPMEntry{ID: shapeID, Family: family, BPM: bpm, UpdatedAt: s.now().UTC()}
	res, err := s.backend.Snapshots.RecordSnapshot(ctx, s.userID, entry, draft)
	if err != nil {
		return false, nil, unavailable("recording snapshot", err)
	}
	s.setBPM(shapeID, res.BPM)
	return res.Raised, res.Entry, nil
}

func (s *Store) setBPM(shapeID string, bpm int) {
	if bpm > 0 {
		s.bpms[shapeID] = bpm
	} else {
		delete(s.bpms, shapeID)
	}
}

// ResetMasteryBPM explicitly clears a shape's record.
func (s *Store) ResetMasteryBPM(ctx context.Context, shapeID string) error {
	if _, err := identity.ValidateShapeKey(shapeID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return domain.ErrNotAuthenticated
	}
	if err := s.backend.BPMs.Delete(ctx, s.userID, shapeID); err != nil {
		return unavailable("clearing mastery bpm", err)
	}
	delete(s.bpms, shapeID)
	return nil
}

// ClearFamily removes every status and BPM of a family in one transaction.
func (s *Store) ClearFamily(ctx context.Context, family domain.Family) (repository.FamilyResetResult, error) {
	if !family.Valid() {
		return repository.FamilyResetResult{}, fmt.Errorf("%w: family %q", domain.ErrInvalidDomainValue, family)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return repository.FamilyResetResult{}, domain.ErrNotAuthenticated
	}
	res, err := s.backend.Resetter.ResetFamily(ctx, s.userID, family)
	if err != nil {
		return repository.FamilyResetResult{}, unavailable("clearing "+string(family), err)
	}
	maps.DeleteFunc(s.statuses, func(id string, _ domain.Status) bool {
		return identity.FamilyOf(id) == family
	})
	maps.DeleteFunc(s.bpms, func(id string, _ int) bool {
		return identity.FamilyOf(id) == family
	})
	return res, nil
}

// Statuses returns a copy of the status map.
func (s *Store) Statuses() map[string]domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.statuses)
}

// BPMs returns a copy of the mastery-BPM map.
func (s *Store) BPMs() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.bpms)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistenceUnavailable, op, err)
}
