package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/mastery"
	"golang.org/x/sync/singleflight"
)

// StoreRegistry hands out one bound mastery store per user. A store is
// loaded from the backend on first use and cached until evicted. Loads run
// outside the registry lock; concurrent first requests for one user share
// a single load.
type StoreRegistry struct {
	mu      sync.Mutex
	backend mastery.Backend
	opts    []mastery.Option
	stores  map[string]*mastery.Store
	loads   singleflight.Group
}

func NewStoreRegistry(backend mastery.Backend, opts ...mastery.Option) *StoreRegistry {
	return &StoreRegistry{
		backend: backend,
		opts:    opts,
		stores:  make(map[string]*mastery.Store),
	}
}

// For returns userID's store, binding a new one if needed. A failed bind is
// not cached, so the next call retries.
func (r *StoreRegistry) For(ctx context.Context, userID string) (*mastery.Store, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if s, ok := r.cached(userID); ok {
		return s, nil
	}
	v, err, _ := r.loads.Do(userID, func() (any, error) {
		if s, ok := r.cached(userID); ok {
			return s, nil
		}
		s := mastery.NewStore(r.backend, r.opts...)
		if err := s.Bind(ctx, userID); err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.stores[userID] = s
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mastery.Store), nil
}

func (r *StoreRegistry) cached(userID string) (*mastery.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[userID]
	return s, ok
}

// Evict drops userID's cached store; the next For reloads it.
func (r *StoreRegistry) Evict(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[userID]; ok {
		s.Unbind()
		delete(r.stores, userID)
	}
}

func (r *StoreRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
