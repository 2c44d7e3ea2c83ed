package mastery

import (
	"strconv"
	"sync"
	"time"
)

// DefaultSnapshotWindow is the debounce window for snapshot submissions.
const DefaultSnapshotWindow = time.Second

// Guard deduplicates rapid snapshot submissions. A submission is
// suppressed when the same key was submitted less than the window ago, or
// when the last accepted submission is less than the window old.
type Guard struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time

	gen          uint64
	lastKey      string
	lastSubmitAt time.Time
	lastAcceptAt time.Time
	accepted     bool
}

// Ticket is an accepted submission. Pass it to Rollback when the
// downstream write fails so the submission can be retried.
type Ticket struct {
	gen  uint64
	prev guardState
}

type guardState struct {
	lastKey      string
	lastSubmitAt time.Time
	lastAcceptAt time.Time
	accepted     bool
}

func NewGuard(window time.Duration, now func() time.Time) *Guard {
	if window <= 0 {
		window = DefaultSnapshotWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Guard{window: window, now: now}
}

// SnapshotKey is the deduplication key of a (shape, bpm) submission.
func SnapshotKey(shapeID string, bpm int) string {
	return shapeID + "@" + strconv.Itoa(bpm)
}

func (g *Guard) Window() time.Duration { return g.window }

// Admit records a submission of key and reports whether it may proceed.
func (g *Guard) Admit(key string) (Ticket, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	prev := g.state()
	sameKey := g.lastKey == key && !g.lastSubmitAt.IsZero() && now.Sub(g.lastSubmitAt) < g.window
	tooSoon := g.accepted && now.Sub(g.lastAcceptAt) < g.window

	g.lastKey = key
	g.lastSubmitAt = now
	if sameKey || tooSoon {
		return Ticket{}, false
	}

	g.gen++
	g.lastAcceptAt = now
	g.accepted = true
	return Ticket{gen: g.gen, prev: prev}, true
}

// Rollback forgets an accepted submission. It is a no-op once a later
// submission has been accepted.
func (g *Guard) Rollback(t Ticket) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t.gen == 0 || t.gen != g.gen {
		return
	}
	g.lastKey = t.prev.lastKey
	g.lastSubmitAt = t.prev.lastSubmitAt
	g.lastAcceptAt = t.prev.lastAcceptAt
	g.accepted = t.prev.accepted
	g.gen++
}

// Reset clears all history.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	g.lastKey = ""
	g.lastSubmitAt = time.Time{}
	g.lastAcceptAt = time.Time{}
	g.accepted = false
}

func (g *Guard) state() guardState {
	return guardState{
		lastKey:      g.lastKey,
		lastSubmitAt: g.lastSubmitAt,
		lastAcceptAt: g.lastAcceptAt,
		accepted:     g.accepted,
	}
}
