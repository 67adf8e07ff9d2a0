package gate

import (
	"sync"
	"time"

	"github.com/mikiasgoitom/likesync/internal/domain/contract"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// DefaultMinInterval is the minimum spacing between admitted mutations on
// the same key.
const DefaultMinInterval = 1000 * time.Millisecond

// gateEntry is the per-key admission record. It is owned exclusively by the
// gate and never escapes it.
type gateEntry struct {
	lastRequestAt time.Time
	inFlight      bool
}

// RequestGate admits at most one concurrent mutation per key and enforces a
// minimum interval between admitted mutations on the same key. Both checks
// and the in-flight set happen inside one critical section, so two callers
// racing on Acquire for the same key can never both be admitted.
type RequestGate struct {
	mu          sync.Mutex
	entries     map[string]*gateEntry
	minInterval time.Duration
	now         func() time.Time
}

// NewRequestGate creates a gate with the given minimum interval; a
// non-positive interval falls back to DefaultMinInterval.
func NewRequestGate(minInterval time.Duration) *RequestGate {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &RequestGate{
		entries:     make(map[string]*gateEntry),
		minInterval: minInterval,
		now:         time.Now,
	}
}

// Ensure RequestGate implements the contract.IRequestGate interface
var _ contract.IRequestGate = (*RequestGate)(nil)

// Acquire admits a mutation on key or rejects it. The admission timestamp is
// stamped here, at request start, so the interval is measured from admission
// rather than from completion. The returned release func is idempotent.
func (g *RequestGate) Acquire(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok {
		e = &gateEntry{}
		g.entries[key] = e
	}
	if e.inFlight {
		return nil, entity.ErrAlreadyInFlight
	}
	now := g.now()
	if !e.lastRequestAt.IsZero() {
		if wait := g.minInterval - now.Sub(e.lastRequestAt); wait > 0 {
			return nil, &entity.RateLimitedError{Wait: wait}
		}
	}
	e.inFlight = true
	e.lastRequestAt = now

	var once sync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			e.inFlight = false
			g.mu.Unlock()
		})
	}
	return release, nil
}

// SetClock replaces the time source, for tests.
func (g *RequestGate) SetClock(now func() time.Time) {
	g.mu.Lock()
	g.now = now
	g.mu.Unlock()
}
