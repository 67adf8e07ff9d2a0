package store

import (
	"context"
	"sync"

	"github.com/mikiasgoitom/likesync/internal/domain/contract"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// subscriberBuffer bounds how many snapshots a slow subscriber can lag
// behind before intermediate ones are conflated.
const subscriberBuffer = 16

// LikeStateStore is the in-memory implementation of ILikeStateStore.
// A single mutex guards the map; updates are brief in-memory writes, so
// unrelated keys' network calls are never serialized behind it.
type LikeStateStore struct {
	mu     sync.RWMutex
	states map[string]entity.LikeState
	subs   map[int]chan map[string]entity.LikeState
	nextID int
}

// NewLikeStateStore creates an empty store.
func NewLikeStateStore() *LikeStateStore {
	return &LikeStateStore{
		states: make(map[string]entity.LikeState),
		subs:   make(map[int]chan map[string]entity.LikeState),
	}
}

// Ensure LikeStateStore implements the contract.ILikeStateStore interface
var _ contract.ILikeStateStore = (*LikeStateStore)(nil)

// Get returns the state for key, or the default state if absent.
func (s *LikeStateStore) Get(key string) entity.LikeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.states[key]; ok {
		return st
	}
	return entity.DefaultLikeState()
}

// Update applies fn atomically on key and publishes the new snapshot.
func (s *LikeStateStore) Update(key string, fn func(entity.LikeState) entity.LikeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[key]
	if !ok {
		st = entity.DefaultLikeState()
	}
	s.states[key] = fn(st)
	s.publishLocked()
}

// SetIfAbsent seeds key with st only when the key has never been seen.
func (s *LikeStateStore) SetIfAbsent(key string, st entity.LikeState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.states[key]; ok {
		return false
	}
	s.states[key] = st
	s.publishLocked()
	return true
}

// Snapshot returns a copy of the full key→state map.
func (s *LikeStateStore) Snapshot() map[string]entity.LikeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers a snapshot stream that replays the latest snapshot
// immediately and closes when ctx is cancelled.
func (s *LikeStateStore) Subscribe(ctx context.Context) <-chan map[string]entity.LikeState {
	ch := make(chan map[string]entity.LikeState, subscriberBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()
	return ch
}

// snapshotLocked copies the map; callers hold at least the read lock.
func (s *LikeStateStore) snapshotLocked() map[string]entity.LikeState {
	snap := make(map[string]entity.LikeState, len(s.states))
	for k, v := range s.states {
		snap[k] = v
	}
	return snap
}

// publishLocked fans the current snapshot out to all subscribers. Sends never
// block: when a subscriber's buffer is full the oldest pending snapshot is
// dropped so the latest one always lands.
func (s *LikeStateStore) publishLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
