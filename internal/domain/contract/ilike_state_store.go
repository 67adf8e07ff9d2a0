package contract

import (
	"context"

	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// ILikeStateStore is the in-memory key→state cache behind the sync engine.
// It is process-lifetime only: entries are created lazily and never deleted.
type ILikeStateStore interface {
	// Get returns the state for key, or the default state if absent.
	Get(key string) entity.LikeState

	// Update applies fn atomically with respect to other updates on the same
	// key and publishes the resulting snapshot to subscribers. fn must be
	// pure; it may be handed the default state for an absent key.
	Update(key string, fn func(entity.LikeState) entity.LikeState)

	// SetIfAbsent seeds key with st only when the key has never been seen.
	// It reports whether the seed was applied.
	SetIfAbsent(key string, st entity.LikeState) bool

	// Snapshot returns a copy of the full key→state map.
	Snapshot() map[string]entity.LikeState

	// Subscribe returns a stream of full-map snapshots. A new subscriber
	// immediately receives the latest snapshot, then one update per
	// subsequent mutation; under a slow consumer intermediate snapshots may
	// be conflated, the latest always arrives. The stream closes when ctx is
	// cancelled.
	Subscribe(ctx context.Context) <-chan map[string]entity.LikeState
}
