package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mikiasgoitom/likesync/internal/domain/contract"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/likesync/internal/usecase/contract"
)

// LikeSyncUsecase composes the store, gate, executor and resolver into the
// engine's public surface: optimistic toggle with rollback, authoritative
// refresh, gate-free preload and a per-item subscription stream.
type LikeSyncUsecase struct {
	store    contract.ILikeStateStore
	gate     contract.IRequestGate
	executor *MutationExecutor
	resolver *ConflictResolver
	logger   usecasecontract.IAppLogger
}

// NewLikeSyncUsecase creates and returns a new LikeSyncUsecase instance.
func NewLikeSyncUsecase(store contract.ILikeStateStore, gate contract.IRequestGate, executor *MutationExecutor, resolver *ConflictResolver, logger usecasecontract.IAppLogger) *LikeSyncUsecase {
	return &LikeSyncUsecase{
		store:    store,
		gate:     gate,
		executor: executor,
		resolver: resolver,
		logger:   logger,
	}
}

// Ensure LikeSyncUsecase implements the usecasecontract.ILikeSyncUseCase interface
var _ usecasecontract.ILikeSyncUseCase = (*LikeSyncUsecase)(nil)

// Toggle flips the like state of itemID optimistically, confirms it against
// the server and rolls back on terminal failure.
//
// Per item the operation moves Idle → Admitted → OptimisticallyApplied →
// Executing → Committed or RolledBack. Rejections return before the store is
// touched. Rollback re-applies the inverse optimistic delta rather than a
// snapshot, so a refresh or preload racing the same item can skew the count
// slightly; a known limitation, the next committed state corrects it.
func (u *LikeSyncUsecase) Toggle(ctx context.Context, itemID string, currentlyLiked bool) (*entity.LikeSummary, error) {
	release, err := u.gate.Acquire(itemID)
	if err != nil {
		var rl *entity.RateLimitedError
		if errors.As(err, &rl) {
			metrics.TogglesTotal.WithLabelValues(metrics.ResultRateLimited).Inc()
		} else {
			metrics.TogglesTotal.WithLabelValues(metrics.ResultInFlight).Inc()
		}
		return nil, err
	}
	defer release()

	start := time.Now()
	defer func() {
		metrics.ToggleDuration.Observe(time.Since(start).Seconds())
	}()

	// Safety net: whatever else happens, the entry never stays loading once
	// no operation is in flight.
	defer u.store.Update(itemID, func(st entity.LikeState) entity.LikeState {
		st.IsLoading = false
		return st
	})

	delta := 1
	if currentlyLiked {
		delta = -1
	}
	u.store.Update(itemID, func(st entity.LikeState) entity.LikeState {
		st.Liked = !currentlyLiked
		st.Count += delta
		st.IsLoading = true
		st.Error = ""
		return st
	})

	summary, err := u.executor.Execute(ctx, itemID, !currentlyLiked)
	if err != nil {
		msg := entity.SyncErrorMessage(err)
		u.store.Update(itemID, func(st entity.LikeState) entity.LikeState {
			st.Liked = currentlyLiked
			st.Count -= delta
			st.IsLoading = false
			st.Error = msg
			return st
		})
		metrics.TogglesTotal.WithLabelValues(metrics.ResultRolledBack).Inc()
		u.logger.Errorf("like sync: item %s rolled back: %v", itemID, err)
		return nil, err
	}

	u.store.Update(itemID, func(st entity.LikeState) entity.LikeState {
		st.Liked = summary.Liked
		st.Count = summary.Count
		st.IsLoading = false
		st.Error = ""
		return st
	})
	metrics.TogglesTotal.WithLabelValues(metrics.ResultCommitted).Inc()
	return summary, nil
}

// Refresh overwrites the cached state of itemID from an authoritative read.
func (u *LikeSyncUsecase) Refresh(ctx context.Context, itemID string) (*entity.LikeSummary, error) {
	summary, err := u.resolver.Refresh(ctx, itemID)
	if err != nil {
		u.logger.Warnf("like sync: refresh of item %s failed: %v", itemID, err)
		return nil, err
	}
	return summary, nil
}

// Preload seeds cache entries for items not yet present.
func (u *LikeSyncUsecase) Preload(items []entity.PreloadItem) {
	u.resolver.Preload(items)
}

// Get returns the current cached state of itemID.
func (u *LikeSyncUsecase) Get(itemID string) entity.LikeState {
	return u.store.Get(itemID)
}

// Snapshot returns a copy of the full cache.
func (u *LikeSyncUsecase) Snapshot() map[string]entity.LikeState {
	return u.store.Snapshot()
}

// ClearError removes the error annotation from itemID, if any.
func (u *LikeSyncUsecase) ClearError(itemID string) {
	u.store.Update(itemID, func(st entity.LikeState) entity.LikeState {
		st.Error = ""
		return st
	})
}

// Subscribe streams the state of itemID to a new subscriber, replaying the
// latest state first and skipping snapshots that did not change the item.
func (u *LikeSyncUsecase) Subscribe(ctx context.Context, itemID string) <-chan entity.LikeState {
	in := u.store.Subscribe(ctx)
	out := make(chan entity.LikeState, 1)
	go func() {
		defer close(out)
		var last entity.LikeState
		first := true
		for snap := range in {
			st, ok := snap[itemID]
			if !ok {
				st = entity.DefaultLikeState()
			}
			if !first && st == last {
				continue
			}
			last = st
			first = false
			// Conflate: a slow consumer always gets the latest state.
			select {
			case out <- st:
			default:
				select {
				case <-out:
				default:
				}
				out <- st
			}
		}
	}()
	return out
}
