package usecase

import (
	"context"

	"github.com/mikiasgoitom/likesync/internal/domain/contract"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// ConflictResolver reconciles cache entries against authoritative reads and
// seeds entries from externally supplied values. Neither path goes through
// the request gate: refresh callers own the responsibility of not racing an
// in-flight toggle on the same item.
type ConflictResolver struct {
	store contract.ILikeStateStore
	api   contract.ILikeAPI
}

// NewConflictResolver creates a resolver over the given store and API.
func NewConflictResolver(store contract.ILikeStateStore, api contract.ILikeAPI) *ConflictResolver {
	return &ConflictResolver{store: store, api: api}
}

// Refresh fetches the authoritative state of itemID and unconditionally
// overwrites the cached entry, clearing any loading flag or error.
func (r *ConflictResolver) Refresh(ctx context.Context, itemID string) (*entity.LikeSummary, error) {
	summary, err := r.api.GetLiked(ctx, itemID)
	if err != nil {
		return nil, err
	}
	r.store.Update(itemID, func(entity.LikeState) entity.LikeState {
		return entity.LikeState{Liked: summary.Liked, Count: summary.Count}
	})
	return summary, nil
}

// Preload seeds entries for items not already present in the store, with no
// network call. Present entries are left untouched so an in-flight toggle or
// a prior refresh is never clobbered.
func (r *ConflictResolver) Preload(items []entity.PreloadItem) {
	for _, item := range items {
		r.store.SetIfAbsent(item.ID, entity.LikeState{Liked: item.Liked, Count: item.Count})
	}
}
