package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// ILikeSyncUseCase is the public surface of the like-state sync engine,
// consumed by the feed/UI layers and by the HTTP handlers.
type ILikeSyncUseCase interface {
	// Toggle optimistically flips the like state of itemID, confirms it
	// against the server and rolls back on terminal failure. Rejections
	// (entity.ErrAlreadyInFlight, *entity.RateLimitedError) are returned
	// synchronously without touching the cache.
	Toggle(ctx context.Context, itemID string, currentlyLiked bool) (*entity.LikeSummary, error)

	// Refresh overwrites the cached state of itemID from an authoritative
	// read. Callers must not race it against an in-flight Toggle on the same
	// item.
	Refresh(ctx context.Context, itemID string) (*entity.LikeSummary, error)

	// Preload seeds cache entries for items not yet present; present entries
	// are left untouched. No network calls are made.
	Preload(items []entity.PreloadItem)

	// Subscribe streams the state of itemID, replaying the latest state to a
	// new subscriber. The stream closes when ctx is cancelled.
	Subscribe(ctx context.Context, itemID string) <-chan entity.LikeState

	// Get returns the current cached state of itemID.
	Get(itemID string) entity.LikeState

	// Snapshot returns a copy of the full cache.
	Snapshot() map[string]entity.LikeState

	// ClearError removes the error annotation from itemID, if any.
	ClearError(itemID string)
}
