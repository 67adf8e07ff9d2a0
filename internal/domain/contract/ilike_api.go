package contract

import (
	"context"

	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// ILikeAPI defines the remote like endpoints consumed by the sync engine.
// Implementations classify every failure into the entity error taxonomy:
// transport faults wrap entity.ErrNetwork, 401 maps to entity.ErrAuthRequired,
// 400/403/404/409 map to *entity.TerminalError, 429 maps to
// *entity.RateLimitedError carrying the server's Retry-After, and 5xx wraps
// entity.ErrServer. Retry policy is the caller's concern, not the client's.
type ILikeAPI interface {
	Like(ctx context.Context, itemID string) (*entity.LikeSummary, error)
	Unlike(ctx context.Context, itemID string) (*entity.LikeSummary, error)
	GetLiked(ctx context.Context, itemID string) (*entity.LikeSummary, error)
}
