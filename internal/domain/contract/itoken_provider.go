package contract

import "context"

// ITokenProvider supplies the bearer token attached to like API calls.
// Token refresh lives outside this engine; a provider that knows its token is
// unusable returns entity.ErrAuthRequired so no network call is wasted.
type ITokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}
