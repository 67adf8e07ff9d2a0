package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/likesync/internal/domain/contract"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// StaticTokenProvider hands out a fixed access token. When the token is a
// JWT it checks the exp claim locally (without signature verification, the
// server remains the authority) so an already expired token fails fast as
// entity.ErrAuthRequired instead of burning a network round trip on a 401.
// Opaque tokens are passed through untouched.
type StaticTokenProvider struct {
	token string
	now   func() time.Time
}

// NewStaticTokenProvider creates a provider for the given token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token, now: time.Now}
}

// Ensure StaticTokenProvider implements the contract.ITokenProvider interface
var _ contract.ITokenProvider = (*StaticTokenProvider)(nil)

// AccessToken returns the configured token, or entity.ErrAuthRequired when
// no token is configured or the token is a JWT that has already expired.
func (p *StaticTokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", entity.ErrAuthRequired
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(p.token, claims); err == nil {
		exp, err := claims.GetExpirationTime()
		if err == nil && exp != nil && exp.Before(p.now()) {
			return "", entity.ErrAuthRequired
		}
	}
	return p.token, nil
}

// SetClock replaces the time source, for tests.
func (p *StaticTokenProvider) SetClock(now func() time.Time) {
	p.now = now
}
