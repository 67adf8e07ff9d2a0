package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mikiasgoitom/likesync/internal/domain/contract"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
)

// defaultRetryAfter is used when a 429 response carries no Retry-After header.
const defaultRetryAfter = 5 * time.Second

// likeResponse is the wire shape shared by the like, unlike and liked-status
// endpoints.
type likeResponse struct {
	Success    bool   `json:"success"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likes_count"`
	ItemID     string `json:"item_id"`
}

// LikeClient is the HTTP implementation of the ILikeAPI contract. Every
// failure it returns is classified into the entity error taxonomy; callers
// never see raw transport or status errors.
type LikeClient struct {
	baseURL string
	client  *http.Client
	tokens  contract.ITokenProvider
	uuidGen contract.IUUIDGenerator
}

// NewLikeClient creates a client against baseURL (without trailing slash).
func NewLikeClient(baseURL string, timeout time.Duration, tokens contract.ITokenProvider, uuidGen contract.IUUIDGenerator) *LikeClient {
	return &LikeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		uuidGen: uuidGen,
	}
}

// Ensure LikeClient implements the contract.ILikeAPI interface
var _ contract.ILikeAPI = (*LikeClient)(nil)

// Like marks itemID as liked.
func (c *LikeClient) Like(ctx context.Context, itemID string) (*entity.LikeSummary, error) {
	return c.do(ctx, http.MethodPost, c.likeURL(itemID))
}

// Unlike removes the like on itemID.
func (c *LikeClient) Unlike(ctx context.Context, itemID string) (*entity.LikeSummary, error) {
	return c.do(ctx, http.MethodDelete, c.likeURL(itemID))
}

// GetLiked reads the authoritative liked/count pair for itemID.
func (c *LikeClient) GetLiked(ctx context.Context, itemID string) (*entity.LikeSummary, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("%s/items/%s/liked", c.baseURL, url.PathEscape(itemID)))
}

func (c *LikeClient) likeURL(itemID string) string {
	return fmt.Sprintf("%s/items/%s/like", c.baseURL, url.PathEscape(itemID))
}

func (c *LikeClient) do(ctx context.Context, method, rawURL string) (*entity.LikeSummary, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnknown, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", c.uuidGen.NewUUID())

	resp, err := c.client.Do(req)
	if err != nil {
		// A cancelled caller is not a transport fault.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}
	defer resp.Body.Close()

	return c.classify(resp)
}

// classify maps a response onto the error taxonomy or parses the summary.
func (c *LikeClient) classify(resp *http.Response) (*entity.LikeSummary, error) {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var body likeResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", entity.ErrUnknown, err)
		}
		if !body.Success {
			return nil, fmt.Errorf("%w: server reported failure", entity.ErrUnknown)
		}
		return &entity.LikeSummary{Liked: body.Liked, Count: body.LikesCount}, nil

	case resp.StatusCode == http.StatusUnauthorized:
		return nil, entity.ErrAuthRequired

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &entity.RateLimitedError{Wait: retryAfter(resp)}

	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusConflict:
		return nil, &entity.TerminalError{Status: resp.StatusCode}

	case resp.StatusCode >= 500 && resp.StatusCode < 600:
		return nil, fmt.Errorf("%w: status %d", entity.ErrServer, resp.StatusCode)

	default:
		return nil, fmt.Errorf("%w: unexpected status %d", entity.ErrUnknown, resp.StatusCode)
	}
}

// retryAfter reads the Retry-After header in seconds, falling back to
// defaultRetryAfter when absent or malformed.
func retryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}
