package entity

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sync failures form a closed taxonomy so callers can match on error kind
// instead of on message substrings. The messages themselves are stable and
// suitable for direct UI display.
var (
	// ErrAlreadyInFlight is returned when a mutation for the same item is
	// still in progress. The store is never touched in this case.
	ErrAlreadyInFlight = errors.New("Request already in progress")

	// ErrAuthRequired is returned on a 401; re-authentication is the token
	// collaborator's job, this engine never retries it.
	ErrAuthRequired = errors.New("Authentication required - please log in")

	// ErrNetwork is returned when no response was obtained at all.
	ErrNetwork = errors.New("Network error - check your connection")

	// ErrServer is returned after exhausting retries against 5xx responses.
	ErrServer = errors.New("Server error - please try again")

	// ErrUnknown is the fallback for failures outside the taxonomy.
	ErrUnknown = errors.New("Something went wrong")
)

// RateLimitedError is returned both for client-side admission rejections
// (a toggle inside the minimum interval) and for server 429 responses.
// Wait is how long the caller should hold off before trying again.
type RateLimitedError struct {
	Wait time.Duration
}

func (e *RateLimitedError) Error() string {
	return "Too many requests - please wait a moment"
}

// TerminalError is a 4xx remote failure that retrying cannot fix.
type TerminalError struct {
	Status int
}

func (e *TerminalError) Error() string {
	switch e.Status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusForbidden:
		return "You are not allowed to do that"
	case http.StatusNotFound:
		return "Item not found"
	case http.StatusConflict:
		return "Item was changed elsewhere - refresh and try again"
	default:
		return fmt.Sprintf("Request failed (status %d)", e.Status)
	}
}

// SyncErrorMessage maps any engine error onto its stable taxonomy message.
// Unrecognized errors collapse to the ErrUnknown message.
func SyncErrorMessage(err error) string {
	var rl *RateLimitedError
	var term *TerminalError
	switch {
	case errors.As(err, &rl):
		return rl.Error()
	case errors.As(err, &term):
		return term.Error()
	case errors.Is(err, ErrAlreadyInFlight):
		return ErrAlreadyInFlight.Error()
	case errors.Is(err, ErrAuthRequired):
		return ErrAuthRequired.Error()
	case errors.Is(err, ErrNetwork):
		return ErrNetwork.Error()
	case errors.Is(err, ErrServer):
		return ErrServer.Error()
	default:
		return ErrUnknown.Error()
	}
}
