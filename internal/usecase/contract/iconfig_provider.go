package usecasecontract

import "time"

// IConfigProvider exposes configuration values to the usecases.
type IConfigProvider interface {
	GetAPIBaseURL() string
	GetAccessToken() string
	GetRequestTimeout() time.Duration
	GetMaxAttempts() int
	GetBaseBackoff() time.Duration
	GetMinToggleInterval() time.Duration
}
