package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "github.com/mikiasgoitom/likesync/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	APIBaseURL        string
	AccessToken       string
	RequestTimeout    time.Duration
	MaxAttempts       int
	BaseBackoff       time.Duration
	MinToggleInterval time.Duration
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() usecasecontract.IConfigProvider {
	return &Config{
		APIBaseURL:        getEnv("LIKE_API_BASE_URL", "http://localhost:3000"),
		AccessToken:       getEnv("LIKE_API_ACCESS_TOKEN", ""),
		RequestTimeout:    time.Second * time.Duration(getEnvAsInt("LIKE_API_REQUEST_TIMEOUT_SECONDS", 10)),
		MaxAttempts:       getEnvAsInt("LIKE_SYNC_MAX_ATTEMPTS", 3),
		BaseBackoff:       time.Millisecond * time.Duration(getEnvAsInt("LIKE_SYNC_BASE_BACKOFF_MS", 1000)),
		MinToggleInterval: time.Millisecond * time.Duration(getEnvAsInt("LIKE_SYNC_MIN_TOGGLE_INTERVAL_MS", 1000)),
	}
}

// GetAPIBaseURL returns the base URL of the like API.
func (c *Config) GetAPIBaseURL() string {
	return c.APIBaseURL
}

// GetAccessToken returns the access token attached to like API calls.
func (c *Config) GetAccessToken() string {
	return c.AccessToken
}

// GetRequestTimeout returns the per-request timeout for like API calls.
func (c *Config) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

// GetMaxAttempts returns the attempt budget per mutation.
func (c *Config) GetMaxAttempts() int {
	return c.MaxAttempts
}

// GetBaseBackoff returns the base delay of the exponential backoff.
func (c *Config) GetBaseBackoff() time.Duration {
	return c.BaseBackoff
}

// GetMinToggleInterval returns the minimum spacing between admitted toggles
// on the same item.
func (c *Config) GetMinToggleInterval() time.Duration {
	return c.MinToggleInterval
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
