package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path pattern, see MatchEndpoint
	Method string        // HTTP method, empty for any
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig guards generation with 60 requests an hour and export with
// 30 a minute. Everything else is unlimited.
func DefaultConfig() *Config {
	return GenerationConfig(60, time.Hour, 5)
}

// GenerationConfig returns a config that applies one shared quota to every
// generation endpoint. PDF export, which starts a browser, gets its own
// fixed quota.
func GenerationConfig(limit int, window time.Duration, burst int) *Config {
	return &Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/generate/", Method: "POST", Limit: limit, Window: window, Burst: burst},
			{Path: "/export/", Method: "GET", Limit: 30, Window: time.Minute, Burst: 3},
			{Path: "/projects/*/icon", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		},
	}
}
