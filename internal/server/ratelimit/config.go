package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for one route.
type EndpointConfig struct {
	Pattern string        // "METHOD /path"; a trailing "/" matches by prefix
	Limit   int           // Maximum requests per window
	Window  time.Duration // Time window
	Burst   int           // Burst capacity (defaults to Limit if 0)
}

// envPrefix is prepended to every variable LoadConfig reads
const envPrefix = "RATE_LIMIT_"

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	env := envReader{prefix: envPrefix}
	if !env.boolean("ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       toSet(env.list("WHITELIST")),
		Blacklist:       toSet(env.list("BLACKLIST")),
		Exempt:          env.listOr("EXEMPT", DefaultExempt()),
		EndpointConfigs: defaultEndpointConfigs(env),
	}
}

// DefaultExempt returns the routes that are never limited.
func DefaultExempt() []string {
	return []string{"GET /health"}
}

// DefaultEndpointConfigs returns the endpoint limits, honoring RATE_LIMIT_ANALYZE_*.
func DefaultEndpointConfigs() []EndpointConfig {
	return defaultEndpointConfigs(envReader{prefix: envPrefix})
}

func defaultEndpointConfigs(env envReader) []EndpointConfig {
	return []EndpointConfig{
		// may call the suggestion provider
		{
			Pattern: "POST /analyze",
			Limit:   env.integer("ANALYZE_LIMIT", 60),
			Window:  env.duration("ANALYZE_WINDOW", time.Hour),
			Burst:   env.integer("ANALYZE_BURST", 5),
		},
	}
}

// envReader reads typed values from prefixed environment variables, falling
// back to the default when a variable is unset or malformed.
type envReader struct {
	prefix string
}

func (e envReader) raw(key string) string {
	return strings.TrimSpace(os.Getenv(e.prefix + key))
}

func (e envReader) integer(key string, def int) int {
	if v, err := strconv.Atoi(e.raw(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) boolean(key string, def bool) bool {
	if v, err := strconv.ParseBool(e.raw(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(e.raw(key)); err == nil {
		return v
	}
	return def
}

// list splits a comma-separated variable, dropping blank entries
func (e envReader) list(key string) []string {
	var out []string
	for _, item := range strings.Split(e.raw(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (e envReader) listOr(key string, def []string) []string {
	if items := e.list(key); len(items) > 0 {
		return items
	}
	return def
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
