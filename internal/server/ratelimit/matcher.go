package ratelimit

import "strings"

// splitPattern splits a "METHOD /path" pattern. A pattern without a method
// matches every method.
func splitPattern(pattern string) (method, path string) {
	pattern = strings.TrimSpace(pattern)
	if i := strings.IndexByte(pattern, ' '); i > 0 {
		return strings.ToUpper(pattern[:i]), strings.TrimSpace(pattern[i+1:])
	}
	return "", pattern
}

// matchPattern reports whether method and path match pattern, and whether the
// match was exact. Paths ending in "/" match by prefix.
func matchPattern(pattern, method, path string) (matched, exact bool) {
	pm, pp := splitPattern(pattern)
	if pm != "" && pm != method {
		return false, false
	}
	if pp == path {
		return true, true
	}
	if strings.HasSuffix(pp, "/") && strings.HasPrefix(path, pp) {
		return true, false
	}
	return false, false
}

// MatchEndpoint returns the endpoint configuration for a request, preferring an
// exact pattern over a prefix pattern. Returns nil when nothing matches.
func MatchEndpoint(method, path string, configs []EndpointConfig) *EndpointConfig {
	var prefix *EndpointConfig
	for i := range configs {
		matched, exact := matchPattern(configs[i].Pattern, method, path)
		if exact {
			return &configs[i]
		}
		if matched && prefix == nil {
			prefix = &configs[i]
		}
	}
	return prefix
}

// isExempt reports whether the request matches one of the exempt patterns
func isExempt(method, path string, exempt []string) bool {
	for _, pattern := range exempt {
		if matched, _ := matchPattern(pattern, method, path); matched {
			return true
		}
	}
	return false
}
