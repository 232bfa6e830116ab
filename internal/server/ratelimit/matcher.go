package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the config whose path pattern and method match the
// request, or nil. A "*" pattern segment matches any one path segment, a
// pattern ending in "/" matches everything below it, and an empty Method
// matches every method. Exact patterns win over prefixes. GET /health
// always matches an unlimited config.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	segments := splitPath(path)

	for i := range configs {
		config := &configs[i]
		if methodMatches(config.Method, method) && !strings.HasSuffix(config.Path, "/") &&
			segmentsMatch(splitPath(config.Path), segments, false) {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if methodMatches(config.Method, method) && strings.HasSuffix(config.Path, "/") &&
			segmentsMatch(splitPath(config.Path), segments, true) {
			return config
		}
	}

	return nil
}

func methodMatches(want, got string) bool {
	return want == "" || want == got
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// segmentsMatch reports whether path fits pattern, segment by segment. With
// prefix set, path may have more segments than pattern.
func segmentsMatch(pattern, path []string, prefix bool) bool {
	if len(path) < len(pattern) || (!prefix && len(path) != len(pattern)) {
		return false
	}
	for i, seg := range pattern {
		if seg != "*" && seg != path[i] {
			return false
		}
	}
	return true
}
