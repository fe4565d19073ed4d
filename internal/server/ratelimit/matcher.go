package ratelimit

import (
	"strings"
)

// unlimited paths are never rate limited.
var unlimited = map[string]bool{
	"GET /health":        true,
	"GET /api/ai/health": true,
}

// MatchEndpoint matches a request path and method to an endpoint
// configuration. Entries whose Path ends in "/" match by prefix; exact
// entries win over prefix entries. Returns nil when nothing matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
