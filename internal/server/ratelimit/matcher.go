package ratelimit

import "strings"

// unlimited is returned for GET /health.
var unlimited = EndpointConfig{}

// MatchEndpoint finds the configuration for a request. Exact path matches win
// over prefix matches; a config path ending in "/" matches everything below
// it. Nil means the default limit applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		cfg := unlimited
		return &cfg
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
