package redis

import "strings"

const (
	// DefaultKeyPrefix namespaces every key the trainer publishes.
	DefaultKeyPrefix = "trainstatus:"

	statusSuffix  = "status"
	resultsSuffix = "results"
)

// Keys resolves the Redis keys for one key prefix.
type Keys struct {
	prefix string
}

// NewKeys normalizes prefix so it always ends with a colon.
func NewKeys(prefix string) Keys {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return Keys{prefix: prefix}
}

// Prefix returns the normalized prefix.
func (k Keys) Prefix() string { return k.prefix }

// Status is the string key holding the JSON status document.
func (k Keys) Status() string { return k.prefix + statusSuffix }

// Results is the set key holding result file names.
func (k Keys) Results() string { return k.prefix + resultsSuffix }
