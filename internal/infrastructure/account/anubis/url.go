package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// tokenCacheKey keeps raw bearer tokens out of the principal cache.
func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "anubis:token:" + hex.EncodeToString(sum[:])
}

// introspectEndpoint joins base and path. An absolute path wins over base.
func introspectEndpoint(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return base
	case strings.Contains(path, "://"):
		return path
	default:
		return base + "/" + strings.TrimLeft(path, "/")
	}
}
