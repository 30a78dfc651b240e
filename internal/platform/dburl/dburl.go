// Package dburl holds the Postgres connection string helpers shared by the
// API, the admin tool and the migration runner.
package dburl

import (
	"net/url"
	"strings"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	maxTracedQueryLen   = 512
)

// DisablePreparedBinary adds disable_prepared_binary_result=yes unless the
// URL already sets it. Needed behind transaction-mode poolers.
func DisablePreparedBinary(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Normalize applies DisablePreparedBinary when enabled.
func Normalize(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}
	return DisablePreparedBinary(raw)
}

// Name extracts the database name from a URL or a key=value DSN.
func Name(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if value = strings.Trim(value, `"'`); value != "" {
			return value
		}
	}
	return ""
}

// TraceQuery collapses whitespace and truncates long statements before they
// are attached to spans.
func TraceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= maxTracedQueryLen {
		return query
	}
	return query[:maxTracedQueryLen] + "..."
}
