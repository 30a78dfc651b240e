package resilience

import "golang.org/x/sync/singleflight"

// Group collapses concurrent calls sharing a key into one execution and
// hands every caller the same typed result.
type Group[V any] struct {
	group singleflight.Group
}

// Do runs fn once per key among concurrent callers. shared reports whether
// the result was produced for another caller too.
func (g *Group[V]) Do(key string, fn func() (V, error)) (value V, err error, shared bool) {
	out, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	if out != nil {
		value = out.(V)
	}
	return value, err, shared
}

// Forget drops an in-flight key so the next call starts a fresh execution.
func (g *Group[V]) Forget(key string) {
	g.group.Forget(key)
}
