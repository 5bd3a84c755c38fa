// Package runid tags a compilation with an identifier carried in its context
// so that event subscribers can correlate start and finish events.
package runid

import (
	"context"
	"math/rand/v2"
)

type key struct{}

// NewContext returns a copy of parent carrying a new random run ID.
func NewContext(parent context.Context) (context.Context, int64) {
	id := rand.Int64()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the run ID from ctx.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}

// Ensure returns ctx unchanged when it already carries a run ID and a new
// context with a fresh one otherwise.
func Ensure(ctx context.Context) (context.Context, int64) {
	if id, ok := FromContext(ctx); ok {
		return ctx, id
	}
	return NewContext(ctx)
}
