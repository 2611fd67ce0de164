// Package store provides the keyed store client: a narrow, path-addressed
// contract over the remote hierarchical datastore shared with other tools.
//
// Paths are slash-separated (e.g. "community/users/42/totalMessages"). A Get
// on a leaf returns its scalar value; a Get on a branch returns the folded
// subtree as nested maps; a Get on an absent path returns nil.
package store

import "context"

type KeyedStore interface {
	// Get returns the value at path: a scalar string for a leaf, a
	// map[string]any for a branch, or nil when nothing is stored there.
	Get(ctx context.Context, path string) (any, error)
	// Set writes a single leaf value, overwriting any previous one.
	Set(ctx context.Context, path string, value any) error
	// Update shallow-merges fields into the record at path without
	// clobbering sibling fields.
	Update(ctx context.Context, path string, fields map[string]any) error
	// Increment atomically adds amount to the numeric leaf at path,
	// treating an absent leaf as 0, and returns the new value.
	Increment(ctx context.Context, path string, amount int64) (int64, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
