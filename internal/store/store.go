package store

import (
	"context"
	"errors"
)

// Collection names making up the entire persisted state surface.
const (
	CollectionEmployee = "employee"
	CollectionSession  = "session"
	CollectionTask     = "task"
)

var (
	// ErrUnavailable is returned when the store is unreachable or was never
	// configured. It must stay distinguishable from ErrNotFound so callers
	// surface a server error instead of a lookup miss.
	ErrUnavailable = errors.New("store unavailable")

	// ErrNotFound is returned by FindOne when no document matches the filter.
	ErrNotFound = errors.New("document not found")
)

// Filter is an exact-match key/value filter over document fields.
type Filter map[string]any

// Store is a thin adapter over a document database: named collections,
// generic inserts and exact-match lookups. It owns no business logic.
type Store interface {
	// Insert stores doc and returns the generated document id.
	Insert(ctx context.Context, collection string, doc any) (string, error)

	// Find decodes matching documents into out, which must be a pointer to a
	// slice. Results come back in store-native order. limit <= 0 means no limit.
	Find(ctx context.Context, collection string, filter Filter, limit int64, out any) error

	// FindOne decodes the first matching document into out, or returns
	// ErrNotFound when nothing matches.
	FindOne(ctx context.Context, collection string, filter Filter, out any) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// CollectionNames lists the collections present in the database.
	CollectionNames(ctx context.Context) ([]string, error)
}
