// Package store persists the recent-searches list through a key-value
// collaborator. The list semantics (cap, ordering, dedup) live in the
// session state; the store only serializes whatever ordered list it is
// handed under a single fixed key.
package store

import "context"

// RecentKey is the fixed key under which the recent-cities list is stored.
const RecentKey = "skycast:recent_cities"

// RecentStore reads and writes the ordered recent-cities list.
type RecentStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, cities []string) error
}
