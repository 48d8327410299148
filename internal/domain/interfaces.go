package domain

import "context"

// ItemSource supplies catalog items.
//
// A non-empty query takes precedence and the category is ignored. With an
// empty query, a category other than CategoryAll restricts the result to
// items tagged with it. With neither, the source returns its default listing.
type ItemSource interface {
	FetchItems(ctx context.Context, query, category string) ([]*Item, error)
}

// Slot is a persisted key/value slot. Get returns false when the key is absent.
type Slot interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
