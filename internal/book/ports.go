package book

import (
	"context"
)

// Store defines the contract for catalog persistence.
//
// Search and Remove match case-insensitively on a substring of title OR
// author. An empty term yields an empty result (Search) or a no-op (Remove);
// deliberately not "all books".
type Store interface {
	Add(ctx context.Context, b *Book) error
	Remove(ctx context.Context, term string) error
	RemoveByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, term string) ([]Book, error)
	CountAll(ctx context.Context) (int, error)
	CountRead(ctx context.Context) (int, error)
}
