// Package stats derives aggregate counters and distributions from the
// current catalog. Everything here is recomputed on demand from read-only
// snapshots of the store; nothing is persisted.
package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"bookshelf/internal/book"
)

// Snapshot is an ephemeral aggregate over the catalog.
type Snapshot struct {
	TotalBooks  int     `json:"total_books"`
	BooksRead   int     `json:"books_read"`
	PercentRead float64 `json:"percent_read"`
}

// Engine computes snapshots and distributions from a book store.
type Engine struct {
	store book.Store
}

func NewEngine(store book.Store) *Engine {
	return &Engine{store: store}
}

// Compute counts the catalog and derives the read percentage. An empty
// catalog yields a percentage of exactly 0.
func (e *Engine) Compute(ctx context.Context) (Snapshot, error) {
	total, err := e.store.CountAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("count books: %w", err)
	}
	read, err := e.store.CountRead(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("count read books: %w", err)
	}

	snap := Snapshot{TotalBooks: total, BooksRead: read}
	if total > 0 {
		snap.PercentRead = float64(read) / float64(total) * 100
	}
	return snap, nil
}

// DecadeDistribution buckets the catalog by publication decade, labelled
// like "1980s". Records whose year is not numeric are left out of the
// distribution; they still count toward Snapshot totals.
func (e *Engine) DecadeDistribution(ctx context.Context) (map[string]int, error) {
	books, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	decades := lo.FilterMap(books, func(b book.Book, _ int) (int, bool) {
		year, err := strconv.Atoi(strings.TrimSpace(b.PublicationYear))
		if err != nil {
			return 0, false
		}
		return year / 10 * 10, true
	})

	return lo.MapEntries(lo.CountValues(decades), func(decade, count int) (string, int) {
		return fmt.Sprintf("%ds", decade), count
	}), nil
}
