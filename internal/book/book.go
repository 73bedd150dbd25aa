package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no book matches a search or removal term.
var ErrNotFound = errors.New("book not found")

// Read status values as stored in the catalog.
const (
	ReadStatusRead   = "yes"
	ReadStatusUnread = "no"
)

// MinPublicationYear is the earliest publication year the catalog accepts.
const MinPublicationYear = 1000

// Genres lists the accepted genre values. "Other" is the catch-all.
var Genres = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy", "Mystery",
	"Thriller", "Romance", "Biography", "History", "Self-Help", "Other",
}

// Book represents one catalog record. The ID is assigned by the store on
// creation. PublicationYear is kept as text; records with a non-numeric
// year stay in the catalog but are skipped by year-bucketed statistics.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear string    `json:"publication_year"`
	Genre           string    `json:"genre"`
	ReadStatus      string    `json:"read_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsRead reports whether the book is marked as read.
func (b Book) IsRead() bool {
	return b.ReadStatus == ReadStatusRead
}
