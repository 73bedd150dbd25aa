// Seeds the catalog with a small sample library for local development.
package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
)

var sampleBooks = []book.Book{
	{Title: "Dune", Author: "Frank Herbert", PublicationYear: "1965", Genre: "Science Fiction", ReadStatus: book.ReadStatusRead},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", PublicationYear: "1937", Genre: "Fantasy", ReadStatus: book.ReadStatusRead},
	{Title: "Educated", Author: "Tara Westover", PublicationYear: "2018", Genre: "Biography", ReadStatus: book.ReadStatusUnread},
	{Title: "The Name of the Rose", Author: "Umberto Eco", PublicationYear: "1980", Genre: "Mystery", ReadStatus: book.ReadStatusUnread},
	{Title: "Sapiens", Author: "Yuval Noah Harari", PublicationYear: "2011", Genre: "History", ReadStatus: book.ReadStatusRead},
	{Title: "Gone Girl", Author: "Gillian Flynn", PublicationYear: "2012", Genre: "Thriller", ReadStatus: book.ReadStatusUnread},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store := book.NewPostgresStore(pool, cfg.Database.QueryTimeout)
	for _, b := range sampleBooks {
		record := b
		if err := store.Add(ctx, &record); err != nil {
			log.Fatalf("Failed to seed %q: %v", b.Title, err)
		}
		log.Printf("seeded %q by %s", record.Title, record.Author)
	}
}
