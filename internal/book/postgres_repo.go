package book

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Add appends one record. No duplicate check: the catalog permits the same
// title/author pair more than once.
func (s *PostgresStore) Add(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (title, author, publication_year, genre, read_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.QueryRow(timeoutCtx, sql,
		b.Title, b.Author, b.PublicationYear, b.Genre, b.ReadStatus,
	).Scan(&b.ID, &b.CreatedAt)
}

// Remove deletes exactly one record whose title or author contains term,
// case-insensitively. Which record is deleted when several match is
// store-defined; callers are expected to show matches before confirming.
// An empty term is a no-op.
func (s *PostgresStore) Remove(ctx context.Context, term string) error {
	if term == "" {
		return nil
	}

	const sql = `
		DELETE FROM books
		WHERE id = (
			SELECT id FROM books
			WHERE title ILIKE $1 OR author ILIKE $1
			LIMIT 1
		)`

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.db.Exec(timeoutCtx, sql, likePattern(term))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveByID deletes the record with the given store-assigned identifier.
func (s *PostgresStore) RemoveByID(ctx context.Context, id string) error {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Book, error) {
	const sql = `
		SELECT id, title, author, publication_year, genre, read_status, created_at
		FROM books
		ORDER BY created_at, id`

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.Query(timeoutCtx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

// Search returns every record whose title or author contains term,
// case-insensitively. An empty term returns an empty result set, which is
// how it differs from ListAll.
func (s *PostgresStore) Search(ctx context.Context, term string) ([]Book, error) {
	if term == "" {
		return nil, nil
	}

	const sql = `
		SELECT id, title, author, publication_year, genre, read_status, created_at
		FROM books
		WHERE title ILIKE $1 OR author ILIKE $1
		ORDER BY created_at, id`

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.Query(timeoutCtx, sql, likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (s *PostgresStore) CountAll(ctx context.Context) (int, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	var n int
	err := s.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

func (s *PostgresStore) CountRead(ctx context.Context) (int, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	var n int
	err := s.db.QueryRow(timeoutCtx,
		`SELECT COUNT(*) FROM books WHERE read_status = $1`, ReadStatusRead).Scan(&n)
	return n, err
}

func likePattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

// escapeLike neutralizes LIKE metacharacters so a search term is always a
// literal substring match.
func escapeLike(term string) string {
	out := make([]byte, 0, len(term))
	for i := 0; i < len(term); i++ {
		switch term[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, term[i])
	}
	return string(out)
}

func scanBooks(rows pgx.Rows) ([]Book, error) {
	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.PublicationYear,
			&b.Genre, &b.ReadStatus, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
