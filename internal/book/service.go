package book

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one input violation on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every violation found in one submission. Validation
// never stops at the first problem.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// AddParams carries the raw form fields for a new catalog record.
type AddParams struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	PublicationYear string `json:"publication_year" validate:"required"`
	Genre           string `json:"genre" validate:"required"`
	ReadStatus      string `json:"read_status" validate:"required,oneof=yes no"`
}

// Service provides catalog business logic on top of a Store.
type Service struct {
	store    Store
	validate *validator.Validate
}

func NewService(store Store) *Service {
	return &Service{store: store, validate: validator.New()}
}

// Add validates the submitted fields and appends a new record. All
// violations are reported together as FieldErrors.
func (s *Service) Add(ctx context.Context, p AddParams) (Book, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Author = strings.TrimSpace(p.Author)
	p.PublicationYear = strings.TrimSpace(p.PublicationYear)

	if errs := s.checkAddParams(p); len(errs) > 0 {
		return Book{}, errs
	}

	b := Book{
		Title:           p.Title,
		Author:          p.Author,
		PublicationYear: p.PublicationYear,
		Genre:           p.Genre,
		ReadStatus:      p.ReadStatus,
	}
	if err := s.store.Add(ctx, &b); err != nil {
		return Book{}, fmt.Errorf("add book: %w", err)
	}
	return b, nil
}

func (s *Service) checkAddParams(p AddParams) FieldErrors {
	var errs FieldErrors

	if err := s.validate.Struct(p); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, addParamError(fe))
		}
	}

	// Range and enum checks only apply once the field survived the
	// struct-tag pass, otherwise the same field reports twice.
	if p.PublicationYear != "" {
		year, err := strconv.Atoi(p.PublicationYear)
		switch {
		case err != nil:
			errs = append(errs, FieldError{
				Field:   "publication_year",
				Message: "publication_year must be a whole number",
			})
		case year < MinPublicationYear || year > time.Now().Year():
			errs = append(errs, FieldError{
				Field: "publication_year",
				Message: fmt.Sprintf("publication_year must be between %d and %d",
					MinPublicationYear, time.Now().Year()),
			})
		}
	}
	if p.Genre != "" && !slices.Contains(Genres, p.Genre) {
		errs = append(errs, FieldError{
			Field:   "genre",
			Message: "genre must be one of the catalog genres",
		})
	}

	return errs
}

func addParamError(fe validator.FieldError) FieldError {
	field := snakeCase(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return FieldError{Field: field, Message: msg}
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Remove deletes a single record matching term. An empty term is a no-op
// and never reaches the store.
func (s *Service) Remove(ctx context.Context, term string) error {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	return s.store.Remove(ctx, term)
}

// RemoveByID deletes one record by its store-assigned identifier, for
// callers that disambiguated a multi-match term first.
func (s *Service) RemoveByID(ctx context.Context, id string) error {
	return s.store.RemoveByID(ctx, id)
}

// ListAll returns the full catalog.
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	return s.store.ListAll(ctx)
}

// Search returns records matching term; an empty term yields no results.
func (s *Service) Search(ctx context.Context, term string) ([]Book, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	return s.store.Search(ctx, term)
}
