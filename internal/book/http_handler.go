package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"bookshelf/internal/httpx"
	"bookshelf/internal/session"
)

// HTTPHandler exposes the catalog over the presentation boundary.
type HTTPHandler struct {
	service  *Service
	sessions *session.Manager
	logger   zerolog.Logger
}

func NewHTTPHandler(service *Service, sessions *session.Manager, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		service:  service,
		sessions: sessions,
		logger:   logger.With().Str("component", "book_handler").Logger(),
	}
}

// Create handles POST /books.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p AddParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON body", nil)
		return
	}

	b, err := h.service.Add(r.Context(), p)
	if err != nil {
		var fieldErrs FieldErrors
		if errors.As(err, &fieldErrs) {
			httpx.JSONError(w, http.StatusUnprocessableEntity, httpx.CodeValidationError,
				"invalid book", toErrorDetails(fieldErrs))
			return
		}
		h.logger.Error().Err(err).Msg("add book failed")
		httpx.JSONError(w, http.StatusServiceUnavailable, httpx.CodeStoreError, "catalog is unavailable", nil)
		return
	}

	h.state(r).AddBanner(session.BannerSuccess, "Book added successfully!")
	httpx.JSONSuccessCreated(r, w, b)
}

// RemoveByTerm handles DELETE /books?term=. At most one matching record is
// removed; clients are expected to search first and show the matches before
// confirming.
func (h *HTTPHandler) RemoveByTerm(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "term is required", nil)
		return
	}

	if err := h.service.Remove(r.Context(), term); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound,
				"No books found matching that title or author.", nil)
			return
		}
		h.logger.Error().Err(err).Msg("remove book failed")
		httpx.JSONError(w, http.StatusServiceUnavailable, httpx.CodeStoreError, "catalog is unavailable", nil)
		return
	}

	h.state(r).AddBanner(session.BannerSuccess, "Book removed successfully!")
	httpx.JSONSuccess(r, w, nil)
}

// RemoveByID handles DELETE /books/{id}.
func (h *HTTPHandler) RemoveByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeBadRequest, "id is required", nil)
		return
	}

	if err := h.service.RemoveByID(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound, "book not found", nil)
			return
		}
		h.logger.Error().Err(err).Msg("remove book by id failed")
		httpx.JSONError(w, http.StatusServiceUnavailable, httpx.CodeStoreError, "catalog is unavailable", nil)
		return
	}

	h.state(r).AddBanner(session.BannerSuccess, "Book removed successfully!")
	httpx.JSONSuccess(r, w, nil)
}

// List handles GET /books.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list books failed")
		httpx.JSONError(w, http.StatusServiceUnavailable, httpx.CodeStoreError, "catalog is unavailable", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONSuccess(r, w, books)
}

// Search handles GET /books/search?term=. The results are recorded on the
// session so a following summary request can pick up the reference book.
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	books, err := h.service.Search(r.Context(), term)
	if err != nil {
		h.logger.Error().Err(err).Msg("search books failed")
		httpx.JSONError(w, http.StatusServiceUnavailable, httpx.CodeStoreError, "catalog is unavailable", nil)
		return
	}

	h.state(r).RecordSearch(books)

	if books == nil {
		books = []Book{}
	}
	httpx.JSONSuccess(r, w, books)
}

func (h *HTTPHandler) state(r *http.Request) *session.State {
	return h.sessions.Get(httpx.SessionIDFrom(r))
}

func toErrorDetails(errs FieldErrors) []httpx.ErrorDetail {
	out := make([]httpx.ErrorDetail, len(errs))
	for i, fe := range errs {
		out[i] = httpx.ErrorDetail{Field: fe.Field, Message: fe.Message}
	}
	return out
}
