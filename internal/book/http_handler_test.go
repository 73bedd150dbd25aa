package book

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/httpx"
	"bookshelf/internal/session"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockStore, *session.Manager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockStore := NewMockStore(ctrl)
	sessions := session.NewManager()
	handler := NewHTTPHandler(NewService(mockStore), sessions, zerolog.Nop())
	return handler, mockStore, sessions
}

func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(httpx.ContextWithSessionID(r.Context(), sessionID))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("success queues a one-shot banner", func(t *testing.T) {
		handler, mockStore, sessions := newTestHandler(t)
		mockStore.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := withSession(httptest.NewRequest(http.MethodPost, "/books",
			jsonBody(t, map[string]string{
				"title": "Dune", "author": "Frank Herbert",
				"publication_year": "1965", "genre": "Science Fiction",
				"read_status": "yes",
			})), "s1")
		r.Header.Set("Content-Type", "application/json")

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)

		banners := sessions.Get("s1").TakeBanners()
		require.Len(t, banners, 1)
		assert.Equal(t, session.BannerSuccess, banners[0].Kind)
		assert.Empty(t, sessions.Get("s1").TakeBanners(), "banner must clear after one read")
	})

	t.Run("validation errors are reported together", func(t *testing.T) {
		handler, _, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		r := withSession(httptest.NewRequest(http.MethodPost, "/books",
			jsonBody(t, map[string]string{"genre": "Fiction"})), "s1")

		handler.Create(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("store failure maps to store_error, not not_found", func(t *testing.T) {
		handler, mockStore, _ := newTestHandler(t)
		mockStore.EXPECT().Add(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := withSession(httptest.NewRequest(http.MethodPost, "/books",
			jsonBody(t, map[string]string{
				"title": "Dune", "author": "Frank Herbert",
				"publication_year": "1965", "genre": "Science Fiction",
				"read_status": "yes",
			})), "s1")

		handler.Create(w, r)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHTTPHandler_SearchRemoveScenario(t *testing.T) {
	// Catalog ["Dune" by Herbert]: search("herbert") finds one match,
	// remove("herbert") empties the catalog, and the next search finds
	// nothing.
	handler, mockStore, sessions := newTestHandler(t)
	dune := Book{ID: "1", Title: "Dune", Author: "Frank Herbert", PublicationYear: "1965"}

	gomock.InOrder(
		mockStore.EXPECT().Search(gomock.Any(), "herbert").Return([]Book{dune}, nil),
		mockStore.EXPECT().Remove(gomock.Any(), "herbert").Return(nil),
		mockStore.EXPECT().Search(gomock.Any(), "herbert").Return(nil, nil),
	)

	w := httptest.NewRecorder()
	handler.Search(w, withSession(httptest.NewRequest(http.MethodGet, "/books/search?term=herbert", nil), "s1"))
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sessions.Get("s1").LastSearch(), 1)
	assert.Equal(t, session.FlowASearched, sessions.Get("s1").FlowA())

	w = httptest.NewRecorder()
	handler.RemoveByTerm(w, withSession(httptest.NewRequest(http.MethodDelete, "/books?term=herbert", nil), "s1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.Search(w, withSession(httptest.NewRequest(http.MethodGet, "/books/search?term=herbert", nil), "s1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sessions.Get("s1").LastSearch())
	assert.Equal(t, session.FlowAIdle, sessions.Get("s1").FlowA())
}

func TestHTTPHandler_RemoveByTerm_NotFound(t *testing.T) {
	handler, mockStore, _ := newTestHandler(t)
	mockStore.EXPECT().Remove(gomock.Any(), "nobody").Return(ErrNotFound)

	w := httptest.NewRecorder()
	handler.RemoveByTerm(w, withSession(httptest.NewRequest(http.MethodDelete, "/books?term=nobody", nil), "s1"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("returns the full catalog even with an empty search term semantics", func(t *testing.T) {
		handler, mockStore, _ := newTestHandler(t)
		mockStore.EXPECT().ListAll(gomock.Any()).Return([]Book{
			{Title: "Dune"}, {Title: "The Hobbit"},
		}, nil)

		w := httptest.NewRecorder()
		handler.List(w, withSession(httptest.NewRequest(http.MethodGet, "/books", nil), "s1"))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("store unreachable is distinct from empty catalog", func(t *testing.T) {
		handler, mockStore, _ := newTestHandler(t)
		mockStore.EXPECT().ListAll(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.List(w, withSession(httptest.NewRequest(http.MethodGet, "/books", nil), "s1"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
