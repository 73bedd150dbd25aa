package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/book"
)

type fakeCompletion struct {
	lastSystem string
	lastUser   string
	reply      string
	err        error
}

func (f *fakeCompletion) Complete(_ context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	return f.reply, f.err
}

type fakeSearch struct {
	lastQuery string
	links     []string
	err       error
}

func (f *fakeSearch) Search(_ context.Context, query string) ([]string, error) {
	f.lastQuery = query
	return f.links, f.err
}

var dune = book.Book{Title: "Dune", Author: "Frank Herbert", PublicationYear: "1965"}

func TestOrchestrator_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("concatenates summary, heading, and bulleted links", func(t *testing.T) {
		completion := &fakeCompletion{reply: "A sweeping desert epic."}
		search := &fakeSearch{links: []string{
			"https://amazon.com/dune",
			"https://ebay.com/dune",
		}}
		orch := NewOrchestrator(completion, search, 3, zerolog.Nop())

		result, err := orch.Summarize(ctx, dune)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(result, "A sweeping desert epic."))
		assert.Contains(t, result, "PURCHASE LINKS")
		assert.Contains(t, result, "- https://amazon.com/dune")
		assert.Contains(t, result, "- https://ebay.com/dune")
	})

	t.Run("purchase query names the book and every storefront", func(t *testing.T) {
		completion := &fakeCompletion{reply: "ok"}
		search := &fakeSearch{}
		orch := NewOrchestrator(completion, search, 3, zerolog.Nop())

		_, err := orch.Summarize(ctx, dune)
		require.NoError(t, err)

		assert.Equal(t,
			"Dune by Frank Herbert buy links OR purchase OR order "+
				"site:amazon.com OR site:ebay.com OR site:walmart.com OR "+
				"site:booksamillion.com OR site:bookdepository.com OR site:target.com",
			search.lastQuery)
	})

	t.Run("user prompt carries title and author", func(t *testing.T) {
		completion := &fakeCompletion{reply: "ok"}
		orch := NewOrchestrator(completion, &fakeSearch{}, 3, zerolog.Nop())

		_, err := orch.Summarize(ctx, dune)
		require.NoError(t, err)
		assert.Contains(t, completion.lastUser, "Dune")
		assert.Contains(t, completion.lastUser, "Frank Herbert")
		assert.NotContains(t, completion.lastSystem, "Dune")
	})

	t.Run("zero search results yield the fixed message", func(t *testing.T) {
		orch := NewOrchestrator(&fakeCompletion{reply: "summary"}, &fakeSearch{links: nil}, 3, zerolog.Nop())

		result, err := orch.Summarize(ctx, dune)
		require.NoError(t, err)
		assert.Contains(t, result, "No relevant results found.")
	})

	t.Run("only the first three links are rendered", func(t *testing.T) {
		search := &fakeSearch{links: []string{"l1", "l2", "l3", "l4", "l5"}}
		orch := NewOrchestrator(&fakeCompletion{reply: "summary"}, search, 3, zerolog.Nop())

		result, err := orch.Summarize(ctx, dune)
		require.NoError(t, err)
		assert.Contains(t, result, "- l3")
		assert.NotContains(t, result, "- l4")
	})

	t.Run("completion failure surfaces as ExternalServiceError", func(t *testing.T) {
		orch := NewOrchestrator(&fakeCompletion{err: errors.New("quota exceeded")}, &fakeSearch{}, 3, zerolog.Nop())

		_, err := orch.Summarize(ctx, dune)
		var extErr *ExternalServiceError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, "completion", extErr.Service)
	})

	t.Run("search failure surfaces as ExternalServiceError", func(t *testing.T) {
		orch := NewOrchestrator(&fakeCompletion{reply: "summary"}, &fakeSearch{err: errors.New("timeout")}, 3, zerolog.Nop())

		_, err := orch.Summarize(ctx, dune)
		var extErr *ExternalServiceError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, "search", extErr.Service)
	})
}

func TestOrchestrator_Recommend(t *testing.T) {
	ctx := context.Background()

	req := Request{
		Genres:       []string{"Fantasy", "Mystery"},
		TimePeriods:  []string{"Classic (pre-1950s)", "Modern (2000s-present)"},
		Themes:       []string{"Adventure", "Found family"},
		RecentlyRead: "The Name of the Wind",
		Mood:         "contemplative",
		Avoid:        "graphic violence",
	}

	t.Run("returns the completion text verbatim, no link augmentation", func(t *testing.T) {
		completion := &fakeCompletion{reply: "1. The Hobbit — J.R.R. Tolkien — 4.5"}
		orch := NewOrchestrator(completion, &fakeSearch{}, 3, zerolog.Nop())

		text, err := orch.Recommend(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, completion.reply, text)
		assert.NotContains(t, text, "PURCHASE LINKS")
	})

	t.Run("prompt interpolates every field but only the first time period", func(t *testing.T) {
		completion := &fakeCompletion{reply: "ok"}
		orch := NewOrchestrator(completion, &fakeSearch{}, 3, zerolog.Nop())

		_, err := orch.Recommend(ctx, req)
		require.NoError(t, err)

		prompt := completion.lastUser
		assert.Contains(t, prompt, "Fantasy, Mystery")
		assert.Contains(t, prompt, "Adventure, Found family")
		assert.Contains(t, prompt, "The Name of the Wind")
		assert.Contains(t, prompt, "contemplative")
		assert.Contains(t, prompt, "graphic violence")
		assert.Contains(t, prompt, "Classic (pre-1950s)")
		assert.NotContains(t, prompt, "Modern (2000s-present)")
	})

	t.Run("failure surfaces as ExternalServiceError", func(t *testing.T) {
		orch := NewOrchestrator(&fakeCompletion{err: errors.New("network")}, &fakeSearch{}, 3, zerolog.Nop())

		_, err := orch.Recommend(ctx, req)
		var extErr *ExternalServiceError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, "completion", extErr.Service)
	})
}
