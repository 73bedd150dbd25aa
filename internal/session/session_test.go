package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/book"
)

func TestState_SummaryFlow(t *testing.T) {
	state := NewManager().Get("s1")
	assert.Equal(t, FlowAIdle, state.FlowA())

	t.Run("summary requires a prior non-empty search", func(t *testing.T) {
		_, err := state.BeginSummary()
		assert.ErrorIs(t, err, ErrNoSearchResults)
	})

	t.Run("search results persist until overwritten", func(t *testing.T) {
		results := []book.Book{{Title: "Dune"}, {Title: "Dune Messiah"}}
		state.RecordSearch(results)
		assert.Equal(t, FlowASearched, state.FlowA())
		assert.Equal(t, results, state.LastSearch())

		ref, err := state.BeginSummary()
		require.NoError(t, err)
		assert.Equal(t, "Dune", ref.Title)
		assert.Equal(t, FlowASummarizing, state.FlowA())

		state.EndSummary(true)
		assert.Equal(t, FlowASummarized, state.FlowA())

		// The reference is still there for another summary.
		_, err = state.BeginSummary()
		require.NoError(t, err)
		state.EndSummary(false)
		assert.Equal(t, FlowASearched, state.FlowA())
	})

	t.Run("an empty search resets the flow", func(t *testing.T) {
		state.RecordSearch(nil)
		assert.Equal(t, FlowAIdle, state.FlowA())
		_, err := state.BeginSummary()
		assert.ErrorIs(t, err, ErrNoSearchResults)
	})
}

func TestState_RecommendFlow(t *testing.T) {
	state := NewManager().Get("s1")

	assert.ErrorIs(t, state.BeginRecommend(), ErrNotValidated)

	state.RecordValidationFailure([]string{"Please select at least one genre"})
	assert.Equal(t, FlowBInvalid, state.FlowB())
	assert.Equal(t, []string{"Please select at least one genre"}, state.LastValidation())
	assert.ErrorIs(t, state.BeginRecommend(), ErrNotValidated)

	// The retained outcome is replaced, not accumulated, on resubmission.
	state.RecordValidated()
	assert.Empty(t, state.LastValidation())

	require.NoError(t, state.BeginRecommend())
	state.EndRecommend(true)
	assert.Equal(t, FlowBRecommended, state.FlowB())

	// A recommended session may ask again without re-validating.
	require.NoError(t, state.BeginRecommend())
	state.EndRecommend(false)
	assert.Equal(t, FlowBValidated, state.FlowB())
}

func TestState_Banners(t *testing.T) {
	state := NewManager().Get("s1")

	assert.Empty(t, state.TakeBanners())

	state.AddBanner(BannerSuccess, "Book added successfully!")
	state.AddBanner(BannerError, "The summary service is unavailable right now.")

	banners := state.TakeBanners()
	require.Len(t, banners, 2)
	assert.Equal(t, BannerSuccess, banners[0].Kind)

	// Cleared after one read.
	assert.Empty(t, state.TakeBanners())
}

func TestManager_Get(t *testing.T) {
	m := NewManager()

	a := m.Get("a")
	b := m.Get("b")
	assert.NotSame(t, a, b, "sessions are isolated")

	a.AddBanner(BannerInfo, "hello")
	assert.Empty(t, b.TakeBanners())
	assert.Same(t, a, m.Get("a"), "state is stable per session id")
}
