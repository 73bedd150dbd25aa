package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawPreferences() RawPreferences {
	return RawPreferences{
		Genres:       []string{"Fantasy", "Mystery"},
		TimePeriods:  []string{"Modern (2000s-present)", "Classic (pre-1950s)"},
		Themes:       []string{"Adventure"},
		RecentlyRead: "The Name of the Wind",
	}
}

func TestBuilder_BuildRequest(t *testing.T) {
	builder := NewBuilder()

	t.Run("valid input echoes fields with optionals defaulted", func(t *testing.T) {
		raw := validRawPreferences()
		req, err := builder.BuildRequest(raw)
		require.NoError(t, err)

		assert.Equal(t, raw.Genres, req.Genres)
		assert.Equal(t, raw.TimePeriods, req.TimePeriods)
		assert.Equal(t, raw.Themes, req.Themes)
		assert.Equal(t, raw.RecentlyRead, req.RecentlyRead)
		assert.Empty(t, req.Mood)
		assert.Empty(t, req.LengthPreference)
		assert.Empty(t, req.WritingStyle)
		assert.Empty(t, req.Avoid)
		assert.Empty(t, req.Purpose)
		assert.Empty(t, req.SpecificRequest)
	})

	t.Run("missing genres and recently read yields exactly two violations", func(t *testing.T) {
		raw := validRawPreferences()
		raw.Genres = nil
		raw.RecentlyRead = ""

		_, err := builder.BuildRequest(raw)
		require.Error(t, err)

		var violations ValidationErrors
		require.ErrorAs(t, err, &violations)
		assert.Len(t, violations, 2, "validation must not short-circuit after the first problem")
	})

	t.Run("whitespace-only recently read is rejected", func(t *testing.T) {
		raw := validRawPreferences()
		raw.RecentlyRead = "   \t"

		_, err := builder.BuildRequest(raw)
		var violations ValidationErrors
		require.ErrorAs(t, err, &violations)
		assert.Contains(t, violations, "Please tell us about a book you recently read")
	})

	t.Run("all required fields missing reports all four", func(t *testing.T) {
		_, err := builder.BuildRequest(RawPreferences{})
		var violations ValidationErrors
		require.ErrorAs(t, err, &violations)
		assert.Len(t, violations, 4)
	})

	t.Run("error renders as a bulleted list", func(t *testing.T) {
		raw := validRawPreferences()
		raw.Genres = nil
		raw.Themes = []string{}

		_, err := builder.BuildRequest(raw)
		require.Error(t, err)

		lines := strings.Split(err.Error(), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, "- "), "line %q", line)
		}
	})

	t.Run("validity does not persist: the same builder re-checks every submission", func(t *testing.T) {
		_, err := builder.BuildRequest(validRawPreferences())
		require.NoError(t, err)

		raw := validRawPreferences()
		raw.Genres = nil
		_, err = builder.BuildRequest(raw)
		require.Error(t, err)
	})
}
