package recommend

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawPreferences carries the user's reading preferences exactly as
// submitted, before validation.
type RawPreferences struct {
	Genres       []string `json:"genres" validate:"required,min=1"`
	TimePeriods  []string `json:"time_periods" validate:"required,min=1"`
	Themes       []string `json:"themes" validate:"required,min=1"`
	RecentlyRead string   `json:"recently_read" validate:"required"`

	Mood             string `json:"mood"`
	LengthPreference string `json:"length_preference"`
	WritingStyle     string `json:"writing_style"`
	Avoid            string `json:"avoid"`
	Purpose          string `json:"purpose"`
	SpecificRequest  string `json:"specific_request"`
}

// Request is a validated preference bundle. All time periods the user
// selected are carried, even though prompt assembly only reads the first.
type Request struct {
	Genres       []string
	TimePeriods  []string
	Themes       []string
	RecentlyRead string

	Mood             string
	LengthPreference string
	WritingStyle     string
	Avoid            string
	Purpose          string
	SpecificRequest  string
}

// ValidationErrors collects every violation found in one submission.
type ValidationErrors []string

// Error renders the violations as a bulleted list, one per line.
func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, msg := range v {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(msg)
	}
	return b.String()
}

// Builder validates raw preference fields into a well-formed Request.
type Builder struct {
	validate *validator.Validate
}

func NewBuilder() *Builder {
	return &Builder{validate: validator.New()}
}

// BuildRequest checks every required field independently and reports all
// violations together; it never stops at the first. On success the Request
// mirrors the input with optional fields defaulted to empty strings.
func (b *Builder) BuildRequest(raw RawPreferences) (Request, error) {
	raw.RecentlyRead = strings.TrimSpace(raw.RecentlyRead)

	if err := b.validate.Struct(raw); err != nil {
		var violations ValidationErrors
		for _, fe := range err.(validator.ValidationErrors) {
			violations = append(violations, violationMessage(fe.Field()))
		}
		return Request{}, violations
	}

	return Request{
		Genres:           raw.Genres,
		TimePeriods:      raw.TimePeriods,
		Themes:           raw.Themes,
		RecentlyRead:     raw.RecentlyRead,
		Mood:             strings.TrimSpace(raw.Mood),
		LengthPreference: strings.TrimSpace(raw.LengthPreference),
		WritingStyle:     strings.TrimSpace(raw.WritingStyle),
		Avoid:            strings.TrimSpace(raw.Avoid),
		Purpose:          strings.TrimSpace(raw.Purpose),
		SpecificRequest:  strings.TrimSpace(raw.SpecificRequest),
	}, nil
}

func violationMessage(field string) string {
	switch field {
	case "Genres":
		return "Please select at least one genre"
	case "TimePeriods":
		return "Please select at least one time period"
	case "Themes":
		return "Please select at least one theme"
	case "RecentlyRead":
		return "Please tell us about a book you recently read"
	default:
		return field + " is invalid"
	}
}
