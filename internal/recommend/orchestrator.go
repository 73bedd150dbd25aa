package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"bookshelf/internal/book"
)

// noResultsMessage is returned in place of purchase links when the search
// service finds nothing.
const noResultsMessage = "No relevant results found."

// purchaseLinksHeading separates the summary text from the link block.
const purchaseLinksHeading = "PURCHASE LINKS"

// CompletionClient issues one system turn and one user turn to an external
// text-generation service and returns the first choice verbatim.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// SearchClient runs a free-text web search and returns result links in
// service order.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// ExternalServiceError reports a failed call to the completion or search
// service. It is recoverable: catalog operations stay usable.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// Orchestrator assembles and dispatches recommendation requests to the
// external services and renders the combined result. It never mutates the
// catalog.
type Orchestrator struct {
	completion CompletionClient
	search     SearchClient
	maxLinks   int
	logger     zerolog.Logger
}

func NewOrchestrator(completion CompletionClient, search SearchClient, maxLinks int, logger zerolog.Logger) *Orchestrator {
	if maxLinks <= 0 {
		maxLinks = 3
	}
	return &Orchestrator{
		completion: completion,
		search:     search,
		maxLinks:   maxLinks,
		logger:     logger.With().Str("component", "orchestrator").Logger(),
	}
}

// Summarize runs the summarize-and-link flow for one reference book: one
// completion call for the summary, one search call for purchase links, and
// the concatenated result.
func (o *Orchestrator) Summarize(ctx context.Context, ref book.Book) (string, error) {
	summary, err := o.completion.Complete(ctx, summarySystemPrompt, summaryUserPrompt(ref))
	if err != nil {
		o.logger.Error().Err(err).Str("title", ref.Title).Msg("summary completion failed")
		return "", &ExternalServiceError{Service: "completion", Err: err}
	}

	links, err := o.search.Search(ctx, purchaseQuery(ref))
	if err != nil {
		o.logger.Error().Err(err).Str("title", ref.Title).Msg("purchase link search failed")
		return "", &ExternalServiceError{Service: "search", Err: err}
	}

	return summary + "\n\n" + purchaseLinksHeading + "\n" + o.linkBlock(links), nil
}

func (o *Orchestrator) linkBlock(links []string) string {
	if len(links) == 0 {
		return noResultsMessage
	}
	bullets := lo.Map(lo.Subset(links, 0, uint(o.maxLinks)), func(link string, _ int) string {
		return "- " + link
	})
	return strings.Join(bullets, "\n")
}

// Recommend runs the preference-based flow: one completion call scoped to
// the validated request, returned verbatim. No link augmentation.
func (o *Orchestrator) Recommend(ctx context.Context, req Request) (string, error) {
	text, err := o.completion.Complete(ctx, recommendSystemPrompt, recommendUserPrompt(req))
	if err != nil {
		o.logger.Error().Err(err).Msg("recommendation completion failed")
		return "", &ExternalServiceError{Service: "completion", Err: err}
	}
	return text, nil
}
