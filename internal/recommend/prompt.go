package recommend

import (
	"fmt"
	"strings"

	"bookshelf/internal/book"
)

const summarySystemPrompt = `You are a knowledgeable library assistant. When asked about a book, produce a summary of exactly two paragraphs, opened by a short heading and supported by bullet points for the key themes. Write only about the book itself. Do not include any meta-commentary about being an assistant or about how you produced the summary.`

const recommendSystemPrompt = `You are a book recommendation engine. Read every preference the reader lists, including each entry of list-valued fields. For each suggestion return a concise entry with the book's title, author, an approximate rating, and a one-to-two sentence description. Suggest only books that fit the stated preferences.`

// purchaseSites are the storefronts the purchase-link lookup is scoped to.
var purchaseSites = []string{
	"amazon.com",
	"ebay.com",
	"walmart.com",
	"booksamillion.com",
	"bookdepository.com",
	"target.com",
}

func summaryUserPrompt(ref book.Book) string {
	return fmt.Sprintf("Provide a summary of the book %q by %s.", ref.Title, ref.Author)
}

// purchaseQuery builds the web-search query for purchase links of the
// reference book.
func purchaseQuery(ref book.Book) string {
	sites := make([]string, len(purchaseSites))
	for i, s := range purchaseSites {
		sites[i] = "site:" + s
	}
	return fmt.Sprintf("%s by %s buy links OR purchase OR order %s",
		ref.Title, ref.Author, strings.Join(sites, " OR "))
}

// recommendUserPrompt interpolates every preference field. Only the first
// selected time period appears in the prompt even when several were chosen;
// the Request still carries them all.
func recommendUserPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I am looking for book recommendations.\n")
	fmt.Fprintf(&b, "Genres I enjoy: %s.\n", strings.Join(req.Genres, ", "))
	if req.Mood != "" {
		fmt.Fprintf(&b, "Mood I am in: %s.\n", req.Mood)
	}
	if req.LengthPreference != "" {
		fmt.Fprintf(&b, "Preferred length: %s.\n", req.LengthPreference)
	}
	fmt.Fprintf(&b, "Preferred time period: %s.\n", req.TimePeriods[0])
	if req.WritingStyle != "" {
		fmt.Fprintf(&b, "Writing style I like: %s.\n", req.WritingStyle)
	}
	fmt.Fprintf(&b, "Themes that interest me: %s.\n", strings.Join(req.Themes, ", "))
	fmt.Fprintf(&b, "A book I recently read and enjoyed: %s.\n", req.RecentlyRead)
	if req.Avoid != "" {
		fmt.Fprintf(&b, "Please avoid: %s.\n", req.Avoid)
	}
	if req.Purpose != "" {
		fmt.Fprintf(&b, "I am reading for: %s.\n", req.Purpose)
	}
	if req.SpecificRequest != "" {
		fmt.Fprintf(&b, "One more thing: %s.\n", req.SpecificRequest)
	}

	return b.String()
}
