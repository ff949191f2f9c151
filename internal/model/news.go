package model

import "time"

// Keywords is the fixed classification vocabulary for news titles.
// The warehouse carries one has_<keyword> column per entry, in this order.
var Keywords = []string{
	"earnings", "merger", "acquisition", "revenue", "profit",
	"loss", "growth", "decline", "bullish", "bearish",
}

// NewsArticle is one scraped headline tied to a symbol.
type NewsArticle struct {
	Symbol    string
	Title     string
	URL       string
	Source    string
	ScrapedAt time.Time

	TitleLength  int
	KeywordFlags map[string]bool // keyed by Keywords entries

	TransformedAt time.Time
}
