package transform

import (
	"strings"
	"unicode/utf8"

	"MarketETL/internal/model"
)

// classifyNews trims titles, measures their length, and flags keyword
// presence. Matching is plain case-insensitive substring search, so
// "profitability" flags has_profit; downstream sentiment counts depend
// on exactly this definition, so it must not be tightened to word
// boundaries.
func classifyNews(articles []model.NewsArticle) {
	for i := range articles {
		a := &articles[i]
		a.Title = strings.TrimSpace(a.Title)
		a.TitleLength = utf8.RuneCountInString(a.Title)

		lower := strings.ToLower(a.Title)
		a.KeywordFlags = make(map[string]bool, len(model.Keywords))
		for _, kw := range model.Keywords {
			a.KeywordFlags[kw] = strings.Contains(lower, kw)
		}
	}
}
