package transform

import (
	"testing"

	"MarketETL/internal/model"
)

func TestClassifyNews_SubstringMatch(t *testing.T) {
	articles := []model.NewsArticle{
		{Symbol: "AAPL", Title: "Company reports record profitability"},
	}
	classifyNews(articles)

	// substring semantics: "profitability" contains "profit"
	if !articles[0].KeywordFlags["profit"] {
		t.Error("expected has_profit for 'profitability'")
	}
	if articles[0].KeywordFlags["loss"] {
		t.Error("unexpected has_loss")
	}
}

func TestClassifyNews_CaseInsensitive(t *testing.T) {
	articles := []model.NewsArticle{
		{Title: "EARNINGS Beat: Bullish Outlook After Merger Talks"},
	}
	classifyNews(articles)

	for _, kw := range []string{"earnings", "bullish", "merger"} {
		if !articles[0].KeywordFlags[kw] {
			t.Errorf("expected has_%s", kw)
		}
	}
	for _, kw := range []string{"bearish", "decline", "acquisition"} {
		if articles[0].KeywordFlags[kw] {
			t.Errorf("unexpected has_%s", kw)
		}
	}
}

func TestClassifyNews_TrimsAndMeasuresTitle(t *testing.T) {
	articles := []model.NewsArticle{
		{Title: "  Revenue up 20%  "},
	}
	classifyNews(articles)

	if articles[0].Title != "Revenue up 20%" {
		t.Errorf("title not trimmed: %q", articles[0].Title)
	}
	if articles[0].TitleLength != 14 {
		t.Errorf("title length = %d, want 14", articles[0].TitleLength)
	}
	if !articles[0].KeywordFlags["revenue"] {
		t.Error("expected has_revenue")
	}
}

func TestClassifyNews_AllFlagsPresent(t *testing.T) {
	articles := []model.NewsArticle{{Title: "quiet day on the markets"}}
	classifyNews(articles)

	if len(articles[0].KeywordFlags) != len(model.Keywords) {
		t.Fatalf("expected %d flags, got %d", len(model.Keywords), len(articles[0].KeywordFlags))
	}
	for kw, set := range articles[0].KeywordFlags {
		if set {
			t.Errorf("unexpected has_%s for neutral title", kw)
		}
	}
}
