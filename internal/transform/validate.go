package transform

import "MarketETL/internal/model"

// Final gate before output: business-rule filtering and uniqueness.
// Offending rows are dropped silently and the batch continues with a
// reduced row count; the gate never errors.

// validateStocks drops bars with non-positive close or negative volume,
// then deduplicates on (symbol, date) keeping the last occurrence:
// later-arriving data for the same key supersedes earlier data within
// the batch.
func validateStocks(bars []model.StockBar) []model.StockBar {
	kept := make([]model.StockBar, 0, len(bars))
	for _, b := range bars {
		if b.Close <= 0 || b.Volume < 0 {
			continue
		}
		kept = append(kept, b)
	}

	type key struct {
		symbol string
		date   string
	}
	return dedupKeepLast(kept, func(b model.StockBar) any {
		return key{b.Symbol, b.Date.Format("2006-01-02")}
	})
}

// validateNews deduplicates on (title, symbol), keep-last.
func validateNews(articles []model.NewsArticle) []model.NewsArticle {
	type key struct {
		title  string
		symbol string
	}
	return dedupKeepLast(articles, func(a model.NewsArticle) any {
		return key{a.Title, a.Symbol}
	})
}

// dedupKeepLast keeps, for each key, the row appearing latest in input
// order, preserving the relative order of the survivors.
func dedupKeepLast[T any](rows []T, keyOf func(T) any) []T {
	seen := make(map[any]bool, len(rows))
	out := make([]T, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		k := keyOf(rows[i])
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, rows[i])
	}
	// restore input order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
