package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"MarketETL/internal/model"
)

// Coercion is best-effort by policy: a value that fails to parse becomes
// the missing marker, never an error. Only rows missing the domain's
// required field are dropped.

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseFloat coerces a raw string to float64, substituting the missing
// marker for empty or unparsable values.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Missing()
	}
	return v
}

// parseInt coerces a raw string to int64, substituting zero on failure.
func parseInt(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseTime tries each layout in order; a zero time marks a missing instant.
func parseTime(s string, layouts []string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// requireColumn reports a structural error when the named column is absent
// from every record: there is nothing meaningful to transform.
func requireColumn(records []model.RawRecord, col string) error {
	for _, r := range records {
		if _, ok := r[col]; ok {
			return nil
		}
	}
	return fmt.Errorf("required column %q absent from input: %w", col, ErrMalformedInput)
}

func normalizeStocks(records []model.RawRecord) []model.StockBar {
	bars := make([]model.StockBar, 0, len(records))
	for _, r := range records {
		bar := model.StockBar{
			Date:                parseTime(r["date"], dateLayouts),
			Symbol:              strings.TrimSpace(r["symbol"]),
			Open:                parseFloat(r["open"]),
			High:                parseFloat(r["high"]),
			Low:                 parseFloat(r["low"]),
			Close:               parseFloat(r["close"]),
			Volume:              parseFloat(r["volume"]),
			ExtractionTimestamp: parseTime(r["extraction_timestamp"], timestampLayouts),
		}
		if model.IsMissing(bar.Close) {
			continue
		}
		if model.IsMissing(bar.Volume) {
			bar.Volume = 0
		}
		bars = append(bars, bar)
	}
	return bars
}

func normalizeCrypto(records []model.RawRecord) []model.CryptoTick {
	ticks := make([]model.CryptoTick, 0, len(records))
	for _, r := range records {
		tick := model.CryptoTick{
			Timestamp: parseTime(r["timestamp"], timestampLayouts),
			CryptoID:  strings.TrimSpace(r["crypto_id"]),
			PriceUSD:  parseFloat(r["price_usd"]),
			MarketCap: parseFloat(r["market_cap"]),
			Volume24h: parseFloat(r["volume_24h"]),
			Change24h: parseFloat(r["change_24h"]),
		}
		if model.IsMissing(tick.PriceUSD) {
			continue
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

func normalizeNews(records []model.RawRecord) []model.NewsArticle {
	articles := make([]model.NewsArticle, 0, len(records))
	for _, r := range records {
		articles = append(articles, model.NewsArticle{
			Symbol:    strings.TrimSpace(r["symbol"]),
			Title:     r["title"],
			URL:       strings.TrimSpace(r["url"]),
			Source:    strings.TrimSpace(r["source"]),
			ScrapedAt: parseTime(r["scraped_at"], timestampLayouts),
		})
	}
	return articles
}

func normalizePortfolio(records []model.RawRecord) []model.PortfolioHolding {
	holdings := make([]model.PortfolioHolding, 0, len(records))
	for _, r := range records {
		holdings = append(holdings, model.PortfolioHolding{
			UserID:        parseInt(r["user_id"]),
			Symbol:        strings.TrimSpace(r["symbol"]),
			Quantity:      parseFloat(r["quantity"]),
			PurchasePrice: parseFloat(r["purchase_price"]),
			PurchaseDate:  parseTime(r["purchase_date"], dateLayouts),
			AssetType:     strings.TrimSpace(r["asset_type"]),
			CreatedAt:     parseTime(r["created_at"], timestampLayouts),
		})
	}
	return holdings
}
