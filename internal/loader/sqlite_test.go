package loader

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"MarketETL/internal/model"
)

func newTestLoader(t *testing.T) *SQLiteLoader {
	t.Helper()
	l, err := NewSQLiteLoader(filepath.Join(t.TempDir(), "warehouse.db"))
	if err != nil {
		t.Fatalf("open warehouse: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLoadStockBars_MissingBecomesNull(t *testing.T) {
	l := newTestLoader(t)

	bars := []model.StockBar{
		{
			Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Symbol: "AAPL",
			Open: 100, High: 110, Low: 95, Close: 105, Volume: 1000,
			DailyReturn:   model.Missing(),
			MA7:           105,
			MA30:          105,
			Volatility30d: model.Missing(),
			TransformedAt: time.Now(),
		},
	}
	n, err := l.LoadStockBars(bars)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows written = %d", n)
	}

	var dailyReturn, vol sql.NullFloat64
	var closePrice float64
	err = l.db.QueryRow(`SELECT daily_return, volatility_30d, close FROM stock_prices WHERE symbol = 'AAPL'`).
		Scan(&dailyReturn, &vol, &closePrice)
	if err != nil {
		t.Fatalf("query back: %v", err)
	}
	if dailyReturn.Valid || vol.Valid {
		t.Error("missing indicator values must be stored as NULL")
	}
	if closePrice != 105 {
		t.Errorf("close = %f", closePrice)
	}
}

func TestReplacePortfolio_FullSnapshot(t *testing.T) {
	l := newTestLoader(t)

	first := []model.PortfolioHolding{
		{UserID: 1, Symbol: "AAPL", Quantity: 10, PurchasePrice: 150, CostBasis: 1500, HoldingDays: 30},
		{UserID: 1, Symbol: "MSFT", Quantity: 5, PurchasePrice: 400, CostBasis: 2000, HoldingDays: 10},
	}
	if _, err := l.ReplacePortfolio(first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []model.PortfolioHolding{
		{UserID: 1, Symbol: "NVDA", Quantity: 2, PurchasePrice: 2500, CostBasis: 5000, HoldingDays: 0},
	}
	n, err := l.ReplacePortfolio(second)
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows written = %d", n)
	}

	var count int
	var symbol string
	if err := l.db.QueryRow(`SELECT COUNT(*) FROM user_portfolio`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("portfolio must hold only the latest snapshot, got %d rows", count)
	}
	if err := l.db.QueryRow(`SELECT symbol FROM user_portfolio`).Scan(&symbol); err != nil {
		t.Fatal(err)
	}
	if symbol != "NVDA" {
		t.Errorf("snapshot symbol = %s", symbol)
	}
}

func TestLoadNews_KeywordColumns(t *testing.T) {
	l := newTestLoader(t)

	flags := make(map[string]bool, len(model.Keywords))
	for _, kw := range model.Keywords {
		flags[kw] = false
	}
	flags["earnings"] = true

	articles := []model.NewsArticle{
		{Symbol: "AAPL", Title: "Apple earnings beat", Source: "Yahoo Finance",
			TitleLength: 19, KeywordFlags: flags, ScrapedAt: time.Now(), TransformedAt: time.Now()},
	}
	if _, err := l.LoadNews(articles); err != nil {
		t.Fatalf("load news: %v", err)
	}

	var hasEarnings, hasMerger bool
	err := l.db.QueryRow(`SELECT has_earnings, has_merger FROM market_news WHERE symbol = 'AAPL'`).
		Scan(&hasEarnings, &hasMerger)
	if err != nil {
		t.Fatalf("query back: %v", err)
	}
	if !hasEarnings || hasMerger {
		t.Errorf("has_earnings=%v has_merger=%v", hasEarnings, hasMerger)
	}
}

func TestLogRunMetrics(t *testing.T) {
	l := newTestLoader(t)

	err := l.LogRunMetrics(&RunMetrics{
		RunID: "run-1", Table: "stocks",
		RecordsExtracted: 10, RecordsTransformed: 9, RecordsLoaded: 9,
		Status: "SUCCESS", RunTimestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("log metrics: %v", err)
	}

	var loaded int
	var status string
	err = l.db.QueryRow(`SELECT records_loaded, status FROM pipeline_metrics WHERE pipeline_run_id = 'run-1'`).
		Scan(&loaded, &status)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != 9 || status != "SUCCESS" {
		t.Errorf("loaded=%d status=%s", loaded, status)
	}
}
