// Package loader appends transformed datasets to the analytical
// warehouse. Time-series tables (stock, crypto, news) are append-only;
// the portfolio table is a full snapshot replaced on every run.
package loader

import (
	"time"

	"MarketETL/internal/model"
)

// RunMetrics is one monitoring row per table per pipeline run.
type RunMetrics struct {
	RunID              string
	Table              string
	RecordsExtracted   int
	RecordsTransformed int
	RecordsLoaded      int
	Errors             int
	ExecutionSeconds   float64
	Status             string
	ErrorMessage       string
	RunTimestamp       time.Time
}

// Loader persists transformed datasets. Each Load call returns the
// number of rows written.
type Loader interface {
	LoadStockBars(bars []model.StockBar) (int, error)
	LoadCryptoTicks(ticks []model.CryptoTick) (int, error)
	LoadNews(articles []model.NewsArticle) (int, error)
	ReplacePortfolio(holdings []model.PortfolioHolding) (int, error)
	LogRunMetrics(m *RunMetrics) error
	Close() error
}
