// Package extract holds the thin I/O glue in front of the transform
// core: one fetcher per upstream source, each handing over loosely-typed
// RawRecords. How a source is reached (HTTP API, relational query) is
// invisible to the core.
package extract

import (
	"net/http"
	"net/url"
	"time"

	"MarketETL/internal/model"
)

// StockFetcher pulls daily OHLCV bars for one symbol.
type StockFetcher interface {
	FetchDailyBars(symbol string) ([]model.RawRecord, error)
	Name() string
}

// CryptoFetcher pulls current spot prices for a set of coin ids.
type CryptoFetcher interface {
	FetchSpotPrices(ids []string) ([]model.RawRecord, error)
	Name() string
}

// NewsFetcher pulls recent headlines for one symbol.
type NewsFetcher interface {
	FetchNews(symbol string) ([]model.RawRecord, error)
	Name() string
}

// PortfolioStore reads the user portfolio snapshot from its system of record.
type PortfolioStore interface {
	FetchHoldings() ([]model.RawRecord, error)
	Close() error
	Name() string
}

// newHTTPClient builds the shared client shape: 30s timeout, optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
