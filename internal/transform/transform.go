// Package transform converts loosely-typed extracted records into
// validated, feature-enriched, deduplicated datasets ready for
// warehouse loading. Every stage is a pure dataset-in/dataset-out
// function: no stage mutates its caller's data or keeps a reference to
// a previous stage's output. Row-level data-quality problems resolve
// locally (drop or missing marker); only structurally unusable input
// errors.
package transform

import (
	"errors"
	"time"

	"MarketETL/internal/model"
)

// ErrMalformedInput marks structural failures: input that cannot be
// interpreted as the expected domain shape at all.
var ErrMalformedInput = errors.New("malformed input")

// ErrNoData is returned for an empty dataset.
var ErrNoData = errors.New("empty dataset")

// Transformer runs the per-domain pipelines. The clock is injectable so
// tests can pin holding_days and transformed_at.
type Transformer struct {
	now func() time.Time
}

func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

// NewTransformerAt returns a Transformer with a fixed processing instant.
func NewTransformerAt(now func() time.Time) *Transformer {
	return &Transformer{now: now}
}

// TransformStocks runs normalize → indicators → row metrics → gate over
// daily stock bars. Output is unique per (symbol, date).
func (t *Transformer) TransformStocks(records []model.RawRecord) ([]model.StockBar, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	if err := requireColumn(records, "close"); err != nil {
		return nil, err
	}

	bars := normalizeStocks(records)
	bars = enrichIndicators(bars)
	enrichStockMetrics(bars)
	bars = validateStocks(bars)

	stamp := t.now()
	for i := range bars {
		bars[i].TransformedAt = stamp
	}
	return bars, nil
}

// TransformCrypto normalizes spot ticks and buckets prices. No
// uniqueness constraint beyond what extraction yields.
func (t *Transformer) TransformCrypto(records []model.RawRecord) ([]model.CryptoTick, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	if err := requireColumn(records, "price_usd"); err != nil {
		return nil, err
	}

	ticks := normalizeCrypto(records)
	enrichCryptoMetrics(ticks)

	stamp := t.now()
	for i := range ticks {
		ticks[i].TransformedAt = stamp
	}
	return ticks, nil
}

// TransformNews trims and classifies titles, then deduplicates on
// (title, symbol) keep-last.
func (t *Transformer) TransformNews(records []model.RawRecord) ([]model.NewsArticle, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	if err := requireColumn(records, "title"); err != nil {
		return nil, err
	}

	articles := normalizeNews(records)
	classifyNews(articles)
	articles = validateNews(articles)

	stamp := t.now()
	for i := range articles {
		articles[i].TransformedAt = stamp
	}
	return articles, nil
}

// TransformPortfolio normalizes holdings and computes cost basis and
// holding duration against the processing instant.
func (t *Transformer) TransformPortfolio(records []model.RawRecord) ([]model.PortfolioHolding, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	if err := requireColumn(records, "quantity"); err != nil {
		return nil, err
	}

	holdings := normalizePortfolio(records)
	enrichPortfolioMetrics(holdings, t.now())

	stamp := t.now()
	for i := range holdings {
		holdings[i].TransformedAt = stamp
	}
	return holdings, nil
}
