package model

import "time"

// StockBar is one OHLCV observation for a symbol on a calendar day.
// The transform stage enriches it in the derived and indicator fields;
// a bar is terminal once appended to the warehouse.
type StockBar struct {
	Date                time.Time
	Symbol              string
	Open                float64
	High                float64
	Low                 float64
	Close               float64
	Volume              float64
	ExtractionTimestamp time.Time

	// Derived row-wise metrics.
	PriceRange     float64
	PriceChange    float64
	PriceChangePct float64

	// Per-symbol rolling-window indicators.
	DailyReturn   float64
	MA7           float64
	MA30          float64
	Volatility30d float64

	TransformedAt time.Time
}
