package model

import "time"

// CryptoTick is one point-in-time spot price observation for a crypto asset.
type CryptoTick struct {
	Timestamp time.Time
	CryptoID  string
	PriceUSD  float64
	MarketCap float64
	Volume24h float64
	Change24h float64

	PriceCategory string

	TransformedAt time.Time
}
