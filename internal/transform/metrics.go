package transform

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"MarketETL/internal/model"
)

// Row-wise derivations. No ordering dependency; each row is independent.

// enrichStockMetrics fills price range, change, and percent change.
// A zero open leaves the percent change missing rather than infinite.
func enrichStockMetrics(bars []model.StockBar) {
	for i := range bars {
		b := &bars[i]
		b.PriceRange = b.High - b.Low
		b.PriceChange = b.Close - b.Open
		if b.Open == 0 || model.IsMissing(b.Open) {
			b.PriceChangePct = model.Missing()
		} else {
			b.PriceChangePct = b.PriceChange / b.Open * 100
		}
	}
}

// priceCategory buckets a USD price. Intervals are left-inclusive,
// right-exclusive; the top bucket is open-ended upward.
func priceCategory(priceUSD float64) string {
	switch {
	case model.IsMissing(priceUSD) || priceUSD < 0:
		return ""
	case priceUSD < 100:
		return "low"
	case priceUSD < 1000:
		return "medium"
	case priceUSD < 10000:
		return "high"
	default:
		return "very_high"
	}
}

func enrichCryptoMetrics(ticks []model.CryptoTick) {
	for i := range ticks {
		ticks[i].PriceCategory = priceCategory(ticks[i].PriceUSD)
	}
}

// costBasis multiplies quantity by purchase price in decimal arithmetic,
// so stored money amounts do not pick up binary float drift.
func costBasis(quantity, purchasePrice float64) float64 {
	if model.IsMissing(quantity) || model.IsMissing(purchasePrice) {
		return model.Missing()
	}
	v, _ := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(purchasePrice)).Float64()
	return v
}

// holdingDays returns whole days elapsed since purchase, truncated. A
// holding purchased today yields 0; an unknown purchase date stays missing.
func holdingDays(purchaseDate, now time.Time) float64 {
	if purchaseDate.IsZero() {
		return model.Missing()
	}
	return math.Floor(now.Sub(purchaseDate).Hours() / 24)
}

func enrichPortfolioMetrics(holdings []model.PortfolioHolding, now time.Time) {
	for i := range holdings {
		h := &holdings[i]
		h.CostBasis = costBasis(h.Quantity, h.PurchasePrice)
		h.HoldingDays = holdingDays(h.PurchaseDate, now)
	}
}
