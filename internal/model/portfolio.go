package model

import "time"

// Asset types for portfolio holdings.
const (
	AssetStock  = "stock"
	AssetCrypto = "crypto"
)

// PortfolioHolding is one position in a user's portfolio. CostBasis and
// HoldingDays are computed by the transform stage, not stored upstream.
// The warehouse keeps portfolio as a full snapshot, replaced each run.
type PortfolioHolding struct {
	UserID        int64
	Symbol        string
	Quantity      float64
	PurchasePrice float64
	PurchaseDate  time.Time
	AssetType     string
	CreatedAt     time.Time

	CostBasis   float64
	HoldingDays float64 // whole days, missing when purchase date is unknown

	TransformedAt time.Time
}
