package transform

import (
	"testing"
	"time"

	"MarketETL/internal/model"
)

func TestStockMetrics_RangeAndChange(t *testing.T) {
	bars := []model.StockBar{
		{Open: 100, High: 115, Low: 95, Close: 110},
	}
	enrichStockMetrics(bars)

	if !almostEqual(bars[0].PriceRange, 20) {
		t.Errorf("price range = %f, want 20", bars[0].PriceRange)
	}
	if !almostEqual(bars[0].PriceChange, 10) {
		t.Errorf("price change = %f, want 10", bars[0].PriceChange)
	}
	if !almostEqual(bars[0].PriceChangePct, 10) {
		t.Errorf("price change pct = %f, want 10", bars[0].PriceChangePct)
	}
}

func TestStockMetrics_ZeroOpenYieldsMissingPct(t *testing.T) {
	bars := []model.StockBar{
		{Open: 0, High: 115, Low: 95, Close: 110},
	}
	enrichStockMetrics(bars)

	if !model.IsMissing(bars[0].PriceChangePct) {
		t.Errorf("zero open must yield missing pct, got %f", bars[0].PriceChangePct)
	}
}

func TestPriceCategory_Boundaries(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "low"},
		{99.99, "low"},
		{100.0, "medium"},
		{999.99, "medium"},
		{1000.0, "high"},
		{9999.99, "high"},
		{10000.0, "very_high"},
		{65000, "very_high"},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := priceCategory(tt.price); got != tt.want {
			t.Errorf("priceCategory(%.2f) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestCostBasis(t *testing.T) {
	if got := costBasis(2, 2500.00); !almostEqual(got, 5000.00) {
		t.Errorf("cost basis = %f, want 5000", got)
	}
	// decimal arithmetic keeps cents exact
	if got := costBasis(3, 0.1); !almostEqual(got, 0.3) {
		t.Errorf("cost basis = %.17f, want exactly 0.3", got)
	}
	if got := costBasis(model.Missing(), 10); !model.IsMissing(got) {
		t.Errorf("missing quantity must yield missing cost basis, got %f", got)
	}
}

func TestHoldingDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 6, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		purchase time.Time
		want     float64
	}{
		{"today", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), 0},
		{"yesterday", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), 1},
		{"truncates, not rounds", time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC), 2},
		{"a year ago", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), 366},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := holdingDays(tt.purchase, now); !almostEqual(got, tt.want) {
				t.Errorf("holdingDays = %f, want %f", got, tt.want)
			}
		})
	}

	if got := holdingDays(time.Time{}, now); !model.IsMissing(got) {
		t.Errorf("unknown purchase date must yield missing, got %f", got)
	}
}

func TestTransformPortfolio_Metrics(t *testing.T) {
	tr := NewTransformerAt(fixedClock())
	records := []model.RawRecord{
		{
			"user_id": "1", "symbol": "NVDA", "quantity": "2",
			"purchase_price": "2500.00", "purchase_date": "2024-06-15",
			"asset_type": "stock", "created_at": "2024-06-15T00:00:00Z",
		},
	}
	holdings, err := tr.TransformPortfolio(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := holdings[0]
	if !almostEqual(h.CostBasis, 5000.00) {
		t.Errorf("cost basis = %f, want 5000", h.CostBasis)
	}
	if h.HoldingDays != 0 {
		t.Errorf("holding purchased today must yield 0 days, got %f", h.HoldingDays)
	}
	if h.UserID != 1 || h.AssetType != model.AssetStock {
		t.Errorf("unexpected holding: %+v", h)
	}
}
