package transform

import (
	"math"
	"sort"

	"MarketETL/internal/model"
)

// Rolling-window indicators over per-symbol, date-ordered series.
// Windows use min-periods=1 semantics: at the head of a series the
// statistic is computed over however many observations exist, instead
// of producing a warm-up run of missing values.

const (
	shortWindow      = 7
	longWindow       = 30
	volatilityWindow = 30
)

// enrichIndicators partitions bars by symbol (first-appearance order),
// sorts each partition by date, computes the indicators, and flattens
// back. Symbols never interact.
func enrichIndicators(bars []model.StockBar) []model.StockBar {
	order := make([]string, 0)
	groups := make(map[string][]model.StockBar)
	for _, b := range bars {
		if _, ok := groups[b.Symbol]; !ok {
			order = append(order, b.Symbol)
		}
		groups[b.Symbol] = append(groups[b.Symbol], b)
	}

	out := make([]model.StockBar, 0, len(bars))
	for _, sym := range order {
		series := groups[sym]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Date.Before(series[j].Date)
		})
		computeDailyReturns(series)
		computeRollingMeans(series)
		computeRollingVolatility(series)
		out = append(out, series...)
	}
	return out
}

// computeDailyReturns sets the fractional close-to-close change. The
// first row of a series has no predecessor and stays missing.
func computeDailyReturns(series []model.StockBar) {
	for i := range series {
		if i == 0 {
			series[i].DailyReturn = model.Missing()
			continue
		}
		prev := series[i-1].Close
		if prev == 0 {
			series[i].DailyReturn = model.Missing()
			continue
		}
		series[i].DailyReturn = (series[i].Close - prev) / prev
	}
}

func computeRollingMeans(series []model.StockBar) {
	for i := range series {
		series[i].MA7 = trailingMean(series, i, shortWindow)
		series[i].MA30 = trailingMean(series, i, longWindow)
	}
}

func trailingMean(series []model.StockBar, i, window int) float64 {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for j := start; j <= i; j++ {
		sum += series[j].Close
	}
	return sum / float64(i-start+1)
}

// computeRollingVolatility sets the trailing sample standard deviation of
// daily returns. Missing returns are excluded from the window; fewer than
// two valid observations leave the statistic missing, since the standard
// deviation of a single value is undefined.
func computeRollingVolatility(series []model.StockBar) {
	for i := range series {
		start := i - volatilityWindow + 1
		if start < 0 {
			start = 0
		}
		vals := make([]float64, 0, i-start+1)
		for j := start; j <= i; j++ {
			if !model.IsMissing(series[j].DailyReturn) {
				vals = append(vals, series[j].DailyReturn)
			}
		}
		series[i].Volatility30d = sampleStdDev(vals)
	}
}

// sampleStdDev computes the n-1 denominator standard deviation.
func sampleStdDev(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return model.Missing()
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(n)

	sumSq := 0.0
	for _, v := range vals {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}
