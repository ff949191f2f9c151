package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MarketETL/internal/model"
)

// AlphaVantageFetcher pulls daily bars from the Alpha Vantage
// TIME_SERIES_DAILY endpoint. The API returns every numeric as a JSON
// string, which is exactly the loosely-typed shape the normalizer expects.
type AlphaVantageFetcher struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
}

// NewAlphaVantageFetcher creates an Alpha Vantage fetcher with optional proxy support.
func NewAlphaVantageFetcher(apiKey, proxyURL string) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{
		Client:  newHTTPClient(proxyURL),
		APIKey:  apiKey,
		BaseURL: "https://www.alphavantage.co/query",
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// dailySeriesResponse mirrors the TIME_SERIES_DAILY payload. Note and
// ErrorMessage carry rate-limit and bad-symbol diagnostics respectively.
type dailySeriesResponse struct {
	Note         string                       `json:"Note"`
	ErrorMessage string                       `json:"Error Message"`
	Series       map[string]map[string]string `json:"Time Series (Daily)"`
}

func (f *AlphaVantageFetcher) FetchDailyBars(symbol string) ([]model.RawRecord, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("apikey", f.APIKey)
	q.Set("outputsize", "compact") // last 100 trading days

	resp, err := f.Client.Get(f.BaseURL + "?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload dailySeriesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if payload.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error for %s: %s", symbol, payload.ErrorMessage)
	}
	if payload.Note != "" {
		return nil, fmt.Errorf("alphavantage rate limited for %s: %s", symbol, payload.Note)
	}
	if len(payload.Series) == 0 {
		return nil, fmt.Errorf("alphavantage: no data returned for %s", symbol)
	}

	extractedAt := time.Now().UTC().Format(time.RFC3339)
	records := make([]model.RawRecord, 0, len(payload.Series))
	for date, values := range payload.Series {
		records = append(records, model.RawRecord{
			"date":                 date,
			"symbol":               symbol,
			"open":                 values["1. open"],
			"high":                 values["2. high"],
			"low":                  values["3. low"],
			"close":                values["4. close"],
			"volume":               values["5. volume"],
			"extraction_timestamp": extractedAt,
		})
	}
	return records, nil
}
