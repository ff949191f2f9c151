package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MarketETL/internal/model"
)

// CoinGeckoFetcher pulls current spot prices from the CoinGecko
// /simple/price endpoint. One tick per coin per call.
type CoinGeckoFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewCoinGeckoFetcher creates a CoinGecko fetcher with optional proxy support.
func NewCoinGeckoFetcher(proxyURL string) *CoinGeckoFetcher {
	return &CoinGeckoFetcher{
		Client:  newHTTPClient(proxyURL),
		BaseURL: "https://api.coingecko.com/api/v3",
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

func (f *CoinGeckoFetcher) FetchSpotPrices(ids []string) ([]model.RawRecord, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_market_cap", "true")
	q.Set("include_24hr_vol", "true")
	q.Set("include_24hr_change", "true")

	resp, err := f.Client.Get(f.BaseURL + "/simple/price?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	// coin id -> field -> value; fields can be absent for thin markets
	var payload map[string]map[string]float64
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("coingecko: no data returned")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	records := make([]model.RawRecord, 0, len(payload))
	for id, values := range payload {
		r := model.RawRecord{
			"crypto_id": id,
			"timestamp": now,
		}
		setFloatField(r, "price_usd", values, "usd")
		setFloatField(r, "market_cap", values, "usd_market_cap")
		setFloatField(r, "volume_24h", values, "usd_24h_vol")
		setFloatField(r, "change_24h", values, "usd_24h_change")
		records = append(records, r)
	}
	return records, nil
}

// setFloatField copies a numeric field into the record when the API
// returned it; absent fields stay absent and become missing downstream.
func setFloatField(r model.RawRecord, key string, values map[string]float64, apiKey string) {
	if v, ok := values[apiKey]; ok {
		r[key] = strconv.FormatFloat(v, 'f', -1, 64)
	}
}
