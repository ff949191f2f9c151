package extract

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleDailySeries = `{
	"Meta Data": {"2. Symbol": "AAPL"},
	"Time Series (Daily)": {
		"2024-06-14": {
			"1. open": "213.8500", "2. high": "215.1700",
			"3. low": "211.3000", "4. close": "212.4900", "5. volume": "70122748"
		},
		"2024-06-13": {
			"1. open": "214.7400", "2. high": "216.7500",
			"3. low": "211.6000", "4. close": "214.2400", "5. volume": "97862729"
		}
	}
}`

func TestAlphaVantage_ParsesDailySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "TIME_SERIES_DAILY" {
			t.Errorf("function = %q", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q", got)
		}
		w.Write([]byte(sampleDailySeries))
	}))
	defer srv.Close()

	f := NewAlphaVantageFetcher("test-key", "")
	f.BaseURL = srv.URL

	records, err := f.FetchDailyBars("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	found := false
	for _, r := range records {
		if r["date"] == "2024-06-14" {
			found = true
			if r["close"] != "212.4900" || r["volume"] != "70122748" {
				t.Errorf("unexpected record: %v", r)
			}
			if r["symbol"] != "AAPL" {
				t.Errorf("symbol = %q", r["symbol"])
			}
			if r["extraction_timestamp"] == "" {
				t.Error("missing extraction_timestamp")
			}
		}
	}
	if !found {
		t.Error("record for 2024-06-14 not found")
	}
}

func TestAlphaVantage_SurfacesAPIErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad symbol", `{"Error Message": "Invalid API call."}`, "api error"},
		{"rate limited", `{"Note": "5 calls per minute"}`, "rate limited"},
		{"empty series", `{"Time Series (Daily)": {}}`, "no data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewAlphaVantageFetcher("test-key", "")
			f.BaseURL = srv.URL

			_, err := f.FetchDailyBars("AAPL")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCoinGecko_ParsesSpotPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"bitcoin": {"usd": 65000.5, "usd_market_cap": 1.28e12, "usd_24h_vol": 2.1e10, "usd_24h_change": -1.3},
			"ethereum": {"usd": 3500}
		}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher("")
	f.BaseURL = srv.URL

	records, err := f.FetchSpotPrices([]string{"bitcoin", "ethereum"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		switch r["crypto_id"] {
		case "bitcoin":
			if r["price_usd"] != "65000.5" {
				t.Errorf("bitcoin price = %q", r["price_usd"])
			}
			if r["change_24h"] != "-1.3" {
				t.Errorf("bitcoin change = %q", r["change_24h"])
			}
		case "ethereum":
			// fields the API omitted must stay absent
			if _, ok := r["market_cap"]; ok {
				t.Error("ethereum market_cap should be absent")
			}
		default:
			t.Errorf("unexpected coin %q", r["crypto_id"])
		}
	}
}
