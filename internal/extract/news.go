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

// Headlines shorter than this are navigation fragments, not articles.
const minTitleLength = 20

// Per-symbol article cap.
const maxArticles = 10

// YahooNewsFetcher pulls recent headlines for a symbol from the Yahoo
// Finance search API (JSON, same endpoint family as the chart API).
type YahooNewsFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewYahooNewsFetcher creates a Yahoo news fetcher with optional proxy support.
func NewYahooNewsFetcher(proxyURL string) *YahooNewsFetcher {
	return &YahooNewsFetcher{
		Client:  newHTTPClient(proxyURL),
		BaseURL: "https://query1.finance.yahoo.com/v1/finance/search",
	}
}

func (f *YahooNewsFetcher) Name() string { return "yahoo-news" }

type yahooSearchResponse struct {
	News []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Publisher string `json:"publisher"`
	} `json:"news"`
}

func (f *YahooNewsFetcher) FetchNews(symbol string) ([]model.RawRecord, error) {
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("newsCount", fmt.Sprint(maxArticles))
	q.Set("quotesCount", "0")

	req, err := http.NewRequest(http.MethodGet, f.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo news fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo news read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo news: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload yahooSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("yahoo news decode: %w", err)
	}

	scrapedAt := time.Now().UTC().Format(time.RFC3339)
	records := make([]model.RawRecord, 0, len(payload.News))
	for _, item := range payload.News {
		if len(item.Title) < minTitleLength {
			continue
		}
		records = append(records, model.RawRecord{
			"symbol":     symbol,
			"title":      item.Title,
			"url":        item.Link,
			"source":     item.Publisher,
			"scraped_at": scrapedAt,
		})
		if len(records) >= maxArticles {
			break
		}
	}
	return records, nil
}
