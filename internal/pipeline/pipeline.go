// Package pipeline runs one batch: extract the four domains, transform
// each, load the results, and record run metrics. The domains share no
// state and run concurrently; a failing domain never aborts the others.
package pipeline

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"MarketETL/internal/extract"
	"MarketETL/internal/loader"
	"MarketETL/internal/model"
	"MarketETL/internal/report"
	"MarketETL/internal/transform"
)

// Domain run statuses written to pipeline_metrics.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusWarning = "WARNING"
)

// Pipeline wires extractors, the transform core, and the warehouse loader.
type Pipeline struct {
	Stocks    extract.StockFetcher
	Crypto    extract.CryptoFetcher
	News      extract.NewsFetcher
	Portfolio extract.PortfolioStore // nil when no portfolio source is configured

	Transformer *transform.Transformer
	Loader      loader.Loader

	StockSymbols []string
	CryptoIDs    []string
	NewsSymbols  []string

	// Pause between per-symbol stock API calls (free-tier rate limit).
	FetchPace time.Duration

	StateFile string
}

type domainResult struct {
	report.DomainSummary
	seconds float64
}

// Run executes one full batch and returns an error only when every
// domain failed (nothing at all was loaded).
func (p *Pipeline) Run() error {
	runID := uuid.NewString()
	started := time.Now()
	log.Printf("[INFO] pipeline run %s starting", runID)

	domains := []struct {
		name string
		exec func() domainResult
	}{
		{"stocks", p.runStocks},
		{"crypto", p.runCrypto},
		{"news", p.runNews},
		{"portfolio", p.runPortfolio},
	}

	results := make([]domainResult, len(domains))
	var wg sync.WaitGroup
	for i, d := range domains {
		i, d := i, d
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			res := d.exec()
			res.Name = d.name
			res.seconds = time.Since(start).Seconds()
			results[i] = res
		}()
	}
	wg.Wait()

	failures := 0
	for _, res := range results {
		if res.Status == StatusFailed {
			failures++
		}
		m := &loader.RunMetrics{
			RunID:              runID,
			Table:              res.Name,
			RecordsExtracted:   res.Extracted,
			RecordsTransformed: res.Transformed,
			RecordsLoaded:      res.Loaded,
			ExecutionSeconds:   res.seconds,
			Status:             res.Status,
			ErrorMessage:       res.ErrMsg,
			RunTimestamp:       time.Now(),
		}
		if res.Status != StatusSuccess {
			m.Errors = 1
		}
		if err := p.Loader.LogRunMetrics(m); err != nil {
			log.Printf("[ERROR] record run metrics for %s: %v", res.Name, err)
		}
	}

	summary := &report.RunSummary{
		RunID:     runID,
		StartedAt: started,
		Duration:  time.Since(started),
	}
	rowCounts := make(map[string]int, len(results))
	for _, res := range results {
		summary.Domains = append(summary.Domains, res.DomainSummary)
		rowCounts[res.Name] = res.Loaded
	}
	log.Printf("[INFO] run summary:\n%s", report.FormatRunSummary(summary))

	status := StatusSuccess
	if failures > 0 {
		status = StatusWarning
	}
	if failures == len(results) {
		status = StatusFailed
	}
	if p.StateFile != "" {
		if err := SaveState(p.StateFile, &RunState{
			LastRunID:  runID,
			LastRunAt:  started,
			LastStatus: status,
			RowCounts:  rowCounts,
		}); err != nil {
			log.Printf("[ERROR] save run state: %v", err)
		}
	}

	if failures == len(results) {
		return fmt.Errorf("pipeline run %s: all domains failed", runID)
	}
	return nil
}

func (p *Pipeline) runStocks() domainResult {
	var records []model.RawRecord
	for i, symbol := range p.StockSymbols {
		if i > 0 && p.FetchPace > 0 {
			time.Sleep(p.FetchPace)
		}
		rows, err := p.Stocks.FetchDailyBars(symbol)
		if err != nil {
			log.Printf("[WARN] fetch stock %s: %v", symbol, err)
			continue
		}
		log.Printf("[INFO] extracted %d stock records for %s", len(rows), symbol)
		records = append(records, rows...)
	}
	if len(records) == 0 {
		return failed(len(records), "no stock data extracted")
	}

	bars, err := p.Transformer.TransformStocks(records)
	if err != nil {
		return failed(len(records), fmt.Sprintf("transform stocks: %v", err))
	}
	loaded, err := p.Loader.LoadStockBars(bars)
	if err != nil {
		return failed(len(records), fmt.Sprintf("load stocks: %v", err))
	}
	return succeeded(len(records), len(bars), loaded)
}

func (p *Pipeline) runCrypto() domainResult {
	records, err := p.Crypto.FetchSpotPrices(p.CryptoIDs)
	if err != nil {
		return failed(0, fmt.Sprintf("fetch crypto: %v", err))
	}
	if len(records) == 0 {
		return failed(0, "no crypto data extracted")
	}
	log.Printf("[INFO] extracted %d crypto records", len(records))

	ticks, err := p.Transformer.TransformCrypto(records)
	if err != nil {
		return failed(len(records), fmt.Sprintf("transform crypto: %v", err))
	}
	loaded, err := p.Loader.LoadCryptoTicks(ticks)
	if err != nil {
		return failed(len(records), fmt.Sprintf("load crypto: %v", err))
	}
	return succeeded(len(records), len(ticks), loaded)
}

// runNews tolerates an empty scrape: headlines come and go, and a quiet
// day must not fail the run.
func (p *Pipeline) runNews() domainResult {
	var records []model.RawRecord
	for _, symbol := range p.NewsSymbols {
		rows, err := p.News.FetchNews(symbol)
		if err != nil {
			log.Printf("[WARN] fetch news %s: %v", symbol, err)
			continue
		}
		log.Printf("[INFO] extracted %d news articles for %s", len(rows), symbol)
		records = append(records, rows...)
	}
	if len(records) == 0 {
		log.Println("[WARN] no news articles extracted")
		return domainResult{DomainSummary: report.DomainSummary{Status: StatusWarning, ErrMsg: "no news extracted"}}
	}

	articles, err := p.Transformer.TransformNews(records)
	if err != nil {
		return failed(len(records), fmt.Sprintf("transform news: %v", err))
	}
	loaded, err := p.Loader.LoadNews(articles)
	if err != nil {
		return failed(len(records), fmt.Sprintf("load news: %v", err))
	}
	return succeeded(len(records), len(articles), loaded)
}

// runPortfolio degrades to a skipped snapshot when the source is absent
// or unreachable; holdings are optional for the daily run.
func (p *Pipeline) runPortfolio() domainResult {
	if p.Portfolio == nil {
		return domainResult{DomainSummary: report.DomainSummary{Status: StatusWarning, ErrMsg: "no portfolio source configured"}}
	}
	records, err := p.Portfolio.FetchHoldings()
	if err != nil {
		log.Printf("[WARN] portfolio extraction failed: %v", err)
		return domainResult{DomainSummary: report.DomainSummary{Status: StatusWarning, ErrMsg: fmt.Sprintf("fetch portfolio: %v", err)}}
	}
	if len(records) == 0 {
		return domainResult{DomainSummary: report.DomainSummary{Status: StatusWarning, ErrMsg: "portfolio is empty"}}
	}
	log.Printf("[INFO] extracted %d portfolio holdings", len(records))

	holdings, err := p.Transformer.TransformPortfolio(records)
	if err != nil {
		return failed(len(records), fmt.Sprintf("transform portfolio: %v", err))
	}
	loaded, err := p.Loader.ReplacePortfolio(holdings)
	if err != nil {
		return failed(len(records), fmt.Sprintf("load portfolio: %v", err))
	}
	return succeeded(len(records), len(holdings), loaded)
}

func failed(extracted int, msg string) domainResult {
	log.Printf("[ERROR] %s", msg)
	return domainResult{DomainSummary: report.DomainSummary{
		Extracted: extracted,
		Status:    StatusFailed,
		ErrMsg:    msg,
	}}
}

func succeeded(extracted, transformed, loaded int) domainResult {
	return domainResult{DomainSummary: report.DomainSummary{
		Extracted:   extracted,
		Transformed: transformed,
		Loaded:      loaded,
		Status:      StatusSuccess,
	}}
}
