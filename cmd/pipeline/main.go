package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketETL/internal/config"
	"MarketETL/internal/extract"
	"MarketETL/internal/loader"
	"MarketETL/internal/pipeline"
	"MarketETL/internal/scheduler"
	"MarketETL/internal/transform"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketETL starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init extractors
	stocks := extract.NewAlphaVantageFetcher(cfg.Stocks.APIKey, cfg.Proxy)
	crypto := extract.NewCoinGeckoFetcher(cfg.Proxy)
	news := extract.NewYahooNewsFetcher(cfg.Proxy)

	var portfolio extract.PortfolioStore
	if cfg.Portfolio.PostgresDSN != "" {
		ps, err := extract.NewPostgresPortfolioStore(cfg.Portfolio.PostgresDSN)
		if err != nil {
			log.Printf("[WARN] portfolio database unavailable, holdings will be skipped: %v", err)
		} else {
			portfolio = ps
			defer ps.Close()
		}
	}

	// Init warehouse loader
	var wh loader.Loader
	if cfg.Warehouse.SQLitePath != "" {
		sl, err := loader.NewSQLiteLoader(cfg.Warehouse.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite warehouse failed, using noop: %v", err)
			wh = loader.NewNoopLoader()
		} else {
			wh = sl
			defer sl.Close()
		}
	} else {
		wh = loader.NewNoopLoader()
	}

	// Init pipeline
	p := &pipeline.Pipeline{
		Stocks:       stocks,
		Crypto:       crypto,
		News:         news,
		Portfolio:    portfolio,
		Transformer:  transform.NewTransformer(),
		Loader:       wh,
		StockSymbols: cfg.Stocks.Symbols,
		CryptoIDs:    cfg.Crypto.Symbols,
		NewsSymbols:  cfg.NewsSymbols(),
		FetchPace:    time.Duration(cfg.Pipeline.FetchPaceSeconds) * time.Second,
		StateFile:    cfg.Pipeline.StateFile,
	}

	if state, err := pipeline.LoadState(cfg.Pipeline.StateFile); err != nil {
		log.Printf("[WARN] load run state: %v", err)
	} else if !state.LastRunAt.IsZero() {
		log.Printf("[INFO] last run %s at %s (%s)", state.LastRunID, state.LastRunAt.Format(time.RFC3339), state.LastStatus)
	}

	// Init scheduler
	sched := scheduler.NewScheduler(p)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily batch now")
		go sched.RunNow()
	}

	log.Println("[INFO] MarketETL is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] MarketETL stopped")
}
