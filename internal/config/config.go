package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Stocks struct {
		Symbols []string `yaml:"symbols"`
		APIKey  string   `yaml:"api_key"`
	} `yaml:"stocks"`
	Crypto struct {
		Symbols []string `yaml:"symbols"`
	} `yaml:"crypto"`
	News struct {
		SymbolLimit int `yaml:"symbol_limit"`
	} `yaml:"news"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Warehouse struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"warehouse"`
	Portfolio struct {
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"portfolio"`
	Pipeline struct {
		StateFile        string `yaml:"state_file"`
		FetchPaceSeconds int    `yaml:"fetch_pace_seconds"`
	} `yaml:"pipeline"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.Stocks.APIKey = v
	}
	if v := os.Getenv("PORTFOLIO_DSN"); v != "" {
		cfg.Portfolio.PostgresDSN = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Warehouse.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FETCH_PACE_SECONDS"); v != "" {
		if pace, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.FetchPaceSeconds = pace
		}
	}

	// Defaults
	if len(cfg.Stocks.Symbols) == 0 {
		cfg.Stocks.Symbols = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA"}
	}
	if len(cfg.Crypto.Symbols) == 0 {
		cfg.Crypto.Symbols = []string{"bitcoin", "ethereum", "cardano"}
	}
	if cfg.News.SymbolLimit == 0 {
		cfg.News.SymbolLimit = 3
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 6 * * *"
	}
	if cfg.Warehouse.SQLitePath == "" {
		cfg.Warehouse.SQLitePath = "data/financial_warehouse.db"
	}
	if cfg.Pipeline.StateFile == "" {
		cfg.Pipeline.StateFile = "data/pipeline_state.json"
	}
	if cfg.Pipeline.FetchPaceSeconds == 0 {
		cfg.Pipeline.FetchPaceSeconds = 12 // free-tier limit: 5 calls/min
	}

	return cfg, nil
}

// NewsSymbols returns the leading stock symbols to scrape news for.
func (c *Config) NewsSymbols() []string {
	if len(c.Stocks.Symbols) <= c.News.SymbolLimit {
		return c.Stocks.Symbols
	}
	return c.Stocks.Symbols[:c.News.SymbolLimit]
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Stocks.APIKey == "" {
		return fmt.Errorf("stocks.api_key is required")
	}
	if len(c.Stocks.Symbols) == 0 {
		return fmt.Errorf("stocks.symbols must list at least one symbol")
	}
	if c.News.SymbolLimit < 0 {
		return fmt.Errorf("news.symbol_limit must not be negative")
	}
	return nil
}
