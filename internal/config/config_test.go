package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if len(cfg.Stocks.Symbols) != 5 || cfg.Stocks.Symbols[0] != "AAPL" {
		t.Errorf("default symbols: %v", cfg.Stocks.Symbols)
	}
	if cfg.Schedule.DailyCron != "0 0 6 * * *" {
		t.Errorf("default cron: %q", cfg.Schedule.DailyCron)
	}
	if cfg.Pipeline.FetchPaceSeconds != 12 {
		t.Errorf("default fetch pace: %d", cfg.Pipeline.FetchPaceSeconds)
	}
	if cfg.Warehouse.SQLitePath == "" || cfg.Pipeline.StateFile == "" {
		t.Error("warehouse and state paths must default")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
stocks:
  symbols: [NVDA, AMD]
  api_key: from-file
news:
  symbol_limit: 1
`)
	t.Setenv("ALPHA_VANTAGE_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stocks.APIKey != "from-env" {
		t.Errorf("env must override file, got %q", cfg.Stocks.APIKey)
	}
	if len(cfg.Stocks.Symbols) != 2 || cfg.Stocks.Symbols[0] != "NVDA" {
		t.Errorf("symbols: %v", cfg.Stocks.Symbols)
	}
	got := cfg.NewsSymbols()
	if len(got) != 1 || got[0] != "NVDA" {
		t.Errorf("news symbols: %v", got)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without api key")
	}
	cfg.Stocks.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation failure: %v", err)
	}
}
