package loader

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketETL/internal/model"
)

// SQLiteLoader persists transformed datasets to a SQLite warehouse file.
type SQLiteLoader struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteLoader opens (or creates) the warehouse and runs migrations.
func NewSQLiteLoader(dbPath string) (*SQLiteLoader, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboard reads while the pipeline writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	l := &SQLiteLoader{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite warehouse opened: %s", dbPath)
	return l, nil
}

func (l *SQLiteLoader) migrate() error {
	newsCols := make([]string, 0, len(model.Keywords))
	for _, kw := range model.Keywords {
		newsCols = append(newsCols, fmt.Sprintf("has_%s INTEGER", kw))
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_prices (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			date                 TEXT NOT NULL,
			symbol               TEXT NOT NULL,
			open                 REAL,
			high                 REAL,
			low                  REAL,
			close                REAL NOT NULL,
			volume               INTEGER,
			daily_return         REAL,
			price_range          REAL,
			price_change         REAL,
			price_change_pct     REAL,
			ma_7                 REAL,
			ma_30                REAL,
			volatility_30d       REAL,
			extraction_timestamp INTEGER,
			transformed_at       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_symbol_date ON stock_prices(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS crypto_prices (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			crypto_id      TEXT NOT NULL,
			price_usd      REAL NOT NULL,
			market_cap     REAL,
			volume_24h     REAL,
			change_24h     REAL,
			price_category TEXT,
			transformed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crypto_ts ON crypto_prices(crypto_id, timestamp)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS market_news (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol         TEXT NOT NULL,
			title          TEXT NOT NULL,
			url            TEXT,
			source         TEXT,
			title_length   INTEGER,
			%s,
			scraped_at     INTEGER,
			transformed_at INTEGER
		)`, strings.Join(newsCols, ",\n\t\t\t")),
		`CREATE INDEX IF NOT EXISTS idx_news_symbol ON market_news(symbol, scraped_at)`,

		`CREATE TABLE IF NOT EXISTS user_portfolio (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id        INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			quantity       REAL NOT NULL,
			purchase_price REAL NOT NULL,
			purchase_date  TEXT,
			asset_type     TEXT,
			cost_basis     REAL,
			holding_days   INTEGER,
			created_at     INTEGER,
			transformed_at INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS pipeline_metrics (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			pipeline_run_id        TEXT NOT NULL,
			table_name             TEXT NOT NULL,
			records_extracted      INTEGER,
			records_transformed    INTEGER,
			records_loaded         INTEGER,
			errors                 INTEGER,
			execution_time_seconds REAL,
			status                 TEXT,
			error_message          TEXT,
			run_timestamp          INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_run ON pipeline_metrics(pipeline_run_id)`,
	}

	for _, s := range stmts {
		if _, err := l.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullFloat maps the missing marker to SQL NULL.
func nullFloat(v float64) any {
	if model.IsMissing(v) {
		return nil
	}
	return v
}

// nullUnix maps a zero time to SQL NULL, otherwise a unix timestamp.
func nullUnix(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}

// nullDate maps a zero time to SQL NULL, otherwise a calendar-day string.
func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}

func (l *SQLiteLoader) LoadStockBars(bars []model.StockBar) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin stock load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO stock_prices
		(date, symbol, open, high, low, close, volume,
		 daily_return, price_range, price_change, price_change_pct,
		 ma_7, ma_30, volatility_30d, extraction_timestamp, transformed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare stock insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(
			nullDate(b.Date), b.Symbol,
			nullFloat(b.Open), nullFloat(b.High), nullFloat(b.Low), b.Close, int64(b.Volume),
			nullFloat(b.DailyReturn), nullFloat(b.PriceRange), nullFloat(b.PriceChange), nullFloat(b.PriceChangePct),
			nullFloat(b.MA7), nullFloat(b.MA30), nullFloat(b.Volatility30d),
			nullUnix(b.ExtractionTimestamp), nullUnix(b.TransformedAt),
		); err != nil {
			return 0, fmt.Errorf("insert stock bar %s/%s: %w", b.Symbol, b.Date.Format("2006-01-02"), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit stock load: %w", err)
	}
	return len(bars), nil
}

func (l *SQLiteLoader) LoadCryptoTicks(ticks []model.CryptoTick) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin crypto load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO crypto_prices
		(timestamp, crypto_id, price_usd, market_cap, volume_24h, change_24h, price_category, transformed_at)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare crypto insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range ticks {
		if _, err := stmt.Exec(
			nullUnix(t.Timestamp), t.CryptoID, t.PriceUSD,
			nullFloat(t.MarketCap), nullFloat(t.Volume24h), nullFloat(t.Change24h),
			t.PriceCategory, nullUnix(t.TransformedAt),
		); err != nil {
			return 0, fmt.Errorf("insert crypto tick %s: %w", t.CryptoID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit crypto load: %w", err)
	}
	return len(ticks), nil
}

func (l *SQLiteLoader) LoadNews(articles []model.NewsArticle) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cols := []string{"symbol", "title", "url", "source", "title_length"}
	for _, kw := range model.Keywords {
		cols = append(cols, "has_"+kw)
	}
	cols = append(cols, "scraped_at", "transformed_at")
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")

	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin news load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO market_news (%s) VALUES (%s)`,
		strings.Join(cols, ", "), placeholders))
	if err != nil {
		return 0, fmt.Errorf("prepare news insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		args := []any{a.Symbol, a.Title, a.URL, a.Source, a.TitleLength}
		for _, kw := range model.Keywords {
			args = append(args, a.KeywordFlags[kw])
		}
		args = append(args, nullUnix(a.ScrapedAt), nullUnix(a.TransformedAt))
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("insert news %q: %w", a.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit news load: %w", err)
	}
	return len(articles), nil
}

// ReplacePortfolio swaps the full snapshot in one transaction: the
// portfolio table reflects a point in time, not a history.
func (l *SQLiteLoader) ReplacePortfolio(holdings []model.PortfolioHolding) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin portfolio replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM user_portfolio`); err != nil {
		return 0, fmt.Errorf("truncate portfolio: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO user_portfolio
		(user_id, symbol, quantity, purchase_price, purchase_date, asset_type,
		 cost_basis, holding_days, created_at, transformed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare portfolio insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range holdings {
		var days any
		if !model.IsMissing(h.HoldingDays) {
			days = int64(h.HoldingDays)
		}
		if _, err := stmt.Exec(
			h.UserID, h.Symbol, nullFloat(h.Quantity), nullFloat(h.PurchasePrice),
			nullDate(h.PurchaseDate), h.AssetType,
			nullFloat(h.CostBasis), days,
			nullUnix(h.CreatedAt), nullUnix(h.TransformedAt),
		); err != nil {
			return 0, fmt.Errorf("insert holding %d/%s: %w", h.UserID, h.Symbol, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit portfolio replace: %w", err)
	}
	return len(holdings), nil
}

func (l *SQLiteLoader) LogRunMetrics(m *RunMetrics) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.Exec(`INSERT INTO pipeline_metrics
		(pipeline_run_id, table_name, records_extracted, records_transformed,
		 records_loaded, errors, execution_time_seconds, status, error_message, run_timestamp)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		m.RunID, m.Table, m.RecordsExtracted, m.RecordsTransformed,
		m.RecordsLoaded, m.Errors, m.ExecutionSeconds, m.Status, m.ErrorMessage,
		m.RunTimestamp.Unix(),
	)
	return err
}

func (l *SQLiteLoader) Close() error {
	log.Println("[INFO] closing sqlite warehouse")
	return l.db.Close()
}
