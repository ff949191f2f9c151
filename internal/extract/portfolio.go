package extract

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"MarketETL/internal/model"
)

// PostgresPortfolioStore reads the user portfolio from PostgreSQL.
// Values are cast to text in the query so the rows come back in the
// same loosely-typed shape as every other source.
type PostgresPortfolioStore struct {
	db *sql.DB
}

// NewPostgresPortfolioStore opens and pings the portfolio database.
func NewPostgresPortfolioStore(dsn string) (*PostgresPortfolioStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open portfolio db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping portfolio db: %w", err)
	}
	return &PostgresPortfolioStore{db: db}, nil
}

func (s *PostgresPortfolioStore) Name() string { return "postgres" }

func (s *PostgresPortfolioStore) FetchHoldings() ([]model.RawRecord, error) {
	rows, err := s.db.Query(`
		SELECT user_id::text,
		       symbol,
		       quantity::text,
		       purchase_price::text,
		       purchase_date::text,
		       asset_type,
		       created_at::text
		FROM user_portfolio
		ORDER BY user_id, symbol`)
	if err != nil {
		return nil, fmt.Errorf("query portfolio: %w", err)
	}
	defer rows.Close()

	var records []model.RawRecord
	for rows.Next() {
		var userID, symbol, quantity, price, date, assetType, createdAt sql.NullString
		if err := rows.Scan(&userID, &symbol, &quantity, &price, &date, &assetType, &createdAt); err != nil {
			return nil, fmt.Errorf("scan portfolio row: %w", err)
		}
		records = append(records, model.RawRecord{
			"user_id":        userID.String,
			"symbol":         symbol.String,
			"quantity":       quantity.String,
			"purchase_price": price.String,
			"purchase_date":  date.String,
			"asset_type":     assetType.String,
			"created_at":     createdAt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate portfolio rows: %w", err)
	}
	return records, nil
}

func (s *PostgresPortfolioStore) Close() error { return s.db.Close() }
