package extract

import "MarketETL/internal/model"

// Controllable in-memory fetchers for development and pipeline tests.

type MockStockFetcher struct {
	Records map[string][]model.RawRecord // keyed by symbol
	Err     error
}

func (m *MockStockFetcher) Name() string { return "mock" }

func (m *MockStockFetcher) FetchDailyBars(symbol string) ([]model.RawRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records[symbol], nil
}

type MockCryptoFetcher struct {
	Records []model.RawRecord
	Err     error
}

func (m *MockCryptoFetcher) Name() string { return "mock" }

func (m *MockCryptoFetcher) FetchSpotPrices(_ []string) ([]model.RawRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

type MockNewsFetcher struct {
	Records map[string][]model.RawRecord
	Err     error
}

func (m *MockNewsFetcher) Name() string { return "mock" }

func (m *MockNewsFetcher) FetchNews(symbol string) ([]model.RawRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records[symbol], nil
}

type MockPortfolioStore struct {
	Records []model.RawRecord
	Err     error
}

func (m *MockPortfolioStore) Name() string { return "mock" }

func (m *MockPortfolioStore) FetchHoldings() ([]model.RawRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockPortfolioStore) Close() error { return nil }
