package loader

import "MarketETL/internal/model"

// NoopLoader is a no-op implementation used when no warehouse is configured.
type NoopLoader struct{}

func NewNoopLoader() *NoopLoader { return &NoopLoader{} }

func (n *NoopLoader) LoadStockBars(bars []model.StockBar) (int, error)         { return len(bars), nil }
func (n *NoopLoader) LoadCryptoTicks(ticks []model.CryptoTick) (int, error)    { return len(ticks), nil }
func (n *NoopLoader) LoadNews(articles []model.NewsArticle) (int, error)       { return len(articles), nil }
func (n *NoopLoader) ReplacePortfolio(h []model.PortfolioHolding) (int, error) { return len(h), nil }
func (n *NoopLoader) LogRunMetrics(_ *RunMetrics) error                        { return nil }
func (n *NoopLoader) Close() error                                             { return nil }
