package provider

import "StockSentry/internal/model"

// Fetcher defines the interface for fetching daily closing price history.
type Fetcher interface {
	// FetchDailyCloses returns up to `days` daily close points for the
	// symbol, sorted chronologically, ending at the most recent trading day.
	FetchDailyCloses(symbol string, days int) ([]model.PricePoint, error)
	Name() string
}
