package provider

import (
	"time"

	"StockSentry/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.PricePoint // per-symbol fixed series
	Price  float64                       // base price for generated series
	Err    error                         // returned by every call when set
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(symbol string, days int) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return GenerateSeries(m.Price, days, time.Now().UTC()), nil
}

// GenerateSeries builds a gently trending series of `count` daily points
// ending on `end`, centered around basePrice.
func GenerateSeries(basePrice float64, count int, end time.Time) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Date:  end.AddDate(0, 0, -(count - 1 - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}
