package calculator

import (
	"errors"
	"fmt"
	"math"

	"StockSentry/internal/model"
)

var (
	// ErrInsufficientData means fewer points were supplied than the SMA period needs.
	ErrInsufficientData = errors.New("not enough data for SMA calculation")

	// ErrInvalidPrice means a close in the averaging window is non-positive or non-finite.
	ErrInvalidPrice = errors.New("invalid closing price")
)

// CalculateSMA computes the trailing simple moving average over the last
// `period` closes. The result carries the date of the final point so callers
// can verify it lines up with the price it is compared against.
func CalculateSMA(points []model.PricePoint, period int) (model.SMAResult, error) {
	if period <= 0 {
		return model.SMAResult{}, fmt.Errorf("period must be positive, got %d: %w", period, ErrInsufficientData)
	}
	if len(points) < period {
		return model.SMAResult{}, fmt.Errorf("%d points available, %d required: %w", len(points), period, ErrInsufficientData)
	}

	window := points[len(points)-period:]
	sum := 0.0
	for _, p := range window {
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return model.SMAResult{}, fmt.Errorf("close %v on %s: %w",
				p.Close, p.Date.Format("2006-01-02"), ErrInvalidPrice)
		}
		sum += p.Close
	}

	return model.SMAResult{
		Date:  window[period-1].Date,
		Value: sum / float64(period),
	}, nil
}
