// Package analyzer holds the comparison and decision logic: price vs SMA
// classification for a single ticker, and the prioritized multi-ticker
// decision table.
package analyzer

import (
	"errors"
	"fmt"
	"math"

	"StockSentry/internal/model"
)

var (
	// ErrZeroSMA means a percentage difference was requested against a zero SMA.
	ErrZeroSMA = errors.New("SMA value is zero, percentage difference undefined")

	// ErrDateMismatch means the price date and the SMA date disagree,
	// signaling inconsistent upstream data rather than a stale comparison.
	ErrDateMismatch = errors.New("price date and SMA date do not match")

	// ErrInvalidInput means a price or SMA value failed basic validation.
	ErrInvalidInput = errors.New("invalid comparison input")
)

// ComparePriceToSMA classifies the latest close against the SMA. Equality is
// exact floating-point equality: real market data almost never hits EQUAL,
// and no tolerance is applied on purpose.
func ComparePriceToSMA(price, sma float64) model.Comparison {
	switch {
	case price > sma:
		return model.ComparisonAbove
	case price < sma:
		return model.ComparisonBelow
	default:
		return model.ComparisonEqual
	}
}

// PercentageDifference returns (price - sma) / sma * 100. A zero SMA is an
// error, never a silent zero or NaN.
func PercentageDifference(price, sma float64) (float64, error) {
	if sma == 0 {
		return 0, ErrZeroSMA
	}
	return (price - sma) / sma * 100, nil
}

// TrendFor maps a comparison to its trend signal.
func TrendFor(c model.Comparison) model.TrendSignal {
	switch c {
	case model.ComparisonAbove:
		return model.TrendBullish
	case model.ComparisonBelow:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}

// Message returns the fixed one-sentence summary for a comparison state.
func Message(c model.Comparison, period int) string {
	switch c {
	case model.ComparisonAbove:
		return fmt.Sprintf("The stock price is above the %d-day moving average.", period)
	case model.ComparisonBelow:
		return fmt.Sprintf("The stock price is below the %d-day moving average.", period)
	default:
		return fmt.Sprintf("The stock price equals the %d-day moving average.", period)
	}
}

// BuildComparison assembles the full per-ticker result. The date attached to
// the close and the date attached to the SMA must agree exactly; a mismatch
// fails with ErrDateMismatch and blocks any downstream notification.
func BuildComparison(symbol string, point model.PricePoint, sma model.SMAResult, period int) (*model.ComparisonResult, error) {
	if !point.SameDay(sma.Date) {
		return nil, fmt.Errorf("%s: price date %s vs SMA date %s: %w",
			symbol, point.Date.Format("2006-01-02"), sma.Date.Format("2006-01-02"), ErrDateMismatch)
	}
	if point.Close <= 0 || math.IsNaN(point.Close) || math.IsInf(point.Close, 0) {
		return nil, fmt.Errorf("%s: closing price %v: %w", symbol, point.Close, ErrInvalidInput)
	}
	if sma.Value <= 0 || math.IsNaN(sma.Value) || math.IsInf(sma.Value, 0) {
		return nil, fmt.Errorf("%s: SMA value %v: %w", symbol, sma.Value, ErrInvalidInput)
	}

	comparison := ComparePriceToSMA(point.Close, sma.Value)
	pct, err := PercentageDifference(point.Close, sma.Value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}
	pct = round2(pct)

	direction := "above"
	if pct < 0 {
		direction = "below"
	}
	detailed := fmt.Sprintf("%s closed at $%.2f on %s, which is %.2f%% %s its %d-day SMA of $%.2f.",
		symbol, point.Close, point.Date.Format("2006-01-02"), math.Abs(pct), direction, period, sma.Value)

	return &model.ComparisonResult{
		Symbol:               symbol,
		Date:                 point.Date,
		ClosingPrice:         point.Close,
		SMAValue:             sma.Value,
		SMAPeriod:            period,
		Comparison:           comparison,
		PercentageDifference: pct,
		TrendSignal:          TrendFor(comparison),
		Message:              Message(comparison, period),
		DetailedMessage:      detailed,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
