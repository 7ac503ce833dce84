package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentry/internal/config"
	"StockSentry/internal/model"
	"StockSentry/internal/provider"
)

type spyNotifier struct {
	subjects []string
	bodies   []string
	err      error
}

func (s *spyNotifier) Send(subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.subjects = append(s.subjects, subject)
	s.bodies = append(s.bodies, body)
	return nil
}

type countingRecorder struct {
	comparisons     int
	recommendations int
}

func (c *countingRecorder) RecordComparison(_ *model.ComparisonResult) error {
	c.comparisons++
	return nil
}

func (c *countingRecorder) RecordRecommendation(_ *model.Recommendation) error {
	c.recommendations++
	return nil
}

func (c *countingRecorder) Close() error { return nil }

func flatSeries(closes []float64, end time.Time) []model.PricePoint {
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Date: end.AddDate(0, 0, -(len(closes) - 1 - i)), Close: c}
	}
	return points
}

func testConfig(symbols ...string) *config.Config {
	cfg := &config.Config{}
	cfg.Analysis.Symbols = symbols
	cfg.Analysis.SMAPeriod = 4
	cfg.Analysis.MaxDataAgeDays = 5000 // fixture dates are fixed; never warn
	cfg.Thresholds.QQQDanger = 40
	cfg.Thresholds.QQQWarning = 30
	cfg.Thresholds.SPYBuy = 4
	cfg.Thresholds.SPYSell = -3
	return cfg
}

func TestRun_MultiTickerStrategy(t *testing.T) {
	end := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	fetcher := &provider.MockFetcher{
		Series: map[string][]model.PricePoint{
			// SPY: SMA 102, close 108 -> +5.88% (>= +4 buy threshold)
			"SPY": flatSeries([]float64{100, 100, 100, 108}, end),
			// QQQ: SMA 101, close 104 -> +2.97% (inside both QQQ bands)
			"QQQ": flatSeries([]float64{100, 100, 100, 104}, end),
		},
	}
	notif := &spyNotifier{}
	rec := &countingRecorder{}

	r := New(fetcher, notif, rec, testConfig("SPY", "QQQ"), false, zerolog.Nop())
	require.NoError(t, r.Run())

	require.Len(t, notif.subjects, 1)
	assert.Equal(t, "Strategy: BUY/HOLD — 2025-10-22", notif.subjects[0])
	assert.Contains(t, notif.bodies[0], "Triggering rule: spy_buy")
	assert.Contains(t, notif.bodies[0], "SPY")
	assert.Contains(t, notif.bodies[0], "QQQ")

	assert.Equal(t, 2, rec.comparisons)
	assert.Equal(t, 1, rec.recommendations)
}

func TestRun_QQQDangerDominates(t *testing.T) {
	end := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	fetcher := &provider.MockFetcher{
		Series: map[string][]model.PricePoint{
			// SPY: SMA 100.75, close 94 -> -6.70% (sell territory)
			"SPY": flatSeries([]float64{103, 103, 103, 94}, end),
			// QQQ: SMA 107.5, close 152.5 -> +41.86% (past the danger band)
			"QQQ": flatSeries([]float64{92.5, 92.5, 92.5, 152.5}, end),
		},
	}
	notif := &spyNotifier{}

	r := New(fetcher, notif, &countingRecorder{}, testConfig("SPY", "QQQ"), false, zerolog.Nop())
	require.NoError(t, r.Run())

	require.Len(t, notif.subjects, 1)
	assert.Equal(t, "Strategy: EXIT TO CASH — 2025-10-22", notif.subjects[0])
}

func TestRun_SingleTicker(t *testing.T) {
	end := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	fetcher := &provider.MockFetcher{
		Series: map[string][]model.PricePoint{
			"TQQQ": flatSeries([]float64{70, 72, 74, 80}, end),
		},
	}
	notif := &spyNotifier{}
	rec := &countingRecorder{}

	r := New(fetcher, notif, rec, testConfig("TQQQ"), false, zerolog.Nop())
	require.NoError(t, r.Run())

	require.Len(t, notif.subjects, 1)
	assert.Contains(t, notif.subjects[0], "TQQQ Analysis: ABOVE")
	assert.Equal(t, 1, rec.comparisons)
	assert.Equal(t, 0, rec.recommendations, "no recommendation without a SPY/QQQ pair")
}

func TestRun_DryRunSkipsDelivery(t *testing.T) {
	end := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	fetcher := &provider.MockFetcher{
		Series: map[string][]model.PricePoint{
			"TQQQ": flatSeries([]float64{70, 72, 74, 80}, end),
		},
	}
	notif := &spyNotifier{}
	rec := &countingRecorder{}

	r := New(fetcher, notif, rec, testConfig("TQQQ"), true, zerolog.Nop())
	require.NoError(t, r.Run())

	assert.Empty(t, notif.subjects, "dry run must not send email")
	assert.Equal(t, 1, rec.comparisons, "dry run still records the analysis")
}

func TestRun_FetchFailure(t *testing.T) {
	fetchErr := errors.New("connection refused")
	fetcher := &provider.MockFetcher{Err: fetchErr}
	notif := &spyNotifier{}

	r := New(fetcher, notif, &countingRecorder{}, testConfig("SPY", "QQQ"), false, zerolog.Nop())
	err := r.Run()
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageFetch, stageErr.Stage)
	assert.ErrorIs(t, err, fetchErr)

	// The failure itself is reported by email.
	require.Len(t, notif.subjects, 1)
	assert.Contains(t, notif.subjects[0], "Analysis Error")
	assert.Contains(t, notif.bodies[0], "connection refused")
}

func TestRun_InsufficientData(t *testing.T) {
	end := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	fetcher := &provider.MockFetcher{
		Series: map[string][]model.PricePoint{
			"TQQQ": flatSeries([]float64{70, 72}, end), // period is 4
		},
	}
	notif := &spyNotifier{}

	r := New(fetcher, notif, &countingRecorder{}, testConfig("TQQQ"), false, zerolog.Nop())
	err := r.Run()
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageAnalyze, stageErr.Stage)
}

func TestRun_DeliveryFailure(t *testing.T) {
	end := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	fetcher := &provider.MockFetcher{
		Series: map[string][]model.PricePoint{
			"TQQQ": flatSeries([]float64{70, 72, 74, 80}, end),
		},
	}
	notif := &spyNotifier{err: errors.New("smtp: 550")}
	rec := &countingRecorder{}

	r := New(fetcher, notif, rec, testConfig("TQQQ"), false, zerolog.Nop())
	err := r.Run()
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageNotify, stageErr.Stage)
	assert.Equal(t, 1, rec.comparisons, "analysis is still recorded when delivery fails")
}
