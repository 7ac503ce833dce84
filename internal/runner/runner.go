// Package runner drives one analysis run end to end: fetch, SMA, compare,
// decide, notify, record. The process is invoked by an external scheduler;
// a run either completes or exits with a classified error.
package runner

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"StockSentry/internal/analyzer"
	"StockSentry/internal/calculator"
	"StockSentry/internal/config"
	"StockSentry/internal/model"
	"StockSentry/internal/notifier"
	"StockSentry/internal/provider"
	"StockSentry/internal/recorder"
)

// Stage identifies where in the pipeline a run failed, so the caller can
// map the failure class to an exit code.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageAnalyze Stage = "analyze"
	StageNotify  Stage = "notify"
)

// StageError tags an error with the pipeline stage it came from.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Runner owns one run of the pipeline.
type Runner struct {
	fetcher  provider.Fetcher
	notifier notifier.Notifier
	recorder recorder.Recorder
	cfg      *config.Config
	dryRun   bool
	log      zerolog.Logger
	now      func() time.Time
}

// New creates a Runner.
func New(f provider.Fetcher, n notifier.Notifier, rec recorder.Recorder, cfg *config.Config, dryRun bool, log zerolog.Logger) *Runner {
	return &Runner{
		fetcher:  f,
		notifier: n,
		recorder: rec,
		cfg:      cfg,
		dryRun:   dryRun,
		log:      log.With().Str("component", "runner").Logger(),
		now:      time.Now,
	}
}

// Run executes the full pipeline once. Any failure before notification
// triggers a best-effort error email and returns a stage-tagged error; a
// delivery failure after a computed analysis is still a non-zero outcome.
func (r *Runner) Run() error {
	period := r.cfg.Analysis.SMAPeriod

	// Buffer over the SMA period so weekends and holidays in the raw
	// calendar range still leave `period` trading days.
	fetchDays := period + 60

	results := make(map[string]*model.ComparisonResult, len(r.cfg.Analysis.Symbols))
	for _, symbol := range r.cfg.Analysis.Symbols {
		res, err := r.analyzeSymbol(symbol, fetchDays, period)
		if err != nil {
			return err
		}
		results[symbol] = res
	}

	rec := r.decide(results)

	subject, body := r.render(results, rec)

	r.record(results, rec)

	if r.dryRun {
		r.log.Info().Str("subject", subject).Msg("dry run: skipping email delivery")
		fmt.Println(body)
		return nil
	}

	if err := r.notifier.Send(subject, body); err != nil {
		r.log.Error().Err(err).Msg("email delivery failed")
		return &StageError{Stage: StageNotify, Err: err}
	}
	r.log.Info().Str("subject", subject).Msg("email notification sent")
	return nil
}

func (r *Runner) analyzeSymbol(symbol string, fetchDays, period int) (*model.ComparisonResult, error) {
	points, err := r.fetcher.FetchDailyCloses(symbol, fetchDays)
	if err != nil {
		r.log.Error().Err(err).Str("symbol", symbol).Msg("fetch failed")
		r.notifyError(err)
		return nil, &StageError{Stage: StageFetch, Err: fmt.Errorf("fetch %s: %w", symbol, err)}
	}
	r.log.Debug().Str("symbol", symbol).Int("points", len(points)).Str("source", r.fetcher.Name()).Msg("fetched daily closes")

	sma, err := calculator.CalculateSMA(points, period)
	if err != nil {
		r.notifyError(err)
		return nil, &StageError{Stage: StageAnalyze, Err: fmt.Errorf("SMA %s: %w", symbol, err)}
	}

	latest := points[len(points)-1]
	res, err := analyzer.BuildComparison(symbol, latest, sma, period)
	if err != nil {
		r.notifyError(err)
		return nil, &StageError{Stage: StageAnalyze, Err: err}
	}

	if age := analyzer.AgeDays(res.Date, r.now()); age > r.cfg.Analysis.MaxDataAgeDays {
		r.log.Warn().Str("symbol", symbol).Int("age_days", age).
			Int("max_age_days", r.cfg.Analysis.MaxDataAgeDays).Msg("analysis data is stale")
	}

	r.log.Info().
		Str("symbol", symbol).
		Str("date", res.Date.Format("2006-01-02")).
		Float64("close", res.ClosingPrice).
		Float64("sma", res.SMAValue).
		Float64("pct", res.PercentageDifference).
		Str("comparison", string(res.Comparison)).
		Str("trend", string(res.TrendSignal)).
		Msg("comparison complete")

	return res, nil
}

// decide runs the priority table when both SPY and QQQ were analyzed.
func (r *Runner) decide(results map[string]*model.ComparisonResult) *model.Recommendation {
	spy, hasSPY := results["SPY"]
	qqq, hasQQQ := results["QQQ"]
	if !hasSPY || !hasQQQ {
		return nil
	}

	t := analyzer.Thresholds{
		QQQDanger:  r.cfg.Thresholds.QQQDanger,
		QQQWarning: r.cfg.Thresholds.QQQWarning,
		SPYBuy:     r.cfg.Thresholds.SPYBuy,
		SPYSell:    r.cfg.Thresholds.SPYSell,
	}
	rec := analyzer.Decide(spy.PercentageDifference, qqq.PercentageDifference, t, spy.Date)
	rec.PerTicker = results

	r.log.Info().
		Str("action", string(rec.Action)).
		Str("rule", rec.TriggeringRule).
		Float64("spy_pct", rec.SPYPct).
		Float64("qqq_pct", rec.QQQPct).
		Msg("recommendation decided")

	return &rec
}

func (r *Runner) render(results map[string]*model.ComparisonResult, rec *model.Recommendation) (subject, body string) {
	if rec != nil {
		return notifier.FormatStrategyReport(rec)
	}
	if len(results) == 1 {
		for _, res := range results {
			return notifier.FormatAnalysisReport(res)
		}
	}
	var date time.Time
	for _, res := range results {
		date = res.Date
		break
	}
	return notifier.FormatPortfolioReport(results, date)
}

// record appends the run to the history recorder, best effort.
func (r *Runner) record(results map[string]*model.ComparisonResult, rec *model.Recommendation) {
	for _, res := range results {
		if err := r.recorder.RecordComparison(res); err != nil {
			r.log.Error().Err(err).Str("symbol", res.Symbol).Msg("record comparison failed")
		}
	}
	if rec != nil {
		if err := r.recorder.RecordRecommendation(rec); err != nil {
			r.log.Error().Err(err).Msg("record recommendation failed")
		}
	}
}

// notifyError sends the failure email, best effort. Suppressed on dry runs.
func (r *Runner) notifyError(runErr error) {
	if r.dryRun {
		return
	}
	subject, body := notifier.FormatErrorReport(r.cfg.Analysis.Symbols, runErr)
	if err := r.notifier.Send(subject, body); err != nil {
		r.log.Error().Err(err).Msg("error notification failed")
	}
}
