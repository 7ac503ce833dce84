package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"StockSentry/internal/model"
)

// FormatStrategyReport renders the multi-ticker recommendation email.
func FormatStrategyReport(rec *model.Recommendation) (subject, body string) {
	date := rec.Date.Format("2006-01-02")
	subject = fmt.Sprintf("Strategy: %s — %s", rec.Action.Label(), date)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("SMA Strategy Report | %s\n\n", date))
	b.WriteString(fmt.Sprintf("Recommended action: %s\n", rec.Action.Label()))
	b.WriteString(fmt.Sprintf("Triggering rule: %s\n\n", rec.TriggeringRule))
	b.WriteString(rec.Rationale)
	b.WriteString("\n\nPer-ticker analysis:\n")

	symbols := make([]string, 0, len(rec.PerTicker))
	for sym := range rec.PerTicker {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		r := rec.PerTicker[sym]
		b.WriteString(fmt.Sprintf("\n%s\n", sym))
		b.WriteString(fmt.Sprintf("  Close:       $%.2f\n", r.ClosingPrice))
		b.WriteString(fmt.Sprintf("  %d-day SMA: $%.2f\n", r.SMAPeriod, r.SMAValue))
		b.WriteString(fmt.Sprintf("  Deviation:   %+.2f%% (%s)\n", r.PercentageDifference, r.TrendSignal))
	}

	b.WriteString(footer())
	return subject, b.String()
}

// FormatAnalysisReport renders the single-ticker analysis email.
func FormatAnalysisReport(r *model.ComparisonResult) (subject, body string) {
	date := r.Date.Format("2006-01-02")
	subject = fmt.Sprintf("%s Analysis: %s %d-Day SMA — %s", r.Symbol, r.Comparison, r.SMAPeriod, date)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s SMA Analysis | %s\n\n", r.Symbol, date))
	b.WriteString(r.Message)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Closing price:         $%.2f\n", r.ClosingPrice))
	b.WriteString(fmt.Sprintf("%d-day moving average: $%.2f\n", r.SMAPeriod, r.SMAValue))
	b.WriteString(fmt.Sprintf("Percentage difference: %+.2f%%\n", r.PercentageDifference))
	b.WriteString(fmt.Sprintf("Trend signal:          %s\n\n", r.TrendSignal))
	b.WriteString(r.DetailedMessage)
	b.WriteString(footer())
	return subject, b.String()
}

// FormatPortfolioReport renders a plain multi-ticker summary for runs where
// no SPY/QQQ pair is configured and so no action can be decided.
func FormatPortfolioReport(results map[string]*model.ComparisonResult, date time.Time) (subject, body string) {
	subject = fmt.Sprintf("SMA Analysis — %s", date.Format("2006-01-02"))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("SMA Analysis Report | %s\n", date.Format("2006-01-02")))

	symbols := make([]string, 0, len(results))
	for sym := range results {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		r := results[sym]
		b.WriteString(fmt.Sprintf("\n%s: %s\n", sym, r.Message))
		b.WriteString(fmt.Sprintf("  Close $%.2f | %d-day SMA $%.2f | %+.2f%% (%s)\n",
			r.ClosingPrice, r.SMAPeriod, r.SMAValue, r.PercentageDifference, r.TrendSignal))
	}

	b.WriteString(footer())
	return subject, b.String()
}

// FormatErrorReport renders the failure notification email.
func FormatErrorReport(symbols []string, runErr error) (subject, body string) {
	date := time.Now().UTC().Format("2006-01-02")
	subject = fmt.Sprintf("Analysis Error: %s — %s", strings.Join(symbols, ","), date)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("SMA analysis failed on %s.\n\n", date))
	b.WriteString(fmt.Sprintf("Symbols: %s\n", strings.Join(symbols, ", ")))
	b.WriteString(fmt.Sprintf("Error:   %v\n", runErr))
	b.WriteString("\nNo analysis result was produced for this run. The scheduler will retry on the next invocation.")
	b.WriteString(footer())
	return subject, b.String()
}

func footer() string {
	ts := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	return fmt.Sprintf("\n\n--\nGenerated by StockSentry at %s.\nAutomated analysis for informational purposes only.\n", ts)
}
