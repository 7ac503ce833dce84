package analyzer

import (
	"fmt"
	"time"

	"StockSentry/internal/model"
)

// Thresholds are the decision-table boundaries, in percent deviation from
// the 200-day SMA.
type Thresholds struct {
	QQQDanger  float64 // at or beyond: exit leveraged positions entirely
	QQQWarning float64 // at or beyond (below danger): reduce leverage
	SPYBuy     float64 // at or beyond: trend-confirmed buy
	SPYSell    float64 // at or below: sell / defensive DCA
}

// DefaultThresholds returns the standard SPY/QQQ table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		QQQDanger:  40,
		QQQWarning: 30,
		SPYBuy:     4,
		SPYSell:    -3,
	}
}

// rule is one row of the priority table. Rules are evaluated top-down and
// the first match wins; the QQQ bubble-protection tiers sit above the SPY
// trend tiers.
type rule struct {
	name      string
	action    model.Action
	match     func(spyPct, qqqPct float64, t Thresholds) bool
	rationale func(spyPct, qqqPct float64, t Thresholds) string
}

var rules = []rule{
	{
		name:   "qqq_danger",
		action: model.ActionExitCash,
		match: func(_, qqq float64, t Thresholds) bool {
			return qqq >= t.QQQDanger
		},
		rationale: func(_, qqq float64, t Thresholds) string {
			return fmt.Sprintf("QQQ is %.2f%% above its 200-day SMA, at or beyond the %.1f%% bubble-protection threshold. Exit leveraged positions to cash.", qqq, t.QQQDanger)
		},
	},
	{
		name:   "qqq_warning",
		action: model.ActionDeleverage,
		match: func(_, qqq float64, t Thresholds) bool {
			return qqq >= t.QQQWarning && qqq < t.QQQDanger
		},
		rationale: func(_, qqq float64, t Thresholds) string {
			return fmt.Sprintf("QQQ is %.2f%% above its 200-day SMA, in the %.1f%%-%.1f%% warning band. Reduce leverage before trend signals are considered.", qqq, t.QQQWarning, t.QQQDanger)
		},
	},
	{
		name:   "spy_sell",
		action: model.ActionSellDCA,
		match: func(spy, _ float64, t Thresholds) bool {
			return spy <= t.SPYSell
		},
		rationale: func(spy, _ float64, t Thresholds) string {
			return fmt.Sprintf("SPY is %.2f%% versus its 200-day SMA, at or below the %.1f%% sell threshold. Sell and switch to defensive DCA.", spy, t.SPYSell)
		},
	},
	{
		name:   "spy_buy",
		action: model.ActionBuyHold,
		match: func(spy, _ float64, t Thresholds) bool {
			return spy >= t.SPYBuy
		},
		rationale: func(spy, _ float64, t Thresholds) string {
			return fmt.Sprintf("SPY is %.2f%% above its 200-day SMA, at or beyond the %.1f%% buy threshold. Buy and hold.", spy, t.SPYBuy)
		},
	},
}

// Decide runs the priority table over the SPY and QQQ percentage deviations
// and returns exactly one recommendation. It is pure: no state, no side
// effects, total over all inputs (MAINTAIN when no rule fires).
func Decide(spyPct, qqqPct float64, t Thresholds, date time.Time) model.Recommendation {
	rec := model.Recommendation{
		SPYPct: spyPct,
		QQQPct: qqqPct,
		Date:   date,
	}
	for _, r := range rules {
		if r.match(spyPct, qqqPct, t) {
			rec.Action = r.action
			rec.TriggeringRule = r.name
			rec.Rationale = r.rationale(spyPct, qqqPct, t)
			return rec
		}
	}
	rec.Action = model.ActionMaintain
	rec.TriggeringRule = "default"
	rec.Rationale = fmt.Sprintf("SPY at %.2f%% and QQQ at %.2f%% versus their 200-day SMAs are inside all thresholds. Maintain current positions.", spyPct, qqqPct)
	return rec
}
