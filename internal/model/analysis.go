package model

import "time"

// Comparison is the relation of the latest close to its SMA.
type Comparison string

const (
	ComparisonAbove Comparison = "ABOVE"
	ComparisonBelow Comparison = "BELOW"
	ComparisonEqual Comparison = "EQUAL"
)

// TrendSignal is the trend reading derived from a Comparison.
type TrendSignal string

const (
	TrendBullish TrendSignal = "BULLISH"
	TrendBearish TrendSignal = "BEARISH"
	TrendNeutral TrendSignal = "NEUTRAL"
)

// ComparisonResult is the per-ticker output of one analysis run.
// It is derived each run and never persisted as application state.
type ComparisonResult struct {
	Symbol               string
	Date                 time.Time
	ClosingPrice         float64
	SMAValue             float64
	SMAPeriod            int
	Comparison           Comparison
	PercentageDifference float64
	TrendSignal          TrendSignal
	Message              string
	DetailedMessage      string
}

// Action is the single prioritized recommendation of the decision engine.
type Action string

const (
	ActionExitCash   Action = "EXIT_CASH"
	ActionDeleverage Action = "DELEVERAGE"
	ActionSellDCA    Action = "SELL_DCA"
	ActionBuyHold    Action = "BUY_HOLD"
	ActionMaintain   Action = "MAINTAIN"
)

// Label returns the human-readable form used in email subjects.
func (a Action) Label() string {
	switch a {
	case ActionExitCash:
		return "EXIT TO CASH"
	case ActionDeleverage:
		return "DELEVERAGE"
	case ActionSellDCA:
		return "SELL/DCA"
	case ActionBuyHold:
		return "BUY/HOLD"
	default:
		return "MAINTAIN"
	}
}

// Recommendation is the multi-ticker decision for one run. Exactly one
// action is selected per run, by strict rule priority.
type Recommendation struct {
	Action         Action
	TriggeringRule string
	Rationale      string
	SPYPct         float64
	QQQPct         float64
	PerTicker      map[string]*ComparisonResult
	Date           time.Time
}
