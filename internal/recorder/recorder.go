package recorder

import "StockSentry/internal/model"

// Recorder persists an audit trail of runs. Nothing is ever read back at
// runtime: each analysis run stays stateless.
type Recorder interface {
	RecordComparison(res *model.ComparisonResult) error
	RecordRecommendation(rec *model.Recommendation) error
	Close() error
}
