package recorder

import "StockSentry/internal/model"

// NoopRecorder discards all records. Used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordComparison(_ *model.ComparisonResult) error   { return nil }
func (n *NoopRecorder) RecordRecommendation(_ *model.Recommendation) error { return nil }
func (n *NoopRecorder) Close() error                                       { return nil }
