package model

import "time"

// PricePoint is a single daily observation: calendar date and closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// SameDay reports whether the point falls on the given calendar date.
func (p PricePoint) SameDay(t time.Time) bool {
	y1, m1, d1 := p.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SMAResult is a trailing simple moving average ending on Date.
type SMAResult struct {
	Date  time.Time
	Value float64
}
