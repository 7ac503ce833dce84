package analyzer

import "time"

// AgeDays returns the number of whole days between the analysis date and
// now. Weekends and market holidays make an age of a few days normal; the
// caller decides what is stale.
func AgeDays(date, now time.Time) int {
	return int(now.Sub(date).Hours() / 24)
}
