package service

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// daysPerYear is the mean Gregorian year length.
const daysPerYear = 365.2425

// RelativeTime returns a coarse label for how long before now past was,
// such as "yesterday" or "3 months ago". Thresholds are strict, so exactly
// one day is "yesterday". A past later than now is treated as now.
func RelativeTime(now, past time.Time) string {
	elapsed := now.Sub(past)
	if elapsed < 0 {
		elapsed = 0
	}
	days := int(elapsed / day)

	switch {
	case elapsed < day:
		return "today"
	case elapsed < 2*day:
		return "yesterday"
	case elapsed < 7*day:
		return "this week"
	case elapsed < 14*day:
		return "last week"
	case elapsed < 70*day:
		return fmt.Sprintf("%d weeks ago", days/7)
	case elapsed < 365*day:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%d years ago", int(float64(days)/daysPerYear))
	}
}
