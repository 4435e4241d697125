package utils

import (
	"time"

	"github.com/julianstephens/tracklit/internal/models"
)

// IsScheduled determines whether a tracker is due on the given date. The
// weekday is taken in date's own location, so callers pass dates already
// converted to the user's timezone. A tracker with an empty schedule is due
// every day.
func IsScheduled(tracker models.Tracker, date time.Time) bool {
	if !tracker.IsRecurring() {
		return true
	}
	return tracker.Schedule.Contains(models.WeekDayOf(date))
}

// NextScheduled returns the first date on or after from when the tracker is
// due, looking at most one week ahead.
func NextScheduled(tracker models.Tracker, from time.Time) time.Time {
	day := StartOfDay(from)
	for i := 0; i < 7; i++ {
		candidate := day.AddDate(0, 0, i)
		if IsScheduled(tracker, candidate) {
			return candidate
		}
	}
	return day
}
