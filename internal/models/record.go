package models

import (
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
)

// TrackerRecord marks a tracker as completed on a calendar day. Two records
// for the same tracker on the same day are the same record regardless of
// time of day.
type TrackerRecord struct {
	TrackerID string    `json:"tracker_id"`
	Date      time.Time `json:"date"`
}

// Day returns the record's calendar day key in loc
func (r TrackerRecord) Day(loc *time.Location) string {
	return DayKey(r.Date, loc)
}

// DayKey formats t as YYYY-MM-DD in loc. A nil loc means time.Local.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(a, loc) == DayKey(b, loc)
}
