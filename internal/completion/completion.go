// Package completion keeps track of which calendar days each tracker was
// completed on.
package completion

import (
	"sort"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
)

// Index maps a tracker ID to the set of day keys it was completed on.
// Dates are compared by calendar day in the index location, so any two
// instants on the same day are the same completion.
type Index struct {
	loc  *time.Location
	days map[string]map[string]struct{}
}

// New returns an empty index that resolves days in loc. A nil loc means time.Local.
func New(loc *time.Location) *Index {
	if loc == nil {
		loc = time.Local
	}
	return &Index{loc: loc, days: make(map[string]map[string]struct{})}
}

// Build returns an index holding records. Records for the same tracker and
// day collapse into one.
func Build(loc *time.Location, records []models.TrackerRecord) *Index {
	idx := New(loc)
	for _, r := range records {
		idx.add(r.TrackerID, idx.key(r.Date))
	}
	return idx
}

// Location returns the location days are resolved in
func (i *Index) Location() *time.Location {
	return i.loc
}

func (i *Index) key(date time.Time) string {
	return models.DayKey(date, i.loc)
}

func (i *Index) add(trackerID, day string) {
	set, ok := i.days[trackerID]
	if !ok {
		set = make(map[string]struct{})
		i.days[trackerID] = set
	}
	set[day] = struct{}{}
}

// IsCompleted reports whether the tracker has a completion on date's day
func (i *Index) IsCompleted(trackerID string, date time.Time) bool {
	_, ok := i.days[trackerID][i.key(date)]
	return ok
}

// Count returns the number of distinct days the tracker was completed on
func (i *Index) Count(trackerID string) int {
	return len(i.days[trackerID])
}

// Toggle flips the completion for the tracker on date's day and returns the
// new state.
func (i *Index) Toggle(trackerID string, date time.Time) bool {
	day := i.key(date)
	if set, ok := i.days[trackerID]; ok {
		if _, done := set[day]; done {
			delete(set, day)
			if len(set) == 0 {
				delete(i.days, trackerID)
			}
			return false
		}
	}
	i.add(trackerID, day)
	return true
}

// TotalCompletedCount returns the number of completions over all trackers
func (i *Index) TotalCompletedCount() int {
	total := 0
	for _, set := range i.days {
		total += len(set)
	}
	return total
}

// Days returns the tracker's completed day keys in ascending order
func (i *Index) Days(trackerID string) []string {
	set := i.days[trackerID]
	days := make([]string, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Records returns one record per completion, ordered by tracker then day.
// Each record's date is midnight of its day in the index location.
func (i *Index) Records() []models.TrackerRecord {
	ids := make([]string, 0, len(i.days))
	for id := range i.days {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var records []models.TrackerRecord
	for _, id := range ids {
		for _, day := range i.Days(id) {
			date, err := time.ParseInLocation(constants.DateFormat, day, i.loc)
			if err != nil {
				continue
			}
			records = append(records, models.TrackerRecord{TrackerID: id, Date: date})
		}
	}
	return records
}

// Clone returns a deep copy that can be mutated independently
func (i *Index) Clone() *Index {
	c := New(i.loc)
	for id, set := range i.days {
		copied := make(map[string]struct{}, len(set))
		for d := range set {
			copied[d] = struct{}{}
		}
		c.days[id] = copied
	}
	return c
}
