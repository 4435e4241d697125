package board

import (
	"strings"
	"time"

	"github.com/julianstephens/tracklit/internal/completion"
	"github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/statistics"
	"github.com/julianstephens/tracklit/internal/utils"
)

// Snapshot is an immutable, consistent copy of the stored trackers,
// categories and completions. Callers must not modify its slices.
type Snapshot struct {
	Categories []models.Category
	Trackers   []models.Tracker
	Grouped    []models.TrackerCategory
	Location   *time.Location
	LoadedAt   time.Time

	index *completion.Index
	now   Clock
}

// View is what the presentation layer renders for a query
type View struct {
	Date           time.Time
	Mode           models.FilterMode
	Search         string
	Categories     []models.TrackerCategory
	EmptyState     filter.EmptyState
	ShowFilters    bool
	CompletedCount int
	// IsFuture disables completion toggles
	IsFuture bool
}

// Index returns a copy of the completion index
func (s Snapshot) Index() *completion.Index {
	if s.index == nil {
		return completion.New(s.location())
	}
	return s.index.Clone()
}

// IsCompleted reports whether the tracker is completed on date
func (s Snapshot) IsCompleted(trackerID string, date time.Time) bool {
	return s.index != nil && s.index.IsCompleted(trackerID, date)
}

// CompletedCount returns the number of completions of known trackers
func (s Snapshot) CompletedCount() int {
	return statistics.CompletedCount(s.index)
}

// Stats summarizes completions per tracker
func (s Snapshot) Stats() statistics.Summary {
	return statistics.Summarize(s.Trackers, s.index)
}

// Now returns the snapshot clock's time in the snapshot location
func (s Snapshot) Now() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().In(s.location())
}

func (s Snapshot) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// View applies the query to the snapshot
func (s Snapshot) View(q filter.Query) View {
	now := s.Now()
	if q.Date.IsZero() {
		q.Date = now
	}
	q = filter.Normalize(q, now)
	q.Date = q.Date.In(s.location())

	visible := filter.VisibleCategories(s.Grouped, s.index, q)
	return View{
		Date:           q.Date,
		Mode:           q.Mode,
		Search:         q.Search,
		Categories:     visible,
		EmptyState:     filter.ResolveEmptyState(s.Grouped, visible, q),
		ShowFilters:    filter.HasScheduled(s.Grouped, q.Date),
		CompletedCount: s.CompletedCount(),
		IsFuture:       utils.IsAfterDay(q.Date, now, s.location()),
	}
}

// Tracker looks up a tracker by ID
func (s Snapshot) Tracker(id string) (models.Tracker, bool) {
	for _, t := range s.Trackers {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tracker{}, false
}

// HasCategory reports whether a category with exactly this title exists
func (s Snapshot) HasCategory(title string) bool {
	for _, c := range s.Categories {
		if c.Title == title {
			return true
		}
	}
	return false
}

// FindTracker resolves a user reference to a tracker: an exact ID, a unique
// ID prefix, or an exact name (case-insensitive when unambiguous).
func (s Snapshot) FindTracker(ref string) (models.Tracker, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Tracker{}, errors.Invalid("tracker reference is empty")
	}
	if t, ok := s.Tracker(ref); ok {
		return t, nil
	}

	var byName, byFold, byPrefix []models.Tracker
	for _, t := range s.Trackers {
		switch {
		case t.Name == ref:
			byName = append(byName, t)
		case strings.EqualFold(t.Name, ref):
			byFold = append(byFold, t)
		}
		if len(ref) >= 4 && strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t)
		}
	}

	for _, matches := range [][]models.Tracker{byName, byFold, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return models.Tracker{}, errors.Invalid("%q matches %d trackers, use the tracker ID", ref, len(matches))
		}
	}
	return models.Tracker{}, errors.NotFound("tracker", ref)
}
