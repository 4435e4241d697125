// Package filter computes the trackers visible on a calendar day from a
// snapshot of categories, trackers and completions.
package filter

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/julianstephens/tracklit/internal/completion"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

// Query is the user-controlled input of a view
type Query struct {
	Date   time.Time
	Mode   models.FilterMode
	Search string
}

// EmptyState tells the presentation layer which placeholder to show
type EmptyState int

const (
	EmptyStateNone EmptyState = iota
	EmptyStateNoTrackers
	EmptyStateSearchNoResults
)

func (s EmptyState) String() string {
	switch s {
	case EmptyStateNoTrackers:
		return "noTrackers"
	case EmptyStateSearchNoResults:
		return "searchNoResults"
	default:
		return "none"
	}
}

// Message returns the placeholder text for the state
func (s EmptyState) Message() string {
	switch s {
	case EmptyStateNoTrackers:
		return "What shall we track?"
	case EmptyStateSearchNoResults:
		return "Nothing found"
	default:
		return ""
	}
}

// Normalize applies the side effect of the today mode, which moves the date
// to now. An empty mode becomes FilterAll.
func Normalize(q Query, now time.Time) Query {
	if q.Mode == "" {
		q.Mode = models.FilterAll
	}
	if q.Mode == models.FilterToday {
		q.Date = now
	}
	return q
}

// HasSearch reports whether the query carries search text
func (q Query) HasSearch() bool {
	return strings.TrimSpace(q.Search) != ""
}

// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// matchesSearch is a plain substring match. Blank search text matches
// everything.
func matchesSearch(name, search string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	return strings.Contains(fold(name), fold(search))
}

func matchesMode(t models.Tracker, idx *completion.Index, q Query) bool {
	if !q.Mode.Narrows() {
		return true
	}
	done := idx != nil && idx.IsCompleted(t.ID, q.Date)
	return done == (q.Mode == models.FilterCompleted)
}

// VisibleCategories returns the categories and trackers that are scheduled on
// q.Date, match q.Search and satisfy q.Mode. Categories left without trackers
// are dropped. Categories are sorted by title and trackers by name.
func VisibleCategories(cats []models.TrackerCategory, idx *completion.Index, q Query) []models.TrackerCategory {
	var out []models.TrackerCategory
	for _, c := range cats {
		var trackers []models.Tracker
		for _, t := range c.Trackers {
			if !utils.IsScheduled(t, q.Date) {
				continue
			}
			if !matchesSearch(t.Name, q.Search) {
				continue
			}
			if !matchesMode(t, idx, q) {
				continue
			}
			trackers = append(trackers, t)
		}
		if len(trackers) == 0 {
			continue
		}
		sortTrackers(trackers)
		out = append(out, models.TrackerCategory{Title: c.Title, Trackers: trackers})
	}
	sortCategories(out)
	return out
}

// HasScheduled reports whether any tracker is due on date, regardless of
// search text and filter mode.
func HasScheduled(cats []models.TrackerCategory, date time.Time) bool {
	for _, c := range cats {
		for _, t := range c.Trackers {
			if utils.IsScheduled(t, date) {
				return true
			}
		}
	}
	return false
}

// ResolveEmptyState derives the placeholder for a computed view. cats is the
// unfiltered grouping and visible the result of VisibleCategories for q.
func ResolveEmptyState(cats, visible []models.TrackerCategory, q Query) EmptyState {
	if q.HasSearch() {
		if len(visible) == 0 {
			return EmptyStateSearchNoResults
		}
		return EmptyStateNone
	}
	if !HasScheduled(cats, q.Date) {
		return EmptyStateNoTrackers
	}
	return EmptyStateNone
}

// Group joins trackers to their categories by title. Every category is
// returned, including those without trackers. Trackers referencing an unknown
// title are grouped under that title.
func Group(categories []models.Category, trackers []models.Tracker) []models.TrackerCategory {
	byTitle := make(map[string]int, len(categories))
	out := make([]models.TrackerCategory, 0, len(categories))
	for _, c := range categories {
		if _, ok := byTitle[c.Title]; ok {
			continue
		}
		byTitle[c.Title] = len(out)
		out = append(out, models.TrackerCategory{Title: c.Title})
	}
	for _, t := range trackers {
		i, ok := byTitle[t.Category]
		if !ok {
			i = len(out)
			byTitle[t.Category] = i
			out = append(out, models.TrackerCategory{Title: t.Category})
		}
		out[i].Trackers = append(out[i].Trackers, t)
	}
	for i := range out {
		sortTrackers(out[i].Trackers)
	}
	sortCategories(out)
	return out
}

func sortTrackers(trackers []models.Tracker) {
	sort.SliceStable(trackers, func(i, j int) bool {
		if trackers[i].Name != trackers[j].Name {
			return trackers[i].Name < trackers[j].Name
		}
		return trackers[i].ID < trackers[j].ID
	})
}

func sortCategories(cats []models.TrackerCategory) {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Title < cats[j].Title
	})
}
