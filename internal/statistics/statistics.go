package statistics

import (
	"sort"

	"github.com/julianstephens/tracklit/internal/completion"
	"github.com/julianstephens/tracklit/internal/models"
)

// TrackerStat is the completion count of a single tracker
type TrackerStat struct {
	TrackerID string `json:"tracker_id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji,omitempty"`
	Completed int    `json:"completed"`
	LastDay   string `json:"last_day,omitempty"`
}

// Summary aggregates completions for the stats screen
type Summary struct {
	CompletedCount int           `json:"completed_count"`
	Trackers       []TrackerStat `json:"trackers"`
}

// CompletedCount returns the number of completions over all trackers
func CompletedCount(idx *completion.Index) int {
	if idx == nil {
		return 0
	}
	return idx.TotalCompletedCount()
}

// Summarize returns the total plus per-tracker counts for the given trackers,
// most completed first. Completions of trackers not in the list are ignored.
func Summarize(trackers []models.Tracker, idx *completion.Index) Summary {
	s := Summary{Trackers: make([]TrackerStat, 0, len(trackers))}
	for _, t := range trackers {
		stat := TrackerStat{TrackerID: t.ID, Name: t.Name, Emoji: t.Emoji}
		if idx != nil {
			stat.Completed = idx.Count(t.ID)
			if days := idx.Days(t.ID); len(days) > 0 {
				stat.LastDay = days[len(days)-1]
			}
		}
		s.CompletedCount += stat.Completed
		s.Trackers = append(s.Trackers, stat)
	}
	sort.SliceStable(s.Trackers, func(i, j int) bool {
		a, b := s.Trackers[i], s.Trackers[j]
		if a.Completed != b.Completed {
			return a.Completed > b.Completed
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.TrackerID < b.TrackerID
	})
	return s
}
