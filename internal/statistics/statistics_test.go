package statistics

import (
	"testing"
	"time"

	"github.com/julianstephens/tracklit/internal/completion"
	"github.com/julianstephens/tracklit/internal/models"
)

func TestCompletedCount(t *testing.T) {
	if CompletedCount(nil) != 0 {
		t.Error("nil index should count zero")
	}
	idx := completion.Build(time.UTC, []models.TrackerRecord{
		{TrackerID: "a", Date: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{TrackerID: "a", Date: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)},
		{TrackerID: "b", Date: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)},
	})
	if got := CompletedCount(idx); got != 2 {
		t.Errorf("CompletedCount() = %d, want 2", got)
	}
}

func TestSummarize(t *testing.T) {
	idx := completion.New(time.UTC)
	idx.Toggle("a", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	idx.Toggle("b", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	idx.Toggle("b", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	idx.Toggle("orphan", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))

	s := Summarize([]models.Tracker{
		{ID: "c", Name: "Yoga"},
		{ID: "a", Name: "Read"},
		{ID: "b", Name: "Walk"},
	}, idx)

	if s.CompletedCount != 3 {
		t.Errorf("CompletedCount = %d, want 3 (orphans excluded)", s.CompletedCount)
	}
	order := []string{"b", "a", "c"}
	for i, id := range order {
		if s.Trackers[i].TrackerID != id {
			t.Fatalf("position %d = %s, want %s", i, s.Trackers[i].TrackerID, id)
		}
	}
	if s.Trackers[0].LastDay != "2024-03-04" {
		t.Errorf("LastDay = %q", s.Trackers[0].LastDay)
	}
	if s.Trackers[2].Completed != 0 || s.Trackers[2].LastDay != "" {
		t.Errorf("unexpected stat for Yoga: %+v", s.Trackers[2])
	}
}
