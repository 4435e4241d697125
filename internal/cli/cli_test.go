package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/statistics"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
)

// Wednesday
var fixedNow = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	out := &bytes.Buffer{}
	return &Context{
		Store: store,
		Out:   out,
		Now:   func() time.Time { return fixedNow },
	}, out
}

func addTracker(t *testing.T, ctx *Context, in board.TrackerInput) models.Tracker {
	t.Helper()
	b, err := ctx.Board(context.Background())
	if err != nil {
		t.Fatalf("Board failed: %v", err)
	}
	tracker, _, err := b.CreateTracker(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateTracker failed: %v", err)
	}
	return tracker
}

func TestMarkCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	tracker := addTracker(t, ctx, board.TrackerInput{Name: "Read", Category: "Mind"})

	if err := (&MarkCmd{Tracker: "read"}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if !strings.Contains(out.String(), `Marked "Read" for 2024-03-06`) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	b, _ := ctx.Board(context.Background())
	if !b.Snapshot().IsCompleted(tracker.ID, fixedNow) {
		t.Error("tracker should be completed")
	}

	out.Reset()
	if err := (&MarkCmd{Tracker: tracker.ID, Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("unmark failed: %v", err)
	}
	if !strings.Contains(out.String(), `Unmarked "Read"`) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestMarkCmd_Errors(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addTracker(t, ctx, board.TrackerInput{Name: "Read", Category: "Mind"})

	tests := []struct {
		name   string
		cmd    MarkCmd
		target error
	}{
		{"future date", MarkCmd{Tracker: "Read", Date: "2024-03-07"}, errors.ErrFutureDate},
		{"unknown tracker", MarkCmd{Tracker: "Swim"}, errors.ErrNotFound},
		{"bad date", MarkCmd{Tracker: "Read", Date: "03/06/2024"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestViewCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTracker(t, ctx, board.TrackerInput{Name: "Read", Category: "Mind"})
	addTracker(t, ctx, board.TrackerInput{Name: "Gym", Category: "Health", Schedule: models.Schedule{models.Monday}})

	if err := (&MarkCmd{Tracker: "Read"}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	out.Reset()

	if err := (&ViewCmd{}).Run(ctx); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Trackers for 2024-03-06", "Read", "[x]", "Completed overall: 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Gym") {
		t.Errorf("Gym is not scheduled on Wednesday:\n%s", got)
	}

	out.Reset()
	if err := (&ViewCmd{Date: "2024-03-04", Filter: "incomplete"}).Run(ctx); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "Gym") || !strings.Contains(got, "filter: Not completed") {
		t.Errorf("unexpected Monday view:\n%s", got)
	}

	out.Reset()
	if err := (&ViewCmd{Search: "zzz"}).Run(ctx); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if !strings.Contains(out.String(), filter.EmptyStateSearchNoResults.Message()) {
		t.Errorf("expected the no results message:\n%s", out.String())
	}

	if err := (&ViewCmd{Filter: "sometimes"}).Run(ctx); err == nil {
		t.Error("invalid filter should fail")
	}
}

func TestViewCmd_NoTrackers(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ViewCmd{}).Run(ctx); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if !strings.Contains(out.String(), filter.EmptyStateNoTrackers.Message()) {
		t.Errorf("expected the empty placeholder:\n%s", out.String())
	}
}

func TestStatsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTracker(t, ctx, board.TrackerInput{Name: "Read", Category: "Mind"})
	addTracker(t, ctx, board.TrackerInput{Name: "Run", Category: "Health"})

	for _, date := range []string{"today", "yesterday"} {
		if err := (&MarkCmd{Tracker: "Run", Date: date}).Run(ctx); err != nil {
			t.Fatalf("mark failed: %v", err)
		}
	}
	out.Reset()

	if err := (&StatsCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	var summary statistics.Summary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if summary.CompletedCount != 2 || len(summary.Trackers) != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Trackers[0].Name != "Run" || summary.Trackers[0].LastDay != "2024-03-06" {
		t.Errorf("most completed tracker = %+v", summary.Trackers[0])
	}

	out.Reset()
	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out.String(), "Trackers completed: 2") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
