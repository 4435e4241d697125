package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/statistics"
	"github.com/julianstephens/tracklit/internal/tui/styles"
)

// ShortID returns the first eight characters of an ID
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderView writes the trackers of a view grouped by category
func RenderView(w io.Writer, view board.View, snap board.Snapshot) {
	header := fmt.Sprintf("Trackers for %s (%s)", view.Date.Format(constants.DateFormat), view.Date.Weekday())
	fmt.Fprintln(w, styles.Title.Render(header))

	var meta []string
	if view.ShowFilters {
		meta = append(meta, "filter: "+view.Mode.Label())
	}
	if strings.TrimSpace(view.Search) != "" {
		meta = append(meta, fmt.Sprintf("search: %q", strings.TrimSpace(view.Search)))
	}
	if view.IsFuture {
		meta = append(meta, "future date, marking disabled")
	}
	if len(meta) > 0 {
		fmt.Fprintln(w, styles.Muted.Render(strings.Join(meta, " · ")))
	}
	fmt.Fprintln(w)

	if msg := view.EmptyState.Message(); msg != "" {
		fmt.Fprintln(w, styles.Empty.Render(msg))
		return
	}

	for _, cat := range view.Categories {
		fmt.Fprintln(w, styles.Category.Render(cat.Title))
		for _, t := range cat.Trackers {
			done := snap.IsCompleted(t.ID, view.Date)
			fmt.Fprintf(w, "  %s %s %s\n", styles.Checkbox(done), styles.TrackerLine(t), styles.Muted.Render(ShortID(t.ID)))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Completed overall: %d\n", view.CompletedCount)
}

// RenderStats writes the completion summary
func RenderStats(w io.Writer, summary statistics.Summary) {
	fmt.Fprintln(w, styles.Title.Render("Statistics"))
	fmt.Fprintf(w, "Trackers completed: %d\n\n", summary.CompletedCount)
	if len(summary.Trackers) == 0 {
		fmt.Fprintln(w, styles.Empty.Render("Nothing tracked yet"))
		return
	}

	nameWidth := 0
	for _, s := range summary.Trackers {
		if n := lipgloss.Width(statName(s)); n > nameWidth {
			nameWidth = n
		}
	}
	for _, s := range summary.Trackers {
		name := statName(s)
		pad := strings.Repeat(" ", nameWidth-lipgloss.Width(name))
		last := "never"
		if s.LastDay != "" {
			last = s.LastDay
		}
		fmt.Fprintf(w, "  %s%s  %4d  %s\n", name, pad, s.Completed, styles.Muted.Render("last: "+last))
	}
}

func statName(s statistics.TrackerStat) string {
	if s.Emoji == "" {
		return s.Name
	}
	return s.Emoji + " " + s.Name
}
