package trackers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tui/styles"
	"github.com/julianstephens/tracklit/internal/utils"
)

type TrackerListCmd struct {
	Category string `short:"c" help:"Only list trackers of this category."`
	JSON     bool   `help:"Print trackers as JSON."`
}

func (c *TrackerListCmd) Run(ctx *cli.Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	snap := b.Snapshot()

	if c.JSON {
		data, err := json.MarshalIndent(snap.Trackers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal trackers: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(snap.Trackers) == 0 {
		ctx.Println("No trackers found.")
		return nil
	}

	idx := snap.Index()
	now := b.Now()
	for _, group := range snap.Grouped {
		if c.Category != "" && group.Title != c.Category {
			continue
		}
		ctx.Println(styles.Category.Render(group.Title))
		if len(group.Trackers) == 0 {
			ctx.Println(styles.Muted.Render("  (empty)"))
		}
		for _, t := range group.Trackers {
			ctx.Printf("  %s  %s  %s\n",
				styles.Muted.Render(t.ID),
				styles.TrackerLine(t),
				styles.Muted.Render(fmt.Sprintf("%d done · %s", idx.Count(t.ID), nextDue(t, now))))
		}
	}
	return nil
}

func nextDue(t models.Tracker, now time.Time) string {
	next := utils.NextScheduled(t, now)
	if next.Equal(utils.StartOfDay(now)) {
		return "due today"
	}
	return "next " + next.Format("Mon 2006-01-02")
}
