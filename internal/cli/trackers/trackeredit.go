package trackers

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tui/forms"
	"github.com/julianstephens/tracklit/internal/tui/styles"
)

type TrackerEditCmd struct {
	Tracker     string  `arg:"" help:"Tracker ID, ID prefix or name."`
	Name        *string `help:"New tracker name."`
	Category    *string `short:"c" help:"New category title."`
	Emoji       *string `short:"e" help:"New emoji (empty to clear)."`
	Color       *string `help:"New color as #RRGGBB (empty to clear)."`
	Schedule    *string `short:"w" help:"New schedule: weekdays, 'weekdays', 'weekends' or 'daily'."`
	Interactive bool    `short:"i" help:"Edit the tracker with an interactive form."`
}

func (c *TrackerEditCmd) Run(ctx *cli.Context) error {
	b, err := loadBoard(ctx)
	if err != nil {
		return err
	}
	snap := b.Snapshot()
	tracker, err := snap.FindTracker(c.Tracker)
	if err != nil {
		return err
	}

	in := board.TrackerInput{
		Name:     tracker.Name,
		Category: tracker.Category,
		Emoji:    tracker.Emoji,
		Color:    tracker.Color,
		Schedule: tracker.Schedule,
	}
	changed := false
	if c.Name != nil {
		in.Name = *c.Name
		changed = true
	}
	if c.Category != nil {
		in.Category = *c.Category
		changed = true
	}
	if c.Emoji != nil {
		in.Emoji = *c.Emoji
		changed = true
	}
	if c.Color != nil {
		in.Color = *c.Color
		changed = true
	}
	if c.Schedule != nil {
		schedule, err := models.ParseSchedule(*c.Schedule)
		if err != nil {
			return err
		}
		in.Schedule = schedule
		changed = true
	}

	if c.Interactive {
		fm := forms.FromTracker(tracker)
		if err := forms.NewTrackerForm(fm, categoryTitles(snap)).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
		in = fm.Input()
		changed = true
	}

	if !changed {
		ctx.Println("No changes specified. Use flags or --interactive to edit the tracker.")
		return nil
	}

	cctx, cancel := ctx.Timeout()
	defer cancel()
	if _, err := b.UpdateTracker(cctx, tracker.ID, in); err != nil {
		return err
	}
	ctx.Printf("%s Updated tracker: %s (ID: %s)\n", styles.Success.Render("✓"), in.Name, tracker.ID)
	return nil
}
