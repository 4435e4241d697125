package trackers

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tui/forms"
	"github.com/julianstephens/tracklit/internal/tui/styles"
)

type TrackerAddCmd struct {
	Name        string `arg:"" optional:"" help:"Tracker name."`
	Category    string `short:"c" help:"Category title. Created when it does not exist."`
	Emoji       string `short:"e" help:"Emoji shown next to the name."`
	Color       string `help:"Color as #RRGGBB."`
	Schedule    string `short:"w" help:"Comma-separated weekdays, 'weekdays', 'weekends' or 'daily' (default: every day)."`
	Interactive bool   `short:"i" help:"Fill in the tracker with an interactive form."`
}

func (c *TrackerAddCmd) Validate() error {
	if c.Interactive {
		return nil
	}
	if c.Name == "" {
		return fmt.Errorf("tracker name is required unless --interactive is set")
	}
	if c.Category == "" {
		return fmt.Errorf("--category is required unless --interactive is set")
	}
	if _, err := models.ParseSchedule(c.Schedule); err != nil {
		return err
	}
	return nil
}

func (c *TrackerAddCmd) input(categories []string) (board.TrackerInput, error) {
	schedule, err := models.ParseSchedule(c.Schedule)
	if err != nil {
		return board.TrackerInput{}, err
	}
	in := board.TrackerInput{
		Name:     c.Name,
		Category: c.Category,
		Emoji:    c.Emoji,
		Color:    c.Color,
		Schedule: schedule,
	}
	if !c.Interactive {
		return in, nil
	}

	fm := &forms.TrackerFormModel{
		Name:     in.Name,
		Category: in.Category,
		Emoji:    in.Emoji,
		Color:    in.Color,
		Days:     in.Schedule,
	}
	if err := forms.NewTrackerForm(fm, categories).Run(); err != nil {
		return board.TrackerInput{}, fmt.Errorf("form cancelled: %w", err)
	}
	return fm.Input(), nil
}

func (c *TrackerAddCmd) Run(ctx *cli.Context) error {
	b, err := loadBoard(ctx)
	if err != nil {
		return err
	}

	// the form may take longer than a storage round trip
	in, err := c.input(categoryTitles(b.Snapshot()))
	if err != nil {
		return err
	}

	cctx, cancel := ctx.Timeout()
	defer cancel()
	tracker, _, err := b.CreateTracker(cctx, in)
	if err != nil {
		return err
	}

	ctx.Printf("%s Added tracker: %s (ID: %s)\n", styles.Success.Render("✓"), tracker.Name, tracker.ID)
	ctx.Printf("  Category: %s, schedule: %s\n", tracker.Category, tracker.Schedule)
	return nil
}

func loadBoard(ctx *cli.Context) (*board.Board, error) {
	cctx, cancel := ctx.Timeout()
	defer cancel()
	return ctx.Board(cctx)
}

func categoryTitles(snap board.Snapshot) []string {
	titles := make([]string, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		titles = append(titles, c.Title)
	}
	return titles
}
