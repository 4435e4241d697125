package cli

import (
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/tui/styles"
)

type MarkCmd struct {
	Tracker string `arg:"" help:"Tracker ID, ID prefix or name."`
	Date    string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday' (default: today)." default:""`
}

func (c *MarkCmd) Run(ctx *Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	tracker, err := b.Snapshot().FindTracker(c.Tracker)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(b, c.Date)
	if err != nil {
		return err
	}

	completed, _, err := b.ToggleCompletion(cctx, tracker.ID, date)
	if err != nil {
		return err
	}

	day := date.Format(constants.DateFormat)
	if completed {
		ctx.Printf("%s Marked %q for %s\n", styles.Success.Render("✓"), tracker.Name, day)
	} else {
		ctx.Printf("Unmarked %q for %s\n", tracker.Name, day)
	}
	return nil
}
