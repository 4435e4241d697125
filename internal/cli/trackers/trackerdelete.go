package trackers

import (
	"github.com/julianstephens/tracklit/internal/cli"
)

type TrackerDeleteCmd struct {
	Tracker string `arg:"" help:"Tracker ID, ID prefix or name."`
}

func (c *TrackerDeleteCmd) Run(ctx *cli.Context) error {
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

	ctx.PerformAutomaticBackup()

	if _, err := b.DeleteTracker(cctx, tracker.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted tracker: %s (ID: %s)\n", tracker.Name, tracker.ID)
	return nil
}
