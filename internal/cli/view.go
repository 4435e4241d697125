package cli

import (
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/models"
)

type ViewCmd struct {
	Date   string `short:"d" help:"Date in YYYY-MM-DD format, 'today' or 'yesterday' (default: today)." default:""`
	Filter string `short:"f" help:"Filter mode (all|today|completed|incompleted). Defaults to the default_filter setting."`
	Search string `short:"s" help:"Case-insensitive search on tracker names."`
}

func (c *ViewCmd) Run(ctx *Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(b, c.Date)
	if err != nil {
		return err
	}

	mode := ctx.Settings(cctx).DefaultFilter
	if c.Filter != "" {
		if mode, err = models.ParseFilterMode(c.Filter); err != nil {
			return err
		}
	}

	snap := b.Snapshot()
	view := snap.View(filter.Query{Date: date, Mode: mode, Search: c.Search})
	RenderView(ctx.Writer(), view, snap)
	return nil
}
