package categories

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/tui/styles"
)

type CategoryAddCmd struct {
	Title string `arg:"" help:"Category title."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	if _, err := b.CreateCategory(cctx, c.Title); err != nil {
		return err
	}
	ctx.Printf("%s Added category: %s\n", styles.Success.Render("✓"), c.Title)
	return nil
}

type CategoryRenameCmd struct {
	Title    string `arg:"" help:"Current category title."`
	NewTitle string `arg:"" help:"New category title."`
}

func (c *CategoryRenameCmd) Run(ctx *cli.Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	if _, err := b.RenameCategory(cctx, c.Title, c.NewTitle); err != nil {
		return err
	}
	ctx.Printf("Renamed category %q to %q\n", c.Title, c.NewTitle)
	return nil
}

type CategoryDeleteCmd struct {
	Title string `arg:"" help:"Category title."`
	Yes   bool   `short:"y" help:"Delete without asking when the category still has trackers."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	loadCtx, cancelLoad := ctx.Timeout()
	b, err := ctx.Board(loadCtx)
	cancelLoad()
	if err != nil {
		return err
	}

	count := 0
	for _, group := range b.Snapshot().Grouped {
		if group.Title == c.Title {
			count = len(group.Trackers)
		}
	}
	if count > 0 && !c.Yes {
		ok, err := cli.Confirm(fmt.Sprintf("Delete %q and its %d tracker(s) with all their completions?", c.Title, count))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	cctx, cancel := ctx.Timeout()
	defer cancel()
	if _, err := b.DeleteCategory(cctx, c.Title); err != nil {
		return err
	}
	ctx.Printf("Deleted category: %s (%d tracker(s) removed)\n", c.Title, count)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	grouped := b.Snapshot().Grouped
	if len(grouped) == 0 {
		ctx.Println("No categories found.")
		return nil
	}
	for _, group := range grouped {
		ctx.Printf("%s %s\n", group.Title, styles.Muted.Render(fmt.Sprintf("(%d)", len(group.Trackers))))
	}
	return nil
}
