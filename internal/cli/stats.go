package cli

import (
	"encoding/json"
	"fmt"
)

type StatsCmd struct {
	JSON bool `help:"Print statistics as JSON."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	cctx, cancel := ctx.Timeout()
	defer cancel()

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}
	summary := b.Snapshot().Stats()

	if c.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statistics: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	RenderStats(ctx.Writer(), summary)
	return nil
}
