package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/session"
	"github.com/julianstephens/tracklit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	cctx := context.Background()

	if ctx.IsFileStore() {
		lock, err := session.Acquire(session.LockPath(ctx.Store.GetConfigPath()))
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release session lock", "error", err)
			}
		}()
	}

	b, err := ctx.Board(cctx)
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	mode := ctx.Settings(cctx).DefaultFilter
	p := tea.NewProgram(tui.NewModel(b, mode), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
