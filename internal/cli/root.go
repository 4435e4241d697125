package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Out receives command output; nil means os.Stdout
	Out io.Writer
	// Now replaces time.Now in tests
	Now func() time.Time

	board *board.Board
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Timeout returns a context bounded by constants.StorageTimeout
func (c *Context) Timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.StorageTimeout)
}

// Settings returns the stored settings, falling back to defaults
func (c *Context) Settings(ctx context.Context) models.Settings {
	settings, err := c.Store.GetSettings(ctx)
	if err != nil {
		logger.Warn("Using default settings", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// Location resolves the configured timezone
func (c *Context) Location(ctx context.Context) (*time.Location, error) {
	settings := c.Settings(ctx)
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}
	return loc, nil
}

// Board returns the board for the loaded store, creating and refreshing it
// on first use.
func (c *Context) Board(ctx context.Context) (*board.Board, error) {
	if c.board != nil {
		return c.board, nil
	}
	loc, err := c.Location(ctx)
	if err != nil {
		return nil, err
	}
	opts := []board.Option{board.WithLocation(loc)}
	if c.Now != nil {
		opts = append(opts, board.WithClock(c.Now))
	}
	b := board.New(c.Store, opts...)
	if _, err := b.Refresh(ctx); err != nil {
		return nil, err
	}
	c.board = b
	return b, nil
}

// ResolveDate parses a --date value in the board timezone
func (c *Context) ResolveDate(b *board.Board, value string) (time.Time, error) {
	return utils.ResolveDate(value, b.Now(), b.Location())
}

// IsFileStore reports whether the store is backed by a local database file
func (c *Context) IsFileStore() bool {
	path := c.Store.GetConfigPath()
	if path == "" || path == "postgresql" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileStore() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
