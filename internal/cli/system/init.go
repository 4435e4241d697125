package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/completion"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/storage/postgres"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy trackers, categories and completions from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	cctx := context.Background()

	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(cctx); err != nil {
		return err
	}
	ctx.Printf("Initialized tracklit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(cctx, ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

// OpenSource returns the store for a path or PostgreSQL connection string
func OpenSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use %s or .pgpass instead", constants.ConnectionEnvVar)
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(source), nil
}

func (c *InitCmd) copyData(cctx context.Context, ctx *cli.Context, source string) error {
	src, err := OpenSource(source)
	if err != nil {
		return err
	}
	if err := src.Load(cctx); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	return CopyData(cctx, src, ctx.Store, func(kind string, n int) {
		ctx.Printf("  Copied %d %s\n", n, kind)
	})
}

// CopyData copies settings, categories, trackers and completions from src
// into dst. Existing completions in dst are kept.
func CopyData(ctx context.Context, src, dst storage.Provider, report func(kind string, n int)) error {
	settings, err := src.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	categories, err := src.LoadCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to get categories from source: %w", err)
	}
	for _, category := range categories {
		if err := dst.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to add category %q: %w", category.Title, err)
		}
	}
	report("categories", len(categories))

	trackers, err := src.LoadTrackers(ctx)
	if err != nil {
		return fmt.Errorf("failed to get trackers from source: %w", err)
	}
	for _, tracker := range trackers {
		if err := dst.CreateTracker(ctx, tracker); err != nil {
			return fmt.Errorf("failed to add tracker %s: %w", tracker.ID, err)
		}
	}
	report("trackers", len(trackers))

	// day keys are stored as-is, so read them back in UTC to keep them unchanged
	loaded, err := src.LoadRecords(ctx, time.UTC)
	if err != nil {
		return fmt.Errorf("failed to get completions from source: %w", err)
	}
	records := completion.Build(time.UTC, loaded).Records()
	for _, record := range records {
		day := models.DayKey(record.Date, time.UTC)
		if err := dst.InsertRecord(ctx, record.TrackerID, day); err != nil {
			return fmt.Errorf("failed to add completion %s/%s: %w", record.TrackerID, day, err)
		}
	}
	report("completions", len(records))

	return nil
}
