package storage

import (
	"context"
	"time"

	"github.com/julianstephens/tracklit/internal/models"
)

// Provider is the persistence collaborator behind the board. Every mutation
// either commits fully or leaves the stored state unchanged.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Snapshot reads
	LoadTrackers(ctx context.Context) ([]models.Tracker, error)
	LoadCategories(ctx context.Context) ([]models.Category, error)
	// LoadRecords returns completions with each date at midnight of its day in loc
	LoadRecords(ctx context.Context, loc *time.Location) ([]models.TrackerRecord, error)

	// Trackers. Creating or updating a tracker creates its category when missing.
	CreateTracker(ctx context.Context, tracker models.Tracker) error
	UpdateTracker(ctx context.Context, tracker models.Tracker) error
	DeleteTracker(ctx context.Context, id string) error

	// Categories
	CreateCategory(ctx context.Context, category models.Category) error
	RenameCategory(ctx context.Context, oldTitle, newTitle string) error
	DeleteCategory(ctx context.Context, title string) error

	// Records. day is a YYYY-MM-DD key; inserting an existing day is a no-op.
	InsertRecord(ctx context.Context, trackerID, day string) error
	DeleteRecord(ctx context.Context, trackerID, day string) error

	// Utils
	GetConfigPath() string
}
