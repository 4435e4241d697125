// Package board is the stateful service between storage and the
// presentation layer. It serializes mutations, commits them through the
// storage provider and exposes a fresh Snapshot after each commit.
package board

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tracklit/internal/completion"
	"github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/utils"
	"github.com/julianstephens/tracklit/internal/validation"
)

// Clock returns the current time
type Clock func() time.Time

// Option configures a Board
type Option func(*Board)

// WithLocation sets the timezone that calendar days are resolved in
func WithLocation(loc *time.Location) Option {
	return func(b *Board) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// WithClock replaces time.Now
func WithClock(clock Clock) Option {
	return func(b *Board) {
		if clock != nil {
			b.now = clock
		}
	}
}

// WithIDGenerator replaces the UUID generator used for new trackers
func WithIDGenerator(gen func() string) Option {
	return func(b *Board) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// TrackerInput is the user-editable part of a tracker
type TrackerInput struct {
	Name     string
	Emoji    string
	Color    string
	Schedule models.Schedule
	Category string
}

// Board owns the current Snapshot
type Board struct {
	mu        sync.Mutex
	store     storage.Provider
	loc       *time.Location
	now       Clock
	newID     func() string
	validator *validation.Validator
	snap      Snapshot
}

// New creates a board over a loaded storage provider. Call Refresh before
// reading the snapshot.
func New(store storage.Provider, opts ...Option) *Board {
	b := &Board{
		store:     store,
		loc:       time.Local,
		now:       time.Now,
		newID:     uuid.NewString,
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.snap = Snapshot{Location: b.loc, now: b.now, index: completion.New(b.loc)}
	return b
}

// Location returns the timezone days are resolved in
func (b *Board) Location() *time.Location {
	return b.loc
}

// Now returns the current time in the board location
func (b *Board) Now() time.Time {
	return b.now().In(b.loc)
}

// Snapshot returns the last committed snapshot
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

// View is shorthand for Snapshot().View(q)
func (b *Board) View(q filter.Query) View {
	return b.Snapshot().View(q)
}

// Refresh reloads the snapshot from storage
func (b *Board) Refresh(ctx context.Context) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap, err := b.load(ctx)
	if err != nil {
		return b.snap, err
	}
	b.snap = snap
	return snap, nil
}

func (b *Board) load(ctx context.Context) (Snapshot, error) {
	categories, err := b.store.LoadCategories(ctx)
	if err != nil {
		return Snapshot{}, errors.Persistence("load categories", err)
	}
	trackers, err := b.store.LoadTrackers(ctx)
	if err != nil {
		return Snapshot{}, errors.Persistence("load trackers", err)
	}
	records, err := b.store.LoadRecords(ctx, b.loc)
	if err != nil {
		return Snapshot{}, errors.Persistence("load records", err)
	}

	known := make(map[string]bool, len(trackers))
	for _, t := range trackers {
		known[t.ID] = true
	}
	kept := records[:0:0]
	for _, r := range records {
		if !known[r.TrackerID] {
			logger.Debug("Dropping orphaned record", "tracker", r.TrackerID, "day", r.Day(b.loc))
			continue
		}
		kept = append(kept, r)
	}

	return Snapshot{
		Categories: categories,
		Trackers:   trackers,
		Grouped:    filter.Group(categories, trackers),
		Location:   b.loc,
		LoadedAt:   b.Now(),
		index:      completion.Build(b.loc, kept),
		now:        b.now,
	}, nil
}

// commit runs op against storage and, when it succeeds, swaps in a freshly
// loaded snapshot. On failure the previous snapshot stays exposed.
// b.mu must be held.
func (b *Board) commit(ctx context.Context, op string, fn func() error) (Snapshot, error) {
	if err := fn(); err != nil {
		logger.Debug("Mutation failed", "op", op, "error", err)
		return b.snap, errors.Persistence(op, err)
	}
	snap, err := b.load(ctx)
	if err != nil {
		logger.Error("Reload after commit failed", "op", op, "error", err)
		return b.snap, err
	}
	b.snap = snap
	return snap, nil
}

func normalize(in TrackerInput) TrackerInput {
	in.Name = validation.NormalizeTitle(in.Name)
	in.Category = validation.NormalizeTitle(in.Category)
	in.Emoji = validation.NormalizeTitle(in.Emoji)
	in.Color = validation.NormalizeTitle(in.Color)
	in.Schedule = models.NewSchedule(in.Schedule...)
	return in
}

func (b *Board) validTracker(t models.Tracker) error {
	result := b.validator.ValidateTracker(t)
	return result.Err()
}

// CreateTracker adds a tracker with a new ID. Its category is created when
// it does not exist yet.
func (b *Board) CreateTracker(ctx context.Context, in TrackerInput) (models.Tracker, Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	in = normalize(in)
	tracker := models.Tracker{
		ID:        b.newID(),
		Name:      in.Name,
		Emoji:     in.Emoji,
		Color:     in.Color,
		Schedule:  in.Schedule,
		Category:  in.Category,
		CreatedAt: b.now().UTC(),
	}
	if err := b.validTracker(tracker); err != nil {
		return models.Tracker{}, b.snap, err
	}

	snap, err := b.commit(ctx, "create tracker", func() error {
		return b.store.CreateTracker(ctx, tracker)
	})
	if err != nil {
		return models.Tracker{}, snap, err
	}
	logger.Info("Created tracker", "id", tracker.ID, "name", tracker.Name, "category", tracker.Category)
	return tracker, snap, nil
}

// UpdateTracker replaces the name, emoji, color, schedule and category of a tracker
func (b *Board) UpdateTracker(ctx context.Context, id string, in TrackerInput) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.snap.Tracker(id)
	if !ok {
		return b.snap, errors.NotFound("tracker", id)
	}

	in = normalize(in)
	existing.Name = in.Name
	existing.Emoji = in.Emoji
	existing.Color = in.Color
	existing.Schedule = in.Schedule
	existing.Category = in.Category
	if err := b.validTracker(existing); err != nil {
		return b.snap, err
	}

	return b.commit(ctx, "update tracker", func() error {
		return b.store.UpdateTracker(ctx, existing)
	})
}

// DeleteTracker removes a tracker and its completions
func (b *Board) DeleteTracker(ctx context.Context, id string) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.snap.Tracker(id); !ok {
		return b.snap, errors.NotFound("tracker", id)
	}
	return b.commit(ctx, "delete tracker", func() error {
		return b.store.DeleteTracker(ctx, id)
	})
}

// CreateCategory adds an empty category. Duplicate titles are rejected
// before storage is touched.
func (b *Board) CreateCategory(ctx context.Context, title string) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	title = validation.NormalizeTitle(title)
	result := b.validator.ValidateCategoryTitle(title, b.snap.Categories)
	if err := result.Err(); err != nil {
		return b.snap, err
	}
	return b.commit(ctx, "create category", func() error {
		return b.store.CreateCategory(ctx, models.Category{Title: title, CreatedAt: b.now().UTC()})
	})
}

// RenameCategory changes a category title and moves its trackers along
func (b *Board) RenameCategory(ctx context.Context, oldTitle, newTitle string) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldTitle = validation.NormalizeTitle(oldTitle)
	newTitle = validation.NormalizeTitle(newTitle)
	if !b.snap.HasCategory(oldTitle) {
		return b.snap, errors.NotFound("category", oldTitle)
	}
	if oldTitle == newTitle {
		return b.snap, nil
	}

	others := make([]models.Category, 0, len(b.snap.Categories))
	for _, c := range b.snap.Categories {
		if c.Title != oldTitle {
			others = append(others, c)
		}
	}
	result := b.validator.ValidateCategoryTitle(newTitle, others)
	if err := result.Err(); err != nil {
		return b.snap, err
	}

	return b.commit(ctx, "rename category", func() error {
		return b.store.RenameCategory(ctx, oldTitle, newTitle)
	})
}

// DeleteCategory removes a category together with its trackers and their completions
func (b *Board) DeleteCategory(ctx context.Context, title string) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	title = validation.NormalizeTitle(title)
	if !b.snap.HasCategory(title) {
		return b.snap, errors.NotFound("category", title)
	}
	return b.commit(ctx, "delete category", func() error {
		return b.store.DeleteCategory(ctx, title)
	})
}

// ToggleCompletion flips the completion of a tracker on date's calendar day
// and returns the new state. Days after today are rejected.
func (b *Board) ToggleCompletion(ctx context.Context, trackerID string, date time.Time) (bool, Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.snap.Tracker(trackerID); !ok {
		return false, b.snap, errors.NotFound("tracker", trackerID)
	}
	if utils.IsAfterDay(date, b.now(), b.loc) {
		return false, b.snap, errors.ErrFutureDate
	}

	day := models.DayKey(date, b.loc)
	completed := b.snap.IsCompleted(trackerID, date)
	snap, err := b.commit(ctx, "toggle completion", func() error {
		if completed {
			return b.store.DeleteRecord(ctx, trackerID, day)
		}
		return b.store.InsertRecord(ctx, trackerID, day)
	})
	if err != nil {
		return completed, snap, err
	}
	return snap.IsCompleted(trackerID, date), snap, nil
}

// Check loads the stored data without dropping anything and reports
// inconsistencies such as orphaned records.
func (b *Board) Check(ctx context.Context) (validation.ValidationResult, error) {
	categories, err := b.store.LoadCategories(ctx)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	trackers, err := b.store.LoadTrackers(ctx)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	records, err := b.store.LoadRecords(ctx, b.loc)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return b.validator.ValidateSnapshot(categories, trackers, records, b.loc), nil
}

// Fix deletes orphaned records found by Check and reloads the snapshot
func (b *Board) Fix(ctx context.Context, result validation.ValidationResult) ([]validation.FixAction, error) {
	actions := validation.AutoFixOrphanedRecords(result.Conflicts, func(trackerID, day string) error {
		return b.store.DeleteRecord(ctx, trackerID, day)
	})
	_, err := b.Refresh(ctx)
	return actions, err
}
