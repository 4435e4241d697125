// Package sqlstore holds the SQL shared by the SQLite and PostgreSQL providers.
// Queries are written with "?" placeholders and rebound per driver.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/migration"
	"github.com/julianstephens/tracklit/internal/models"
)

// UniqueViolation reports whether a driver error is a unique constraint failure
type UniqueViolation func(error) bool

// Store implements the data operations of storage.Provider on a *sql.DB
type Store struct {
	db       *sql.DB
	driver   migration.Driver
	isUnique UniqueViolation
}

// New wraps an open database
func New(db *sql.DB, driver migration.Driver, isUnique UniqueViolation) *Store {
	if isUnique == nil {
		isUnique = func(error) bool { return false }
	}
	return &Store{db: db, driver: driver, isUnique: isUnique}
}

// DB returns the underlying handle
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) q(query string) string {
	return migration.Rebind(s.driver, query)
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("%w: storage is not loaded", errors.ErrPersistence)
	}
	return nil
}

// withTx runs fn in a transaction, committing only when fn succeeds
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	if err := s.ready(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Persistence(op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return errors.Persistence(op, err)
	}
	if err := tx.Commit(); err != nil {
		return errors.Persistence(op, err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(constants.TimestampFormat)
}

func parseTimestamp(value string) time.Time {
	t, err := time.Parse(constants.TimestampFormat, value)
	if err != nil {
		logger.Debug("Unparseable timestamp", "value", value, "error", err)
		return time.Time{}
	}
	return t
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return now()
	}
	return t.UTC().Format(constants.TimestampFormat)
}

// Settings

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	if err := s.ready(); err != nil {
		return models.Settings{}, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, errors.Persistence("get settings", err)
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, errors.Persistence("get settings", err)
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, errors.Persistence("get settings", err)
	}
	if len(data) == 0 {
		return models.Settings{}, errors.NotFound("settings", "*")
	}
	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	return s.withTx(ctx, "save settings", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.q(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`))
		if err != nil {
			return err
		}
		defer stmt.Close()

		values := models.SettingsToMap(settings)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := stmt.ExecContext(ctx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Categories

func (s *Store) LoadCategories(ctx context.Context) ([]models.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT title, created_at FROM categories ORDER BY title")
	if err != nil {
		return nil, errors.Persistence("load categories", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var createdAt string
		if err := rows.Scan(&c.Title, &createdAt); err != nil {
			return nil, errors.Persistence("load categories", err)
		}
		c.CreatedAt = parseTimestamp(createdAt)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("load categories", err)
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, category models.Category) error {
	err := s.withTx(ctx, "create category", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, s.q("INSERT INTO categories (title, created_at) VALUES (?, ?)"),
			category.Title, timestamp(category.CreatedAt))
		if err != nil && s.isUnique(err) {
			return errors.Duplicate(category.Title)
		}
		return err
	})
	return err
}

func (s *Store) ensureCategory(ctx context.Context, tx *sql.Tx, title string) error {
	_, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO categories (title, created_at) VALUES (?, ?)
		ON CONFLICT (title) DO NOTHING`), title, now())
	return err
}

func (s *Store) RenameCategory(ctx context.Context, oldTitle, newTitle string) error {
	return s.withTx(ctx, "rename category", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.q("UPDATE categories SET title = ? WHERE title = ?"), newTitle, oldTitle)
		if err != nil {
			if s.isUnique(err) {
				return errors.Duplicate(newTitle)
			}
			return err
		}
		if err := expectRows(res, "category", oldTitle); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, s.q("UPDATE trackers SET category_title = ? WHERE category_title = ?"), newTitle, oldTitle)
		return err
	})
}

func (s *Store) DeleteCategory(ctx context.Context, title string) error {
	return s.withTx(ctx, "delete category", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.q(`
			DELETE FROM records WHERE tracker_id IN (
				SELECT id FROM trackers WHERE category_title = ?
			)`), title); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM trackers WHERE category_title = ?"), title); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, s.q("DELETE FROM categories WHERE title = ?"), title)
		if err != nil {
			return err
		}
		return expectRows(res, "category", title)
	})
}

// Trackers

func (s *Store) LoadTrackers(ctx context.Context) ([]models.Tracker, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, emoji, color, schedule, category_title, created_at
		FROM trackers ORDER BY name, id`)
	if err != nil {
		return nil, errors.Persistence("load trackers", err)
	}
	defer rows.Close()

	var trackers []models.Tracker
	for rows.Next() {
		var t models.Tracker
		var schedule, createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.Emoji, &t.Color, &schedule, &t.Category, &createdAt); err != nil {
			return nil, errors.Persistence("load trackers", err)
		}
		if err := json.Unmarshal([]byte(schedule), &t.Schedule); err != nil {
			logger.Warn("Ignoring malformed tracker schedule", "tracker", t.ID, "error", err)
			t.Schedule = models.Schedule{}
		}
		t.CreatedAt = parseTimestamp(createdAt)
		trackers = append(trackers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("load trackers", err)
	}
	return trackers, nil
}

func encodeSchedule(s models.Schedule) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding schedule: %w", err)
	}
	return string(data), nil
}

func (s *Store) CreateTracker(ctx context.Context, tracker models.Tracker) error {
	schedule, err := encodeSchedule(tracker.Schedule)
	if err != nil {
		return err
	}
	return s.withTx(ctx, "create tracker", func(tx *sql.Tx) error {
		if err := s.ensureCategory(ctx, tx, tracker.Category); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO trackers (id, name, emoji, color, schedule, category_title, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
			tracker.ID, tracker.Name, tracker.Emoji, tracker.Color, schedule, tracker.Category, timestamp(tracker.CreatedAt))
		return err
	})
}

func (s *Store) UpdateTracker(ctx context.Context, tracker models.Tracker) error {
	schedule, err := encodeSchedule(tracker.Schedule)
	if err != nil {
		return err
	}
	return s.withTx(ctx, "update tracker", func(tx *sql.Tx) error {
		if err := s.ensureCategory(ctx, tx, tracker.Category); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, s.q(`
			UPDATE trackers SET name = ?, emoji = ?, color = ?, schedule = ?, category_title = ?
			WHERE id = ?`),
			tracker.Name, tracker.Emoji, tracker.Color, schedule, tracker.Category, tracker.ID)
		if err != nil {
			return err
		}
		return expectRows(res, "tracker", tracker.ID)
	})
}

func (s *Store) DeleteTracker(ctx context.Context, id string) error {
	return s.withTx(ctx, "delete tracker", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM records WHERE tracker_id = ?"), id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, s.q("DELETE FROM trackers WHERE id = ?"), id)
		if err != nil {
			return err
		}
		return expectRows(res, "tracker", id)
	})
}

// Records

func (s *Store) LoadRecords(ctx context.Context, loc *time.Location) ([]models.TrackerRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	rows, err := s.db.QueryContext(ctx, "SELECT tracker_id, day FROM records ORDER BY tracker_id, day")
	if err != nil {
		return nil, errors.Persistence("load records", err)
	}
	defer rows.Close()

	var records []models.TrackerRecord
	for rows.Next() {
		var trackerID, day string
		if err := rows.Scan(&trackerID, &day); err != nil {
			return nil, errors.Persistence("load records", err)
		}
		date, err := time.ParseInLocation(constants.DateFormat, day, loc)
		if err != nil {
			logger.Warn("Skipping record with malformed day", "tracker", trackerID, "day", day)
			continue
		}
		records = append(records, models.TrackerRecord{TrackerID: trackerID, Date: date})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("load records", err)
	}
	return records, nil
}

func (s *Store) InsertRecord(ctx context.Context, trackerID, day string) error {
	return s.withTx(ctx, "insert record", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO records (tracker_id, day, created_at) VALUES (?, ?, ?)
			ON CONFLICT (tracker_id, day) DO NOTHING`), trackerID, day, now())
		return err
	})
}

func (s *Store) DeleteRecord(ctx context.Context, trackerID, day string) error {
	return s.withTx(ctx, "delete record", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, s.q("DELETE FROM records WHERE tracker_id = ? AND day = ?"), trackerID, day)
		return err
	})
}

func expectRows(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound(kind, key)
	}
	return nil
}
