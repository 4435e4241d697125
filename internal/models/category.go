package models

import "time"

// Category is a persisted category. The title is its natural key.
type Category struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackerCategory is a category together with the trackers grouped under it.
// It is derived from a join and never stored.
type TrackerCategory struct {
	Title    string    `json:"title"`
	Trackers []Tracker `json:"trackers"`
}
