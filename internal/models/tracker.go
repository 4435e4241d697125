package models

import "time"

// Tracker is a habit or one-off event the user marks complete per day
type Tracker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji,omitempty"`
	Color     string    `json:"color,omitempty"`
	Schedule  Schedule  `json:"schedule"`
	Category  string    `json:"category"` // title of the owning category
	CreatedAt time.Time `json:"created_at"`
}

// IsRecurring reports whether the tracker has an explicit weekly schedule
func (t Tracker) IsRecurring() bool {
	return !t.Schedule.IsEmpty()
}
