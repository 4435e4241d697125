package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekDay is a day of the week ordered Monday=1 through Sunday=7.
type WeekDay int

const (
	Monday WeekDay = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekDays lists the days in display order
var AllWeekDays = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekDayNames = [...]string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Valid reports whether d is one of the seven days
func (d WeekDay) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Order returns the 1-based position of the day, Monday first
func (d WeekDay) Order() int {
	return int(d)
}

// String returns the stable identity used for persistence, e.g. "monday"
func (d WeekDay) String() string {
	if !d.Valid() {
		return fmt.Sprintf("WeekDay(%d)", int(d))
	}
	return weekDayNames[d]
}

// Long returns the display name, e.g. "Monday"
func (d WeekDay) Long() string {
	if !d.Valid() {
		return d.String()
	}
	name := weekDayNames[d]
	return strings.ToUpper(name[:1]) + name[1:]
}

// Short returns the abbreviated display name, e.g. "Mon"
func (d WeekDay) Short() string {
	if !d.Valid() {
		return d.String()
	}
	return d.Long()[:3]
}

// MarshalText encodes the day as its identity string
func (d WeekDay) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes any form accepted by ParseWeekDay
func (d *WeekDay) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekDayFromTime maps Go's Sunday=0 weekday onto the Monday-first ordering
func WeekDayFromTime(wd time.Weekday) WeekDay {
	return WeekDay((int(wd)+6)%7 + 1)
}

// WeekDayOf returns the weekday of t in t's own location
func WeekDayOf(t time.Time) WeekDay {
	return WeekDayFromTime(t.Weekday())
}

// WeekDayFromCalendarIndex maps a calendar weekday index where Sunday=1 and
// Saturday=7 onto the Monday-first ordering.
func WeekDayFromCalendarIndex(index int) (WeekDay, error) {
	if index < 1 || index > 7 {
		return 0, fmt.Errorf("calendar weekday index %d out of range 1-7", index)
	}
	return WeekDayFromTime(time.Weekday(index - 1)), nil
}

// ParseWeekDay accepts identity ("monday"), long or short display names
// in any case, or the order number 1-7.
func ParseWeekDay(s string) (WeekDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty weekday")
	}
	if n, err := strconv.Atoi(s); err == nil {
		d := WeekDay(n)
		if !d.Valid() {
			return 0, fmt.Errorf("invalid weekday: %s", s)
		}
		return d, nil
	}
	for _, d := range AllWeekDays {
		name := weekDayNames[d]
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}
