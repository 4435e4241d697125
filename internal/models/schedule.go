package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Schedule is the set of weekdays a tracker recurs on. It is kept unique and
// sorted Monday first. An empty schedule means the tracker is due every day.
type Schedule []WeekDay

// NewSchedule builds a schedule from days, dropping duplicates and invalid values
func NewSchedule(days ...WeekDay) Schedule {
	seen := make(map[WeekDay]bool, len(days))
	s := make(Schedule, 0, len(days))
	for _, d := range days {
		if !d.Valid() || seen[d] {
			continue
		}
		seen[d] = true
		s = append(s, d)
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Order() < s[j].Order() })
	return s
}

// ParseSchedule parses a comma-separated list of weekdays. The keywords
// "daily" and "every day" (or an empty string) produce an empty schedule;
// "weekdays" and "weekends" expand to their days.
func ParseSchedule(input string) (Schedule, error) {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	switch trimmed {
	case "", "daily", "every day", "everyday":
		return Schedule{}, nil
	case "weekdays":
		return NewSchedule(Monday, Tuesday, Wednesday, Thursday, Friday), nil
	case "weekends":
		return NewSchedule(Saturday, Sunday), nil
	}

	var days []WeekDay
	for _, part := range strings.Split(trimmed, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseWeekDay(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return NewSchedule(days...), nil
}

// Contains reports whether d is part of the schedule
func (s Schedule) Contains(d WeekDay) bool {
	for _, day := range s {
		if day == d {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no weekdays are selected
func (s Schedule) IsEmpty() bool {
	return len(s) == 0
}

// String renders the schedule for display, e.g. "Mon, Wed"
func (s Schedule) String() string {
	if s.IsEmpty() {
		return "every day"
	}
	if len(s) == len(AllWeekDays) {
		return "every day of the week"
	}
	names := make([]string, 0, len(s))
	for _, d := range s {
		names = append(names, d.Short())
	}
	return strings.Join(names, ", ")
}

// MarshalJSON encodes the schedule as an array of weekday identities
func (s Schedule) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(s))
	for _, d := range NewSchedule(s...) {
		names = append(names, d.String())
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes an array of weekday identities. Unknown entries are
// skipped so that a schedule written by a newer version still loads.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("decoding schedule: %w", err)
	}
	days := make([]WeekDay, 0, len(names))
	for _, name := range names {
		if d, err := ParseWeekDay(name); err == nil {
			days = append(days, d)
		}
	}
	*s = NewSchedule(days...)
	return nil
}
