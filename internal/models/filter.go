package models

import (
	"fmt"
	"strings"
)

// FilterMode narrows the visible trackers by completion state
type FilterMode string

const (
	FilterAll         FilterMode = "all"
	FilterToday       FilterMode = "today"
	FilterCompleted   FilterMode = "completed"
	FilterIncompleted FilterMode = "incompleted"
)

// FilterModes lists the modes in menu order
var FilterModes = []FilterMode{FilterAll, FilterToday, FilterCompleted, FilterIncompleted}

// ParseFilterMode parses a filter mode name; an empty string means FilterAll
func ParseFilterMode(s string) (FilterMode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return FilterAll, nil
	}
	if s == "incomplete" {
		return FilterIncompleted, nil
	}
	for _, m := range FilterModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid filter mode %q (expected all, today, completed or incompleted)", s)
}

// Next returns the following mode in menu order, wrapping around
func (m FilterMode) Next() FilterMode {
	for i, mode := range FilterModes {
		if mode == m {
			return FilterModes[(i+1)%len(FilterModes)]
		}
	}
	return FilterAll
}

// Label returns the menu label for the mode
func (m FilterMode) Label() string {
	switch m {
	case FilterToday:
		return "Trackers for today"
	case FilterCompleted:
		return "Completed"
	case FilterIncompleted:
		return "Not completed"
	default:
		return "All trackers"
	}
}

// Narrows reports whether the mode hides trackers by completion state
func (m FilterMode) Narrows() bool {
	return m == FilterCompleted || m == FilterIncompleted
}
