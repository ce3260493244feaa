package task

import (
	"fmt"
	"strings"
)

// FilterMode selects which tasks a view shows.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
)

// FilterModes lists the modes in selector order.
var FilterModes = []FilterMode{FilterAll, FilterActive, FilterCompleted}

// ParseFilterMode accepts any casing and surrounding whitespace.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
	}
}

// Next cycles all -> active -> completed -> all.
func (m FilterMode) Next() FilterMode {
	for i, mode := range FilterModes {
		if mode == m {
			return FilterModes[(i+1)%len(FilterModes)]
		}
	}
	return FilterAll
}

// Filter returns a new slice holding the tasks that match mode, in their
// original order. The input is never modified.
func Filter(tasks []Task, mode FilterMode) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch mode {
		case FilterActive:
			if t.Complete {
				continue
			}
		case FilterCompleted:
			if !t.Complete {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
