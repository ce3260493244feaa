// Package task defines the task record and the pure computations over a
// collection of tasks.
package task

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLen       = 30
	MaxDescriptionLen = 150
)

// Task is one to-do entry. An empty Description means the task has none.
type Task struct {
	ID          string
	Title       string
	Description string
	Created     time.Time
	Complete    bool
}

// HasDescription reports whether a description is present.
func (t Task) HasDescription() bool {
	return t.Description != ""
}

// Len counts characters, not bytes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate drops every character past max.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if Len(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}

// ValidTitle reports whether title is non-empty after trimming and fits
// within MaxTitleLen.
func ValidTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	return trimmed != "" && Len(title) <= MaxTitleLen
}

// ValidDescription accepts the empty description.
func ValidDescription(description string) bool {
	return Len(description) <= MaxDescriptionLen
}

// NormalizeDescription trims description; whitespace-only becomes absent.
func NormalizeDescription(description string) string {
	return strings.TrimSpace(description)
}
