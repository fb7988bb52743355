// Package topic names bus events. A topic is a dot-separated path such as
// "view.cursor.move"; subscription patterns may use "*" for one segment
// and "**" for any number of segments, including none.
package topic

import (
	"slices"
	"strings"
)

// Topic is an event name or a subscription pattern.
type Topic string

const (
	anySegment  = "*"
	anySegments = "**"
)

func (t Topic) String() string { return string(t) }

// IsValid reports whether t is non-empty and has no empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	return !slices.Contains(strings.Split(string(t), "."), "")
}

// Matches reports whether t is selected by pattern.
func (t Topic) Matches(pattern Topic) bool {
	if t == pattern {
		return true
	}
	return match(strings.Split(string(t), "."), strings.Split(string(pattern), "."))
}

func match(name, pat []string) bool {
	for len(pat) > 0 {
		head := pat[0]
		if head == anySegments {
			// Try every possible length for the run.
			for skip := 0; skip <= len(name); skip++ {
				if match(name[skip:], pat[1:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 || (head != anySegment && head != name[0]) {
			return false
		}
		name, pat = name[1:], pat[1:]
	}
	return len(name) == 0
}
