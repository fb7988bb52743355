package mouse

import (
	"sync"
	"time"

	"github.com/dshills/stormcad/internal/input/key"
)

// Config bounds how far apart in time and cells two presses may be and
// still count as one multi-click.
type Config struct {
	DoubleClickTime     time.Duration
	DoubleClickDistance int
}

// DefaultConfig matches common desktop double-click settings.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 1,
	}
}

// Tracker converts button-state snapshots, as reported by terminal
// backends, into edge events. It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	config Config

	held    Button
	last    Position
	hasLast bool

	// click sequence
	clickPos   Position
	clickTime  time.Time
	clickCount int
}

// NewTracker creates a tracker.
func NewTracker(config Config) *Tracker {
	return &Tracker{config: config}
}

// Update records the pointer at pos with button currently down (ButtonNone
// when all are up) and returns the resulting events in dispatch order:
// release, then move or drag, then press.
func (t *Tracker) Update(pos Position, button Button, mods key.Modifier, ts time.Time) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ts.IsZero() {
		ts = time.Now()
	}
	mk := func(b Button, a Action) Event {
		return Event{Position: pos, Button: b, Modifiers: mods, Action: a, Timestamp: ts}
	}

	var events []Event

	if t.held != ButtonNone && t.held != button {
		events = append(events, mk(t.held, ActionRelease))
		t.held = ButtonNone
	}

	if !t.hasLast || pos != t.last {
		if t.held != ButtonNone {
			events = append(events, mk(t.held, ActionDrag))
		} else {
			events = append(events, mk(ButtonNone, ActionMove))
		}
		t.last = pos
		t.hasLast = true
	}

	if button != ButtonNone && button != t.held {
		ev := mk(button, ActionPress)
		if button.IsScroll() {
			ev.Clicks = 1
		} else {
			ev.Clicks = t.recordClick(pos, ts)
			t.held = button
		}
		events = append(events, ev)
	}

	return events
}

// Held returns the button currently held down.
func (t *Tracker) Held() Button {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held
}

// Reset clears all tracking state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = ButtonNone
	t.hasLast = false
	t.clickCount = 0
	t.clickTime = time.Time{}
}

// recordClick returns the click count (1, 2 or 3), wrapping after 3.
func (t *Tracker) recordClick(pos Position, ts time.Time) int {
	elapsed := ts.Sub(t.clickTime)
	inSequence := t.clickCount > 0 &&
		elapsed >= 0 && elapsed <= t.config.DoubleClickTime &&
		pos.Distance(t.clickPos) <= t.config.DoubleClickDistance

	if inSequence {
		t.clickCount++
		if t.clickCount > 3 {
			t.clickCount = 1
		}
	} else {
		t.clickCount = 1
	}
	t.clickPos = pos
	t.clickTime = ts
	return t.clickCount
}
