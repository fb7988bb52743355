package key

import (
	"strings"
	"time"
	"unicode"
)

// Event is one key press as delivered by the terminal.
type Event struct {
	Key       Key
	Rune      rune // set when Key is KeyRune
	Modifiers Modifier
	Timestamp time.Time
}

// NewRuneEvent builds a character event.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewSpecialEvent builds an event for a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods, Timestamp: time.Now()}
}

func (e Event) IsRune() bool { return e.Key == KeyRune && e.Rune != 0 }

// IsChar reports whether the event would type a printable character.
// Ctrl, Alt and Meta chords never do.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// IsSpace matches the space bar in either of its terminal encodings.
func (e Event) IsSpace() bool {
	return e.Key == KeySpace || (e.Key == KeyRune && e.Rune == ' ')
}

// IsEscape ignores modifiers; terminals sometimes report Escape with Alt.
func (e Event) IsEscape() bool { return e.Key == KeyEscape }
func (e Event) IsEnter() bool { return e.Key == KeyEnter }
func (e Event) IsBackspace() bool { return e.Key == KeyBackspace }

// Equals compares two events ignoring their timestamps.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}

// String returns a canonical string such as "a", "Enter" or "Ctrl+z".
// Shift is folded into the rune for character keys.
func (e Event) String() string {
	mods := e.Modifiers
	if e.IsRune() {
		mods = mods.Without(ModShift)
	}
	parts := mods.names(make([]string, 0, 4))
	switch {
	case e.IsSpace():
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "+")
}
