package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptySpec   = errors.New("empty key binding")
	ErrInvalidSpec = errors.New("invalid key binding")
)

// Parse reads a key binding as written in the settings file. Both the
// "Ctrl+Shift+P" form and the angle-bracket "<C-p>" form are accepted;
// a bare name ("F3", "Esc") or a single character binds without
// modifiers. An upper-case character implies Shift unless Ctrl is held,
// in which case it is folded to lower case the way terminals report it.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	words := splitSpec(spec)
	var mods Modifier
	for _, w := range words[:len(words)-1] {
		m := ModifierFromName(w)
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, w, spec)
		}
		mods |= m
	}
	return keyEvent(strings.TrimSpace(words[len(words)-1]), mods)
}

// splitSpec breaks a binding into modifier words followed by the key.
// A lone "+" or "-" is a key, not a separator.
func splitSpec(spec string) []string {
	if len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>' {
		return strings.Split(spec[1:len(spec)-1], "-")
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return strings.Split(spec, "+")
	}
	return []string{spec}
}

func keyEvent(name string, mods Modifier) (Event, error) {
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	switch k := KeyFromName(name); k {
	case KeyNone:
	case KeySpace:
		return NewRuneEvent(' ', mods), nil
	default:
		return NewSpecialEvent(k, mods), nil
	}

	r := []rune(name)
	if len(r) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	c := r[0]
	switch {
	case mods.HasCtrl():
		c = unicode.ToLower(c)
	case unicode.IsUpper(c):
		mods |= ModShift
	}
	return NewRuneEvent(c, mods), nil
}
