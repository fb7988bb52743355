package key

import "strings"

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifierOrder is the order modifiers appear in canonical key names.
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModMeta, "Meta"},
	{ModShift, "Shift"},
}

// Has reports whether any bit of mod is set in m.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }

// With adds mod to m.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without clears mod from m.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// names appends the canonical names of the modifiers in m.
func (m Modifier) names(dst []string) []string {
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			dst = append(dst, o.name)
		}
	}
	return dst
}

// String joins the held modifiers with "+", e.g. "Ctrl+Shift".
func (m Modifier) String() string {
	return strings.Join(m.names(nil), "+")
}

// ModifierFromName resolves a modifier written in a shortcut binding.
// Single letters follow the angle-bracket form ("C-", "A-", "S-", "M-").
func ModifierFromName(name string) Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ctrl", "control", "c":
		return ModCtrl
	case "alt", "option", "a":
		return ModAlt
	case "shift", "s":
		return ModShift
	case "meta", "cmd", "super", "m":
		return ModMeta
	}
	return ModNone
}
