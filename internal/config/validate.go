package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/stormcad/internal/logging"
)

var snapTypeNames = map[string]bool{
	"node": true, "end": true, "middle": true, "center": true, "quadrant": true,
}

// Validate checks every setting and returns ValidationErrors listing all
// problems, or nil.
func (s *Settings) Validate() error {
	var errs ValidationErrors
	add := func(field string, value any, msg string) {
		errs = append(errs, &ValidationError{Field: field, Value: value, Message: msg})
	}

	positive := []struct {
		field string
		value int
	}{
		{"display.pickBoxSize", s.Display.PickBoxSize},
		{"display.controlPointSize", s.Display.ControlPointSize},
		{"display.snapDistance", s.Display.SnapDistance},
	}
	for _, p := range positive {
		if p.value <= 0 {
			add(p.field, p.value, "must be positive")
		}
	}

	if !validFloatVerb(s.Format.Number) {
		add("format.number", s.Format.Number, "must format a single float")
	}
	if !validFloatVerb(s.Format.Angle) {
		add("format.angle", s.Format.Angle, "must format a single float")
	}

	for _, name := range s.Snap.Types {
		if !snapTypeNames[strings.ToLower(name)] {
			add("snap.types", name, "unknown snap type")
		}
	}

	for field, hex := range s.Theme.fields() {
		if _, err := colorful.Hex(hex); err != nil {
			add("theme."+field, hex, "must be a #rrggbb color")
		}
	}

	if _, ok := logging.LookupLevel(s.Logging.Level); !ok {
		add("logging.level", s.Logging.Level, "unknown level")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validFloatVerb(format string) bool {
	out := fmt.Sprintf(format, 1.5)
	return strings.Count(format, "%")-2*strings.Count(format, "%%") == 1 &&
		!strings.Contains(out, "%!")
}
