package config

import "github.com/lucasb-eyer/go-colorful"

func (t Theme) fields() map[string]string {
	return map[string]string{
		"background":      t.Background,
		"foreground":      t.Foreground,
		"jig":             t.Jig,
		"selection":       t.Selection,
		"controlPoint":    t.ControlPoint,
		"snapMarker":      t.SnapMarker,
		"windowFill":      t.WindowFill,
		"windowOutline":   t.WindowOutline,
		"crossingFill":    t.CrossingFill,
		"crossingOutline": t.CrossingOutline,
	}
}

// Color parses a theme hex color. Invalid values yield white; Validate
// rejects them before settings are used.
func Color(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// WindowColors returns the fill and outline colors for a selection window
// in window mode (left to right) or crossing mode.
func (t Theme) WindowColors(window bool) (fill, outline colorful.Color) {
	if window {
		return Color(t.WindowFill), Color(t.WindowOutline)
	}
	return Color(t.CrossingFill), Color(t.CrossingOutline)
}
