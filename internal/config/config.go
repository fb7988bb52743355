// Package config holds stormcad's user settings: display sizes used for
// picking and snapping, number formats for prompts, theme colors for
// previews and selection windows, snapping behaviour and key shortcuts.
//
// Settings are built from defaults, then a TOML or YAML file, then
// STORMCAD_ environment variables. A running getter reads a Settings
// value that is never mutated; reloads produce a new value.
package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/stormcad/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "STORMCAD_"

// Display holds pixel sizes used for hit testing.
type Display struct {
	// PickBoxSize is the pick box edge in screen pixels.
	PickBoxSize int `toml:"pickBoxSize" yaml:"pickBoxSize"`
	// ControlPointSize is the drawn control point handle size in pixels.
	ControlPointSize int `toml:"controlPointSize" yaml:"controlPointSize"`
	// SnapDistance is the snap capture radius in pixels.
	SnapDistance int `toml:"snapDistance" yaml:"snapDistance"`
}

// Format holds fmt verbs used when echoing values in the prompt.
type Format struct {
	// Number formats a single coordinate or distance, e.g. "%.4f".
	Number string `toml:"number" yaml:"number"`
	// Angle formats an angle in degrees, e.g. "%.2f°".
	Angle string `toml:"angle" yaml:"angle"`
}

// Snap controls object snapping.
type Snap struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Types lists active snap kinds: node, end, middle, center, quadrant.
	Types []string `toml:"types" yaml:"types"`
}

// Theme holds hex colors for transient geometry.
type Theme struct {
	Background      string `toml:"background" yaml:"background"`
	Foreground      string `toml:"foreground" yaml:"foreground"`
	Jig             string `toml:"jig" yaml:"jig"`
	Selection       string `toml:"selection" yaml:"selection"`
	ControlPoint    string `toml:"controlPoint" yaml:"controlPoint"`
	SnapMarker      string `toml:"snapMarker" yaml:"snapMarker"`
	WindowFill      string `toml:"windowFill" yaml:"windowFill"`
	WindowOutline   string `toml:"windowOutline" yaml:"windowOutline"`
	CrossingFill    string `toml:"crossingFill" yaml:"crossingFill"`
	CrossingOutline string `toml:"crossingOutline" yaml:"crossingOutline"`
}

// Logging configures the logger.
type Logging struct {
	Level string `toml:"level" yaml:"level"`
}

// Settings is the complete user configuration.
type Settings struct {
	Display Display `toml:"display" yaml:"display"`
	Format  Format  `toml:"format" yaml:"format"`
	Snap    Snap    `toml:"snap" yaml:"snap"`
	Theme   Theme   `toml:"theme" yaml:"theme"`
	Logging Logging `toml:"logging" yaml:"logging"`
	// Keys maps key specifications such as "F3" or "Ctrl+L" to command names.
	Keys map[string]string `toml:"keys" yaml:"keys"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Display: Display{
			PickBoxSize:      4,
			ControlPointSize: 6,
			SnapDistance:     10,
		},
		Format: Format{
			Number: "%.4f",
			Angle:  "%.2f°",
		},
		Snap: Snap{
			Enabled: true,
			Types:   []string{"node", "end", "middle", "center", "quadrant"},
		},
		Theme: Theme{
			Background:      "#1e1e1e",
			Foreground:      "#d4d4d4",
			Jig:             "#ffb000",
			Selection:       "#3c8cff",
			ControlPoint:    "#00c8ff",
			SnapMarker:      "#ff00ff",
			WindowFill:      "#1e3c78",
			WindowOutline:   "#5082ff",
			CrossingFill:    "#1e5a28",
			CrossingOutline: "#50dc64",
		},
		Logging: Logging{Level: "info"},
		Keys: map[string]string{
			"F3":     "snap",
			"Ctrl+L": "line",
			"Ctrl+E": "erase",
		},
	}
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Snap.Types = slices.Clone(s.Snap.Types)
	c.Keys = maps.Clone(s.Keys)
	return &c
}

// Load builds settings from defaults, the file at path (TOML or YAML by
// extension; a missing file is not an error; an empty path skips the
// file) and STORMCAD_ environment variables, then validates the result.
func Load(path string) (*Settings, error) {
	return load(loader.DefaultFS(), path, loader.NewEnvLoader(EnvPrefix))
}

func load(fsys loader.FileSystem, path string, env loader.Loader) (*Settings, error) {
	merged := map[string]any{}

	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		fileCfg, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	if env != nil {
		envCfg, err := env.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, envCfg)
	}

	s, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromMap decodes a generic configuration map over the defaults.
// Unknown keys are rejected.
func FromMap(m map[string]any) (*Settings, error) {
	s := Default()
	if len(m) == 0 {
		return s, nil
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("config: encoding merged settings: %w", err)
	}

	// Keys replaces the defaults rather than merging with them.
	if _, ok := m["keys"]; ok {
		s.Keys = nil
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("config: decoding settings: %w", err)
	}
	return s, nil
}
