package config

import (
	"fmt"

	"github.com/dshills/stormcad/internal/geom"
)

// FormatNumber formats a length or coordinate with Format.Number.
func (s *Settings) FormatNumber(v float64) string {
	return fmt.Sprintf(s.Format.Number, v)
}

// FormatPoint formats a point as "x, y".
func (s *Settings) FormatPoint(p geom.Point) string {
	return s.FormatNumber(p.X) + ", " + s.FormatNumber(p.Y)
}

// FormatAngle formats an angle given in radians, in degrees.
func (s *Settings) FormatAngle(rad float64) string {
	return fmt.Sprintf(s.Format.Angle, geom.Degrees(rad))
}
