package geom

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Parse errors.
var (
	// ErrInvalidNumber indicates text that is not a finite number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidPoint indicates text that is not a point expression.
	ErrInvalidPoint = errors.New("invalid point")

	// ErrInvalidVector indicates text that is not a vector expression.
	ErrInvalidVector = errors.New("invalid vector")
)

// ParseFloat parses trimmed text as a finite float.
func ParseFloat(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidNumber
	}
	return f, nil
}

// ParseVector parses "x,y".
func ParseVector(text string) (Vector, error) {
	x, y, ok := parsePair(text)
	if !ok {
		return Vector{}, ErrInvalidVector
	}
	return Vector{X: x, Y: y}, nil
}

// ParsePoint parses a point expression:
//
//	x,y      absolute coordinates
//	@dx,dy   relative to base
//	@d<a     polar, relative to base, angle in degrees
//
// Relative forms use the origin when base is nil.
func ParsePoint(text string, base *Point) (Point, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Point{}, ErrInvalidPoint
	}

	if !strings.HasPrefix(text, "@") {
		x, y, ok := parsePair(text)
		if !ok {
			return Point{}, ErrInvalidPoint
		}
		return Point{X: x, Y: y}, nil
	}

	var origin Point
	if base != nil {
		origin = *base
	}
	rel := text[1:]

	if dist, ang, found := strings.Cut(rel, "<"); found {
		d, err := ParseFloat(dist)
		if err != nil {
			return Point{}, ErrInvalidPoint
		}
		a, err := ParseFloat(ang)
		if err != nil {
			return Point{}, ErrInvalidPoint
		}
		return origin.Add(Polar(d, Radians(a))), nil
	}

	dx, dy, ok := parsePair(rel)
	if !ok {
		return Point{}, ErrInvalidPoint
	}
	return origin.Add(Vector{X: dx, Y: dy}), nil
}

func parsePair(text string) (float64, float64, bool) {
	xs, ys, found := strings.Cut(text, ",")
	if !found {
		return 0, 0, false
	}
	x, err := ParseFloat(xs)
	if err != nil {
		return 0, 0, false
	}
	y, err := ParseFloat(ys)
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}
