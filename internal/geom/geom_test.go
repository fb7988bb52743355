package geom

import (
	"errors"
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVectorAngleAndLength(t *testing.T) {
	v := Pt(3, 4).Sub(Pt(0, 0))
	if v.Length() != 5 {
		t.Errorf("Length() = %v, want 5", v.Length())
	}
	if !near(Vec(0, 1).Angle(), math.Pi/2) {
		t.Errorf("Angle() = %v, want π/2", Vec(0, 1).Angle())
	}
}

func TestRotationAboutPoint(t *testing.T) {
	m := Rotation(math.Pi/2, Pt(1, 1))
	got := Pt(2, 1).Transform(m)
	if !got.Equal(Pt(1, 2)) {
		t.Errorf("rotated point = %v, want 1,2", got)
	}
}

func TestMultiplyOrder(t *testing.T) {
	m := Translation(Vec(10, 0)).Multiply(Scaling(2, Pt(0, 0)))
	got := Pt(1, 1).Transform(m)
	if !got.Equal(Pt(12, 2)) {
		t.Errorf("got %v, want 12,2", got)
	}
	if !Identity().IsIdentity() {
		t.Error("Identity() is not identity")
	}
}

func TestExtents(t *testing.T) {
	var empty Extents
	if !empty.IsEmpty() {
		t.Fatal("zero Extents should be empty")
	}

	win := FromPoints(Pt(5, 5), Pt(0, 0))
	if win.Min != Pt(0, 0) || win.Max != Pt(5, 5) {
		t.Fatalf("FromPoints not normalized: %+v", win)
	}

	inside := FromPoints(Pt(1, 1), Pt(2, 2))
	straddle := FromPoints(Pt(4, 4), Pt(6, 6))
	outside := FromPoints(Pt(7, 7), Pt(8, 8))

	tests := []struct {
		name       string
		other      Extents
		contains   bool
		intersects bool
	}{
		{"inside", inside, true, true},
		{"straddle", straddle, false, true},
		{"outside", outside, false, false},
		{"empty", empty, false, false},
		{"same", win, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := win.Contains(tt.other); got != tt.contains {
				t.Errorf("Contains = %v, want %v", got, tt.contains)
			}
			if got := win.Intersects(tt.other); got != tt.intersects {
				t.Errorf("Intersects = %v, want %v", got, tt.intersects)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	base := Pt(10, 10)
	tests := []struct {
		text string
		base *Point
		want Point
		err  error
	}{
		{"3,4", nil, Pt(3, 4), nil},
		{" 3 , -4 ", &base, Pt(3, -4), nil},
		{"@1,2", &base, Pt(11, 12), nil},
		{"@1,2", nil, Pt(1, 2), nil},
		{"@5<90", &base, Pt(10, 15), nil},
		{"", nil, Point{}, ErrInvalidPoint},
		{"abc", nil, Point{}, ErrInvalidPoint},
		{"1,", nil, Point{}, ErrInvalidPoint},
		{"@x<3", nil, Point{}, ErrInvalidPoint},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParsePoint(tt.text, tt.base)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFloatRejectsNonFinite(t *testing.T) {
	for _, s := range []string{"NaN", "Inf", "-Inf", "1e", ""} {
		if _, err := ParseFloat(s); err == nil {
			t.Errorf("ParseFloat(%q) succeeded", s)
		}
	}
	if f, err := ParseFloat(" 2.5 "); err != nil || f != 2.5 {
		t.Errorf("ParseFloat(\" 2.5 \") = %v, %v", f, err)
	}
}

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(-math.Pi / 2); !near(got, 3*math.Pi/2) {
		t.Errorf("NormalizeAngle(-π/2) = %v", got)
	}
	if got := Degrees(Radians(45)); !near(got, 45) {
		t.Errorf("round trip = %v", got)
	}
}
