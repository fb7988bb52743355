package drawing

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/stormcad/internal/geom"
)

func TestLineContains(t *testing.T) {
	l := NewLine(geom.Pt(0, 0), geom.Pt(10, 0))

	tests := []struct {
		pt   geom.Point
		want bool
	}{
		{geom.Pt(5, 0), true},
		{geom.Pt(5, 0.4), true},
		{geom.Pt(5, 0.6), false},
		{geom.Pt(10.4, 0), true},
		{geom.Pt(11, 0), false},
	}
	for _, tt := range tests {
		if got := l.Contains(tt.pt, 1); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestControlPointIndices(t *testing.T) {
	p := NewPolyline(false, geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1))
	cps := p.ControlPoints()
	for i, cp := range cps {
		if cp.Index != i {
			t.Errorf("cps[%d].Index = %d", i, cp.Index)
		}
	}
}

func TestTransformControlPoint(t *testing.T) {
	l := NewLine(geom.Pt(0, 0), geom.Pt(10, 0))
	l.TransformControlPoint(1, geom.Translation(geom.Vec(0, 5)))
	if !l.P2.Equal(geom.Pt(10, 5)) || !l.P1.Equal(geom.Pt(0, 0)) {
		t.Errorf("after end grip move: %v -> %v", l.P1, l.P2)
	}

	c := NewCircle(geom.Pt(0, 0), 2)
	c.TransformControlPoint(1, geom.Translation(geom.Vec(3, 0)))
	if c.Radius != 5 {
		t.Errorf("radius = %v, want 5", c.Radius)
	}
}

func TestCloneHasNewID(t *testing.T) {
	l := NewLine(geom.Pt(0, 0), geom.Pt(1, 1))
	c := l.Clone().(*Line)
	if c.ID() == l.ID() {
		t.Error("clone shares ID with original")
	}
	c.P1 = geom.Pt(5, 5)
	if l.P1 == c.P1 {
		t.Error("clone is not independent")
	}
}

func TestHatchContains(t *testing.T) {
	h := NewHatch()
	h.SetRectangle(geom.Pt(0, 0), geom.Pt(4, 4))
	if !h.Contains(geom.Pt(2, 2), 0.1) {
		t.Error("interior point not contained")
	}
	if h.Contains(geom.Pt(6, 2), 0.1) {
		t.Error("exterior point contained")
	}
	if !h.Style().Fill {
		t.Error("hatch should be filled")
	}
}

func TestCircleSnapPoints(t *testing.T) {
	c := NewCircle(geom.Pt(1, 1), 1)
	var types []SnapPointType
	for _, sp := range c.SnapPoints() {
		types = append(types, sp.Type)
	}
	want := []SnapPointType{SnapCenter, SnapQuadrant, SnapQuadrant, SnapQuadrant, SnapQuadrant}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("snap types mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionNotifications(t *testing.T) {
	c := NewCollection()
	var kinds []ChangeKind
	stop := c.OnChange(func(ch Change) { kinds = append(kinds, ch.Kind) })

	l := NewLine(geom.Pt(0, 0), geom.Pt(1, 0))
	c.Add(l)
	if c.Add(l) {
		t.Error("duplicate Add succeeded")
	}
	c.Update(l, func() { l.P2 = geom.Pt(2, 0) })
	c.Remove(l)
	if c.Remove(l) {
		t.Error("second Remove succeeded")
	}
	c.Clear()
	stop()
	c.Add(l)

	want := []ChangeKind{ChangeAdd, ChangeUpdate, ChangeRemove, ChangeClear}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionRemoveKeepsIndex(t *testing.T) {
	c := NewCollection()
	a := NewLine(geom.Pt(0, 0), geom.Pt(1, 0))
	b := NewLine(geom.Pt(0, 1), geom.Pt(1, 1))
	d := NewLine(geom.Pt(0, 2), geom.Pt(1, 2))
	c.Add(a)
	c.Add(b)
	c.Add(d)
	c.Remove(a)

	if got, ok := c.Get(d.ID()); !ok || got != d {
		t.Error("index stale after removal")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestDocumentRedraw(t *testing.T) {
	doc := NewDocument()
	n := 0
	doc.OnRedraw(func() { n++ })

	doc.Model.Add(NewLine(geom.Pt(0, 0), geom.Pt(1, 0)))
	doc.Transients.Add(NewLine(geom.Pt(0, 0), geom.Pt(1, 0)))
	if n != 2 {
		t.Errorf("redraw count = %d, want 2", n)
	}
}
