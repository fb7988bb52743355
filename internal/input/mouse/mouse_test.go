package mouse

import (
	"slices"
	"testing"
	"time"

	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/input/key"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
		{ButtonScrollUp, "scroll-up"},
		{ButtonScrollDown, "scroll-down"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPositionDistance(t *testing.T) {
	if d := (Position{X: 1, Y: 2}).Distance(Position{X: 4, Y: -2}); d != 7 {
		t.Errorf("Distance() = %d, want 7", d)
	}
}

func actions(events []Event) []Action {
	out := make([]Action, len(events))
	for i, e := range events {
		out[i] = e.Action
	}
	return out
}

func TestTrackerEdges(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	now := time.Now()

	steps := []struct {
		name   string
		pos    Position
		button Button
		want   []Action
	}{
		{"first move", Position{1, 1}, ButtonNone, []Action{ActionMove}},
		{"same position", Position{1, 1}, ButtonNone, nil},
		{"press", Position{1, 1}, ButtonLeft, []Action{ActionPress}},
		{"held", Position{1, 1}, ButtonLeft, nil},
		{"drag", Position{2, 1}, ButtonLeft, []Action{ActionDrag}},
		{"release and move", Position{3, 1}, ButtonNone, []Action{ActionRelease, ActionMove}},
		{"switch button", Position{3, 1}, ButtonRight, []Action{ActionPress}},
		{"switch again", Position{3, 1}, ButtonLeft, []Action{ActionRelease, ActionPress}},
	}

	for i, s := range steps {
		got := tr.Update(s.pos, s.button, key.ModNone, now.Add(time.Duration(i)*time.Second))
		if !slices.Equal(actions(got), s.want) {
			t.Errorf("%s: actions = %v, want %v", s.name, actions(got), s.want)
		}
	}
}

func TestTrackerClickCount(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	now := time.Now()
	pos := Position{5, 5}

	var counts []int
	for i := 0; i < 4; i++ {
		ts := now.Add(time.Duration(i) * 100 * time.Millisecond)
		for _, e := range tr.Update(pos, ButtonLeft, key.ModNone, ts) {
			if e.Action == ActionPress {
				counts = append(counts, e.Clicks)
			}
		}
		tr.Update(pos, ButtonNone, key.ModNone, ts.Add(10*time.Millisecond))
	}

	want := []int{1, 2, 3, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("click counts = %v, want %v", counts, want)
		}
	}

	late := now.Add(10 * time.Second)
	for _, e := range tr.Update(pos, ButtonLeft, key.ModNone, late) {
		if e.Action == ActionPress && e.Clicks != 1 {
			t.Errorf("late click count = %d, want 1", e.Clicks)
		}
	}
}

func TestTrackerScrollNotHeld(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	tr.Update(Position{}, ButtonScrollUp, key.ModNone, time.Now())
	if tr.Held() != ButtonNone {
		t.Errorf("Held() = %s after scroll", tr.Held())
	}
}

func TestEventAt(t *testing.T) {
	e := NewClick(geom.Pt(1, 2), ButtonLeft)
	moved := e.At(geom.Pt(3, 4))
	if !moved.Location.Equal(geom.Pt(3, 4)) || !e.Location.Equal(geom.Pt(1, 2)) {
		t.Errorf("At() = %v, original %v", moved.Location, e.Location)
	}
}
