package getter

import (
	"math"
	"strings"
	"testing"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/selection"
)

func mustStart[T any](t *testing.T, g *Getter[T]) {
	t.Helper()
	if err := g.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
}

func resultOf[T any](t *testing.T, g *Getter[T]) Result[T] {
	t.Helper()
	r, ok := g.Future().Result()
	if !ok {
		t.Fatalf("getter not resolved (state %s)", g.State())
	}
	return r
}

func assertPending[T any](t *testing.T, g *Getter[T]) {
	t.Helper()
	if r, ok := g.Future().Result(); ok {
		t.Fatalf("getter resolved unexpectedly: %s", r)
	}
}

func nearly(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPointGetterEndToEnd(t *testing.T) {
	h := newTestHost()
	var jigged []geom.Point
	base := geom.Pt(0, 0)
	opts := NewOptions[geom.Point]("End point").WithJig(func(p geom.Point) { jigged = append(jigged, p) })
	g := NewPoint(h, opts, &base)
	mustStart(t, g)

	if g.State() != StateAwaitingInput {
		t.Fatalf("state = %s, want awaiting-input", g.State())
	}
	line, ok := g.Jig().(*drawing.Line)
	if !ok || !h.doc.Transients.Contains(line) {
		t.Fatal("jig line not added to transients")
	}

	h.move(3, 4)
	if len(jigged) != 1 || !jigged[0].Equal(geom.Pt(3, 4)) {
		t.Errorf("jig callback = %v, want [(3,4)]", jigged)
	}
	if !line.P2.Equal(geom.Pt(3, 4)) {
		t.Errorf("jig endpoint = %v, want (3,4)", line.P2)
	}
	if want := "End point: 3.0000, 4.0000"; h.prompt() != want {
		t.Errorf("prompt = %q, want %q", h.prompt(), want)
	}

	h.click(3, 4)
	r := resultOf(t, g)
	if !r.IsOK() || !r.Value.Equal(geom.Pt(3, 4)) {
		t.Errorf("result = %s, want OK((3,4))", r)
	}
	if h.doc.Transients.Len() != 0 {
		t.Error("jig left in transients")
	}
	if g.State() != StateDisposed {
		t.Errorf("state = %s, want disposed", g.State())
	}
}

func TestKeywordDefaultOnEmptyEnter(t *testing.T) {
	h := newTestHost()
	opts := NewOptions[geom.Point]("Next point").WithDefault("End")
	opts.Keywords.Add("Close", false)
	g := NewPoint(h, opts, nil)
	mustStart(t, g)

	h.enter()
	if r := resultOf(t, g); !r.IsKeyword("End") {
		t.Errorf("result = %s, want Keyword(End)", r)
	}
}

func TestKeywordAliasTyped(t *testing.T) {
	for _, typed := range []string{"c", "C", "close"} {
		h := newTestHost()
		g := NewPoint(h, NewOptions[geom.Point]("Next point", "Close").WithDefault("End"), nil)
		mustStart(t, g)

		h.typeText(typed)
		if want := "Next point [Close, End] <End>: " + typed; h.prompt() != want {
			t.Errorf("prompt = %q, want %q", h.prompt(), want)
		}
		h.enter()
		if r := resultOf(t, g); !r.IsKeyword("Close") {
			t.Errorf("%q: result = %s, want Keyword(Close)", typed, r)
		}
	}
}

func TestSpaceSubmits(t *testing.T) {
	h := newTestHost()
	g := NewPoint(h, NewOptions[geom.Point]("Point"), nil)
	mustStart(t, g)

	h.typeText("1,2 ")
	r := resultOf(t, g)
	if !r.IsOK() || !r.Value.Equal(geom.Pt(1, 2)) {
		t.Errorf("result = %s, want OK((1,2))", r)
	}
}

func TestEnterWithoutTextCancels(t *testing.T) {
	h := newTestHost()
	g := NewPoint(h, NewOptions[geom.Point]("Point", "Close"), nil)
	mustStart(t, g)

	h.enter()
	if r := resultOf(t, g); !r.IsCancel() || r.Reason != ReasonEnter {
		t.Errorf("result = %s, want Cancel(enter)", r)
	}
}

func TestRightClickActsAsEnter(t *testing.T) {
	h := newTestHost()
	g := NewPoint(h, NewOptions[geom.Point]("Point").WithDefault("Done"), nil)
	mustStart(t, g)

	h.rightClick(5, 5)
	if r := resultOf(t, g); !r.IsKeyword("Done") {
		t.Errorf("result = %s, want Keyword(Done)", r)
	}
}

func TestEscapeAlwaysCancels(t *testing.T) {
	base := geom.Pt(1, 1)
	tests := []struct {
		name  string
		setup func(t *testing.T, h *testHost) func() (Result[any], bool)
	}{
		{"point", func(t *testing.T, h *testHost) func() (Result[any], bool) {
			g := NewPoint(h, NewOptions[geom.Point]("Point"), &base)
			return startAndWrap(t, g, func() { h.move(4, 4); h.typeText("1") })
		}},
		{"corner", func(t *testing.T, h *testHost) func() (Result[any], bool) {
			g := NewCorner(h, NewOptions[geom.Point]("Corner"), base)
			return startAndWrap(t, g, func() { h.move(4, 4) })
		}},
		{"angle", func(t *testing.T, h *testHost) func() (Result[any], bool) {
			g := NewAngle(h, NewOptions[float64]("Angle"), base)
			return startAndWrap(t, g, func() { h.move(4, 4) })
		}},
		{"text", func(t *testing.T, h *testHost) func() (Result[any], bool) {
			g := NewText(h, NewOptions[string]("Text"))
			g.AddTransient(drawing.NewLine(geom.Pt(0, 0), geom.Pt(1, 1)))
			return startAndWrap(t, g, func() { h.typeText("ab c") })
		}},
		{"selection mid-window", func(t *testing.T, h *testHost) func() (Result[any], bool) {
			g := NewSelection(h, NewOptions[*selection.Set]("Select"))
			return startAndWrap(t, g, func() { h.click(10, 10); h.move(20, 20) })
		}},
		{"cp selection mid-window", func(t *testing.T, h *testHost) func() (Result[any], bool) {
			g := NewCPSelection(h, NewOptions[*selection.CPSet]("Select points"))
			return startAndWrap(t, g, func() { h.click(10, 10); h.move(20, 20) })
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost()
			result := tt.setup(t, h)
			if h.doc.Transients.Len() == 0 {
				t.Fatal("expected preview transients before escape")
			}

			h.escape()
			r, ok := result()
			if !ok || r.Status != StatusCancel || r.Reason != ReasonEscape {
				t.Errorf("result = %v (resolved %v), want Cancel(escape)", r, ok)
			}
			if h.doc.Transients.Len() != 0 {
				t.Errorf("%d transients left after escape", h.doc.Transients.Len())
			}
			if n := h.viewSubscribers(); n != 0 {
				t.Errorf("%d view subscriptions left after escape", n)
			}
		})
	}
}

func TestEscapeWithModifierCancels(t *testing.T) {
	h := newTestHost()
	g := NewPoint(h, NewOptions[geom.Point]("Point"), nil)
	mustStart(t, g)

	h.bus.Publish(event.TopicKeyDown, key.NewSpecialEvent(key.KeyEscape, key.ModAlt))
	if r := resultOf(t, g); !r.IsCancel() || r.Reason != ReasonEscape {
		t.Errorf("result = %s, want Cancel(escape)", r)
	}
}

// startAndWrap starts g, runs steps, and returns an accessor for its
// result with the value type erased.
func startAndWrap[T any](t *testing.T, g *Getter[T], steps func()) func() (Result[any], bool) {
	t.Helper()
	mustStart(t, g)
	steps()
	return func() (Result[any], bool) {
		r, ok := g.Future().Result()
		return Result[any]{Status: r.Status, Value: r.Value, Keyword: r.Keyword, Reason: r.Reason}, ok
	}
}

func TestSingleResolutionClickThenEnter(t *testing.T) {
	h := newTestHost()
	g := NewPoint(h, NewOptions[geom.Point]("Point").WithDefault("End"), nil)
	mustStart(t, g)

	h.click(2, 3)
	if n := h.viewSubscribers(); n != 0 {
		t.Fatalf("%d subscriptions left after click", n)
	}
	h.enter()

	r := resultOf(t, g)
	if !r.IsOK() || !r.Value.Equal(geom.Pt(2, 3)) {
		t.Errorf("result = %s, want OK((2,3))", r)
	}
}

func TestInvalidTextKeepsWaiting(t *testing.T) {
	h := newTestHost()
	g := NewPoint(h, NewOptions[geom.Point]("Point"), nil)
	mustStart(t, g)

	h.typeText("abc")
	h.enter()
	assertPending(t, g)
	if g.Text() != "" {
		t.Errorf("typed text = %q, want cleared", g.Text())
	}
	if want := "Point: *Invalid point* "; h.prompt() != want {
		t.Errorf("prompt = %q, want %q", h.prompt(), want)
	}

	h.typeText("@1,1")
	h.enter()
	if r := resultOf(t, g); !r.Value.Equal(geom.Pt(1, 1)) {
		t.Errorf("result = %s, want OK((1,1))", r)
	}
}

func TestBackspace(t *testing.T) {
	h := newTestHost()
	g := NewText(h, NewOptions[string]("Note"))
	mustStart(t, g)

	h.backspace()
	h.typeText("héllo")
	h.backspace()
	h.backspace()
	if g.Text() != "hél" {
		t.Errorf("text = %q, want %q", g.Text(), "hél")
	}
}

func TestIntRejectsNegative(t *testing.T) {
	h := newTestHost()
	num := AnyNumber()
	num.AllowNegative = false
	g := NewInt(h, NewOptions[int]("Count"), num)
	mustStart(t, g)

	h.typeText("-3")
	h.enter()
	assertPending(t, g)
	if !strings.Contains(h.prompt(), "Negative numbers are not allowed") {
		t.Errorf("prompt = %q, want negative number message", h.prompt())
	}

	h.typeText("3")
	h.enter()
	if r := resultOf(t, g); r.Value != 3 {
		t.Errorf("result = %s, want OK(3)", r)
	}
}

func TestNumberConstraints(t *testing.T) {
	tests := []struct {
		name string
		num  NumberOptions
		text string
		msg  string
	}{
		{"zero", NumberOptions{AllowNegative: true, AllowPositive: true}, "0", MsgZeroNotAllowed},
		{"positive", NumberOptions{AllowNegative: true}, "2.5", MsgPositiveNotAllowed},
		{"negative", PositiveNumber(), "-1", MsgNegativeNotAllowed},
		{"garbage", AnyNumber(), "1.2.3", MsgInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost()
			g := NewFloat(h, NewOptions[float64]("Value"), tt.num)
			mustStart(t, g)
			h.typeText(tt.text)
			h.enter()
			assertPending(t, g)
			if !strings.Contains(h.prompt(), tt.msg) {
				t.Errorf("prompt = %q, want %q", h.prompt(), tt.msg)
			}
		})
	}
}

func TestIntRejectsFractionAndClicks(t *testing.T) {
	h := newTestHost()
	g := NewInt(h, NewOptions[int]("Count"), AnyNumber())
	mustStart(t, g)

	h.typeText("1.5")
	h.enter()
	if !strings.Contains(h.prompt(), MsgInvalidInteger) {
		t.Errorf("prompt = %q", h.prompt())
	}
	h.click(1, 1)
	assertPending(t, g)
	g.Cancel(ReasonAbort)
}

func TestNumberJigOnValidText(t *testing.T) {
	h := newTestHost()
	var seen []float64
	g := NewFloat(h, NewOptions[float64]("Spacing").WithJig(func(v float64) { seen = append(seen, v) }), AnyNumber())
	mustStart(t, g)

	h.typeText("1.")
	h.typeText("x")
	h.backspace()
	h.typeText("5")
	// "1", "1.", "1." again after backspace, then "1.5"; "1.x" does not parse
	want := []float64{1, 1, 1, 1.5}
	if len(seen) != len(want) {
		t.Fatalf("jig values = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("jig values = %v, want %v", seen, want)
		}
	}
}

func TestTextGetter(t *testing.T) {
	h := newTestHost()
	var last string
	g := NewText(h, NewOptions[string]("Note").WithJig(func(s string) { last = s }))
	mustStart(t, g)

	h.click(1, 1)
	assertPending(t, g)

	h.typeText("two words")
	if last != "two words" {
		t.Errorf("jig text = %q", last)
	}
	h.enter()
	if r := resultOf(t, g); r.Value != "two words" {
		t.Errorf("result = %s", r)
	}
}

func TestAngleGetter(t *testing.T) {
	tests := []struct {
		name  string
		input func(h *testHost)
		want  float64
	}{
		{"click", func(h *testHost) { h.click(1, 2) }, math.Pi / 2},
		{"degrees", func(h *testHost) { h.typeText("45"); h.enter() }, math.Pi / 4},
		{"vector", func(h *testHost) { h.typeText("-1,0"); h.enter() }, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost()
			g := NewAngle(h, NewOptions[float64]("Angle"), geom.Pt(1, 1))
			mustStart(t, g)
			tt.input(h)
			if r := resultOf(t, g); !nearly(r.Value, tt.want) {
				t.Errorf("result = %s, want %v", r, tt.want)
			}
		})
	}
}

func TestAngleRejectsZeroVector(t *testing.T) {
	h := newTestHost()
	g := NewAngle(h, NewOptions[float64]("Angle"), geom.Pt(0, 0))
	mustStart(t, g)
	h.typeText("0,0")
	h.enter()
	assertPending(t, g)
	g.Dispose()
}

func TestDistanceGetter(t *testing.T) {
	h := newTestHost()
	var jig float64
	g := NewDistance(h, NewOptions[float64]("Radius").WithJig(func(d float64) { jig = d }), geom.Pt(0, 0))
	mustStart(t, g)

	h.move(3, 4)
	if !nearly(jig, 5) {
		t.Errorf("jig distance = %v, want 5", jig)
	}
	h.typeText("-2")
	h.enter()
	assertPending(t, g)
	if !strings.Contains(h.prompt(), "Negative distances are not allowed") {
		t.Errorf("prompt = %q", h.prompt())
	}
	h.typeText("6,8")
	h.enter()
	if r := resultOf(t, g); !nearly(r.Value, 10) {
		t.Errorf("result = %s, want OK(10)", r)
	}
}

func TestCornerGetterJig(t *testing.T) {
	h := newTestHost()
	g := NewCorner(h, NewOptions[geom.Point]("Other corner"), geom.Pt(1, 1))
	mustStart(t, g)

	h.move(4, 3)
	rect, ok := g.Jig().(*drawing.Polyline)
	if !ok {
		t.Fatal("corner jig is not a polyline")
	}
	ext := rect.Extents()
	if !ext.Min.Equal(geom.Pt(1, 1)) || !ext.Max.Equal(geom.Pt(4, 3)) {
		t.Errorf("jig extents = %v..%v", ext.Min, ext.Max)
	}

	h.typeText("@2,2")
	h.enter()
	if r := resultOf(t, g); !r.Value.Equal(geom.Pt(3, 3)) {
		t.Errorf("result = %s, want OK((3,3))", r)
	}
}

type stubDialog struct {
	path string
	ok   bool
	save bool
}

func (d *stubDialog) OpenFile(title, filter string) (string, bool) { return d.path, d.ok }
func (d *stubDialog) SaveFile(title, filter string) (string, bool) {
	d.save = true
	return d.path, d.ok
}

func TestFilenameResolvesSynchronously(t *testing.T) {
	h := newTestHost()
	g := NewOpenFilename(h, NewOptions[string]("Open script"), &stubDialog{path: "/tmp/a.lua", ok: true}, "*.lua")
	mustStart(t, g)

	r := resultOf(t, g)
	if !r.IsOK() || r.Value != "/tmp/a.lua" {
		t.Errorf("result = %s", r)
	}
	if n := h.viewSubscribers(); n != 0 {
		t.Errorf("filename getter subscribed to %d topics", n)
	}
	if len(h.prompts) != 0 {
		t.Errorf("filename getter prompted: %v", h.prompts)
	}
}

func TestFilenameDismissed(t *testing.T) {
	h := newTestHost()
	d := &stubDialog{}
	g := NewSaveFilename(h, NewOptions[string]("Save as"), d, "")
	mustStart(t, g)

	if r := resultOf(t, g); !r.IsCancel() || r.Reason != ReasonInit {
		t.Errorf("result = %s, want Cancel(init)", r)
	}
	if !d.save {
		t.Error("save dialog not used")
	}
}
