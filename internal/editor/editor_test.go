package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/event/topic"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/getter"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/input/mouse"
	"github.com/dshills/stormcad/internal/store"
)

type fakeHistory struct {
	cmds []string
}

func (h *fakeHistory) AddCmd(text string) (int, error) {
	h.cmds = append(h.cmds, text)
	return len(h.cmds) - 1, nil
}

func (h *fakeHistory) LastCmd() (store.Cmd, error) {
	if len(h.cmds) == 0 {
		return store.Cmd{}, store.ErrNoMatchingCmd
	}
	return store.Cmd{Text: h.cmds[len(h.cmds)-1], Seq: len(h.cmds) - 1}, nil
}

type pixelView float64

func (v pixelView) PixelSize() float64 { return float64(v) }

// lineCommand asks for two points and adds a line.
func lineCommand(ctx context.Context, ed *Editor, _ []string) error {
	p1 := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("First point"), nil)
	if !p1.IsOK() {
		return nil
	}
	p2 := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Second point"), &p1.Value)
	if !p2.IsOK() {
		return nil
	}
	ed.Document().Model.Add(drawing.NewLine(p1.Value, p2.Value))
	return nil
}

func newTestEditor(t *testing.T, opts ...Option) (*Editor, *[]error) {
	t.Helper()
	reg := NewRegistry()
	if err := reg.RegisterFunc("Line", lineCommand); err != nil {
		t.Fatal(err)
	}
	ed := New(reg, opts...)

	var errs []error
	if _, err := ed.OnError(func(err error) { errs = append(errs, err) }); err != nil {
		t.Fatal(err)
	}
	return ed, &errs
}

func click(ed *Editor, x, y float64) {
	ed.OnViewMouseMove(mouse.NewMove(geom.Pt(x, y)))
	ed.OnViewMouseClick(mouse.NewClick(geom.Pt(x, y), mouse.ButtonLeft))
}

func escape(ed *Editor) {
	ed.OnViewKeyDown(key.NewSpecialEvent(key.KeyEscape, key.ModNone))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	noop := func(context.Context, *Editor, []string) error { return nil }

	for _, name := range []string{"move", "Line", "ERASE"} {
		if err := reg.RegisterFunc(name, noop); err != nil {
			t.Fatalf("RegisterFunc(%q): %v", name, err)
		}
	}
	if err := reg.Register("  ", CommandFunc(noop)); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Register(blank) = %v, want ErrInvalidCommand", err)
	}
	if err := reg.Register("x", nil); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Register(nil) = %v, want ErrInvalidCommand", err)
	}

	if _, name, ok := reg.Lookup("line"); !ok || name != "Line" {
		t.Errorf("Lookup(line) = %q, %t", name, ok)
	}
	if !reg.Has("erase") {
		t.Error("Has(erase) = false")
	}
	if diff := cmp.Diff([]string{"ERASE", "Line", "move"}, reg.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}

	reg.Unregister("MOVE")
	if reg.Count() != 2 {
		t.Errorf("Count = %d, want 2", reg.Count())
	}
}

func TestRunCommandEndToEnd(t *testing.T) {
	ed, errs := newTestEditor(t)
	ctx := context.Background()

	if err := ed.RunCommand(ctx, "line", nil); err != nil {
		t.Fatal(err)
	}
	if !ed.CommandInProgress() {
		t.Fatal("command not in progress after RunCommand")
	}
	if got := ed.CurrentPrompt(); got != "First point: " {
		t.Errorf("prompt = %q", got)
	}

	click(ed, 1, 1)
	if got := ed.CurrentPrompt(); got != "Second point: " {
		t.Errorf("prompt = %q", got)
	}
	if ed.Document().Transients.Len() != 1 {
		t.Errorf("transients = %d, want rubber band line", ed.Document().Transients.Len())
	}

	click(ed, 4, 5)
	if ed.CommandInProgress() {
		t.Fatal("command still in progress")
	}
	if ed.Document().Model.Len() != 1 {
		t.Fatalf("model = %d items, want 1", ed.Document().Model.Len())
	}
	l := ed.Document().Model.Items()[0].(*drawing.Line)
	if l.P1 != geom.Pt(1, 1) || l.P2 != geom.Pt(4, 5) {
		t.Errorf("line = %v-%v", l.P1, l.P2)
	}
	if ed.Document().Transients.Len() != 0 {
		t.Errorf("transients left: %d", ed.Document().Transients.Len())
	}
	if len(*errs) != 0 {
		t.Errorf("errors = %v", *errs)
	}
}

func TestRunCommandUnknown(t *testing.T) {
	ed, errs := newTestEditor(t)

	err := ed.RunCommand(context.Background(), "nope", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
	if len(*errs) != 1 || !errors.Is((*errs)[0], ErrUnknownCommand) {
		t.Errorf("published errors = %v", *errs)
	}
	if ed.CommandInProgress() {
		t.Error("unknown command left editor busy")
	}
}

func TestRunCommandBusy(t *testing.T) {
	ed, _ := newTestEditor(t)
	ctx := context.Background()

	if err := ed.RunCommand(ctx, "line", nil); err != nil {
		t.Fatal(err)
	}
	if err := ed.RunCommand(ctx, "line", nil); !errors.Is(err, ErrCommandInProgress) {
		t.Errorf("second RunCommand = %v, want ErrCommandInProgress", err)
	}
	escape(ed)
	if ed.CommandInProgress() {
		t.Error("escape on first point did not end the command")
	}
}

func TestFaultedCommand(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		body func(context.Context, *Editor, []string) error
		want error
	}{
		{"error", func(context.Context, *Editor, []string) error { return boom }, boom},
		{"panic", func(context.Context, *Editor, []string) error { panic("bad index") }, ErrPanic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, errs := newTestEditor(t)
			if err := ed.Registry().RegisterFunc("fault", tt.body); err != nil {
				t.Fatal(err)
			}
			ed.Selection().Add(drawing.NewLine(geom.Pt(0, 0), geom.Pt(1, 1)))

			if err := ed.RunCommand(context.Background(), "fault", nil); err != nil {
				t.Fatalf("RunCommand returned %v; faults must not propagate", err)
			}
			if len(*errs) != 1 {
				t.Fatalf("published errors = %v", *errs)
			}
			var ce *CommandError
			if !errors.As((*errs)[0], &ce) || ce.Command != "fault" {
				t.Errorf("error = %v, want CommandError for fault", (*errs)[0])
			}
			if !errors.Is((*errs)[0], tt.want) {
				t.Errorf("error = %v, want %v", (*errs)[0], tt.want)
			}
			if ed.Selection().Len() != 0 {
				t.Error("selection not cleared after fault")
			}
			if ed.CommandInProgress() {
				t.Error("still in progress after fault")
			}
		})
	}
}

func TestRepeatCommand(t *testing.T) {
	ed, _ := newTestEditor(t)
	ctx := context.Background()

	if err := ed.RepeatCommand(ctx); !errors.Is(err, ErrNoCommandToRepeat) {
		t.Fatalf("RepeatCommand = %v, want ErrNoCommandToRepeat", err)
	}

	var got [][]string
	if err := ed.Registry().RegisterFunc("echo", func(_ context.Context, _ *Editor, args []string) error {
		got = append(got, args)
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := ed.RunCommand(ctx, "ECHO", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := ed.RepeatCommand(ctx); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"a", "b"}, {"a", "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs (-want +got):\n%s", diff)
	}
}

func TestRepeatCommandFromHistory(t *testing.T) {
	h := &fakeHistory{cmds: []string{"echo x y"}}
	ed, _ := newTestEditor(t, WithHistory(h))

	var got []string
	if err := ed.Registry().RegisterFunc("echo", func(_ context.Context, _ *Editor, args []string) error {
		got = args
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := ed.RepeatCommand(context.Background()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, got); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"echo x y", "echo x y"}, h.cmds); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestViewEventsIgnoredWhenIdle(t *testing.T) {
	ed, _ := newTestEditor(t)
	delivered := 0
	if _, err := ed.Bus().Subscribe("view.**", func(topic.Topic, any) { delivered++ }); err != nil {
		t.Fatal(err)
	}

	ed.OnViewMouseMove(mouse.NewMove(geom.Pt(1, 1)))
	ed.OnViewMouseClick(mouse.NewClick(geom.Pt(1, 1), mouse.ButtonLeft))
	ed.OnViewKeyDown(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	ed.OnViewKeyPress(key.NewRuneEvent('x', key.ModNone))

	if delivered != 0 {
		t.Errorf("delivered %d view events while idle", delivered)
	}
}

func TestAbort(t *testing.T) {
	ed, _ := newTestEditor(t)
	var res getter.Result[string]
	if err := ed.Registry().RegisterFunc("ask", func(ctx context.Context, ed *Editor, _ []string) error {
		res = ed.GetText(ctx, getter.NewOptions[string]("Text"))
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := ed.RunCommand(context.Background(), "ask", nil); err != nil {
		t.Fatal(err)
	}
	ed.Abort()
	if ed.CommandInProgress() {
		t.Fatal("still in progress after Abort")
	}
	if !res.IsCancel() || res.Reason != getter.ReasonAbort {
		t.Errorf("result = %v, want Cancel(abort)", res)
	}
}

func TestSettingsSnapshot(t *testing.T) {
	ed, _ := newTestEditor(t)
	if err := ed.Registry().RegisterFunc("pick", func(ctx context.Context, ed *Editor, _ []string) error {
		ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Point"), nil)
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := ed.RunCommand(context.Background(), "pick", nil); err != nil {
		t.Fatal(err)
	}
	s := ed.Settings().Clone()
	s.Format.Number = "%.1f"
	ed.SetSettings(s)

	ed.OnViewMouseMove(mouse.NewMove(geom.Pt(1, 2)))
	if got := ed.CurrentPrompt(); got != "Point: 1.0000, 2.0000" {
		t.Errorf("prompt = %q; running getter must keep its settings", got)
	}
	escape(ed)
	if ed.Settings().Format.Number != "%.1f" {
		t.Error("SetSettings not applied")
	}
}

// typeKeys sends each rune the way a terminal view does: a key-down
// followed by a key press.
func typeKeys(ed *Editor, text string) {
	for _, r := range text {
		ev := key.NewRuneEvent(r, key.ModNone)
		ed.OnViewKeyDown(ev)
		ed.OnViewKeyPress(ev)
	}
}

func TestSpaceSubmitDoesNotLeakIntoNextGetter(t *testing.T) {
	ed, errs := newTestEditor(t)

	var (
		pt   geom.Point
		text string
	)
	if err := ed.Registry().RegisterFunc("note", func(ctx context.Context, ed *Editor, _ []string) error {
		p := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Point"), nil)
		if !p.IsOK() {
			return nil
		}
		pt = p.Value
		if r := ed.GetText(ctx, getter.NewOptions[string]("Text")); r.IsOK() {
			text = r.Value
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := ed.RunCommand(context.Background(), "note", nil); err != nil {
		t.Fatal(err)
	}

	typeKeys(ed, "1,2 hi")
	ed.OnViewKeyDown(key.NewSpecialEvent(key.KeyEnter, key.ModNone))

	if ed.CommandInProgress() {
		t.Fatal("command still running")
	}
	if !pt.Equal(geom.Pt(1, 2)) {
		t.Errorf("point = %v, want 1,2", pt)
	}
	if text != "hi" {
		t.Errorf("text = %q, want %q", text, "hi")
	}
	if len(*errs) != 0 {
		t.Errorf("errors = %v", *errs)
	}
}

func TestSnapping(t *testing.T) {
	ed, _ := newTestEditor(t, WithViewport(pixelView(0.1)))
	ed.Document().Model.Add(drawing.NewLine(geom.Pt(0, 0), geom.Pt(2, 0)))

	var jigged []geom.Point
	if err := ed.Registry().RegisterFunc("pick", func(ctx context.Context, ed *Editor, _ []string) error {
		ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Point").WithJig(func(p geom.Point) {
			jigged = append(jigged, p)
		}), nil)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := ed.RunCommand(context.Background(), "pick", nil); err != nil {
		t.Fatal(err)
	}

	// Snap radius is 10 cells of 0.1: the mid point and the start are in range.
	ed.OnViewMouseMove(mouse.NewMove(geom.Pt(0.9, 0.05)))
	ed.OnViewKeyDown(key.NewSpecialEvent(key.KeyTab, key.ModNone))
	ed.OnViewKeyDown(key.NewSpecialEvent(key.KeyTab, key.ModShift))

	want := []geom.Point{geom.Pt(1, 0), geom.Pt(0, 0), geom.Pt(1, 0)}
	if diff := cmp.Diff(want, jigged); diff != "" {
		t.Errorf("jig points (-want +got):\n%s", diff)
	}

	if on := ed.ToggleSnap(); on {
		t.Fatal("ToggleSnap should disable snapping")
	}
	ed.OnViewMouseMove(mouse.NewMove(geom.Pt(0.9, 0.05)))
	if got := jigged[len(jigged)-1]; got != geom.Pt(0.9, 0.05) {
		t.Errorf("unsnapped move = %v", got)
	}
	if _, ok := ed.SnapPoint(); ok {
		t.Error("snap point reported while snapping is off")
	}
	escape(ed)
}
