package commands

import (
	"context"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/getter"
)

// Line draws connected segments until the user submits empty input.
// Undo removes the last segment; Close joins the last point to the first.
func Line(ctx context.Context, ed *editor.Editor, _ []string) error {
	first := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Start point"), nil)
	if !first.IsOK() {
		return nil
	}

	points := []geom.Point{first.Value}
	var segments []*drawing.Line
	for {
		var opts getter.Options[geom.Point]
		switch {
		case len(segments) >= 2:
			opts = getter.NewOptions[geom.Point]("End point", "Undo", "Close")
		case len(segments) == 1:
			opts = getter.NewOptions[geom.Point]("End point", "Undo")
		default:
			opts = getter.NewOptions[geom.Point]("End point")
		}

		last := points[len(points)-1]
		res := ed.GetPoint(ctx, opts, &last)
		switch {
		case res.IsKeyword("Undo"):
			ed.Document().Model.Remove(segments[len(segments)-1])
			segments = segments[:len(segments)-1]
			points = points[:len(points)-1]
		case res.IsKeyword("Close"):
			ed.Document().Model.Add(drawing.NewLine(last, points[0]))
			return nil
		case res.IsOK():
			l := drawing.NewLine(last, res.Value)
			ed.Document().Model.Add(l)
			segments = append(segments, l)
			points = append(points, res.Value)
		default:
			return nil
		}
	}
}

// Circle draws a circle from a center and a radius, or a diameter.
func Circle(ctx context.Context, ed *editor.Editor, _ []string) error {
	center := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Center point"), nil)
	if !center.IsOK() {
		return nil
	}

	preview := drawing.NewCircle(center.Value, 0)
	ed.Document().Transients.Add(preview)
	defer ed.Document().Transients.Remove(preview)

	jig := func(r float64) func(float64) {
		return func(v float64) {
			ed.Document().Transients.Update(preview, func() { preview.Radius = v * r })
		}
	}

	res := ed.GetDistance(ctx, getter.NewOptions[float64]("Radius", "Diameter").WithJig(jig(1)), center.Value)
	radius := res.Value
	if res.IsKeyword("Diameter") {
		d := ed.GetDistance(ctx, getter.NewOptions[float64]("Diameter").WithJig(jig(0.5)), center.Value)
		if !d.IsOK() {
			return nil
		}
		radius = d.Value / 2
	} else if !res.IsOK() {
		return nil
	}

	if radius <= 0 {
		ed.Prompt("Radius must be positive")
		return nil
	}
	ed.Document().Model.Add(drawing.NewCircle(center.Value, radius))
	return nil
}

// Rectangle draws an axis-aligned rectangle from two corners.
func Rectangle(ctx context.Context, ed *editor.Editor, _ []string) error {
	p1 := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("First corner"), nil)
	if !p1.IsOK() {
		return nil
	}
	p2 := ed.GetCorner(ctx, getter.NewOptions[geom.Point]("Opposite corner"), p1.Value)
	if !p2.IsOK() {
		return nil
	}
	ed.Document().Model.Add(drawing.NewRectangle(p1.Value, p2.Value))
	return nil
}

// TextNote logs a line of free text.
func TextNote(ctx context.Context, ed *editor.Editor, _ []string) error {
	res := ed.GetText(ctx, getter.NewOptions[string]("Note"))
	if !res.IsOK() {
		return nil
	}
	ed.Logger().WithField("note", res.Value).Info("text note")
	ed.Prompt("Noted: " + res.Value)
	return nil
}
