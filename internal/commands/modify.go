package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/getter"
	"github.com/dshills/stormcad/internal/selection"
)

// ghosts are transient copies of model items used as a jig.
type ghosts struct {
	tr     *drawing.Collection
	clones []drawing.Drawable
}

func newGhosts(ed *editor.Editor, items []drawing.Drawable) *ghosts {
	g := &ghosts{tr: ed.Document().Transients}
	for _, d := range items {
		c := d.Clone()
		g.clones = append(g.clones, c)
		g.tr.Add(c)
	}
	return g
}

// transform applies m to every copy in place.
func (g *ghosts) transform(m geom.Matrix) {
	for _, c := range g.clones {
		g.tr.Update(c, func() { c.TransformBy(m) })
	}
}

func (g *ghosts) remove() {
	for _, c := range g.clones {
		g.tr.Remove(c)
	}
}

func selectObjects(ctx context.Context, ed *editor.Editor) (*selection.Set, bool) {
	res := ed.GetSelection(ctx, getter.NewOptions[*selection.Set]("Select objects"))
	if !res.IsOK() || res.Value.Len() == 0 {
		return nil, false
	}
	return res.Value, true
}

func transformModel(ed *editor.Editor, items []drawing.Drawable, m geom.Matrix) {
	for _, d := range items {
		ed.Document().Model.Update(d, func() { d.TransformBy(m) })
	}
}

// Erase removes the selected objects.
func Erase(ctx context.Context, ed *editor.Editor, _ []string) error {
	sel, ok := selectObjects(ctx, ed)
	if !ok {
		return nil
	}
	for _, d := range sel.Items() {
		ed.Document().Model.Remove(d)
	}
	ed.Prompt(fmt.Sprintf("Erased %d objects", sel.Len()))
	return nil
}

// Move translates the selected objects by base point to destination.
func Move(ctx context.Context, ed *editor.Editor, _ []string) error {
	sel, ok := selectObjects(ctx, ed)
	if !ok {
		return nil
	}
	base := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Base point"), nil)
	if !base.IsOK() {
		return nil
	}

	g := newGhosts(ed, sel.Items())
	defer g.remove()

	offset := geom.Vector{}
	jig := func(p geom.Point) {
		d := p.Sub(base.Value)
		g.transform(geom.Translation(d.Add(offset.Scale(-1))))
		offset = d
	}
	dest := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Second point").WithJig(jig), &base.Value)
	if !dest.IsOK() {
		return nil
	}
	transformModel(ed, sel.Items(), geom.Translation(dest.Value.Sub(base.Value)))
	return nil
}

// Rotate turns the selected objects about a base point.
func Rotate(ctx context.Context, ed *editor.Editor, _ []string) error {
	sel, ok := selectObjects(ctx, ed)
	if !ok {
		return nil
	}
	base := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Base point"), nil)
	if !base.IsOK() {
		return nil
	}

	g := newGhosts(ed, sel.Items())
	defer g.remove()

	var applied float64
	jig := func(a float64) {
		g.transform(geom.Rotation(a-applied, base.Value))
		applied = a
	}
	angle := ed.GetAngle(ctx, getter.NewOptions[float64]("Rotation angle").WithJig(jig), base.Value)
	if !angle.IsOK() {
		return nil
	}
	transformModel(ed, sel.Items(), geom.Rotation(angle.Value, base.Value))
	return nil
}

// Stretch moves the picked control points by a displacement.
func Stretch(ctx context.Context, ed *editor.Editor, _ []string) error {
	res := ed.GetControlPoints(ctx, getter.NewOptions[*selection.CPSet]("Select control points"))
	if !res.IsOK() || res.Value.Len() == 0 {
		return nil
	}
	cps := res.Value

	base := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Base point"), nil)
	if !base.IsOK() {
		return nil
	}

	tr := ed.Document().Transients
	clones := make(map[drawing.Drawable]drawing.Drawable)
	for _, d := range cps.Drawables() {
		c := d.Clone()
		clones[d] = c
		tr.Add(c)
	}
	defer func() {
		for _, c := range clones {
			tr.Remove(c)
		}
	}()

	offset := geom.Vector{}
	jig := func(p geom.Point) {
		d := p.Sub(base.Value)
		m := geom.Translation(d.Add(offset.Scale(-1)))
		for orig, c := range clones {
			tr.Update(c, func() {
				for _, i := range cps.Indices(orig) {
					c.TransformStretchPoint(i, m)
				}
			})
		}
		offset = d
	}
	dest := ed.GetPoint(ctx, getter.NewOptions[geom.Point]("Second point").WithJig(jig), &base.Value)
	if !dest.IsOK() {
		return nil
	}

	m := geom.Translation(dest.Value.Sub(base.Value))
	for _, d := range cps.Drawables() {
		ed.Document().Model.Update(d, func() {
			for _, i := range cps.Indices(d) {
				d.TransformStretchPoint(i, m)
			}
		})
	}
	return nil
}

// Array copies the selected objects count-1 times along the X axis.
func Array(ctx context.Context, ed *editor.Editor, _ []string) error {
	sel, ok := selectObjects(ctx, ed)
	if !ok {
		return nil
	}
	count := ed.GetInt(ctx, getter.NewOptions[int]("Number of items"), getter.PositiveNumber())
	if !count.IsOK() {
		return nil
	}
	spacing := ed.GetFloat(ctx, getter.NewOptions[float64]("Spacing"), getter.AnyNumber())
	if !spacing.IsOK() {
		return nil
	}

	for i := 1; i < count.Value; i++ {
		m := geom.Translation(geom.Vec(spacing.Value*float64(i), 0))
		for _, d := range sel.Items() {
			c := d.Clone()
			c.TransformBy(m)
			ed.Document().Model.Add(c)
		}
	}
	return nil
}

// Script loads a Lua script chosen in the file dialog and registers the
// commands it defines.
func Script(scripts ScriptLoader) editor.CommandFunc {
	return func(ctx context.Context, ed *editor.Editor, args []string) error {
		if scripts == nil {
			return ErrNoScriptEngine
		}

		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			res := ed.GetOpenFilename(ctx, getter.NewOptions[string]("Load script"), "*.lua")
			if !res.IsOK() {
				return nil
			}
			path = res.Value
		}

		names, err := scripts.LoadFile(path)
		if err != nil {
			return err
		}
		ed.Prompt(fmt.Sprintf("Loaded %s", strings.Join(names, ", ")))
		return nil
	}
}
