package editor

import (
	"context"

	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/getter"
	"github.com/dshills/stormcad/internal/selection"
)

// await starts g and blocks until it resolves. The getter is always
// disposed before await returns.
func await[T any](ctx context.Context, e *Editor, g *getter.Getter[T]) getter.Result[T] {
	defer g.Dispose()

	if ctx.Err() != nil {
		return getter.Cancel[T](getter.ReasonAbort)
	}
	if err := g.Start(); err != nil {
		e.log.Error("starting %q: %v", g.Options().Message, err)
		return getter.Cancel[T](getter.ReasonInit)
	}
	if r, ok := g.Future().Result(); ok {
		return r
	}

	p := &pending{cancel: g.Cancel, done: g.Future().Done()}
	e.setPending(p)
	defer e.clearPending(p)

	if r := runFrom(ctx); r != nil {
		r.park()
	}

	res, err := g.Future().Wait(ctx)
	if err != nil {
		g.Cancel(getter.ReasonAbort)
		res, _ = g.Future().Result()
	}
	return res
}

// GetPoint requests a point. With a base point the jig draws a rubber
// band line from it and typed coordinates may be relative to it.
func (e *Editor) GetPoint(ctx context.Context, opts getter.Options[geom.Point], base *geom.Point) getter.Result[geom.Point] {
	return await(ctx, e, getter.NewPoint(e, opts, base))
}

// GetCorner requests the opposite corner of a rectangle.
func (e *Editor) GetCorner(ctx context.Context, opts getter.Options[geom.Point], base geom.Point) getter.Result[geom.Point] {
	return await(ctx, e, getter.NewCorner(e, opts, base))
}

// GetAngle requests an angle in radians measured at base.
func (e *Editor) GetAngle(ctx context.Context, opts getter.Options[float64], base geom.Point) getter.Result[float64] {
	return await(ctx, e, getter.NewAngle(e, opts, base))
}

// GetDistance requests a non-negative distance measured from base.
func (e *Editor) GetDistance(ctx context.Context, opts getter.Options[float64], base geom.Point) getter.Result[float64] {
	return await(ctx, e, getter.NewDistance(e, opts, base))
}

// GetText requests free text. Space is part of the text.
func (e *Editor) GetText(ctx context.Context, opts getter.Options[string]) getter.Result[string] {
	return await(ctx, e, getter.NewText(e, opts))
}

// GetInt requests an integer within num's constraints.
func (e *Editor) GetInt(ctx context.Context, opts getter.Options[int], num getter.NumberOptions) getter.Result[int] {
	return await(ctx, e, getter.NewInt(e, opts, num))
}

// GetFloat requests a number within num's constraints.
func (e *Editor) GetFloat(ctx context.Context, opts getter.Options[float64], num getter.NumberOptions) getter.Result[float64] {
	return await(ctx, e, getter.NewFloat(e, opts, num))
}

// GetSelection requests a set of drawables. A non-empty current selection
// is returned at once.
func (e *Editor) GetSelection(ctx context.Context, opts getter.Options[*selection.Set]) getter.Result[*selection.Set] {
	return await(ctx, e, getter.NewSelection(e, opts))
}

// GetControlPoints requests a set of control points.
func (e *Editor) GetControlPoints(ctx context.Context, opts getter.Options[*selection.CPSet]) getter.Result[*selection.CPSet] {
	return await(ctx, e, getter.NewCPSelection(e, opts))
}

// GetOpenFilename asks the file dialog for an existing file. Without a
// dialog the request is cancelled.
func (e *Editor) GetOpenFilename(ctx context.Context, opts getter.Options[string], filter string) getter.Result[string] {
	if e.dialog == nil {
		return getter.Cancel[string](getter.ReasonInit)
	}
	return await(ctx, e, getter.NewOpenFilename(e, opts, e.dialog, filter))
}

// GetSaveFilename asks the file dialog for a file to write.
func (e *Editor) GetSaveFilename(ctx context.Context, opts getter.Options[string], filter string) getter.Result[string] {
	if e.dialog == nil {
		return getter.Cancel[string](getter.ReasonInit)
	}
	return await(ctx, e, getter.NewSaveFilename(e, opts, e.dialog, filter))
}
