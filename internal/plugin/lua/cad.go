package lua

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/getter"
)

const editorTypeName = "cad.editor"

// session is the editor handle passed to a script command.
type session struct {
	ctx context.Context
	ed  *editor.Editor
}

// installModule defines the cad global and the editor handle type.
func (e *Engine) installModule() {
	L := e.state.L

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"command": e.luaCommand,
	})
	L.SetField(mod, "version", lua.LString("1"))
	L.SetGlobal("cad", mod)

	mt := L.NewTypeMetatable(editorTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"getpoint":    edGetPoint,
		"getdistance": edGetDistance,
		"getangle":    edGetAngle,
		"gettext":     edGetText,
		"getint":      edGetInt,
		"getfloat":    edGetFloat,
		"line":        edLine,
		"circle":      edCircle,
		"prompt":      edPrompt,
	}))
}

// cad.command(name, fn)
func (e *Engine) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if err := e.define(name, fn); err != nil {
		L.RaiseError("cad.command %q: %v", name, err)
	}
	return 0
}

func newEditorValue(L *lua.LState, ctx context.Context, ed *editor.Editor) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = &session{ctx: ctx, ed: ed}
	L.SetMetatable(ud, L.GetTypeMetatable(editorTypeName))
	return ud
}

func checkSession(L *lua.LState) *session {
	ud := L.CheckUserData(1)
	if s, ok := ud.Value.(*session); ok {
		return s
	}
	L.ArgError(1, "editor expected")
	return nil
}

func checkPoint(L *lua.LState, n int) geom.Point {
	return geom.Pt(float64(L.CheckNumber(n)), float64(L.CheckNumber(n+1)))
}

// keywords reads an optional table of keyword names at n. A name starting
// with "*" is the default.
func keywords(L *lua.LState, n int) []string {
	t, ok := L.Get(n).(*lua.LTable)
	if !ok {
		return nil
	}
	var names []string
	t.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			names = append(names, string(s))
		}
	})
	return names
}

func options[T any](L *lua.LState, msg string, kwIndex int) getter.Options[T] {
	opts := getter.NewOptions[T](msg)
	names := keywords(L, kwIndex)
	if len(names) == 0 {
		return opts
	}
	opts.Keywords = getter.NewKeywords()
	for _, name := range names {
		if len(name) > 1 && name[0] == '*' {
			opts.Keywords.Add(name[1:], true)
			continue
		}
		opts.Keywords.Add(name, false)
	}
	return opts
}

// push returns status first: "ok" followed by the value, "keyword" followed
// by its name, or "cancel" followed by the reason.
func push[T any](L *lua.LState, r getter.Result[T], value func(T) []lua.LValue) int {
	switch r.Status {
	case getter.StatusOK:
		L.Push(lua.LString("ok"))
		vals := value(r.Value)
		for _, v := range vals {
			L.Push(v)
		}
		return 1 + len(vals)
	case getter.StatusKeyword:
		L.Push(lua.LString("keyword"))
		L.Push(lua.LString(r.Keyword))
	default:
		L.Push(lua.LString("cancel"))
		L.Push(lua.LString(r.Reason.String()))
	}
	return 2
}

func pointValue(p geom.Point) []lua.LValue {
	return []lua.LValue{lua.LNumber(p.X), lua.LNumber(p.Y)}
}

func numberValue(v float64) []lua.LValue {
	return []lua.LValue{lua.LNumber(v)}
}

// ed:getpoint(msg [, bx, by] [, keywords])
func edGetPoint(L *lua.LState) int {
	s := checkSession(L)
	msg := L.CheckString(2)

	var base *geom.Point
	kw := 3
	if L.Get(3).Type() == lua.LTNumber {
		p := checkPoint(L, 3)
		base = &p
		kw = 5
	}
	r := s.ed.GetPoint(s.ctx, options[geom.Point](L, msg, kw), base)
	return push(L, r, pointValue)
}

// ed:getdistance(msg, bx, by [, keywords])
func edGetDistance(L *lua.LState) int {
	s := checkSession(L)
	r := s.ed.GetDistance(s.ctx, options[float64](L, L.CheckString(2), 5), checkPoint(L, 3))
	return push(L, r, numberValue)
}

// ed:getangle(msg, bx, by [, keywords]) returns radians.
func edGetAngle(L *lua.LState) int {
	s := checkSession(L)
	r := s.ed.GetAngle(s.ctx, options[float64](L, L.CheckString(2), 5), checkPoint(L, 3))
	return push(L, r, numberValue)
}

// ed:gettext(msg)
func edGetText(L *lua.LState) int {
	s := checkSession(L)
	r := s.ed.GetText(s.ctx, getter.NewOptions[string](L.CheckString(2)))
	return push(L, r, func(v string) []lua.LValue { return []lua.LValue{lua.LString(v)} })
}

// ed:getint(msg [, keywords])
func edGetInt(L *lua.LState) int {
	s := checkSession(L)
	r := s.ed.GetInt(s.ctx, options[int](L, L.CheckString(2), 3), getter.AnyNumber())
	return push(L, r, func(v int) []lua.LValue { return numberValue(float64(v)) })
}

// ed:getfloat(msg [, keywords])
func edGetFloat(L *lua.LState) int {
	s := checkSession(L)
	r := s.ed.GetFloat(s.ctx, options[float64](L, L.CheckString(2), 3), getter.AnyNumber())
	return push(L, r, numberValue)
}

// ed:line(x1, y1, x2, y2)
func edLine(L *lua.LState) int {
	s := checkSession(L)
	s.ed.Document().Model.Add(drawing.NewLine(checkPoint(L, 2), checkPoint(L, 4)))
	return 0
}

// ed:circle(cx, cy, r)
func edCircle(L *lua.LState) int {
	s := checkSession(L)
	r := float64(L.CheckNumber(4))
	if r <= 0 {
		L.ArgError(4, "radius must be positive")
	}
	s.ed.Document().Model.Add(drawing.NewCircle(checkPoint(L, 2), r))
	return 0
}

// ed:prompt(msg)
func edPrompt(L *lua.LState) int {
	s := checkSession(L)
	s.ed.Prompt(L.CheckString(2))
	return 0
}
