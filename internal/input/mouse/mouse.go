// Package mouse defines pointer events delivered by a view to the editor.
//
// A view reports the raw button state it sees; Tracker turns those
// snapshots into press, release, move and drag edges and counts
// multi-clicks. Events carry both the screen cell and the world location
// under the pointer.
package mouse

import (
	"time"

	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/input/key"
)

// Button identifies a mouse button or wheel direction.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

var buttonNames = [...]string{"none", "left", "middle", "right", "scroll-up", "scroll-down"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return buttonNames[ButtonNone]
}

// IsScroll reports whether b is a wheel step rather than a real button.
func (b Button) IsScroll() bool { return b == ButtonScrollUp || b == ButtonScrollDown }

// Action is the edge a Tracker derived from consecutive snapshots.
type Action uint8

const (
	ActionNone Action = iota
	ActionPress
	ActionRelease
	ActionMove // no button held
	ActionDrag // a button held
)

var actionNames = [...]string{"none", "press", "release", "move", "drag"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return actionNames[ActionNone]
}

// Position is a screen cell.
type Position struct {
	X, Y int
}

// Distance is the Manhattan distance in cells.
func (p Position) Distance(q Position) int {
	return absInt(p.X-q.X) + absInt(p.Y-q.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Event is a pointer edge. Position is the screen cell and Location the
// world point under it; views that know no mapping leave Location zero.
type Event struct {
	Position  Position
	Location  geom.Point
	Button    Button
	Modifiers key.Modifier
	Action    Action
	Clicks    int // 1 to 3 for presses
	Timestamp time.Time
}

// At returns e relocated to loc.
func (e Event) At(loc geom.Point) Event {
	e.Location = loc
	return e
}

// NewMove builds a hover event at loc.
func NewMove(loc geom.Point) Event {
	return Event{Location: loc, Action: ActionMove, Timestamp: time.Now()}
}

// NewClick builds a single press of button at loc.
func NewClick(loc geom.Point, button Button) Event {
	return Event{Location: loc, Button: button, Action: ActionPress, Clicks: 1, Timestamp: time.Now()}
}
