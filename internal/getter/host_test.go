package getter

import (
	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/input/mouse"
	"github.com/dshills/stormcad/internal/logging"
	"github.com/dshills/stormcad/internal/selection"
)

type testHost struct {
	bus      *event.Bus
	doc      *drawing.Document
	settings *config.Settings
	sel      *selection.Set
	prompts  []string
}

func newTestHost() *testHost {
	return &testHost{
		bus:      event.NewBus(),
		doc:      drawing.NewDocument(),
		settings: config.Default(),
		sel:      selection.NewSet(),
	}
}

func (h *testHost) Bus() *event.Bus             { return h.bus }
func (h *testHost) Document() *drawing.Document { return h.doc }
func (h *testHost) Settings() *config.Settings  { return h.settings }
func (h *testHost) Selection() *selection.Set   { return h.sel }
func (h *testHost) Logger() *logging.Logger     { return logging.Nop() }
func (h *testHost) PickBoxSize() float64        { return 0.5 }
func (h *testHost) SetPrompt(text string)       { h.prompts = append(h.prompts, text) }

func (h *testHost) prompt() string {
	if len(h.prompts) == 0 {
		return ""
	}
	return h.prompts[len(h.prompts)-1]
}

func (h *testHost) move(x, y float64) {
	h.bus.Publish(event.TopicCursorMove, mouse.NewMove(geom.Pt(x, y)))
}

func (h *testHost) click(x, y float64) {
	h.bus.Publish(event.TopicCursorClick, mouse.NewClick(geom.Pt(x, y), mouse.ButtonLeft))
}

func (h *testHost) rightClick(x, y float64) {
	h.bus.Publish(event.TopicCursorClick, mouse.NewClick(geom.Pt(x, y), mouse.ButtonRight))
}

func (h *testHost) keyDown(k key.Key) {
	h.bus.Publish(event.TopicKeyDown, key.NewSpecialEvent(k, key.ModNone))
}

// typeText delivers each rune the way a view does: key-down then key-press.
func (h *testHost) typeText(s string) {
	for _, r := range s {
		ev := key.NewRuneEvent(r, key.ModNone)
		h.bus.Publish(event.TopicKeyDown, ev)
		h.bus.Publish(event.TopicKeyPress, ev)
	}
}

func (h *testHost) backspace() {
	ev := key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	h.bus.Publish(event.TopicKeyDown, ev)
	h.bus.Publish(event.TopicKeyPress, ev)
}

func (h *testHost) enter()  { h.keyDown(key.KeyEnter) }
func (h *testHost) escape() { h.keyDown(key.KeyEscape) }

func (h *testHost) viewSubscribers() int {
	return h.bus.SubscriberCount("view.cursor.move") + h.bus.SubscriberCount("view.cursor.click") +
		h.bus.SubscriberCount("view.key.down") + h.bus.SubscriberCount("view.key.press")
}
