package drawing

import "sync"

// Document owns the model drawables and the transient preview items shown
// on top of them while a command runs.
type Document struct {
	Model      *Collection
	Transients *Collection

	mu       sync.Mutex
	onRedraw []func()
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{
		Model:      NewCollection(),
		Transients: NewCollection(),
	}
	d.Model.OnChange(func(Change) { d.redraw() })
	d.Transients.OnChange(func(Change) { d.redraw() })
	return d
}

// OnRedraw registers fn to be called whenever either collection changes.
func (d *Document) OnRedraw(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onRedraw = append(d.onRedraw, fn)
}

func (d *Document) redraw() {
	d.mu.Lock()
	fns := append([]func(){}, d.onRedraw...)
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
