package getter

import "github.com/dshills/stormcad/internal/geom"

// FileDialog is a modal file chooser. Each call blocks until the user
// picks a path (ok true) or dismisses the dialog.
type FileDialog interface {
	OpenFile(title, filter string) (path string, ok bool)
	SaveFile(title, filter string) (path string, ok bool)
}

type filenameHooks struct {
	dialog FileDialog
	filter string
	title  string
	save   bool
}

// NewOpenFilename requests an existing file through dialog. It resolves
// during Start and never waits for view events.
func NewOpenFilename(host Host, opts Options[string], dialog FileDialog, filter string) *Getter[string] {
	h := &filenameHooks{dialog: dialog, filter: filter, title: opts.Message}
	return newGetter(host, opts, Acceptor[string](h))
}

// NewSaveFilename requests a destination file through dialog.
func NewSaveFilename(host Host, opts Options[string], dialog FileDialog, filter string) *Getter[string] {
	h := &filenameHooks{dialog: dialog, filter: filter, title: opts.Message, save: true}
	return newGetter(host, opts, Acceptor[string](h))
}

func (h *filenameHooks) Init() (Result[string], bool) {
	if h.dialog == nil {
		return Cancel[string](ReasonInit), false
	}
	open := h.dialog.OpenFile
	if h.save {
		open = h.dialog.SaveFile
	}
	path, ok := open(h.title, h.filter)
	if !ok || path == "" {
		return Cancel[string](ReasonInit), false
	}
	return OK(path), false
}

func (h *filenameHooks) AcceptCoordsInput(geom.Point) (string, bool, error) {
	return "", false, invalid(msgNoCoordinates)
}

func (h *filenameHooks) AcceptTextInput(text string) (string, bool, error) {
	return text, true, nil
}
