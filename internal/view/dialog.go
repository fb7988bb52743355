package view

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ErrDialogClosed is returned by Close on an already closed dialog.
var ErrDialogClosed = errors.New("view: dialog closed")

// maxListed is the number of matches shown by the file dialog.
const maxListed = 10

// FileDialog is a modal file chooser. It is called from a command while
// the view's event loop is blocked handing control to that command, so it
// polls the screen itself until the user answers.
type FileDialog struct {
	screen tcell.Screen
	style  tcell.Style

	mu     sync.Mutex
	closed bool
}

// NewFileDialog creates a dialog drawing on screen.
func NewFileDialog(screen tcell.Screen) *FileDialog {
	return &FileDialog{screen: screen, style: tcell.StyleDefault}
}

// SetStyle sets the base style of the dialog.
func (d *FileDialog) SetStyle(st tcell.Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.style = st
}

// OpenFile asks for an existing file matching filter.
func (d *FileDialog) OpenFile(title, filter string) (string, bool) {
	return d.run(newFileRequest(title, filter, false))
}

// SaveFile asks for a destination path.
func (d *FileDialog) SaveFile(title, filter string) (string, bool) {
	return d.run(newFileRequest(title, filter, true))
}

func (d *FileDialog) run(r *fileRequest) (string, bool) {
	d.mu.Lock()
	closed, style := d.closed, d.style
	d.mu.Unlock()
	if closed {
		return "", false
	}

	for {
		w, _ := d.screen.Size()
		r.draw(d.screen, w, style)
		d.screen.Show()

		switch ev := d.screen.PollEvent().(type) {
		case nil:
			return "", false
		case *tcell.EventInterrupt:
			// Leave shutdown requests for the main loop.
			_ = d.screen.PostEvent(ev)
			return "", false
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			if isQuit(ev) {
				return "", false
			}
			if r.handleKey(ev) {
				return r.result.path, r.result.ok
			}
		}
	}
}

// Close makes later requests fail immediately.
func (d *FileDialog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDialogClosed
	}
	d.closed = true
	return nil
}

type fileAnswer struct {
	path string
	ok   bool
}

// fileRequest is the state of an open dialog.
type fileRequest struct {
	title   string
	filter  string
	save    bool
	text    string
	matches []string
	current int
	result  fileAnswer
}

func newFileRequest(title, filter string, save bool) *fileRequest {
	if filter == "" {
		filter = "*"
	}
	r := &fileRequest{title: title, filter: filter, save: save, current: -1}
	r.refresh()
	return r
}

// refresh lists files matching the filter in the directory of the typed
// path whose names start with the typed base name.
func (r *fileRequest) refresh() {
	dir, prefix := ".", r.text
	if i := strings.LastIndexAny(r.text, `/\`); i >= 0 {
		dir, prefix = r.text[:i+1], r.text[i+1:]
	}
	r.matches = r.matches[:0]
	r.current = -1

	found, err := filepath.Glob(filepath.Join(dir, r.filter))
	if err != nil {
		return
	}
	for _, f := range found {
		if strings.HasPrefix(filepath.Base(f), prefix) {
			r.matches = append(r.matches, f)
		}
	}
	sort.Strings(r.matches)
}

// handleKey applies a key and reports whether the dialog is finished.
func (r *fileRequest) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		r.result = fileAnswer{}
		return true
	case tcell.KeyEnter:
		if r.text == "" {
			return false
		}
		r.result = fileAnswer{path: r.text, ok: true}
		return true
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyTab:
		n := len(r.matches)
		if n == 0 {
			return false
		}
		switch {
		case ev.Key() != tcell.KeyUp:
			r.current = (r.current + 1) % n
		case r.current <= 0:
			r.current = n - 1
		default:
			r.current--
		}
		r.text = r.matches[r.current]
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if rs := []rune(r.text); len(rs) > 0 {
			r.text = string(rs[:len(rs)-1])
			r.refresh()
		}
	case tcell.KeyRune:
		r.text += string(ev.Rune())
		r.refresh()
	}
	return false
}

// draw renders the dialog over the top of the screen.
func (r *fileRequest) draw(s tcell.Screen, width int, style tcell.Style) {
	sel := style.Reverse(true)
	title := r.title
	if title == "" {
		title = "Open file"
		if r.save {
			title = "Save file"
		}
	}
	printLine(s, 0, width, " "+title+" ("+r.filter+")", sel)
	printLine(s, 1, width, " > "+r.text, style)
	for i := 0; i < maxListed; i++ {
		if i >= len(r.matches) {
			printLine(s, 2+i, width, "", style)
			continue
		}
		st := style
		if i == r.current {
			st = sel
		}
		printLine(s, 2+i, width, "   "+r.matches[i], st)
	}
}
