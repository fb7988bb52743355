package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/input/fuzzy"
	"github.com/dshills/stormcad/internal/input/key"
)

// CommandPrompt is shown while no command is running.
const CommandPrompt = "Command: "

// CommandLine collects a command name and arguments typed while the editor
// is idle. Enter runs the line; Enter or Space on an empty line repeats
// the last command; Tab completes the command name. It is used from the
// view goroutine only.
type CommandLine struct {
	ed   *editor.Editor
	text []rune

	// completion cycle; nil when the last key was not Tab
	completions []string
	completion  int
}

// NewCommandLine creates a command line driving ed.
func NewCommandLine(ed *editor.Editor) *CommandLine {
	return &CommandLine{ed: ed}
}

// Text returns the typed line.
func (c *CommandLine) Text() string {
	return string(c.text)
}

// Reset clears the line and shows the command prompt.
func (c *CommandLine) Reset() {
	c.text = c.text[:0]
	c.completions = nil
	c.show()
}

func (c *CommandLine) show() {
	c.ed.Prompt(CommandPrompt + string(c.text))
}

// KeyDown handles a key-down event and reports whether it was consumed.
// A consumed key must not also be delivered as a key press.
func (c *CommandLine) KeyDown(ctx context.Context, ev key.Event) bool {
	if ev.Key == key.KeyTab {
		c.complete(ev.Modifiers.HasShift())
		return true
	}
	c.completions = nil

	switch {
	case ev.IsEscape():
		c.Reset()
		return true
	case ev.IsEnter():
		c.submit(ctx)
		return true
	case ev.IsSpace() && strings.TrimSpace(c.Text()) == "":
		c.submit(ctx)
		return true
	}
	return false
}

// KeyPress edits the line.
func (c *CommandLine) KeyPress(ev key.Event) {
	switch {
	case ev.IsBackspace():
		if len(c.text) == 0 {
			return
		}
		c.text = c.text[:len(c.text)-1]
	case ev.IsChar():
		c.text = append(c.text, ev.Rune)
	default:
		return
	}
	c.show()
}

// complete replaces the line with the next (or previous) registered
// command ranked against the text typed before the first Tab.
func (c *CommandLine) complete(back bool) {
	if c.completions == nil {
		query := c.Text()
		if strings.ContainsRune(query, ' ') {
			return
		}
		for _, m := range fuzzy.Rank(query, c.ed.Registry().Names()) {
			c.completions = append(c.completions, m.Text)
		}
		if len(c.completions) == 0 {
			return
		}
		c.completion = 0
	} else {
		n := len(c.completions)
		if back {
			c.completion = (c.completion + n - 1) % n
		} else {
			c.completion = (c.completion + 1) % n
		}
	}
	c.text = []rune(c.completions[c.completion])
	c.show()
}

func (c *CommandLine) submit(ctx context.Context) {
	fields := strings.Fields(c.Text())
	c.text = c.text[:0]

	var err error
	if len(fields) == 0 {
		err = c.ed.RepeatCommand(ctx)
		if errors.Is(err, editor.ErrNoCommandToRepeat) {
			c.ed.Error(err)
		}
	} else {
		err = c.ed.RunCommand(ctx, fields[0], fields[1:])
	}

	// Unknown commands leave the line ready for another try; a finished
	// command keeps its last message on the status line.
	if err != nil && !c.ed.CommandInProgress() {
		c.show()
	}
}
