package app

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyRunning  = errors.New("stormcad is already running")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// InitError names the bootstrap step that failed.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string { return "starting " + e.Component + ": " + e.Err.Error() }
func (e *InitError) Unwrap() error { return e.Err }

// ComponentError is a runtime failure reported to the user through the
// editor, e.g. a config file that no longer parses.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

func (e *ComponentError) Error() string {
	parts := []string{e.Component}
	if e.Action != "" {
		parts = append(parts, e.Action)
	}
	return strings.Join(append(parts, e.Err.Error()), ": ")
}

func (e *ComponentError) Unwrap() error { return e.Err }

// ErrorList accumulates the failures of independent teardown steps so
// that one failing close does not hide the others.
type ErrorList struct {
	errs []error
}

// Add records err unless it is nil.
func (l *ErrorList) Add(err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

func (l *ErrorList) Len() int { return len(l.errs) }

func (l *ErrorList) Error() string {
	msgs := make([]string, len(l.errs))
	for i, err := range l.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (l *ErrorList) Unwrap() []error { return l.errs }

// AsError returns the list as an error, or nil when it is empty.
func (l *ErrorList) AsError() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
