package lua

import "errors"

var (
	ErrStateClosed      = errors.New("lua: state closed")
	ErrExecutionTimeout = errors.New("lua: script load timed out")
)
