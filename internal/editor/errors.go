package editor

import (
	"errors"
	"fmt"
)

// Editor errors.
var (
	// ErrUnknownCommand indicates no command is registered under a name.
	ErrUnknownCommand = errors.New("editor: unknown command")

	// ErrCommandInProgress indicates another command is still running.
	ErrCommandInProgress = errors.New("editor: command in progress")

	// ErrNoCommandToRepeat indicates no command has been started yet.
	ErrNoCommandToRepeat = errors.New("editor: no command to repeat")

	// ErrPanic indicates a command body panicked.
	ErrPanic = errors.New("editor: command panic")

	// ErrInvalidCommand indicates a registration with an empty name or nil command.
	ErrInvalidCommand = errors.New("editor: invalid command")
)

// CommandError is a fault raised by a command body.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
