package getter

import "fmt"

// Status identifies which variant of a Result is populated.
type Status uint8

const (
	// StatusOK carries a value.
	StatusOK Status = iota
	// StatusKeyword carries a keyword name.
	StatusKeyword
	// StatusCancel carries a cancel reason.
	StatusCancel
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusKeyword:
		return "keyword"
	case StatusCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// CancelReason explains why an input request ended without a value.
type CancelReason uint8

const (
	// ReasonNone is the reason of non-cancel results.
	ReasonNone CancelReason = iota
	// ReasonEscape means the user pressed Escape.
	ReasonEscape
	// ReasonEnter means the user submitted empty input with no default keyword.
	ReasonEnter
	// ReasonInit means a synchronous getter declined during initialization,
	// e.g. a dismissed file dialog.
	ReasonInit
	// ReasonAbort means the editor or the command context gave up on the request.
	ReasonAbort
)

// String returns the reason name.
func (r CancelReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonEscape:
		return "escape"
	case ReasonEnter:
		return "enter"
	case ReasonInit:
		return "init"
	case ReasonAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Result is the outcome of an input request: exactly one of a value, a
// keyword or a cancellation.
type Result[T any] struct {
	Status  Status
	Value   T
	Keyword string
	Reason  CancelReason
}

// OK returns a value result.
func OK[T any](v T) Result[T] {
	return Result[T]{Status: StatusOK, Value: v}
}

// KeywordResult returns a keyword result.
func KeywordResult[T any](name string) Result[T] {
	return Result[T]{Status: StatusKeyword, Keyword: name}
}

// Cancel returns a cancellation result.
func Cancel[T any](reason CancelReason) Result[T] {
	return Result[T]{Status: StatusCancel, Reason: reason}
}

// IsOK reports whether r carries a value.
func (r Result[T]) IsOK() bool { return r.Status == StatusOK }

// IsKeyword reports whether r carries the named keyword (any keyword when
// name is empty).
func (r Result[T]) IsKeyword(name string) bool {
	return r.Status == StatusKeyword && (name == "" || r.Keyword == name)
}

// IsCancel reports whether r is a cancellation.
func (r Result[T]) IsCancel() bool { return r.Status == StatusCancel }

func (r Result[T]) String() string {
	switch r.Status {
	case StatusOK:
		return fmt.Sprintf("OK(%v)", r.Value)
	case StatusKeyword:
		return fmt.Sprintf("Keyword(%s)", r.Keyword)
	default:
		return fmt.Sprintf("Cancel(%s)", r.Reason)
	}
}
