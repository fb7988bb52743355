package event

import "errors"

var (
	ErrInvalidTopic     = errors.New("event: invalid topic")
	ErrNilHandler       = errors.New("event: nil handler")
	ErrSubscriberClosed = errors.New("event: subscriber closed")
)
