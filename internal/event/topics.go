package event

import "github.com/dshills/stormcad/internal/event/topic"

// View input topics. Payloads are mouse.Event for cursor topics and
// key.Event for key topics.
const (
	TopicCursorMove  topic.Topic = "view.cursor.move"
	TopicCursorClick topic.Topic = "view.cursor.click"
	TopicKeyDown     topic.Topic = "view.key.down"
	TopicKeyPress    topic.Topic = "view.key.press"
)

// Editor topics.
const (
	// TopicPrompt carries the status-line prompt as a string.
	TopicPrompt topic.Topic = "editor.prompt"
	// TopicError carries an error.
	TopicError topic.Topic = "editor.error"
	// TopicCommandStarted carries the command name.
	TopicCommandStarted topic.Topic = "editor.command.started"
	// TopicCommandFinished carries the command name.
	TopicCommandFinished topic.Topic = "editor.command.finished"
)

// Document and configuration topics.
const (
	// TopicRedraw has no payload.
	TopicRedraw topic.Topic = "document.redraw"
	// TopicConfigReloaded carries the new settings.
	TopicConfigReloaded topic.Topic = "config.reloaded"
)
