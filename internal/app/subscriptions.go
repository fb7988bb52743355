package app

import (
	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/event/topic"
	"github.com/dshills/stormcad/internal/logging"
)

// subscribe wires application reactions to editor and config events.
func (app *Application) subscribe() error {
	app.subs = event.NewSubscriber(app.bus)

	if _, err := app.subs.Subscribe(event.TopicCommandStarted, func(_ topic.Topic, payload any) {
		app.log.WithField("command", payload).Debug("command started")
	}); err != nil {
		return err
	}
	if _, err := app.subs.Subscribe(event.TopicCommandFinished, func(_ topic.Topic, payload any) {
		app.log.WithField("command", payload).Debug("command finished")
	}); err != nil {
		return err
	}
	_, err := app.subs.Subscribe(event.TopicConfigReloaded, func(_ topic.Topic, payload any) {
		if s, ok := payload.(*config.Settings); ok {
			app.applySettings(s)
		}
	})
	return err
}

// onConfigReload runs on the watcher goroutine.
func (app *Application) onConfigReload(s *config.Settings, err error) {
	if err != nil {
		app.editor.Error(&ComponentError{Component: "config", Action: "reload", Err: err})
		return
	}
	app.log.WithField("path", app.opts.ConfigPath).Info("settings reloaded")
	app.editor.SetSettings(s)
	app.bus.Publish(event.TopicConfigReloaded, s)
}

// applySettings updates the parts of the application that copied values
// out of the settings at startup.
func (app *Application) applySettings(s *config.Settings) {
	app.setShortcuts(s.Keys)
	app.applyTheme(s)
	if app.opts.LogLevel == "" {
		if lvl, ok := logging.LookupLevel(s.Logging.Level); ok {
			app.log.SetLevel(lvl)
		}
	}
}
