package app

import (
	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/renderer"
	"github.com/dshills/modal/internal/renderer/backend"
)

// interruptKey always quits, whatever the configured quit key is.
var interruptKey = key.NewRuneEvent('c', key.ModCtrl)

// eventLoop renders, waits for one event and dispatches it, until an
// event handler returns an error or Shutdown is called.
func (app *Application) eventLoop(b backend.Backend) error {
	for {
		if app.stopping.Load() {
			return ErrQuit
		}

		app.render()

		ev := b.PollEvent()
		if err := app.handleBackendEvent(ev); err != nil {
			return err
		}
	}
}

func (app *Application) render() {
	app.renderer.Render(app.editor, app.machine.Current())
}

// handleBackendEvent processes a single event from the backend.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventReload:
		app.reloadConfig()
	case backend.EventInterrupt:
		// Wakes the loop so it can see a pending shutdown.
	}
	return nil
}

// handleKeyEvent checks the quit keys and hands everything else to the
// mode machine.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	if ev.Key.Equals(app.Config().QuitKey()) || ev.Key.Equals(interruptKey) {
		return ErrQuit
	}

	res := app.machine.Handle(ev.Key)
	if !res.Consumed {
		app.logger.Debug("key ignored in %s: %s", res.From.Name(), ev.Key)
	}
	return nil
}

func (app *Application) handleResize(ev backend.Event) {
	app.machine.HandleResize(ev.Width, ev.Height)
	app.renderer.Resize(ev.Width, ev.Height)
}

// reloadConfig re-reads the configuration after the file changed. An
// invalid file is logged and the current settings stay in place.
func (app *Application) reloadConfig() {
	cfg, err := app.loadConfig()
	if err != nil {
		app.logger.Warn("config reload ignored: %v", err)
		return
	}
	app.applyConfig(cfg)
	app.logger.Info("config reloaded: %s", app.opts.ConfigPath)
}

// applyConfig makes cfg the active configuration and pushes the settings
// that can change at runtime into the components.
func (app *Application) applyConfig(cfg *config.Config) {
	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.editor.SetScrolloff(cfg.Editor.Scrolloff)
	app.renderer.SetOptions(renderer.OptionsFromConfig(cfg))
	app.editor.MarkRedraw()
}
