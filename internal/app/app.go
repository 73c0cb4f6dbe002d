// Package app wires the editor, the mode machine, the command registry and
// the renderer together and runs the event loop.
package app

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/modal/internal/command"
	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/editor"
	"github.com/dshills/modal/internal/engine/buffer"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/logging"
	"github.com/dshills/modal/internal/renderer"
	"github.com/dshills/modal/internal/renderer/backend"
)

// Application is the central coordinator for the editor components.
type Application struct {
	mu sync.RWMutex

	config    *config.Config
	logger    *logging.Logger
	logCloser io.Closer

	editor   *editor.Editor
	registry *command.Registry
	machine  *mode.Machine

	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  *config.Watcher

	running  atomic.Bool
	stopping atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means
	// built-in defaults and environment only.
	ConfigPath string

	// Files are files to open on startup. The first one is active.
	Files []string

	// Overrides is applied to every loaded configuration, before
	// validation. Command-line flags use it so they win over the file
	// and the environment, including on reload.
	Overrides func(*config.Config)

	// Logger replaces the logger built from the configuration.
	Logger *logging.Logger
}

// New loads the configuration, opens the files and builds the editor.
// A file that does not exist opens as an empty buffer bound to its path.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logging
	if err := app.setupLogging(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	// 3. Buffers
	bufs := make([]*buffer.Buffer, 0, len(app.opts.Files))
	for _, path := range app.opts.Files {
		b, err := app.openBuffer(path)
		if err != nil {
			return err
		}
		bufs = append(bufs, b)
	}

	// 4. Editor, sized for a default terminal until Run knows the real size
	app.editor = editor.New(80, 24,
		editor.WithBuffers(bufs...),
		editor.WithScrolloff(cfg.Editor.Scrolloff),
		editor.WithLogger(app.logger.WithComponent("editor")),
	)

	// 5. Commands and modes
	app.registry = command.NewDefaultRegistry(command.WithLogger(app.logger.WithComponent("command")))
	app.machine = mode.NewMachine(app.editor, &commandExecutor{registry: app.registry, target: app.editor},
		mode.WithLogger(app.logger.WithComponent("mode")))
	app.machine.OnChange(func(from, to mode.Mode) {
		app.logger.Debug("mode changed from %s to %s", from.Name(), to.Name())
	})

	return nil
}

// loadConfig reads the config file and environment, applies the
// overrides and validates the result.
func (app *Application) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if app.opts.Overrides != nil {
		app.opts.Overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (app *Application) setupLogging() error {
	switch {
	case app.opts.Logger != nil:
		app.logger = app.opts.Logger
	case app.config.Logging.File != "":
		logger, closer, err := logging.OpenFile(app.config.Logging.File, app.config.LogLevel())
		if err != nil {
			return err
		}
		app.logger = logger
		app.logCloser = closer
	default:
		app.logger = logging.NullLogger
	}
	return nil
}

func (app *Application) closeLog() {
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}

// openBuffer loads path, or creates an empty buffer bound to it when the
// file does not exist yet.
func (app *Application) openBuffer(path string) (*buffer.Buffer, error) {
	b, err := buffer.Load(path)
	switch {
	case err == nil:
		app.logger.Info("buffer loaded: %s (id %s, %d lines)", path, b.ID(), b.LineCount())
		return b, nil
	case errors.Is(err, buffer.ErrNotFound):
		b = buffer.NewBuffer(buffer.WithPath(path))
		app.logger.Info("new file: %s (id %s)", path, b.ID())
		return b, nil
	default:
		app.logger.Error("open %s: %v", path, err)
		return nil, NewOperationError("open", path, err)
	}
}

// OpenFile opens a file in a new buffer and makes it active.
func (app *Application) OpenFile(path string) error {
	b, err := app.openBuffer(path)
	if err != nil {
		return err
	}
	app.editor.Open(b)
	return nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop until a quit key,
// Shutdown, or a fatal error. A normal exit returns nil.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.closeLog()

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	width, height := b.Size()
	app.editor.Resize(width, height)
	app.renderer = renderer.New(b, renderer.OptionsFromConfig(app.config))

	app.startWatcher(b)
	defer app.stopWatcher()

	app.logger.Info("running: %dx%d, %d buffer(s)", width, height, app.editor.BufferCount())

	err := app.eventLoop(b)
	if errors.Is(err, ErrQuit) {
		app.logger.Info("quit")
		return nil
	}
	return err
}

// startWatcher watches the config file when live reload is enabled. A
// watcher that cannot start is logged and skipped.
func (app *Application) startWatcher(b backend.Backend) {
	if !app.config.Watch.Enabled || app.opts.ConfigPath == "" {
		return
	}

	w, err := config.NewWatcher(app.opts.ConfigPath, func() {
		b.PostEvent(backend.Event{Type: backend.EventReload})
	}, config.WithErrorHandler(func(err error) {
		app.logger.Warn("config watcher: %v", err)
	}))
	if err != nil {
		app.logger.Warn("config watcher disabled: %v", err)
		return
	}
	app.watcher = w
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
}

// Shutdown asks a running event loop to exit. It is safe to call from
// any goroutine, for instance a signal handler.
func (app *Application) Shutdown() {
	if !app.stopping.CompareAndSwap(false, true) {
		return
	}

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Editor returns the editor.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Mode returns the current input mode.
func (app *Application) Mode() mode.Mode {
	return app.machine.Current()
}

// Registry returns the command registry.
func (app *Application) Registry() *command.Registry {
	return app.registry
}

// commandExecutor runs submitted command lines against the editor.
type commandExecutor struct {
	registry *command.Registry
	target   command.Target
}

func (c *commandExecutor) Execute(name string) error {
	return c.registry.Execute(name, c.target)
}
