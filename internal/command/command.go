// Package command maps command-line names to actions.
//
// A Registry is filled once at startup and only read afterwards. Names are
// matched exactly; anything unregistered resolves to a no-op that is
// logged, so a typo on the command line never fails.
package command

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/modal/internal/logging"
)

// ErrUnrecognized is returned by Resolve for names with no binding.
var ErrUnrecognized = errors.New("unrecognized command")

// Target is the editor state a command may use. It is read-only apart
// from persisting the active buffer; nothing here can change the mode.
type Target interface {
	// BufferName returns the display name of the active buffer.
	BufferName() string

	// BufferPath returns the file path of the active buffer, or "".
	BufferPath() string

	// CursorIndex returns the cursor's char offset.
	CursorIndex() int

	// SaveActive writes the active buffer to its file.
	SaveActive() error
}

// Command is an action bound to a name.
type Command interface {
	Execute(t Target) error
}

// Func adapts a function to the Command interface.
type Func func(t Target) error

// Execute implements Command.
func (f Func) Execute(t Target) error {
	return f(t)
}

// Noop is the command unrecognized names resolve to.
var Noop Command = Func(func(Target) error { return nil })

// Logger is the logging the registry needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Registry maps exact command names to commands.
type Registry struct {
	commands map[string]Command
	logger   Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's logger.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]Command),
		logger:   logging.NullLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry creates a registry with the built-in bindings:
// the empty command line saves the active buffer.
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.Register("", Save)
	return r
}

// Register binds name to cmd, replacing any existing binding.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd
}

// Lookup returns the command bound to name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Resolve returns the command bound to name. Unbound names resolve to
// Noop together with an error wrapping ErrUnrecognized.
func (r *Registry) Resolve(name string) (Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	return Noop, fmt.Errorf("%w: %q", ErrUnrecognized, name)
}

// Execute runs the command bound to name against t. An unrecognized name
// is logged and treated as a no-op.
func (r *Registry) Execute(name string, t Target) error {
	cmd, err := r.Resolve(name)
	if err != nil {
		r.logger.Warn("%v", err)
	} else {
		r.logger.Info("command issued: %q", name)
	}

	if err := cmd.Execute(t); err != nil {
		r.logger.Error("command %q failed: %v", name, err)
		return fmt.Errorf("command %q: %w", name, err)
	}
	return nil
}

// Names returns all bound names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save persists the active buffer.
var Save Command = Func(func(t Target) error {
	return t.SaveActive()
})
