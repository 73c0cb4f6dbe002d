package mode

import (
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/logging"
)

// Editor is what the machine drives in response to keys.
type Editor interface {
	// MoveCursor moves by dx chars and dy lines.
	MoveCursor(dx, dy int)

	// InsertText inserts at the cursor and advances past the text.
	InsertText(text string)

	// DeleteBackward deletes the char before the cursor.
	DeleteBackward()

	// Resize applies a new terminal size.
	Resize(cols, rows int)
}

// Executor runs a submitted command line.
type Executor interface {
	Execute(name string) error
}

// Logger is the logging the machine needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Result describes how the machine handled one event.
type Result struct {
	// From and To are the modes before and after the event.
	From, To Mode

	// Consumed reports whether the event had an effect in From.
	Consumed bool

	// Executed reports that a command line was submitted; Command holds it.
	Executed bool
	Command  string

	// Err is the error returned by the command, if any.
	Err error
}

// Transitioned reports whether the event changed the kind of mode.
func (r Result) Transitioned() bool {
	return r.From.Name() != r.To.Name()
}

// ChangeCallback is called when the kind of mode changes.
type ChangeCallback func(from, to Mode)

// Machine is the modal input state machine.
type Machine struct {
	current  Mode
	editor   Editor
	executor Executor
	logger   Logger

	callbacks []ChangeCallback
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the machine's logger.
func WithLogger(l Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMachine creates a machine in Normal mode.
func NewMachine(editor Editor, executor Executor, opts ...Option) *Machine {
	m := &Machine{
		current:  Normal{},
		editor:   editor,
		executor: executor,
		logger:   logging.NullLogger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the current mode.
func (m *Machine) Current() Mode {
	return m.current
}

// OnChange registers a callback for mode changes.
func (m *Machine) OnChange(cb ChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// Handle routes one key event according to the current mode.
func (m *Machine) Handle(ev key.Event) Result {
	res := Result{From: m.current}

	var next Mode
	switch cur := m.current.(type) {
	case Normal:
		next, res.Consumed = m.handleNormal(ev)
	case EnteringCommand:
		next, res.Consumed = m.handleCommand(cur, ev, &res)
	case Insert:
		next, res.Consumed = m.handleInsert(ev)
	}

	m.setMode(next)
	res.To = m.current
	return res
}

// HandleResize forwards a terminal resize to the editor. The mode and any
// command-line text are unchanged.
func (m *Machine) HandleResize(cols, rows int) Result {
	m.editor.Resize(cols, rows)
	return Result{From: m.current, To: m.current, Consumed: true}
}

func (m *Machine) setMode(next Mode) {
	prev := m.current
	m.current = next
	if prev.Name() == next.Name() {
		return
	}

	m.logger.Debug("mode %s -> %s", prev.Name(), next.Name())
	for _, cb := range m.callbacks {
		cb(prev, next)
	}
}

// arrowDelta returns the cursor motion for an unmodified arrow key.
func arrowDelta(ev key.Event) (dx, dy int, ok bool) {
	if ev.Modifiers != key.ModNone {
		return 0, 0, false
	}
	switch ev.Key {
	case key.KeyLeft:
		return -1, 0, true
	case key.KeyRight:
		return 1, 0, true
	case key.KeyDown:
		return 0, 1, true
	case key.KeyUp:
		return 0, -1, true
	}
	return 0, 0, false
}

func (m *Machine) handleNormal(ev key.Event) (Mode, bool) {
	if dx, dy, ok := arrowDelta(ev); ok {
		m.editor.MoveCursor(dx, dy)
		return Normal{}, true
	}
	if !ev.IsChar() {
		return Normal{}, false
	}

	switch ev.Rune {
	case ':':
		return EnteringCommand{}, true
	case 'i':
		return Insert{}, true
	case 'h':
		m.editor.MoveCursor(-1, 0)
	case 'l':
		m.editor.MoveCursor(1, 0)
	case 'j':
		m.editor.MoveCursor(0, 1)
	case 'k':
		m.editor.MoveCursor(0, -1)
	default:
		return Normal{}, false
	}
	return Normal{}, true
}

func (m *Machine) handleCommand(cur EnteringCommand, ev key.Event, res *Result) (Mode, bool) {
	switch {
	case ev.IsChar():
		return EnteringCommand{Text: cur.Text + string(ev.Rune)}, true

	case ev.IsBackspace():
		text := []rune(cur.Text)
		if len(text) > 0 {
			text = text[:len(text)-1]
		}
		return EnteringCommand{Text: string(text)}, true

	case ev.IsEscape():
		return Normal{}, true

	case ev.IsEnter():
		res.Executed = true
		res.Command = cur.Text
		if err := m.executor.Execute(cur.Text); err != nil {
			m.logger.Warn("command %q failed: %v", cur.Text, err)
			res.Err = err
		}
		return Normal{}, true
	}

	return cur, false
}

func (m *Machine) handleInsert(ev key.Event) (Mode, bool) {
	if dx, dy, ok := arrowDelta(ev); ok {
		m.editor.MoveCursor(dx, dy)
		return Insert{}, true
	}

	switch {
	case ev.IsEscape():
		return Normal{}, true
	case ev.IsChar():
		m.editor.InsertText(string(ev.Rune))
	case ev.IsTab():
		m.editor.InsertText("\t")
	case ev.IsEnter():
		m.editor.InsertText("\n")
	case ev.IsBackspace():
		m.editor.DeleteBackward()
	default:
		return Insert{}, false
	}
	return Insert{}, true
}
