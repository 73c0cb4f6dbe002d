package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/modal/internal/engine/buffer"
	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/logging"
	"github.com/dshills/modal/internal/renderer/viewport"
)

// Logger is the logging the editor needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Editor holds the open buffers, the cursor and the viewport.
type Editor struct {
	buffers []*buffer.Buffer
	active  int

	cursor cursor.Cursor
	view   *viewport.Viewport
	redraw bool

	logger Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithScrolloff sets the number of lines kept visible around the cursor.
func WithScrolloff(n int) Option {
	return func(e *Editor) {
		e.view.SetScrolloff(n)
	}
}

// WithBuffers opens the given buffers. The first one becomes active.
func WithBuffers(bufs ...*buffer.Buffer) Option {
	return func(e *Editor) {
		for _, b := range bufs {
			if b != nil {
				e.buffers = append(e.buffers, b)
			}
		}
	}
}

// New creates an editor for a terminal of cols x rows cells. One row is
// reserved for the status line. Without WithBuffers the editor starts
// with a single empty scratch buffer.
func New(cols, rows int, opts ...Option) *Editor {
	e := &Editor{
		view:   viewport.New(textRows(rows), cols),
		redraw: true,
		logger: logging.NullLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.buffers) == 0 {
		e.buffers = append(e.buffers, buffer.NewBuffer())
	}

	e.cursor = cursor.New(0).Validate(e.Buffer())
	e.logger.Info("editor created: %d buffer(s), %dx%d", len(e.buffers), cols, rows)
	return e
}

// textRows returns the rows available for text in a terminal of the
// given height.
func textRows(rows int) int {
	return max(rows-1, 1)
}

// Buffer returns the active buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buffers[e.active]
}

// Buffers returns all open buffers in open order.
func (e *Editor) Buffers() []*buffer.Buffer {
	out := make([]*buffer.Buffer, len(e.buffers))
	copy(out, e.buffers)
	return out
}

// BufferCount returns the number of open buffers.
func (e *Editor) BufferCount() int {
	return len(e.buffers)
}

// ActiveIndex returns the index of the active buffer.
func (e *Editor) ActiveIndex() int {
	return e.active
}

// Open appends b and makes it the active buffer.
func (e *Editor) Open(b *buffer.Buffer) {
	e.buffers = append(e.buffers, b)
	e.logger.Info("buffer opened: %s", b.Name())
	_ = e.SwitchTo(len(e.buffers) - 1)
}

// SwitchTo makes the buffer at index i active. The cursor keeps its char
// index where the new buffer allows it and is clamped otherwise.
func (e *Editor) SwitchTo(i int) error {
	if i < 0 || i >= len(e.buffers) {
		return fmt.Errorf("%w: %d", ErrNoSuchBuffer, i)
	}

	e.active = i
	e.cursor = e.cursor.Validate(e.Buffer())
	e.view.ScrollTo(0, e.Buffer().LineCount())
	e.reveal()
	e.redraw = true

	e.logger.Debug("switched to buffer %d (%s)", i, e.Buffer().Name())
	return nil
}

// Next activates the buffer after the active one, wrapping around.
func (e *Editor) Next() {
	_ = e.SwitchTo((e.active + 1) % len(e.buffers))
}

// Prev activates the buffer before the active one, wrapping around.
func (e *Editor) Prev() {
	_ = e.SwitchTo((e.active - 1 + len(e.buffers)) % len(e.buffers))
}

// Cursor returns the cursor.
func (e *Editor) Cursor() cursor.Cursor {
	return e.cursor
}

// CursorIndex returns the cursor's char offset in the active buffer.
func (e *Editor) CursorIndex() int {
	return e.cursor.Index()
}

// CursorLine returns the line containing the cursor.
func (e *Editor) CursorLine() int {
	return e.cursor.Line(e.Buffer())
}

// Viewport returns the viewport.
func (e *Editor) Viewport() *viewport.Viewport {
	return e.view
}

// MoveCursor moves the cursor by dx chars and dy lines.
func (e *Editor) MoveCursor(dx, dy int) {
	before := e.cursor.Index()
	e.cursor = e.cursor.Move(e.Buffer(), dx, dy)
	e.reveal()

	col, row := e.ScreenPosition()
	e.logger.Debug("cursor moved x: %d, y: %d, from index %d to %d", col, row, before, e.cursor.Index())
}

// InsertText inserts text at the cursor and moves the cursor past it.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}

	b := e.Buffer()
	idx := e.cursor.Index()
	if err := b.Insert(idx, text); err != nil {
		e.logger.Error("insert at %d: %v", idx, err)
		return
	}

	e.cursor = e.cursor.Advance(b, utf8.RuneCountInString(text))
	e.redraw = true
	e.reveal()
}

// DeleteBackward deletes the char before the cursor. A "\r\n" terminator
// is removed as a unit. At the start of the buffer it does nothing.
func (e *Editor) DeleteBackward() {
	idx := e.cursor.Index()
	if idx == 0 {
		return
	}

	b := e.Buffer()
	n := 1
	if idx >= 2 && b.Slice(idx-2, idx) == "\r\n" {
		n = 2
	}

	if err := b.Delete(idx-n, n); err != nil {
		e.logger.Error("delete at %d: %v", idx-n, err)
		return
	}

	e.cursor = e.cursor.MoveTo(b, idx-n)
	e.redraw = true
	e.reveal()
}

// Resize applies a new terminal size. One row is kept for the status line.
func (e *Editor) Resize(cols, rows int) {
	e.view.Resize(textRows(rows), cols)
	e.reveal()
	e.redraw = true
	e.logger.Debug("resized to %dx%d", cols, rows)
}

// SetScrolloff changes the scroll margin and re-reveals the cursor.
func (e *Editor) SetScrolloff(n int) {
	e.view.SetScrolloff(n)
	e.reveal()
	e.redraw = true
}

func (e *Editor) reveal() {
	if e.view.Reveal(e.CursorLine(), e.Buffer().LineCount()) {
		e.redraw = true
	}
}

// VisibleLines returns the lines to paint, without terminators.
func (e *Editor) VisibleLines() []string {
	return e.view.VisibleLines(e.Buffer())
}

// ScreenPosition returns the cursor's (col, row) in the text area. The
// column counts chars, not display cells.
func (e *Editor) ScreenPosition() (col, row int) {
	return e.view.ScreenPosition(e.Buffer(), e.cursor.Index())
}

// NeedsRedraw reports whether the text area must be repainted.
func (e *Editor) NeedsRedraw() bool {
	return e.redraw
}

// MarkRedraw forces a repaint of the text area.
func (e *Editor) MarkRedraw() {
	e.redraw = true
}

// ClearRedraw is called by the renderer after painting the text area.
func (e *Editor) ClearRedraw() {
	e.redraw = false
}

// StatusText returns the status line for the given mode indicator.
func (e *Editor) StatusText(mode string) string {
	col, row := e.ScreenPosition()

	var sb strings.Builder
	fmt.Fprintf(&sb, " %s index: %d, x: %d, y: %d, line: %d",
		mode, e.cursor.Index(), col, row, e.CursorLine())

	b := e.Buffer()
	sb.WriteString("  ")
	sb.WriteString(b.Name())
	if b.IsDirty() {
		sb.WriteString(" [+]")
	}
	return sb.String()
}

// BufferName returns the display name of the active buffer.
func (e *Editor) BufferName() string {
	return e.Buffer().Name()
}

// BufferPath returns the path of the active buffer.
func (e *Editor) BufferPath() string {
	return e.Buffer().Path()
}

// SaveActive writes the active buffer to its file.
func (e *Editor) SaveActive() error {
	b := e.Buffer()
	if err := b.Save(); err != nil {
		return err
	}
	e.logger.Info("buffer saved: %s (id %s, %d lines)", b.Path(), b.ID(), b.LineCount())
	return nil
}
