// Package backend abstracts the terminal the editor draws on.
//
// Terminal drives a real terminal through tcell. NullBackend keeps cells in
// memory and is used by tests.
package backend

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/modal/internal/input/key"
)

// Color is a 24-bit color or the terminal's default color.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault is the terminal's own foreground or background color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromColorful converts a go-colorful color, clamping it into the
// RGB gamut first.
func ColorFromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Attribute is a bit set of text attributes.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrReverse
	AttrUnderline
)

// Has returns true if the attribute set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Style describes how a cell is painted.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal's default colors and no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// Cell is one screen cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// ContinuationCell fills the second column of a wide rune.
func ContinuationCell() Cell {
	return Cell{Style: DefaultStyle()}
}

// IsContinuation returns true for the second column of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Rune == 0
}

// CursorStyle represents the terminal cursor shape.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorHidden
)

// EventType identifies the kind of backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventReload asks the event loop to reload its configuration.
	EventReload
	// EventInterrupt wakes the event loop, for instance on a signal.
	EventInterrupt
)

// String returns a name for the event type.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventReload:
		return "reload"
	case EventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Event is an input event from the backend.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Backend is a drawable terminal.
type Backend interface {
	// Init prepares the terminal for drawing.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the terminal size in cells.
	Size() (width, height int)

	// SetCell sets one cell. Out of range coordinates are ignored.
	SetCell(x, y int, cell Cell)

	// Clear blanks the screen.
	Clear()

	// Show flushes pending changes to the terminal.
	Show()

	// ShowCursor places the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorStyle sets the cursor shape.
	SetCursorStyle(style CursorStyle)

	// PollEvent blocks until an event is available.
	PollEvent() Event

	// PostEvent queues an event for PollEvent. It is safe to call from
	// any goroutine and drops the event if the queue is full.
	PostEvent(event Event)
}

// NullBackend is an in-memory backend for tests.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	shows         int
	events        chan Event
}

// NewNullBackend creates a null backend with the given size.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = EmptyCell()
		}
	}
}

// Init implements Backend.
func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

// Shutdown implements Backend.
func (b *NullBackend) Shutdown() {}

// Size implements Backend.
func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

// SetCell implements Backend.
func (b *NullBackend) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at (x, y), or an empty cell out of range.
func (b *NullBackend) GetCell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell()
}

// Row returns the runes of row y as a string, trailing blanks included.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		if c.Rune == 0 {
			continue
		}
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

// Clear implements Backend.
func (b *NullBackend) Clear() {
	empty := EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

// Show implements Backend.
func (b *NullBackend) Show() {
	b.shows++
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	return b.shows
}

// ShowCursor implements Backend.
func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

// HideCursor implements Backend.
func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

// SetCursorStyle implements Backend.
func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.cursorStyle = style
}

// PollEvent implements Backend.
func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

// PostEvent implements Backend.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

// CursorPosition returns the cursor position and visibility.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the current cursor style.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	return b.cursorStyle
}

// Resize changes the size, clears the cells and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
