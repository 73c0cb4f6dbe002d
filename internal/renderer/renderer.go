package renderer

import (
	"sync"

	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/renderer/backend"
)

// View is the editor state the renderer paints.
type View interface {
	// VisibleLines returns the lines in the text area, top to bottom.
	VisibleLines() []string

	// ScreenPosition returns the cursor's char column and text row.
	ScreenPosition() (col, row int)

	// NeedsRedraw reports whether the text area changed.
	NeedsRedraw() bool

	// ClearRedraw acknowledges a repaint of the text area.
	ClearRedraw()

	// StatusText returns the status line for a mode indicator.
	StatusText(mode string) string
}

// Options configures the renderer.
type Options struct {
	// TabWidth is the distance between tab stops in cells.
	TabWidth int

	// TextStyle paints the text area.
	TextStyle backend.Style

	// StatusStyle paints the status line.
	StatusStyle backend.Style
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	status := backend.DefaultStyle()
	status.Attributes = backend.AttrReverse

	return Options{
		TabWidth:    4,
		TextStyle:   backend.DefaultStyle(),
		StatusStyle: status,
	}
}

// OptionsFromConfig derives options from the editor configuration. When
// neither status color is set the status line is painted in reverse video.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.TabWidth = cfg.Editor.TabWidth

	fg, fgOK, bg, bgOK := cfg.StatusColors()
	if !fgOK && !bgOK {
		return opts
	}

	status := backend.DefaultStyle()
	if fgOK {
		status.Foreground = backend.ColorFromColorful(fg)
	}
	if bgOK {
		status.Background = backend.ColorFromColorful(bg)
	}
	opts.StatusStyle = status
	return opts
}

// Renderer paints a View onto a backend.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	width   int
	height  int

	frameCount uint64
	fullRedraw bool
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, opts Options) *Renderer {
	width, height := b.Size()
	return &Renderer{
		opts:       opts,
		backend:    b,
		width:      width,
		height:     height,
		fullRedraw: true,
	}
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// SetOptions replaces the options and forces a full repaint.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.opts = opts
	r.fullRedraw = true
}

// Resize updates the screen size and forces a full repaint.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height
	r.fullRedraw = true
}

// Size returns the screen size the renderer paints.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Render paints one frame.
func (r *Renderer) Render(view View, m mode.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width <= 0 || r.height <= 0 {
		return
	}

	lines := view.VisibleLines()
	if r.fullRedraw || view.NeedsRedraw() {
		if r.fullRedraw {
			r.backend.Clear()
		}
		for row := 0; row < r.textRows(); row++ {
			var line string
			if row < len(lines) {
				line = lines[row]
			}
			r.renderLine(row, line)
		}
		view.ClearRedraw()
		r.fullRedraw = false
	}

	if r.height > 1 {
		r.renderStatus(view.StatusText(m.DisplayName()))
	}
	r.renderCursor(view, lines, m)

	r.backend.Show()
	r.frameCount++
}

// textRows returns the number of rows above the status line.
func (r *Renderer) textRows() int {
	return max(r.height-1, 1)
}

// renderLine paints one text row and blanks the rest of it.
func (r *Renderer) renderLine(row int, line string) {
	cells := layoutLine(line, r.opts.TabWidth, r.width, r.opts.TextStyle)
	r.paintRow(row, cells, r.opts.TextStyle)
}

// renderStatus paints the status line on the last row.
func (r *Renderer) renderStatus(text string) {
	cells := layoutLine(text, r.opts.TabWidth, r.width, r.opts.StatusStyle)
	r.paintRow(r.height-1, cells, r.opts.StatusStyle)
}

func (r *Renderer) paintRow(row int, cells []backend.Cell, fill backend.Style) {
	for x, cell := range cells {
		r.backend.SetCell(x, row, cell)
	}
	blank := backend.Cell{Rune: ' ', Style: fill}
	for x := len(cells); x < r.width; x++ {
		r.backend.SetCell(x, row, blank)
	}
}

// renderCursor shapes the cursor for the mode and places it at the
// display column of the cursor's char.
func (r *Renderer) renderCursor(view View, lines []string, m mode.Mode) {
	col, row := view.ScreenPosition()
	if row < 0 || row >= r.textRows() {
		r.backend.HideCursor()
		return
	}

	var line string
	if row < len(lines) {
		line = lines[row]
	}
	x := displayColumn(line, col, r.opts.TabWidth)
	if x >= r.width {
		x = r.width - 1
	}

	switch m.CursorStyle() {
	case mode.CursorBar:
		r.backend.SetCursorStyle(backend.CursorBar)
	default:
		r.backend.SetCursorStyle(backend.CursorBlock)
	}
	r.backend.ShowCursor(x, row)
}
