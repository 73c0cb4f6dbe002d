// Package viewport maps buffer lines onto the rows of the screen.
package viewport

import "github.com/dshills/modal/internal/engine/rope"

// Text is the read access the viewport needs from a buffer.
// *buffer.Buffer satisfies it.
type Text interface {
	LineCount() int
	Line(line int) (string, bool)
	CharToLine(offset int) (int, bool)
	LineToChar(line int) (int, bool)
}

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	// First visible line
	topLine int

	// Size in screen cells
	rows int
	cols int

	// Lines of context kept between the cursor and the top or bottom edge
	scrolloff int
}

// New creates a viewport with the given size.
// Rows and cols are clamped to a minimum of 1.
func New(rows, cols int) *Viewport {
	return &Viewport{
		rows: max(rows, 1),
		cols: max(cols, 1),
	}
}

// Rows returns the number of text rows.
func (v *Viewport) Rows() int {
	return v.rows
}

// Cols returns the number of screen columns.
func (v *Viewport) Cols() int {
	return v.cols
}

// ScrollOffset returns the first visible line.
func (v *Viewport) ScrollOffset() int {
	return v.topLine
}

// BottomLine returns the last line the viewport can show, whether or not
// the buffer reaches it.
func (v *Viewport) BottomLine() int {
	return v.topLine + v.rows - 1
}

// Resize updates the viewport size. It does not scroll; call Reveal
// afterwards to bring the cursor line back into view.
func (v *Viewport) Resize(rows, cols int) {
	v.rows = max(rows, 1)
	v.cols = max(cols, 1)
}

// SetScrolloff sets the number of context lines kept around the cursor.
func (v *Viewport) SetScrolloff(n int) {
	v.scrolloff = max(n, 0)
}

// Scrolloff returns the configured scroll margin.
func (v *Viewport) Scrolloff() int {
	return v.scrolloff
}

// effectiveScrolloff limits the margin so the top and bottom margins
// never overlap.
func (v *Viewport) effectiveScrolloff() int {
	return min(v.scrolloff, (v.rows-1)/2)
}

// IsLineVisible returns true if the line is within the viewport.
func (v *Viewport) IsLineVisible(line int) bool {
	return line >= v.topLine && line <= v.BottomLine()
}

// LineToScreenRow converts a buffer line to a screen row.
// Returns -1 if the line is not visible.
func (v *Viewport) LineToScreenRow(line int) int {
	if !v.IsLineVisible(line) {
		return -1
	}
	return line - v.topLine
}

// ScreenPosition converts a char offset into a (col, row) screen position.
// The row saturates at 0 for lines above the viewport. The column is the
// char column within the line; display width is the renderer's concern.
func (v *Viewport) ScreenPosition(t Text, index int) (col, row int) {
	line, ok := t.CharToLine(index)
	if !ok {
		if index < 0 {
			return 0, 0
		}
		line = t.LineCount() - 1
	}
	start, _ := t.LineToChar(line)
	return max(index-start, 0), max(line-v.topLine, 0)
}

// VisibleLines returns up to Rows() lines starting at the scroll offset,
// with line terminators removed.
func (v *Viewport) VisibleLines(t Text) []string {
	end := min(v.topLine+v.rows, t.LineCount())
	if end <= v.topLine {
		return nil
	}

	lines := make([]string, 0, end-v.topLine)
	for i := v.topLine; i < end; i++ {
		text, _ := t.Line(i)
		lines = append(lines, rope.TrimLineEnding(text))
	}
	return lines
}

// ScrollTo shows the given line at the top, clamped to the buffer.
func (v *Viewport) ScrollTo(line, lineCount int) {
	v.topLine = min(max(line, 0), max(lineCount-1, 0))
}

// Reveal scrolls minimally so that line is visible with the scroll margin
// kept above and below it where the buffer allows. The view never starts
// past the point where the last line sits on the bottom row.
// Returns true if the scroll offset changed.
func (v *Viewport) Reveal(line, lineCount int) bool {
	line = min(max(line, 0), max(lineCount-1, 0))
	margin := v.effectiveScrolloff()
	top := v.topLine

	if line < top+margin {
		top = max(line-margin, 0)
	} else if line > top+v.rows-1-margin {
		top = line - v.rows + 1 + margin
	}

	top = min(top, max(lineCount-v.rows, 0))
	top = max(top, 0)

	if top == v.topLine {
		return false
	}
	v.topLine = top
	return true
}
