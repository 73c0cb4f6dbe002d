package cursor

import "fmt"

// Text is the read access a cursor needs to resolve lines and columns.
// *buffer.Buffer satisfies it.
type Text interface {
	LenChars() int
	LineCount() int
	CharToLine(offset int) (int, bool)
	LineToChar(line int) (int, bool)
	LineLen(line int) (int, bool)
}

// Cursor represents an insertion point in a buffer.
type Cursor struct {
	index  int
	sticky int
}

// New creates a cursor at the given char offset with a sticky column of
// the same value, which is correct for a position on the first line.
// Use Validate against the real text for anything else.
func New(index int) Cursor {
	index = max(index, 0)
	return Cursor{index: index, sticky: index}
}

// Index returns the cursor's char offset.
func (c Cursor) Index() int {
	return c.index
}

// StickyColumn returns the column vertical motion aims for.
func (c Cursor) StickyColumn() int {
	return c.sticky
}

// Line returns the line containing the cursor.
func (c Cursor) Line(t Text) int {
	line, ok := t.CharToLine(c.index)
	if !ok {
		return max(t.LineCount()-1, 0)
	}
	return line
}

// Column returns the cursor's char column within its line.
func (c Cursor) Column(t Text) int {
	start, _ := t.LineToChar(c.Line(t))
	return max(c.index-start, 0)
}

// Position returns the cursor's line and column.
func (c Cursor) Position(t Text) (line, col int) {
	line = c.Line(t)
	start, _ := t.LineToChar(line)
	return line, max(c.index-start, 0)
}

// Move returns the cursor moved by dx chars and dy lines.
//
// Vertical motion is applied first: the target line is clamped to the
// text and the column is the sticky column limited to that line's length.
// Horizontal motion then moves within the resulting line, clamped to
// [line start, line start + line length], and refreshes the sticky column.
// A purely vertical move keeps the sticky column.
func (c Cursor) Move(t Text, dx, dy int) Cursor {
	if dx == 0 && dy == 0 {
		return c
	}

	c = c.clamp(t)
	line := c.Line(t)

	if dy != 0 {
		line = min(max(line+dy, 0), t.LineCount()-1)
		start, _ := t.LineToChar(line)
		length, _ := t.LineLen(line)
		c.index = start + min(c.sticky, length)
	}

	if dx != 0 {
		start, _ := t.LineToChar(line)
		length, _ := t.LineLen(line)
		c.index = min(max(c.index+dx, start), start+length)
		c.sticky = c.index - start
	}

	return c
}

// MoveTo returns a cursor at the given offset, validated against t.
func (c Cursor) MoveTo(t Text, index int) Cursor {
	return Cursor{index: index}.Validate(t)
}

// Advance returns the cursor moved forward by n chars, typically after
// inserting n chars at its position. The sticky column is refreshed.
func (c Cursor) Advance(t Text, n int) Cursor {
	return Cursor{index: c.index + n}.Validate(t)
}

// Validate clamps the cursor into [0, LenChars()], keeps it off line
// terminators and resets the sticky column to its actual column.
// Call it after the underlying text changed in ways the cursor did not
// follow, such as switching buffers.
func (c Cursor) Validate(t Text) Cursor {
	c = c.clamp(t)

	line := c.Line(t)
	start, _ := t.LineToChar(line)
	length, _ := t.LineLen(line)
	c.index = min(c.index, start+length)
	c.sticky = c.index - start
	return c
}

// clamp limits the index to the text without touching the sticky column.
func (c Cursor) clamp(t Text) Cursor {
	c.index = min(max(c.index, 0), t.LenChars())
	return c
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d, sticky=%d)", c.index, c.sticky)
}

// Equals returns true if two cursors are at the same position.
func (c Cursor) Equals(other Cursor) bool {
	return c.index == other.index
}
