package buffer

import (
	"io"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/modal/internal/engine/rope"
)

// Buffer wraps a Rope with the file binding and modification state the
// editor needs.
type Buffer struct {
	rope     rope.Rope
	id       uuid.UUID
	path     string
	fileMode fs.FileMode
	dirty    bool
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		rope:     rope.New(),
		id:       uuid.New(),
		fileMode: 0o644,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
// The buffer starts clean.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = rope.FromString(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
// The content is stored byte-for-byte and the buffer starts clean.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	content, err := rope.FromReader(r)
	if err != nil {
		return nil, err
	}

	b := NewBuffer(opts...)
	b.rope = content
	return b, nil
}

// Identity

// ID returns the buffer's stable identifier.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Path returns the file path the buffer is bound to, or "".
func (b *Buffer) Path() string {
	return b.path
}

// Name returns a short display name: the path's base name, or
// "[No Name]" for an unbound buffer.
func (b *Buffer) Name() string {
	if b.path == "" {
		return "[No Name]"
	}
	return filepath.Base(b.path)
}

// IsDirty reports whether the content differs from the last load or save.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// Slice returns the text in the char range [start, end), clamped.
func (b *Buffer) Slice(start, end int) string {
	return b.rope.Slice(start, end)
}

// LenChars returns the total number of chars.
func (b *Buffer) LenChars() int {
	return b.rope.LenChars()
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// Line returns the text of a line including its terminator.
func (b *Buffer) Line(line int) (string, bool) {
	return b.rope.Line(line)
}

// LineLen returns the length of a line in chars, excluding its terminator.
func (b *Buffer) LineLen(line int) (int, bool) {
	return b.rope.LineLen(line)
}

// CharToLine returns the line containing a char offset in [0, LenChars()].
func (b *Buffer) CharToLine(offset int) (int, bool) {
	return b.rope.CharToLine(offset)
}

// LineToChar returns the char offset of the start of a line.
func (b *Buffer) LineToChar(line int) (int, bool) {
	return b.rope.LineToChar(line)
}

// Snapshot returns the current content as an immutable rope.
func (b *Buffer) Snapshot() rope.Rope {
	return b.rope
}

// Write Operations

// Insert inserts text at a char offset and marks the buffer dirty.
func (b *Buffer) Insert(offset int, text string) error {
	if offset < 0 || offset > b.rope.LenChars() {
		return ErrOffsetOutOfRange
	}
	if text == "" {
		return nil
	}

	b.rope = b.rope.Insert(offset, text)
	b.dirty = true
	return nil
}

// Delete removes count chars starting at offset and marks the buffer dirty.
// count is clamped to the end of the buffer.
func (b *Buffer) Delete(offset, count int) error {
	if offset < 0 || offset > b.rope.LenChars() || count < 0 {
		return ErrOffsetOutOfRange
	}

	end := min(offset+count, b.rope.LenChars())
	if end == offset {
		return nil
	}

	b.rope = b.rope.Delete(offset, end)
	b.dirty = true
	return nil
}
