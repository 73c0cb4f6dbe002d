package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
// The content is stored exactly as read.
func FromReader(r io.Reader) (Rope, error) {
	b := NewBuilder()
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// buildFromChunks builds a rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	return Rope{root: buildNodeFromChildren(leaves)}
}

// LenChars returns the total number of chars.
func (r Rope) LenChars() int {
	if r.root == nil {
		return 0
	}
	return r.root.Chars()
}

// LenBytes returns the total byte length.
func (r Rope) LenBytes() int {
	if r.root == nil {
		return 0
	}
	return r.root.Bytes()
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.LineCount()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.LenBytes() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(r.LenBytes())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the char range [start, end).
// The range is clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, r.LenChars())
	if r.root == nil || start >= end {
		return ""
	}

	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Insert inserts text at the given char offset.
// The offset is clamped to [0, LenChars()].
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}

	if r.root == nil || r.IsEmpty() {
		return FromString(text)
	}

	if offset <= 0 {
		return FromString(text).Concat(r)
	}

	if offset >= r.LenChars() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the char range [start, end).
// The range is clamped to the rope.
func (r Rope) Delete(start, end int) Rope {
	start = max(start, 0)
	if r.root == nil || start >= end {
		return r
	}

	length := r.LenChars()
	if start >= length {
		return r
	}
	end = min(end, length)

	if start == 0 && end == length {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end == length {
		left, _ := r.Split(start)
		return left
	}

	left, temp := r.Split(start)
	_, right := temp.Split(end - start)
	return left.Concat(right)
}

// Split splits the rope at a char offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.LenChars() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
// Returns a new rope; originals are unchanged.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.IsEmpty() {
		return other
	}
	if other.root == nil || other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// CharToLine returns the line containing the given char offset.
// Valid offsets are [0, LenChars()]; the end offset belongs to the last
// line. Returns false for anything else.
func (r Rope) CharToLine(offset int) (int, bool) {
	if offset < 0 || offset > r.LenChars() {
		return 0, false
	}
	if r.root == nil || offset == 0 {
		return 0, true
	}
	return r.root.newlinesBefore(offset), true
}

// LineToChar returns the char offset of the start of a line.
// Returns false when the line does not exist.
func (r Rope) LineToChar(line int) (int, bool) {
	if line < 0 || line >= r.LineCount() {
		return 0, false
	}
	if r.root == nil || line == 0 {
		return 0, true
	}
	return r.root.lineStart(line), true
}

// Line returns the text of a line including its terminator.
// Returns false when the line does not exist.
func (r Rope) Line(line int) (string, bool) {
	start, ok := r.LineToChar(line)
	if !ok {
		return "", false
	}
	end, ok := r.LineToChar(line + 1)
	if !ok {
		end = r.LenChars()
	}
	return r.Slice(start, end), true
}

// LineLen returns the char length of a line excluding its terminator.
// Returns false when the line does not exist.
func (r Rope) LineLen(line int) (int, bool) {
	start, ok := r.LineToChar(line)
	if !ok {
		return 0, false
	}
	next, ok := r.LineToChar(line + 1)
	if !ok {
		return r.LenChars() - start, true
	}

	// Only the terminator of a non-final line is excluded.
	length := next - start - 1
	if r.Summary().Flags&FlagHasCR != 0 && length > 0 && r.Slice(next-2, next-1) == "\r" {
		length--
	}
	return length, true
}

// WriteTo writes the rope's text to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Chunk().String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks in the rope.
// Useful for debugging.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}
