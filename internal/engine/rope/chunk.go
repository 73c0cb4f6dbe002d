package rope

import (
	"strings"
	"unicode/utf8"
)

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk represents a bounded string stored in leaf nodes.
// Chunks are immutable once created.
type Chunk struct {
	data    string      // The actual text (immutable)
	summary TextSummary // Precomputed metrics
}

// NewChunk creates a chunk from a string.
// Computes summary metrics eagerly.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// Chars returns the number of chars in the chunk.
func (c Chunk) Chars() int {
	return c.summary.Chars
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// byteOffset converts a char offset within the chunk to a byte offset.
func (c Chunk) byteOffset(chars int) int {
	if c.summary.Flags&FlagASCII != 0 {
		if chars > len(c.data) {
			return len(c.data)
		}
		if chars < 0 {
			return 0
		}
		return chars
	}
	return CharToByte(c.data, chars)
}

// SplitAt splits a chunk at a char offset, returning two chunks.
func (c Chunk) SplitAt(chars int) (Chunk, Chunk) {
	if chars <= 0 {
		return Chunk{}, c
	}
	if chars >= c.summary.Chars {
		return c, Chunk{}
	}

	at := c.byteOffset(chars)
	return NewChunk(c.data[:at]), NewChunk(c.data[at:])
}

// Slice returns the text between two char offsets within the chunk.
func (c Chunk) Slice(start, end int) string {
	if start >= end {
		return ""
	}
	return c.data[c.byteOffset(start):c.byteOffset(end)]
}

// newlinesBefore counts newlines in the first n chars of the chunk.
func (c Chunk) newlinesBefore(n int) int {
	if c.summary.Lines == 0 || n <= 0 {
		return 0
	}
	return strings.Count(c.data[:c.byteOffset(n)], "\n")
}

// charAfterNewline returns the char offset just past the k-th newline
// (1-indexed) in the chunk, or the chunk's char count if there are fewer.
func (c Chunk) charAfterNewline(k int) int {
	chars := 0
	for i := 0; i < len(c.data); {
		b := c.data[i]
		if b < utf8.RuneSelf {
			i++
		} else {
			_, size := utf8.DecodeRuneInString(c.data[i:])
			i += size
		}
		chars++
		if b == '\n' {
			k--
			if k == 0 {
				return chars
			}
		}
	}
	return chars
}

// Append concatenates another chunk to this one, potentially returning
// multiple chunks if the result exceeds MaxChunkSize.
func (c Chunk) Append(other Chunk) []Chunk {
	if c.IsEmpty() {
		if other.IsEmpty() {
			return nil
		}
		return []Chunk{other}
	}
	if other.IsEmpty() {
		return []Chunk{c}
	}

	combined := c.data + other.data
	if len(combined) <= MaxChunkSize {
		return []Chunk{NewChunk(combined)}
	}

	return splitIntoChunks(combined)
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	remaining := s

	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}

		splitPoint := findUTF8Boundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:splitPoint]))
		remaining = remaining[splitPoint:]
	}

	return chunks
}

// findUTF8Boundary finds a valid UTF-8 boundary near the target position.
// It prefers splitting after a newline if one exists nearby.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	searchStart := target - MinChunkSize/4
	if searchStart < 0 {
		searchStart = 0
	}
	searchEnd := target + MinChunkSize/4
	if searchEnd > len(s) {
		searchEnd = len(s)
	}

	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos < len(s) && !isUTF8Start(s[pos]) {
		pos++
	}

	if pos > target+utf8.UTFMax || pos >= len(s) {
		pos = target
		for pos > 0 && !isUTF8Start(s[pos]) {
			pos--
		}
	}

	return pos
}

// isUTF8Start returns true if the byte is the start of a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	// Continuation bytes are 10xxxxxx.
	return b&0xC0 != 0x80
}

// incompleteTail returns the length of a trailing partial UTF-8 sequence
// in s, which must not be cut off from the bytes that complete it.
func incompleteTail(s string) int {
	for n := 1; n < utf8.UTFMax && n <= len(s); n++ {
		b := s[len(s)-n]
		if !isUTF8Start(b) {
			continue
		}
		if b < utf8.RuneSelf || utf8.FullRuneInString(s[len(s)-n:]) {
			return 0
		}
		return n
	}
	return 0
}
