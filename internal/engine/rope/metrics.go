package rope

import (
	"strings"
	"unicode/utf8"
)

// TextSummary holds aggregated metrics for a text span.
// This is the "summary" type of the tree, combined with Add.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the rune count. Invalid UTF-8 bytes count as one char each,
	// matching utf8.DecodeRuneInString.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all bytes are ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines

	// FlagHasCR indicates the text contains carriage returns.
	FlagHasCR
)

// Add combines two summaries (monoid operation).
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		// ASCII must hold on both sides; the other flags on either.
		Flags: (s.Flags & other.Flags & FlagASCII) | ((s.Flags | other.Flags) &^ FlagASCII),
	}
}

// IsZero returns true if this is the zero/identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{Flags: FlagASCII}
	}

	sum := TextSummary{Bytes: len(s), Flags: FlagASCII}
	for i := 0; i < len(s); i++ {
		switch b := s[i]; {
		case b == '\n':
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		case b == '\r':
			sum.Flags |= FlagHasCR
		case b >= utf8.RuneSelf:
			sum.Flags &^= FlagASCII
		}
	}

	if sum.Flags&FlagASCII != 0 {
		sum.Chars = len(s)
	} else {
		sum.Chars = utf8.RuneCountInString(s)
	}
	return sum
}

// CharToByte returns the byte offset of the n-th char in s.
// n is clamped to [0, chars in s].
func CharToByte(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for i < len(s) && n > 0 {
		if s[i] < utf8.RuneSelf {
			i++
		} else {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
		n--
	}
	return i
}

// CountLines returns the number of newlines in a string.
func CountLines(s string) int {
	return strings.Count(s, "\n")
}

// TrimLineEnding strips a trailing "\n" or "\r\n" from a line.
// A lone trailing "\r" is content, not a terminator.
func TrimLineEnding(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	line = line[:len(line)-1]
	return strings.TrimSuffix(line, "\r")
}
