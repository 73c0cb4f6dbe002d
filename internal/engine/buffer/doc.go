// Package buffer provides the text buffer the editor operates on. A Buffer
// owns one rope, the path it was loaded from (if any), a dirty flag and a
// stable identifier used in logs and diagnostics.
//
// All positions are char (rune) offsets. Line numbers and columns are
// 0-indexed. Every coordinate query reports "not found" through a boolean
// result instead of panicking:
//
//	buf := buffer.NewBufferFromString("one\ntwo\n")
//	start, ok := buf.LineToChar(1) // 4, true
//	_, ok = buf.LineToChar(5)      // false
//
// Line terminators are stored exactly as read. Line returns a line with its
// terminator; LineLen excludes a trailing "\n" or "\r\n".
//
// A Buffer is not safe for concurrent use. The editor dispatches events on
// a single goroutine and never shares buffers.
package buffer
