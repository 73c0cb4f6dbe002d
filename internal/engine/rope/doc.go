// Package rope provides an immutable rope data structure for text storage.
//
// A rope is a tree whose leaves hold text chunks and whose internal nodes
// store aggregated metrics (byte count, char count, newline count). This
// implementation uses a B+ tree variant for cache locality.
//
// All positions are char (rune) indices. A line is a run of chars ending
// in '\n' or at the end of the text, so a rope always has newlines+1 lines
// and the empty rope has exactly one empty line. Line terminators are
// stored as-is; "\r\n" is not normalized.
//
// Key features:
//   - O(log n) insertion, deletion, and char/line conversion
//   - Immutable operations return new ropes; originals are never modified
//   - Out-of-range queries report "not found" instead of panicking
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")           // "hello, world"
//	r = r.Delete(0, 7)             // "world"
//	line, ok := r.CharToLine(3)    // 0, true
package rope
