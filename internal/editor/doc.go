// Package editor composes buffers, the cursor and the viewport into the
// state the mode machine drives and the renderer paints.
//
// An Editor keeps its buffers in a slice and refers to the active one by
// index. There is exactly one cursor, re-validated whenever the active
// buffer changes. After every motion, mutation, resize or buffer switch
// the viewport is scrolled so the cursor's line is visible.
//
// The Editor is not safe for concurrent use. The application drives it
// from a single event loop.
package editor
