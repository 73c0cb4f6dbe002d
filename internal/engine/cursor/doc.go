// Package cursor tracks the editing position within a buffer.
//
// A Cursor is an absolute char offset plus a sticky column. The sticky
// column remembers the column the user last chose horizontally so that
// moving up or down through short lines and back lands on it again:
//
//	c := cursor.New(7)                // line 0, column 7
//	c = c.Move(buf, 0, 1)             // shorter line 1: column 2
//	c = c.Move(buf, 0, 1)             // line 2 is long again: column 7
//
// Horizontal motion never leaves the current line; the cursor may rest one
// past the last char of a line but never on its terminator. Vertical motion
// is clamped to the first and last lines.
//
// Cursor is an immutable value type. Every method that moves it returns a
// new Cursor.
package cursor
