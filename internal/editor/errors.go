package editor

import "errors"

// ErrNoSuchBuffer is returned when a buffer index is out of range.
var ErrNoSuchBuffer = errors.New("editor: no such buffer")
