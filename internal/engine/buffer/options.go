package buffer

import (
	"io/fs"

	"github.com/google/uuid"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithPath binds the buffer to a file path. Save writes to it.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithID sets the buffer's identifier instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(b *Buffer) {
		if id != uuid.Nil {
			b.id = id
		}
	}
}

// WithFileMode sets the permission bits used when Save creates the file.
func WithFileMode(mode fs.FileMode) Option {
	return func(b *Buffer) {
		if mode != 0 {
			b.fileMode = mode
		}
	}
}
