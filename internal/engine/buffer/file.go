package buffer

import (
	"errors"
	"os"
	"path/filepath"
)

var errIsDir = errors.New("is a directory")

// Load reads a file into a new buffer bound to path.
// On failure no buffer is returned and the error is a *LoadError.
func Load(path string, opts ...Option) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Err: errIsDir}
	}

	opts = append([]Option{WithPath(path), WithFileMode(info.Mode().Perm())}, opts...)
	b, err := NewBufferFromReader(f, opts...)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return b, nil
}

// Save writes the content to the buffer's path and clears the dirty flag.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	return b.writeFile(b.path)
}

// SaveAs binds the buffer to path and saves it there.
func (b *Buffer) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := b.writeFile(path); err != nil {
		return err
	}
	b.path = path
	return nil
}

// writeFile writes atomically using a temp file in the target directory
// followed by a rename.
func (b *Buffer) writeFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	tempPath := tmp.Name()

	if _, err := b.rope.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return &SaveError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return &SaveError{Path: path, Err: err}
	}
	if err := os.Chmod(tempPath, b.fileMode); err != nil {
		os.Remove(tempPath)
		return &SaveError{Path: path, Err: err}
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return &SaveError{Path: path, Err: err}
	}

	b.dirty = false
	return nil
}
