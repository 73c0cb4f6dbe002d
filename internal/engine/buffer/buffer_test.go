package buffer

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LenChars() != 0 {
		t.Errorf("expected length 0, got %d", b.LenChars())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if n, ok := b.LineLen(0); !ok || n != 0 {
		t.Errorf("LineLen(0) = %d, %v; want 0, true", n, ok)
	}
	if b.IsDirty() {
		t.Error("new buffer should be clean")
	}
	if b.ID() == uuid.Nil {
		t.Error("new buffer should have an ID")
	}
	if b.Name() != "[No Name]" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestBufferOptions(t *testing.T) {
	id := uuid.New()
	b := NewBuffer(WithPath("/tmp/dir/notes.txt"), WithID(id))

	if b.ID() != id {
		t.Errorf("ID() = %v, want %v", b.ID(), id)
	}
	if b.Path() != "/tmp/dir/notes.txt" {
		t.Errorf("Path() = %q", b.Path())
	}
	if b.Name() != "notes.txt" {
		t.Errorf("Name() = %q, want notes.txt", b.Name())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\r\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}

	tests := []struct {
		line int
		text string
		len  int
	}{
		{0, "line1\n", 5},
		{1, "line2\r\n", 5},
		{2, "line3", 5},
	}
	for _, tt := range tests {
		text, ok := b.Line(tt.line)
		if !ok || text != tt.text {
			t.Errorf("Line(%d) = %q, %v; want %q", tt.line, text, ok, tt.text)
		}
		n, ok := b.LineLen(tt.line)
		if !ok || n != tt.len {
			t.Errorf("LineLen(%d) = %d, %v; want %d", tt.line, n, ok, tt.len)
		}
	}

	if _, ok := b.Line(3); ok {
		t.Error("Line(3) should not exist")
	}
	if _, ok := b.Line(-1); ok {
		t.Error("Line(-1) should not exist")
	}
	if b.IsDirty() {
		t.Error("buffer from string should start clean")
	}
}

func TestBufferInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   int
		text     string
		expected string
		err      error
	}{
		{"start", "world", 0, "hello ", "hello world", nil},
		{"end", "hello", 5, "!", "hello!", nil},
		{"multibyte", "日本", 1, "x", "日x本", nil},
		{"negative", "abc", -1, "x", "abc", ErrOffsetOutOfRange},
		{"past end", "abc", 4, "x", "abc", ErrOffsetOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.initial)
			err := b.Insert(tt.offset, tt.text)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Insert() error = %v, want %v", err, tt.err)
			}
			if b.Text() != tt.expected {
				t.Errorf("Text() = %q, want %q", b.Text(), tt.expected)
			}
			if b.IsDirty() != (tt.err == nil) {
				t.Errorf("IsDirty() = %v after insert with error %v", b.IsDirty(), tt.err)
			}
		})
	}
}

func TestBufferDelete(t *testing.T) {
	tests := []struct {
		name          string
		initial       string
		offset, count int
		expected      string
		dirty         bool
		err           error
	}{
		{"middle", "hello", 1, 3, "ho", true, nil},
		{"newline", "a\nb", 1, 1, "ab", true, nil},
		{"count clamped", "hello", 3, 10, "hel", true, nil},
		{"at end", "hello", 5, 1, "hello", false, nil},
		{"zero count", "hello", 2, 0, "hello", false, nil},
		{"negative offset", "hello", -1, 1, "hello", false, ErrOffsetOutOfRange},
		{"offset past end", "hello", 6, 1, "hello", false, ErrOffsetOutOfRange},
		{"negative count", "hello", 1, -1, "hello", false, ErrOffsetOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.initial)
			err := b.Delete(tt.offset, tt.count)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Delete() error = %v, want %v", err, tt.err)
			}
			if b.Text() != tt.expected {
				t.Errorf("Text() = %q, want %q", b.Text(), tt.expected)
			}
			if b.IsDirty() != tt.dirty {
				t.Errorf("IsDirty() = %v, want %v", b.IsDirty(), tt.dirty)
			}
		})
	}
}

func TestBufferLineCharRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		sb.WriteString(strings.Repeat("ab€", rng.Intn(10)))
		if rng.Intn(2) == 0 {
			sb.WriteString("\r\n")
		} else {
			sb.WriteString("\n")
		}
	}
	b := NewBufferFromString(sb.String())

	for i := 0; i <= b.LenChars(); i++ {
		line, ok := b.CharToLine(i)
		if !ok {
			t.Fatalf("CharToLine(%d) not found", i)
		}
		start, ok := b.LineToChar(line)
		if !ok || start > i {
			t.Fatalf("LineToChar(CharToLine(%d)) = %d", i, start)
		}
	}

	for line := 0; line < b.LineCount(); line++ {
		start, _ := b.LineToChar(line)
		got, _ := b.CharToLine(start)
		if got != line {
			t.Fatalf("CharToLine(LineToChar(%d)) = %d", line, got)
		}
	}

	if _, ok := b.CharToLine(b.LenChars() + 1); ok {
		t.Error("CharToLine past end should not be found")
	}
	if _, ok := b.LineToChar(b.LineCount()); ok {
		t.Error("LineToChar past last line should not be found")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	content := "first\r\nsecond\nthird — ü"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Text() != content {
		t.Errorf("Text() = %q, want %q", b.Text(), content)
	}
	if b.Path() != path {
		t.Errorf("Path() = %q, want %q", b.Path(), path)
	}
	if b.IsDirty() {
		t.Error("loaded buffer should be clean")
	}
	if b.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", b.LineCount())
	}
}

func TestLoadNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	b, err := Load(path)
	if b != nil {
		t.Error("Load() should not return a buffer on error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrPermissionDenied) {
		t.Error("not-found error should not match ErrPermissionDenied")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Path != path {
		t.Errorf("error should be a *LoadError for %q, got %v", path, err)
	}
}

func TestLoadPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	path := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(path, []byte("x"), 0o000); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Load() error = %v, want ErrPermissionDenied", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Load() of a directory should fail")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermissionDenied) {
		t.Errorf("directory error should be neither kind, got %v", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	b := NewBuffer(WithPath(path))
	if err := b.Insert(0, "hello\r\nworld"); err != nil {
		t.Fatal(err)
	}
	if !b.IsDirty() {
		t.Fatal("buffer should be dirty after insert")
	}

	if err := b.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if b.IsDirty() {
		t.Error("buffer should be clean after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\r\nworld" {
		t.Errorf("saved %q", data)
	}
}

func TestSaveNoPath(t *testing.T) {
	b := NewBufferFromString("x")
	if err := b.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save() error = %v, want ErrNoPath", err)
	}
}

func TestSaveAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renamed.txt")
	b := NewBufferFromString("data")
	_ = b.Insert(4, "!")

	if err := b.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	if b.Path() != path {
		t.Errorf("Path() = %q, want %q", b.Path(), path)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Text() != "data!" {
		t.Errorf("reloaded %q", loaded.Text())
	}
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "file.txt")
	b := NewBufferFromString("x", WithPath(path))
	_ = b.Insert(0, "y")

	err := b.Save()
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("Save() error = %v, want *SaveError", err)
	}
	if !b.IsDirty() {
		t.Error("failed save should leave the buffer dirty")
	}
}
