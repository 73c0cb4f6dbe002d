package command

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modal/internal/logging"
)

type fakeTarget struct {
	saves   int
	saveErr error
}

func (t *fakeTarget) BufferName() string { return "notes.txt" }
func (t *fakeTarget) BufferPath() string { return "/tmp/notes.txt" }
func (t *fakeTarget) CursorIndex() int   { return 3 }
func (t *fakeTarget) SaveActive() error {
	t.saves++
	return t.saveErr
}

func TestDefaultRegistryEmptyNameSaves(t *testing.T) {
	r := NewDefaultRegistry()
	target := &fakeTarget{}

	require.NoError(t, r.Execute("", target))
	assert.Equal(t, 1, target.saves)
	assert.Equal(t, []string{""}, r.Names())
}

func TestUnrecognizedIsLoggedNoop(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	r := NewDefaultRegistry(WithLogger(logger))
	target := &fakeTarget{}

	require.NoError(t, r.Execute("xyz", target))
	assert.Equal(t, 0, target.saves)
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), `unrecognized command: "xyz"`)
}

func TestResolve(t *testing.T) {
	r := NewDefaultRegistry()

	cmd, err := r.Resolve("")
	require.NoError(t, err)
	assert.NotNil(t, cmd)

	cmd, err = r.Resolve("w")
	assert.ErrorIs(t, err, ErrUnrecognized)
	assert.NotNil(t, cmd)
	assert.NoError(t, cmd.Execute(&fakeTarget{}))
}

func TestExactMatchOnly(t *testing.T) {
	r := NewDefaultRegistry()
	target := &fakeTarget{}

	for _, name := range []string{" ", "w", "W", "save"} {
		require.NoError(t, r.Execute(name, target))
	}
	assert.Equal(t, 0, target.saves)
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	var seen int
	r.Register("where", Func(func(t Target) error {
		seen = t.CursorIndex()
		return nil
	}))

	_, ok := r.Lookup("where")
	assert.True(t, ok)
	_, ok = r.Lookup("")
	assert.False(t, ok, "plain registry has no default bindings")

	require.NoError(t, r.Execute("where", &fakeTarget{}))
	assert.Equal(t, 3, seen)
}

func TestCommandErrorIsWrappedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	r := NewDefaultRegistry(WithLogger(logger))
	target := &fakeTarget{saveErr: errors.New("read-only file system")}

	err := r.Execute("", target)
	assert.ErrorIs(t, err, target.saveErr)
	assert.Contains(t, buf.String(), "[ERROR]")
	assert.Contains(t, buf.String(), "command issued")
}
