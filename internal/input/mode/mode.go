package mode

// Mode is one of Normal, EnteringCommand or Insert.
// The interface is sealed; no other package can add variants.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "insert").
	Name() string

	// DisplayName returns the indicator shown on the status line.
	DisplayName() string

	// CursorStyle returns the cursor style for this mode.
	CursorStyle() CursorStyle

	isMode()
}

// Standard mode names.
const (
	ModeNormal  = "normal"
	ModeCommand = "command"
	ModeInsert  = "insert"
)

// Normal is the navigation mode.
type Normal struct{}

// Name implements Mode.
func (Normal) Name() string { return ModeNormal }

// DisplayName implements Mode.
func (Normal) DisplayName() string { return "NOR" }

// CursorStyle implements Mode.
func (Normal) CursorStyle() CursorStyle { return CursorBlock }

func (Normal) isMode() {}

// EnteringCommand is the command-line mode. Text holds what has been typed
// after the ":".
type EnteringCommand struct {
	Text string
}

// Name implements Mode.
func (EnteringCommand) Name() string { return ModeCommand }

// DisplayName implements Mode. The command line is shown after the
// Normal indicator.
func (m EnteringCommand) DisplayName() string { return "NOR :" + m.Text }

// CursorStyle implements Mode.
func (EnteringCommand) CursorStyle() CursorStyle { return CursorBar }

func (EnteringCommand) isMode() {}

// Insert is the text input mode.
type Insert struct{}

// Name implements Mode.
func (Insert) Name() string { return ModeInsert }

// DisplayName implements Mode.
func (Insert) DisplayName() string { return "INS" }

// CursorStyle implements Mode.
func (Insert) CursorStyle() CursorStyle { return CursorBar }

func (Insert) isMode() {}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert and command modes).
	CursorBar
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	default:
		return "unknown"
	}
}
