// Package mode provides the modal input state machine.
//
// The editor is always in exactly one of three modes:
//   - Normal: navigation with h/j/k/l and the arrow keys
//   - EnteringCommand: typing a command line after ":"
//   - Insert: text input at the cursor
//
// Mode is a closed sum type. The EnteringCommand variant carries the text
// typed so far; the other variants carry nothing.
//
// # Transitions
//
//	            ":"                   Enter (runs command)
//	Normal ───────────▶ EnteringCommand ───────────────────▶ Normal
//	  │  ◀───────────────────────────────── Escape
//	  │ "i"
//	  ▼
//	Insert ──── Escape ────▶ Normal
//
// The Machine routes each key event according to the current mode. It
// drives the editor through the Editor interface and runs submitted
// command lines through an Executor; it never touches the terminal.
package mode
