// Package renderer paints the editor onto a terminal backend.
//
// The renderer is responsible for:
//   - Painting the visible lines of the active buffer
//   - Tab expansion and wide rune layout
//   - The status line on the last row
//   - Placing and shaping the terminal cursor
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  View (editor)    │  Line layout        │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// The text area is repainted only when the view reports NeedsRedraw. The
// status line and cursor are refreshed on every frame.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.OptionsFromConfig(cfg))
//	r.Render(ed, machine.Current())
package renderer
