package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/modal/internal/input/key"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)

	cell := Cell{Rune: 'X', Style: Style{Foreground: ColorFromRGB(255, 0, 0), Background: ColorDefault}}
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	if got := b.GetCell(-1, 0); got != EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendRowAndClear(t *testing.T) {
	b := NewNullBackend(5, 2)
	for i, r := range "hi" {
		b.SetCell(i, 0, Cell{Rune: r, Style: DefaultStyle()})
	}

	if got := b.Row(0); got != "hi   " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := b.Row(5); got != "" {
		t.Errorf("Row(5) = %q", got)
	}

	b.Clear()
	if got := b.Row(0); got != "     " {
		t.Errorf("after Clear Row(0) = %q", got)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.ShowCursor(10, 5)
	x, y, visible := b.CursorPosition()
	if x != 10 || y != 5 || !visible {
		t.Errorf("cursor = (%d, %d, %v)", x, y, visible)
	}

	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}

	b.SetCursorStyle(CursorBar)
	if b.CursorStyleValue() != CursorBar {
		t.Error("expected bar cursor")
	}
}

func TestNullBackendResizePostsEvent(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.Resize(100, 30)

	if w, h := b.Size(); w != 100 || h != 30 {
		t.Errorf("size = (%d, %d)", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 30 {
		t.Errorf("event = %+v", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.PostEvent(Event{Type: EventReload})
	b.PostEvent(Event{Type: EventKey, Key: key.NewRuneEvent('a', key.ModNone)})

	if ev := b.PollEvent(); ev.Type != EventReload {
		t.Errorf("first event = %v", ev.Type)
	}
	if ev := b.PollEvent(); ev.Type != EventKey || ev.Key.Rune != 'a' {
		t.Errorf("second event = %+v", ev)
	}
}

func TestNullBackendPostEventDropsWhenFull(t *testing.T) {
	b := NewNullBackend(1, 1)
	for i := 0; i < 200; i++ {
		b.PostEvent(Event{Type: EventInterrupt})
	}
	if n := len(b.events); n != cap(b.events) {
		t.Errorf("queue holds %d events, want %d", n, cap(b.events))
	}
}

func TestColorFromColorful(t *testing.T) {
	c, err := colorful.Hex("#a89984")
	if err != nil {
		t.Fatal(err)
	}
	got := ColorFromColorful(c)
	if got != ColorFromRGB(0xa8, 0x99, 0x84) {
		t.Errorf("got %+v", got)
	}

	out := ColorFromColorful(colorful.Color{R: 1.5, G: -0.2, B: 0.5})
	if out.R != 255 || out.G != 0 {
		t.Errorf("out of gamut color not clamped: %+v", out)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := map[EventType]string{
		EventNone:      "none",
		EventKey:       "key",
		EventResize:    "resize",
		EventReload:    "reload",
		EventInterrupt: "interrupt",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", typ, got, want)
		}
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.NewRuneEvent('a', key.ModNone)},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), key.NewRuneEvent('A', key.ModNone)},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlQ, 'q', tcell.ModCtrl), key.NewRuneEvent('q', key.ModCtrl)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), key.NewRuneEvent('x', key.ModAlt)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyEscape, key.ModNone)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyEnter, key.ModNone)},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyTab, key.ModNone)},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyBackspace, key.ModNone)},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), key.NewSpecialEvent(key.KeyLeft, key.ModShift)},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyF5, key.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.ev)
			if !ok {
				t.Fatal("key not converted")
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConvertEventInterruptCarriesPostedEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventInterrupt(Event{Type: EventReload}))
	if ev.Type != EventReload {
		t.Errorf("got %v", ev.Type)
	}

	ev = convertEvent(tcell.NewEventInterrupt("other"))
	if ev.Type != EventInterrupt {
		t.Errorf("got %v", ev.Type)
	}

	ev = convertEvent(tcell.NewEventResize(120, 40))
	if ev.Type != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Errorf("got %+v", ev)
	}
}

func TestConvertToTcellKeyRoundTrip(t *testing.T) {
	for _, spec := range []string{"a", "Ctrl+q", "Escape", "Enter", "Tab", "Backspace", "Up", "F12"} {
		want := key.MustParse(spec)
		tev := tcell.NewEventKey(convertToTcellKey(want), want.Rune, convertToTcellMod(want.Modifiers))

		got, ok := convertKey(tev)
		if !ok || !got.Equals(want) {
			t.Errorf("%s: got %#v", spec, got)
		}
	}
}

func TestTerminalWithSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Shutdown()

	sim.SetSize(10, 3)
	if w, h := term.Size(); w != 10 || h != 3 {
		t.Errorf("size = (%d, %d)", w, h)
	}

	term.SetCell(0, 0, Cell{Rune: 'm', Style: DefaultStyle()})
	term.SetCursorStyle(CursorBar)
	term.ShowCursor(1, 0)
	term.Show()

	term.PostEvent(Event{Type: EventReload})
	sim.InjectKey(tcell.KeyRune, 'i', tcell.ModNone)

	var got []Event
	for len(got) < 2 {
		ev := term.PollEvent()
		if ev.Type == EventResize || ev.Type == EventNone {
			continue
		}
		got = append(got, ev)
	}
	if got[0].Type != EventReload {
		t.Errorf("first event = %v", got[0].Type)
	}
	if got[1].Type != EventKey || got[1].Key.Rune != 'i' {
		t.Errorf("second event = %+v", got[1])
	}
}
