package viewport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/modal/internal/engine/buffer"
)

func numberedBuffer(lines int) *buffer.Buffer {
	parts := make([]string, lines)
	for i := range parts {
		parts[i] = fmt.Sprintf("line %d", i)
	}
	return buffer.NewBufferFromString(strings.Join(parts, "\n"))
}

func TestNew(t *testing.T) {
	v := New(24, 80)

	if v.Rows() != 24 {
		t.Errorf("expected rows 24, got %d", v.Rows())
	}
	if v.Cols() != 80 {
		t.Errorf("expected cols 80, got %d", v.Cols())
	}
	if v.ScrollOffset() != 0 {
		t.Errorf("expected scroll offset 0, got %d", v.ScrollOffset())
	}

	v = New(0, -3)
	if v.Rows() != 1 || v.Cols() != 1 {
		t.Errorf("size should clamp to 1x1, got %dx%d", v.Rows(), v.Cols())
	}
}

func TestResize(t *testing.T) {
	v := New(24, 80)
	v.ScrollTo(10, 100)
	v.Resize(40, 120)

	if v.Rows() != 40 || v.Cols() != 120 {
		t.Errorf("expected 40x120, got %dx%d", v.Rows(), v.Cols())
	}
	if v.ScrollOffset() != 10 {
		t.Errorf("resize should not scroll, offset = %d", v.ScrollOffset())
	}
}

func TestScreenPosition(t *testing.T) {
	buf := buffer.NewBufferFromString("abc\nde\nfghij")
	v := New(2, 80)

	tests := []struct {
		index    int
		top      int
		col, row int
	}{
		{0, 0, 0, 0},
		{2, 0, 2, 0},
		{5, 0, 1, 1},
		{10, 1, 3, 1},
		{1, 2, 1, 0},
		{12, 0, 5, 2},
	}

	for _, tt := range tests {
		v.ScrollTo(tt.top, buf.LineCount())
		col, row := v.ScreenPosition(buf, tt.index)
		if col != tt.col || row != tt.row {
			t.Errorf("ScreenPosition(%d) with top %d = (%d, %d), want (%d, %d)",
				tt.index, tt.top, col, row, tt.col, tt.row)
		}
	}
}

func TestVisibleLines(t *testing.T) {
	buf := buffer.NewBufferFromString("one\r\ntwo\nthree\nfour")
	v := New(3, 80)

	got := v.VisibleLines(buf)
	want := []string{"one", "two", "three"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("VisibleLines() = %q, want %q", got, want)
	}

	v.ScrollTo(2, buf.LineCount())
	got = v.VisibleLines(buf)
	want = []string{"three", "four"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("VisibleLines() after scroll = %q, want %q", got, want)
	}
}

func TestVisibleLinesEmptyBuffer(t *testing.T) {
	v := New(5, 80)
	got := v.VisibleLines(buffer.NewBuffer())
	if len(got) != 1 || got[0] != "" {
		t.Errorf("VisibleLines() = %q, want one empty line", got)
	}
}

func TestRevealMinimalScroll(t *testing.T) {
	v := New(10, 80)

	if v.Reveal(5, 100) {
		t.Error("visible line should not scroll")
	}

	if !v.Reveal(12, 100) {
		t.Fatal("line below view should scroll")
	}
	if v.ScrollOffset() != 3 {
		t.Errorf("scroll offset = %d, want 3 (line on bottom row)", v.ScrollOffset())
	}

	v.Reveal(1, 100)
	if v.ScrollOffset() != 1 {
		t.Errorf("scroll offset = %d, want 1 (line on top row)", v.ScrollOffset())
	}
}

func TestRevealWithScrolloff(t *testing.T) {
	v := New(10, 80)
	v.SetScrolloff(3)

	v.Reveal(7, 100)
	if v.ScrollOffset() != 1 {
		t.Errorf("scroll offset = %d, want 1", v.ScrollOffset())
	}

	v.Reveal(3, 100)
	if v.ScrollOffset() != 0 {
		t.Errorf("scroll offset = %d, want 0", v.ScrollOffset())
	}

	// Near the end the margin cannot be honored below the last line.
	v.Reveal(99, 100)
	if v.ScrollOffset() != 90 {
		t.Errorf("scroll offset = %d, want 90", v.ScrollOffset())
	}
}

func TestScrolloffClampedToHalfHeight(t *testing.T) {
	v := New(4, 80)
	v.SetScrolloff(50)

	for line := 0; line < 40; line++ {
		v.Reveal(line, 40)
		if !v.IsLineVisible(line) {
			t.Fatalf("line %d not visible at offset %d", line, v.ScrollOffset())
		}
	}
}

func TestRevealAfterShrink(t *testing.T) {
	buf := numberedBuffer(50)
	v := New(20, 80)
	v.Reveal(19, buf.LineCount())

	v.Resize(5, 80)
	v.Reveal(19, buf.LineCount())
	if !v.IsLineVisible(19) {
		t.Errorf("line 19 not visible after shrink, offset %d", v.ScrollOffset())
	}
	_, row := v.ScreenPosition(buf, mustLineStart(t, buf, 19))
	if row != 4 {
		t.Errorf("row = %d, want 4", row)
	}
}

func TestRevealPullsBackAfterLinesRemoved(t *testing.T) {
	v := New(10, 80)
	v.Reveal(95, 100)

	v.Reveal(5, 8)
	if v.ScrollOffset() != 0 {
		t.Errorf("scroll offset = %d, want 0", v.ScrollOffset())
	}
}

func TestLineToScreenRow(t *testing.T) {
	v := New(10, 80)
	v.ScrollTo(5, 100)

	if row := v.LineToScreenRow(4); row != -1 {
		t.Errorf("line above view: row = %d, want -1", row)
	}
	if row := v.LineToScreenRow(7); row != 2 {
		t.Errorf("row = %d, want 2", row)
	}
	if row := v.LineToScreenRow(15); row != -1 {
		t.Errorf("line below view: row = %d, want -1", row)
	}
}

func mustLineStart(t *testing.T, buf *buffer.Buffer, line int) int {
	t.Helper()
	start, ok := buf.LineToChar(line)
	if !ok {
		t.Fatalf("line %d does not exist", line)
	}
	return start
}
