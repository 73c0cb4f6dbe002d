package renderer

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/modal/internal/renderer/backend"
)

// cellWidth returns how many cells r occupies when it starts at display
// column col. Tabs stop at multiples of tabWidth. Runes runewidth
// reports as zero width still take one cell so every char stays
// addressable by the cursor.
func cellWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		return tabWidth - col%tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// displayRune returns the rune painted for r.
func displayRune(r rune) rune {
	switch {
	case r == '\t':
		return ' '
	case unicode.IsControl(r):
		return '?'
	case runewidth.RuneWidth(r) == 0:
		return ' '
	}
	return r
}

// layoutLine converts a line into at most maxCols cells. A wide rune
// that would straddle the right edge is replaced by a blank.
func layoutLine(line string, tabWidth, maxCols int, style backend.Style) []backend.Cell {
	if tabWidth < 1 {
		tabWidth = 1
	}

	cells := make([]backend.Cell, 0, maxCols)
	col := 0
	for _, r := range line {
		if col >= maxCols {
			break
		}
		w := cellWidth(r, col, tabWidth)

		switch {
		case r == '\t':
			for i := 0; i < w && col+i < maxCols; i++ {
				cells = append(cells, backend.Cell{Rune: ' ', Style: style})
			}
		case col+w > maxCols:
			cells = append(cells, backend.Cell{Rune: ' ', Style: style})
		default:
			cells = append(cells, backend.Cell{Rune: displayRune(r), Style: style})
			for i := 1; i < w; i++ {
				cont := backend.ContinuationCell()
				cont.Style = style
				cells = append(cells, cont)
			}
		}
		col += w
	}
	return cells
}

// displayColumn returns the display column of the char at charCol in line.
// A charCol past the end of the line continues one cell per char.
func displayColumn(line string, charCol, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}

	col, i := 0, 0
	for _, r := range line {
		if i >= charCol {
			return col
		}
		col += cellWidth(r, col, tabWidth)
		i++
	}
	return col + (charCol - i)
}
