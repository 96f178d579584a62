// Package render turns rune grids into text and terminal output.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"gridworld/core"
	"gridworld/grid"
)

// Options controls how cells are turned into runes.
type Options struct {
	// Empty is drawn for cells without a symbol and for non-printing symbols.
	Empty rune
	// CellWidth pads every cell to this many columns. Zero means each cell
	// takes the display width of its rune.
	CellWidth int
	// ASCII replaces non-ASCII symbols with an ASCII approximation.
	ASCII bool
	// SquareCorners draws rounded box corners as square ones.
	SquareCorners bool
}

// DefaultOptions draws empty cells as spaces without padding.
var DefaultOptions = Options{Empty: ' '}

// Matrix returns the grid's rows as runes, one rune per cell.
func Matrix(g grid.Grid[rune], opts Options) [][]rune {
	rows := g.Rows()
	matrix := make([][]rune, len(rows))
	for y, row := range rows {
		matrix[y] = make([]rune, len(row))
		for x, c := range row {
			matrix[y][x] = opts.runeFor(c)
		}
	}
	return matrix
}

// String returns the grid as lines of text separated by newlines, without
// a trailing newline.
func String(g grid.Grid[rune], opts Options) string {
	matrix := Matrix(g, opts)

	var sb strings.Builder
	sb.Grow(g.Height() * (g.Width() + 1))
	for y, row := range matrix {
		for _, r := range row {
			if opts.CellWidth > 0 {
				sb.WriteString(runewidth.FillRight(string(r), opts.CellWidth))
			} else {
				sb.WriteRune(r)
			}
		}
		if y < len(matrix)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Draw paints the grid onto screen with its top-left cell at origin.
// Cells falling outside the screen are skipped. Draw does not call Show.
func Draw(screen tcell.Screen, g grid.Grid[rune], origin core.Point, opts Options, style tcell.Style) {
	if g.Bounds().Empty() {
		return
	}
	sw, sh := screen.Size()
	for y, row := range Matrix(g, opts) {
		sy := origin.Y + y
		if sy < 0 || sy >= sh {
			continue
		}
		sx := origin.X
		for _, r := range row {
			w := max(runewidth.RuneWidth(r), 1)
			if sx >= 0 && sx+w <= sw {
				screen.SetContent(sx, sy, r, nil, style)
			}
			sx += max(w, opts.CellWidth)
		}
	}
}

func (o Options) runeFor(c grid.Cell[rune]) rune {
	r, ok := c.Value()
	if !ok || runewidth.RuneWidth(r) == 0 {
		// A non-printing Empty would collapse the row
		if runewidth.RuneWidth(o.Empty) == 0 {
			return ' '
		}
		return o.Empty
	}
	if o.ASCII {
		return asciiFallback(r)
	}
	if o.SquareCorners {
		return squareCorner(r)
	}
	return r
}
