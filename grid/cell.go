package grid

import "fmt"

// CellKind distinguishes the three possible results of a cell lookup.
type CellKind int

const (
	// Empty is an in-bounds cell with no placement.
	Empty CellKind = iota
	// Symbol is an in-bounds cell holding a placed symbol.
	Symbol
	// OutOfBounds is a coordinate outside the grid's dimensions.
	OutOfBounds
)

// String returns the string representation of a CellKind.
func (k CellKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Symbol:
		return "Symbol"
	case OutOfBounds:
		return "OutOfBounds"
	default:
		return "Unknown"
	}
}

// Cell is the value found at a coordinate: a symbol, an empty cell, or
// the out-of-bounds marker. The zero Cell is Empty.
type Cell[T any] struct {
	Kind   CellKind
	symbol T
}

// SymbolCell returns a Cell holding s.
func SymbolCell[T any](s T) Cell[T] {
	return Cell[T]{Kind: Symbol, symbol: s}
}

// EmptyCell returns the empty Cell.
func EmptyCell[T any]() Cell[T] {
	return Cell[T]{Kind: Empty}
}

// OutOfBoundsCell returns the out-of-bounds Cell.
func OutOfBoundsCell[T any]() Cell[T] {
	return Cell[T]{Kind: OutOfBounds}
}

// Value returns the symbol and true if the cell holds one.
func (c Cell[T]) Value() (T, bool) {
	if c.Kind != Symbol {
		var zero T
		return zero, false
	}
	return c.symbol, true
}

// IsEmpty reports whether the cell is in bounds and unoccupied.
func (c Cell[T]) IsEmpty() bool { return c.Kind == Empty }

// IsOutOfBounds reports whether the lookup fell outside the grid.
func (c Cell[T]) IsOutOfBounds() bool { return c.Kind == OutOfBounds }

func (c Cell[T]) String() string {
	if c.Kind == Symbol {
		return fmt.Sprintf("Symbol(%v)", c.symbol)
	}
	return c.Kind.String()
}
