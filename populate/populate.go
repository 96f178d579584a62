// Package populate provides symbol sources for grid.PopulatedBy.
package populate

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"gridworld/grid"
)

// SliceSource yields a fixed list of symbols in order.
type SliceSource[T any] struct {
	symbols []T
	next    int
}

// Slice returns a source that yields symbols once each, then reports
// grid.ErrExhausted.
func Slice[T any](symbols ...T) *SliceSource[T] {
	return &SliceSource[T]{symbols: append([]T(nil), symbols...)}
}

// Next implements grid.Populator.
func (s *SliceSource[T]) Next() (T, error) {
	if s.next >= len(s.symbols) {
		var zero T
		return zero, fmt.Errorf("%w after %d symbols", grid.ErrExhausted, len(s.symbols))
	}
	v := s.symbols[s.next]
	s.next++
	return v, nil
}

// Remaining returns how many symbols are left.
func (s *SliceSource[T]) Remaining() int {
	return len(s.symbols) - s.next
}

// SeqSource pulls symbols from an iterator.
type SeqSource[T any] struct {
	next func() (T, bool)
	stop func()
}

// Seq returns a source backed by seq. Call Stop when done if seq may not
// have been drained.
func Seq[T any](seq iter.Seq[T]) *SeqSource[T] {
	next, stop := iter.Pull(seq)
	return &SeqSource[T]{next: next, stop: stop}
}

// Next implements grid.Populator.
func (s *SeqSource[T]) Next() (T, error) {
	v, ok := s.next()
	if !ok {
		return v, grid.ErrExhausted
	}
	return v, nil
}

// Stop releases the underlying iterator.
func (s *SeqSource[T]) Stop() { s.stop() }

// CycleSource repeats a list of symbols forever.
type CycleSource[T any] struct {
	symbols []T
	next    int
}

// Cycle returns a source that loops over symbols. With no symbols it is
// exhausted from the start.
func Cycle[T any](symbols ...T) *CycleSource[T] {
	return &CycleSource[T]{symbols: append([]T(nil), symbols...)}
}

// Next implements grid.Populator.
func (c *CycleSource[T]) Next() (T, error) {
	if len(c.symbols) == 0 {
		var zero T
		return zero, grid.ErrExhausted
	}
	v := c.symbols[c.next]
	c.next = (c.next + 1) % len(c.symbols)
	return v, nil
}

// RandomSource picks symbols uniformly from a list using a seeded generator.
type RandomSource[T any] struct {
	symbols []T
	rng     *rand.Rand
}

// Random returns a source that draws from symbols forever. Equal seeds
// produce equal sequences.
func Random[T any](seed uint64, symbols ...T) *RandomSource[T] {
	return &RandomSource[T]{
		symbols: append([]T(nil), symbols...),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next implements grid.Populator.
func (r *RandomSource[T]) Next() (T, error) {
	if len(r.symbols) == 0 {
		var zero T
		return zero, grid.ErrExhausted
	}
	return r.symbols[r.rng.IntN(len(r.symbols))], nil
}

// Text returns a source that reproduces a picture given as lines of text.
// The runes are emitted in the column-major order PopulatedBy visits cells,
// so PopulatedBy(width, len(lines), Text(lines...)) has the picture as its
// rows when width is the longest line. Short lines are padded with spaces.
func Text(lines ...string) *SliceSource[rune] {
	width := 0
	runes := make([][]rune, len(lines))
	for i, line := range lines {
		runes[i] = []rune(strings.TrimRight(line, "\r\n"))
		width = max(width, len(runes[i]))
	}

	out := make([]rune, 0, width*len(lines))
	for x := 0; x < width; x++ {
		for y := range runes {
			if x < len(runes[y]) {
				out = append(out, runes[y][x])
			} else {
				out = append(out, ' ')
			}
		}
	}
	return &SliceSource[rune]{symbols: out}
}

// TextSize returns the width and height Text(lines...) fills.
func TextSize(lines ...string) (width, height int) {
	for _, line := range lines {
		width = max(width, len([]rune(strings.TrimRight(line, "\r\n"))))
	}
	return width, len(lines)
}
