// Package terminal shows a grid in an interactive terminal view.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"gridworld/core"
	"gridworld/grid"
	"gridworld/render"
)

// View displays a grid on a tcell screen. Arrow keys pan the grid and
// Backspace undoes the last pan. 'a' toggles the ASCII fallback; q, Esc or
// Ctrl-C quit.
type View struct {
	Screen  tcell.Screen
	Grid    grid.Grid[rune]
	Options render.Options
	// Status is shown on the bottom line when set.
	Status bool

	offset core.Point
	pans   []core.Direction
}

// Offset returns where the grid's top-left cell is currently drawn.
func (v *View) Offset() core.Point { return v.offset }

// Run draws the view and handles events until the user quits or ctx is
// cancelled. The caller owns the screen and must Init and Fini it.
func (v *View) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Wake PollEvent so the loop sees the cancellation
			_ = v.Screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	v.draw()
	for {
		switch ev := v.Screen.PollEvent().(type) {
		case nil:
			// Screen finalized
			return nil
		case *tcell.EventResize:
			v.Screen.Sync()
			v.draw()
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
			v.draw()
		}
	}
}

// handleKey applies a key press and reports whether the view should close.
func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.pan(core.North)
	case tcell.KeyDown:
		v.pan(core.South)
	case tcell.KeyLeft:
		v.pan(core.West)
	case tcell.KeyRight:
		v.pan(core.East)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.undo()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'a':
			v.Options.ASCII = !v.Options.ASCII
		}
	}
	return false
}

func (v *View) pan(d core.Direction) {
	v.offset = v.offset.Add(d.Offset())
	v.pans = append(v.pans, d)
}

// undo steps back against the most recent pan.
func (v *View) undo() {
	if len(v.pans) == 0 {
		return
	}
	last := v.pans[len(v.pans)-1]
	v.pans = v.pans[:len(v.pans)-1]
	v.offset = v.offset.Add(last.Opposite().Offset())
}

func (v *View) draw() {
	v.Screen.Clear()
	render.Draw(v.Screen, v.Grid, v.offset, v.Options, tcell.StyleDefault)

	if v.Status {
		_, h := v.Screen.Size()
		status := fmt.Sprintf("%v offset %v", v.Grid, v.offset)
		if n := len(v.pans); n > 0 {
			status += fmt.Sprintf(" last %v", v.pans[n-1])
		}
		status += "  arrows pan, bksp undo, a ascii, q quit"
		style := tcell.StyleDefault.Reverse(true)
		for x, r := range []rune(status) {
			v.Screen.SetContent(x, h-1, r, nil, style)
		}
	}
	v.Screen.Show()
}
