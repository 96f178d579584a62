package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridworld/core"
	"gridworld/grid"
	"gridworld/render"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

// line returns row y of the simulation screen as text.
func line(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(runes[0])
	}
	return sb.String()
}

func TestView_PanAndQuit(t *testing.T) {
	screen := newScreen(t, 4, 3)
	g := grid.New[rune](2, 1).WithSymbolAt('a', 0, 0).WithSymbolAt('b', 1, 0)
	v := &View{Screen: screen, Grid: g, Options: render.DefaultOptions}

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Offset() != (core.Point{X: 1, Y: 1}) {
		t.Errorf("Offset() = %v, want (1,1)", v.Offset())
	}
	if got := line(screen, 1); got != " ab " {
		t.Errorf("row 1 = %q, want %q", got, " ab ")
	}
	if got := line(screen, 0); got != "    " {
		t.Errorf("row 0 = %q, want blank", got)
	}
}

func TestView_UndoPan(t *testing.T) {
	tests := []struct {
		name string
		keys []tcell.Key
		want core.Point
	}{
		{"undo last", []tcell.Key{tcell.KeyRight, tcell.KeyDown, tcell.KeyBackspace2}, core.Point{X: 1, Y: 0}},
		{"undo all", []tcell.Key{tcell.KeyLeft, tcell.KeyUp, tcell.KeyBackspace, tcell.KeyBackspace2}, core.Point{}},
		{"nothing to undo", []tcell.Key{tcell.KeyBackspace2}, core.Point{}},
		{"more undos than pans", []tcell.Key{tcell.KeyRight, tcell.KeyBackspace2, tcell.KeyBackspace2}, core.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newScreen(t, 4, 3)
			v := &View{Screen: screen, Grid: grid.New[rune](1, 1)}
			for _, k := range tt.keys {
				screen.InjectKey(k, 0, tcell.ModNone)
			}
			screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

			if err := v.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if v.Offset() != tt.want {
				t.Errorf("Offset() = %v, want %v", v.Offset(), tt.want)
			}
		})
	}
}

func TestView_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"Escape", tcell.KeyEscape, 0},
		{"Ctrl-C", tcell.KeyCtrlC, 0},
		{"q", tcell.KeyRune, 'q'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newScreen(t, 2, 2)
			v := &View{Screen: screen, Grid: grid.New[rune](1, 1)}
			screen.InjectKey(tt.key, tt.r, tcell.ModNone)

			if err := v.Run(context.Background()); err != nil {
				t.Errorf("Run: %v", err)
			}
		})
	}
}

func TestView_ToggleASCII(t *testing.T) {
	screen := newScreen(t, 3, 1)
	g := grid.New[rune](1, 1).WithSymbolAt('─', 0, 0)
	v := &View{Screen: screen, Grid: g, Options: render.DefaultOptions}

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := line(screen, 0); got != "-  " {
		t.Errorf("row 0 = %q, want %q", got, "-  ")
	}
}

func TestView_StatusLine(t *testing.T) {
	screen := newScreen(t, 40, 2)
	v := &View{Screen: screen, Grid: grid.New[rune](1, 1), Status: true}
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := line(screen, 1); !strings.HasPrefix(got, "Grid(1, 1, 0 placements) offset (0,0)  ") {
		t.Errorf("status = %q", got)
	}
}

func TestView_StatusLastPan(t *testing.T) {
	screen := newScreen(t, 60, 2)
	v := &View{Screen: screen, Grid: grid.New[rune](1, 1), Status: true}
	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "Grid(1, 1, 0 placements) offset (1,-1) last " + core.North.String()
	if got := line(screen, 1); !strings.HasPrefix(got, want) {
		t.Errorf("status = %q, want prefix %q", got, want)
	}
}

func TestView_ContextCancel(t *testing.T) {
	screen := newScreen(t, 2, 2)
	v := &View{Screen: screen, Grid: grid.New[rune](2, 2)}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- v.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
