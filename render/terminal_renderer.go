// Package render draws a top-down view of the bot grid on a tcell screen
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/gridbots/bot"
	"github.com/lixenwraith/gridbots/engine"
	"github.com/lixenwraith/gridbots/grid"
)

// Terminal columns per grid cell, keeps cells roughly square
const cellCols = 2

const (
	GlyphTrack  = '·'
	GlyphIdle   = '●'
	GlyphMoving = '◆'
)

var (
	StyleBackground = tcell.StyleDefault
	StyleTrack      = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	StyleIdle       = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	StyleMoving     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	StyleStatus     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Action is what the caller should do in response to an input event
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionRedraw
	ActionMute
)

// TerminalRenderer projects bot world positions back onto terminal cells
// The grid is clipped to the screen; the bottom row holds the status line
type TerminalRenderer struct {
	screen tcell.Screen
	grid   grid.Config
}

func NewTerminalRenderer(screen tcell.Screen, g grid.Config) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, grid: g}
}

// viewport returns how many grid columns and rows fit on screen
func (r *TerminalRenderer) viewport() (cols, rows int) {
	w, h := r.screen.Size()
	cols = min(r.grid.Columns, w/cellCols)
	rows = min(r.grid.Rows, max(h-1, 0))
	return cols, rows
}

// ScreenCell maps a world position to terminal coordinates, ok is false when clipped
func (r *TerminalRenderer) ScreenCell(x, z float32) (sx, sy int, ok bool) {
	cols, rows := r.viewport()
	fx, fy := r.grid.CellAt(mgl32.Vec3{x, 0, z})
	sx = int(math.Round(float64(fx) * cellCols))
	sy = int(math.Round(float64(fy)))
	ok = sx >= 0 && sy >= 0 && sx < cols*cellCols && sy < rows
	return sx, sy, ok
}

// RenderFrame draws one frame: tracks, bots, then the status line
func (r *TerminalRenderer) RenderFrame(f *engine.Frame, last engine.TickStats, paused bool) {
	r.screen.Clear()
	r.screen.Fill(' ', StyleBackground)

	cols, rows := r.viewport()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.screen.SetContent(x*cellCols, y, GlyphTrack, nil, StyleTrack)
		}
	}

	idle, moving := 0, 0
	for i, p := range f.Positions {
		glyph, style := GlyphIdle, StyleIdle
		if f.States[i].Kind() == bot.KindMoving {
			glyph, style = GlyphMoving, StyleMoving
			moving++
		} else {
			idle++
		}
		if sx, sy, ok := r.ScreenCell(p.X(), p.Z()); ok {
			r.screen.SetContent(sx, sy, glyph, nil, style)
		}
	}

	r.drawStatus(f, last, idle, moving, paused)
	r.screen.Show()
}

func (r *TerminalRenderer) drawStatus(f *engine.Frame, last engine.TickStats, idle, moving int, paused bool) {
	w, h := r.screen.Size()
	if h == 0 {
		return
	}
	line := fmt.Sprintf(" t=%.1fs tick=%d idle=%d moving=%d bots=%d grid=%dx%d  p:pause q:quit",
		f.Now.Seconds(), last.Tick, idle, moving, len(f.States), r.grid.Columns, r.grid.Rows)
	if paused {
		line = " [PAUSED]" + line
	}

	y := h - 1
	x := 0
	for _, ch := range line {
		if x >= w {
			break
		}
		r.screen.SetContent(x, y, ch, nil, StyleStatus)
		x++
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, StyleStatus)
	}
}

// HandleEvent translates a screen event into an Action
func (r *TerminalRenderer) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return ActionQuit
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return ActionQuit
			case 'p', 'P', ' ':
				return ActionPause
			case 'm', 'M':
				return ActionMute
			}
		}
	case *tcell.EventResize:
		r.screen.Sync()
		return ActionRedraw
	}
	return ActionNone
}
