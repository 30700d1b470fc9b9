package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridpath/core"
)

// Board placement on screen; each cell is two columns wide to stay roughly square
const (
	CellWidth = 2
	BoardX    = 1
	BoardY    = 1
)

const helpText = "hjkl move  spc place  x remove  s start  q goal  f search  d diag  c corner  g gen  w/L save/load  r reset  esc quit"

// HUD is the per-frame state owned by the front end rather than the core
type HUD struct {
	Cursor             core.Cell
	AllowDiagonal      bool
	AllowCornerCutting bool
	Message            string
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen: screen,
		width:  w,
		height: h,
	}
}

// Resize updates dimensions and syncs the screen
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.screen.Sync()
}

// Mapper returns the screen to cell mapping for a board of the view's size
func (r *TerminalRenderer) Mapper(view *BoardView) func(x, y int) (core.Cell, bool) {
	return func(x, y int) (core.Cell, bool) {
		return CellAt(x, y, view.Size())
	}
}

// CellAt converts a screen position to a board cell
func CellAt(x, y, size int) (core.Cell, bool) {
	if x < BoardX || y < BoardY {
		return core.Cell{}, false
	}
	c := core.Cell{X: (x - BoardX) / CellWidth, Y: y - BoardY}
	if c.X >= size || c.Y >= size {
		return core.Cell{}, false
	}
	return c, true
}

// ScreenOf returns the left screen column and row of a cell
func ScreenOf(c core.Cell) (x, y int) {
	return BoardX + c.X*CellWidth, BoardY + c.Y
}

// RenderFrame renders the entire frame
func (r *TerminalRenderer) RenderFrame(view *BoardView, hud HUD) {
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(defaultStyle)
	r.screen.Clear()

	r.drawBoard(view, defaultStyle)
	r.drawCursor(view, hud.Cursor, defaultStyle)
	r.drawStatusBar(view, hud, defaultStyle)

	r.screen.Show()
}

func (r *TerminalRenderer) drawBoard(view *BoardView, defaultStyle tcell.Style) {
	size := view.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := core.Cell{X: x, Y: y}
			left, right, style := cellGlyph(view, c, defaultStyle)
			sx, sy := ScreenOf(c)
			r.screen.SetContent(sx, sy, left, nil, style)
			r.screen.SetContent(sx+1, sy, right, nil, style)
		}
	}
}

// cellGlyph picks the two runes and style for a cell, endpoints above markers
func cellGlyph(view *BoardView, c core.Cell, defaultStyle tcell.Style) (rune, rune, tcell.Style) {
	if start, ok := view.Start(); ok && start == c {
		return 'S', ' ', defaultStyle.Foreground(RgbStart).Bold(true)
	}
	if goal, ok := view.Goal(); ok && goal == c {
		return 'G', ' ', defaultStyle.Foreground(RgbGoal).Bold(true)
	}
	switch {
	case view.IsBorder(c):
		return '█', '█', defaultStyle.Foreground(RgbBorder)
	case view.HasObstacle(c):
		return '█', '█', defaultStyle.Foreground(RgbObstacle)
	case view.HasMarker(c):
		return '•', ' ', defaultStyle.Foreground(RgbMarker)
	default:
		return '·', ' ', defaultStyle.Foreground(RgbFloor)
	}
}

func (r *TerminalRenderer) drawCursor(view *BoardView, cursor core.Cell, defaultStyle tcell.Style) {
	if cursor.X < 0 || cursor.Y < 0 || cursor.X >= view.Size() || cursor.Y >= view.Size() {
		return
	}
	left, right, style := cellGlyph(view, cursor, defaultStyle)
	style = style.Background(RgbCursor).Reverse(false)
	sx, sy := ScreenOf(cursor)
	r.screen.SetContent(sx, sy, left, nil, style)
	r.screen.SetContent(sx+1, sy, right, nil, style)
}

func (r *TerminalRenderer) drawStatusBar(view *BoardView, hud HUD, defaultStyle tcell.Style) {
	y := BoardY + view.Size() + 1
	if y >= r.height {
		return
	}

	status, summary := view.Status()
	label, bg := " READY ", RgbStatusBg
	switch status {
	case StatusFound:
		label, bg = " FOUND ", RgbStatusFound
		if view.Revealing() {
			label = " REVEAL "
		}
	case StatusFailed:
		label, bg = " FAILED ", RgbStatusFail
	}
	x := r.drawText(0, y, label, defaultStyle.Foreground(RgbStatusText).Background(bg))
	x = r.drawText(x+1, y, summary, defaultStyle.Foreground(RgbObstacle))

	rules := fmt.Sprintf("diagonal:%s corner:%s", onOff(hud.AllowDiagonal), onOff(hud.AllowCornerCutting))
	r.drawText(x+2, y, rules, defaultStyle.Foreground(RgbRulesText))

	if hud.Message != "" && y+1 < r.height {
		r.drawText(0, y+1, hud.Message, defaultStyle.Foreground(RgbCursor))
	}
	if y+2 < r.height {
		r.drawText(0, y+2, helpText, defaultStyle.Foreground(RgbFloor))
	}
}

// drawText writes s at (x,y) and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
