package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweeper-tui/internal/game"
	"github.com/vancomm/minesweeper-tui/internal/mines"
)

const (
	runeCovered   = '█'
	runeFlag      = 'F'
	runeMine      = '*'
	runeWrongFlag = 'X'
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleFlag    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleMine    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleWrong   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCovered = tcell.StyleDefault.Foreground(tcell.ColorGray)

	// Classic per-count digit colors.
	numberStyles = map[int]tcell.Style{
		1: tcell.StyleDefault.Foreground(tcell.ColorBlue),
		2: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		3: tcell.StyleDefault.Foreground(tcell.ColorRed),
		4: tcell.StyleDefault.Foreground(tcell.ColorNavy),
		5: tcell.StyleDefault.Foreground(tcell.ColorMaroon),
		6: tcell.StyleDefault.Foreground(tcell.ColorTeal),
		7: tcell.StyleDefault.Foreground(tcell.ColorBlack),
		8: tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
	}
)

// CellRune picks the glyph and style for one cell view.
func CellRune(c game.CellView) (rune, tcell.Style) {
	switch {
	case c.WrongFlag:
		return runeWrongFlag, styleWrong
	case c.Flagged:
		return runeFlag, styleFlag
	case !c.Revealed:
		return runeCovered, styleCovered
	case c.Mine:
		return runeMine, styleMine
	case c.Adjacent == 0:
		return ' ', styleDefault
	default:
		return rune('0' + c.Adjacent), numberStyles[c.Adjacent]
	}
}

// Renderer draws snapshots onto a tcell screen. It implements
// game.RenderPort.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) Render(snap game.Snapshot) error {
	r.screen.Clear()
	switch snap.Status {
	case game.StatusMenu:
		r.drawMenu(snap)
	case game.StatusPlaying, game.StatusWon, game.StatusLost:
		r.drawGame(snap)
	case game.StatusExited:
	}
	r.screen.Show()
	return nil
}

func (r *Renderer) drawText(x, y int, style tcell.Style, text string) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func (r *Renderer) drawMenu(snap game.Snapshot) {
	w, _ := r.screen.Size()
	title := "MINESWEEPER"
	r.drawText(max(0, (w-len(title))/2), 1, styleTitle, title)

	for i, item := range snap.MenuItems {
		style := styleDefault
		prefix := "  "
		if i == snap.MenuIndex {
			style = styleDefault.Reverse(true)
			prefix = "> "
		}
		r.drawText(4, 3+i, style, prefix+item)
	}

	r.drawText(4, 5+len(snap.MenuItems), styleCovered,
		"arrows move · space select · esc quit")
}

func (r *Renderer) drawGame(snap game.Snapshot) {
	sw, sh := r.screen.Size()
	// Two columns per cell plus a one-row header and footer.
	needW, needH := snap.Width*2, snap.Height+4
	if sw < needW || sh < needH {
		r.drawText(0, 0, styleMine, "terminal too small")
		r.drawText(0, 1, styleDefault,
			fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, sw, sh))
		return
	}

	offX, offY := (sw-needW)/2, (sh-needH)/2

	header := fmt.Sprintf("Mines: %3d   Time: %4ds",
		snap.Remaining, int(snap.Elapsed.Seconds()))
	r.drawText(offX, offY, styleDefault, header)

	for y := range snap.Height {
		for x := range snap.Width {
			cell := snap.CellAt(mines.Point{X: x, Y: y})
			ch, style := CellRune(cell)
			if snap.Status == game.StatusPlaying &&
				x == snap.Cursor.X && y == snap.Cursor.Y {
				style = style.Reverse(true)
			}
			r.screen.SetContent(offX+x*2, offY+2+y, ch, nil, style)
		}
	}

	r.drawBanner(snap, offX, offY+snap.Height+3)
}

func (r *Renderer) drawBanner(snap game.Snapshot, x, y int) {
	switch snap.Status {
	case game.StatusPlaying:
		r.drawText(x, y, styleCovered, "space reveal · q flag · esc menu")
	case game.StatusWon:
		msg := fmt.Sprintf("Cleared in %ds!", int(snap.Elapsed.Seconds()))
		if snap.NewBest {
			msg += " New best time!"
		} else if snap.BestTime > 0 {
			msg += fmt.Sprintf(" Best: %ds", int(snap.BestTime.Seconds()))
		}
		r.drawText(x, y, styleTitle, msg)
		r.drawText(x, y+1, styleCovered, "space play again · esc menu")
	case game.StatusLost:
		r.drawText(x, y, styleMine, "Boom! You hit a mine.")
		r.drawText(x, y+1, styleCovered, "space play again · esc menu")
	}
}
