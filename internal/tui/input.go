// Package tui adapts a tcell terminal screen to the game's input and
// render ports. The engine never touches the terminal directly.
package tui

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweeper-tui/internal/game"
)

var ErrScreenClosed = errors.New("screen closed")

// Input decodes key events from a tcell screen into semantic commands.
// It implements game.InputPort.
type Input struct {
	screen tcell.Screen
}

func NewInput(screen tcell.Screen) *Input {
	return &Input{screen: screen}
}

// NextCommand blocks until the player produces a command. Resizes are
// handled internally and surface as Invalid so the caller re-renders.
func (i *Input) NextCommand() (game.Command, error) {
	for {
		switch ev := i.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return DecodeKey(ev), nil
		case *tcell.EventResize:
			i.screen.Sync()
			return game.Invalid, nil
		case nil:
			return game.ForceExit, ErrScreenClosed
		}
	}
}

// DecodeKey maps one key event to a command: arrows move, space
// reveals, q flags, ESC exits, Ctrl-C force-quits. Everything else is
// Invalid.
func DecodeKey(ev *tcell.EventKey) game.Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.MoveUp
	case tcell.KeyDown:
		return game.MoveDown
	case tcell.KeyLeft:
		return game.MoveLeft
	case tcell.KeyRight:
		return game.MoveRight
	case tcell.KeyEscape:
		return game.Exit
	case tcell.KeyCtrlC:
		return game.ForceExit
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return game.Select
		case 'q', 'Q':
			return game.Flag
		}
	}
	return game.Invalid
}
