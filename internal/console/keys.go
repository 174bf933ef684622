package console

import (
	"github.com/nsf/termbox-go"
	"github.com/plus3/blockfall/game"
)

var keyButtons = map[termbox.Key]game.Button{
	termbox.KeyArrowLeft:  game.MoveLeft,
	termbox.KeyArrowRight: game.MoveRight,
	termbox.KeyArrowDown:  game.SoftDrop,
	termbox.KeyArrowUp:    game.Rotate,
	termbox.KeySpace:      game.HardDrop,
}

var runeButtons = map[rune]game.Button{
	'a': game.Rotate,
	'A': game.Rotate,
	's': game.RotateBack,
	'S': game.RotateBack,
	'r': game.Restart,
	'R': game.Restart,
	' ': game.HardDrop,
}

func buttonFor(ev termbox.Event) (game.Button, bool) {
	if ev.Type != termbox.EventKey {
		return 0, false
	}
	if ev.Ch != 0 {
		b, ok := runeButtons[ev.Ch]
		return b, ok
	}
	b, ok := keyButtons[ev.Key]
	return b, ok
}

func isQuit(ev termbox.Event) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	return ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q'
}
