//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var polledKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.Inject(KeyEvent{Press: true, Rune: r})
	}

	// Arrows repeat while held so a long press keeps panning.
	for _, pk := range polledKeys {
		d := inpututil.KeyPressDuration(pk.key)
		if d == 1 || (pk.code <= KeyRight && d > 15 && d%4 == 0) {
			k.Inject(KeyEvent{Code: pk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(pk.key) {
			k.Inject(KeyEvent{Code: pk.code, Press: false})
		}
	}
}
