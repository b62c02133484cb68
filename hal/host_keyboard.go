//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ebitenKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
}

// pollEbiten forwards this frame's key transitions and typed characters.
func (k *hostKeyboard) pollEbiten() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	for _, m := range ebitenKeys {
		if inpututil.IsKeyJustPressed(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: false})
		}
	}
}

// pollEbiten forwards wheel notches and left-button drags.
func (p *hostPointer) pollEbiten(drag *dragState) {
	if _, dy := ebiten.Wheel(); dy != 0 {
		// Ebiten reports wheel-up as positive; pages scroll down on wheel-down.
		p.emit(PointerEvent{Kind: PointerWheel, DY: -dy})
	}

	x, y := ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		drag.active = false
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || !drag.active {
		drag.active = true
		drag.x, drag.y = x, y
		return
	}
	if dx, dy := x-drag.x, y-drag.y; dx != 0 || dy != 0 {
		p.emit(PointerEvent{Kind: PointerDrag, DX: float64(dx), DY: float64(dy)})
	}
	drag.x, drag.y = x, y
}

type dragState struct {
	active bool
	x, y   int
}
