//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollState holds scratch slices reused across frames.
type pollState struct {
	touches  []ebiten.TouchID
	contacts []Contact
}

func (s *pollState) poll(p *hostPointer, width, height int) {
	s.contacts = s.contacts[:0]
	cx, cy := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.contacts = append(s.contacts, Contact{ID: 0, X: float64(cx), Y: float64(cy)})
	}
	s.touches = ebiten.AppendTouchIDs(s.touches[:0])
	for _, id := range s.touches {
		x, y := ebiten.TouchPosition(id)
		s.contacts = append(s.contacts, Contact{ID: int(id) + 1, X: float64(x), Y: float64(y)})
	}
	inside := len(s.touches) == 0 && cx >= 0 && cy >= 0 && cx < width && cy < height
	_, wheel := ebiten.Wheel()
	p.update(s.contacts, float64(cx), float64(cy), inside, wheel)
}

func (k *hostKeyboard) poll() {
	keys := [...]struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyNumpadEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeySpace, KeySpace},
		{ebiten.KeyR, KeyR},
	}
	for _, kc := range keys {
		if inpututil.IsKeyJustPressed(kc.key) {
			k.emit(kc.code, true)
		}
		if inpututil.IsKeyJustReleased(kc.key) {
			k.emit(kc.code, false)
		}
	}
}
