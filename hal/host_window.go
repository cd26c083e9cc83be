//go:build cgo

package hal

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"globe/internal/buildinfo"
)

// RunWindow starts a desktop window that displays the framebuffer and
// forwards mouse, touch and keyboard input. It blocks until the window
// closes.
func RunWindow(cfg Config, newApp func(HAL) (func() error, error)) error {
	h := newHost(cfg)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Globe (" + buildinfo.Short() + ")")
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(h.fb.width*scale, h.fb.height*scale)
	ebiten.SetTPS(60)
	h.log.Info("window open",
		zap.Int("width", h.fb.width),
		zap.Int("height", h.fb.height))
	return ebiten.RunGame(g)
}

var background = color.RGBA{0xff, 0xff, 0xff, 0xff}

type hostGame struct {
	h       *hostHAL
	input   pollState
	fbImg   *ebiten.Image
	scratch []byte
	shown   uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.input.poll(g.h.ptr, g.h.fb.width, g.h.fb.height)
	g.h.kbd.poll()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.scratch = make([]byte, len(fb.front))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	if n := fb.snapshot(g.scratch); n != g.shown {
		g.fbImg.WritePixels(g.scratch)
		g.shown = n
	}
	screen.Fill(background)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
