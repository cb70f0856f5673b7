package puffy

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the current FPS and TPS in the top-left corner.
// The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img       *ebiten.Image
	sinceDraw float64
	everDrawn bool
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32)}
}

func (o *fpsOverlay) draw(screen *ebiten.Image, dt float64) {
	o.sinceDraw += dt
	if !o.everDrawn || o.sinceDraw >= 0.5 {
		o.sinceDraw = 0
		o.everDrawn = true
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(o.img, nil)
}
