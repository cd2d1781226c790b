package hero

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget adds a node to the overlay that displays the current FPS and
// TPS alongside the scroll offset. The widget redraws every ~0.5 seconds.
func (s *Scene) NewFPSWidget() *Node {
	img := ebiten.NewImage(140, 48)

	node := NewSprite("fps_widget", img)
	node.RenderLayer = 255 // draw on top
	s.overlay.AddChild(node)

	var lastUpdate float32
	s.OnFrame(func(dt float32) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nScroll: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), s.viewport.ScrollY))
	})
	return node
}
