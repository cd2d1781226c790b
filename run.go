package hero

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable lets the user resize the window. Resizes reach the scene as
	// EventResize and re-run section tracking.
	Resizable bool
	// ShowFPS adds an FPS overlay.
	ShowFPS bool
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
}

func (g *gameShell) Update() error { return g.scene.Update() }
func (g *gameShell) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }

// Layout tracks the outside size so the viewport always matches the window.
func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := g.scene.viewport
	w, h := float64(outsideWidth), float64(outsideHeight)
	if vp.Width != w || vp.Height != h {
		vp.Resize(w, h)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the scene until the window closes or an
// update returns an error. Real input devices are polled only under Run.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.viewport.Resize(float64(cfg.Width), float64(cfg.Height))
	scene.pollDevices = true
	if cfg.ShowFPS {
		scene.NewFPSWidget()
	}
	return ebiten.RunGame(&gameShell{scene: scene})
}
