package hero

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// submitCommands draws the sorted commands onto target, one DrawImage each.
func (s *Scene) submitCommands(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		a := cmd.Color.A
		if a <= 0 || cmd.Image == nil {
			continue
		}
		op.GeoM = commandGeoM(cmd)
		op.ColorScale.Reset()
		op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
		op.Blend = cmd.BlendMode.EbitenBlend()
		target.DrawImage(cmd.Image, &op)
	}
}

// commandGeoM converts a command's affine transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.Transform[0]))
	m.SetElement(1, 0, float64(cmd.Transform[1]))
	m.SetElement(0, 1, float64(cmd.Transform[2]))
	m.SetElement(1, 1, float64(cmd.Transform[3]))
	m.SetElement(0, 2, float64(cmd.Transform[4]))
	m.SetElement(1, 2, float64(cmd.Transform[5]))
	return m
}
