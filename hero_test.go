package hero

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent bottom", Rect{10, 110, 50, 50}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint below", Rect{10, 111, 50, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
			if rev := tt.other.Intersects(base); rev != got {
				t.Errorf("Intersects is not symmetric for %v and %v", base, tt.other)
			}
		})
	}
}

// --- Rect.Intersection ---

func TestRectIntersection(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", Rect{0, 0, 100, 100}, Rect{50, 25, 100, 100}, Rect{50, 25, 50, 75}},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 20, 20}, Rect{10, 10, 20, 20}},
		{"edge", Rect{0, 0, 100, 100}, Rect{0, 100, 100, 100}, Rect{0, 100, 100, 0}},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{50, 50, 10, 10}, Rect{50, 50, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersection(tt.b)
			if got != tt.want {
				t.Errorf("Intersection = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectAreaBottom(t *testing.T) {
	r := Rect{X: 5, Y: 10, Width: 20, Height: 30}
	if got := r.Area(); got != 600 {
		t.Errorf("Area = %v, want 600", got)
	}
	if got := r.Bottom(); got != 40 {
		t.Errorf("Bottom = %v, want 40", got)
	}
}

// --- Color ---

func TestRGB(t *testing.T) {
	c := RGB(255, 0, 51)
	if c.R != 1 || c.G != 0 || c.A != 1 {
		t.Errorf("RGB(255, 0, 51) = %v", c)
	}
	if c.B < 0.19 || c.B > 0.21 {
		t.Errorf("B = %v, want 0.2", c.B)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{RGB(255, 106, 0), "#ff6a00"},
		{RGB(38, 0, 255), "#2600ff"},
		{Color{0, 0, 0, 1}, "#000000"},
		{Color{2, -1, 1, 0}, "#ff00ff"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestColorRGBAPremultiplied(t *testing.T) {
	r, g, b, a := Color{1, 0.5, 0, 0.5}.RGBA()
	if a != 0x8000 {
		t.Errorf("a = %#x, want 0x8000", a)
	}
	if r != 0x8000 {
		t.Errorf("r = %#x, want 0x8000", r)
	}
	if g != 0x4000 {
		t.Errorf("g = %#x, want 0x4000", g)
	}
	if b != 0 {
		t.Errorf("b = %#x, want 0", b)
	}
}

func TestColorToNRGBA(t *testing.T) {
	got := RGB(253, 255, 1).toNRGBA()
	if got.R != 253 || got.G != 255 || got.B != 1 || got.A != 255 {
		t.Errorf("toNRGBA = %v, want {253 255 1 255}", got)
	}
}

// --- BlendMode ---

func TestBlendModeEbitenBlend(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want ebiten.Blend
	}{
		{BlendNormal, ebiten.BlendSourceOver},
		{BlendAdd, ebiten.BlendLighter},
		{BlendNone, ebiten.BlendCopy},
	}
	for _, tt := range tests {
		if got := tt.mode.EbitenBlend(); got != tt.want {
			t.Errorf("BlendMode(%d).EbitenBlend() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestWhitePixel(t *testing.T) {
	if WhitePixel == nil {
		t.Fatal("WhitePixel is nil")
	}
	b := WhitePixel.Bounds()
	if b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("WhitePixel size = %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}
