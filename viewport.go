package hero

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the window onto the page: a Width×Height slice of the page
// starting at ScrollY. Page coordinates have their origin at the top of the
// page with Y increasing downward.
type Viewport struct {
	// ScrollY is the page offset at the top edge of the window.
	ScrollY float64
	// Width and Height are the window size in pixels.
	Width, Height float64
	// ContentHeight is the page height. ScrollY is clamped to
	// [0, ContentHeight-Height]; 0 disables clamping.
	ContentHeight float64

	scrollTween *gween.Tween

	lastScrollY float64
	lastW       float64
	lastH       float64
}

// newViewport creates a viewport of the given size at the top of the page.
func newViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h, lastScrollY: math.NaN()}
}

// Bounds returns the visible page rectangle.
func (v *Viewport) Bounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// ScrollBy moves the viewport by dy pixels and cancels any scroll animation.
func (v *Viewport) ScrollBy(dy float64) {
	v.scrollTween = nil
	v.ScrollY += dy
	v.clamp()
}

// SetScroll jumps to y and cancels any scroll animation.
func (v *Viewport) SetScroll(y float64) {
	v.scrollTween = nil
	v.ScrollY = y
	v.clamp()
}

// ScrollTo animates ScrollY to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.SetScroll(y)
		return
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(v.clampValue(y)), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is running.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Resize sets the window size and re-clamps the scroll offset.
func (v *Viewport) Resize(w, h float64) {
	v.Width = w
	v.Height = h
	v.clamp()
}

// MaxScroll returns the largest valid ScrollY.
func (v *Viewport) MaxScroll() float64 {
	if v.ContentHeight <= 0 {
		return math.Inf(1)
	}
	return math.Max(0, v.ContentHeight-v.Height)
}

func (v *Viewport) clampValue(y float64) float64 {
	return math.Max(0, math.Min(y, v.MaxScroll()))
}

func (v *Viewport) clamp() {
	v.ScrollY = v.clampValue(v.ScrollY)
}

// update advances the scroll animation and reports whether the scroll
// offset and the size changed since the previous update. Called from
// Scene.Update.
func (v *Viewport) update(dt float32) (scrolled, resized bool) {
	if v.scrollTween != nil {
		val, done := v.scrollTween.Update(dt)
		v.ScrollY = float64(val)
		if done {
			v.scrollTween = nil
		}
		v.clamp()
	}

	scrolled = v.ScrollY != v.lastScrollY
	resized = v.Width != v.lastW || v.Height != v.lastH
	v.lastScrollY = v.ScrollY
	v.lastW, v.lastH = v.Width, v.Height
	return scrolled, resized
}
