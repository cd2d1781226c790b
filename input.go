package hero

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	defaultScrollStep = 60.0 // pixels per wheel notch / arrow key press
)

// pageEase eases keyboard page jumps.
var pageEase = ease.OutCubic

// EventType identifies a kind of scene-level event.
type EventType uint8

const (
	EventScroll EventType = iota // fires when the scroll offset changes
	EventResize                  // fires when the window size changes
	EventFrame                   // fires once per Update after timers
)

// ScrollContext carries the viewport state after a scroll.
type ScrollContext struct {
	ScrollY  float64
	Viewport Rect // visible page rectangle
}

// ResizeContext carries the new window size.
type ResizeContext struct {
	Width, Height float64
}

// --- Handler registry ---

type scrollHandler struct {
	id uint32
	fn func(ScrollContext)
}

type resizeHandler struct {
	id uint32
	fn func(ResizeContext)
}

type frameHandler struct {
	id uint32
	fn func(dt float32)
}

type handlerRegistry struct {
	scroll []scrollHandler
	resize []resizeHandler
	frame  []frameHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice
// is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventScroll:
		h.reg.scroll = removeHandler(h.reg.scroll, func(e scrollHandler) bool { return e.id == h.id })
	case EventResize:
		h.reg.resize = removeHandler(h.reg.resize, func(e resizeHandler) bool { return e.id == h.id })
	case EventFrame:
		h.reg.frame = removeHandler(h.reg.frame, func(e frameHandler) bool { return e.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnScroll registers a callback for scroll offset changes. It also fires on
// the first Update and after every resize, so listeners see an initial
// viewport without waiting for the user to scroll.
func (s *Scene) OnScroll(fn func(ScrollContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.scroll = append(s.handlers.scroll, scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventScroll}
}

// OnResize registers a callback for window size changes.
func (s *Scene) OnResize(fn func(ResizeContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.resize = append(s.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// OnFrame registers a callback that runs once per Update with the tick
// length in seconds.
func (s *Scene) OnFrame(fn func(dt float32)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.frame = append(s.handlers.frame, frameHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventFrame}
}

// SetScrollStep sets how many pixels one wheel notch or arrow press scrolls.
func (s *Scene) SetScrollStep(px float64) {
	if px > 0 {
		s.scrollStep = px
	}
}

// Handlers are iterated over a copy of the slice header so a callback that
// removes itself does not skip its neighbor.
func (s *Scene) fireScroll() {
	ctx := ScrollContext{ScrollY: s.viewport.ScrollY, Viewport: s.viewport.Bounds()}
	for _, h := range append([]scrollHandler(nil), s.handlers.scroll...) {
		h.fn(ctx)
	}
}

func (s *Scene) fireResize() {
	ctx := ResizeContext{Width: s.viewport.Width, Height: s.viewport.Height}
	for _, h := range append([]resizeHandler(nil), s.handlers.resize...) {
		h.fn(ctx)
	}
}

func (s *Scene) fireFrame(dt float32) {
	for _, h := range append([]frameHandler(nil), s.handlers.frame...) {
		h.fn(dt)
	}
}

// --- Input processing ---

// processInput maps the mouse wheel and navigation keys onto the viewport.
// Devices are only polled inside the Run loop; a headless scene is driven
// by injected input alone.
func (s *Scene) processInput() {
	if !s.pollDevices {
		return
	}
	vp := s.viewport
	if _, wy := ebiten.Wheel(); wy != 0 {
		vp.ScrollBy(-wy * s.scrollStep)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		vp.ScrollBy(s.scrollStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		vp.ScrollBy(-s.scrollStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		vp.ScrollTo(vp.ScrollY+vp.Height, 0.4, pageEase)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		vp.ScrollTo(vp.ScrollY-vp.Height, 0.4, pageEase)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		vp.ScrollTo(0, 0.6, pageEase)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		if vp.ContentHeight > 0 {
			vp.ScrollTo(vp.MaxScroll(), 0.6, pageEase)
		}
	}
}
