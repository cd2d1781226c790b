package hero

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Placement is the (slot, duration, delay, stacking order) tuple an element
// is seeded with.
type Placement struct {
	Slot     Slot
	Duration time.Duration
	Delay    time.Duration
	Order    int
}

const (
	driftPixels = 24.0 // how far an element floats upward over one cycle
	pulseFrom   = 0.9  // scale factor a fade-in grows from
)

// Element is one floating background image. It owns its current slot and
// stacking order; the view may overwrite both with Sync. Every completed
// cycle it draws a new slot from the allocator and moves to the front.
type Element struct {
	node  *Node
	alloc *Allocator
	sched *Scheduler
	area  Rect

	slot     Slot
	order    int
	duration time.Duration
	delay    time.Duration

	start      *Timer
	cycle      *Timer
	fade       *TweenGroup
	drift      *TweenGroup
	pulse      *TweenGroup
	scale      float64
	fadingIn   bool
	iterations int
	destroyed  bool

	// OnMove, when set, runs after each iteration with the adopted slot.
	OnMove func(e *Element)
}

// newElement creates the sprite node for img and applies p. The cycle
// starts after p.Delay of scheduler time.
func newElement(name string, img *ebiten.Image, alloc *Allocator, sched *Scheduler, area Rect, p Placement) *Element {
	e := &Element{
		node:  NewSprite(name, img),
		alloc: alloc,
		sched: sched,
		area:  area,
	}
	e.node.UserData = e
	e.Sync(p)
	return e
}

// Node returns the element's sprite node.
func (e *Element) Node() *Node { return e.node }

// Slot returns the slot the element currently occupies.
func (e *Element) Slot() Slot { return e.slot }

// Order returns the element's stacking order.
func (e *Element) Order() int { return e.order }

// Duration returns the length of one animation cycle.
func (e *Element) Duration() time.Duration { return e.duration }

// Delay returns the start delay.
func (e *Element) Delay() time.Duration { return e.delay }

// Iterations returns how many cycles have completed since the last Sync.
func (e *Element) Iterations() int { return e.iterations }

// Sync overwrites the element's slot, order, duration and delay with p and
// restarts its cycle. This is the only way parent-owned data reaches the
// element; between syncs the element mutates its own slot and order.
func (e *Element) Sync(p Placement) {
	if e.destroyed {
		return
	}
	e.stopTimers()
	e.slot = p.Slot
	e.order = p.Order
	e.duration = p.Duration
	e.delay = p.Delay
	e.iterations = 0
	e.apply()
	e.node.SetAlpha(0)

	e.start = e.sched.After(e.delay, e.begin)
}

// SetImage swaps the rendered image without touching placement.
func (e *Element) SetImage(img *ebiten.Image) {
	e.node.Image = img
	e.fit()
}

// SetArea changes the hero rectangle slots are resolved against.
func (e *Element) SetArea(area Rect) {
	e.area = area
	e.drift.Stop()
	e.apply()
}

// begin runs once the start delay elapses.
func (e *Element) begin() {
	e.start = nil
	e.startFade()
	if e.duration > 0 {
		e.cycle = e.sched.Every(e.duration, e.duration, e.iterate)
	}
}

// iterate handles one completed animation cycle.
func (e *Element) iterate() {
	if e.destroyed {
		return
	}
	e.slot = e.alloc.DrawExcept(e.slot)
	e.order = e.alloc.NextOrder()
	e.iterations++
	e.apply()
	e.startFade()
	if e.OnMove != nil {
		e.OnMove(e)
	}
}

// apply positions the node for the current slot and order.
func (e *Element) apply() {
	e.fit()
	x := e.area.X + e.slot.Left/100*e.area.Width
	y := e.area.Y + e.slot.Top/100*e.area.Height
	e.node.SetPosition(x, y)
	e.node.SetZIndex(e.order)
}

// fit scales the image so its longer side is a quarter of the area width.
func (e *Element) fit() {
	w, h := e.node.Size()
	if w <= 0 || h <= 0 || e.area.Width <= 0 {
		return
	}
	e.pulse.Stop()
	target := e.area.Width / 4
	e.scale = target / max(w, h)
	e.node.SetScale(e.scale, e.scale)
}

func (e *Element) startFade() {
	half := float32(e.duration.Seconds() / 2)
	if half <= 0 {
		e.node.SetAlpha(1)
		return
	}
	e.node.SetAlpha(0)
	e.fadingIn = true
	e.fade = TweenAlpha(e.node, 1, half, ease.InOutSine)
	e.drift = TweenPosition(e.node, e.node.X, e.node.Y-driftPixels, 2*half, ease.Linear)
	if e.scale > 0 {
		e.node.SetScale(e.scale*pulseFrom, e.scale*pulseFrom)
		e.pulse = TweenScale(e.node, e.scale, e.scale, half, ease.OutQuad)
	}
}

// update advances the fade and drift tweens. Called once per frame.
func (e *Element) update(dt float32) {
	if e.destroyed || e.fade == nil {
		return
	}
	e.drift.Update(dt)
	e.pulse.Update(dt)
	e.fade.Update(dt)
	if e.fade.Done && e.fadingIn {
		e.fadingIn = false
		e.fade = TweenAlpha(e.node, 0, float32(e.duration.Seconds()/2), ease.InOutSine)
	}
}

func (e *Element) stopTimers() {
	e.start.Stop()
	e.cycle.Stop()
	e.start, e.cycle = nil, nil
	e.fade.Stop()
	e.drift.Stop()
	e.pulse.Stop()
	e.fade, e.drift, e.pulse = nil, nil, nil
}

// destroy stops the cycle, releases the element's slot and disposes the node.
func (e *Element) destroy() {
	if e.destroyed {
		return
	}
	e.stopTimers()
	e.alloc.Release(e.slot)
	e.destroyed = true
	e.node.Dispose()
}
