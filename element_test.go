package hero

import (
	"math"
	"testing"
	"time"
)

var testArea = Rect{X: 0, Y: 0, Width: 800, Height: 600}

func newTestElement(t *testing.T, d, delay time.Duration) (*Element, *Allocator, *Scheduler) {
	t.Helper()
	alloc := NewAllocator(DefaultSlots, testRand())
	sched := NewScheduler()
	p := Placement{Slot: alloc.Draw(), Duration: d, Delay: delay, Order: alloc.NextOrder()}
	return newElement("el", nil, alloc, sched, testArea, p), alloc, sched
}

func TestElementSyncPlacesNode(t *testing.T) {
	alloc := NewAllocator(DefaultSlots, testRand())
	sched := NewScheduler()
	p := Placement{Slot: Slot{Top: 10, Left: 8}, Duration: 6 * time.Second, Order: 3}
	e := newElement("el", nil, alloc, sched, testArea, p)

	n := e.Node()
	if n.X != 64 || n.Y != 60 {
		t.Errorf("position = (%v, %v), want (64, 60)", n.X, n.Y)
	}
	if n.ZIndex != 3 || e.Order() != 3 {
		t.Errorf("ZIndex = %d, Order = %d, want 3", n.ZIndex, e.Order())
	}
	if n.Alpha != 0 {
		t.Errorf("Alpha = %v, want 0 before the delay elapses", n.Alpha)
	}
	// nil image is a 1x1 pixel scaled to a quarter of the area width.
	if n.ScaleX != 200 || n.ScaleY != 200 {
		t.Errorf("scale = (%v, %v), want (200, 200)", n.ScaleX, n.ScaleY)
	}
	if n.UserData != e {
		t.Error("node UserData should point back to the element")
	}
}

func TestElementIteratesAfterDelay(t *testing.T) {
	e, alloc, sched := newTestElement(t, 6*time.Second, time.Second)
	first := e.Slot()

	var moved []Slot
	e.OnMove = func(el *Element) { moved = append(moved, el.Slot()) }

	sched.Advance(6 * time.Second)
	if e.Iterations() != 0 {
		t.Fatalf("iterated before delay+duration: %d", e.Iterations())
	}

	sched.Advance(time.Second)
	if e.Iterations() != 1 {
		t.Fatalf("Iterations = %d, want 1", e.Iterations())
	}
	if e.Slot() == first {
		t.Errorf("element kept slot %v across an iteration", first)
	}
	if e.Order() != 2 || e.Node().ZIndex != 2 {
		t.Errorf("Order = %d, ZIndex = %d, want 2", e.Order(), e.Node().ZIndex)
	}
	if alloc.Holders(first) != 0 || alloc.Holders(e.Slot()) != 1 {
		t.Errorf("occupancy not moved: first=%d cur=%d", alloc.Holders(first), alloc.Holders(e.Slot()))
	}
	if len(moved) != 1 || moved[0] != e.Slot() {
		t.Errorf("OnMove calls = %v, want [%v]", moved, e.Slot())
	}

	sched.Advance(12 * time.Second)
	if e.Iterations() != 3 {
		t.Errorf("Iterations = %d, want 3", e.Iterations())
	}
}

func TestElementSuccessiveSlotsDiffer(t *testing.T) {
	e, _, sched := newTestElement(t, time.Second, 0)
	prev := e.Slot()
	for i := 0; i < 50; i++ {
		sched.Advance(time.Second)
		if e.Slot() == prev {
			t.Fatalf("iteration %d: slot repeated %v", i, prev)
		}
		prev = e.Slot()
	}
}

func TestElementFadeInThenOut(t *testing.T) {
	e, _, sched := newTestElement(t, 2*time.Second, 0)
	sched.Advance(0)

	// Fade-in takes half the cycle.
	e.update(0.5)
	e.update(0.5)
	if math.Abs(e.Node().Alpha-1) > 0.01 {
		t.Fatalf("Alpha = %v after fade-in, want ~1", e.Node().Alpha)
	}
	e.update(0.5)
	e.update(0.5)
	if math.Abs(e.Node().Alpha) > 0.01 {
		t.Errorf("Alpha = %v after fade-out, want ~0", e.Node().Alpha)
	}
}

func TestElementFadeInPulsesScale(t *testing.T) {
	e, _, sched := newTestElement(t, 2*time.Second, 0)
	sched.Advance(0)

	n := e.Node()
	if math.Abs(n.ScaleX-180) > 0.01 {
		t.Fatalf("ScaleX = %v at fade-in start, want 180", n.ScaleX)
	}
	e.update(0.5)
	if n.ScaleX <= 180 || n.ScaleX >= 200 {
		t.Errorf("ScaleX = %v mid fade-in, want between 180 and 200", n.ScaleX)
	}
	e.update(0.5)
	if math.Abs(n.ScaleX-200) > 0.01 || math.Abs(n.ScaleY-200) > 0.01 {
		t.Errorf("scale = (%v, %v) after fade-in, want (200, 200)", n.ScaleX, n.ScaleY)
	}
}

func TestElementSyncRestarts(t *testing.T) {
	e, alloc, sched := newTestElement(t, time.Second, 0)
	sched.Advance(3 * time.Second)
	if e.Iterations() == 0 {
		t.Fatal("expected iterations before Sync")
	}

	alloc.Reset()
	p := Placement{Slot: alloc.Draw(), Duration: 4 * time.Second, Delay: 2 * time.Second, Order: alloc.NextOrder()}
	e.Sync(p)

	if e.Iterations() != 0 || e.Slot() != p.Slot || e.Order() != 1 {
		t.Errorf("after Sync: iterations=%d slot=%v order=%d", e.Iterations(), e.Slot(), e.Order())
	}
	if e.Duration() != 4*time.Second || e.Delay() != 2*time.Second {
		t.Errorf("Duration = %v, Delay = %v", e.Duration(), e.Delay())
	}
	if sched.Pending() != 1 {
		t.Errorf("scheduler Pending = %d, want only the start timer", sched.Pending())
	}
}

func TestElementDestroy(t *testing.T) {
	e, alloc, sched := newTestElement(t, time.Second, 0)
	slot := e.Slot()
	sched.Advance(0)

	e.destroy()
	e.destroy() // idempotent

	if alloc.Holders(slot) != 0 {
		t.Errorf("slot %v still held after destroy", slot)
	}
	if sched.Pending() != 0 {
		t.Errorf("scheduler Pending = %d, want 0", sched.Pending())
	}
	if !e.Node().IsDisposed() {
		t.Error("node should be disposed")
	}
	e.update(0.1) // no-op
	e.Sync(Placement{Slot: slot, Duration: time.Second})
	if sched.Pending() != 0 {
		t.Error("Sync on a destroyed element should not schedule")
	}
}

func TestElementSetArea(t *testing.T) {
	alloc := NewAllocator(DefaultSlots, testRand())
	e := newElement("el", nil, alloc, NewScheduler(), testArea, Placement{Slot: Slot{Top: 50, Left: 50}, Order: 1})
	e.SetArea(Rect{X: 0, Y: 100, Width: 400, Height: 200})
	if e.Node().X != 200 || e.Node().Y != 200 {
		t.Errorf("position = (%v, %v), want (200, 200)", e.Node().X, e.Node().Y)
	}
	if e.Node().ScaleX != 100 {
		t.Errorf("ScaleX = %v, want 100", e.Node().ScaleX)
	}
}
