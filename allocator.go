package hero

import "math/rand/v2"

// Slot is a fixed point in the hero area, expressed as percentage offsets
// from its top-left corner.
type Slot struct {
	Top, Left float64
}

// DefaultSlots is the catalog the view allocates from unless configured
// otherwise. The four points sit in separate quadrants so no two images
// overlap when every slot is taken.
var DefaultSlots = []Slot{
	{Top: 10, Left: 8},
	{Top: 12, Left: 62},
	{Top: 58, Left: 14},
	{Top: 60, Left: 66},
}

// Allocator hands out slots from a fixed catalog and keeps the stacking
// counter shared by the elements of one view. It is owned by a single View
// and is not safe for concurrent use; all calls come from the update loop.
type Allocator struct {
	catalog  []Slot
	occupied map[Slot]int
	order    int
	rng      *rand.Rand

	candidates []Slot // reused scratch buffer
}

// NewAllocator creates an allocator over catalog. A nil rng uses a randomly
// seeded PCG source. Panics if catalog is empty.
func NewAllocator(catalog []Slot, rng *rand.Rand) *Allocator {
	if len(catalog) == 0 {
		panic("hero: allocator needs at least one slot")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c := make([]Slot, len(catalog))
	copy(c, catalog)
	return &Allocator{
		catalog:  c,
		occupied: make(map[Slot]int, len(c)),
		rng:      rng,
	}
}

// Catalog returns the slot catalog. The returned slice MUST NOT be mutated.
func (a *Allocator) Catalog() []Slot {
	return a.catalog
}

// Draw returns a slot for a new element, preferring slots nobody holds.
func (a *Allocator) Draw() Slot {
	return a.draw(Slot{}, false)
}

// DrawExcept returns a slot different from prev, preferring slots nobody
// holds, and moves prev's occupancy entry to the chosen slot. With a
// single-slot catalog prev is returned.
func (a *Allocator) DrawExcept(prev Slot) Slot {
	return a.draw(prev, true)
}

func (a *Allocator) draw(prev Slot, hasPrev bool) Slot {
	a.candidates = a.candidates[:0]
	for _, s := range a.catalog {
		if hasPrev && s == prev {
			continue
		}
		if a.occupied[s] > 0 {
			continue
		}
		a.candidates = append(a.candidates, s)
	}
	// Every slot is taken: give up on uniqueness but never repeat prev.
	if len(a.candidates) == 0 {
		for _, s := range a.catalog {
			if hasPrev && s == prev {
				continue
			}
			a.candidates = append(a.candidates, s)
		}
	}

	var chosen Slot
	if len(a.candidates) == 0 {
		chosen = prev
	} else {
		chosen = a.candidates[a.rng.IntN(len(a.candidates))]
	}

	if hasPrev {
		a.Release(prev)
	}
	a.occupied[chosen]++
	return chosen
}

// Release drops one occupancy entry for slot. No-op if slot is not held.
func (a *Allocator) Release(slot Slot) {
	if n := a.occupied[slot]; n > 1 {
		a.occupied[slot] = n - 1
	} else if n == 1 {
		delete(a.occupied, slot)
	}
}

// NextOrder advances the stacking counter and returns the new value. The
// first value after Reset is 1.
func (a *Allocator) NextOrder() int {
	a.order++
	return a.order
}

// Order returns the last stacking value handed out (0 after Reset).
func (a *Allocator) Order() int {
	return a.order
}

// Reset clears occupancy and restarts the stacking counter. Call it only
// when the image list is replaced, never to repair state incrementally.
func (a *Allocator) Reset() {
	clear(a.occupied)
	a.order = 0
}

// Occupied returns the distinct held slots in catalog order.
func (a *Allocator) Occupied() []Slot {
	out := make([]Slot, 0, len(a.occupied))
	for _, s := range a.catalog {
		if a.occupied[s] > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Holders returns how many elements currently hold slot.
func (a *Allocator) Holders(slot Slot) int {
	return a.occupied[slot]
}
