package hero

import (
	"strconv"
	"time"
)

// DefaultDebounce is the quiet period a candidate section must survive
// before the tracker commits it.
const DefaultDebounce = 50 * time.Millisecond

// TrackMode selects how observations turn into a committed section.
type TrackMode uint8

const (
	// ModeDebounced picks the section with the highest intersection ratio
	// (ties go to the later section) and commits it after the debounce
	// quiet period.
	ModeDebounced TrackMode = iota
	// ModeImmediate commits the last section whose ratio reaches Threshold,
	// without debouncing.
	ModeImmediate
)

// Section is a tracked page region in page coordinates.
type Section struct {
	Name   string
	Bounds Rect
}

// Observation reports one section's visibility in a viewport sample.
type Observation struct {
	Index        int
	Ratio        float64 // visible area / section area, in [0, 1]
	Intersecting bool
}

// TrackerConfig configures a SectionTracker. Zero values select defaults.
type TrackerConfig struct {
	Mode      TrackMode
	Debounce  time.Duration // ModeDebounced; 0 = DefaultDebounce
	Threshold float64       // ModeImmediate; 0 = 0.5
	Palette   *Palette      // nil = DefaultPalette()
}

// SectionTracker derives the active section from viewport observations and
// maps it to a letter/color Display. It runs on the scene's scheduler and
// must only be used from the update loop.
type SectionTracker struct {
	sched   *Scheduler
	cfg     TrackerConfig
	palette Palette

	sections []Section
	obsBuf   []Observation

	stable  bool
	index   int
	pending *Timer
	pendIdx int
	stopped bool

	commits  int
	onChange []func(Display)
}

// NewSectionTracker creates a tracker in the Uninitialized state. Its
// display is the palette entry for index 0 until the first commit.
func NewSectionTracker(sched *Scheduler, cfg TrackerConfig) *SectionTracker {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 0.5
	}
	p := DefaultPalette()
	if cfg.Palette != nil {
		p = *cfg.Palette
	}
	return &SectionTracker{sched: sched, cfg: cfg, palette: p}
}

// SetSections replaces the tracked sections. Order is document order.
func (t *SectionTracker) SetSections(sections []Section) {
	t.sections = append(t.sections[:0], sections...)
}

// Sections returns the tracked sections. The returned slice MUST NOT be mutated.
func (t *SectionTracker) Sections() []Section {
	return t.sections
}

// OnChange registers fn to run on every commit that changes the display
// (and on the very first commit).
func (t *SectionTracker) OnChange(fn func(Display)) {
	t.onChange = append(t.onChange, fn)
}

// State returns the committed index and whether any commit happened yet.
func (t *SectionTracker) State() (index int, stable bool) {
	return t.index, t.stable
}

// Display returns the letter/color pair for the committed index.
func (t *SectionTracker) Display() Display {
	return t.palette.Display(t.index)
}

// Commits returns how many display changes have been emitted.
func (t *SectionTracker) Commits() int {
	return t.commits
}

// Pending reports whether a debounced commit is scheduled.
func (t *SectionTracker) Pending() bool {
	return t.pending.Active()
}

// ObserveViewport samples every section against viewport (page
// coordinates) and feeds the result to Observe.
func (t *SectionTracker) ObserveViewport(viewport Rect) {
	if t.stopped {
		return
	}
	t.obsBuf = t.obsBuf[:0]
	for i, s := range t.sections {
		t.obsBuf = append(t.obsBuf, Observation{
			Index:        i,
			Ratio:        IntersectionRatio(s.Bounds, viewport),
			Intersecting: s.Bounds.Intersects(viewport),
		})
	}
	t.Observe(t.obsBuf)
}

// Observe feeds one observation batch. Observations without any
// intersecting section are ignored and leave a pending commit untouched.
func (t *SectionTracker) Observe(obs []Observation) {
	if t.stopped {
		return
	}
	switch t.cfg.Mode {
	case ModeImmediate:
		if idx, ok := thresholdCandidate(obs, t.cfg.Threshold); ok {
			t.commit(idx)
		}
	default:
		idx, ok := ratioCandidate(obs)
		if !ok {
			return
		}
		t.pending.Stop()
		t.pendIdx = idx
		t.pending = t.sched.After(t.cfg.Debounce, t.firePending)
	}
}

func (t *SectionTracker) firePending() {
	t.pending = nil
	t.commit(t.pendIdx)
}

func (t *SectionTracker) commit(idx int) {
	if t.stable && idx == t.index {
		return
	}
	t.stable = true
	t.index = idx
	t.commits++
	d := t.palette.Display(idx)
	for _, fn := range t.onChange {
		fn(d)
	}
}

// Stop cancels any pending commit and ignores all further observations.
func (t *SectionTracker) Stop() {
	t.stopped = true
	t.pending.Stop()
	t.pending = nil
}

// ratioCandidate picks the intersecting observation with the highest ratio.
// Ties go to the later section in document order.
func ratioCandidate(obs []Observation) (int, bool) {
	best, bestRatio := -1, -1.0
	for _, o := range obs {
		if !o.Intersecting {
			continue
		}
		if o.Ratio > bestRatio || (o.Ratio == bestRatio && o.Index > best) {
			best, bestRatio = o.Index, o.Ratio
		}
	}
	return best, best >= 0
}

// thresholdCandidate returns the last section in document order whose
// ratio reaches threshold.
func thresholdCandidate(obs []Observation, threshold float64) (int, bool) {
	best := -1
	for _, o := range obs {
		if o.Intersecting && o.Ratio >= threshold && o.Index > best {
			best = o.Index
		}
	}
	return best, best >= 0
}

// IntersectionRatio returns the fraction of section's area visible inside
// viewport. Zero-area sections report 1 when they touch the viewport.
func IntersectionRatio(section, viewport Rect) float64 {
	area := section.Area()
	if area <= 0 {
		if section.Intersects(viewport) {
			return 1
		}
		return 0
	}
	r := section.Intersection(viewport).Area() / area
	if r > 1 {
		r = 1
	}
	return r
}

// SectionsFromViewport splits the page into n stacked sections of one
// viewport height each, so the active index follows scrollY/height the way
// a plain scroll-fraction mapping would. Section 0 is the hero.
func SectionsFromViewport(n int, width, height float64) []Section {
	out := make([]Section, n)
	for i := range out {
		out[i] = Section{
			Name:   SectionName(i),
			Bounds: Rect{X: 0, Y: float64(i) * height, Width: width, Height: height},
		}
	}
	return out
}

// SectionName returns the name the view gives section i: "hero" for the
// first, "section-i" after it.
func SectionName(i int) string {
	if i <= 0 {
		return "hero"
	}
	return "section-" + strconv.Itoa(i)
}
