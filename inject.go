package hero

// syntheticScrollEvent is one injected viewport change. Exactly one of the
// kinds applies, selected by kind.
type syntheticScrollEvent struct {
	kind   scrollEventKind
	dy     float64
	y      float64
	width  float64
	height float64
}

type scrollEventKind uint8

const (
	scrollBy scrollEventKind = iota
	scrollTo
	resizeTo
)

// InjectScroll queues a relative scroll of dy pixels. The event is consumed
// on the next Update, one event per frame, in place of real input.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticScrollEvent{kind: scrollBy, dy: dy})
}

// InjectScrollTo queues a jump to page offset y.
func (s *Scene) InjectScrollTo(y float64) {
	s.injectQueue = append(s.injectQueue, syntheticScrollEvent{kind: scrollTo, y: y})
}

// InjectResize queues a window resize.
func (s *Scene) InjectResize(w, h float64) {
	s.injectQueue = append(s.injectQueue, syntheticScrollEvent{kind: resizeTo, width: w, height: h})
}

// InjectGesture queues a smooth scroll of dy split evenly over frames
// events. Minimum frames is 1.
func (s *Scene) InjectGesture(dy float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := dy / float64(frames)
	for i := 0; i < frames; i++ {
		s.InjectScroll(step)
	}
}

// processInjectedInput pops one event from the inject queue and applies it
// to the viewport. Returns true if an event was consumed (real input should
// be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case scrollBy:
		s.viewport.ScrollBy(evt.dy)
	case scrollTo:
		s.viewport.SetScroll(evt.y)
	case resizeTo:
		s.viewport.Resize(evt.width, evt.height)
	}
	return true
}
