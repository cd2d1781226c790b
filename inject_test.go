package hero

import "testing"

func TestInjectQueueOrder(t *testing.T) {
	s := NewScene()
	s.InjectScroll(10)
	s.InjectScrollTo(300)
	s.InjectResize(1024, 768)

	if len(s.injectQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(s.injectQueue))
	}
	kinds := []scrollEventKind{scrollBy, scrollTo, resizeTo}
	for i, k := range kinds {
		if s.injectQueue[i].kind != k {
			t.Errorf("queue[%d].kind = %d, want %d", i, s.injectQueue[i].kind, k)
		}
	}
}

func TestInjectGesture(t *testing.T) {
	s := NewScene()
	s.InjectGesture(100, 4)
	if len(s.injectQueue) != 4 {
		t.Fatalf("queue len = %d, want 4", len(s.injectQueue))
	}
	for i, evt := range s.injectQueue {
		if evt.dy != 25 {
			t.Errorf("queue[%d].dy = %v, want 25", i, evt.dy)
		}
	}
}

func TestInjectGesture_MinFrames(t *testing.T) {
	s := NewScene()
	s.InjectGesture(50, 0)
	if len(s.injectQueue) != 1 {
		t.Fatalf("queue len = %d, want 1", len(s.injectQueue))
	}
	if s.injectQueue[0].dy != 50 {
		t.Errorf("dy = %v, want 50", s.injectQueue[0].dy)
	}
}

func TestProcessInjectedInput(t *testing.T) {
	s := NewScene()
	s.InjectScroll(40)
	s.InjectScrollTo(10)
	s.InjectResize(640, 480)

	tests := []struct {
		scrollY float64
		w, h    float64
	}{
		{40, 800, 600},
		{10, 800, 600},
		{10, 640, 480},
	}
	for i, tt := range tests {
		if !s.processInjectedInput() {
			t.Fatalf("frame %d: expected an event", i)
		}
		vp := s.Viewport()
		if vp.ScrollY != tt.scrollY || vp.Width != tt.w || vp.Height != tt.h {
			t.Errorf("frame %d: viewport = (%v, %vx%v), want (%v, %vx%v)",
				i, vp.ScrollY, vp.Width, vp.Height, tt.scrollY, tt.w, tt.h)
		}
	}
	if len(s.injectQueue) != 0 {
		t.Errorf("queue len = %d, want 0", len(s.injectQueue))
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScene()
	if s.processInjectedInput() {
		t.Error("expected false for empty queue")
	}
}

func TestInjectedScrollFiresOnScroll(t *testing.T) {
	s := NewScene()
	s.Advance(frame)

	var got []float64
	s.OnScroll(func(ctx ScrollContext) { got = append(got, ctx.ScrollY) })
	s.InjectGesture(90, 3)
	for i := 0; i < 4; i++ {
		s.Advance(frame)
	}
	want := []float64{30, 60, 90}
	if len(got) != len(want) {
		t.Fatalf("scrolls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scrolls[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
