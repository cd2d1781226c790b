package hero

import "time"

// Scheduler is a virtual-time timer queue. It never spawns goroutines:
// timers fire from Advance, which Scene.Update calls once per frame, so
// every callback runs on the update loop and never concurrently with
// another. Timers due at the same instant fire in creation order.
type Scheduler struct {
	now    time.Duration
	timers []*Timer
	nextID uint64
}

// Timer is a pending callback registered with a Scheduler.
type Timer struct {
	id      uint64
	due     time.Duration
	period  time.Duration // 0 for one-shot timers
	fn      func()
	sched   *Scheduler
	stopped bool
}

// NewScheduler returns a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// After schedules fn to run once, d after the current virtual time.
// A non-positive d fires on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	return s.add(d, 0, fn)
}

// Every schedules fn to run first after first, then every period.
// A non-positive period degrades to a one-shot timer.
func (s *Scheduler) Every(first, period time.Duration, fn func()) *Timer {
	if period < 0 {
		period = 0
	}
	return s.add(first, period, fn)
}

func (s *Scheduler) add(d, period time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &Timer{id: s.nextID, due: s.now + d, period: period, fn: fn, sched: s}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer. It reports whether the timer was still pending.
// Stopping a nil or already stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	t.sched.remove(t)
	return true
}

// Active reports whether the timer is still scheduled.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

func (s *Scheduler) remove(t *Timer) {
	for i, c := range s.timers {
		if c == t {
			copy(s.timers[i:], s.timers[i+1:])
			s.timers[len(s.timers)-1] = nil
			s.timers = s.timers[:len(s.timers)-1]
			return
		}
	}
}

// Advance moves virtual time forward by dt, firing every timer that comes
// due in order of due time. Callbacks may schedule or stop timers; a newly
// scheduled timer that falls inside the window also fires. Repeating timers
// fire once per elapsed period, so a long frame never drops iterations.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			t.stopped = true
			s.remove(t)
		}
		t.fn()
	}
	s.now = target
}

// nextDue returns the earliest timer due at or before limit, breaking ties
// by creation order.
func (s *Scheduler) nextDue(limit time.Duration) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Clear stops every pending timer.
func (s *Scheduler) Clear() {
	for _, t := range s.timers {
		t.stopped = true
	}
	clear(s.timers)
	s.timers = s.timers[:0]
}
