package synth

import (
	"sort"
	"sync"
	"time"
)

// Scheduler is an explicit timer queue replacing ad hoc callback chains.
// It owns a cancellation token: every loop iteration re-checks the token
// before rescheduling, so Cancel gives deterministic teardown with no
// orphaned timers. Offline it is driven by the sample clock through
// RunUntil, which makes generator output reproducible and testable.
type Scheduler struct {
	mu       sync.Mutex
	now      time.Duration
	seq      uint64
	queue    []event
	canceled bool
}

type event struct {
	at  time.Duration
	seq uint64
	fn  func(now time.Duration)
}

// NewScheduler creates a scheduler at t=0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// At queues fn at an absolute offset. Events queued in the past fire on
// the next RunUntil. Queuing after Cancel is a no-op.
func (s *Scheduler) At(at time.Duration, fn func(now time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canceled {
		return
	}
	s.seq++
	s.queue = append(s.queue, event{at: at, seq: s.seq, fn: fn})
}

// After queues fn relative to the current clock.
func (s *Scheduler) After(d time.Duration, fn func(now time.Duration)) {
	s.At(s.Now()+d, fn)
}

// RunUntil advances the clock to horizon, firing due events in time order
// (insertion order breaks ties). Callbacks may queue further events; they
// fire in the same pass when due before the horizon.
func (s *Scheduler) RunUntil(horizon time.Duration) {
	for {
		s.mu.Lock()
		if s.canceled || len(s.queue) == 0 {
			s.now = horizon
			s.mu.Unlock()
			return
		}
		sort.Slice(s.queue, func(i, j int) bool {
			if s.queue[i].at != s.queue[j].at {
				return s.queue[i].at < s.queue[j].at
			}
			return s.queue[i].seq < s.queue[j].seq
		})
		next := s.queue[0]
		if next.at > horizon {
			s.now = horizon
			s.mu.Unlock()
			return
		}
		s.queue = s.queue[1:]
		if next.at > s.now {
			s.now = next.at
		}
		now := s.now
		s.mu.Unlock()

		next.fn(now)
	}
}

// Pending counts queued events.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Cancel sets the token and clears every pending event. Subsequent At
// calls are ignored, so an in-flight callback cannot resurrect a loop.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled = true
	s.queue = nil
}

// Canceled reports the token state.
func (s *Scheduler) Canceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}
