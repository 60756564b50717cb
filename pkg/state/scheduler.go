package state

import (
	"sync"
	"time"
)

// Save delays. Discrete edits use the longer delay; continuous drags use the
// shorter one so panning converges quickly after motion stops without
// spamming address updates mid-gesture.
const (
	SaveDelay = 500 * time.Millisecond
	DragDelay = 300 * time.Millisecond
)

// Scheduler debounces persistence of the editing state. At most one save is
// ever in flight: each Schedule call cancels the pending timer and restarts
// it, so only the last call within the delay actually fires (last-write-wins,
// no queued history of intermediate states).
//
// The state snapshot is captured at schedule time. Every mutation in the
// editor reschedules, so the pending snapshot always reflects the latest
// state when the timer fires, and the save callback runs on an immutable
// copy without touching live session data.
type Scheduler struct {
	save func(State)

	mu      sync.Mutex
	timer   *time.Timer
	pending *State
}

// NewScheduler creates a scheduler that hands due snapshots to save.
// The callback runs on the timer goroutine and must not block input handling.
func NewScheduler(save func(State)) *Scheduler {
	return &Scheduler{save: save}
}

// Schedule records the snapshot and (re)starts the debounce timer. A timer
// already pending is canceled first; its snapshot is superseded.
func (s *Scheduler) Schedule(delay time.Duration, snapshot State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = &snapshot
	s.timer = time.AfterFunc(delay, s.fire)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	snap := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()
	if snap != nil {
		s.save(*snap)
	}
}

// SaveNow persists the snapshot immediately, canceling any pending timer.
func (s *Scheduler) SaveNow(snapshot State) {
	s.Stop()
	s.save(snapshot)
}

// Flush fires the pending save immediately, if any. Called on editor
// teardown so the last gesture is never lost to an unexpired timer.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	snap := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if snap != nil {
		s.save(*snap)
	}
}

// Stop cancels any pending save without firing it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

// Pending reports whether a save is currently scheduled.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
