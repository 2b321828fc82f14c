package auth

import (
	"sync"
	"time"
)

// refreshScheduler owns the single pending refresh timer of a Manager.
// Arming always cancels the previously pending timer first, so at most one
// timer is live per manager instance at any instant.
type refreshScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// arm schedules fn to run after delay, replacing any pending timer. A
// non-positive delay fires immediately (still asynchronously, on the timer
// goroutine, to keep call ordering uniform).
func (s *refreshScheduler) arm(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	if delay < 0 {
		delay = 0
	}
	s.timer = time.AfterFunc(delay, fn)
}

// disarm cancels the pending timer, if any. A timer whose callback has
// already started cannot be recalled here; the refresh path re-validates the
// session before acting.
func (s *refreshScheduler) disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
