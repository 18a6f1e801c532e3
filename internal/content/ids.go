package content

import (
	"strconv"
	"sync"
	"time"
)

// IDSource hands out time-based entry ids. Ids are strictly increasing for
// the lifetime of the source even if the clock stalls or goes backwards.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource returns a source backed by the wall clock.
func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceAt returns a source backed by now, for tests.
func NewIDSourceAt(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

// Next returns the next id for which taken reports false.
func (s *IDSource) Next(taken func(id string) bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now
	if s.now != nil {
		now = s.now
	}

	candidate := now().UnixMilli()
	if candidate <= s.last {
		candidate = s.last + 1
	}
	for {
		id := strconv.FormatInt(candidate, 10)
		if taken == nil || !taken(id) {
			s.last = candidate
			return id
		}
		candidate++
	}
}
