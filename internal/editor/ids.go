package editor

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator hands out record identifiers.
type IDGenerator interface {
	NextID() string
}

// ClockIDs derives identifiers from the wall clock in milliseconds. Two
// calls within the same millisecond (or after the clock steps back) still
// get strictly increasing values.
type ClockIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockIDs returns a generator reading time.Now.
func NewClockIDs() *ClockIDs {
	return &ClockIDs{now: time.Now}
}

func (g *ClockIDs) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now
	if now == nil {
		now = time.Now
	}
	ms := now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
