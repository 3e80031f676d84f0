package domain

import (
	"sync"
	"time"
)

// IDGenerator hands out clock-based item ids. Ids are strictly increasing
// within a generator even when the clock stalls or steps backwards.
type IDGenerator struct {
	mu   sync.Mutex
	last ItemID
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// NewIDGeneratorWithClock is used by tests that need deterministic ids.
func NewIDGeneratorWithClock(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

// Observe raises the floor so later ids never collide with ids already
// present in a loaded forest.
func (g *IDGenerator) Observe(id ItemID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}

func (g *IDGenerator) Next() ItemID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := ItemID(g.now().UnixMilli())
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
