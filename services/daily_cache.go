package services

import (
	"sync"

	"github.com/dailytrivia/backend/models"
)

// DailyCache is a single-slot cache whose validity window is exactly one
// calendar day, keyed by a YYYY-MM-DD date string. Only "today" is ever
// queried, so one slot bounds memory to O(1) regardless of traffic. The slot
// is last-write-wins; entries for a previous day are simply shadowed when the
// calendar advances.
//
// The cache does no I/O and never fetches on a miss; that stays with the
// caller so this component remains trivially testable.
type DailyCache struct {
	mutex  sync.RWMutex
	date   string
	events []models.HistoryEvent
}

// NewDailyCache creates an empty daily cache
func NewDailyCache() *DailyCache {
	return &DailyCache{}
}

// Get returns the cached payload if the entry was produced for today.
// The boolean reports a hit; any other date (or an empty cache) is a miss.
func (c *DailyCache) Get(today string) ([]models.HistoryEvent, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.date != today || c.events == nil {
		return nil, false
	}
	return c.events, true
}

// Put unconditionally replaces the slot with a payload for the given day
func (c *DailyCache) Put(today string, events []models.HistoryEvent) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.date = today
	c.events = events
}
