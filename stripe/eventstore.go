package stripe

import (
	"sync"
	"time"
)

// MemoryEventStore keeps track of dispatched webhook event IDs so redelivered
// events are dispatched at most once. Entries expire after a TTL; nothing is
// persisted across restarts.
type MemoryEventStore struct {
	events   map[string]time.Time
	mutex    sync.RWMutex
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryEventStore creates a new in-memory event store
func NewMemoryEventStore(ttl time.Duration) *MemoryEventStore {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	store := &MemoryEventStore{
		events: make(map[string]time.Time),
		ttl:    ttl,
		stop:   make(chan struct{}),
	}

	go store.cleanup()

	return store
}

// Close stops the background cleanup goroutine. It is safe to call more than
// once; the store itself remains usable.
func (m *MemoryEventStore) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

// EventExists checks if an event has already been processed
func (m *MemoryEventStore) EventExists(eventID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.events[eventID]
	return exists
}

// MarkProcessed marks an event as processed
func (m *MemoryEventStore) MarkProcessed(eventID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events[eventID] = time.Now()
	return nil
}

// cleanup removes expired events periodically
func (m *MemoryEventStore) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()
			for eventID, timestamp := range m.events {
				if now.Sub(timestamp) > m.ttl {
					delete(m.events, eventID)
				}
			}
			m.mutex.Unlock()
		}
	}
}

// Size returns the number of stored events (for monitoring/debugging)
func (m *MemoryEventStore) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.events)
}
