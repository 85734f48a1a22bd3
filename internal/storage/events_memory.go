package storage

import (
	"context"
	"sync"
)

var _ EventStore = (*MemoryEventStore)(nil)

// MemoryEventStore keeps accepted events in process memory. Test use only.
type MemoryEventStore struct {
	mu     sync.Mutex
	events map[string]AcceptedEvent
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{events: make(map[string]AcceptedEvent)}
}

func (s *MemoryEventStore) Record(_ context.Context, event AcceptedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[event.EventID]; !exists {
		s.events[event.EventID] = event
	}
	return nil
}

// Get returns a recorded event by id, for test assertions.
func (s *MemoryEventStore) Get(eventID string) (AcceptedEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	return event, ok
}

// Len returns the number of recorded events.
func (s *MemoryEventStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func (s *MemoryEventStore) Close() error {
	return nil
}
