package storage

import (
	"context"
	"sync"
	"time"
)

const ledgerSweepInterval = time.Minute

var _ ReplayLedger = (*MemoryReplayLedger)(nil)

// MemoryReplayLedger is the single-process ledger for development. Entries
// expire lazily on read and in a background sweep.
type MemoryReplayLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time

	done chan struct{}
	once sync.Once
}

func NewMemoryReplayLedger() *MemoryReplayLedger {
	l := &MemoryReplayLedger{
		entries: make(map[string]time.Time),
		done:    make(chan struct{}),
	}

	go l.sweepLoop()

	return l
}

func (l *MemoryReplayLedger) MarkProcessed(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.entries[eventID]; ok && now.Before(expiry) {
		return false, nil
	}
	l.entries[eventID] = now.Add(ttl)
	return true, nil
}

func (l *MemoryReplayLedger) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *MemoryReplayLedger) sweepLoop() {
	ticker := time.NewTicker(ledgerSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for id, expiry := range l.entries {
				if now.After(expiry) {
					delete(l.entries, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
