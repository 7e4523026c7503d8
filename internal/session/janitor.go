package session

import (
	"context"
	"time"
)

// EvictIdle drops sessions untouched for longer than the idle TTL. Sessions
// with an intent in progress are kept. It returns the number evicted.
func (m *Manager) EvictIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTTL)
	evicted := 0
	for id, sess := range m.sessions {
		if _, busy := m.locks[id]; busy {
			continue
		}
		if sess.LastActive.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.recorder.SetActiveSessions(len(m.sessions))
	}
	return evicted
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(); n > 0 {
				m.logger.Debug("Evicted idle sessions", "count", n, "remaining", m.Len())
			}
		}
	}
}
