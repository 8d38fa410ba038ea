package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/planner"
)

// Factory builds the planner for a browser seen for the first time.
type Factory func() *planner.Session

type entry struct {
	mu       sync.Mutex
	planner  *planner.Session
	lastSeen time.Time
}

// Manager keeps one planner per browser identity in memory. Calls for the
// same identity run one at a time.
type Manager struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry

	factory     Factory
	idleTimeout time.Duration
	now         func() time.Time
}

func NewManager(factory Factory, idleTimeout time.Duration) *Manager {
	return &Manager{
		entries:     make(map[uuid.UUID]*entry),
		factory:     factory,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (m *Manager) get(id uuid.UUID) *entry {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		return e
	}
	e = &entry{planner: m.factory(), lastSeen: m.now()}
	m.entries[id] = e
	slog.Debug("planner session created", "id", id)
	return e
}

// With runs fn on the identity's planner while holding its lock.
func (m *Manager) With(id uuid.UUID, fn func(p *planner.Session)) {
	e := m.get(id)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = m.now()
	fn(e.planner)
}

// Sweep drops planners idle for longer than the idle timeout and reports
// how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.idleTimeout <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if !e.mu.TryLock() {
			continue // in use
		}
		if now.Sub(e.lastSeen) > m.idleTimeout {
			delete(m.entries, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Run sweeps on every tick until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := m.Sweep(now); removed > 0 {
				slog.Info("idle planner sessions evicted", "count", removed, "remaining", m.Len())
			}
		}
	}
}
