package cache

import (
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	expiresAt time.Time // zero = never
	value     V
}

// Memory is a process-local cache. Expired entries are dropped on access and
// swept when the entry limit is reached.
type Memory[V any] struct {
	items      map[string]item[V]
	now        func() time.Time
	defaultTTL time.Duration
	maxEntries int
	mu         sync.RWMutex
	closed     bool
}

// NewMemory creates an in-memory cache. maxEntries <= 0 means unlimited.
func NewMemory[V any](defaultTTL time.Duration, maxEntries int) *Memory[V] {
	return &Memory[V]{
		items:      make(map[string]item[V]),
		now:        time.Now,
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()

	var zero V
	if !ok {
		return zero, ErrNotFound
	}
	if m.expired(it) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return zero, ErrNotFound
	}
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.defaultTTL
	}

	it := item[V]{value: value}
	if ttl > 0 {
		it.expiresAt = m.now().Add(ttl)
	}

	if _, exists := m.items[key]; !exists && m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		m.makeRoom()
	}
	m.items[key] = it
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet dropped.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Close drops all entries. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	clear(m.items)
	return nil
}

func (m *Memory[V]) expired(it item[V]) bool {
	return !it.expiresAt.IsZero() && m.now().After(it.expiresAt)
}

// makeRoom drops expired entries, or the one closest to expiry when none are.
// Caller must hold the write lock.
func (m *Memory[V]) makeRoom() {
	var (
		victim   string
		earliest time.Time
	)
	for k, it := range m.items {
		if m.expired(it) {
			delete(m.items, k)
			continue
		}
		if victim == "" || (!it.expiresAt.IsZero() && (earliest.IsZero() || it.expiresAt.Before(earliest))) {
			victim, earliest = k, it.expiresAt
		}
	}
	if len(m.items) >= m.maxEntries && victim != "" {
		delete(m.items, victim)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
