package data

import (
	"context"
	"sync"
	"time"
)

var _ KV = (*MemoryKV)(nil)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryKV is a process-local KV. Contents are lost on restart.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}
	if e.expired(m.now()) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (m *MemoryKV) Put(ctx context.Context, key string, value []byte) error {
	return m.put(key, value, time.Time{})
}

func (m *MemoryKV) PutTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return m.put(key, value, m.now().Add(ttl))
}

func (m *MemoryKV) put(key string, value []byte, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: expiresAt,
	}
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryKV) Ping(context.Context) error {
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}
