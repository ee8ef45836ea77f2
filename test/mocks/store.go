package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/avatarctic/headless-blog/internal/core/ports"
)

type memEntry struct {
	value   string
	expires time.Time
}

// MemoryStore is an in-memory ports.KeyValueStore with TTLs and glob deletes.
// Setting Down makes every call behave like an unreachable store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time

	Down bool
	// Writes counts successful Set calls per key.
	Writes map[string]int
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memEntry{}, Writes: map[string]int{}, now: time.Now}
}

// Advance moves the store clock forward by d.
func (m *MemoryStore) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	base := m.now
	m.now = func() time.Time { return base().Add(d) }
}

func (m *MemoryStore) SetDown(down bool) {
	m.mu.Lock()
	m.Down = down
	m.mu.Unlock()
}

func (m *MemoryStore) live(key string) (memEntry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return memEntry{}, false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return memEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) Lookup(_ context.Context, key string) (string, ports.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Down {
		return "", ports.ResultUnavailable
	}
	e, ok := m.live(key)
	if !ok {
		return "", ports.ResultMiss
	}
	return e.value, ports.ResultOK
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool) {
	v, st := m.Lookup(ctx, key)
	return v, st == ports.ResultOK
}

func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Down {
		return false
	}
	e := memEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	m.Writes[key]++
	return true
}

func (m *MemoryStore) Delete(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Down {
		return false
	}
	delete(m.entries, key)
	return true
}

func (m *MemoryStore) DeleteByPattern(_ context.Context, pattern string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Down {
		return false
	}
	for k := range m.entries {
		if GlobMatch(pattern, k) {
			delete(m.entries, k)
		}
	}
	return true
}

func (m *MemoryStore) Exists(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Down {
		return false
	}
	_, ok := m.live(key)
	return ok
}

func (m *MemoryStore) TTL(_ context.Context, key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Down {
		return -1
	}
	e, ok := m.live(key)
	if !ok || e.expires.IsZero() {
		return -1
	}
	return int64((e.expires.Sub(m.now()) + time.Second/2) / time.Second)
}

func (m *MemoryStore) IncrementWindow(_ context.Context, key string, ttl time.Duration) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Down {
		return 0, false
	}
	var n int64
	if e, ok := m.live(key); ok {
		n, _ = strconv.ParseInt(e.value, 10, 64)
	}
	n++
	m.entries[key] = memEntry{value: strconv.FormatInt(n, 10), expires: m.now().Add(ttl)}
	return n, true
}

func (m *MemoryStore) Disconnect() error { return nil }

// Keys returns the live keys, for assertions.
func (m *MemoryStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for k := range m.entries {
		if _, ok := m.live(k); ok {
			out = append(out, k)
		}
	}
	return out
}

// Raw returns the stored string regardless of Down.
func (m *MemoryStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(key)
	return e.value, ok
}

// GlobMatch implements the Redis KEYS subset used here: '*' matches any run of
// characters (including ':' and '/'), '?' matches exactly one.
func GlobMatch(pattern, s string) bool {
	p, k := 0, 0
	star, mark := -1, 0
	for k < len(s) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == s[k]):
			p++
			k++
		case p < len(pattern) && pattern[p] == '*':
			star = p
			mark = k
			p++
		case star != -1:
			p = star + 1
			mark++
			k = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
