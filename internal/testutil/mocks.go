package testutil

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"scad/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// ErrorCount returns the number of error-level entries recorded.
func (m *MockLogger) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == "error" {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu        sync.Mutex
	Requests  int
	CacheHit  int
	CacheMiss int
	StoreOps  map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{StoreOps: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHit++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMiss++
}
func (m *MockMetrics) IncStoreOps(op string, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreOps[op]++
}
func (m *MockMetrics) ObserveSnapshotDuration(_ time.Duration) {}

// FakeStore is an in-memory keyed store with the same path semantics as the
// Redis implementation, plus failure injection for partial-failure tests.
type FakeStore struct {
	mu   sync.Mutex
	Data map[string]string
	// Err, when set, makes every operation fail with it.
	Err error
	// FailPaths makes operations on exactly these paths fail with Err.
	FailPaths map[string]bool
}

func NewFakeStore() *FakeStore {
	return &FakeStore{Data: make(map[string]string)}
}

func (f *FakeStore) fails(path string) error {
	if f.Err != nil && (f.FailPaths == nil || f.FailPaths[path]) {
		return f.Err
	}
	return nil
}

func (f *FakeStore) Get(_ context.Context, path string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fails(path); err != nil {
		return nil, err
	}
	if val, ok := f.Data[path]; ok {
		return val, nil
	}
	prefix := path + "/"
	tree := make(map[string]any)
	for key, val := range f.Data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		node := tree
		segments := strings.Split(strings.TrimPrefix(key, prefix), "/")
		for i, seg := range segments {
			if i == len(segments)-1 {
				node[seg] = val
				break
			}
			next, ok := node[seg].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[seg] = next
			}
			node = next
		}
	}
	if len(tree) == 0 {
		return nil, nil
	}
	return tree, nil
}

func (f *FakeStore) Set(_ context.Context, path string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fails(path); err != nil {
		return err
	}
	f.Data[path] = cast.ToString(value)
	return nil
}

func (f *FakeStore) Update(_ context.Context, path string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fails(path); err != nil {
		return err
	}
	for field, value := range fields {
		f.Data[path+"/"+field] = cast.ToString(value)
	}
	return nil
}

func (f *FakeStore) Increment(_ context.Context, path string, amount int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fails(path); err != nil {
		return 0, err
	}
	current := int64(0)
	if raw, ok := f.Data[path]; ok {
		current = cast.ToInt64(raw)
	}
	current += amount
	f.Data[path] = strconv.FormatInt(current, 10)
	return current, nil
}

func (f *FakeStore) Ping(_ context.Context) error {
	return f.Err
}
