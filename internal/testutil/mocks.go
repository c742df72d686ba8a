package testutil

import (
	"errors"
	"goaltracker/internal/providers"
	"maps"
	"sync"
	"time"
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

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

var ErrMockStore = errors.New("mock store failure")

// MockPreferenceStore implements interfaces.PreferenceStoreInterface in memory.
type MockPreferenceStore struct {
	mu        sync.Mutex
	Values    map[string]string
	Commits   int
	FailGet   bool
	FailWrite bool
}

func NewMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{Values: make(map[string]string)}
}

func (m *MockPreferenceStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet {
		return "", false, ErrMockStore
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

func (m *MockPreferenceStore) Commit(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrite {
		return ErrMockStore
	}
	if m.Values == nil {
		m.Values = make(map[string]string)
	}
	maps.Copy(m.Values, values)
	m.Commits++
	return nil
}

func (m *MockPreferenceStore) Close() error { return nil }

// Value reads a committed value under the store lock.
func (m *MockPreferenceStore) Value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Values[key]
}

// MockSharer implements export.SharerInterface and records shared files.
type MockSharer struct {
	mu     sync.Mutex
	Shared []string
	Err    error
}

func (m *MockSharer) Share(path, mimeType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Shared = append(m.Shared, path)
	return nil
}

// FakeClock returns a fixed instant that tests can move.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    int
	CacheHits   int
	CacheMisses int
	Persists    int
	CheckIns    map[bool]int
	Exports     map[bool]int
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
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) IncCheckIns(accepted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CheckIns == nil {
		m.CheckIns = make(map[bool]int)
	}
	m.CheckIns[accepted]++
}

func (m *MockMetrics) IncExports(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Exports == nil {
		m.Exports = make(map[bool]int)
	}
	m.Exports[ok]++
}

func (m *MockMetrics) PersistCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Persists
}
