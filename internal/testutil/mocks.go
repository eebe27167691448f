package testutil

import (
	"sync"
	"time"

	"focusd/internal/providers"
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

// Levels returns the recorded log levels in order.
func (m *MockLogger) Levels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	levels := make([]string, 0, len(m.Logs))
	for _, entry := range m.Logs {
		levels = append(levels, entry.Level)
	}
	return levels
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                 sync.Mutex
	SegmentsRecorded   int
	SegmentsQueued     int
	SegmentsDropped    int
	MicroBreaks        int
	InvalidTransitions map[string]int
	PendingGauge       int
	CacheHits          int
	CacheMisses        int
}

func (m *MockMetrics) IncSegmentsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SegmentsRecorded++
}

func (m *MockMetrics) IncSegmentsQueued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SegmentsQueued++
}

func (m *MockMetrics) IncSegmentsDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SegmentsDropped++
}

func (m *MockMetrics) IncMicroBreaks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MicroBreaks++
}

func (m *MockMetrics) IncInvalidTransitions(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InvalidTransitions == nil {
		m.InvalidTransitions = make(map[string]int)
	}
	m.InvalidTransitions[command]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {}

func (m *MockMetrics) ObserveAggregateDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) SetPendingSegments(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PendingGauge = count
}

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

// MockSounds implements providers.SoundProviderInterface.
type MockSounds struct {
	Values map[string]string
}

func (m *MockSounds) Resolve(event string) string {
	if v, ok := m.Values[event]; ok {
		return v
	}
	return providers.SoundBeep
}

// MockSink implements timer.SegmentSink and records calls.
type MockSink struct {
	mu    sync.Mutex
	Err   error
	Calls []SinkCall
}

type SinkCall struct {
	Start time.Time
	End   time.Time
}

func (m *MockSink) Record(start, end time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, SinkCall{Start: start, End: end})
	return m.Err
}

func (m *MockSink) Recorded() []SinkCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SinkCall, len(m.Calls))
	copy(out, m.Calls)
	return out
}
