package metrics

import (
	"sync"
	"time"
)

// Metrics tracks pipeline and delivery counters for the monitoring
// endpoints. All methods are safe for concurrent use.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched     int64
	SourcesFailed      int64
	ArticlesExtracted  int64
	DuplicatesFiltered int64
	DroppedByDate      int64
	DocumentsCreated   int64
	MessagesSent       int64

	// Timings
	LastRunDuration  time.Duration
	TotalRunDuration time.Duration
	RunCount         int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddSourcesFetched(n int) {
	m.add(&m.SourcesFetched, n)
}

func (m *Metrics) AddSourcesFailed(n int) {
	m.add(&m.SourcesFailed, n)
}

func (m *Metrics) AddArticlesExtracted(n int) {
	m.add(&m.ArticlesExtracted, n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.add(&m.DuplicatesFiltered, n)
}

func (m *Metrics) AddDroppedByDate(n int) {
	m.add(&m.DroppedByDate, n)
}

func (m *Metrics) IncrementDocumentsCreated() {
	m.add(&m.DocumentsCreated, 1)
}

func (m *Metrics) IncrementMessagesSent() {
	m.add(&m.MessagesSent, 1)
}

func (m *Metrics) add(counter *int64, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*counter += int64(n)
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := time.Duration(0)
	if m.RunCount > 0 {
		avg = m.TotalRunDuration / time.Duration(m.RunCount)
	}

	return map[string]interface{}{
		"sources_fetched":         m.SourcesFetched,
		"sources_failed":          m.SourcesFailed,
		"articles_extracted":      m.ArticlesExtracted,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"dropped_by_date":         m.DroppedByDate,
		"documents_created":       m.DocumentsCreated,
		"messages_sent":           m.MessagesSent,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": avg.Milliseconds(),
		"run_count":               m.RunCount,
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
