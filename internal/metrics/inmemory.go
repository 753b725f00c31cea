package metrics

import "sync"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	SubmissionsCreated   map[string]uint64
	SubmissionConflicts  map[string]uint64
	StatusUpdates        map[string]uint64
	AuthRejections       map[string]uint64
	AdminLogins          map[string]uint64
	RateLimitDenials     uint64
	CatalogCacheHits     uint64
	CatalogCacheMisses   uint64
}

// InMemoryRecorder stores metrics in memory for tests and the
// detailed health endpoint.
type InMemoryRecorder struct {
	mu                  sync.Mutex
	submissionsCreated  map[string]uint64
	submissionConflicts map[string]uint64
	statusUpdates       map[string]uint64
	authRejections      map[string]uint64
	adminLogins         map[string]uint64
	rateLimitDenials    uint64
	catalogCacheHits    uint64
	catalogCacheMisses  uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		submissionsCreated:  make(map[string]uint64),
		submissionConflicts: make(map[string]uint64),
		statusUpdates:       make(map[string]uint64),
		authRejections:      make(map[string]uint64),
		adminLogins:         make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		SubmissionsCreated:  copyCounts(m.submissionsCreated),
		SubmissionConflicts: copyCounts(m.submissionConflicts),
		StatusUpdates:       copyCounts(m.statusUpdates),
		AuthRejections:      copyCounts(m.authRejections),
		AdminLogins:         copyCounts(m.adminLogins),
		RateLimitDenials:    m.rateLimitDenials,
		CatalogCacheHits:    m.catalogCacheHits,
		CatalogCacheMisses:  m.catalogCacheMisses,
	}
}

// IncSubmissionCreated increments the created counter for a submission kind.
func (m *InMemoryRecorder) IncSubmissionCreated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissionsCreated[kind]++
}

// IncSubmissionConflict increments the reference-conflict counter for a kind.
func (m *InMemoryRecorder) IncSubmissionConflict(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissionConflicts[kind]++
}

// IncStatusUpdated increments the admin status-update counter for a kind.
func (m *InMemoryRecorder) IncStatusUpdated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusUpdates[kind]++
}

// IncAuthRejected increments the rejection counter for a reason.
func (m *InMemoryRecorder) IncAuthRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authRejections[reason]++
}

// IncAdminLogin increments the admin login counter for an outcome.
func (m *InMemoryRecorder) IncAdminLogin(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminLogins[status]++
}

// IncRateLimitDenied increments the denial counter.
func (m *InMemoryRecorder) IncRateLimitDenied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimitDenials++
}

// IncCatalogCacheHit increments the catalog cache hit counter.
func (m *InMemoryRecorder) IncCatalogCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogCacheHits++
}

// IncCatalogCacheMiss increments the catalog cache miss counter.
func (m *InMemoryRecorder) IncCatalogCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogCacheMisses++
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
