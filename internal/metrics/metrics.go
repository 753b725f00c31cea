// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Submission metrics
	IncSubmissionCreated(kind string) // kind: "quote", "suggestion", "contact"
	IncSubmissionConflict(kind string)
	IncStatusUpdated(kind string)

	// Authentication metrics
	IncAuthRejected(reason string)
	IncAdminLogin(status string) // status: "success" or "failed"

	// Rate limiting metrics
	IncRateLimitDenied()

	// Catalog cache metrics
	IncCatalogCacheHit()
	IncCatalogCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
