package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSubmissionCreated is a no-op.
func (n *NoopRecorder) IncSubmissionCreated(kind string) {}

// IncSubmissionConflict is a no-op.
func (n *NoopRecorder) IncSubmissionConflict(kind string) {}

// IncStatusUpdated is a no-op.
func (n *NoopRecorder) IncStatusUpdated(kind string) {}

// IncAuthRejected is a no-op.
func (n *NoopRecorder) IncAuthRejected(reason string) {}

// IncAdminLogin is a no-op.
func (n *NoopRecorder) IncAdminLogin(status string) {}

// IncRateLimitDenied is a no-op.
func (n *NoopRecorder) IncRateLimitDenied() {}

// IncCatalogCacheHit is a no-op.
func (n *NoopRecorder) IncCatalogCacheHit() {}

// IncCatalogCacheMiss is a no-op.
func (n *NoopRecorder) IncCatalogCacheMiss() {}
