package metrics

import (
	"sync"
	"testing"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	m.IncSubmissionCreated("quote")
	m.IncSubmissionCreated("quote")
	m.IncSubmissionCreated("contact")
	m.IncSubmissionConflict("quote")
	m.IncStatusUpdated("suggestion")
	m.IncAuthRejected("INVALID_SIGNATURE")
	m.IncAdminLogin("failed")
	m.IncRateLimitDenied()
	m.IncCatalogCacheHit()
	m.IncCatalogCacheMiss()
	m.IncCatalogCacheMiss()

	s := m.Snapshot()

	if s.SubmissionsCreated["quote"] != 2 {
		t.Errorf("quote submissions = %d, want 2", s.SubmissionsCreated["quote"])
	}
	if s.SubmissionsCreated["contact"] != 1 {
		t.Errorf("contact submissions = %d, want 1", s.SubmissionsCreated["contact"])
	}
	if s.SubmissionConflicts["quote"] != 1 {
		t.Errorf("quote conflicts = %d, want 1", s.SubmissionConflicts["quote"])
	}
	if s.StatusUpdates["suggestion"] != 1 {
		t.Errorf("suggestion status updates = %d, want 1", s.StatusUpdates["suggestion"])
	}
	if s.AuthRejections["INVALID_SIGNATURE"] != 1 {
		t.Errorf("auth rejections = %d, want 1", s.AuthRejections["INVALID_SIGNATURE"])
	}
	if s.AdminLogins["failed"] != 1 {
		t.Errorf("failed logins = %d, want 1", s.AdminLogins["failed"])
	}
	if s.RateLimitDenials != 1 {
		t.Errorf("rate limit denials = %d, want 1", s.RateLimitDenials)
	}
	if s.CatalogCacheHits != 1 || s.CatalogCacheMisses != 2 {
		t.Errorf("cache hits/misses = %d/%d, want 1/2", s.CatalogCacheHits, s.CatalogCacheMisses)
	}
}

func TestInMemoryRecorder_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncSubmissionCreated("quote")

	s := m.Snapshot()
	s.SubmissionsCreated["quote"] = 99

	if got := m.Snapshot().SubmissionsCreated["quote"]; got != 1 {
		t.Errorf("Mutating a snapshot should not affect the recorder, got %d", got)
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncSubmissionCreated("quote")
			m.IncRateLimitDenied()
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.SubmissionsCreated["quote"] != 100 {
		t.Errorf("quote submissions = %d, want 100", s.SubmissionsCreated["quote"])
	}
	if s.RateLimitDenials != 100 {
		t.Errorf("rate limit denials = %d, want 100", s.RateLimitDenials)
	}
}
