package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAllow_WithinLimit(t *testing.T) {
	t.Parallel()

	l := New(5, time.Minute)

	for i := 0; i < 5; i++ {
		res := l.Allow("key-a")
		if !res.Allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
		if res.Remaining != 5-(i+1) {
			t.Errorf("Request %d: expected remaining %d, got %d", i+1, 5-(i+1), res.Remaining)
		}
	}
}

func TestAllow_DeniesOverLimit(t *testing.T) {
	t.Parallel()

	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if res := l.Allow("key-b"); !res.Allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	res := l.Allow("key-b")
	if res.Allowed {
		t.Fatal("Fourth request should be denied")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("Denied request should carry a positive RetryAfter, got %v", res.RetryAfter)
	}
	if res.RetryAfter > time.Minute {
		t.Errorf("RetryAfter should not exceed the window, got %v", res.RetryAfter)
	}
	if res.RetryAfter%time.Second != 0 {
		t.Errorf("RetryAfter should be whole seconds, got %v", res.RetryAfter)
	}
}

func TestAllow_WindowResets(t *testing.T) {
	t.Parallel()

	l := New(2, time.Minute)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	l.Allow("key-c")
	l.Allow("key-c")
	if res := l.Allow("key-c"); res.Allowed {
		t.Fatal("Third request in window should be denied")
	}

	// Advance past the window; the counter starts fresh.
	current = current.Add(61 * time.Second)

	res := l.Allow("key-c")
	if !res.Allowed {
		t.Fatal("Request after window reset should be allowed")
	}
	if res.Remaining != 1 {
		t.Errorf("Expected remaining 1 after reset, got %d", res.Remaining)
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)

	if res := l.Allow("key-d"); !res.Allowed {
		t.Fatal("First request for key-d should be allowed")
	}
	if res := l.Allow("key-d"); res.Allowed {
		t.Fatal("Second request for key-d should be denied")
	}

	// A different key has its own window.
	if res := l.Allow("key-e"); !res.Allowed {
		t.Fatal("First request for key-e should be allowed")
	}
}

func TestAllow_Concurrent(t *testing.T) {
	t.Parallel()

	const max = 50
	l := New(max, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < max*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != max {
		t.Errorf("Expected exactly %d allowed under contention, got %d", max, allowed)
	}
}

func TestPurge_DropsExpiredWindows(t *testing.T) {
	t.Parallel()

	l := New(10, time.Minute)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	for i := 0; i < 100; i++ {
		l.Allow(fmt.Sprintf("key-%d", i))
	}
	if len(l.entries) != 100 {
		t.Fatalf("Expected 100 tracked keys, got %d", len(l.entries))
	}

	current = current.Add(2 * time.Minute)
	l.Purge()

	if len(l.entries) != 0 {
		t.Errorf("Expected all windows purged, got %d remaining", len(l.entries))
	}
}
