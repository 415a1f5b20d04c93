package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func limitedHandler(rl *RateLimiter) http.Handler {
	return rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doFrom(handler http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	defer rl.Stop()
	handler := limitedHandler(rl)

	for i := 0; i < 3; i++ {
		if code := doFrom(handler, "10.0.0.1:1000"); code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, code)
		}
	}
	if code := doFrom(handler, "10.0.0.1:1000"); code != http.StatusTooManyRequests {
		t.Errorf("request past burst: status %d, want 429", code)
	}
}

func TestRateLimiter_SameHostDifferentPortsShareBucket(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	handler := limitedHandler(rl)

	// Each request arrives on a new ephemeral port; the bucket is per host.
	doFrom(handler, "10.0.0.1:1000")
	doFrom(handler, "10.0.0.1:2000")
	if code := doFrom(handler, "10.0.0.1:3000"); code != http.StatusTooManyRequests {
		t.Errorf("third request from same host: status %d, want 429", code)
	}

	// A different host starts with a full bucket.
	if code := doFrom(handler, "10.0.0.2:1000"); code != http.StatusOK {
		t.Errorf("other host: status %d, want 200", code)
	}
}

func TestRateLimiter_ProxiedAddressWithoutPort(t *testing.T) {
	// RealIP upstream can rewrite RemoteAddr to a bare IP.
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()
	handler := limitedHandler(rl)

	if code := doFrom(handler, "192.0.2.7"); code != http.StatusOK {
		t.Fatalf("first request: status %d", code)
	}
	if code := doFrom(handler, "192.0.2.7"); code != http.StatusTooManyRequests {
		t.Errorf("second request: status %d, want 429", code)
	}
}

func TestRateLimiter_ServesAfterStop(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()
	// Limiting still works after the eviction loop has stopped.
	handler := limitedHandler(rl)
	if code := doFrom(handler, "10.0.0.9:1"); code != http.StatusOK {
		t.Errorf("status %d after Stop", code)
	}
}
