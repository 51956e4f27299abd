package infra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Hour)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for absent key")
	}

	c.Set("k", 42)
	if v, ok := c.Get("k"); !ok || v.(int) != 42 {
		t.Errorf("Get(k) = %v, %v; want 42, true", v, ok)
	}

	c.SetWithTTL("short", "v", -time.Second)
	if _, ok := c.Get("short"); ok {
		t.Error("expected expired entry to miss")
	}

	c.Flush()
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after Flush")
	}
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait %d: %v", i, err)
		}
	}

	// Bucket is empty and refills in an hour; Wait must honor cancel.
	cctx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	if err := rl.Wait(cctx); err == nil {
		t.Fatal("expected context error on empty bucket")
	}
}

func TestDoGetRetriesThrottling(t *testing.T) {
	t.Cleanup(func() { maxAttempts = 4; baseBackoff = 2 * time.Second })
	maxAttempts = 3
	baseBackoff = 10 * time.Millisecond

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" || ua == "Go-http-client/1.1" {
			t.Errorf("unexpected User-Agent %q", ua)
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	body, status, err := DoGet(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("DoGet: %v", err)
	}
	defer body.Close()

	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", got)
	}
	b, _ := io.ReadAll(body)
	if string(b) != "ok" {
		t.Errorf("body = %q, want ok", b)
	}
}

func TestDoGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, status, err := DoGet(context.Background(), srv.URL, nil); err == nil {
		t.Fatal("expected error for 404")
	} else if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", got)
	}
}
