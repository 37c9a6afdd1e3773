package itunes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(":memory:")
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCachePutGet(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Put("key-a", []byte("body-a")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	body, ok := cache.Get("key-a", time.Hour)
	if !ok {
		t.Fatal("Get() miss for freshly stored key")
	}
	if string(body) != "body-a" {
		t.Errorf("body = %q, want %q", body, "body-a")
	}

	if _, ok := cache.Get("key-b", time.Hour); ok {
		t.Error("Get() hit for unknown key")
	}
}

func TestCachePutRefreshesBody(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Put("key", []byte("old")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := cache.Put("key", []byte("new")); err != nil {
		t.Fatalf("second Put() error: %v", err)
	}

	body, ok := cache.Get("key", time.Hour)
	if !ok {
		t.Fatal("Get() miss after refresh")
	}
	if string(body) != "new" {
		t.Errorf("body = %q, want refreshed %q", body, "new")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Put("key", []byte("body")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := cache.Get("key", 10*time.Millisecond); ok {
		t.Error("Get() served a body older than maxAge")
	}
	if _, ok := cache.Get("key", time.Hour); !ok {
		t.Error("Get() missed a body younger than maxAge")
	}
}

func TestClientServesFromCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("upstream"))
	}))
	defer srv.Close()

	cache := newTestCache(t)
	c := newTestClient(testConfig(srv.URL)).WithCache(cache, time.Hour)

	for i := 0; i < 2; i++ {
		body, err := c.Get(context.Background(), srv.URL, nil, nil)
		if err != nil {
			t.Fatalf("Get() call %d error: %v", i+1, err)
		}
		if string(body) != "upstream" {
			t.Errorf("call %d body = %q", i+1, body)
		}
	}

	if hits != 1 {
		t.Errorf("server hit %d times, want 1: second call must come from cache", hits)
	}
}

func TestClientBypassesStaleCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("upstream"))
	}))
	defer srv.Close()

	cache := newTestCache(t)
	c := newTestClient(testConfig(srv.URL)).WithCache(cache, time.Nanosecond)

	c.Get(context.Background(), srv.URL, nil, nil)
	time.Sleep(5 * time.Millisecond)
	c.Get(context.Background(), srv.URL, nil, nil)

	if hits != 2 {
		t.Errorf("server hit %d times, want 2: stale entry must not be served", hits)
	}
}
