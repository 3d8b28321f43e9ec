package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/ttlcache"
	c "github.com/unkn0wn-root/ttlcache/codec"
)

type profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestHTTPProduce(t *testing.T) {
	ctx := context.Background()
	want := profile{ID: "p1", Name: "Ada"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profiles/p1" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=120")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	src, err := NewHTTP[profile](HTTPConfig[profile]{
		BaseURL: srv.URL + "/profiles",
		Codec:   c.JSON[profile]{},
	})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}

	v, ttl, err := src.Produce(ctx, "p1")
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if v != want {
		t.Fatalf("Produce=%+v want %+v", v, want)
	}
	if ttl != 2*time.Minute {
		t.Fatalf("ttl=%v want 2m from max-age", ttl)
	}
}

func TestHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src, err := NewHTTP[profile](HTTPConfig[profile]{
		BaseURL: srv.URL,
		Codec:   c.JSON[profile]{},
	})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	if _, _, err := src.Produce(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestHTTPDefaultTTL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(profile{ID: "x"})
	}))
	defer srv.Close()

	src, err := NewHTTP[profile](HTTPConfig[profile]{
		BaseURL:    srv.URL,
		Codec:      c.JSON[profile]{},
		DefaultTTL: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	_, ttl, err := src.Produce(context.Background(), "x")
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if ttl != 5*time.Second {
		t.Fatalf("ttl=%v want DefaultTTL without max-age", ttl)
	}
}

func TestHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src, err := NewHTTP[profile](HTTPConfig[profile]{
		BaseURL: srv.URL,
		Codec:   c.JSON[profile]{},
	})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	if _, _, err := src.Produce(context.Background(), "x"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want non-nil, non-ErrNotFound", err)
	}
}

func TestHTTPRejectsBadScheme(t *testing.T) {
	if _, err := NewHTTP[profile](HTTPConfig[profile]{
		BaseURL: "ftp://example.com",
		Codec:   c.JSON[profile]{},
	}); err == nil {
		t.Fatal("ftp scheme should be rejected")
	}
}

// End to end: an HTTP source behind CacheFunc only hits the server on
// misses.
func TestHTTPMemoized(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Cache-Control", "max-age=60")
		_ = json.NewEncoder(w).Encode(profile{ID: "p1", Name: "Ada"})
	}))
	defer srv.Close()

	src, err := NewHTTP[profile](HTTPConfig[profile]{
		BaseURL: srv.URL + "/profiles",
		Codec:   c.JSON[profile]{},
	})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}

	cache := ttlcache.New[string, profile]()
	lookup := cache.CacheFunc(src.Produce)

	for i := 0; i < 3; i++ {
		v, err := lookup(ctx, "p1")
		if err != nil || v.Name != "Ada" {
			t.Fatalf("lookup: v=%+v err=%v", v, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("server hit %d times, want 1", got)
	}
}

func TestMaxAge(t *testing.T) {
	if d, ok := maxAge("public, max-age=30"); !ok || d != 30*time.Second {
		t.Fatalf("maxAge=%v ok=%v want 30s", d, ok)
	}
	if _, ok := maxAge("no-store"); ok {
		t.Fatal("no-store has no max-age")
	}
	if _, ok := maxAge(""); ok {
		t.Fatal("empty header has no max-age")
	}
	if _, ok := maxAge("max-age=bogus"); ok {
		t.Fatal("unparseable max-age should be ignored")
	}
}
