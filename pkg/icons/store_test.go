package icons

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pepaslabs/phosphor-uikit/pkg/config"
	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256 256"><path d="M0 0h256v256H0z"/></svg>`

// testServer serves testSVG for any /<style>/<name>.svg path and counts
// requests.
func testServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasSuffix(r.URL.Path, ".svg") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(testSVG))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolve_FetchesOnMiss(t *testing.T) {
	var hits atomic.Int64
	server := testServer(t, &hits)

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	path, err := store.Resolve(context.Background(), "house", config.StyleRegular, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if hits.Load() != 1 {
		t.Errorf("expected 1 fetch, got %d", hits.Load())
	}
	if want := store.Path("house", config.StyleRegular); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cached file unreadable: %v", err)
	}
	if string(data) != testSVG {
		t.Error("cached content does not match fetched content")
	}
}

func TestResolve_HitSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	server := testServer(t, &hits)

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.Resolve(ctx, "house", config.StyleRegular, false); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := store.Resolve(ctx, "house", config.StyleRegular, false); err != nil {
			t.Fatalf("warm Resolve failed: %v", err)
		}
	}

	if hits.Load() != 1 {
		t.Errorf("expected exactly 1 fetch for repeated resolves, got %d", hits.Load())
	}
}

func TestResolve_DistinctPairsFetchSeparately(t *testing.T) {
	var hits atomic.Int64
	server := testServer(t, &hits)

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ctx := context.Background()
	pairs := []struct {
		name  string
		style config.Style
	}{
		{"house", config.StyleRegular},
		{"house", config.StyleBold}, // same name, different style
		{"book", config.StyleRegular},
	}
	for _, p := range pairs {
		if _, err := store.Resolve(ctx, p.name, p.style, false); err != nil {
			t.Fatalf("Resolve(%s, %s) failed: %v", p.name, p.style, err)
		}
	}

	if hits.Load() != int64(len(pairs)) {
		t.Errorf("expected %d fetches, got %d", len(pairs), hits.Load())
	}
}

func TestResolve_RefreshBypassesCache(t *testing.T) {
	var hits atomic.Int64
	server := testServer(t, &hits)

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.Resolve(ctx, "house", config.StyleRegular, false); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := store.Resolve(ctx, "house", config.StyleRegular, true); err != nil {
		t.Fatalf("refresh Resolve failed: %v", err)
	}

	if hits.Load() != 2 {
		t.Errorf("expected 2 fetches with refresh, got %d", hits.Load())
	}
}

func TestResolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	_, err = store.Resolve(context.Background(), "missing", config.StyleRegular, false)
	if err == nil {
		t.Fatal("expected error for missing icon")
	}
	if !errs.Is(err, errs.ErrCodeFetch) {
		t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeFetch)
	}
	for _, want := range []string{"missing", "regular"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should identify %q", err.Error(), want)
		}
	}

	// Nothing should be cached after a failed fetch.
	if store.Cached("missing", config.StyleRegular) {
		t.Error("failed fetch should not populate the cache")
	}
}

func TestResolve_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	_, err = store.Resolve(context.Background(), "house", config.StyleRegular, false)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errs.Is(err, errs.ErrCodeFetch) {
		t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeFetch)
	}
}

func TestResolve_NoTempFilesLeftBehind(t *testing.T) {
	var hits atomic.Int64
	server := testServer(t, &hits)

	dir := t.TempDir()
	store, err := NewStore(dir, server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, err := store.Resolve(context.Background(), "house", config.StyleRegular, false); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if strings.Contains(path, ".tmp-") {
			t.Errorf("temp file left behind: %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCached(t *testing.T) {
	var hits atomic.Int64
	server := testServer(t, &hits)

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if store.Cached("house", config.StyleRegular) {
		t.Error("Cached should be false before fetch")
	}
	if hits.Load() != 0 {
		t.Error("Cached must not perform network calls")
	}

	if _, err := store.Resolve(context.Background(), "house", config.StyleRegular, false); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !store.Cached("house", config.StyleRegular) {
		t.Error("Cached should be true after fetch")
	}
}

func TestClear(t *testing.T) {
	var hits atomic.Int64
	server := testServer(t, &hits)

	store, err := NewStore(t.TempDir(), server.URL)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ctx := context.Background()
	for _, name := range []string{"house", "book", "play"} {
		if _, err := store.Resolve(ctx, name, config.StyleRegular, false); err != nil {
			t.Fatalf("Resolve(%s) failed: %v", name, err)
		}
	}

	count, err := store.Clear()
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Clear removed %d entries, want 3", count)
	}
	if store.Cached("house", config.StyleRegular) {
		t.Error("cache should be empty after Clear")
	}

	// Clearing an empty cache is fine.
	count, err = store.Clear()
	if err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second Clear removed %d entries, want 0", count)
	}
}

func TestURL(t *testing.T) {
	store, err := NewStore(t.TempDir(), "https://example.com/assets")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	want := "https://example.com/assets/bold/acorn.svg"
	if got := store.URL("acorn", config.StyleBold); got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestDefaultDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvCacheDir, dir)

	got, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("DefaultDir = %q, want %q", got, dir)
	}
}

func TestDefaultDir_UnderHome(t *testing.T) {
	t.Setenv(EnvCacheDir, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir failed: %v", err)
	}
	if !strings.HasPrefix(got, home) {
		t.Errorf("DefaultDir = %q, should be under home %q", got, home)
	}
	if !strings.Contains(got, ".cache") {
		t.Errorf("DefaultDir = %q, should contain '.cache'", got)
	}
}
