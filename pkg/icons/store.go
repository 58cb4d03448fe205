// Package icons provides the persistent SVG source cache.
//
// The store maps (icon name, style) pairs to local vector files, fetching
// from the remote Phosphor repository on first request and serving from
// disk afterwards. Cached entries never expire; the cache survives across
// runs and is shared by every configuration document.
//
// Cache layout:
//
//	<root>/<style>/<name>.svg
//
// Writes are atomic (temp file then rename) so a parallelized caller can
// never observe a partially written entry.
package icons

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pepaslabs/phosphor-uikit/pkg/config"
	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

const httpTimeout = 30 * time.Second

// EnvCacheDir overrides the default cache root when set.
const EnvCacheDir = "PHOSPHOR_UIKIT_CACHE_DIR"

// Store is the on-disk icon source cache backed by a remote HTTP source.
//
// A Store is safe for sequential use; concurrent Resolve calls for the same
// pair may fetch twice but cannot corrupt the cache (writes are atomic).
type Store struct {
	dir     string
	baseURL string
	http    *http.Client
}

// DefaultDir returns the cache root used when no override is configured:
// PHOSPHOR_UIKIT_CACHE_DIR if set, otherwise ~/.cache/phosphor-uikit.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "phosphor-uikit"), nil
}

// NewStore creates a store rooted at dir, fetching misses from baseURL
// using the template <baseURL>/<style>/<name>.svg.
//
// If dir is empty, DefaultDir is used. The root directory is created if
// absent; creation failure is the only error source.
func NewStore(dir, baseURL string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:     dir,
		baseURL: baseURL,
		http:    &http.Client{Timeout: httpTimeout},
	}, nil
}

// Dir returns the absolute path to the cache root.
func (s *Store) Dir() string { return s.dir }

// Path returns the cache location for a (name, style) pair.
// The file may or may not exist; use Cached to check.
func (s *Store) Path(name string, style config.Style) string {
	return filepath.Join(s.dir, string(style), name+".svg")
}

// URL returns the remote source URL for a (name, style) pair.
func (s *Store) URL(name string, style config.Style) string {
	return fmt.Sprintf("%s/%s/%s.svg", s.baseURL, style, name)
}

// Cached reports whether a (name, style) pair is present on disk.
// It never performs a network call.
func (s *Store) Cached(name string, style config.Style) bool {
	info, err := os.Stat(s.Path(name, style))
	return err == nil && !info.IsDir()
}

// Resolve returns the local path of the vector file for (name, style),
// fetching it from the remote source on a cache miss. If refresh is true
// the cache is bypassed and the icon is re-fetched unconditionally.
//
// A hit performs no network call. A miss performs exactly one GET; any
// transport failure or non-2xx status is a FETCH_ERROR identifying the
// pair and the underlying cause. There are no retries.
func (s *Store) Resolve(ctx context.Context, name string, style config.Style, refresh bool) (string, error) {
	path := s.Path(name, style)
	if !refresh && s.Cached(name, style) {
		return path, nil
	}

	data, err := s.fetch(ctx, name, style)
	if err != nil {
		return "", err
	}
	if err := s.write(path, data); err != nil {
		return "", errs.Wrap(errs.ErrCodeFetch, err, "icon %s (style %s): cache write failed", name, style)
	}
	return path, nil
}

// Clear removes every cached entry and returns the number removed.
// The cache root itself is preserved.
func (s *Store) Clear() (int, error) {
	count := 0
	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == s.dir || info.IsDir() {
			return nil
		}
		if rmErr := os.Remove(path); rmErr == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	// Clean up empty style subdirectories
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return count, nil
	}
	for _, e := range entries {
		if e.IsDir() {
			_ = os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	return count, nil
}

func (s *Store) fetch(ctx context.Context, name string, style config.Style) ([]byte, error) {
	url := s.URL(name, style)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFetch, err, "icon %s (style %s): bad request", name, style)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFetch, err, "icon %s (style %s): GET %s", name, style, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.New(errs.ErrCodeFetch, "icon %s (style %s): not found at %s", name, style, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.New(errs.ErrCodeFetch, "icon %s (style %s): GET %s: status %d", name, style, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFetch, err, "icon %s (style %s): reading response", name, style)
	}
	return data, nil
}

// write persists data at path atomically: a uuid-suffixed temp file in the
// same directory, then a rename. Readers never observe partial content.
func (s *Store) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
