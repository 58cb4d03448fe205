// Package catalog materializes Xcode asset catalogs.
//
// A catalog is a `<Config>.xcassets` directory holding a root Contents.json
// and one `<name>.<size>.<style>.imageset` directory per icon request. Each
// imageset contains three PNGs (1x/2x/3x) and a manifest tagging them with
// their scale and the universal idiom.
//
// The writer is idempotent: running twice against an unchanged config and
// cache produces byte-identical output. In dry-run mode no filesystem
// mutation happens; the writer records the actions it would have taken, in
// the same order the mutating path takes them.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pepaslabs/phosphor-uikit/pkg/config"
	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

// Scales are the standard device resolution multipliers.
var Scales = [3]int{1, 2, 3}

// Variant is one generated bitmap for a request at one scale factor.
type Variant struct {
	Scale int    // 1, 2, or 3
	Data  []byte // PNG bytes
}

// Action is one recorded filesystem mutation (taken or, in dry-run,
// intended).
type Action struct {
	Op   string // "mkdir", "write", or "prune"
	Path string
}

// String formats the action for display.
func (a Action) String() string { return a.Op + " " + a.Path }

// Writer creates catalog directories and manifests.
// The zero value is not usable; use NewWriter.
type Writer struct {
	dryRun  bool
	actions []Action
}

// NewWriter creates a catalog writer. With dryRun set, all operations
// record their intended actions without touching the filesystem.
func NewWriter(dryRun bool) *Writer {
	return &Writer{dryRun: dryRun}
}

// DryRun reports whether the writer is in dry-run mode.
func (w *Writer) DryRun() bool { return w.dryRun }

// Actions returns the mutations recorded so far, in execution order.
func (w *Writer) Actions() []Action { return w.actions }

// ImageSetName returns the deterministic imageset directory name for a
// request: `<name>.<size>.<style>.imageset`.
func ImageSetName(req config.Request) string {
	return req.Key() + ".imageset"
}

// VariantFilename returns the raster filename for a request at a scale:
// `<name>.<size>.<style>[@Nx].png`.
func VariantFilename(req config.Request, scale int) string {
	if scale == 1 {
		return req.Key() + ".png"
	}
	return fmt.Sprintf("%s@%dx.png", req.Key(), scale)
}

// EnsureRoot creates the catalog root directory and its top-level
// Contents.json if either is absent. Existing content is left alone.
func (w *Writer) EnsureRoot(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		w.record("mkdir", path)
		if !w.dryRun {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return errs.Wrap(errs.ErrCodeWrite, err, "create catalog root %s", path)
			}
		}
	}

	manifest := filepath.Join(path, "Contents.json")
	if _, err := os.Stat(manifest); os.IsNotExist(err) {
		w.record("write", manifest)
		if !w.dryRun {
			data, err := marshalContents(rootContents{Info: xcodeInfo})
			if err != nil {
				return errs.Wrap(errs.ErrCodeWrite, err, "encode root manifest")
			}
			if err := os.WriteFile(manifest, data, 0o644); err != nil {
				return errs.Wrap(errs.ErrCodeWrite, err, "write %s", manifest)
			}
		}
	}
	return nil
}

// WriteImageSet creates (or fully replaces) the imageset directory for req
// under root, writing each raster variant and the manifest enumerating
// them. Variants are written in ascending scale order.
func (w *Writer) WriteImageSet(root string, req config.Request, variants []Variant) error {
	if len(variants) != len(Scales) {
		return errs.New(errs.ErrCodeInternal, "imageset %s: expected %d variants, got %d", req.Key(), len(Scales), len(variants))
	}
	sort.Slice(variants, func(i, j int) bool { return variants[i].Scale < variants[j].Scale })

	dir := filepath.Join(root, ImageSetName(req))
	w.record("mkdir", dir)
	if !w.dryRun {
		// Fresh directory per run: removes stale variants from prior configs.
		if err := os.RemoveAll(dir); err != nil {
			return errs.Wrap(errs.ErrCodeWrite, err, "clear imageset %s", dir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.ErrCodeWrite, err, "create imageset %s", dir)
		}
	}

	entries := make([]imageEntry, 0, len(variants))
	for _, v := range variants {
		filename := VariantFilename(req, v.Scale)
		path := filepath.Join(dir, filename)
		w.record("write", path)
		if !w.dryRun {
			if err := os.WriteFile(path, v.Data, 0o644); err != nil {
				return errs.Wrap(errs.ErrCodeWrite, err, "write %s", path)
			}
		}
		entries = append(entries, imageEntry{
			Filename: filename,
			Idiom:    "universal",
			Scale:    fmt.Sprintf("%dx", v.Scale),
		})
	}

	manifest := filepath.Join(dir, "Contents.json")
	w.record("write", manifest)
	if !w.dryRun {
		data, err := marshalContents(imagesetContents{Images: entries, Info: xcodeInfo})
		if err != nil {
			return errs.Wrap(errs.ErrCodeWrite, err, "encode manifest for %s", req.Key())
		}
		if err := os.WriteFile(manifest, data, 0o644); err != nil {
			return errs.Wrap(errs.ErrCodeWrite, err, "write %s", manifest)
		}
	}
	return nil
}

// Prune removes imageset directories under root that are not named in
// expected, returning the directories removed. Icons dropped from a config
// disappear from the catalog on the next run.
func (w *Writer) Prune(root string, expected map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeWrite, err, "read catalog root %s", root)
	}

	var removed []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasSuffix(e.Name(), ".imageset") {
			continue
		}
		if expected[e.Name()] {
			continue
		}
		dir := filepath.Join(root, e.Name())
		w.record("prune", dir)
		if !w.dryRun {
			if err := os.RemoveAll(dir); err != nil {
				return removed, errs.Wrap(errs.ErrCodeWrite, err, "prune %s", dir)
			}
		}
		removed = append(removed, e.Name())
	}
	return removed, nil
}

func (w *Writer) record(op, path string) {
	w.actions = append(w.actions, Action{Op: op, Path: path})
}
