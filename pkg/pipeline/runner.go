package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pepaslabs/phosphor-uikit/pkg/catalog"
	"github.com/pepaslabs/phosphor-uikit/pkg/config"
	"github.com/pepaslabs/phosphor-uikit/pkg/icons"
	"github.com/pepaslabs/phosphor-uikit/pkg/raster"
)

// Runner executes the generation pipeline for configuration documents.
//
// The Runner is stateless apart from its collaborators; the same Runner can
// process any number of documents sequentially. The icon store persists
// across documents, so an icon shared by several configs is fetched once.
type Runner struct {
	Store      *icons.Store
	Rasterizer raster.Rasterizer
	Logger     *log.Logger
}

// NewRunner creates a runner with the given collaborators.
// If logger is nil, log.Default() is used.
func NewRunner(store *icons.Store, r raster.Rasterizer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: store, Rasterizer: r, Logger: logger}
}

// pairKey identifies a distinct (name, style) source icon.
type pairKey struct {
	name  string
	style config.Style
}

// Execute runs the full pipeline for one document.
//
// On failure the returned Result is still populated with whatever progress
// was made and its Stage is StageFailed. The error carries document, group,
// and icon context.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.setDefaults()
	logger := opts.Logger

	result := &Result{Stage: StageParsing}

	// Stage 1: Parsing
	parseStart := time.Now()
	doc, err := config.Load(opts.ConfigPath)
	if err != nil {
		result.Stage = StageFailed
		return result, err
	}
	result.Document = doc
	result.CatalogPath = doc.CatalogPath()
	result.Stats.Requests = doc.RequestCount()
	result.Stats.ParseTime = time.Since(parseStart)

	logger.Info("parsed config",
		"document", doc.Path,
		"groups", len(doc.Groups),
		"requests", result.Stats.Requests)

	// Stage 2: Resolving. Each distinct (name, style) pair resolves once;
	// duplicate requests across groups share the cached file.
	result.Stage = StageResolving
	resolveStart := time.Now()
	paths, err := r.resolveAll(ctx, doc, opts, result)
	if err != nil {
		result.Stage = StageFailed
		return result, err
	}
	result.Stats.ResolveTime = time.Since(resolveStart)

	logger.Info("resolved icons",
		"fetched", result.Stats.Fetches,
		"cached", result.Stats.CacheHits,
		"duration", result.Stats.ResolveTime.Round(time.Millisecond))

	// Stage 3: Rasterizing
	result.Stage = StageRasterizing
	rasterStart := time.Now()
	variants, err := r.rasterizeAll(ctx, doc, opts, paths)
	if err != nil {
		result.Stage = StageFailed
		return result, err
	}
	result.Stats.RasterTime = time.Since(rasterStart)

	if !opts.DryRun {
		logger.Info("rasterized variants",
			"imagesets", len(variants),
			"renderer", r.Rasterizer.Name(),
			"duration", result.Stats.RasterTime.Round(time.Millisecond))
	}

	// Stage 4: Writing
	result.Stage = StageWriting
	writeStart := time.Now()
	writer := catalog.NewWriter(opts.DryRun)
	if err := r.writeAll(doc, writer, variants, result); err != nil {
		result.Stage = StageFailed
		result.Actions = writer.Actions()
		return result, err
	}
	result.Stats.WriteTime = time.Since(writeStart)
	result.Actions = writer.Actions()

	logger.Info("wrote catalog",
		"catalog", result.CatalogPath,
		"imagesets", result.Stats.ImageSets,
		"pruned", result.Stats.Pruned,
		"duration", result.Stats.WriteTime.Round(time.Millisecond))

	result.Stage = StageDone
	return result, nil
}

// resolveAll resolves every distinct (name, style) pair in document order.
// In dry-run mode no network call is made; cache state alone determines
// whether a fetch would happen.
func (r *Runner) resolveAll(ctx context.Context, doc *config.Document, opts Options, result *Result) (map[pairKey]string, error) {
	logger := opts.Logger
	paths := make(map[pairKey]string)

	for _, group := range doc.Groups {
		for _, req := range group.Requests {
			key := pairKey{req.Name, req.Style}
			if _, done := paths[key]; done {
				continue
			}

			cached := !opts.Refresh && r.Store.Cached(req.Name, req.Style)
			if cached {
				result.Stats.CacheHits++
			} else {
				result.Stats.Fetches++
			}

			if opts.DryRun {
				if cached {
					logger.Debug("icon cached", "group", group.Label, "icon", req.Name, "style", req.Style)
				} else {
					logger.Info("would fetch icon", "group", group.Label, "icon", req.Name, "style", req.Style)
				}
				paths[key] = r.Store.Path(req.Name, req.Style)
				continue
			}

			if !cached {
				logger.Info("fetching icon", "group", group.Label, "icon", req.Name, "style", req.Style)
			}
			path, err := r.Store.Resolve(ctx, req.Name, req.Style, opts.Refresh)
			if err != nil {
				return nil, wrapContext(err, doc, group, req)
			}
			paths[key] = path
		}
	}
	return paths, nil
}

// rasterizeAll produces the three scale variants for every request, in
// document order. Dry-run produces placeholder variants so the writing
// stage can report the same actions the mutating path would take.
func (r *Runner) rasterizeAll(ctx context.Context, doc *config.Document, opts Options, paths map[pairKey]string) (map[string][]catalog.Variant, error) {
	logger := opts.Logger
	variants := make(map[string][]catalog.Variant)

	for _, group := range doc.Groups {
		for _, req := range group.Requests {
			if _, done := variants[req.Key()]; done {
				continue
			}

			set := make([]catalog.Variant, 0, len(catalog.Scales))
			for _, scale := range catalog.Scales {
				if opts.DryRun {
					set = append(set, catalog.Variant{Scale: scale})
					continue
				}

				px := req.Size * scale
				logger.Debug("rasterizing",
					"icon", req.Name, "style", req.Style, "scale", scale, "px", px)

				data, err := r.Rasterizer.Rasterize(ctx, paths[pairKey{req.Name, req.Style}], px)
				if err != nil {
					return nil, wrapContext(err, doc, group, req)
				}
				set = append(set, catalog.Variant{Scale: scale, Data: data})
			}
			variants[req.Key()] = set
		}
	}
	return variants, nil
}

// writeAll materializes the catalog: root, one imageset per request, and a
// prune pass removing imagesets no longer named by the config.
func (r *Runner) writeAll(doc *config.Document, writer *catalog.Writer, variants map[string][]catalog.Variant, result *Result) error {
	if err := writer.EnsureRoot(result.CatalogPath); err != nil {
		return fmt.Errorf("%s: catalog root: %w", doc.Path, err)
	}

	expected := make(map[string]bool)
	for _, group := range doc.Groups {
		for _, req := range group.Requests {
			name := catalog.ImageSetName(req)
			if expected[name] {
				continue
			}
			expected[name] = true

			if err := writer.WriteImageSet(result.CatalogPath, req, variants[req.Key()]); err != nil {
				return wrapContext(err, doc, group, req)
			}
			result.Stats.ImageSets++
		}
	}

	pruned, err := writer.Prune(result.CatalogPath, expected)
	if err != nil {
		return fmt.Errorf("%s: prune: %w", doc.Path, err)
	}
	result.Stats.Pruned = len(pruned)
	return nil
}

// wrapContext annotates a stage error with document, group, and icon
// context. The underlying error code stays visible through the chain for
// errors.Is / errs.GetCode.
func wrapContext(err error, doc *config.Document, group config.Group, req config.Request) error {
	return fmt.Errorf("%s: group %q: icon %s (size %d, style %s): %w",
		doc.Path, group.Label, req.Name, req.Size, req.Style, err)
}
