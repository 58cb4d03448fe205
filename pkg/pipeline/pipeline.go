// Package pipeline drives catalog generation for configuration documents.
//
// Each document moves through a fixed sequence of stages:
//
//	Parsing -> Resolving -> Rasterizing -> Writing -> Done
//
// with Failed reachable from any stage. Groups are processed in config
// order and icons in request order, so progress reporting is deterministic.
//
// Error policy (fixed): any failure aborts the whole document immediately;
// no further variants are rasterized or written for it. A partially built
// catalog may remain on disk and is overwritten by the next successful run.
// Sibling documents in the same invocation are unaffected.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, rasterizer, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{ConfigPath: "app.json"})
//	if err != nil {
//	    // result.Stage is StageFailed; the error names the offending icon
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pepaslabs/phosphor-uikit/pkg/catalog"
	"github.com/pepaslabs/phosphor-uikit/pkg/config"
)

// Stage identifies a pipeline state for one document.
type Stage string

// Pipeline states, in execution order.
const (
	StageParsing     Stage = "parsing"
	StageResolving   Stage = "resolving"
	StageRasterizing Stage = "rasterizing"
	StageWriting     Stage = "writing"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// Options configures one document run.
type Options struct {
	// ConfigPath is the JSON configuration document to process.
	ConfigPath string

	// DryRun reports intended actions without network calls or filesystem
	// mutation.
	DryRun bool

	// Refresh bypasses the icon cache and re-fetches every icon.
	Refresh bool

	// Logger receives progress messages. Defaults to a discarding logger.
	Logger *log.Logger
}

// setDefaults fills in zero-valued options.
func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Stats contains timing and volume information for one document run.
type Stats struct {
	Requests  int // icon requests parsed
	Fetches   int // network fetches performed (or planned, in dry-run)
	CacheHits int // requests served from the icon cache
	ImageSets int // imagesets written (or planned, in dry-run)
	Pruned    int // stale imageset directories removed

	ParseTime   time.Duration
	ResolveTime time.Duration
	RasterTime  time.Duration
	WriteTime   time.Duration
}

// Result contains the outputs of one document run.
type Result struct {
	// Document is the parsed configuration (nil if parsing failed).
	Document *config.Document

	// CatalogPath is the asset catalog root derived from the config path.
	CatalogPath string

	// Stage is the final pipeline state: StageDone on success, StageFailed
	// otherwise.
	Stage Stage

	// Actions are the filesystem mutations taken (or, in dry-run,
	// intended), in execution order.
	Actions []catalog.Action

	// Stats contains timing and volume information.
	Stats Stats
}
