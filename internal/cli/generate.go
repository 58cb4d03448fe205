package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pepaslabs/phosphor-uikit/pkg/config"
	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
	"github.com/pepaslabs/phosphor-uikit/pkg/icons"
	"github.com/pepaslabs/phosphor-uikit/pkg/pipeline"
	"github.com/pepaslabs/phosphor-uikit/pkg/raster"
)

// generateOpts holds the command-line flags for the root command.
// Empty string fields fall back to the user settings file, then defaults.
type generateOpts struct {
	dryRun   bool   // report actions without fetching or writing
	refresh  bool   // bypass the icon cache
	renderer string // rasterizer backend override
	cacheDir string // icon cache root override
	baseURL  string // icon source base URL override
}

// loadSettings merges the user settings file with flag overrides.
// A missing settings file yields defaults; a malformed one is an error.
func (o *generateOpts) loadSettings() (*config.Settings, error) {
	path, err := config.DefaultSettingsPath()
	if err != nil {
		// No resolvable home directory; run on defaults.
		path = ""
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if o.renderer != "" {
		settings.Renderer = o.renderer
	}
	if o.cacheDir != "" {
		settings.CacheDir = o.cacheDir
	}
	if o.baseURL != "" {
		settings.BaseURL = o.baseURL
	}
	if err := errs.ValidateBaseURL(settings.BaseURL); err != nil {
		return nil, err
	}
	return settings, nil
}

// runGenerate processes each configuration document in order.
//
// Policy: a failed document does not stop the invocation; remaining
// documents still run, and the command returns an error (non-zero exit) if
// any document failed. Interruption via ctx aborts everything.
func runGenerate(ctx context.Context, opts *generateOpts, configs []string) error {
	logger := loggerFromContext(ctx)

	settings, err := opts.loadSettings()
	if err != nil {
		return err
	}

	store, err := icons.NewStore(settings.CacheDir, settings.BaseURL)
	if err != nil {
		return fmt.Errorf("icon cache: %w", err)
	}

	// Dry-run never rasterizes, so a missing converter binary should not
	// block it.
	var rz raster.Rasterizer
	if !opts.dryRun {
		rz, err = raster.New(settings.Renderer)
		if err != nil {
			return err
		}
	}

	runner := pipeline.NewRunner(store, rz, logger)

	failed := 0
	for _, cfg := range configs {
		if opts.dryRun {
			printInfo("Dry run: %s", StyleHighlight.Render(cfg))
		} else {
			printInfo("Processing %s", StyleHighlight.Render(cfg))
		}

		prog := newProgress(logger)
		var spinner *Spinner
		if !opts.dryRun {
			spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", cfg))
			spinner.Start()
		}
		result, err := runner.Execute(ctx, pipeline.Options{
			ConfigPath: cfg,
			DryRun:     opts.dryRun,
			Refresh:    opts.refresh,
			Logger:     logger,
		})
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failed++
			printError("%s failed: %s", cfg, errs.UserMessage(err))
			continue
		}

		reportResult(prog, opts.dryRun, result)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed", failed, len(configs))
	}
	return nil
}

// reportResult prints the per-document summary. Dry-run lists every
// intended filesystem action in execution order.
func reportResult(prog *progress, dryRun bool, result *pipeline.Result) {
	stats := result.Stats

	if dryRun {
		for _, action := range result.Actions {
			printDetail("would %s", action)
		}
		printSuccess("Would write %d imageset(s) to %s (%d fetch(es) needed, %d cached)",
			stats.ImageSets, result.CatalogPath, stats.Fetches, stats.CacheHits)
		return
	}

	prog.done(fmt.Sprintf("Generated %d imageset(s)", stats.ImageSets))
	printSuccess("%d imageset(s), %d fetched, %d cached, %d pruned",
		stats.ImageSets, stats.Fetches, stats.CacheHits, stats.Pruned)
	printFile(result.CatalogPath)
}
