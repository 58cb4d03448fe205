// Package pkg provides the core libraries for phosphor-uikit asset
// generation.
//
// # Overview
//
// phosphor-uikit turns small JSON configuration files into Xcode asset
// catalogs. The pkg directory is organized along the pipeline stages:
//
//  1. [config] - Configuration parsing (JSON icon documents, TOML settings)
//  2. [icons] - Persistent SVG source cache (HTTP fetch on miss)
//  3. [raster] - SVG-to-PNG rasterizer backends (rsvg, inkscape, native)
//  4. [catalog] - Asset catalog writer (.xcassets directories + manifests)
//  5. [pipeline] - Orchestration (parse → resolve → rasterize → write)
//
// # Architecture
//
// The typical data flow through phosphor-uikit:
//
//	JSON configuration document
//	         ↓
//	    [config] package (parse groups into icon requests)
//	         ↓
//	    [icons] package (resolve SVGs: cache hit or HTTP fetch)
//	         ↓
//	    [raster] package (render PNG at 1x/2x/3x)
//	         ↓
//	    [catalog] package (write imagesets + Contents.json manifests)
//
// # Quick Start
//
// Generate a catalog for one configuration document:
//
//	import (
//	    "context"
//	    "github.com/pepaslabs/phosphor-uikit/pkg/icons"
//	    "github.com/pepaslabs/phosphor-uikit/pkg/pipeline"
//	    "github.com/pepaslabs/phosphor-uikit/pkg/raster"
//	)
//
//	store, _ := icons.NewStore("", config.DefaultBaseURL)
//	rz, _ := raster.New(raster.RendererNative)
//	runner := pipeline.NewRunner(store, rz, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    ConfigPath: "icons.json",
//	})
//
// # Supporting Packages
//
// [errors] - Structured errors with machine-readable codes shared by every
// stage (CONFIG_ERROR, FETCH_ERROR, RASTER_ERROR, WRITE_ERROR).
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// [config]: https://pkg.go.dev/github.com/pepaslabs/phosphor-uikit/pkg/config
// [icons]: https://pkg.go.dev/github.com/pepaslabs/phosphor-uikit/pkg/icons
// [raster]: https://pkg.go.dev/github.com/pepaslabs/phosphor-uikit/pkg/raster
// [catalog]: https://pkg.go.dev/github.com/pepaslabs/phosphor-uikit/pkg/catalog
// [pipeline]: https://pkg.go.dev/github.com/pepaslabs/phosphor-uikit/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/pepaslabs/phosphor-uikit/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/pepaslabs/phosphor-uikit/pkg/buildinfo
package pkg
