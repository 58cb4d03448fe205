// Package raster converts cached SVG files into PNG bytes at exact pixel
// dimensions.
//
// Three backends are provided: rsvg and inkscape shell out to the
// corresponding binaries, while native renders in-process with oksvg.
// All backends satisfy Rasterizer so the pipeline (and tests) can swap
// implementations freely.
package raster

import (
	"context"

	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

// Rasterizer converts a vector file into raster bytes at a pixel dimension.
type Rasterizer interface {
	// Name identifies the backend in logs and error messages.
	Name() string

	// Rasterize renders the SVG at svgPath as a pixelSize x pixelSize PNG.
	Rasterize(ctx context.Context, svgPath string, pixelSize int) ([]byte, error)
}

// Backend names accepted by New.
const (
	RendererRSVG     = "rsvg"
	RendererInkscape = "inkscape"
	RendererNative   = "native"
)

// Renderers lists the valid backend names for usage messages.
var Renderers = []string{RendererRSVG, RendererInkscape, RendererNative}

// New returns the rasterizer backend for the given name.
// Exec-based backends verify their binary is on PATH up front so a missing
// tool is reported before any fetching starts.
func New(name string) (Rasterizer, error) {
	switch name {
	case RendererRSVG:
		return newRSVG()
	case RendererInkscape:
		return newInkscape()
	case RendererNative:
		return &Native{}, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidRenderer, "unknown renderer %q (valid: rsvg, inkscape, native)", name)
	}
}
