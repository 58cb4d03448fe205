package raster

import (
	"bytes"
	"context"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

// Native rasterizes SVGs in-process with oksvg and rasterx.
// It requires no external binaries, at the cost of supporting only the SVG
// subset oksvg understands (sufficient for Phosphor's path-based icons).
type Native struct{}

// Name returns the backend name.
func (n *Native) Name() string { return RendererNative }

// Rasterize renders the SVG onto a transparent RGBA canvas of
// pixelSize x pixelSize and encodes it as PNG.
func (n *Native) Rasterize(ctx context.Context, svgPath string, pixelSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(svgPath)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRaster, err, "open %s", svgPath)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRaster, err, "parse %s", svgPath)
	}

	icon.SetTarget(0, 0, float64(pixelSize), float64(pixelSize))
	img := image.NewRGBA(image.Rect(0, 0, pixelSize, pixelSize))

	scanner := rasterx.NewScannerGV(pixelSize, pixelSize, img, img.Bounds())
	dasher := rasterx.NewDasher(pixelSize, pixelSize, scanner)
	icon.Draw(dasher, 1)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRaster, err, "encode %s at %dpx", svgPath, pixelSize)
	}
	return buf.Bytes(), nil
}
