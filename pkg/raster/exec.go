package raster

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

// Exec rasterizes by invoking an external converter binary and capturing
// the PNG it writes to stdout.
type Exec struct {
	name string // backend name for logs
	bin  string // resolved binary path
	args func(svgPath string, px int) []string
}

func newRSVG() (*Exec, error) {
	bin, err := exec.LookPath("rsvg-convert")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRaster, err, "rsvg-convert not found on PATH")
	}
	return &Exec{
		name: RendererRSVG,
		bin:  bin,
		args: func(svgPath string, px int) []string {
			return []string{"-w", strconv.Itoa(px), "-h", strconv.Itoa(px), svgPath}
		},
	}, nil
}

func newInkscape() (*Exec, error) {
	bin, err := exec.LookPath("inkscape")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRaster, err, "inkscape not found on PATH")
	}
	return &Exec{
		name: RendererInkscape,
		bin:  bin,
		args: func(svgPath string, px int) []string {
			return []string{
				"--export-type=png",
				"--export-filename=-",
				"-w", strconv.Itoa(px),
				"-h", strconv.Itoa(px),
				svgPath,
			}
		},
	}, nil
}

// Name returns the backend name.
func (e *Exec) Name() string { return e.name }

// Rasterize runs the converter and returns its stdout.
// A non-zero exit is a RASTER_ERROR carrying the converter's stderr.
func (e *Exec) Rasterize(ctx context.Context, svgPath string, pixelSize int) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, e.bin, e.args(svgPath, pixelSize)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return nil, errs.Wrap(errs.ErrCodeRaster, err, "%s failed for %s at %dpx", e.name, svgPath, pixelSize)
	}
	if stdout.Len() == 0 {
		return nil, errs.New(errs.ErrCodeRaster, "%s produced no output for %s at %dpx", e.name, svgPath, pixelSize)
	}
	return stdout.Bytes(), nil
}
