// Package render turns organisms into pixel buffers and image files.
package render

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/pthm-cable/genart/organism"
)

// parallelThreshold is the minimum pixel count to render in parallel.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 4096

// Renderer evaluates organisms over a pixel grid. Pixel (x, y) is evaluated
// with arguments {x, y}; further parameters read 0.
type Renderer struct {
	workers int
	params  int
}

// New creates a renderer using the given number of workers (GOMAXPROCS
// when workers <= 0) and pixel argument count.
func New(workers, params int) *Renderer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if params < 0 {
		params = 0
	}
	return &Renderer{workers: workers, params: params}
}

// Workers returns the number of render workers.
func (r *Renderer) Workers() int { return r.workers }

// Render draws o into a new width x height image.
func (r *Renderer) Render(o *organism.Organism, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.RenderInto(o, img)
	return img
}

// RenderInto draws o over every pixel of img.
func (r *Renderer) RenderInto(o *organism.Organism, img *image.NRGBA) {
	b := img.Bounds()
	rows := b.Dy()
	if rows <= 0 || b.Dx() <= 0 {
		return
	}

	if rows*b.Dx() < parallelThreshold || r.workers == 1 {
		r.renderRows(o, img, 0, rows)
		return
	}

	chunkSize := (rows + r.workers - 1) / r.workers

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > rows {
			end = rows
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			r.renderRows(o, img, start, end)
		}(start, end)
	}
	wg.Wait()
}

// renderRows fills rows [y0, y1) relative to the image origin.
func (r *Renderer) renderRows(o *organism.Organism, img *image.NRGBA, y0, y1 int) {
	b := img.Bounds()
	args := make([]float64, r.params)

	for y := y0; y < y1; y++ {
		for x := 0; x < b.Dx(); x++ {
			if r.params > 0 {
				args[0] = float64(x)
			}
			if r.params > 1 {
				args[1] = float64(y)
			}
			c := o.EvaluatePixel(args)

			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
}

// Pixels copies img into a row-major colour slice, the layout raylib
// textures expect.
func Pixels(img *image.NRGBA) []color.RGBA {
	return PixelsInto(nil, img)
}

// PixelsInto is like Pixels but reuses dst when it is large enough.
func PixelsInto(dst []color.RGBA, img *image.NRGBA) []color.RGBA {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]

	k := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			dst[k] = color.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
			i += 4
			k++
		}
	}
	return dst
}

// Thumbnail scales img to the given width, keeping its aspect ratio.
func Thumbnail(img image.Image, width int) *image.NRGBA {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// Export saves img to path; the format follows the file extension.
func Export(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// ExportOptions controls ExportGeneration.
type ExportOptions struct {
	Width, Height  int
	ThumbnailWidth int // 0 disables thumbnails
}

// ExportGeneration renders every active child of a generation to
// gen<generation>_slot<i>.png in dir, plus a thumbnail when requested.
// It returns the written paths.
func (r *Renderer) ExportGeneration(children []*organism.Organism, generation int, dir string, opts ExportOptions) ([]string, error) {
	var paths []string
	for i, child := range children {
		if child == nil {
			continue
		}

		img := r.Render(child, opts.Width, opts.Height)
		path := filepath.Join(dir, fmt.Sprintf("gen%04d_slot%d.png", generation, i))
		if err := Export(img, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		if opts.ThumbnailWidth > 0 {
			thumb := filepath.Join(dir, fmt.Sprintf("gen%04d_slot%d_thumb.png", generation, i))
			if err := Export(Thumbnail(img, opts.ThumbnailWidth), thumb); err != nil {
				return paths, err
			}
			paths = append(paths, thumb)
		}
	}
	return paths, nil
}
