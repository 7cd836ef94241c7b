// Package resize scales source art down to icon tier dimensions.
package resize

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Resize scales img to exactly width x height using a Lanczos filter.
// The aspect ratio is not preserved. The result is always *image.NRGBA,
// so partial transparency in the source survives resampling.
func Resize(img image.Image, width, height int) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("nil source image")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("empty source image %dx%d", b.Dx(), b.Dy())
	}

	out := imaging.Resize(img, width, height, imaging.Lanczos)
	if out.Bounds().Dx() != width || out.Bounds().Dy() != height {
		return nil, fmt.Errorf("resampler produced %dx%d, want %dx%d",
			out.Bounds().Dx(), out.Bounds().Dy(), width, height)
	}
	return out, nil
}
