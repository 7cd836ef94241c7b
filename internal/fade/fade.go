// Package fade applies the vertical alpha falloff used by the large icon
// tier: fully opaque near the top, then an accelerating fade to
// transparent towards the bottom.
package fade

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Spec holds the constants of the fade curve. Fractions are relative to
// the image height.
type Spec struct {
	StartFraction float64 // rows at or above floor(H*StartFraction) are untouched
	RangeFraction float64 // the curve reaches factor 1 after H*RangeFraction rows
	Exponent      float64
}

// Default is the curve applied to the 380x380 tier.
var Default = Spec{
	StartFraction: 0.1,
	RangeFraction: 0.8,
	Exponent:      2.5,
}

// Start returns the last untouched row for an image of height h.
func (s Spec) Start(h int) int {
	return int(math.Floor(float64(h) * s.StartFraction))
}

// Factor returns the fraction of alpha removed at row y of an image of
// height h, in [0, 1]. The power is taken before clamping, so t > 1 just
// saturates at 1.
func (s Spec) Factor(y, h int) float64 {
	start := s.Start(h)
	if y <= start {
		return 0
	}
	t := float64(y-start) / (float64(h) * s.RangeFraction)
	return math.Min(math.Pow(t, s.Exponent), 1)
}

// Alpha returns the faded value of alpha a at row y of an image of height h.
func (s Spec) Alpha(a uint8, y, h int) uint8 {
	f := s.Factor(y, h)
	if f == 0 {
		return a
	}
	return uint8(math.Round(float64(a) * (1 - f)))
}

// Apply returns a faded copy of img. Images without an alpha channel are
// converted to opaque NRGBA first. img itself is never modified.
func (s Spec) Apply(img image.Image) *image.NRGBA {
	out := ToNRGBA(img)
	s.ApplyInPlace(out)
	return out
}

// ApplyInPlace rewrites the alpha channel of img row by row. RGB values
// are left as they are. Coordinates are relative to img.Bounds().Min.
func (s Spec) ApplyInPlace(img *image.NRGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		f := s.Factor(y, h)
		if f == 0 {
			continue
		}
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		row := img.Pix[off : off+w*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = uint8(math.Round(float64(row[i]) * (1 - f)))
		}
	}
}

// Apply fades img with the Default curve.
func Apply(img image.Image) *image.NRGBA {
	return Default.Apply(img)
}

// ToNRGBA copies img into a new non-premultiplied RGBA image whose bounds
// start at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
