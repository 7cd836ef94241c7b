package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// Output is lossless and keeps the alpha channel, and identical input
// always yields identical bytes.
type PNGEncoder struct {
	// Level defaults to png.BestCompression when zero.
	Level png.CompressionLevel
}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	level := e.Level
	if level == png.DefaultCompression {
		level = png.BestCompression
	}

	var buf bytes.Buffer
	buf.Grow(64 * 1024) // icon tiers stay well under this

	enc := &png.Encoder{CompressionLevel: level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePNG reads a PNG image from r. Other formats are rejected even if
// a decoder for them is registered.
func DecodePNG(r io.Reader) (image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}

// DecodePNGFile opens path and decodes it with DecodePNG.
func DecodePNGFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePNG(f)
}
