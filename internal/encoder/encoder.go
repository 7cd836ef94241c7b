package encoder

import (
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png").
	Format() string

	// Encode converts the image to bytes.
	Encode(img image.Image) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}

// Default returns the encoder every tier is written with.
func Default() Encoder {
	return &PNGEncoder{}
}
