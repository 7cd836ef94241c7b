//go:build ignore

// gen_fixtures creates a small input folder for a manual smoke run.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "ignored"), 0o755)

	// Opaque square art, the common case.
	writeImage(filepath.Join(dir, "sword.png"), gradient(512, 512))

	// Non-square art with a transparent background.
	writeImage(filepath.Join(dir, "Shield.PNG"), alphaDisc(600, 400))

	// Not a PNG despite the name: fails every tier, others still succeed.
	os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644)

	// Ignored: wrong extension, and inside a subfolder.
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)
	writeImage(filepath.Join(dir, "ignored", "nested.png"), gradient(64, 64))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaDisc(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy, r := w/2, h/2, h/2-10
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: 255})
			}
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}
