//go:build purego || js

package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	br "bayerrgb/pkg/bayerrgb"
)

// loadRawImage decodes a mosaic frame stored as PNG or JPEG with the
// standard library and scales it to [0, 1]. Color inputs collapse to
// luminance, which matches the sample value for grayscale mosaics.
func loadRawImage(path string) (*br.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	grid := br.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
			grid.Pix[y*w+x] = float64(gray) / 65535.0
		}
	}
	return grid, nil
}
