//go:build !purego && !js

package main

import (
	"fmt"

	"gocv.io/x/gocv"

	br "bayerrgb/pkg/bayerrgb"
)

// loadRawImage reads a mosaic frame stored in any OpenCV-readable
// single-channel format (PGM, PNG, TIFF, ...) and scales it to [0, 1].
func loadRawImage(path string) (*br.Grid, error) {
	src := gocv.IMRead(path, gocv.IMReadGrayScale|gocv.IMReadAnyDepth)
	if src.Empty() {
		return nil, fmt.Errorf("could not load image: %s", path)
	}
	defer src.Close()

	maxVal := 255.0
	if src.Type() == gocv.MatTypeCV16U {
		maxVal = 65535.0
	}

	floatMat := gocv.NewMat()
	defer floatMat.Close()
	src.ConvertTo(&floatMat, gocv.MatTypeCV32F)

	data, err := floatMat.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("reading pixel data: %w", err)
	}

	w, h := src.Cols(), src.Rows()
	grid := br.NewGrid(w, h)
	for i := 0; i < w*h; i++ {
		grid.Pix[i] = float64(data[i]) / maxVal
	}
	return grid, nil
}
