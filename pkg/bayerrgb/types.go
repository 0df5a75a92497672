package bayerrgb

import (
	"errors"
	"fmt"
)

// Channel indices into an Image's interleaved pixel data.
const (
	ChannelRed   = 0
	ChannelGreen = 1
	ChannelBlue  = 2
)

// placeholderValue pre-fills output images so a cell the passes somehow
// skipped would be visibly non-zero. A correct pass sequence overwrites
// every cell.
const placeholderValue = 1.0

var (
	// ErrInvalidDimensions reports a raw frame whose height or width is
	// odd, smaller than 2, or inconsistent with its backing slice.
	ErrInvalidDimensions = errors.New("invalid raw frame dimensions")

	// ErrUnsupportedPattern reports a selector naming a tiling this
	// package does not implement.
	ErrUnsupportedPattern = errors.New("unsupported bayer pattern")
)

// Grid is a single-channel raw sensor frame, row-major.
type Grid struct {
	Pix    []float64
	Width  int
	Height int
}

// NewGrid allocates a zeroed width x height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Pix:    make([]float64, width*height),
		Width:  width,
		Height: height,
	}
}

// GridFromUint16 converts raw sensor counts to a grid scaled to [0, 1).
func GridFromUint16(pixels []uint16, bitDepth, width, height int) *Grid {
	g := NewGrid(width, height)
	scale := float64(uint64(1) << uint(bitDepth))
	for i, p := range pixels {
		g.Pix[i] = float64(p) / scale
	}
	return g
}

// At returns the sample at (row, col).
func (g *Grid) At(row, col int) float64 { return g.Pix[row*g.Width+col] }

// Set stores a sample at (row, col).
func (g *Grid) Set(row, col int, v float64) { g.Pix[row*g.Width+col] = v }

func (g *Grid) checkDimensions() error {
	if g == nil || g.Width < 2 || g.Height < 2 {
		return fmt.Errorf("%w: frame must be at least 2x2", ErrInvalidDimensions)
	}
	if g.Width%2 != 0 || g.Height%2 != 0 {
		return fmt.Errorf("%w: %dx%d has an odd extent", ErrInvalidDimensions, g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: %d samples for a %dx%d frame", ErrInvalidDimensions, len(g.Pix), g.Width, g.Height)
	}
	return nil
}

// Image is a dense height x width x 3 color image, channel order R, G, B,
// stored interleaved in row-major order.
type Image struct {
	Pix    []float64
	Width  int
	Height int
}

func newPlaceholderImage(width, height int) *Image {
	img := &Image{
		Pix:    make([]float64, width*height*3),
		Width:  width,
		Height: height,
	}
	for i := range img.Pix {
		img.Pix[i] = placeholderValue
	}
	return img
}

// At returns the channel value at (row, col).
func (im *Image) At(row, col, channel int) float64 {
	return im.Pix[(row*im.Width+col)*3+channel]
}

// Set stores a channel value at (row, col).
func (im *Image) Set(row, col, channel int, v float64) {
	im.Pix[(row*im.Width+col)*3+channel] = v
}
