// Package bayerrgb reconstructs dense RGB images from single-channel
// Bayer mosaic frames by bilinear interpolation.
package bayerrgb

import "fmt"

// Demosaic interpolates the two missing channels at every pixel of a
// Bayer frame and returns the dense RGB result. The frame must have
// even width and height, both at least 2; violations return
// ErrInvalidDimensions and an unknown tiling returns
// ErrUnsupportedPattern, with no partial output in either case.
//
// Red and blue are filled in two separable stages: native rows first
// (direct copy plus horizontal two-neighbor averages), then the
// remaining rows as vertical averages of the already-derived values
// above and below. Green copies its native diagonal and takes the
// four-neighbor average elsewhere. Border sites that lack a stencil
// neighbor use the mirrored or replicated forms implemented in the
// border helpers below. The function is pure: same frame and tiling in,
// bit-identical image out.
func Demosaic(raw *Grid, pattern Pattern) (*Image, error) {
	if !pattern.valid() {
		return nil, fmt.Errorf("%w: selector %d", ErrUnsupportedPattern, int(pattern))
	}
	if err := raw.checkDimensions(); err != nil {
		return nil, err
	}

	out := newPlaceholderImage(raw.Width, raw.Height)
	redRow, redCol := pattern.redOffsets()
	blueRow, blueCol := pattern.blueOffsets()

	primaryHorizontal(out, raw, ChannelRed, redRow, redCol, 0, raw.Height)
	primaryHorizontal(out, raw, ChannelBlue, blueRow, blueCol, 0, raw.Height)

	// The vertical stage reads the horizontal stage's rows, never raw.
	primaryVertical(out, ChannelRed, redRow, 0, raw.Height)
	primaryVertical(out, ChannelBlue, blueRow, 0, raw.Height)

	greenInterior(out, raw, pattern.greenParity(), 1, raw.Height-1)
	greenBorder(out, raw, pattern.greenParity())

	return out, nil
}

// primaryHorizontal handles rows where the primary channel ch is
// native: native columns copy the raw sample, the others average their
// two horizontal raw neighbors. The edge column missing a neighbor
// replicates the single in-bounds one.
func primaryHorizontal(out *Image, raw *Grid, ch, rowPar, colPar, rowStart, rowEnd int) {
	w := raw.Width
	for r := rowStart; r < rowEnd; r++ {
		if r%2 != rowPar {
			continue
		}
		rowOff := r * w
		for c := colPar; c < w; c += 2 {
			out.Pix[(rowOff+c)*3+ch] = raw.Pix[rowOff+c]
		}
		if colPar == 0 {
			for c := 1; c < w-1; c += 2 {
				out.Pix[(rowOff+c)*3+ch] = (out.Pix[(rowOff+c-1)*3+ch] + out.Pix[(rowOff+c+1)*3+ch]) / 2
			}
			out.Pix[(rowOff+w-1)*3+ch] = out.Pix[(rowOff+w-2)*3+ch]
		} else {
			out.Pix[rowOff*3+ch] = out.Pix[(rowOff+1)*3+ch]
			for c := 2; c < w; c += 2 {
				out.Pix[(rowOff+c)*3+ch] = (out.Pix[(rowOff+c-1)*3+ch] + out.Pix[(rowOff+c+1)*3+ch]) / 2
			}
		}
	}
}

// primaryVertical fills the rows where ch is not native by averaging
// the values the horizontal stage derived on the rows above and below.
// The boundary row with only one derived neighbor row copies it.
func primaryVertical(out *Image, ch, rowPar, rowStart, rowEnd int) {
	w, h := out.Width, out.Height
	for r := rowStart; r < rowEnd; r++ {
		if r%2 == rowPar {
			continue
		}
		rowOff := r * w
		switch r {
		case 0:
			for c := 0; c < w; c++ {
				out.Pix[(rowOff+c)*3+ch] = out.Pix[(rowOff+w+c)*3+ch]
			}
		case h - 1:
			for c := 0; c < w; c++ {
				out.Pix[(rowOff+c)*3+ch] = out.Pix[(rowOff-w+c)*3+ch]
			}
		default:
			up, down := rowOff-w, rowOff+w
			for c := 0; c < w; c++ {
				out.Pix[(rowOff+c)*3+ch] = (out.Pix[(up+c)*3+ch] + out.Pix[(down+c)*3+ch]) / 2
			}
		}
	}
}

// greenInterior fills green for rows in [rowStart, rowEnd), which must
// lie within [1, height-1): native sites copy raw, the rest take the
// four-neighbor raw average. Edge columns fold the missing horizontal
// neighbor onto the available one.
func greenInterior(out *Image, raw *Grid, greenPar, rowStart, rowEnd int) {
	w := raw.Width
	for r := rowStart; r < rowEnd; r++ {
		rowOff := r * w
		for c := 0; c < w; c++ {
			idx := rowOff + c
			if (r+c)%2 == greenPar {
				out.Pix[idx*3+ChannelGreen] = raw.Pix[idx]
				continue
			}
			v := (raw.Pix[idx-w] + raw.Pix[idx+w]) / 4
			switch c {
			case 0:
				v += raw.Pix[idx+1] / 2
			case w - 1:
				v += raw.Pix[idx-1] / 2
			default:
				v += (raw.Pix[idx-1] + raw.Pix[idx+1]) / 4
			}
			out.Pix[idx*3+ChannelGreen] = v
		}
	}
}

// greenBorder fixes up the first and last rows and columns, where the
// interior stencil would read off-grid.
func greenBorder(out *Image, raw *Grid, greenPar int) {
	w, h := raw.Width, raw.Height
	for _, r := range [2]int{0, h - 1} {
		for c := 0; c < w; c++ {
			out.Set(r, c, ChannelGreen, greenAt(raw, greenPar, r, c))
		}
	}
	for r := 1; r < h-1; r++ {
		for _, c := range [2]int{0, w - 1} {
			out.Set(r, c, ChannelGreen, greenAt(raw, greenPar, r, c))
		}
	}
}

// greenAt derives green at a single site, mirroring any stencil
// neighbor that falls outside the grid onto its in-bounds counterpart.
// Corners degenerate to the average of the two adjacent raw samples.
func greenAt(raw *Grid, greenPar, r, c int) float64 {
	if (r+c)%2 == greenPar {
		return raw.At(r, c)
	}
	w, h := raw.Width, raw.Height
	var v float64
	switch c {
	case 0:
		v = raw.At(r, 1) / 2
	case w - 1:
		v = raw.At(r, w-2) / 2
	default:
		v = (raw.At(r, c-1) + raw.At(r, c+1)) / 4
	}
	switch r {
	case 0:
		v += raw.At(1, c) / 2
	case h - 1:
		v += raw.At(h-2, c) / 2
	default:
		v += (raw.At(r-1, c) + raw.At(r+1, c)) / 4
	}
	return v
}
