package bayerrgb

// 3x3 bilinear kernels, pre-divided. Green's native diagonal leaves
// only the axis neighbors; red and blue also draw on the diagonals.
var (
	greenKernel = [3][3]float64{
		{0, 0.25, 0},
		{0.25, 1, 0.25},
		{0, 0.25, 0},
	}
	primaryKernel = [3][3]float64{
		{0.25, 0.5, 0.25},
		{0.5, 1, 0.5},
		{0.25, 0.5, 0.25},
	}
)

// demosaicConvolve is the direct convolution form of the kernel: each
// channel's native samples are scattered into a zero-filled plane and
// blurred with its 3x3 kernel under mirrored borders. Much slower than
// the separable passes and not part of the public API; the tests use it
// as an independent check of interior agreement.
func demosaicConvolve(raw *Grid, pattern Pattern) *Image {
	w, h := raw.Width, raw.Height
	out := newPlaceholderImage(w, h)
	plane := make([]float64, w*h)

	for ch := ChannelRed; ch <= ChannelBlue; ch++ {
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				if pattern.ChannelAt(r, c) == ch {
					plane[r*w+c] = raw.Pix[r*w+c]
				} else {
					plane[r*w+c] = 0
				}
			}
		}

		kernel := &primaryKernel
		if ch == ChannelGreen {
			kernel = &greenKernel
		}
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				var sum float64
				for dr := -1; dr <= 1; dr++ {
					rr := reflectIndex(r+dr, h)
					for dc := -1; dc <= 1; dc++ {
						cc := reflectIndex(c+dc, w)
						sum += plane[rr*w+cc] * kernel[dr+1][dc+1]
					}
				}
				out.Pix[(r*w+c)*3+ch] = sum
			}
		}
	}
	return out
}

// reflectIndex mirrors an out-of-range index back into [0, size).
func reflectIndex(idx, size int) int {
	if idx < 0 {
		idx = -idx
	}
	for idx >= size {
		idx = 2*size - 2 - idx
		if idx < 0 {
			idx = -idx
		}
	}
	return idx
}
