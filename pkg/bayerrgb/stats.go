package bayerrgb

import (
	"fmt"
	"math"
)

// ChannelStatistics summarizes one channel of a demosaiced image.
type ChannelStatistics struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func (s ChannelStatistics) String() string {
	return fmt.Sprintf("mean=%.4f stddev=%.4f min=%.4f max=%.4f", s.Mean, s.StdDev, s.Min, s.Max)
}

// ChannelStats computes mean, standard deviation, minimum, and maximum
// of one channel.
func ChannelStats(img *Image, channel int) ChannelStatistics {
	n := img.Width * img.Height
	if n == 0 {
		return ChannelStatistics{}
	}
	stats := ChannelStatistics{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for i := 0; i < n; i++ {
		v := img.Pix[i*3+channel]
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(n)
	var sse float64
	for i := 0; i < n; i++ {
		d := img.Pix[i*3+channel] - stats.Mean
		sse += d * d
	}
	stats.StdDev = math.Sqrt(sse / float64(n))
	return stats
}

// Luminance collapses a demosaiced image to a mono plane, (R+G+B)/3 per
// pixel.
func Luminance(img *Image) []float64 {
	out := make([]float64, img.Width*img.Height)
	for i := range out {
		base := i * 3
		out[i] = (img.Pix[base] + img.Pix[base+1] + img.Pix[base+2]) / 3
	}
	return out
}
