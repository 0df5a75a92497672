package bayerrgb

import (
	"bufio"
	"fmt"
	"os"
)

// WritePPM16 writes the image as 16-bit ASCII PPM (P3), mapping channel
// values from [0, 1] to [0, 65535] with clamping.
func WritePPM16(img *Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create PPM file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P3\n%d %d\n65535\n", img.Width, img.Height)
	for i := 0; i < len(img.Pix); i += 3 {
		fmt.Fprintf(w, "%d %d %d\n",
			ppmSample(img.Pix[i+ChannelRed]),
			ppmSample(img.Pix[i+ChannelGreen]),
			ppmSample(img.Pix[i+ChannelBlue]))
	}
	return w.Flush()
}

func ppmSample(v float64) uint16 {
	return uint16(clampFloat64(v, 0, 1)*65535 + 0.5)
}
