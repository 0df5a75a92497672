package bayerrgb

import (
	"math/rand"
	"testing"
)

func TestDemosaicParallelMatchesSerial(t *testing.T) {
	sizes := []struct{ w, h int }{
		{2, 2},
		{4, 4},
		{6, 8},
		{10, 6},
		{16, 12},
	}
	rng := rand.New(rand.NewSource(13))

	for _, size := range sizes {
		raw := NewGrid(size.w, size.h)
		for i := range raw.Pix {
			raw.Pix[i] = rng.Float64()
		}
		for p := RGGB; p < numPatterns; p++ {
			serial, err := Demosaic(raw, p)
			if err != nil {
				t.Fatalf("Demosaic(%dx%d, %s) error: %v", size.w, size.h, p, err)
			}
			for _, workers := range []int{0, 1, 2, 3, 4, 7} {
				parallel, err := DemosaicParallel(raw, p, workers)
				if err != nil {
					t.Fatalf("DemosaicParallel(%dx%d, %s, %d) error: %v", size.w, size.h, p, workers, err)
				}
				for i := range serial.Pix {
					if serial.Pix[i] != parallel.Pix[i] {
						t.Fatalf("%dx%d %s workers=%d: cell %d differs: serial %v, parallel %v",
							size.w, size.h, p, workers, i, serial.Pix[i], parallel.Pix[i])
					}
				}
			}
		}
	}
}

func TestForEachBandCoversAllRows(t *testing.T) {
	for _, tt := range []struct{ rows, workers int }{
		{8, 2}, {9, 2}, {10, 3}, {12, 4}, {5, 5},
	} {
		covered := make([]int32, tt.rows)
		forEachBand(tt.rows, tt.workers, func(start, end int) {
			for r := start; r < end; r++ {
				covered[r]++
			}
		})
		for r, n := range covered {
			if n != 1 {
				t.Errorf("rows=%d workers=%d: row %d covered %d times", tt.rows, tt.workers, r, n)
			}
		}
	}
}
