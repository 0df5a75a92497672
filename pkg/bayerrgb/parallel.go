package bayerrgb

import (
	"fmt"
	"runtime"
	"sync"
)

// DemosaicParallel runs the kernel with its passes split across
// contiguous row bands. workers <= 0 selects runtime.NumCPU. The
// horizontal stage finishes for all rows before any vertical work
// starts, since a derived row reads its neighbor rows; row-disjoint
// writers need no further locking. Output is bit-identical to Demosaic.
func DemosaicParallel(raw *Grid, pattern Pattern, workers int) (*Image, error) {
	if !pattern.valid() {
		return nil, fmt.Errorf("%w: selector %d", ErrUnsupportedPattern, int(pattern))
	}
	if err := raw.checkDimensions(); err != nil {
		return nil, err
	}

	h := raw.Height
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > h/2 {
		workers = h / 2
	}
	if workers <= 1 {
		return Demosaic(raw, pattern)
	}

	out := newPlaceholderImage(raw.Width, h)
	redRow, redCol := pattern.redOffsets()
	blueRow, blueCol := pattern.blueOffsets()
	greenPar := pattern.greenParity()

	// Rows are independent in the horizontal stage.
	forEachBand(h, workers, func(start, end int) {
		primaryHorizontal(out, raw, ChannelRed, redRow, redCol, start, end)
		primaryHorizontal(out, raw, ChannelBlue, blueRow, blueCol, start, end)
	})

	// Barrier crossed: vertical averages read the horizontal results of
	// adjacent rows. Green reads only raw samples, so it joins here.
	forEachBand(h, workers, func(start, end int) {
		primaryVertical(out, ChannelRed, redRow, start, end)
		primaryVertical(out, ChannelBlue, blueRow, start, end)
		gs, ge := start, end
		if gs < 1 {
			gs = 1
		}
		if ge > h-1 {
			ge = h - 1
		}
		if gs < ge {
			greenInterior(out, raw, greenPar, gs, ge)
		}
	})

	greenBorder(out, raw, greenPar)
	return out, nil
}

// forEachBand splits [0, rows) into one contiguous band per worker and
// runs fn on each band in its own goroutine, returning once all finish.
func forEachBand(rows, workers int, fn func(start, end int)) {
	rowsPerWorker := rows / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * rowsPerWorker
		end := start + rowsPerWorker
		if i == workers-1 {
			end = rows
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
