package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"

	br "bayerrgb/pkg/bayerrgb"
)

var (
	patternFlag  = flag.String("pattern", "", "bayer tiling (rggb, grbg, bggr, gbrg); overrides the FITS BAYERPAT card")
	ppmFlag      = flag.String("ppm", "", "write the demosaiced frame as 16-bit PPM to this path")
	previewFlag  = flag.String("preview", "", "write an annotated JPEG preview to this path")
	previewWidth = flag.Int("preview-width", 800, "preview width in pixels")
	workersFlag  = flag.Int("workers", 0, "row-band workers (0 = all CPUs)")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bayerrgb [flags] <raw-frame>")
	}
	inputPath := args[0]
	fmt.Printf("Loading: %s\n", inputPath)

	grid, pattern, err := loadFrame(inputPath)
	if err != nil {
		return err
	}

	startTime := time.Now()
	img, err := br.DemosaicParallel(grid, pattern, *workersFlag)
	if err != nil {
		return err
	}
	elapsed := time.Since(startTime)

	fmt.Println()
	fmt.Printf("=== Demosaic Results (%.2fs) ===\n", elapsed.Seconds())
	fmt.Printf("  Frame size:  %d x %d\n", img.Width, img.Height)
	fmt.Printf("  Pattern:     %s\n", pattern)
	for _, ch := range []struct {
		name string
		idx  int
	}{
		{"R", br.ChannelRed},
		{"G", br.ChannelGreen},
		{"B", br.ChannelBlue},
	} {
		fmt.Printf("  %s: %s\n", ch.name, br.ChannelStats(img, ch.idx))
	}
	fmt.Println("==============================")

	if *ppmFlag != "" {
		glog.V(1).Infof("writing 16-bit PPM to %s", *ppmFlag)
		if err := br.WritePPM16(img, *ppmFlag); err != nil {
			return fmt.Errorf("writing PPM: %w", err)
		}
		fmt.Printf("PPM written: %s\n", *ppmFlag)
	}
	if *previewFlag != "" {
		glog.V(1).Infof("writing preview to %s (width %d)", *previewFlag, *previewWidth)
		if err := br.WritePreviewJPEG(img, pattern, *previewFlag, *previewWidth); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		fmt.Printf("Preview written: %s\n", *previewFlag)
	}
	return nil
}

func loadFrame(path string) (*br.Grid, br.Pattern, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".fits") || strings.HasSuffix(lower, ".fit") ||
		strings.HasSuffix(lower, ".fits.gz") || strings.HasSuffix(lower, ".fit.gz") {
		frame, err := br.ReadFITSFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("reading FITS: %w", err)
		}
		glog.V(1).Infof("FITS loaded: %dx%d, %d-bit", frame.Grid.Width, frame.Grid.Height, frame.BitDepth)
		pattern, err := resolvePattern(frame.Metadata)
		if err != nil {
			return nil, 0, err
		}
		return frame.NormalizedGrid(), pattern, nil
	}

	grid, err := loadRawImage(path)
	if err != nil {
		return nil, 0, err
	}
	if *patternFlag == "" {
		return nil, 0, fmt.Errorf("-pattern is required for non-FITS input")
	}
	pattern, err := br.ParsePattern(*patternFlag)
	if err != nil {
		return nil, 0, err
	}
	return grid, pattern, nil
}

func resolvePattern(meta *br.FITSMetadata) (br.Pattern, error) {
	if *patternFlag != "" {
		return br.ParsePattern(*patternFlag)
	}
	if p, ok := meta.BayerPattern(); ok {
		glog.V(1).Infof("pattern from BAYERPAT card: %s", p)
		return p, nil
	}
	return 0, fmt.Errorf("frame carries no usable BAYERPAT card; pass -pattern")
}
