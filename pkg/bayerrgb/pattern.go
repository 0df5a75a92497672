package bayerrgb

import (
	"fmt"
	"strings"
)

// Pattern selects the repeating 2x2 Bayer tiling of a raw frame. The
// name reads the tile row-major: RGGB is R G on the even row and G B on
// the odd row.
type Pattern int

const (
	RGGB Pattern = iota
	GRBG
	BGGR
	GBRG
	numPatterns
)

// tileOffsets holds, per pattern, the (row, col) parity of the native
// red and blue sites. Green always occupies the remaining diagonal.
var tileOffsets = [numPatterns]struct {
	redRow, redCol   int
	blueRow, blueCol int
}{
	RGGB: {0, 0, 1, 1},
	GRBG: {0, 1, 1, 0},
	BGGR: {1, 1, 0, 0},
	GBRG: {1, 0, 0, 1},
}

var patternNames = [numPatterns]string{"RGGB", "GRBG", "BGGR", "GBRG"}

func (p Pattern) String() string {
	if !p.valid() {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

func (p Pattern) valid() bool { return p >= 0 && p < numPatterns }

// ParsePattern maps a tiling name such as "rggb" or "GBRG" to its
// Pattern. Unknown names return ErrUnsupportedPattern.
func ParsePattern(s string) (Pattern, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for p, n := range patternNames {
		if n == name {
			return Pattern(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPattern, s)
}

// redOffsets returns the (row, col) parity of native red sites.
func (p Pattern) redOffsets() (int, int) {
	t := tileOffsets[p]
	return t.redRow, t.redCol
}

// blueOffsets returns the (row, col) parity of native blue sites.
func (p Pattern) blueOffsets() (int, int) {
	t := tileOffsets[p]
	return t.blueRow, t.blueCol
}

// greenParity returns the value of (row+col)%2 at native green sites.
func (p Pattern) greenParity() int {
	t := tileOffsets[p]
	return (t.redRow + t.redCol + 1) % 2
}

// ChannelAt reports which channel the sensor measures at (row, col).
func (p Pattern) ChannelAt(row, col int) int {
	t := tileOffsets[p]
	switch {
	case row%2 == t.redRow && col%2 == t.redCol:
		return ChannelRed
	case row%2 == t.blueRow && col%2 == t.blueCol:
		return ChannelBlue
	default:
		return ChannelGreen
	}
}

// Shift returns the tiling seen when the frame origin moves by (dx, dy)
// pixels, as encoded by the FITS XBAYROFF/YBAYROFF cards. Offsets only
// matter modulo 2 and may be negative.
func (p Pattern) Shift(dx, dy int) Pattern {
	t := tileOffsets[p]
	rr := ((t.redRow+dy)%2 + 2) % 2
	rc := ((t.redCol+dx)%2 + 2) % 2
	for q, o := range tileOffsets {
		if o.redRow == rr && o.redCol == rc {
			return Pattern(q)
		}
	}
	return p
}
