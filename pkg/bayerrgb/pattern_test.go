package bayerrgb

import (
	"errors"
	"testing"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		in      string
		want    Pattern
		wantErr bool
	}{
		{"RGGB", RGGB, false},
		{"rggb", RGGB, false},
		{"Grbg", GRBG, false},
		{" bggr ", BGGR, false},
		{"GBRG", GBRG, false},
		{"", 0, true},
		{"rgbg", 0, true},
		{"xtrans", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePattern(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedPattern) {
					t.Errorf("ParsePattern(%q) error = %v, want ErrUnsupportedPattern", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePattern(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePattern(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPatternString(t *testing.T) {
	if got := GBRG.String(); got != "GBRG" {
		t.Errorf("GBRG.String() = %q", got)
	}
	if got := Pattern(42).String(); got != "Pattern(42)" {
		t.Errorf("Pattern(42).String() = %q", got)
	}
}

func TestPatternChannelAt(t *testing.T) {
	// Each entry spells the 2x2 tile row-major.
	tiles := map[Pattern][4]int{
		RGGB: {ChannelRed, ChannelGreen, ChannelGreen, ChannelBlue},
		GRBG: {ChannelGreen, ChannelRed, ChannelBlue, ChannelGreen},
		BGGR: {ChannelBlue, ChannelGreen, ChannelGreen, ChannelRed},
		GBRG: {ChannelGreen, ChannelBlue, ChannelRed, ChannelGreen},
	}
	for p, tile := range tiles {
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				want := tile[(r%2)*2+c%2]
				if got := p.ChannelAt(r, c); got != want {
					t.Errorf("%s.ChannelAt(%d,%d) = %d, want %d", p, r, c, got, want)
				}
			}
		}
	}
}

func TestPatternShift(t *testing.T) {
	tests := []struct {
		p      Pattern
		dx, dy int
		want   Pattern
	}{
		{RGGB, 0, 0, RGGB},
		{RGGB, 1, 0, GRBG},
		{RGGB, 0, 1, GBRG},
		{RGGB, 1, 1, BGGR},
		{RGGB, 2, 2, RGGB},
		{RGGB, -1, -1, BGGR},
		{GRBG, 1, 0, RGGB},
		{BGGR, 1, 1, RGGB},
		{GBRG, 0, -1, RGGB},
	}
	for _, tt := range tests {
		if got := tt.p.Shift(tt.dx, tt.dy); got != tt.want {
			t.Errorf("%s.Shift(%d,%d) = %s, want %s", tt.p, tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestPatternGreenParity(t *testing.T) {
	// Green sits on the diagonal opposite red and blue.
	for p := RGGB; p < numPatterns; p++ {
		rr, rc := p.redOffsets()
		br, bc := p.blueOffsets()
		gp := p.greenParity()
		if (rr+rc)%2 == gp || (br+bc)%2 == gp {
			t.Errorf("%s: green parity %d collides with a primary site", p, gp)
		}
	}
}
