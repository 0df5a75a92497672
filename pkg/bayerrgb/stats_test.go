package bayerrgb

import (
	"math"
	"strings"
	"testing"
)

func TestChannelStats(t *testing.T) {
	img := &Image{Width: 2, Height: 2, Pix: []float64{
		// R, G, B per pixel
		0.0, 0.5, 1.0,
		0.2, 0.5, 1.0,
		0.4, 0.5, 1.0,
		0.6, 0.5, 1.0,
	}}

	r := ChannelStats(img, ChannelRed)
	if r.Min != 0.0 || r.Max != 0.6 {
		t.Errorf("red min/max = %v/%v, want 0/0.6", r.Min, r.Max)
	}
	if math.Abs(r.Mean-0.3) > 1e-15 {
		t.Errorf("red mean = %v, want 0.3", r.Mean)
	}
	wantStdDev := math.Sqrt((0.09 + 0.01 + 0.01 + 0.09) / 4)
	if math.Abs(r.StdDev-wantStdDev) > 1e-15 {
		t.Errorf("red stddev = %v, want %v", r.StdDev, wantStdDev)
	}

	g := ChannelStats(img, ChannelGreen)
	if g.Mean != 0.5 || g.StdDev != 0 {
		t.Errorf("green stats = %+v, want constant 0.5", g)
	}

	if s := g.String(); !strings.Contains(s, "mean=0.5000") {
		t.Errorf("String() = %q", s)
	}
}

func TestLuminance(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Pix: []float64{
		0.3, 0.6, 0.9,
		1.0, 1.0, 1.0,
	}}
	lum := Luminance(img)
	if len(lum) != 2 {
		t.Fatalf("len = %d, want 2", len(lum))
	}
	if math.Abs(lum[0]-0.6) > 1e-15 {
		t.Errorf("lum[0] = %v, want 0.6", lum[0])
	}
	if lum[1] != 1.0 {
		t.Errorf("lum[1] = %v, want 1", lum[1])
	}
}
