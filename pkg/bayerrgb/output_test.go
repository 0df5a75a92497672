package bayerrgb

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage(t *testing.T) *Image {
	t.Helper()
	img, err := Demosaic(gridFromRows(t, [][]float64{
		{0, 0.25, 0.5, 0.75},
		{0.25, 0.5, 0.75, 1},
		{0.5, 0.75, 1, 0.25},
		{0.75, 1, 0.25, 0.5},
	}), RGGB)
	if err != nil {
		t.Fatalf("Demosaic() error: %v", err)
	}
	return img
}

func TestWritePPM16(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Pix: []float64{
		0, 0.5, 1,
		1.5, -0.5, 0.25,
	}}
	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := WritePPM16(img, path); err != nil {
		t.Fatalf("WritePPM16() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"P3",
		"2 1",
		"65535",
		"0 32768 65535",
		"65535 0 16384",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestToRGBA(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Pix: []float64{
		1, 0, 0,
		2, -1, 0.5,
	}}
	rgba := ToRGBA(img)
	if got := rgba.Bounds(); got != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", got)
	}
	r, g, b, a := rgba.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 || a>>8 != 255 {
		t.Errorf("pixel 0 = %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
	r, g, b, _ = rgba.At(1, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 128 {
		t.Errorf("pixel 1 = %d,%d,%d (clamping)", r>>8, g>>8, b>>8)
	}
}

func TestRenderPreview(t *testing.T) {
	img := testImage(t)
	preview, err := RenderPreview(img, RGGB, 2)
	if err != nil {
		t.Fatalf("RenderPreview() error: %v", err)
	}
	want := image.Rect(0, 0, 2, 2+previewCaptionHeight)
	if got := preview.Bounds(); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}

	// Frames narrower than the target keep their native size.
	preview, err = RenderPreview(img, RGGB, 100)
	if err != nil {
		t.Fatalf("RenderPreview() error: %v", err)
	}
	if got := preview.Bounds().Dx(); got != img.Width {
		t.Errorf("width = %d, want %d", got, img.Width)
	}

	if _, err := RenderPreview(nil, RGGB, 0); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestPreviewJPEGBytes(t *testing.T) {
	data, err := PreviewJPEGBytes(testImage(t), RGGB, 4)
	if err != nil {
		t.Fatalf("PreviewJPEGBytes() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xFF, 0xD8}) {
		t.Error("output does not start with the JPEG SOI marker")
	}
}

func TestWritePreviewJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.jpg")
	if err := WritePreviewJPEG(testImage(t), RGGB, path, 4); err != nil {
		t.Fatalf("WritePreviewJPEG() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("preview file is empty")
	}
}
