package bayerrgb

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const previewCaptionHeight = 20

// ToRGBA converts a demosaiced image to an 8-bit image.RGBA, clamping
// channel values to [0, 1].
func ToRGBA(img *Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			base := (y*img.Width + x) * 3
			out.SetRGBA(x, y, color.RGBA{
				R: to8bit(img.Pix[base+ChannelRed]),
				G: to8bit(img.Pix[base+ChannelGreen]),
				B: to8bit(img.Pix[base+ChannelBlue]),
				A: 255,
			})
		}
	}
	return out
}

func to8bit(v float64) uint8 {
	return uint8(clampFloat64(v, 0, 1)*255 + 0.5)
}

// RenderPreview scales the demosaiced image down to targetWidth
// (bilinear) and stamps a caption with the tiling and frame size below
// it. targetWidth <= 0 selects 800; frames narrower than the target are
// kept at native size.
func RenderPreview(img *Image, pattern Pattern, targetWidth int) (*image.RGBA, error) {
	if img == nil || img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("no image to preview")
	}
	if targetWidth <= 0 {
		targetWidth = 800
	}
	if targetWidth > img.Width {
		targetWidth = img.Width
	}
	scale := float64(targetWidth) / float64(img.Width)
	outW := targetWidth
	outH := int(float64(img.Height) * scale)
	if outH < 1 {
		outH = 1
	}

	full := ToRGBA(img)
	dst := image.NewRGBA(image.Rect(0, 0, outW, outH+previewCaptionHeight))
	xdraw.ApproxBiLinear.Scale(dst, image.Rect(0, 0, outW, outH), full, full.Bounds(), xdraw.Src, nil)

	caption := fmt.Sprintf("%s  %d x %d", pattern, img.Width, img.Height)
	drawText(dst, basicfont.Face7x13, caption, 6, outH+14, color.RGBA{220, 220, 220, 255})
	return dst, nil
}

// WritePreviewJPEG renders the preview and writes it as a JPEG file.
func WritePreviewJPEG(img *Image, pattern Pattern, path string, targetWidth int) error {
	preview, err := RenderPreview(img, pattern, targetWidth)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	defer f.Close()
	return jpeg.Encode(f, preview, &jpeg.Options{Quality: 90})
}

// PreviewJPEGBytes renders the preview and returns it as JPEG bytes.
func PreviewJPEGBytes(img *Image, pattern Pattern, targetWidth int) ([]byte, error) {
	preview, err := RenderPreview(img, pattern, targetWidth)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, preview, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
