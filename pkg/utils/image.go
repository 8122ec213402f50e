package utils

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// MaxScale is the largest factor accepted by Scale.
const MaxScale = 16

// FrameImage copies an RGBA framebuffer of the given width into an
// image.
func FrameImage(frame []uint8, width int) *image.RGBA {
	height := len(frame) / (width * 4)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, frame)
	return img
}

// Scale enlarges img by factor using nearest neighbour sampling, so
// that each pixel stays a sharp square. The factor is clamped to
// 1-MaxScale.
func Scale(img image.Image, factor int) image.Image {
	factor = Clamp(1, factor, MaxScale)
	if factor == 1 {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodeImage writes img to w in the given format, "png" or "bmp".
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// ImageFormat returns the image format for filename from its extension.
func ImageFormat(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
