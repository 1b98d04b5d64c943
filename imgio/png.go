// Package imgio decodes PNG assets into pixel.Buffer and encodes
// pixel.Buffer back out to PNG, for cursors, sprite sheets, and screen
// captures.
package imgio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
)

// DecodePNG reads a PNG from r and converts it into a pixel.Buffer in
// layout. The source image is normalized to RGBA via x/image/draw before
// conversion so paletted and grayscale PNGs decode identically to true
// color ones.
func DecodePNG(id uid.ID, r io.Reader, layout pixel.Layout) (*pixel.Buffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imgio: decode png: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	buf := pixel.New(id, int32(bounds.Dx()), int32(bounds.Dy()), pixel.ARGB)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := rgba.RGBAAt(x, y)
			buf.SetPixel(int32(x), int32(y), pixel.Color{A: c.A, R: c.R, G: c.G, B: c.B})
		}
	}
	if layout != pixel.ARGB {
		return buf.ToLayout(id, layout), nil
	}
	return buf, nil
}

// LoadPNGFile opens path and decodes it via DecodePNG.
func LoadPNGFile(id uid.ID, path string, layout pixel.Layout) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgio: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodePNG(id, f, layout)
}

// EncodePNG writes buf to w as a PNG, used for Debug(ScreenCapture)
// responses.
func EncodePNG(w io.Writer, buf *pixel.Buffer) error {
	img := image.NewRGBA(image.Rect(0, 0, int(buf.Width), int(buf.Height)))
	for y := int32(0); y < buf.Height; y++ {
		for x := int32(0); x < buf.Width; x++ {
			c := buf.GetPixel(x, y)
			img.SetRGBA(int(x), int(y), color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imgio: encode png: %w", err)
	}
	return nil
}

// SavePNGFile encodes buf and writes it to path.
func SavePNGFile(path string, buf *pixel.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imgio: create %s: %w", path, err)
	}
	defer f.Close()
	return EncodePNG(f, buf)
}
