// Package font loads the bitmap font format of spec.md §6: a JSON
// document naming a font and listing fixed-size glyph bitmaps, one byte
// per pixel, used to render window titlebar text. No bitmap-font loader
// exists anywhere in the reference corpus, so this package is original;
// DESIGN.md records why no ecosystem library covers this bespoke format.
package font

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/clogwench/wincore/pixel"
)

// Glyph is one character's bitmap, in the canonical row-major,
// top-to-bottom, left-to-right, one-byte-per-pixel convention decided for
// spec.md §9's Open Question #1: 0 is transparent, nonzero is ink.
type Glyph struct {
	ID       rune
	Width    int32
	Height   int32
	Baseline int32
	Ascent   int32
	Descent  int32
	Left     int32
	Right    int32
	Data     []byte
}

// At reports whether the pixel at (x, y) is ink. Out-of-range coordinates
// report false rather than panicking, since callers iterate a glyph's own
// declared bounds and a stray off-by-one should not crash text layout.
func (g *Glyph) At(x, y int32) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.Data[int(y)*int(g.Width)+int(x)] != 0
}

// Font is a loaded glyph set keyed by rune.
type Font struct {
	Name   string
	Glyphs map[rune]*Glyph
}

// Glyph looks up r, falling back to nil if the font has no entry — callers
// decide whether to skip or substitute a fallback box glyph.
func (f *Font) Glyph(r rune) *Glyph { return f.Glyphs[r] }

type wireGlyph struct {
	ID       int32 `json:"id"`
	Width    int32 `json:"width"`
	Height   int32 `json:"height"`
	Baseline int32 `json:"baseline"`
	Ascent   int32 `json:"ascent"`
	Descent  int32 `json:"descent"`
	Left     int32 `json:"left"`
	Right    int32 `json:"right"`
	Data     []byte `json:"data"`
}

type wireFont struct {
	Name   string      `json:"name"`
	Glyphs []wireGlyph `json:"glyphs"`
}

// Decode reads a font document from r. A glyph whose declared width*height
// doesn't match len(data) is a precondition violation (spec.md §7 class
// 5) and fails the whole load rather than silently truncating or padding.
func Decode(r io.Reader) (*Font, error) {
	var wf wireFont
	if err := json.NewDecoder(r).Decode(&wf); err != nil {
		return nil, fmt.Errorf("font: decode: %w", err)
	}

	f := &Font{Name: wf.Name, Glyphs: make(map[rune]*Glyph, len(wf.Glyphs))}
	for _, wg := range wf.Glyphs {
		want := int(wg.Width) * int(wg.Height)
		if len(wg.Data) != want {
			return nil, fmt.Errorf("font: glyph %q: data has %d bytes, want %dx%d=%d",
				rune(wg.ID), len(wg.Data), wg.Width, wg.Height, want)
		}
		f.Glyphs[rune(wg.ID)] = &Glyph{
			ID:       rune(wg.ID),
			Width:    wg.Width,
			Height:   wg.Height,
			Baseline: wg.Baseline,
			Ascent:   wg.Ascent,
			Descent:  wg.Descent,
			Left:     wg.Left,
			Right:    wg.Right,
			Data:     wg.Data,
		}
	}
	return f, nil
}

// DrawString paints s into buf starting at (x, y), the top-left of the
// first glyph's advance box, in color. Runes with no glyph in f are
// skipped but still advance by a fixed 6 pixels, so missing characters
// leave a gap rather than collapsing the rest of the string together.
func DrawString(buf *pixel.Buffer, f *Font, x, y int32, s string, color pixel.Color) {
	cursor := x
	for _, r := range s {
		g := f.Glyph(r)
		if g == nil {
			cursor += 6
			continue
		}
		for gy := int32(0); gy < g.Height; gy++ {
			for gx := int32(0); gx < g.Width; gx++ {
				if g.At(gx, gy) {
					buf.SetPixel(cursor+g.Left+gx, y+gy, color)
				}
			}
		}
		cursor += g.Left + g.Width + g.Right
	}
}

// Load opens path and decodes it via Decode.
func Load(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("font: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
