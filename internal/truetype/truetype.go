// Package truetype adapts golang.org/x/image/font/sfnt and
// golang.org/x/image/vector to the narrow glyph contract the atlas builder
// needs: parse, look up glyphs, measure and render them into a caller-owned
// 8-bit buffer.
//
// All metrics are in unscaled font units with Y pointing down unless noted.
//
// GlyphIndex values of 0 mean "no glyph".
package truetype

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// MaxOversample is the largest supported oversampling factor.
const MaxOversample = 8

// overMask indexes the prefilter ring buffer.
const overMask = MaxOversample - 1

// ErrFontIndex is returned when a collection has no font at the requested
// index.
var ErrFontIndex = errors.New("truetype: font index out of range")

// Font is a parsed font with scratch state for measuring and rendering.
// A Font is not safe for concurrent use.
type Font struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	upm  fixed.Int26_6

	ascent  int
	descent int
	lineGap int

	raster vector.Rasterizer
	mask   image.Alpha
}

// Parse parses a font file or collection. index selects the face inside a
// collection and must be 0 for a single font.
func Parse(data []byte, index int) (*Font, error) {
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("truetype: failed to parse font: %w", err)
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, fmt.Errorf("%w: %d of %d", ErrFontIndex, index, c.NumFonts())
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, fmt.Errorf("truetype: failed to load face %d: %w", index, err)
	}

	tf := &Font{font: f, upm: fixed.I(int(f.UnitsPerEm()))}
	m, err := f.Metrics(&tf.buf, tf.upm, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("truetype: failed to read metrics: %w", err)
	}
	tf.ascent = m.Ascent.Round()
	tf.descent = -m.Descent.Round()
	tf.lineGap = (m.Height - m.Ascent - m.Descent).Round()
	return tf, nil
}

// FindGlyphIndex returns the glyph for r, or 0 when the font has none.
func (f *Font) FindGlyphIndex(r rune) sfnt.GlyphIndex {
	g, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return g
}

// VMetrics returns the unscaled ascent, descent and line gap. Descent is
// negative for fonts that extend below the baseline.
func (f *Font) VMetrics() (ascent, descent, lineGap int) {
	return f.ascent, f.descent, f.lineGap
}

// HMetrics returns the unscaled advance width of g.
func (f *Font) HMetrics(g sfnt.GlyphIndex) int {
	adv, err := f.font.GlyphAdvance(&f.buf, g, f.upm, font.HintingNone)
	if err != nil {
		return 0
	}
	return adv.Round()
}

// ScaleForPixelHeight returns the scale that maps ascent-descent to px.
func (f *Font) ScaleForPixelHeight(px float32) float32 {
	return px / float32(f.ascent-f.descent)
}

// outline loads g in font units. Glyphs without an outline (or with color
// data only) yield no segments.
func (f *Font) outline(g sfnt.GlyphIndex) sfnt.Segments {
	segs, err := f.font.LoadGlyph(&f.buf, g, f.upm, nil)
	if err != nil {
		return nil
	}
	return segs
}

// GlyphBitmapBox returns the pixel box covered by g at the given scale,
// relative to the pen position with Y down.
func (f *Font) GlyphBitmapBox(g sfnt.GlyphIndex, scaleX, scaleY float32) (x0, y0, x1, y1 int) {
	return bitmapBox(f.outline(g), scaleX, scaleY)
}

// bitmapBox measures already loaded segments. Segments alias the sfnt
// buffer, so callers measure before loading another glyph.
func bitmapBox(segs sfnt.Segments, scaleX, scaleY float32) (x0, y0, x1, y1 int) {
	if len(segs) == 0 {
		return 0, 0, 0, 0
	}
	b := segs.Bounds()
	x0 = int(math.Floor(float64(unitsOf(b.Min.X) * scaleX)))
	y0 = int(math.Floor(float64(unitsOf(b.Min.Y) * scaleY)))
	x1 = int(math.Ceil(float64(unitsOf(b.Max.X) * scaleX)))
	y1 = int(math.Ceil(float64(unitsOf(b.Max.Y) * scaleY)))
	return x0, y0, x1, y1
}

// RenderGlyph rasterizes g into the w×h region of dst that starts at
// dst[0] with the given row stride. The glyph is placed so that the top-left
// of its bitmap box lands at the region origin. Only the region is written.
func (f *Font) RenderGlyph(dst []byte, stride, w, h int, g sfnt.GlyphIndex, scaleX, scaleY float32) {
	if w <= 0 || h <= 0 {
		return
	}
	segs := f.outline(g)
	if len(segs) == 0 {
		return
	}
	x0, y0, _, _ := bitmapBox(segs, scaleX, scaleY)
	ox, oy := float32(x0), float32(y0)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return unitsOf(p.X)*scaleX - ox, unitsOf(p.Y)*scaleY - oy
	}

	f.raster.Reset(w, h)
	f.raster.DrawOp = draw.Src
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			f.raster.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			f.raster.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			ax, ay := pt(s.Args[0])
			bx, by := pt(s.Args[1])
			f.raster.QuadTo(ax, ay, bx, by)
		case sfnt.SegmentOpCubeTo:
			ax, ay := pt(s.Args[0])
			bx, by := pt(s.Args[1])
			cx, cy := pt(s.Args[2])
			f.raster.CubeTo(ax, ay, bx, by, cx, cy)
		}
	}
	f.raster.ClosePath()

	// The rasterizer's fast path needs a mask whose stride equals its width.
	if cap(f.mask.Pix) < w*h {
		f.mask.Pix = make([]byte, w*h)
	}
	f.mask.Pix = f.mask.Pix[:w*h]
	clear(f.mask.Pix)
	f.mask.Stride = w
	f.mask.Rect = image.Rect(0, 0, w, h)
	f.raster.Draw(&f.mask, f.mask.Rect, image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		copy(dst[y*stride:y*stride+w], f.mask.Pix[y*w:(y+1)*w])
	}
}

// unitsOf converts a 26.6 value loaded at ppem == unitsPerEm to font units.
func unitsOf(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// GlyphIndex identifies a glyph inside a Font.
type GlyphIndex = sfnt.GlyphIndex
