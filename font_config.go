package imdraw

import (
	"math"

	"github.com/go-theft-auto/imdraw/internal/truetype"
)

// FontConfig describes one font source added to a FontAtlas.
type FontConfig struct {
	FontData []byte // TTF/OTF bytes, copied by the atlas
	FontNo   int    // Index of the face inside a collection

	SizePixels float32 // Line height in pixels

	// OversampleH and OversampleV rasterize glyphs at a higher resolution
	// to improve sub-pixel positioning. Horizontal oversampling is what
	// matters most.
	OversampleH int
	OversampleV int

	// PixelSnapH aligns every glyph advance to whole pixels.
	PixelSnapH bool

	GlyphExtraSpacing Vec2   // Extra spacing between glyphs, only X is used
	GlyphOffset       Vec2   // Offset applied to every glyph of this source
	GlyphRanges       []rune // Codepoint pairs to load, nil for GlyphRangesDefault
	GlyphMinAdvanceX  float32
	GlyphMaxAdvanceX  float32

	// MergeMode adds this source's glyphs into the previous font instead
	// of creating a new one. Codepoints already provided are kept.
	MergeMode bool

	RasterizerMultiply float32 // Brightens (>1) or darkens (<1) glyph pixels
	RasterizerDensity  float32 // Rasterize at this multiple of SizePixels

	EllipsisChar rune // -1 picks the best available ellipsis

	Name    string
	DstFont *Font // Font the glyphs are written to, set by the atlas
}

// DefaultFontConfig returns a config with recommended defaults.
func DefaultFontConfig() FontConfig {
	return FontConfig{
		OversampleH:        2,
		OversampleV:        1,
		GlyphMaxAdvanceX:   math.MaxFloat32,
		RasterizerMultiply: 1,
		RasterizerDensity:  1,
		EllipsisChar:       -1,
	}
}

// Validate checks that the config can be built.
func (c *FontConfig) Validate() error {
	switch {
	case len(c.FontData) == 0:
		return ErrEmptyFontData
	case c.SizePixels <= 0:
		return &FontConfigError{Field: "SizePixels", Reason: "must be positive"}
	case c.OversampleH < 1 || c.OversampleH > truetype.MaxOversample:
		return &FontConfigError{Field: "OversampleH", Reason: "must be between 1 and 8"}
	case c.OversampleV < 1 || c.OversampleV > truetype.MaxOversample:
		return &FontConfigError{Field: "OversampleV", Reason: "must be between 1 and 8"}
	case c.RasterizerDensity <= 0:
		return &FontConfigError{Field: "RasterizerDensity", Reason: "must be positive"}
	case c.GlyphMinAdvanceX > c.GlyphMaxAdvanceX:
		return &FontConfigError{Field: "GlyphMinAdvanceX", Reason: "exceeds GlyphMaxAdvanceX"}
	}
	var bad bool
	forEachRange(c.GlyphRanges, func(first, last rune) {
		bad = bad || first > last
	})
	if bad {
		return &FontConfigError{Field: "GlyphRanges", Reason: "range start after range end"}
	}
	return nil
}

func (c *FontConfig) glyphRanges() []rune {
	if c.GlyphRanges == nil {
		return glyphRangesDefault
	}
	return c.GlyphRanges
}
