package imdraw

import (
	"fmt"
	"os"
	"slices"

	"golang.org/x/image/font/gofont/goregular"
)

// FontAtlasFlags configure atlas building.
type FontAtlasFlags int

const (
	FontAtlasFlagsNone FontAtlasFlags = 0
	// FontAtlasFlagsNoPowerOfTwoHeight keeps the texture height tight
	// instead of rounding it up to a power of two.
	FontAtlasFlagsNoPowerOfTwoHeight FontAtlasFlags = 1 << 0
	// FontAtlasFlagsNoMouseCursors skips the mouse cursor sprites and
	// reserves only a small white block.
	FontAtlasFlagsNoMouseCursors FontAtlasFlags = 1 << 1
	// FontAtlasFlagsNoBakedLines skips the anti-aliased line strip.
	FontAtlasFlagsNoBakedLines FontAtlasFlags = 1 << 2
)

// DefaultFontSize is the pixel size of AddFontDefault.
const DefaultFontSize = 13

// FontAtlasCustomRect reserves a rectangle of the atlas texture for user
// pixels, optionally registered as a glyph of a font.
type FontAtlasCustomRect struct {
	Width, Height int
	X, Y          int // Position in the texture, -1 until packed

	GlyphID       rune    // Codepoint to register, 0 for a plain rect
	GlyphAdvanceX float32 // Glyph advance
	GlyphOffset   Vec2    // Glyph offset relative to the pen
	Font          *Font   // Font receiving the glyph
	GlyphColored  bool    // Pixels are written in color; the glyph is drawn untinted
}

// IsPacked reports whether the rect received a texture position.
func (r *FontAtlasCustomRect) IsPacked() bool { return r.X >= 0 }

// TexData is a view of the atlas pixels.
type TexData struct {
	Pixels        []byte
	Width, Height int
	BytesPerPixel int
}

// FontAtlas loads font sources, rasterizes their glyphs into one texture
// and owns the resulting Fonts.
//
// Mutating methods (adding fonts, clearing, building) must not be called
// while Locked is set; a frame context locks the atlas between NewFrame
// and Render so draw lists can read it safely.
type FontAtlas struct {
	Flags           FontAtlasFlags
	TexID           TextureID // Renderer handle of the uploaded texture
	TexDesiredWidth int       // Texture width, 0 picks one from the glyph surface
	TexGlyphPadding int       // Padding between glyphs, default 1
	Locked          bool

	TexReady        bool
	TexPixelsAlpha8 []byte
	TexPixelsRGBA32 []byte
	TexWidth        int
	TexHeight       int
	TexUvScale      Vec2 // 1/TexWidth, 1/TexHeight
	TexUvWhitePixel Vec2 // UV of a white texel

	Fonts       []*Font
	CustomRects []FontAtlasCustomRect
	ConfigData  []*FontConfig

	// TexUvLines holds, for each line width, the UVs of a baked line
	// with anti-aliased edges.
	TexUvLines [TexLinesWidthMax + 1]Vec4

	packIDMouseCursors int
	packIDLines        int
}

// NewFontAtlas returns an empty atlas.
func NewFontAtlas() *FontAtlas {
	return &FontAtlas{
		TexGlyphPadding:    1,
		packIDMouseCursors: -1,
		packIDLines:        -1,
	}
}

func (a *FontAtlas) assertUnlocked() {
	assert(!a.Locked, "cannot modify a locked FontAtlas between NewFrame and Render")
}

// AddFont adds a font source. Without MergeMode a new Font is created;
// with it the glyphs go into the last font. The config and its data are
// copied.
func (a *FontAtlas) AddFont(cfg *FontConfig) (*Font, error) {
	a.assertUnlocked()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.MergeMode {
		assert(len(a.Fonts) > 0, "MergeMode needs a font to merge into, add one first")
	} else {
		a.Fonts = append(a.Fonts, NewFont())
	}

	c := *cfg
	c.FontData = slices.Clone(cfg.FontData)
	if c.DstFont == nil {
		c.DstFont = a.Fonts[len(a.Fonts)-1]
	}
	a.ConfigData = append(a.ConfigData, &c)
	if c.DstFont.EllipsisChar == -1 {
		c.DstFont.EllipsisChar = cfg.EllipsisChar
	}

	a.TexReady = false
	a.ClearTexData()
	return c.DstFont, nil
}

// AddFontFromMemoryTTF adds a font from TTF/OTF bytes. cfg may be nil.
func (a *FontAtlas) AddFontFromMemoryTTF(data []byte, sizePixels float32, cfg *FontConfig, glyphRanges []rune) (*Font, error) {
	c := DefaultFontConfig()
	if cfg != nil {
		c = *cfg
	}
	c.FontData = data
	c.SizePixels = sizePixels
	if glyphRanges != nil {
		c.GlyphRanges = glyphRanges
	}
	return a.AddFont(&c)
}

// AddFontFromFileTTF reads a font file and adds it.
func (a *FontAtlas) AddFontFromFileTTF(filename string, sizePixels float32, cfg *FontConfig, glyphRanges []rune) (*Font, error) {
	a.assertUnlocked()
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	c := DefaultFontConfig()
	if cfg != nil {
		c = *cfg
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("%s, %.0fpx", filename, sizePixels)
	}
	return a.AddFontFromMemoryTTF(data, sizePixels, &c, glyphRanges)
}

// AddFontDefault adds the embedded Go Regular font. cfg may be nil; a
// zero SizePixels means DefaultFontSize.
func (a *FontAtlas) AddFontDefault(cfg *FontConfig) (*Font, error) {
	c := DefaultFontConfig()
	if cfg != nil {
		c = *cfg
	}
	if c.SizePixels <= 0 {
		c.SizePixels = DefaultFontSize
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("goregular.ttf, %.0fpx", c.SizePixels)
	}
	return a.AddFontFromMemoryTTF(goregular.TTF, c.SizePixels, &c, c.GlyphRanges)
}

// AddCustomRectRegular reserves a width×height rectangle and returns its
// index for CustomRect.
func (a *FontAtlas) AddCustomRectRegular(width, height int) int {
	assert(width > 0 && width <= 0xFFFF && height > 0 && height <= 0xFFFF, "custom rect size out of range")
	a.CustomRects = append(a.CustomRects, FontAtlasCustomRect{Width: width, Height: height, X: -1, Y: -1})
	return len(a.CustomRects) - 1
}

// AddCustomRectFontGlyph reserves a rectangle that becomes glyph id of
// font once the atlas is built.
func (a *FontAtlas) AddCustomRectFontGlyph(font *Font, id rune, width, height int, advanceX float32, offset Vec2) int {
	assert(font != nil, "nil font")
	assert(width > 0 && width <= 0xFFFF && height > 0 && height <= 0xFFFF, "custom rect size out of range")
	a.CustomRects = append(a.CustomRects, FontAtlasCustomRect{
		Width: width, Height: height, X: -1, Y: -1,
		GlyphID: id, GlyphAdvanceX: advanceX, GlyphOffset: offset, Font: font,
	})
	return len(a.CustomRects) - 1
}

// CustomRect returns the custom rect at index.
func (a *FontAtlas) CustomRect(index int) *FontAtlasCustomRect {
	assert(index >= 0 && index < len(a.CustomRects), "custom rect index out of range")
	return &a.CustomRects[index]
}

// CalcCustomRectUV returns the texture coordinates of a packed rect.
func (a *FontAtlas) CalcCustomRectUV(r *FontAtlasCustomRect) (uvMin, uvMax Vec2) {
	assert(a.TexWidth > 0 && a.TexHeight > 0, "atlas is not built")
	assert(r.IsPacked(), "custom rect is not packed")
	uvMin = Vec2{float32(r.X), float32(r.Y)}.MulVec(a.TexUvScale)
	uvMax = Vec2{float32(r.X + r.Width), float32(r.Y + r.Height)}.MulVec(a.TexUvScale)
	return uvMin, uvMax
}

// GetMouseCursorTexData returns the sprite of a cursor: its hot-spot
// offset, size, and the UVs of its border and fill layers. ok is false
// when the atlas has no cursors.
func (a *FontAtlas) GetMouseCursorTexData(cursor MouseCursor) (offset, size Vec2, uvBorder, uvFill [2]Vec2, ok bool) {
	if cursor < 0 || cursor >= MouseCursorCount || a.Flags&FontAtlasFlagsNoMouseCursors != 0 {
		return offset, size, uvBorder, uvFill, false
	}
	assert(a.packIDMouseCursors >= 0, "atlas is not built")
	r := a.CustomRect(a.packIDMouseCursors)
	sprite := cursorSprites[cursor]
	pos := Vec2{float32(r.X + sprite.x), float32(r.Y + sprite.y)}
	size = Vec2{float32(sprite.w), float32(sprite.h)}
	offset = sprite.hotSpot
	uvFill[0] = pos.MulVec(a.TexUvScale)
	uvFill[1] = pos.Add(size).MulVec(a.TexUvScale)
	pos.X += float32(cursorSheetWidth + 1)
	uvBorder[0] = pos.MulVec(a.TexUvScale)
	uvBorder[1] = pos.Add(size).MulVec(a.TexUvScale)
	return offset, size, uvBorder, uvFill, true
}

// ClearInputData drops all sources and custom rects. Built fonts keep
// their glyphs.
func (a *FontAtlas) ClearInputData() {
	a.assertUnlocked()
	for _, f := range a.Fonts {
		f.Sources = nil
	}
	a.ConfigData = nil
	a.CustomRects = nil
	a.packIDMouseCursors = -1
	a.packIDLines = -1
}

// ClearTexData drops the texture pixels.
func (a *FontAtlas) ClearTexData() {
	a.assertUnlocked()
	a.TexPixelsAlpha8 = nil
	a.TexPixelsRGBA32 = nil
}

// ClearFonts drops all fonts.
func (a *FontAtlas) ClearFonts() {
	a.assertUnlocked()
	a.Fonts = nil
	a.TexReady = false
}

// Clear drops sources, pixels and fonts.
func (a *FontAtlas) Clear() {
	a.ClearInputData()
	a.ClearTexData()
	a.ClearFonts()
}

// IsBuilt reports whether the fonts are loaded and the texture is ready.
func (a *FontAtlas) IsBuilt() bool {
	return len(a.Fonts) > 0 && a.TexReady
}

// SetTexID records the renderer handle of the uploaded texture.
func (a *FontAtlas) SetTexID(id TextureID) { a.TexID = id }

// GetTexDataAsAlpha8 returns the texture with one byte per pixel,
// building the atlas first when needed.
func (a *FontAtlas) GetTexDataAsAlpha8() (TexData, error) {
	if a.TexPixelsAlpha8 == nil {
		Logger().Info("imdraw: building font atlas on demand", "fonts", len(a.ConfigData))
		if err := a.Build(); err != nil {
			return TexData{}, err
		}
	}
	return TexData{Pixels: a.TexPixelsAlpha8, Width: a.TexWidth, Height: a.TexHeight, BytesPerPixel: 1}, nil
}

// GetTexDataAsRGBA32 returns the texture as white RGBA pixels carrying
// the coverage in alpha. The conversion is cached.
func (a *FontAtlas) GetTexDataAsRGBA32() (TexData, error) {
	if a.TexPixelsRGBA32 == nil {
		alpha, err := a.GetTexDataAsAlpha8()
		if err != nil {
			return TexData{}, err
		}
		rgba := make([]byte, len(alpha.Pixels)*4)
		for i, v := range alpha.Pixels {
			rgba[i*4+0] = 0xFF
			rgba[i*4+1] = 0xFF
			rgba[i*4+2] = 0xFF
			rgba[i*4+3] = v
		}
		a.TexPixelsRGBA32 = rgba
	}
	return TexData{Pixels: a.TexPixelsRGBA32, Width: a.TexWidth, Height: a.TexHeight, BytesPerPixel: 4}, nil
}
