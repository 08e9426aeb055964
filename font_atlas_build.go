package imdraw

import (
	"fmt"

	"github.com/go-theft-auto/imdraw/internal/rectpack"
	"github.com/go-theft-auto/imdraw/internal/truetype"
)

// texHeightMax bounds the virtual canvas glyphs are packed into.
const texHeightMax = 1024 * 32

// buildSrc is the working state of one font source during a build.
type buildSrc struct {
	cfg      *FontConfig
	font     *truetype.Font
	dstIndex int
	ranges   []rune
	highest  rune
	set      bitVector
	glyphs   []rune                // Codepoints this source provides
	indices  []truetype.GlyphIndex // Font glyph of each codepoint
	rects    []rectpack.Rect
	packed   []truetype.PackedChar
	scale    float32
}

// buildDst is the working state of one output font during a build.
type buildDst struct {
	srcCount int
	highest  rune
	set      bitVector
}

// Build parses every source, packs and rasterizes the requested glyphs
// into a single Alpha8 texture and fills the fonts. An atlas without
// sources gets the default font. On error no font is modified and the
// texture is left empty.
func (a *FontAtlas) Build() error {
	a.assertUnlocked()
	if len(a.ConfigData) == 0 {
		if _, err := a.AddFontDefault(nil); err != nil {
			return err
		}
	}
	if err := a.build(); err != nil {
		a.TexPixelsAlpha8 = nil
		a.TexPixelsRGBA32 = nil
		a.TexReady = false
		return err
	}
	return nil
}

func (a *FontAtlas) build() error {
	a.buildInit()

	a.TexID = 0
	a.TexWidth, a.TexHeight = 0, 0
	a.TexUvScale = Vec2{}
	a.TexUvWhitePixel = Vec2{}
	a.ClearTexData()

	srcs := make([]buildSrc, len(a.ConfigData))
	dsts := make([]buildDst, len(a.Fonts))

	// Parse sources and find the highest codepoint each font may receive.
	for i, cfg := range a.ConfigData {
		src := &srcs[i]
		src.cfg = cfg
		src.dstIndex = -1
		for j, f := range a.Fonts {
			if f == cfg.DstFont {
				src.dstIndex = j
				break
			}
		}
		assert(src.dstIndex >= 0, "FontConfig.DstFont is not a font of this atlas")
		assert(!cfg.DstFont.IsLoaded() || cfg.DstFont.ContainerAtlas == a, "font belongs to another atlas")

		f, err := truetype.Parse(cfg.FontData, cfg.FontNo)
		if err != nil {
			return fmt.Errorf("%w: source %d (%s): %w", ErrInvalidFontData, i, cfg.Name, err)
		}
		src.font = f

		src.ranges = cfg.glyphRanges()
		forEachRange(src.ranges, func(first, last rune) {
			assert(first <= last, "invalid glyph range")
			src.highest = max(src.highest, last)
		})
		dst := &dsts[src.dstIndex]
		dst.srcCount++
		dst.highest = max(dst.highest, src.highest)
	}

	// Keep each codepoint once per output font, first source wins.
	total := 0
	for i := range srcs {
		src := &srcs[i]
		dst := &dsts[src.dstIndex]
		src.set = newBitVector(int(src.highest) + 1)
		if dst.set == nil {
			dst.set = newBitVector(int(dst.highest) + 1)
		}
		forEachRange(src.ranges, func(first, last rune) {
			for c := first; c <= last; c++ {
				if dst.set.test(int(c)) {
					continue
				}
				if src.font.FindGlyphIndex(c) == 0 {
					continue
				}
				src.set.set(int(c))
				dst.set.set(int(c))
				total++
			}
		})
	}
	for i := range srcs {
		src := &srcs[i]
		src.glyphs = src.set.appendSet(nil)
		src.set = nil
	}

	// Measure glyph rectangles, padding included.
	surface := 0
	pad := a.TexGlyphPadding
	for i := range srcs {
		src := &srcs[i]
		if len(src.glyphs) == 0 {
			continue
		}
		cfg := src.cfg
		src.scale = src.font.ScaleForPixelHeight(cfg.SizePixels * cfg.RasterizerDensity)
		src.indices = make([]truetype.GlyphIndex, len(src.glyphs))
		src.rects = make([]rectpack.Rect, len(src.glyphs))
		src.packed = make([]truetype.PackedChar, len(src.glyphs))
		for j, c := range src.glyphs {
			g := src.font.FindGlyphIndex(c)
			src.indices[j] = g
			x0, y0, x1, y1 := src.font.GlyphBitmapBox(g, src.scale*float32(cfg.OversampleH), src.scale*float32(cfg.OversampleV))
			r := &src.rects[j]
			r.ID = j
			r.W = x1 - x0 + pad + cfg.OversampleH - 1
			r.H = y1 - y0 + pad + cfg.OversampleV - 1
			surface += r.W * r.H
		}
	}

	// Any width works for the skyline, but GPUs limit texture sizes and a
	// wider texture is shorter.
	surfaceSqrt := int(sqrtf(float32(surface))) + 1
	a.TexHeight = 0
	switch {
	case a.TexDesiredWidth > 0:
		a.TexWidth = a.TexDesiredWidth
	case float32(surfaceSqrt) >= 4096*0.7:
		a.TexWidth = 4096
	case float32(surfaceSqrt) >= 2048*0.7:
		a.TexWidth = 2048
	case float32(surfaceSqrt) >= 1024*0.7:
		a.TexWidth = 1024
	default:
		a.TexWidth = 512
	}
	assert(a.TexWidth > pad, "texture width must exceed glyph padding")

	// Custom rects go first so they land at the top with small UVs.
	packer := rectpack.NewContext(a.TexWidth-pad, texHeightMax-pad)
	a.packCustomRects(packer)

	for i := range srcs {
		src := &srcs[i]
		if len(src.rects) == 0 {
			continue
		}
		packer.Pack(src.rects)
		for j := range src.rects {
			r := &src.rects[j]
			if !r.WasPacked {
				Logger().Warn("imdraw: glyph does not fit in font atlas, dropped",
					"font", src.cfg.Name, "codepoint", src.glyphs[j], "width", r.W, "height", r.H)
				continue
			}
			a.TexHeight = max(a.TexHeight, r.Y+r.H)
		}
	}

	if a.Flags&FontAtlasFlagsNoPowerOfTwoHeight != 0 {
		a.TexHeight++
	} else {
		a.TexHeight = upperPowerOfTwo(a.TexHeight)
	}
	a.TexUvScale = Vec2{1 / float32(a.TexWidth), 1 / float32(a.TexHeight)}
	a.TexPixelsAlpha8 = make([]byte, a.TexWidth*a.TexHeight)

	// Rasterize.
	for i := range srcs {
		src := &srcs[i]
		cfg := src.cfg
		var table *[256]byte
		if cfg.RasterizerMultiply != 1 {
			t := multiplyTable(cfg.RasterizerMultiply)
			table = &t
		}
		for j := range src.rects {
			r := &src.rects[j]
			if !r.WasPacked {
				continue
			}
			pc := src.font.RenderPacked(a.TexPixelsAlpha8, a.TexWidth, r.X, r.Y, r.W, r.H, pad,
				src.indices[j], src.scale, cfg.OversampleH, cfg.OversampleV)
			src.packed[j] = pc
			if table != nil {
				multiplyRectAlpha8(table, a.TexPixelsAlpha8, pc.X0, pc.Y0, pc.X1-pc.X0, pc.Y1-pc.Y0, a.TexWidth)
			}
		}
	}

	// Fill fonts.
	glyphCount := 0
	for i := range srcs {
		src := &srcs[i]
		cfg := src.cfg
		dst := cfg.DstFont

		fontScale := src.font.ScaleForPixelHeight(cfg.SizePixels)
		ua, ud, _ := src.font.VMetrics()
		ascent := truncf(float32(ua)*fontScale + signOne(ua))
		descent := truncf(float32(ud)*fontScale + signOne(ud))
		a.setupFont(dst, cfg, ascent, descent)
		offX := cfg.GlyphOffset.X
		offY := cfg.GlyphOffset.Y + roundf(dst.Ascent)
		inv := 1 / cfg.RasterizerDensity

		for j, c := range src.glyphs {
			if !src.rects[j].WasPacked {
				continue
			}
			pc := src.packed[j]
			q := truetype.PackedQuad(pc, a.TexWidth, a.TexHeight, 0, 0)
			dst.AddGlyph(cfg, c,
				q.X0*inv+offX, q.Y0*inv+offY, q.X1*inv+offX, q.Y1*inv+offY,
				q.S0, q.T0, q.S1, q.T1, pc.XAdvance*inv)
			glyphCount++
		}
	}

	a.buildFinish()
	Logger().Debug("imdraw: font atlas built",
		"sources", len(srcs), "fonts", len(a.Fonts), "requested", total, "glyphs", glyphCount,
		"width", a.TexWidth, "height", a.TexHeight, "surface", surface)
	return nil
}

func signOne(v int) float32 {
	if v > 0 {
		return 1
	}
	return -1
}

// buildInit reserves the cursor sheet (or a white block) and the line
// strip, once per set of custom rects.
func (a *FontAtlas) buildInit() {
	if a.packIDMouseCursors < 0 {
		if a.Flags&FontAtlasFlagsNoMouseCursors == 0 {
			a.packIDMouseCursors = a.AddCustomRectRegular(cursorSheetWidth*2+1, cursorSheetHeight)
		} else {
			a.packIDMouseCursors = a.AddCustomRectRegular(2, 2)
		}
	}
	// +2 leaves room for the end caps, +1 for the zero-width row.
	if a.packIDLines < 0 && a.Flags&FontAtlasFlagsNoBakedLines == 0 {
		a.packIDLines = a.AddCustomRectRegular(TexLinesWidthMax+2, TexLinesWidthMax+1)
	}
}

func (a *FontAtlas) packCustomRects(packer *rectpack.Context) {
	assert(len(a.CustomRects) > 0, "atlas has no custom rects, buildInit was not run")
	rects := make([]rectpack.Rect, len(a.CustomRects))
	for i, r := range a.CustomRects {
		rects[i] = rectpack.Rect{ID: i, W: r.Width, H: r.Height}
	}
	packer.Pack(rects)
	for i, pr := range rects {
		cr := &a.CustomRects[i]
		if !pr.WasPacked {
			cr.X, cr.Y = -1, -1
			Logger().Warn("imdraw: custom rect does not fit in font atlas", "index", i, "width", cr.Width, "height", cr.Height)
			continue
		}
		cr.X, cr.Y = pr.X, pr.Y
		a.TexHeight = max(a.TexHeight, pr.Y+pr.H)
	}
}

// setupFont resets dst for its first source; merged sources only add
// themselves to Sources.
func (a *FontAtlas) setupFont(dst *Font, cfg *FontConfig, ascent, descent float32) {
	if !cfg.MergeMode {
		dst.ClearOutputData()
		dst.FontSize = cfg.SizePixels
		dst.Sources = dst.Sources[:0]
		dst.ContainerAtlas = a
		dst.Ascent = ascent
		dst.Descent = descent
	}
	dst.Sources = append(dst.Sources, cfg)
}

// buildFinish renders the built-in pixel data, registers custom glyphs
// and builds the lookup tables.
func (a *FontAtlas) buildFinish() {
	assert(a.TexPixelsAlpha8 != nil, "atlas pixels not allocated")
	a.renderDefaultTexData()
	a.renderLinesTexData()

	for i := range a.CustomRects {
		r := &a.CustomRects[i]
		if r.Font == nil || r.GlyphID == 0 {
			continue
		}
		if !r.IsPacked() {
			continue
		}
		assert(r.Font.ContainerAtlas == a, "custom glyph font belongs to another atlas")
		uv0, uv1 := a.CalcCustomRectUV(r)
		r.Font.AddGlyph(nil, r.GlyphID,
			r.GlyphOffset.X, r.GlyphOffset.Y,
			r.GlyphOffset.X+float32(r.Width), r.GlyphOffset.Y+float32(r.Height),
			uv0.X, uv0.Y, uv1.X, uv1.Y, r.GlyphAdvanceX)
		r.Font.Glyphs[len(r.Font.Glyphs)-1].Colored = r.GlyphColored
	}

	for _, f := range a.Fonts {
		if !f.DirtyLookupTables {
			continue
		}
		if len(f.Glyphs) == 0 {
			Logger().Warn("imdraw: font has no glyphs", "font", f.DebugName())
			continue
		}
		f.BuildLookupTable()
	}
	a.TexReady = true
}

func (a *FontAtlas) renderDefaultTexData() {
	r := a.CustomRect(a.packIDMouseCursors)
	assert(r.IsPacked(), "cursor rect is not packed")
	w := a.TexWidth
	if a.Flags&FontAtlasFlagsNoMouseCursors == 0 {
		renderCursorSheet(a.TexPixelsAlpha8, w, r.X, r.Y)
	} else {
		assert(r.Width == 2 && r.Height == 2, "white block must be 2x2")
		off := r.X + r.Y*w
		a.TexPixelsAlpha8[off] = 0xFF
		a.TexPixelsAlpha8[off+1] = 0xFF
		a.TexPixelsAlpha8[off+w] = 0xFF
		a.TexPixelsAlpha8[off+w+1] = 0xFF
	}
	a.TexUvWhitePixel = Vec2{(float32(r.X) + 0.5) * a.TexUvScale.X, (float32(r.Y) + 0.5) * a.TexUvScale.Y}
}

// renderLinesTexData bakes one row per line width: a run of n opaque
// pixels centered between transparent ends, so bilinear sampling across
// the row gives an anti-aliased line of width n.
func (a *FontAtlas) renderLinesTexData() {
	if a.Flags&FontAtlasFlagsNoBakedLines != 0 {
		return
	}
	r := a.CustomRect(a.packIDLines)
	assert(r.IsPacked(), "line rect is not packed")
	for n := 0; n <= TexLinesWidthMax; n++ {
		y := n
		lineWidth := n
		padLeft := (r.Width - lineWidth) / 2
		padRight := r.Width - (padLeft + lineWidth)
		assert(padLeft+lineWidth+padRight == r.Width && y < r.Height, "line strip out of bounds")

		row := a.TexPixelsAlpha8[r.X+(r.Y+y)*a.TexWidth:][:r.Width]
		clear(row[:padLeft])
		for i := range lineWidth {
			row[padLeft+i] = 0xFF
		}
		clear(row[padLeft+lineWidth:])

		uv0 := Vec2{float32(r.X + padLeft - 1), float32(r.Y + y)}.MulVec(a.TexUvScale)
		uv1 := Vec2{float32(r.X + padLeft + lineWidth + 1), float32(r.Y + y + 1)}.MulVec(a.TexUvScale)
		halfV := (uv0.Y + uv1.Y) * 0.5 // Sample mid-row to avoid bleeding
		a.TexUvLines[n] = Vec4{uv0.X, halfV, uv1.X, halfV}
	}
}

// multiplyTable maps each 8-bit coverage to coverage×factor, saturated.
func multiplyTable(factor float32) [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(clampf(float32(i)*factor, 0, 255))
	}
	return t
}

func multiplyRectAlpha8(table *[256]byte, pixels []byte, x, y, w, h, stride int) {
	for j := range h {
		row := pixels[(y+j)*stride+x:][:w]
		for i, v := range row {
			row[i] = table[v]
		}
	}
}
