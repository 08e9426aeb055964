package imdraw

import (
	"strings"
	"unicode/utf8"
)

const (
	// tabSize is the number of spaces a tab advances.
	tabSize = 4

	// lookupNone marks an absent codepoint in Font.IndexLookup.
	lookupNone int32 = -1
	// lookupTab marks the synthesized tab glyph in Font.IndexLookup.
	lookupTab int32 = -2

	// codepointInvalid is the Unicode replacement character.
	codepointInvalid = 0xFFFD
)

// FontGlyph is one rasterized character of a Font.
type FontGlyph struct {
	Colored   bool    // Drawn untinted, the color's alpha still applies
	Visible   bool    // False for blanks and zero-area glyphs
	Codepoint rune    // Unicode codepoint
	AdvanceX  float32 // Horizontal distance to the next pen position
	X0, Y0    float32 // Top-left of the quad relative to the pen
	X1, Y1    float32 // Bottom-right of the quad relative to the pen
	U0, V0    float32 // Top-left texture coordinates
	U1, V1    float32 // Bottom-right texture coordinates
}

// Font holds the glyphs of one font size inside a FontAtlas, with a dense
// codepoint table for constant time lookup.
//
// A Font is filled by FontAtlas.Build and is read-only afterwards, so it
// may be read by many draw lists as long as the atlas is not rebuilt.
type Font struct {
	// IndexAdvanceX holds the advance of every codepoint up to the highest
	// one in the font. Absent codepoints hold FallbackAdvanceX.
	IndexAdvanceX    []float32
	FallbackAdvanceX float32
	FontSize         float32 // Height in pixels the font was built at

	// IndexLookup maps a codepoint to its index in Glyphs, or -1.
	IndexLookup []int32
	Glyphs      []FontGlyph

	ContainerAtlas *FontAtlas
	Sources        []*FontConfig // Configs merged into this font, first one owns it

	// FallbackChar and EllipsisChar request specific characters. -1 picks
	// the first one present from the built-in preference lists.
	FallbackChar rune
	EllipsisChar rune

	EllipsisCharCount int     // 1 for a real ellipsis glyph, 3 for dots
	EllipsisWidth     float32 // Total width of the ellipsis
	EllipsisCharStep  float32 // Distance between dots

	DirtyLookupTables   bool
	Scale               float32 // Extra scale applied to FontSize, default 1
	Ascent, Descent     float32 // Distance from the top of a line to the baseline, and below it (negative)
	MetricsTotalSurface int     // Approximate texture surface used by glyphs

	// Used4kPagesMap has one bit per 4096-codepoint page containing glyphs.
	Used4kPagesMap [256]byte

	fallbackGlyph int32 // Index into Glyphs, or lookupTab
	fallbackChar  rune  // Resolved fallback character
	ellipsisChar  rune  // Resolved ellipsis character, -1 when none
	tabGlyph      FontGlyph
}

// NewFont returns an empty font. Fonts are normally created by the atlas.
func NewFont() *Font {
	return &Font{
		FallbackChar:  -1,
		EllipsisChar:  -1,
		Scale:         1,
		fallbackGlyph: lookupNone,
		ellipsisChar:  -1,
	}
}

// ClearOutputData drops all glyphs and metrics but keeps configuration.
func (f *Font) ClearOutputData() {
	f.FontSize = 0
	f.FallbackAdvanceX = 0
	f.Glyphs = f.Glyphs[:0]
	f.IndexAdvanceX = f.IndexAdvanceX[:0]
	f.IndexLookup = f.IndexLookup[:0]
	f.fallbackGlyph = lookupNone
	f.fallbackChar = 0
	f.ellipsisChar = -1
	f.EllipsisCharCount = 0
	f.EllipsisWidth = 0
	f.EllipsisCharStep = 0
	f.ContainerAtlas = nil
	f.DirtyLookupTables = true
	f.Ascent = 0
	f.Descent = 0
	f.MetricsTotalSurface = 0
	f.Used4kPagesMap = [256]byte{}
	f.tabGlyph = FontGlyph{}
}

// IsLoaded reports whether the font belongs to a built atlas.
func (f *Font) IsLoaded() bool { return f.ContainerAtlas != nil }

// DebugName returns the name of the font's first source.
func (f *Font) DebugName() string {
	if len(f.Sources) > 0 && f.Sources[0].Name != "" {
		return f.Sources[0].Name
	}
	return "<unknown>"
}

// FallbackCodepoint returns the character drawn for missing glyphs.
func (f *Font) FallbackCodepoint() rune { return f.fallbackChar }

// EllipsisCodepoint returns the character drawn for elided text, or -1.
func (f *Font) EllipsisCodepoint() rune { return f.ellipsisChar }

// GrowIndex extends the lookup tables to newSize codepoints.
func (f *Font) GrowIndex(newSize int) {
	assert(len(f.IndexAdvanceX) == len(f.IndexLookup), "font index tables out of sync")
	for len(f.IndexLookup) < newSize {
		f.IndexAdvanceX = append(f.IndexAdvanceX, -1)
		f.IndexLookup = append(f.IndexLookup, lookupNone)
	}
}

// BuildLookupTable rebuilds the codepoint tables from Glyphs, synthesizes
// the tab glyph and resolves the fallback and ellipsis characters.
// Calling it again on unchanged glyphs yields identical tables.
func (f *Font) BuildLookupTable() {
	assert(len(f.Glyphs) > 0, "font has no glyphs")

	maxCodepoint := rune(0)
	for i := range f.Glyphs {
		maxCodepoint = max(maxCodepoint, f.Glyphs[i].Codepoint)
	}

	f.IndexAdvanceX = f.IndexAdvanceX[:0]
	f.IndexLookup = f.IndexLookup[:0]
	f.DirtyLookupTables = false
	f.Used4kPagesMap = [256]byte{}
	f.GrowIndex(int(max(maxCodepoint, '\t')) + 1)
	for i := range f.Glyphs {
		c := f.Glyphs[i].Codepoint
		f.IndexAdvanceX[c] = f.Glyphs[i].AdvanceX
		f.IndexLookup[c] = int32(i)

		page := c / 4096
		if int(page>>3) < len(f.Used4kPagesMap) {
			f.Used4kPagesMap[page>>3] |= 1 << (page & 7)
		}
	}

	// Tab is synthesized from space and kept outside Glyphs.
	if space := f.FindGlyphNoFallback(' '); space != nil {
		f.tabGlyph = *space
		f.tabGlyph.Codepoint = '\t'
		f.tabGlyph.AdvanceX *= tabSize
		f.IndexAdvanceX['\t'] = f.tabGlyph.AdvanceX
		f.IndexLookup['\t'] = lookupTab
	}

	// Blanks produce no geometry.
	f.SetGlyphVisible(' ', false)
	f.SetGlyphVisible('\t', false)

	f.fallbackChar = f.FallbackChar
	if f.FindGlyphNoFallback(f.fallbackChar) == nil {
		f.fallbackChar = f.findFirstExistingGlyph(codepointInvalid, '?', ' ')
		if f.FindGlyphNoFallback(f.fallbackChar) == nil {
			f.fallbackChar = f.Glyphs[len(f.Glyphs)-1].Codepoint
		}
	}
	f.fallbackGlyph = f.IndexLookup[f.fallbackChar]
	f.FallbackAdvanceX = f.FindGlyphNoFallback(f.fallbackChar).AdvanceX
	for i, adv := range f.IndexAdvanceX {
		if adv < 0 {
			f.IndexAdvanceX[i] = f.FallbackAdvanceX
		}
	}

	// Prefer a real ellipsis, else draw three dots.
	f.ellipsisChar = f.EllipsisChar
	if f.ellipsisChar == -1 || f.FindGlyphNoFallback(f.ellipsisChar) == nil {
		f.ellipsisChar = f.findFirstExistingGlyph(0x2026, 0x0085)
	}
	dot := f.findFirstExistingGlyph('.', 0xFF0E)
	switch {
	case f.ellipsisChar != -1:
		f.EllipsisCharCount = 1
		f.EllipsisCharStep = f.FindGlyph(f.ellipsisChar).X1
		f.EllipsisWidth = f.EllipsisCharStep
	case dot != -1:
		g := f.FindGlyph(dot)
		f.ellipsisChar = dot
		f.EllipsisCharCount = 3
		f.EllipsisCharStep = g.X1 - g.X0 + 1
		f.EllipsisWidth = f.EllipsisCharStep*3 - 1
	default:
		f.EllipsisCharCount = 0
		f.EllipsisCharStep = 0
		f.EllipsisWidth = 0
	}
}

func (f *Font) findFirstExistingGlyph(candidates ...rune) rune {
	for _, c := range candidates {
		if f.FindGlyphNoFallback(c) != nil {
			return c
		}
	}
	return -1
}

func (f *Font) glyphAt(idx int32) *FontGlyph {
	switch {
	case idx >= 0:
		return &f.Glyphs[idx]
	case idx == lookupTab:
		return &f.tabGlyph
	}
	return nil
}

// FindGlyph returns the glyph for c, or the fallback glyph when c is
// absent. It returns nil only before the lookup table is built.
func (f *Font) FindGlyph(c rune) *FontGlyph {
	if c >= 0 && int(c) < len(f.IndexLookup) {
		if g := f.glyphAt(f.IndexLookup[c]); g != nil {
			return g
		}
	}
	return f.glyphAt(f.fallbackGlyph)
}

// FindGlyphNoFallback returns the glyph for c, or nil when absent.
func (f *Font) FindGlyphNoFallback(c rune) *FontGlyph {
	if c < 0 || int(c) >= len(f.IndexLookup) {
		return nil
	}
	return f.glyphAt(f.IndexLookup[c])
}

// GetCharAdvance returns the unscaled advance of c.
func (f *Font) GetCharAdvance(c rune) float32 {
	if c >= 0 && int(c) < len(f.IndexAdvanceX) {
		return f.IndexAdvanceX[c]
	}
	return f.FallbackAdvanceX
}

// AddGlyph appends a glyph. With a source config the advance is clamped
// to the config's limits (recentering the quad), optionally pixel
// snapped, and extra spacing is added.
func (f *Font) AddGlyph(cfg *FontConfig, c rune, x0, y0, x1, y1, u0, v0, u1, v1, advanceX float32) {
	if cfg != nil {
		original := advanceX
		advanceX = clampf(advanceX, cfg.GlyphMinAdvanceX, cfg.GlyphMaxAdvanceX)
		if advanceX != original {
			off := (advanceX - original) * 0.5
			if cfg.PixelSnapH {
				off = truncf(off)
			}
			x0 += off
			x1 += off
		}
		if cfg.PixelSnapH {
			advanceX = roundf(advanceX)
		}
		advanceX += cfg.GlyphExtraSpacing.X
	}

	f.Glyphs = append(f.Glyphs, FontGlyph{
		Codepoint: c,
		Visible:   x0 != x1 && y0 != y1,
		X0:        x0, Y0: y0, X1: x1, Y1: y1,
		U0: u0, V0: v0, U1: u1, V1: v1,
		AdvanceX: advanceX,
	})

	// Rough surface estimate: padding is added once and rounded up.
	if a := f.ContainerAtlas; a != nil {
		pad := float32(a.TexGlyphPadding) + 0.99
		w := int((u1-u0)*float32(a.TexWidth) + pad)
		h := int((v1-v0)*float32(a.TexHeight) + pad)
		f.MetricsTotalSurface += w * h
	}
	f.DirtyLookupTables = true
}

// AddRemapChar makes dst render as src. An existing dst is kept unless
// overwrite is set. The lookup table must already be built.
func (f *Font) AddRemapChar(dst, src rune, overwrite bool) {
	assert(len(f.IndexLookup) > 0, "AddRemapChar needs a built font")
	size := rune(len(f.IndexLookup))
	if dst < size && f.IndexLookup[dst] != lookupNone && !overwrite {
		return
	}
	if src >= size && dst >= size {
		return
	}

	f.GrowIndex(int(dst) + 1)
	if src < size {
		f.IndexLookup[dst] = f.IndexLookup[src]
		f.IndexAdvanceX[dst] = f.IndexAdvanceX[src]
	} else {
		f.IndexLookup[dst] = lookupNone
		f.IndexAdvanceX[dst] = 1
	}
}

// SetGlyphVisible shows or hides the glyph of c if present.
func (f *Font) SetGlyphVisible(c rune, visible bool) {
	if g := f.FindGlyphNoFallback(c); g != nil {
		g.Visible = visible
	}
}

// IsGlyphRangeUnused reports whether no glyph lies in [first, last].
// The test is per 4096-codepoint page, so it may report a range as used
// when only a neighbour in the same page is present.
func (f *Font) IsGlyphRangeUnused(first, last rune) bool {
	first = max(first, 0)
	if last < first {
		return true
	}
	for page := first / 4096; page <= last/4096; page++ {
		if int(page>>3) < len(f.Used4kPagesMap) && f.Used4kPagesMap[page>>3]&(1<<(page&7)) != 0 {
			return false
		}
	}
	return true
}

// isBlank reports the characters a line may wrap on without drawing them.
func isBlank(c rune) bool {
	return c == ' ' || c == '\t' || c == 0x3000
}

// decodeRune decodes one character, mapping invalid UTF-8 to U+FFFD
// consumed one byte at a time.
func decodeRune(s string) (rune, int) {
	if c := s[0]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(s)
}

// CalcWordWrapPositionA returns the byte offset in text where a line of
// width wrapWidth (in pixels at the given scale) should end. Lines break
// after blanks or after punctuation; a word wider than the whole line is
// cut where it overflows. At least one character is always consumed.
func (f *Font) CalcWordWrapPositionA(scale float32, text string, wrapWidth float32) int {
	var lineWidth, wordWidth, blankWidth float32
	wrapWidth /= scale

	wordEnd := 0
	prevWordEnd := -1
	insideWord := true

	s := 0
	for s < len(text) {
		c, size := decodeRune(text[s:])
		next := s + size

		if c == '\n' {
			lineWidth, wordWidth, blankWidth = 0, 0, 0
			insideWord = true
			s = next
			continue
		}
		if c == '\r' {
			s = next
			continue
		}

		charWidth := f.GetCharAdvance(c)
		if isBlank(c) {
			if insideWord {
				lineWidth += blankWidth
				blankWidth = 0
				wordEnd = s
			}
			blankWidth += charWidth
			insideWord = false
		} else {
			wordWidth += charWidth
			if insideWord {
				wordEnd = next
			} else {
				prevWordEnd = wordEnd
				lineWidth += wordWidth + blankWidth
				wordWidth, blankWidth = 0, 0
			}
			// Wrapping is allowed after punctuation.
			insideWord = c != '.' && c != ',' && c != ';' && c != '!' && c != '?' && c != '"'
		}

		// Trailing blanks do not count, they are skipped at the wrap.
		if lineWidth+wordWidth > wrapWidth {
			if wordWidth < wrapWidth {
				if prevWordEnd >= 0 {
					s = prevWordEnd
				} else {
					s = wordEnd
				}
			}
			break
		}
		s = next
	}

	if s == 0 && len(text) > 0 {
		_, size := decodeRune(text)
		return size
	}
	return s
}

// nextLineStart skips the blanks and the single newline following a wrap.
func nextLineStart(text string, s int) int {
	for s < len(text) && (text[s] == ' ' || text[s] == '\t') {
		s++
	}
	if s < len(text) && text[s] == '\n' {
		s++
	}
	return s
}

// CalcTextSizeA measures text drawn at size pixels. Measuring stops before
// the character that would reach maxWidth; remaining is the byte offset
// where it stopped. wrapWidth > 0 enables word wrapping.
func (f *Font) CalcTextSizeA(size, maxWidth, wrapWidth float32, text string) (textSize Vec2, remaining int) {
	lineHeight := size
	scale := size / f.FontSize
	var lineWidth float32
	wrap := wrapWidth > 0
	wrapEOL := -1

	s := 0
	for s < len(text) {
		if wrap {
			if wrapEOL < 0 {
				wrapEOL = s + f.CalcWordWrapPositionA(scale, text[s:], wrapWidth-lineWidth)
			}
			if s >= wrapEOL {
				textSize.X = max(textSize.X, lineWidth)
				textSize.Y += lineHeight
				lineWidth = 0
				wrapEOL = -1
				s = nextLineStart(text, s)
				continue
			}
		}

		prev := s
		c, n := decodeRune(text[s:])
		s += n

		if c == '\n' {
			textSize.X = max(textSize.X, lineWidth)
			textSize.Y += lineHeight
			lineWidth = 0
			continue
		}
		if c == '\r' {
			continue
		}

		charWidth := f.GetCharAdvance(c) * scale
		if lineWidth+charWidth >= maxWidth {
			s = prev
			break
		}
		lineWidth += charWidth
	}

	textSize.X = max(textSize.X, lineWidth)
	if lineWidth > 0 || textSize.Y == 0 {
		textSize.Y += lineHeight
	}
	return textSize, s
}

// RenderChar draws a single glyph at pos. size < 0 uses the font size.
func (f *Font) RenderChar(dl *DrawList, size float32, pos Vec2, col uint32, c rune) {
	g := f.FindGlyph(c)
	if g == nil || !g.Visible {
		return
	}
	if g.Colored {
		col |= ^colorAlphaMask
	}
	scale := float32(1)
	if size >= 0 {
		scale = size / f.FontSize
	}
	x, y := truncf(pos.X), truncf(pos.Y)
	dl.PrimReserve(6, 4)
	dl.PrimRectUV(
		Vec2{x + g.X0*scale, y + g.Y0*scale},
		Vec2{x + g.X1*scale, y + g.Y1*scale},
		Vec2{g.U0, g.V0}, Vec2{g.U1, g.V1}, col)
}

// RenderText draws text at pos into dl, clipped to clipRect. Lines fully
// above the clip rectangle are skipped without emitting geometry and
// drawing stops at the first line below it. With cpuFineClip glyph quads
// are cut to the clip rectangle and their UVs adjusted.
func (f *Font) RenderText(dl *DrawList, size float32, pos Vec2, col uint32, clipRect Vec4, text string, wrapWidth float32, cpuFineClip bool) {
	x, y := truncf(pos.X), truncf(pos.Y)
	if y > clipRect.W {
		return
	}

	startX := x
	scale := size / f.FontSize
	lineHeight := f.FontSize * scale
	wrap := wrapWidth > 0

	s, end := 0, len(text)
	for y+lineHeight < clipRect.Y && s < end {
		lineEnd := indexByteFrom(text, s, '\n')
		if wrap {
			stop := end
			if lineEnd >= 0 {
				stop = lineEnd
			}
			s += f.CalcWordWrapPositionA(scale, text[s:stop], wrapWidth)
			s = nextLineStart(text, s)
		} else if lineEnd >= 0 {
			s = lineEnd + 1
		} else {
			s = end
		}
		y += lineHeight
	}

	// Large unwrapped text: stop at the last visible line so the single
	// reservation below stays proportional to what can be seen.
	if end-s > 10000 && !wrap {
		e, yEnd := s, y
		for yEnd < clipRect.W && e < end {
			if nl := indexByteFrom(text, e, '\n'); nl >= 0 {
				e = nl + 1
			} else {
				e = end
			}
			yEnd += lineHeight
		}
		end = e
	}
	if s == end {
		return
	}

	vtxMax := (end - s) * 4
	idxMax := (end - s) * 6
	idxExpected := len(dl.IdxBuffer) + idxMax
	dl.PrimReserve(idxMax, vtxMax)
	vtxWrite := dl.vtxWritePtr
	idxWrite := dl.idxWritePtr
	vtxIndex := dl.vtxCurrentIdx

	colUntinted := col | ^colorAlphaMask
	wrapEOL := -1

	for s < end {
		if wrap {
			if wrapEOL < 0 {
				wrapEOL = s + f.CalcWordWrapPositionA(scale, text[s:end], wrapWidth-(x-startX))
			}
			if s >= wrapEOL {
				x = startX
				y += lineHeight
				if y > clipRect.W {
					break
				}
				wrapEOL = -1
				s = nextLineStart(text[:end], s)
				continue
			}
		}

		c, n := decodeRune(text[s:end])
		s += n

		if c == '\n' {
			x = startX
			y += lineHeight
			if y > clipRect.W {
				break
			}
			continue
		}
		if c == '\r' {
			continue
		}

		g := f.FindGlyph(c)
		if g == nil {
			continue
		}

		charWidth := g.AdvanceX * scale
		if g.Visible {
			x1 := x + g.X0*scale
			x2 := x + g.X1*scale
			y1 := y + g.Y0*scale
			y2 := y + g.Y1*scale
			if x1 <= clipRect.Z && x2 >= clipRect.X {
				u1, v1, u2, v2 := g.U0, g.V0, g.U1, g.V1

				if cpuFineClip {
					if x1 < clipRect.X {
						u1 += (1 - (x2-clipRect.X)/(x2-x1)) * (u2 - u1)
						x1 = clipRect.X
					}
					if y1 < clipRect.Y {
						v1 += (1 - (y2-clipRect.Y)/(y2-y1)) * (v2 - v1)
						y1 = clipRect.Y
					}
					if x2 > clipRect.Z {
						u2 = u1 + ((clipRect.Z-x1)/(x2-x1))*(u2-u1)
						x2 = clipRect.Z
					}
					if y2 > clipRect.W {
						v2 = v1 + ((clipRect.W-y1)/(y2-y1))*(v2-v1)
						y2 = clipRect.W
					}
					if y1 >= y2 {
						x += charWidth
						continue
					}
				}

				gc := col
				if g.Colored {
					gc = colUntinted
				}
				vtx := dl.VtxBuffer[vtxWrite : vtxWrite+4]
				vtx[0] = Vertex{Pos: Vec2{x1, y1}, UV: Vec2{u1, v1}, Col: gc}
				vtx[1] = Vertex{Pos: Vec2{x2, y1}, UV: Vec2{u2, v1}, Col: gc}
				vtx[2] = Vertex{Pos: Vec2{x2, y2}, UV: Vec2{u2, v2}, Col: gc}
				vtx[3] = Vertex{Pos: Vec2{x1, y2}, UV: Vec2{u1, v2}, Col: gc}
				idx := dl.IdxBuffer[idxWrite : idxWrite+6]
				idx[0] = DrawIdx(vtxIndex)
				idx[1] = DrawIdx(vtxIndex + 1)
				idx[2] = DrawIdx(vtxIndex + 2)
				idx[3] = DrawIdx(vtxIndex)
				idx[4] = DrawIdx(vtxIndex + 2)
				idx[5] = DrawIdx(vtxIndex + 3)
				vtxWrite += 4
				idxWrite += 6
				vtxIndex += 4
			}
		}
		x += charWidth
	}

	// Give back what clipped glyphs and blanks did not use.
	dl.VtxBuffer = dl.VtxBuffer[:vtxWrite]
	dl.IdxBuffer = dl.IdxBuffer[:idxWrite]
	dl.CmdBuffer[len(dl.CmdBuffer)-1].ElemCount -= uint32(idxExpected - idxWrite)
	dl.vtxWritePtr = vtxWrite
	dl.idxWritePtr = idxWrite
	dl.vtxCurrentIdx = vtxIndex
}

func indexByteFrom(s string, from int, b byte) int {
	if i := strings.IndexByte(s[from:], b); i >= 0 {
		return from + i
	}
	return -1
}

// AddText draws text with the shared font at the shared font size.
func (dl *DrawList) AddText(pos Vec2, col uint32, text string) {
	dl.AddTextFont(nil, 0, pos, col, text, 0, nil)
}

// AddTextFont draws text with font at fontSize. A nil font or zero size
// use the shared defaults. cpuFineClip, when set, clips glyph quads to
// that rectangle in addition to the current clip rectangle.
func (dl *DrawList) AddTextFont(font *Font, fontSize float32, pos Vec2, col uint32, text string, wrapWidth float32, cpuFineClip *Vec4) {
	if transparent(col) || text == "" {
		return
	}
	if font == nil {
		font = dl.data.Font
	}
	if fontSize == 0 {
		fontSize = dl.data.FontSize
	}
	assert(font != nil, "no font to draw text with")
	assert(font.ContainerAtlas == nil || font.ContainerAtlas.TexID == dl.cmdHeader.TextureID,
		"font atlas texture must be the current texture, use PushTextureID")

	clip := dl.cmdHeader.ClipRect
	if cpuFineClip != nil {
		clip.X = max(clip.X, cpuFineClip.X)
		clip.Y = max(clip.Y, cpuFineClip.Y)
		clip.Z = min(clip.Z, cpuFineClip.Z)
		clip.W = min(clip.W, cpuFineClip.W)
	}
	font.RenderText(dl, fontSize, pos, col, clip, text, wrapWidth, cpuFineClip != nil)
}
