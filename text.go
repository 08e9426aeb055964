package imdraw

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextWrapMode specifies how text should be wrapped.
type TextWrapMode int

const (
	// WrapModeWord wraps after blanks and punctuation (default for Latin text).
	WrapModeWord TextWrapMode = iota
	// WrapModeChar wraps at any character (for CJK or dense text).
	WrapModeChar
	// WrapModeAuto picks WrapModeChar when the text contains CJK.
	WrapModeAuto
)

// WrapText splits text drawn with f at size pixels into lines no wider
// than maxWidth. Explicit newlines always break.
func WrapText(f *Font, size float32, text string, maxWidth float32, mode TextWrapMode) []string {
	if maxWidth <= 0 {
		return strings.Split(text, "\n")
	}

	// Choose wrap mode if auto
	if mode == WrapModeAuto {
		if containsCJK(text) {
			mode = WrapModeChar
		} else {
			mode = WrapModeWord
		}
	}

	var lines []string
	for i, para := range strings.Split(text, "\n") {
		if para == "" {
			if i > 0 || len(text) > 0 {
				lines = append(lines, "")
			}
			continue
		}
		switch mode {
		case WrapModeChar:
			lines = wrapByChar(f, size, para, maxWidth, lines)
		default:
			lines = wrapByWord(f, size, para, maxWidth, lines)
		}
	}
	return lines
}

// wrapByWord breaks a single paragraph with the font's word-wrap scan.
func wrapByWord(f *Font, size float32, text string, maxWidth float32, lines []string) []string {
	scale := size / f.FontSize
	s := 0
	for s < len(text) {
		e := s + f.CalcWordWrapPositionA(scale, text[s:], maxWidth)
		lines = append(lines, strings.TrimRight(text[s:e], " \t"))
		s = nextLineStart(text, e)
	}
	return lines
}

// wrapByChar breaks a single paragraph before the first character that
// overflows, keeping at least one character per line.
func wrapByChar(f *Font, size float32, text string, maxWidth float32, lines []string) []string {
	scale := size / f.FontSize
	start := 0
	var width float32
	for i, r := range text {
		w := f.GetCharAdvance(r) * scale
		if width+w > maxWidth && i > start {
			lines = append(lines, text[start:i])
			start = i
			width = 0
		}
		width += w
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// containsCJK returns true if the string contains any CJK characters.
func containsCJK(text string) bool {
	for _, r := range text {
		if isCJKRune(r) {
			return true
		}
	}
	return false
}

// isCJKRune returns true if the rune is a CJK character.
func isCJKRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.In(r, unicode.Bopomofo) ||
		unicode.In(r, unicode.Yi)
}

// ellipsisText returns the ellipsis the font draws, as a string.
func (f *Font) ellipsisText() string {
	c := f.EllipsisCodepoint()
	if c < 0 || f.EllipsisCharCount == 0 {
		return ""
	}
	return strings.Repeat(string(c), f.EllipsisCharCount)
}

// TruncateText shortens text to fit within maxWidth, ending it with the
// font's ellipsis when it had to be cut.
func TruncateText(f *Font, size float32, text string, maxWidth float32) string {
	return TruncateTextWithSuffix(f, size, text, maxWidth, f.ellipsisText())
}

// TruncateTextWithSuffix shortens text and adds a custom suffix.
func TruncateTextWithSuffix(f *Font, size float32, text string, maxWidth float32, suffix string) string {
	full, _ := f.CalcTextSizeA(size, math.MaxFloat32, 0, text)
	if full.X <= maxWidth {
		return text
	}
	sfx, _ := f.CalcTextSizeA(size, math.MaxFloat32, 0, suffix)
	_, end := f.CalcTextSizeA(size, max(maxWidth-sfx.X, 0), 0, text)
	return strings.TrimRight(text[:end], " \t") + suffix
}

// RenderTextEllipsis draws text in the box posMin..posMax with the shared
// font. Text wider than the box is cut and followed by the font's
// ellipsis, which may extend up to ellipsisMaxX. Glyphs are clipped at
// clipMaxX.
func (dl *DrawList) RenderTextEllipsis(posMin, posMax Vec2, clipMaxX, ellipsisMaxX float32, col uint32, text string) {
	font := dl.data.Font
	fontSize := dl.data.FontSize
	textSize, _ := font.CalcTextSizeA(fontSize, math.MaxFloat32, 0, text)
	clip := Vec4{posMin.X, posMin.Y, clipMaxX, posMax.Y}

	if textSize.X <= posMax.X-posMin.X {
		dl.AddTextFont(font, fontSize, posMin, col, text, 0, &clip)
		return
	}

	scale := fontSize / font.FontSize
	ellipsisWidth := font.EllipsisWidth * scale

	// The ellipsis may use the space between posMax.X and ellipsisMaxX.
	avail := max(max(posMax.X, ellipsisMaxX)-ellipsisWidth-posMin.X, 1)
	clipped, end := font.CalcTextSizeA(fontSize, avail, 0, text)
	if end == 0 && len(text) > 0 {
		// Always show one character.
		_, end = utf8.DecodeRuneInString(text)
		clipped, _ = font.CalcTextSizeA(fontSize, math.MaxFloat32, 0, text[:end])
	}
	for end > 0 && (text[end-1] == ' ' || text[end-1] == '\t') {
		end--
		blank, _ := font.CalcTextSizeA(fontSize, math.MaxFloat32, 0, text[end:end+1])
		clipped.X -= blank.X
	}

	dl.AddTextFont(font, fontSize, posMin, col, text[:end], 0, &clip)

	pos := Vec2{truncf(posMin.X + clipped.X), truncf(posMin.Y)}
	if pos.X+ellipsisWidth > ellipsisMaxX {
		return
	}
	for range font.EllipsisCharCount {
		font.RenderChar(dl, fontSize, pos, col, font.EllipsisCodepoint())
		pos.X += font.EllipsisCharStep * scale
	}
}
