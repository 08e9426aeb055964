package imdraw

import (
	"math/bits"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

// Glyph ranges are flat lists of inclusive (first, last) codepoint pairs.
// A zero entry, if present, terminates the list.

var (
	glyphRangesDefault = []rune{
		0x0020, 0x00FF, // Basic Latin + Latin Supplement
	}
	glyphRangesGreek = []rune{
		0x0020, 0x00FF,
		0x0370, 0x03FF, // Greek and Coptic
	}
	glyphRangesKorean = []rune{
		0x0020, 0x00FF,
		0x3131, 0x3163, // Korean alphabets
		0xAC00, 0xD7A3, // Korean characters
		0xFFFD, 0xFFFD, // Invalid
	}
	glyphRangesChineseFull = []rune{
		0x0020, 0x00FF,
		0x2000, 0x206F, // General Punctuation
		0x3000, 0x30FF, // CJK Symbols and Punctuations, Hiragana, Katakana
		0x31F0, 0x31FF, // Katakana Phonetic Extensions
		0xFF00, 0xFFEF, // Half-width characters
		0xFFFD, 0xFFFD, // Invalid
		0x4E00, 0x9FAF, // CJK Ideograms
	}
	glyphRangesCyrillic = []rune{
		0x0020, 0x00FF,
		0x0400, 0x052F, // Cyrillic + Cyrillic Supplement
		0x2DE0, 0x2DFF, // Cyrillic Extended-A
		0xA640, 0xA69F, // Cyrillic Extended-B
	}
	glyphRangesThai = []rune{
		0x0020, 0x00FF,
		0x2010, 0x205E, // Punctuations
		0x0E00, 0x0E7F, // Thai
	}
	glyphRangesVietnamese = []rune{
		0x0020, 0x00FF,
		0x0102, 0x0103,
		0x0110, 0x0111,
		0x0128, 0x0129,
		0x0168, 0x0169,
		0x01A0, 0x01A1,
		0x01AF, 0x01B0,
		0x1EA0, 0x1EF9,
	}
)

// GlyphRangesDefault returns Basic Latin and Latin-1 Supplement.
func GlyphRangesDefault() []rune { return glyphRangesDefault }

// GlyphRangesGreek returns Latin plus Greek and Coptic.
func GlyphRangesGreek() []rune { return glyphRangesGreek }

// GlyphRangesKorean returns Latin plus Hangul.
func GlyphRangesKorean() []rune { return glyphRangesKorean }

// GlyphRangesChineseFull returns Latin, CJK punctuation, kana and all
// unified CJK ideographs.
func GlyphRangesChineseFull() []rune { return glyphRangesChineseFull }

// GlyphRangesCyrillic returns Latin plus Cyrillic blocks.
func GlyphRangesCyrillic() []rune { return glyphRangesCyrillic }

// GlyphRangesThai returns Latin, punctuation and Thai.
func GlyphRangesThai() []rune { return glyphRangesThai }

// GlyphRangesVietnamese returns Latin plus Vietnamese letters.
func GlyphRangesVietnamese() []rune { return glyphRangesVietnamese }

// forEachRange calls fn for each (first, last) pair until a zero entry.
func forEachRange(ranges []rune, fn func(first, last rune)) {
	for i := 0; i+1 < len(ranges); i += 2 {
		if ranges[i] == 0 || ranges[i+1] == 0 {
			return
		}
		fn(ranges[i], ranges[i+1])
	}
}

// bitVector is a fixed-size set of non-negative integers.
type bitVector []uint32

func newBitVector(size int) bitVector {
	return make(bitVector, (size+31)>>5)
}

func (b bitVector) test(n int) bool {
	return b[n>>5]&(1<<(uint(n)&31)) != 0
}

func (b bitVector) set(n int) {
	b[n>>5] |= 1 << (uint(n) & 31)
}

// appendSet appends every member in increasing order.
func (b bitVector) appendSet(out []rune) []rune {
	for i, w := range b {
		for w != 0 {
			tz := bits.TrailingZeros32(w)
			out = append(out, rune(i<<5+tz))
			w &= w - 1
		}
	}
	return out
}

// GlyphRangesBuilder accumulates codepoints and produces compact ranges.
type GlyphRangesBuilder struct {
	used bitVector
}

// NewGlyphRangesBuilder returns an empty builder covering all of Unicode.
func NewGlyphRangesBuilder() *GlyphRangesBuilder {
	return &GlyphRangesBuilder{used: newBitVector(unicode.MaxRune + 1)}
}

// Clear removes every codepoint.
func (b *GlyphRangesBuilder) Clear() { clear(b.used) }

// Has reports whether c was added.
func (b *GlyphRangesBuilder) Has(c rune) bool {
	return c >= 0 && c <= unicode.MaxRune && b.used.test(int(c))
}

// AddChar adds one codepoint.
func (b *GlyphRangesBuilder) AddChar(c rune) {
	if c >= 0 && c <= unicode.MaxRune {
		b.used.set(int(c))
	}
}

// AddText adds every codepoint of a UTF-8 string.
func (b *GlyphRangesBuilder) AddText(text string) {
	for len(text) > 0 {
		c, size := utf8.DecodeRuneInString(text)
		b.AddChar(c)
		text = text[size:]
	}
}

// AddRanges adds flat (first, last) pairs.
func (b *GlyphRangesBuilder) AddRanges(ranges []rune) {
	forEachRange(ranges, func(first, last rune) {
		for c := first; c <= last && c <= unicode.MaxRune; c++ {
			b.AddChar(c)
		}
	})
}

// AddRangeTable adds every codepoint of a Unicode table, for example
// unicode.Hiragana or unicode.Han.
func (b *GlyphRangesBuilder) AddRangeTable(tables ...*unicode.RangeTable) {
	rangetable.Visit(rangetable.Merge(tables...), b.AddChar)
}

// BuildRanges returns the accumulated codepoints as (first, last) pairs.
func (b *GlyphRangesBuilder) BuildRanges() []rune {
	var out []rune
	for n := 0; n <= unicode.MaxRune; n++ {
		if !b.used.test(n) {
			continue
		}
		first := n
		for n < unicode.MaxRune && b.used.test(n+1) {
			n++
		}
		out = append(out, rune(first), rune(n))
	}
	return out
}

// GlyphRangesFromTables returns Latin plus the given Unicode tables.
func GlyphRangesFromTables(tables ...*unicode.RangeTable) []rune {
	b := NewGlyphRangesBuilder()
	b.AddRanges(glyphRangesDefault)
	b.AddRangeTable(tables...)
	return b.BuildRanges()
}
