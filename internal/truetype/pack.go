package truetype

// PackedChar locates a rendered glyph inside the atlas and carries its
// placement relative to the pen position.
type PackedChar struct {
	X0, Y0, X1, Y1 int // texture rectangle in pixels

	XOff, YOff   float32
	XOff2, YOff2 float32
	XAdvance     float32
}

// Quad is a screen-space glyph rectangle with texture coordinates.
type Quad struct {
	X0, Y0, S0, T0 float32
	X1, Y1, S1, T1 float32
}

// OversampleShift returns the sub-pixel offset that recentres a glyph
// rendered with the given oversampling factor.
func OversampleShift(oversample int) float32 {
	if oversample == 0 {
		return 0
	}
	// The prefilter shifts the bitmap right by (oversample-1)/2 pixels of
	// the oversampled grid.
	return -float32(oversample-1) / (2 * float32(oversample))
}

// PackedQuad returns the quad for pc drawn with its pen at (x, y) in a
// texture of the given size.
func PackedQuad(pc PackedChar, texWidth, texHeight int, x, y float32) Quad {
	ipw := 1 / float32(texWidth)
	iph := 1 / float32(texHeight)
	return Quad{
		X0: x + pc.XOff, Y0: y + pc.YOff,
		X1: x + pc.XOff2, Y1: y + pc.YOff2,
		S0: float32(pc.X0) * ipw, T0: float32(pc.Y0) * iph,
		S1: float32(pc.X1) * ipw, T1: float32(pc.Y1) * iph,
	}
}

// RenderPacked renders g into the packed rectangle (x, y, w, h) of an atlas
// buffer, applies the oversampling prefilters and returns the glyph's
// placement. w and h include padding; the glyph lands pad pixels in.
func (f *Font) RenderPacked(pixels []byte, stride int, x, y, w, h, pad int, g GlyphIndex, scale float32, overH, overV int) PackedChar {
	x += pad
	y += pad
	w -= pad
	h -= pad

	sx := scale * float32(overH)
	sy := scale * float32(overV)
	segs := f.outline(g)
	x0, y0, _, _ := bitmapBox(segs, sx, sy)

	dst := pixels[x+y*stride:]
	f.RenderGlyph(dst, stride, w-overH+1, h-overV+1, g, sx, sy)
	if overH > 1 {
		HPrefilter(dst, w, h, stride, overH)
	}
	if overV > 1 {
		VPrefilter(dst, w, h, stride, overV)
	}

	recipH := 1 / float32(overH)
	recipV := 1 / float32(overV)
	subX := OversampleShift(overH)
	subY := OversampleShift(overV)
	return PackedChar{
		X0: x, Y0: y, X1: x + w, Y1: y + h,
		XAdvance: scale * float32(f.HMetrics(g)),
		XOff:     float32(x0)*recipH + subX,
		YOff:     float32(y0)*recipV + subY,
		XOff2:    float32(x0+w)*recipH + subX,
		YOff2:    float32(y0+h)*recipV + subY,
	}
}

// HPrefilter box-filters each row of a w×h region with a kernel of width
// kernel. The region must have kernel-1 blank columns on its right.
func HPrefilter(pixels []byte, w, h, stride, kernel int) {
	var buffer [MaxOversample]byte
	safeW := w - kernel
	for j := 0; j < h; j++ {
		row := pixels[j*stride:]
		buffer = [MaxOversample]byte{}
		total := 0
		i := 0
		for ; i <= safeW; i++ {
			total += int(row[i]) - int(buffer[i&overMask])
			buffer[(i+kernel)&overMask] = row[i]
			row[i] = byte(total / kernel)
		}
		for ; i < w; i++ {
			total -= int(buffer[i&overMask])
			row[i] = byte(total / kernel)
		}
	}
}

// VPrefilter is HPrefilter applied to columns.
func VPrefilter(pixels []byte, w, h, stride, kernel int) {
	var buffer [MaxOversample]byte
	safeH := h - kernel
	for j := 0; j < w; j++ {
		col := pixels[j:]
		buffer = [MaxOversample]byte{}
		total := 0
		i := 0
		for ; i <= safeH; i++ {
			total += int(col[i*stride]) - int(buffer[i&overMask])
			buffer[(i+kernel)&overMask] = col[i*stride]
			col[i*stride] = byte(total / kernel)
		}
		for ; i < h; i++ {
			total -= int(buffer[i&overMask])
			col[i*stride] = byte(total / kernel)
		}
	}
}
