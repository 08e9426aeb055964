package imdraw

const (
	// circleAutoSegmentMin and circleAutoSegmentMax bound automatically
	// chosen circle segment counts.
	circleAutoSegmentMin = 4
	circleAutoSegmentMax = 512

	// arcFastSampleMax is the number of samples in the unit circle table.
	arcFastSampleMax = 48

	// TexLinesWidthMax is the thickest line the baked line texture covers.
	TexLinesWidthMax = 63

	// DefaultCurveTessellationTol is the default bezier flatness tolerance.
	DefaultCurveTessellationTol = 1.25
	// DefaultCircleTessellationMaxError is the default maximum distance
	// between a circle and its tessellation, in pixels.
	DefaultCircleTessellationMaxError = 0.30
)

// DrawListFlags configure geometry generation for a DrawList.
type DrawListFlags int

const (
	DrawListFlagsNone DrawListFlags = 0
	// DrawListFlagsAntiAliasedLines enables AA fringes on stroked lines.
	DrawListFlagsAntiAliasedLines DrawListFlags = 1 << 0
	// DrawListFlagsAntiAliasedLinesUseTex draws thin AA lines by sampling
	// the baked line texture.
	DrawListFlagsAntiAliasedLinesUseTex DrawListFlags = 1 << 1
	// DrawListFlagsAntiAliasedFill enables AA fringes on filled shapes.
	DrawListFlagsAntiAliasedFill DrawListFlags = 1 << 2
	// DrawListFlagsAllowVtxOffset lets a list exceed 64K vertices with
	// 16-bit indices by starting new commands at a vertex offset.
	DrawListFlagsAllowVtxOffset DrawListFlags = 1 << 3
)

// DrawFlags modify individual shape calls.
type DrawFlags int

const (
	DrawFlagsNone DrawFlags = 0
	// DrawFlagsClosed connects the last point of a stroked path to the first.
	DrawFlagsClosed                  DrawFlags = 1 << 0
	DrawFlagsRoundCornersTopLeft     DrawFlags = 1 << 4
	DrawFlagsRoundCornersTopRight    DrawFlags = 1 << 5
	DrawFlagsRoundCornersBottomLeft  DrawFlags = 1 << 6
	DrawFlagsRoundCornersBottomRight DrawFlags = 1 << 7
	// DrawFlagsRoundCornersNone disables rounding even when rounding > 0.
	DrawFlagsRoundCornersNone DrawFlags = 1 << 8

	DrawFlagsRoundCornersTop    = DrawFlagsRoundCornersTopLeft | DrawFlagsRoundCornersTopRight
	DrawFlagsRoundCornersBottom = DrawFlagsRoundCornersBottomLeft | DrawFlagsRoundCornersBottomRight
	DrawFlagsRoundCornersLeft   = DrawFlagsRoundCornersBottomLeft | DrawFlagsRoundCornersTopLeft
	DrawFlagsRoundCornersRight  = DrawFlagsRoundCornersBottomRight | DrawFlagsRoundCornersTopRight
	DrawFlagsRoundCornersAll    = DrawFlagsRoundCornersTopLeft | DrawFlagsRoundCornersTopRight |
		DrawFlagsRoundCornersBottomLeft | DrawFlagsRoundCornersBottomRight

	drawFlagsRoundCornersMask = DrawFlagsRoundCornersAll | DrawFlagsRoundCornersNone
)

// fixRectCornerFlags defaults to all corners when no corner is selected.
func fixRectCornerFlags(flags DrawFlags) DrawFlags {
	assert(flags&0x0E == 0, "corner flags must use DrawFlagsRoundCorners* values")
	if flags&drawFlagsRoundCornersMask == 0 {
		flags |= DrawFlagsRoundCornersAll
	}
	return flags
}

// DrawListSharedData holds tessellation tables and atlas-derived values
// shared by every DrawList of one context. It is read-only while lists are
// being built.
type DrawListSharedData struct {
	TexUvWhitePixel Vec2   // UV of a white pixel in the font atlas
	TexUvLines      []Vec4 // UVs of baked AA lines, indexed by width
	Font            *Font  // Current font used by AddText
	FontSize        float32
	// CurveTessellationTol is the bezier flatness tolerance. Lower values
	// produce more segments.
	CurveTessellationTol float32
	// CircleSegmentMaxError is the maximum chord error for auto-tessellated
	// circles. Set through SetCircleTessellationMaxError.
	CircleSegmentMaxError float32
	ClipRectFullscreen    Vec4
	InitialFlags          DrawListFlags

	ArcFastVtx          [arcFastSampleMax]Vec2
	ArcFastRadiusCutoff float32
	CircleSegmentCounts [64]uint16
}

// NewDrawListSharedData returns shared data with default tolerances and a
// very large fullscreen clip rectangle.
func NewDrawListSharedData() *DrawListSharedData {
	d := &DrawListSharedData{
		CurveTessellationTol: DefaultCurveTessellationTol,
		ClipRectFullscreen:   Vec4{-8192, -8192, 8192, 8192},
		InitialFlags:         DrawListFlagsAntiAliasedLines | DrawListFlagsAntiAliasedFill,
	}
	for i := range d.ArcFastVtx {
		a := float32(i) * 2 * pi32 / arcFastSampleMax
		d.ArcFastVtx[i] = Vec2{X: cosf(a), Y: sinf(a)}
	}
	d.SetCircleTessellationMaxError(DefaultCircleTessellationMaxError)
	return d
}

// circleAutoSegmentCalc returns the even segment count keeping the chord
// error of a circle of the given radius under maxError.
func circleAutoSegmentCalc(radius, maxError float32) int {
	n := int(ceilf(pi32 / acosf(1-min(maxError, radius)/radius)))
	n = (n + 1) / 2 * 2
	return min(max(n, circleAutoSegmentMin), circleAutoSegmentMax)
}

// circleAutoSegmentCalcR is the inverse of circleAutoSegmentCalc: the
// largest radius n segments can draw within maxError.
func circleAutoSegmentCalcR(n int, maxError float32) float32 {
	return maxError / (1 - cosf(pi32/max(float32(n), pi32)))
}

// SetCircleTessellationMaxError rebuilds the per-radius segment table.
func (d *DrawListSharedData) SetCircleTessellationMaxError(maxError float32) {
	if d.CircleSegmentMaxError == maxError {
		return
	}
	assert(maxError > 0, "circle tessellation max error must be positive")
	d.CircleSegmentMaxError = maxError
	for i := range d.CircleSegmentCounts {
		if i == 0 {
			d.CircleSegmentCounts[i] = arcFastSampleMax
			continue
		}
		d.CircleSegmentCounts[i] = uint16(circleAutoSegmentCalc(float32(i), maxError))
	}
	d.ArcFastRadiusCutoff = circleAutoSegmentCalcR(arcFastSampleMax, maxError)
}

// calcCircleAutoSegmentCount looks up the segment count for radius,
// computing it for radii past the table.
func (d *DrawListSharedData) calcCircleAutoSegmentCount(radius float32) int {
	idx := int(radius + 0.999999)
	if idx >= 0 && idx < len(d.CircleSegmentCounts) {
		return int(d.CircleSegmentCounts[idx])
	}
	return circleAutoSegmentCalc(radius, d.CircleSegmentMaxError)
}
