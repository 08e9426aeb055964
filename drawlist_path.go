package imdraw

// bezierMaxLevel caps adaptive bezier subdivision depth.
const bezierMaxLevel = 10

// PathClear discards the current path.
func (dl *DrawList) PathClear() { dl.path = dl.path[:0] }

// PathLineTo appends a point to the current path.
func (dl *DrawList) PathLineTo(pos Vec2) { dl.path = append(dl.path, pos) }

// PathLineToMergeDuplicate appends pos unless it equals the last point.
func (dl *DrawList) PathLineToMergeDuplicate(pos Vec2) {
	if n := len(dl.path); n == 0 || dl.path[n-1] != pos {
		dl.path = append(dl.path, pos)
	}
}

// PathFillConvex fills the current path and clears it.
func (dl *DrawList) PathFillConvex(col uint32) {
	dl.AddConvexPolyFilled(dl.path, col)
	dl.path = dl.path[:0]
}

// PathStroke strokes the current path and clears it.
func (dl *DrawList) PathStroke(col uint32, flags DrawFlags, thickness float32) {
	dl.AddPolyline(dl.path, col, flags, thickness)
	dl.path = dl.path[:0]
}

// Path returns the points accumulated so far. The slice is reused by the
// next path operation.
func (dl *DrawList) Path() []Vec2 { return dl.path }

// pathArcToFastEx appends samples aMin..aMax (inclusive, either direction)
// of the 48-entry unit circle table. A step of 0 picks one from the
// radius. Samples outside [0,48) wrap around.
func (dl *DrawList) pathArcToFastEx(center Vec2, radius float32, aMinSample, aMaxSample, aStep int) {
	if radius < 0.5 {
		dl.path = append(dl.path, center)
		return
	}

	if aStep <= 0 {
		aStep = arcFastSampleMax / dl.data.calcCircleAutoSegmentCount(radius)
	}
	// Never step further than a quarter circle.
	aStep = min(max(aStep, 1), arcFastSampleMax/4)

	sampleRange := aMaxSample - aMinSample
	if sampleRange < 0 {
		sampleRange = -sampleRange
	}
	aNextStep := aStep

	extraMaxSample := false
	if aStep > 1 {
		if overstep := sampleRange % aStep; overstep > 0 {
			extraMaxSample = true
			// Shorten the first step so the leftover range is split between
			// the first and last segments instead of ending on a tiny one.
			if sampleRange > 0 {
				aStep -= (aStep - overstep) / 2
			}
		}
	}

	sampleIndex := aMinSample % arcFastSampleMax
	if sampleIndex < 0 {
		sampleIndex += arcFastSampleMax
	}

	at := func(i int) Vec2 {
		s := dl.data.ArcFastVtx[i]
		return Vec2{center.X + s.X*radius, center.Y + s.Y*radius}
	}

	if aMaxSample >= aMinSample {
		for a := aMinSample; a <= aMaxSample; a, sampleIndex, aStep = a+aStep, sampleIndex+aStep, aNextStep {
			if sampleIndex >= arcFastSampleMax {
				sampleIndex -= arcFastSampleMax
			}
			dl.path = append(dl.path, at(sampleIndex))
		}
	} else {
		for a := aMinSample; a >= aMaxSample; a, sampleIndex, aStep = a-aStep, sampleIndex-aStep, aNextStep {
			if sampleIndex < 0 {
				sampleIndex += arcFastSampleMax
			}
			dl.path = append(dl.path, at(sampleIndex))
		}
	}

	if extraMaxSample {
		last := aMaxSample % arcFastSampleMax
		if last < 0 {
			last += arcFastSampleMax
		}
		dl.path = append(dl.path, at(last))
	}
}

// pathArcToN appends segments+1 evenly spaced points of an arc.
func (dl *DrawList) pathArcToN(center Vec2, radius, aMin, aMax float32, segments int) {
	if radius < 0.5 {
		dl.path = append(dl.path, center)
		return
	}
	for i := 0; i <= segments; i++ {
		a := aMin + float32(i)/float32(segments)*(aMax-aMin)
		dl.path = append(dl.path, Vec2{center.X + cosf(a)*radius, center.Y + sinf(a)*radius})
	}
}

// PathArcToFast appends an arc between two clock positions, where 0..12
// maps to a full turn starting at +X. It uses the precomputed circle table
// and no trigonometry.
func (dl *DrawList) PathArcToFast(center Vec2, radius float32, aMinOf12, aMaxOf12 int) {
	if radius < 0.5 {
		dl.path = append(dl.path, center)
		return
	}
	dl.pathArcToFastEx(center, radius, aMinOf12*arcFastSampleMax/12, aMaxOf12*arcFastSampleMax/12, 0)
}

// PathArcTo appends an arc from angle aMin to aMax (radians). With
// segments == 0 the count is chosen so the chord error stays under the
// shared maximum; small radii reuse the circle table for interior samples.
func (dl *DrawList) PathArcTo(center Vec2, radius, aMin, aMax float32, segments int) {
	if radius < 0.5 {
		dl.path = append(dl.path, center)
		return
	}
	if segments > 0 {
		dl.pathArcToN(center, radius, aMin, aMax, segments)
		return
	}

	if radius > dl.data.ArcFastRadiusCutoff {
		arcLength := absf(aMax - aMin)
		circleSegments := dl.data.calcCircleAutoSegmentCount(radius)
		arcSegments := max(int(ceilf(float32(circleSegments)*arcLength/(pi32*2))), int(2*pi32/arcLength))
		dl.pathArcToN(center, radius, aMin, aMax, arcSegments)
		return
	}

	reverse := aMax < aMin
	aMinSampleF := arcFastSampleMax * aMin / (pi32 * 2)
	aMaxSampleF := arcFastSampleMax * aMax / (pi32 * 2)

	var aMinSample, aMaxSample, aMidSamples int
	if reverse {
		aMinSample = int(floorf(aMinSampleF))
		aMaxSample = int(ceilf(aMaxSampleF))
		aMidSamples = max(aMinSample-aMaxSample, 0)
	} else {
		aMinSample = int(ceilf(aMinSampleF))
		aMaxSample = int(floorf(aMaxSampleF))
		aMidSamples = max(aMaxSample-aMinSample, 0)
	}

	aMinSegmentAngle := float32(aMinSample) * pi32 * 2 / arcFastSampleMax
	aMaxSegmentAngle := float32(aMaxSample) * pi32 * 2 / arcFastSampleMax
	emitStart := absf(aMinSegmentAngle-aMin) >= 1e-5
	emitEnd := absf(aMax-aMaxSegmentAngle) >= 1e-5

	if emitStart {
		dl.path = append(dl.path, Vec2{center.X + cosf(aMin)*radius, center.Y + sinf(aMin)*radius})
	}
	if aMidSamples > 0 {
		dl.pathArcToFastEx(center, radius, aMinSample, aMaxSample, 0)
	}
	if emitEnd {
		dl.path = append(dl.path, Vec2{center.X + cosf(aMax)*radius, center.Y + sinf(aMax)*radius})
	}
}

// PathEllipticalArcTo appends an arc of an ellipse rotated by rot radians.
func (dl *DrawList) PathEllipticalArcTo(center, radius Vec2, rot, aMin, aMax float32, segments int) {
	if segments <= 0 {
		segments = dl.data.calcCircleAutoSegmentCount(max(radius.X, radius.Y))
	}
	cosRot, sinRot := cosf(rot), sinf(rot)
	for i := 0; i <= segments; i++ {
		a := aMin + float32(i)/float32(segments)*(aMax-aMin)
		px, py := cosf(a)*radius.X, sinf(a)*radius.Y
		dl.path = append(dl.path, Vec2{
			X: px*cosRot - py*sinRot + center.X,
			Y: px*sinRot + py*cosRot + center.Y,
		})
	}
}

// bezierCubicCasteljau appends the end point once the curve is flat
// enough, otherwise splits it in two. Past bezierMaxLevel a non-flat piece
// appends nothing.
func (dl *DrawList) bezierCubicCasteljau(x1, y1, x2, y2, x3, y3, x4, y4, tol float32, level int) {
	dx, dy := x4-x1, y4-y1
	d2 := absf((x2-x4)*dy - (y2-y4)*dx)
	d3 := absf((x3-x4)*dy - (y3-y4)*dx)
	if (d2+d3)*(d2+d3) < tol*(dx*dx+dy*dy) {
		dl.path = append(dl.path, Vec2{x4, y4})
		return
	}
	if level >= bezierMaxLevel {
		return
	}
	x12, y12 := (x1+x2)*0.5, (y1+y2)*0.5
	x23, y23 := (x2+x3)*0.5, (y2+y3)*0.5
	x34, y34 := (x3+x4)*0.5, (y3+y4)*0.5
	x123, y123 := (x12+x23)*0.5, (y12+y23)*0.5
	x234, y234 := (x23+x34)*0.5, (y23+y34)*0.5
	x1234, y1234 := (x123+x234)*0.5, (y123+y234)*0.5
	dl.bezierCubicCasteljau(x1, y1, x12, y12, x123, y123, x1234, y1234, tol, level+1)
	dl.bezierCubicCasteljau(x1234, y1234, x234, y234, x34, y34, x4, y4, tol, level+1)
}

func (dl *DrawList) bezierQuadraticCasteljau(x1, y1, x2, y2, x3, y3, tol float32, level int) {
	dx, dy := x3-x1, y3-y1
	det := (x2-x3)*dy - (y2-y3)*dx
	if det*det*4 < tol*(dx*dx+dy*dy) {
		dl.path = append(dl.path, Vec2{x3, y3})
		return
	}
	if level >= bezierMaxLevel {
		return
	}
	x12, y12 := (x1+x2)*0.5, (y1+y2)*0.5
	x23, y23 := (x2+x3)*0.5, (y2+y3)*0.5
	x123, y123 := (x12+x23)*0.5, (y12+y23)*0.5
	dl.bezierQuadraticCasteljau(x1, y1, x12, y12, x123, y123, tol, level+1)
	dl.bezierQuadraticCasteljau(x123, y123, x23, y23, x3, y3, tol, level+1)
}

// PathBezierCubicCurveTo appends a cubic bezier from the last path point.
// With segments == 0 it is subdivided adaptively.
func (dl *DrawList) PathBezierCubicCurveTo(p2, p3, p4 Vec2, segments int) {
	assert(len(dl.path) > 0, "bezier curve without a start point")
	p1 := dl.path[len(dl.path)-1]
	if segments == 0 {
		tol := dl.data.CurveTessellationTol
		assert(tol > 0, "curve tessellation tolerance must be positive")
		dl.bezierCubicCasteljau(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y, p4.X, p4.Y, tol, 0)
		return
	}
	step := 1 / float32(segments)
	for i := 1; i <= segments; i++ {
		dl.path = append(dl.path, BezierCubicCalc(p1, p2, p3, p4, step*float32(i)))
	}
}

// PathBezierQuadraticCurveTo appends a quadratic bezier from the last path
// point.
func (dl *DrawList) PathBezierQuadraticCurveTo(p2, p3 Vec2, segments int) {
	assert(len(dl.path) > 0, "bezier curve without a start point")
	p1 := dl.path[len(dl.path)-1]
	if segments == 0 {
		tol := dl.data.CurveTessellationTol
		assert(tol > 0, "curve tessellation tolerance must be positive")
		dl.bezierQuadraticCasteljau(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y, tol, 0)
		return
	}
	step := 1 / float32(segments)
	for i := 1; i <= segments; i++ {
		dl.path = append(dl.path, BezierQuadraticCalc(p1, p2, p3, step*float32(i)))
	}
}

// PathRect appends a rectangle outline. Rounding is clamped so that arcs
// of adjacent rounded corners never overlap.
func (dl *DrawList) PathRect(a, b Vec2, rounding float32, flags DrawFlags) {
	if rounding >= 0.5 {
		flags = fixRectCornerFlags(flags)
		fx, fy := float32(1), float32(1)
		if flags&DrawFlagsRoundCornersTop == DrawFlagsRoundCornersTop ||
			flags&DrawFlagsRoundCornersBottom == DrawFlagsRoundCornersBottom {
			fx = 0.5
		}
		if flags&DrawFlagsRoundCornersLeft == DrawFlagsRoundCornersLeft ||
			flags&DrawFlagsRoundCornersRight == DrawFlagsRoundCornersRight {
			fy = 0.5
		}
		rounding = min(rounding, absf(b.X-a.X)*fx-1)
		rounding = min(rounding, absf(b.Y-a.Y)*fy-1)
	}

	if rounding < 0.5 || flags&drawFlagsRoundCornersMask == DrawFlagsRoundCornersNone {
		dl.PathLineTo(a)
		dl.PathLineTo(Vec2{b.X, a.Y})
		dl.PathLineTo(b)
		dl.PathLineTo(Vec2{a.X, b.Y})
		return
	}

	corner := func(f DrawFlags) float32 {
		if flags&f != 0 {
			return rounding
		}
		return 0
	}
	tl := corner(DrawFlagsRoundCornersTopLeft)
	tr := corner(DrawFlagsRoundCornersTopRight)
	br := corner(DrawFlagsRoundCornersBottomRight)
	bl := corner(DrawFlagsRoundCornersBottomLeft)
	dl.PathArcToFast(Vec2{a.X + tl, a.Y + tl}, tl, 6, 9)
	dl.PathArcToFast(Vec2{b.X - tr, a.Y + tr}, tr, 9, 12)
	dl.PathArcToFast(Vec2{b.X - br, b.Y - br}, br, 0, 3)
	dl.PathArcToFast(Vec2{a.X + bl, b.Y - bl}, bl, 3, 6)
}
