package imdraw

// AddLine draws a line between two points.
// Points are offset by half a pixel so 1px lines land on pixel centers.
func (dl *DrawList) AddLine(p1, p2 Vec2, col uint32, thickness float32) {
	if transparent(col) {
		return
	}
	dl.PathLineTo(p1.Add(Vec2{0.5, 0.5}))
	dl.PathLineTo(p2.Add(Vec2{0.5, 0.5}))
	dl.PathStroke(col, DrawFlagsNone, thickness)
}

// AddRect draws a rectangle outline.
func (dl *DrawList) AddRect(pMin, pMax Vec2, col uint32, rounding float32, flags DrawFlags, thickness float32) {
	if transparent(col) {
		return
	}
	if dl.Flags&DrawListFlagsAntiAliasedLines != 0 {
		dl.PathRect(pMin.Add(Vec2{0.50, 0.50}), pMax.Sub(Vec2{0.50, 0.50}), rounding, flags)
	} else {
		// Better looking lower-right corner and rounded non-AA shapes.
		dl.PathRect(pMin.Add(Vec2{0.50, 0.50}), pMax.Sub(Vec2{0.49, 0.49}), rounding, flags)
	}
	dl.PathStroke(col, DrawFlagsClosed, thickness)
}

// AddRectFilled draws a filled rectangle. Unrounded rectangles take a
// direct 4-vertex path.
func (dl *DrawList) AddRectFilled(pMin, pMax Vec2, col uint32, rounding float32, flags DrawFlags) {
	if transparent(col) {
		return
	}
	if rounding < 0.5 || flags&drawFlagsRoundCornersMask == DrawFlagsRoundCornersNone {
		dl.PrimReserve(6, 4)
		dl.PrimRect(pMin, pMax, col)
		return
	}
	dl.PathRect(pMin, pMax, rounding, flags)
	dl.PathFillConvex(col)
}

// AddRectFilledMultiColor draws a rectangle with a color per corner.
func (dl *DrawList) AddRectFilledMultiColor(pMin, pMax Vec2, colUpperLeft, colUpperRight, colBottomRight, colBottomLeft uint32) {
	if transparent(colUpperLeft | colUpperRight | colBottomRight | colBottomLeft) {
		return
	}
	uv := dl.data.TexUvWhitePixel
	dl.PrimReserve(6, 4)
	dl.writeQuadIdx()
	dl.PrimWriteVtx(pMin, uv, colUpperLeft)
	dl.PrimWriteVtx(Vec2{pMax.X, pMin.Y}, uv, colUpperRight)
	dl.PrimWriteVtx(pMax, uv, colBottomRight)
	dl.PrimWriteVtx(Vec2{pMin.X, pMax.Y}, uv, colBottomLeft)
}

// AddQuad draws a quadrilateral outline.
func (dl *DrawList) AddQuad(p1, p2, p3, p4 Vec2, col uint32, thickness float32) {
	if transparent(col) {
		return
	}
	dl.path = append(dl.path, p1, p2, p3, p4)
	dl.PathStroke(col, DrawFlagsClosed, thickness)
}

// AddQuadFilled draws a filled convex quadrilateral.
func (dl *DrawList) AddQuadFilled(p1, p2, p3, p4 Vec2, col uint32) {
	if transparent(col) {
		return
	}
	dl.path = append(dl.path, p1, p2, p3, p4)
	dl.PathFillConvex(col)
}

// AddTriangle draws a triangle outline.
func (dl *DrawList) AddTriangle(p1, p2, p3 Vec2, col uint32, thickness float32) {
	if transparent(col) {
		return
	}
	dl.path = append(dl.path, p1, p2, p3)
	dl.PathStroke(col, DrawFlagsClosed, thickness)
}

// AddTriangleFilled draws a filled triangle.
func (dl *DrawList) AddTriangleFilled(p1, p2, p3 Vec2, col uint32) {
	if transparent(col) {
		return
	}
	dl.path = append(dl.path, p1, p2, p3)
	dl.PathFillConvex(col)
}

// AddCircle draws a circle outline. segments <= 0 picks a count from the
// radius.
func (dl *DrawList) AddCircle(center Vec2, radius float32, col uint32, segments int, thickness float32) {
	if transparent(col) || radius < 0.5 {
		return
	}
	dl.circlePath(center, radius-0.5, segments)
	dl.PathStroke(col, DrawFlagsClosed, thickness)
}

// AddCircleFilled draws a filled circle.
func (dl *DrawList) AddCircleFilled(center Vec2, radius float32, col uint32, segments int) {
	if transparent(col) || radius < 0.5 {
		return
	}
	dl.circlePath(center, radius, segments)
	dl.PathFillConvex(col)
}

// circlePath appends a closed circle without repeating the first point.
func (dl *DrawList) circlePath(center Vec2, radius float32, segments int) {
	if segments <= 0 {
		dl.pathArcToFastEx(center, radius, 0, arcFastSampleMax, 0)
		dl.path = dl.path[:len(dl.path)-1]
		return
	}
	segments = min(max(segments, 3), circleAutoSegmentMax)
	aMax := pi32 * 2 * (float32(segments) - 1) / float32(segments)
	dl.PathArcTo(center, radius, 0, aMax, segments-1)
}

// AddNgon draws a regular polygon outline.
func (dl *DrawList) AddNgon(center Vec2, radius float32, col uint32, segments int, thickness float32) {
	if transparent(col) || segments <= 2 {
		return
	}
	aMax := pi32 * 2 * (float32(segments) - 1) / float32(segments)
	dl.PathArcTo(center, radius-0.5, 0, aMax, segments-1)
	dl.PathStroke(col, DrawFlagsClosed, thickness)
}

// AddNgonFilled draws a filled regular polygon.
func (dl *DrawList) AddNgonFilled(center Vec2, radius float32, col uint32, segments int) {
	if transparent(col) || segments <= 2 {
		return
	}
	aMax := pi32 * 2 * (float32(segments) - 1) / float32(segments)
	dl.PathArcTo(center, radius, 0, aMax, segments-1)
	dl.PathFillConvex(col)
}

// AddEllipse draws an ellipse outline rotated by rot radians.
func (dl *DrawList) AddEllipse(center, radius Vec2, col uint32, rot float32, segments int, thickness float32) {
	if transparent(col) {
		return
	}
	dl.ellipsePath(center, radius, rot, segments)
	dl.PathStroke(col, DrawFlagsClosed, thickness)
}

// AddEllipseFilled draws a filled ellipse rotated by rot radians.
func (dl *DrawList) AddEllipseFilled(center, radius Vec2, col uint32, rot float32, segments int) {
	if transparent(col) {
		return
	}
	dl.ellipsePath(center, radius, rot, segments)
	dl.PathFillConvex(col)
}

func (dl *DrawList) ellipsePath(center, radius Vec2, rot float32, segments int) {
	if segments <= 0 {
		segments = dl.data.calcCircleAutoSegmentCount(max(radius.X, radius.Y))
	}
	aMax := pi32 * 2 * (float32(segments) - 1) / float32(segments)
	dl.PathEllipticalArcTo(center, radius, rot, 0, aMax, segments-1)
}

// AddBezierCubic draws a cubic bezier curve. segments == 0 tessellates
// adaptively.
func (dl *DrawList) AddBezierCubic(p1, p2, p3, p4 Vec2, col uint32, thickness float32, segments int) {
	if transparent(col) {
		return
	}
	dl.PathLineTo(p1)
	dl.PathBezierCubicCurveTo(p2, p3, p4, segments)
	dl.PathStroke(col, DrawFlagsNone, thickness)
}

// AddBezierQuadratic draws a quadratic bezier curve.
func (dl *DrawList) AddBezierQuadratic(p1, p2, p3 Vec2, col uint32, thickness float32, segments int) {
	if transparent(col) {
		return
	}
	dl.PathLineTo(p1)
	dl.PathBezierQuadraticCurveTo(p2, p3, segments)
	dl.PathStroke(col, DrawFlagsNone, thickness)
}

// AddImage draws a textured rectangle, switching texture for its duration.
func (dl *DrawList) AddImage(tex TextureID, pMin, pMax, uvMin, uvMax Vec2, col uint32) {
	if transparent(col) {
		return
	}
	push := tex != dl.cmdHeader.TextureID
	if push {
		dl.PushTextureID(tex)
	}
	dl.PrimReserve(6, 4)
	dl.PrimRectUV(pMin, pMax, uvMin, uvMax, col)
	if push {
		dl.PopTextureID()
	}
}

// AddImageQuad draws a textured quadrilateral.
func (dl *DrawList) AddImageQuad(tex TextureID, p1, p2, p3, p4, uv1, uv2, uv3, uv4 Vec2, col uint32) {
	if transparent(col) {
		return
	}
	push := tex != dl.cmdHeader.TextureID
	if push {
		dl.PushTextureID(tex)
	}
	dl.PrimReserve(6, 4)
	dl.PrimQuadUV(p1, p2, p3, p4, uv1, uv2, uv3, uv4, col)
	if push {
		dl.PopTextureID()
	}
}

// AddImageRounded draws a textured rectangle with rounded corners. UVs are
// mapped linearly over the rectangle and clamped to the given range.
func (dl *DrawList) AddImageRounded(tex TextureID, pMin, pMax, uvMin, uvMax Vec2, col uint32, rounding float32, flags DrawFlags) {
	if transparent(col) {
		return
	}
	flags = fixRectCornerFlags(flags)
	if rounding < 0.5 || flags&drawFlagsRoundCornersMask == DrawFlagsRoundCornersNone {
		dl.AddImage(tex, pMin, pMax, uvMin, uvMax, col)
		return
	}

	push := tex != dl.cmdHeader.TextureID
	if push {
		dl.PushTextureID(tex)
	}
	start := len(dl.VtxBuffer)
	dl.PathRect(pMin, pMax, rounding, flags)
	dl.PathFillConvex(col)
	ShadeVertsLinearUV(dl, start, len(dl.VtxBuffer), pMin, pMax, uvMin, uvMax, true)
	if push {
		dl.PopTextureID()
	}
}
