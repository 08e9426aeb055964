package imdraw

// ShadeVertsLinearColorGradientKeepAlpha recolors vertices [start, end) of
// dl along the gradient from p0 (col0) to p1 (col1), keeping each vertex's
// alpha.
func ShadeVertsLinearColorGradientKeepAlpha(dl *DrawList, start, end int, p0, p1 Vec2, col0, col1 uint32) {
	extent := p1.Sub(p0)
	// A degenerate gradient paints col0 everywhere.
	var invLength2 float32
	if l2 := lengthSqr(extent); l2 > 0 {
		invLength2 = 1 / l2
	}

	r0, g0, b0, _ := UnpackRGBA(col0)
	r1, g1, b1, _ := UnpackRGBA(col1)
	dr := int(r1) - int(r0)
	dg := int(g1) - int(g0)
	db := int(b1) - int(b0)

	for i := start; i < end; i++ {
		v := &dl.VtxBuffer[i]
		d := v.Pos.Sub(p0)
		t := clampf((d.X*extent.X+d.Y*extent.Y)*invLength2, 0, 1)
		r := int(float32(r0) + float32(dr)*t)
		g := int(float32(g0) + float32(dg)*t)
		b := int(float32(b0) + float32(db)*t)
		v.Col = uint32(r) | uint32(g)<<8 | uint32(b)<<16 | v.Col&colorAlphaMask
	}
}

// ShadeVertsLinearUV maps the rectangle a..b onto uvA..uvB and assigns the
// resulting UV to vertices [start, end) by position.
func ShadeVertsLinearUV(dl *DrawList, start, end int, a, b, uvA, uvB Vec2, clamp bool) {
	size := b.Sub(a)
	uvSize := uvB.Sub(uvA)
	var scale Vec2
	if size.X != 0 {
		scale.X = uvSize.X / size.X
	}
	if size.Y != 0 {
		scale.Y = uvSize.Y / size.Y
	}

	lo, hi := minVec2(uvA, uvB), maxVec2(uvA, uvB)
	for i := start; i < end; i++ {
		v := &dl.VtxBuffer[i]
		uv := uvA.Add(v.Pos.Sub(a).MulVec(scale))
		if clamp {
			uv = Vec2{clampf(uv.X, lo.X, hi.X), clampf(uv.Y, lo.Y, hi.Y)}
		}
		v.UV = uv
	}
}

// ShadeVertsTransformPos rotates vertices [start, end) around pivotIn and
// moves the pivot to pivotOut.
func ShadeVertsTransformPos(dl *DrawList, start, end int, pivotIn Vec2, cosA, sinA float32, pivotOut Vec2) {
	for i := start; i < end; i++ {
		v := &dl.VtxBuffer[i]
		p := v.Pos.Sub(pivotIn)
		v.Pos = Vec2{p.X*cosA - p.Y*sinA + pivotOut.X, p.X*sinA + p.Y*cosA + pivotOut.Y}
	}
}
