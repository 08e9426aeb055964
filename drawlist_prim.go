package imdraw

import (
	"slices"
	"unsafe"
)

// drawIdxSize is the byte size of DrawIdx.
const drawIdxSize = unsafe.Sizeof(DrawIdx(0))

// PrimReserve grows the buffers by idxCount indices and vtxCount vertices
// and accounts the indices to the current command. Exactly that many
// vertices and indices must then be written with the Prim* writers (or
// given back with PrimUnreserve) before the next reservation.
func (dl *DrawList) PrimReserve(idxCount, vtxCount int) {
	assert(idxCount >= 0 && vtxCount >= 0, "negative reservation")
	if drawIdxSize == 2 && dl.vtxCurrentIdx+uint32(vtxCount) >= 1<<16 && dl.Flags&DrawListFlagsAllowVtxOffset != 0 {
		dl.cmdHeader.VtxOffset = uint32(len(dl.VtxBuffer))
		dl.onChangedVtxOffset()
	}

	cmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
	cmd.ElemCount += uint32(idxCount)

	vtxOld := len(dl.VtxBuffer)
	dl.VtxBuffer = slices.Grow(dl.VtxBuffer, vtxCount)[:vtxOld+vtxCount]
	dl.vtxWritePtr = vtxOld

	idxOld := len(dl.IdxBuffer)
	dl.IdxBuffer = slices.Grow(dl.IdxBuffer, idxCount)[:idxOld+idxCount]
	dl.idxWritePtr = idxOld
}

// PrimUnreserve gives back the unused tail of the last reservation.
func (dl *DrawList) PrimUnreserve(idxCount, vtxCount int) {
	cmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
	cmd.ElemCount -= uint32(idxCount)
	dl.VtxBuffer = dl.VtxBuffer[:len(dl.VtxBuffer)-vtxCount]
	dl.IdxBuffer = dl.IdxBuffer[:len(dl.IdxBuffer)-idxCount]
}

// PrimWriteVtx writes one vertex at the write cursor.
func (dl *DrawList) PrimWriteVtx(pos, uv Vec2, col uint32) {
	dl.VtxBuffer[dl.vtxWritePtr] = Vertex{Pos: pos, UV: uv, Col: col}
	dl.vtxWritePtr++
	dl.vtxCurrentIdx++
}

// PrimWriteIdx writes one index at the write cursor.
func (dl *DrawList) PrimWriteIdx(idx DrawIdx) {
	dl.IdxBuffer[dl.idxWritePtr] = idx
	dl.idxWritePtr++
}

// PrimVtx writes a vertex and the index that references it.
func (dl *DrawList) PrimVtx(pos, uv Vec2, col uint32) {
	dl.PrimWriteIdx(DrawIdx(dl.vtxCurrentIdx))
	dl.PrimWriteVtx(pos, uv, col)
}

// writeQuadIdx writes the two triangles of a quad whose vertices start at
// the current vertex index.
func (dl *DrawList) writeQuadIdx() {
	i := DrawIdx(dl.vtxCurrentIdx)
	idx := dl.IdxBuffer[dl.idxWritePtr : dl.idxWritePtr+6]
	idx[0], idx[1], idx[2] = i, i+1, i+2
	idx[3], idx[4], idx[5] = i, i+2, i+3
	dl.idxWritePtr += 6
}

// PrimRect writes an axis-aligned solid quad from a (top-left) to c
// (bottom-right). Needs a reservation of 6 indices and 4 vertices.
func (dl *DrawList) PrimRect(a, c Vec2, col uint32) {
	b, d := Vec2{c.X, a.Y}, Vec2{a.X, c.Y}
	uv := dl.data.TexUvWhitePixel
	dl.writeQuadIdx()
	vtx := dl.VtxBuffer[dl.vtxWritePtr : dl.vtxWritePtr+4]
	vtx[0] = Vertex{Pos: a, UV: uv, Col: col}
	vtx[1] = Vertex{Pos: b, UV: uv, Col: col}
	vtx[2] = Vertex{Pos: c, UV: uv, Col: col}
	vtx[3] = Vertex{Pos: d, UV: uv, Col: col}
	dl.vtxWritePtr += 4
	dl.vtxCurrentIdx += 4
}

// PrimRectUV writes an axis-aligned textured quad.
func (dl *DrawList) PrimRectUV(a, c, uvA, uvC Vec2, col uint32) {
	b, d := Vec2{c.X, a.Y}, Vec2{a.X, c.Y}
	uvB, uvD := Vec2{uvC.X, uvA.Y}, Vec2{uvA.X, uvC.Y}
	dl.writeQuadIdx()
	vtx := dl.VtxBuffer[dl.vtxWritePtr : dl.vtxWritePtr+4]
	vtx[0] = Vertex{Pos: a, UV: uvA, Col: col}
	vtx[1] = Vertex{Pos: b, UV: uvB, Col: col}
	vtx[2] = Vertex{Pos: c, UV: uvC, Col: col}
	vtx[3] = Vertex{Pos: d, UV: uvD, Col: col}
	dl.vtxWritePtr += 4
	dl.vtxCurrentIdx += 4
}

// PrimQuadUV writes an arbitrary textured quad.
func (dl *DrawList) PrimQuadUV(a, b, c, d, uvA, uvB, uvC, uvD Vec2, col uint32) {
	dl.writeQuadIdx()
	vtx := dl.VtxBuffer[dl.vtxWritePtr : dl.vtxWritePtr+4]
	vtx[0] = Vertex{Pos: a, UV: uvA, Col: col}
	vtx[1] = Vertex{Pos: b, UV: uvB, Col: col}
	vtx[2] = Vertex{Pos: c, UV: uvC, Col: col}
	vtx[3] = Vertex{Pos: d, UV: uvD, Col: col}
	dl.vtxWritePtr += 4
	dl.vtxCurrentIdx += 4
}

// tempBuffer returns a scratch slice of n points owned by the list.
func (dl *DrawList) tempBuffer(n int) []Vec2 {
	if cap(dl.temp) < n {
		dl.temp = make([]Vec2, n)
	}
	return dl.temp[:n]
}

// AddPolyline strokes points with the given thickness. With anti-aliasing
// the line gets a fringe fading to transparent: thin lines use three
// vertices per point, thick lines four (solid core plus fringe), and
// integer-width lines may instead sample the baked line texture with two.
func (dl *DrawList) AddPolyline(points []Vec2, col uint32, flags DrawFlags, thickness float32) {
	pointsCount := len(points)
	if pointsCount < 2 || transparent(col) {
		return
	}

	closed := flags&DrawFlagsClosed != 0
	opaqueUV := dl.data.TexUvWhitePixel
	count := pointsCount - 1 // segments
	if closed {
		count = pointsCount
	}
	thickLine := thickness > dl.fringeScale

	if dl.Flags&DrawListFlagsAntiAliasedLines == 0 {
		dl.addPolylineNoAA(points, col, count, thickness)
		return
	}

	aaSize := dl.fringeScale
	colTrans := col &^ colorAlphaMask

	// Thicknesses below 1.0 behave like 1.0.
	thickness = max(thickness, 1)
	integerThickness := int(thickness)
	fractionalThickness := thickness - float32(integerThickness)

	// The baked texture only covers integer widths at a fringe of 1.
	useTexture := dl.Flags&DrawListFlagsAntiAliasedLinesUseTex != 0 &&
		integerThickness < TexLinesWidthMax &&
		fractionalThickness <= 0.00001 &&
		aaSize == 1 &&
		integerThickness < len(dl.data.TexUvLines)

	var idxCount, vtxCount int
	switch {
	case useTexture:
		idxCount, vtxCount = count*6, pointsCount*2
	case thickLine:
		idxCount, vtxCount = count*18, pointsCount*4
	default:
		idxCount, vtxCount = count*12, pointsCount*3
	}
	dl.PrimReserve(idxCount, vtxCount)

	// Normals first, then 2 or 4 edge points per input point.
	perPoint := 4
	if useTexture || !thickLine {
		perPoint = 2
	}
	temp := dl.tempBuffer(pointsCount * (1 + perPoint))
	normals := temp[:pointsCount]
	tempPoints := temp[pointsCount:]

	for i1 := 0; i1 < count; i1++ {
		i2 := i1 + 1
		if i2 == pointsCount {
			i2 = 0
		}
		dx, dy := normalizeOverZero(points[i2].X-points[i1].X, points[i2].Y-points[i1].Y)
		normals[i1] = Vec2{dy, -dx}
	}
	if !closed {
		normals[pointsCount-1] = normals[pointsCount-2]
	}

	idx := dl.IdxBuffer[dl.idxWritePtr : dl.idxWritePtr+idxCount]
	vtx := dl.VtxBuffer[dl.vtxWritePtr : dl.vtxWritePtr+vtxCount]
	ii := 0

	if useTexture || !thickLine {
		// The texture path draws thickness plus one pixel of fringe baked
		// into the texture; the thin path draws only the fringe.
		halfDrawSize := aaSize
		if useTexture {
			halfDrawSize = thickness*0.5 + 1
		}

		if !closed {
			last := pointsCount - 1
			tempPoints[0] = points[0].Add(normals[0].Mul(halfDrawSize))
			tempPoints[1] = points[0].Sub(normals[0].Mul(halfDrawSize))
			tempPoints[last*2+0] = points[last].Add(normals[last].Mul(halfDrawSize))
			tempPoints[last*2+1] = points[last].Sub(normals[last].Mul(halfDrawSize))
		}

		stride := uint32(3)
		if useTexture {
			stride = 2
		}
		idx1 := dl.vtxCurrentIdx
		for i1 := 0; i1 < count; i1++ {
			i2 := i1 + 1
			idx2 := idx1 + stride
			if i2 == pointsCount {
				i2 = 0
				idx2 = dl.vtxCurrentIdx
			}

			dmX, dmY := fixNormal((normals[i1].X+normals[i2].X)*0.5, (normals[i1].Y+normals[i2].Y)*0.5)
			dmX *= halfDrawSize
			dmY *= halfDrawSize

			p := points[i2]
			tempPoints[i2*2+0] = Vec2{p.X + dmX, p.Y + dmY}
			tempPoints[i2*2+1] = Vec2{p.X - dmX, p.Y - dmY}

			a1, a2 := DrawIdx(idx1), DrawIdx(idx2)
			if useTexture {
				copy(idx[ii:], []DrawIdx{
					a2, a1, a1 + 1,
					a2 + 1, a1 + 1, a2,
				})
				ii += 6
			} else {
				copy(idx[ii:], []DrawIdx{
					a2, a1, a1 + 2,
					a1 + 2, a2 + 2, a2,
					a2 + 1, a1 + 1, a1,
					a1, a2, a2 + 1,
				})
				ii += 12
			}
			idx1 = idx2
		}

		if useTexture {
			uvs := dl.data.TexUvLines[integerThickness]
			uv0, uv1 := Vec2{uvs.X, uvs.Y}, Vec2{uvs.Z, uvs.W}
			for i := 0; i < pointsCount; i++ {
				vtx[i*2+0] = Vertex{Pos: tempPoints[i*2+0], UV: uv0, Col: col}
				vtx[i*2+1] = Vertex{Pos: tempPoints[i*2+1], UV: uv1, Col: col}
			}
		} else {
			for i := 0; i < pointsCount; i++ {
				vtx[i*3+0] = Vertex{Pos: points[i], UV: opaqueUV, Col: col}
				vtx[i*3+1] = Vertex{Pos: tempPoints[i*2+0], UV: opaqueUV, Col: colTrans}
				vtx[i*3+2] = Vertex{Pos: tempPoints[i*2+1], UV: opaqueUV, Col: colTrans}
			}
		}
	} else {
		halfInner := (thickness - aaSize) * 0.5

		if !closed {
			last := pointsCount - 1
			for _, e := range [2]struct{ at, n int }{{0, 0}, {last * 4, last}} {
				p, n := points[e.n], normals[e.n]
				tempPoints[e.at+0] = p.Add(n.Mul(halfInner + aaSize))
				tempPoints[e.at+1] = p.Add(n.Mul(halfInner))
				tempPoints[e.at+2] = p.Sub(n.Mul(halfInner))
				tempPoints[e.at+3] = p.Sub(n.Mul(halfInner + aaSize))
			}
		}

		idx1 := dl.vtxCurrentIdx
		for i1 := 0; i1 < count; i1++ {
			i2 := i1 + 1
			idx2 := idx1 + 4
			if i2 == pointsCount {
				i2 = 0
				idx2 = dl.vtxCurrentIdx
			}

			dmX, dmY := fixNormal((normals[i1].X+normals[i2].X)*0.5, (normals[i1].Y+normals[i2].Y)*0.5)
			outX, outY := dmX*(halfInner+aaSize), dmY*(halfInner+aaSize)
			inX, inY := dmX*halfInner, dmY*halfInner

			p := points[i2]
			tempPoints[i2*4+0] = Vec2{p.X + outX, p.Y + outY}
			tempPoints[i2*4+1] = Vec2{p.X + inX, p.Y + inY}
			tempPoints[i2*4+2] = Vec2{p.X - inX, p.Y - inY}
			tempPoints[i2*4+3] = Vec2{p.X - outX, p.Y - outY}

			a1, a2 := DrawIdx(idx1), DrawIdx(idx2)
			copy(idx[ii:], []DrawIdx{
				a2 + 1, a1 + 1, a1 + 2,
				a1 + 2, a2 + 2, a2 + 1,
				a2 + 1, a1 + 1, a1,
				a1, a2, a2 + 1,
				a2 + 2, a1 + 2, a1 + 3,
				a1 + 3, a2 + 3, a2 + 2,
			})
			ii += 18
			idx1 = idx2
		}

		for i := 0; i < pointsCount; i++ {
			vtx[i*4+0] = Vertex{Pos: tempPoints[i*4+0], UV: opaqueUV, Col: colTrans}
			vtx[i*4+1] = Vertex{Pos: tempPoints[i*4+1], UV: opaqueUV, Col: col}
			vtx[i*4+2] = Vertex{Pos: tempPoints[i*4+2], UV: opaqueUV, Col: col}
			vtx[i*4+3] = Vertex{Pos: tempPoints[i*4+3], UV: opaqueUV, Col: colTrans}
		}
	}

	dl.idxWritePtr += idxCount
	dl.vtxWritePtr += vtxCount
	dl.vtxCurrentIdx += uint32(vtxCount)
}

// addPolylineNoAA strokes each segment as an independent quad.
func (dl *DrawList) addPolylineNoAA(points []Vec2, col uint32, count int, thickness float32) {
	pointsCount := len(points)
	uv := dl.data.TexUvWhitePixel
	dl.PrimReserve(count*6, count*4)
	for i1 := 0; i1 < count; i1++ {
		i2 := i1 + 1
		if i2 == pointsCount {
			i2 = 0
		}
		p1, p2 := points[i1], points[i2]
		dx, dy := normalizeOverZero(p2.X-p1.X, p2.Y-p1.Y)
		dx *= thickness * 0.5
		dy *= thickness * 0.5

		dl.writeQuadIdx()
		vtx := dl.VtxBuffer[dl.vtxWritePtr : dl.vtxWritePtr+4]
		vtx[0] = Vertex{Pos: Vec2{p1.X + dy, p1.Y - dx}, UV: uv, Col: col}
		vtx[1] = Vertex{Pos: Vec2{p2.X + dy, p2.Y - dx}, UV: uv, Col: col}
		vtx[2] = Vertex{Pos: Vec2{p2.X - dy, p2.Y + dx}, UV: uv, Col: col}
		vtx[3] = Vertex{Pos: Vec2{p1.X - dy, p1.Y + dx}, UV: uv, Col: col}
		dl.vtxWritePtr += 4
		dl.vtxCurrentIdx += 4
	}
}

// AddConvexPolyFilled fills a convex polygon as a triangle fan from the
// first point. With anti-aliasing every point gets an inner and an outer
// vertex and the edges a fringe quad fading to transparent.
func (dl *DrawList) AddConvexPolyFilled(points []Vec2, col uint32) {
	pointsCount := len(points)
	if pointsCount < 3 || transparent(col) {
		return
	}
	uv := dl.data.TexUvWhitePixel

	if dl.Flags&DrawListFlagsAntiAliasedFill == 0 {
		idxCount := (pointsCount - 2) * 3
		dl.PrimReserve(idxCount, pointsCount)
		vtx := dl.VtxBuffer[dl.vtxWritePtr : dl.vtxWritePtr+pointsCount]
		for i, p := range points {
			vtx[i] = Vertex{Pos: p, UV: uv, Col: col}
		}
		idx := dl.IdxBuffer[dl.idxWritePtr : dl.idxWritePtr+idxCount]
		base := DrawIdx(dl.vtxCurrentIdx)
		for i := 2; i < pointsCount; i++ {
			j := (i - 2) * 3
			idx[j], idx[j+1], idx[j+2] = base, base+DrawIdx(i-1), base+DrawIdx(i)
		}
		dl.vtxWritePtr += pointsCount
		dl.idxWritePtr += idxCount
		dl.vtxCurrentIdx += uint32(pointsCount)
		return
	}

	aaSize := dl.fringeScale
	colTrans := col &^ colorAlphaMask
	idxCount := (pointsCount-2)*3 + pointsCount*6
	vtxCount := pointsCount * 2
	dl.PrimReserve(idxCount, vtxCount)

	idx := dl.IdxBuffer[dl.idxWritePtr : dl.idxWritePtr+idxCount]
	vtx := dl.VtxBuffer[dl.vtxWritePtr : dl.vtxWritePtr+vtxCount]
	inner := DrawIdx(dl.vtxCurrentIdx)
	outer := inner + 1
	ii := 0
	for i := 2; i < pointsCount; i++ {
		idx[ii], idx[ii+1], idx[ii+2] = inner, inner+DrawIdx((i-1)<<1), inner+DrawIdx(i<<1)
		ii += 3
	}

	normals := dl.tempBuffer(pointsCount)
	for i0, i1 := pointsCount-1, 0; i1 < pointsCount; i0, i1 = i1, i1+1 {
		dx, dy := normalizeOverZero(points[i1].X-points[i0].X, points[i1].Y-points[i0].Y)
		normals[i0] = Vec2{dy, -dx}
	}

	for i0, i1 := pointsCount-1, 0; i1 < pointsCount; i0, i1 = i1, i1+1 {
		n0, n1 := normals[i0], normals[i1]
		dmX, dmY := fixNormal((n0.X+n1.X)*0.5, (n0.Y+n1.Y)*0.5)
		dmX *= aaSize * 0.5
		dmY *= aaSize * 0.5

		p := points[i1]
		vtx[i1*2+0] = Vertex{Pos: Vec2{p.X - dmX, p.Y - dmY}, UV: uv, Col: col}      // inner
		vtx[i1*2+1] = Vertex{Pos: Vec2{p.X + dmX, p.Y + dmY}, UV: uv, Col: colTrans} // outer

		e0, e1 := DrawIdx(i0<<1), DrawIdx(i1<<1)
		idx[ii+0], idx[ii+1], idx[ii+2] = inner+e1, inner+e0, outer+e0
		idx[ii+3], idx[ii+4], idx[ii+5] = outer+e0, outer+e1, inner+e1
		ii += 6
	}

	dl.vtxWritePtr += vtxCount
	dl.idxWritePtr += idxCount
	dl.vtxCurrentIdx += uint32(vtxCount)
}
