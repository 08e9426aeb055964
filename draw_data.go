package imdraw

// DrawData is the render payload of a frame: the draw lists to render in
// order, plus display metadata. It borrows the lists; they stay owned by
// whoever created them and must not change until rendering is done.
type DrawData struct {
	Valid            bool        // Set once the frame is fully assembled
	CmdLists         []*DrawList // Lists to render, back to front
	TotalIdxCount    int         // Sum of all IdxBuffer lengths
	TotalVtxCount    int         // Sum of all VtxBuffer lengths
	DisplayPos       Vec2        // Top-left of the rendered area
	DisplaySize      Vec2        // Size of the rendered area
	FramebufferScale Vec2        // Framebuffer pixels per display unit
}

// Clear empties the payload but keeps the list slice's capacity.
func (d *DrawData) Clear() {
	d.Valid = false
	clear(d.CmdLists)
	d.CmdLists = d.CmdLists[:0]
	d.TotalIdxCount = 0
	d.TotalVtxCount = 0
	d.DisplayPos = Vec2{}
	d.DisplaySize = Vec2{}
	d.FramebufferScale = Vec2{}
}

// AddDrawList appends dl after trimming its unused trailing commands.
// Lists without geometry or callbacks are skipped.
//
// It panics when the list's write cursors disagree with its buffers (a
// PrimReserve that was not fully written) or, with 16-bit indices, when a
// command would address more than 64K vertices.
func (d *DrawData) AddDrawList(dl *DrawList) {
	dl.PopUnusedDrawCmd()
	if len(dl.CmdBuffer) == 0 {
		return
	}

	assert(len(dl.VtxBuffer) == 0 || dl.vtxWritePtr == len(dl.VtxBuffer), "vertex write cursor does not match VtxBuffer, check PrimReserve usage")
	assert(len(dl.IdxBuffer) == 0 || dl.idxWritePtr == len(dl.IdxBuffer), "index write cursor does not match IdxBuffer, check PrimReserve usage")
	if dl.Flags&DrawListFlagsAllowVtxOffset == 0 {
		assert(int(dl.vtxCurrentIdx) == len(dl.VtxBuffer), "vertex index does not match VtxBuffer, check PrimReserve usage")
	}
	if drawIdxSize == 2 {
		assert(dl.vtxCurrentIdx < 1<<16, "too many vertices for 16-bit indices, enable DrawListFlagsAllowVtxOffset or build with imdraw_idx32")
	}

	d.CmdLists = append(d.CmdLists, dl)
	d.TotalVtxCount += len(dl.VtxBuffer)
	d.TotalIdxCount += len(dl.IdxBuffer)
}

// DeIndexAllBuffers expands every list to one vertex per index and drops
// the index buffers, for renderers without indexed drawing. Each command's
// IdxOffset then addresses its first vertex and VtxOffset becomes 0. This
// is expensive and should only be used for such renderers.
func (d *DrawData) DeIndexAllBuffers() {
	d.TotalVtxCount = 0
	d.TotalIdxCount = 0
	for _, dl := range d.CmdLists {
		if len(dl.IdxBuffer) == 0 {
			d.TotalVtxCount += len(dl.VtxBuffer)
			continue
		}
		expanded := make([]Vertex, len(dl.IdxBuffer))
		for c := range dl.CmdBuffer {
			cmd := &dl.CmdBuffer[c]
			for j := cmd.IdxOffset; j < cmd.IdxOffset+cmd.ElemCount; j++ {
				expanded[j] = dl.VtxBuffer[cmd.VtxOffset+uint32(dl.IdxBuffer[j])]
			}
			cmd.VtxOffset = 0
		}
		dl.VtxBuffer = expanded
		dl.IdxBuffer = dl.IdxBuffer[:0]
		dl.vtxWritePtr = len(dl.VtxBuffer)
		dl.idxWritePtr = 0
		d.TotalVtxCount += len(dl.VtxBuffer)
	}
	Logger().Debug("imdraw: de-indexed draw data", "lists", len(d.CmdLists), "vertices", d.TotalVtxCount)
}

// ScaleClipRects multiplies every clip rectangle by scale, for rendering
// to a framebuffer whose resolution differs from the display size.
func (d *DrawData) ScaleClipRects(scale Vec2) {
	for _, dl := range d.CmdLists {
		for i := range dl.CmdBuffer {
			cr := &dl.CmdBuffer[i].ClipRect
			*cr = Vec4{cr.X * scale.X, cr.Y * scale.Y, cr.Z * scale.X, cr.W * scale.Y}
		}
	}
}
