package imdraw

import "sync"

// drawListPool provides efficient reuse of DrawList buffers.
// Lists are rebuilt every frame, so keeping their capacity avoids
// reallocating vertex and index storage per frame.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]DrawIdx, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			path:      make([]Vec2, 0, 64),
		}
	},
}

// AcquireDrawList gets a DrawList bound to data from the pool, reset for a
// new frame. Call ReleaseDrawList when done to return it.
func AcquireDrawList(data *DrawListSharedData) *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.data = data
	dl.ResetForNewFrame()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		dl.data = nil
		drawListPool.Put(dl)
	}
}

// DrawList accumulates the geometry of one render surface for a frame.
// Primitives are written into a shared vertex buffer and an index buffer;
// CmdBuffer splits the indices into batches whenever the clip rectangle,
// texture or vertex offset changes.
//
// A DrawList is not safe for concurrent use.
type DrawList struct {
	CmdBuffer []DrawCmd // Draw commands
	IdxBuffer []DrawIdx // Index data
	VtxBuffer []Vertex  // Vertex data
	Flags     DrawListFlags

	data          *DrawListSharedData
	vtxCurrentIdx uint32 // Next vertex index relative to the current VtxOffset
	vtxWritePtr   int    // Write cursor into VtxBuffer
	idxWritePtr   int    // Write cursor into IdxBuffer
	path          []Vec2 // Path being built
	cmdHeader     drawCmdHeader
	splitter      DrawListSplitter
	clipStack     []Vec4
	textureStack  []TextureID
	fringeScale   float32
	temp          []Vec2
}

// NewDrawList creates a DrawList using the given shared data.
func NewDrawList(data *DrawListSharedData) *DrawList {
	dl := &DrawList{data: data}
	dl.ResetForNewFrame()
	return dl
}

// SharedData returns the shared data the list was created with.
func (dl *DrawList) SharedData() *DrawListSharedData { return dl.data }

// ResetForNewFrame clears all geometry and state but keeps allocations.
// A pending split is merged first.
func (dl *DrawList) ResetForNewFrame() {
	if dl.splitter.count > 1 {
		dl.splitter.Merge(dl)
	}
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.Flags = dl.data.InitialFlags
	dl.cmdHeader = drawCmdHeader{}
	dl.vtxCurrentIdx = 0
	dl.vtxWritePtr = 0
	dl.idxWritePtr = 0
	dl.clipStack = dl.clipStack[:0]
	dl.textureStack = dl.textureStack[:0]
	dl.path = dl.path[:0]
	dl.splitter.Clear()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{})
	dl.fringeScale = 1
}

// ClearFreeMemory resets the list and drops every allocation.
func (dl *DrawList) ClearFreeMemory() {
	dl.CmdBuffer = nil
	dl.IdxBuffer = nil
	dl.VtxBuffer = nil
	dl.Flags = DrawListFlagsNone
	dl.vtxCurrentIdx = 0
	dl.vtxWritePtr = 0
	dl.idxWritePtr = 0
	dl.clipStack = nil
	dl.textureStack = nil
	dl.path = nil
	dl.temp = nil
	dl.splitter.ClearFreeMemory()
}

// CloneOutput returns a copy of the list's render output. The clone has
// no shared data and cannot receive further geometry.
func (dl *DrawList) CloneOutput() *DrawList {
	return &DrawList{
		CmdBuffer: append([]DrawCmd(nil), dl.CmdBuffer...),
		IdxBuffer: append([]DrawIdx(nil), dl.IdxBuffer...),
		VtxBuffer: append([]Vertex(nil), dl.VtxBuffer...),
		Flags:     dl.Flags,

		vtxWritePtr: len(dl.VtxBuffer),
		idxWritePtr: len(dl.IdxBuffer),
	}
}

// AddDrawCmd starts a new command with the current header. Mostly useful
// to force a batch boundary.
func (dl *DrawList) AddDrawCmd() {
	cmd := DrawCmd{
		ClipRect:  dl.cmdHeader.ClipRect,
		TextureID: dl.cmdHeader.TextureID,
		VtxOffset: dl.cmdHeader.VtxOffset,
		IdxOffset: uint32(len(dl.IdxBuffer)),
	}
	assert(cmd.ClipRect.X <= cmd.ClipRect.Z && cmd.ClipRect.Y <= cmd.ClipRect.W, "inverted clip rectangle")
	dl.CmdBuffer = append(dl.CmdBuffer, cmd)
}

// AddCallback inserts a command that calls fn instead of drawing. The
// callback always gets a command of its own.
func (dl *DrawList) AddCallback(fn DrawCallback, userData any) {
	assert(fn != nil, "nil draw callback")
	curr := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
	assert(curr.UserCallback == nil, "previous callback command was not closed")
	if curr.ElemCount != 0 {
		dl.AddDrawCmd()
		curr = &dl.CmdBuffer[len(dl.CmdBuffer)-1]
	}
	curr.UserCallback = fn
	curr.UserCallbackData = userData

	// Force a new command after us.
	dl.AddDrawCmd()
}

// PopUnusedDrawCmd trims trailing commands that have no geometry and no
// callback.
func (dl *DrawList) PopUnusedDrawCmd() {
	for n := len(dl.CmdBuffer); n > 0; n = len(dl.CmdBuffer) {
		curr := &dl.CmdBuffer[n-1]
		if curr.ElemCount != 0 || curr.UserCallback != nil {
			return
		}
		dl.CmdBuffer = dl.CmdBuffer[:n-1]
	}
}

// sequentialIdx reports whether next's indices directly follow prev's.
func sequentialIdx(prev, next *DrawCmd) bool {
	return prev.IdxOffset+prev.ElemCount == next.IdxOffset
}

// tryMergeDrawCmds folds the last command into the previous one when
// their headers match and their indices are contiguous.
func (dl *DrawList) tryMergeDrawCmds() {
	n := len(dl.CmdBuffer)
	if n < 2 {
		return
	}
	curr, prev := &dl.CmdBuffer[n-1], &dl.CmdBuffer[n-2]
	if curr.header() == prev.header() && sequentialIdx(prev, curr) &&
		curr.UserCallback == nil && prev.UserCallback == nil {
		prev.ElemCount += curr.ElemCount
		dl.CmdBuffer = dl.CmdBuffer[:n-1]
	}
}

// onChangedHeader applies a clip rect or texture change to the command
// stream. A command with geometry is closed and a new one opened; an empty
// one is merged into its predecessor when the new header matches, or is
// relabelled in place.
func (dl *DrawList) onChangedHeader(differs func(*DrawCmd) bool, relabel func(*DrawCmd)) {
	n := len(dl.CmdBuffer)
	curr := &dl.CmdBuffer[n-1]
	if curr.ElemCount != 0 && differs(curr) {
		dl.AddDrawCmd()
		return
	}
	assert(curr.UserCallback == nil, "header change on a callback command")

	if curr.ElemCount == 0 && n > 1 {
		prev := &dl.CmdBuffer[n-2]
		if dl.cmdHeader == prev.header() && sequentialIdx(prev, curr) && prev.UserCallback == nil {
			dl.CmdBuffer = dl.CmdBuffer[:n-1]
			return
		}
	}
	relabel(curr)
}

func (dl *DrawList) onChangedClipRect() {
	dl.onChangedHeader(
		func(c *DrawCmd) bool { return c.ClipRect != dl.cmdHeader.ClipRect },
		func(c *DrawCmd) { c.ClipRect = dl.cmdHeader.ClipRect },
	)
}

func (dl *DrawList) onChangedTextureID() {
	dl.onChangedHeader(
		func(c *DrawCmd) bool { return c.TextureID != dl.cmdHeader.TextureID },
		func(c *DrawCmd) { c.TextureID = dl.cmdHeader.TextureID },
	)
}

// onChangedVtxOffset is only called when the offset actually changed.
func (dl *DrawList) onChangedVtxOffset() {
	dl.vtxCurrentIdx = 0
	curr := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
	if curr.ElemCount != 0 {
		dl.AddDrawCmd()
		return
	}
	assert(curr.UserCallback == nil, "vertex offset change on a callback command")
	curr.VtxOffset = dl.cmdHeader.VtxOffset
}

// PushClipRect pushes a new clip rectangle onto the stack. All subsequent
// primitives are clipped to it. With intersect set, the rectangle is first
// clipped to the current one.
func (dl *DrawList) PushClipRect(clipMin, clipMax Vec2, intersect bool) {
	cr := Vec4{clipMin.X, clipMin.Y, clipMax.X, clipMax.Y}
	if intersect && len(dl.clipStack) > 0 {
		cur := dl.cmdHeader.ClipRect
		cr.X = max(cr.X, cur.X)
		cr.Y = max(cr.Y, cur.Y)
		cr.Z = min(cr.Z, cur.Z)
		cr.W = min(cr.W, cur.W)
	}
	cr.Z = max(cr.X, cr.Z)
	cr.W = max(cr.Y, cr.W)

	dl.clipStack = append(dl.clipStack, cr)
	dl.cmdHeader.ClipRect = cr
	dl.onChangedClipRect()
}

// PushClipRectFullScreen pushes the shared fullscreen clip rectangle.
func (dl *DrawList) PushClipRectFullScreen() {
	fs := dl.data.ClipRectFullscreen
	dl.PushClipRect(Vec2{fs.X, fs.Y}, Vec2{fs.Z, fs.W}, false)
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	assert(len(dl.clipStack) > 0, "PopClipRect without PushClipRect")
	dl.clipStack = dl.clipStack[:len(dl.clipStack)-1]
	if n := len(dl.clipStack); n > 0 {
		dl.cmdHeader.ClipRect = dl.clipStack[n-1]
	} else {
		dl.cmdHeader.ClipRect = dl.data.ClipRectFullscreen
	}
	dl.onChangedClipRect()
}

// ClipRectMin returns the top-left corner of the current clip rectangle.
func (dl *DrawList) ClipRectMin() Vec2 {
	cr := dl.cmdHeader.ClipRect
	return Vec2{cr.X, cr.Y}
}

// ClipRectMax returns the bottom-right corner of the current clip rectangle.
func (dl *DrawList) ClipRectMax() Vec2 {
	cr := dl.cmdHeader.ClipRect
	return Vec2{cr.Z, cr.W}
}

// PushTextureID sets the texture for subsequent primitives.
func (dl *DrawList) PushTextureID(id TextureID) {
	dl.textureStack = append(dl.textureStack, id)
	dl.cmdHeader.TextureID = id
	dl.onChangedTextureID()
}

// PopTextureID restores the previous texture.
func (dl *DrawList) PopTextureID() {
	assert(len(dl.textureStack) > 0, "PopTextureID without PushTextureID")
	dl.textureStack = dl.textureStack[:len(dl.textureStack)-1]
	if n := len(dl.textureStack); n > 0 {
		dl.cmdHeader.TextureID = dl.textureStack[n-1]
	} else {
		dl.cmdHeader.TextureID = 0
	}
	dl.onChangedTextureID()
}

// ChannelsSplit splits the list into count channels using its own splitter.
func (dl *DrawList) ChannelsSplit(count int) { dl.splitter.Split(dl, count) }

// ChannelsMerge merges the channels back in order.
func (dl *DrawList) ChannelsMerge() { dl.splitter.Merge(dl) }

// ChannelsSetCurrent directs subsequent primitives to channel n.
func (dl *DrawList) ChannelsSetCurrent(n int) { dl.splitter.SetCurrentChannel(dl, n) }
