package imdraw

// drawChannel is the command and index storage of one splitter channel.
type drawChannel struct {
	cmdBuffer []DrawCmd
	idxBuffer []DrawIdx
}

// DrawListSplitter partitions a DrawList into channels that can be filled
// out of order and merged back in channel order. Vertices always go to the
// list's single vertex buffer; only commands and indices are per channel.
//
// The live channel's buffers are owned by the DrawList; every other
// channel owns its own. Switching channels moves buffers, never copies
// them, and never leaves two owners of the same storage.
//
// A splitter must be merged before the list is reset or handed to
// DrawData. Splitting is not reentrant: use one splitter per nesting level.
type DrawListSplitter struct {
	current  int
	count    int
	channels []drawChannel
}

// Clear forgets the channel count but keeps channel storage.
func (s *DrawListSplitter) Clear() {
	s.current = 0
	s.count = 1
}

// ClearFreeMemory drops all channel storage.
func (s *DrawListSplitter) ClearFreeMemory() {
	s.channels = nil
	s.current = 0
	s.count = 1
}

// Count returns the number of active channels.
func (s *DrawListSplitter) Count() int { return max(s.count, 1) }

// Current returns the active channel index.
func (s *DrawListSplitter) Current() int { return s.current }

// Split prepares count channels. Channel storage from earlier splits is
// reused.
func (s *DrawListSplitter) Split(dl *DrawList, count int) {
	assert(s.current == 0 && s.count <= 1, "nested channel splitting is not supported, use a separate DrawListSplitter")
	assert(count >= 1, "channel count must be at least 1")
	if len(s.channels) < count {
		s.channels = append(s.channels, make([]drawChannel, count-len(s.channels))...)
	}
	s.count = count

	// Channel 0's storage is the list's own buffers while it is current.
	s.channels[0] = drawChannel{}
	for i := 1; i < count; i++ {
		s.channels[i].cmdBuffer = s.channels[i].cmdBuffer[:0]
		s.channels[i].idxBuffer = s.channels[i].idxBuffer[:0]
	}
}

// SetCurrentChannel makes channel idx receive subsequent primitives.
func (s *DrawListSplitter) SetCurrentChannel(dl *DrawList, idx int) {
	assert(idx >= 0 && idx < s.count, "channel index out of range")
	if s.current == idx {
		return
	}

	s.channels[s.current] = drawChannel{cmdBuffer: dl.CmdBuffer, idxBuffer: dl.IdxBuffer}
	s.current = idx
	dl.CmdBuffer, dl.IdxBuffer = s.channels[idx].cmdBuffer, s.channels[idx].idxBuffer
	s.channels[idx] = drawChannel{}
	dl.idxWritePtr = len(dl.IdxBuffer)

	dl.syncCurrentCmd(true)
}

// syncCurrentCmd makes the last command match the list's current header:
// an empty command is relabelled, a used one with a different header gets
// a successor. With addIfMissing an empty buffer gets a first command.
func (dl *DrawList) syncCurrentCmd(addIfMissing bool) {
	n := len(dl.CmdBuffer)
	switch {
	case n == 0:
		if addIfMissing {
			dl.AddDrawCmd()
		}
	case dl.CmdBuffer[n-1].ElemCount == 0:
		curr := &dl.CmdBuffer[n-1]
		curr.ClipRect = dl.cmdHeader.ClipRect
		curr.TextureID = dl.cmdHeader.TextureID
		curr.VtxOffset = dl.cmdHeader.VtxOffset
	case dl.CmdBuffer[n-1].header() != dl.cmdHeader:
		dl.AddDrawCmd()
	}
}

// Merge concatenates channels 1..count-1 after channel 0, renumbering
// index offsets and joining a channel's first command with the previous
// channel's last one when their headers match.
func (s *DrawListSplitter) Merge(dl *DrawList) {
	if s.count <= 1 {
		return
	}

	s.SetCurrentChannel(dl, 0)
	dl.PopUnusedDrawCmd()

	var last *DrawCmd
	idxOffset := uint32(0)
	if n := len(dl.CmdBuffer); n > 0 {
		last = &dl.CmdBuffer[n-1]
		idxOffset = last.IdxOffset + last.ElemCount
	}

	for i := 1; i < s.count; i++ {
		ch := &s.channels[i]
		if n := len(ch.cmdBuffer); n > 0 && ch.cmdBuffer[n-1].ElemCount == 0 && ch.cmdBuffer[n-1].UserCallback == nil {
			ch.cmdBuffer = ch.cmdBuffer[:n-1]
		}

		if len(ch.cmdBuffer) > 0 && last != nil {
			// Index offsets are rebuilt below, so only headers are compared.
			next := &ch.cmdBuffer[0]
			if last.header() == next.header() && last.UserCallback == nil && next.UserCallback == nil {
				last.ElemCount += next.ElemCount
				idxOffset += next.ElemCount
				ch.cmdBuffer = append(ch.cmdBuffer[:0], ch.cmdBuffer[1:]...)
			}
		}
		if n := len(ch.cmdBuffer); n > 0 {
			last = &ch.cmdBuffer[n-1]
		}
		for j := range ch.cmdBuffer {
			ch.cmdBuffer[j].IdxOffset = idxOffset
			idxOffset += ch.cmdBuffer[j].ElemCount
		}
	}

	for i := 1; i < s.count; i++ {
		ch := &s.channels[i]
		dl.CmdBuffer = append(dl.CmdBuffer, ch.cmdBuffer...)
		dl.IdxBuffer = append(dl.IdxBuffer, ch.idxBuffer...)
	}
	dl.idxWritePtr = len(dl.IdxBuffer)

	// Always leave a trailing non-callback command.
	if n := len(dl.CmdBuffer); n == 0 || dl.CmdBuffer[n-1].UserCallback != nil {
		dl.AddDrawCmd()
	}
	dl.syncCurrentCmd(false)

	s.count = 1
}
