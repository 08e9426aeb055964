package imdraw_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-theft-auto/imdraw"
)

// newTestList returns a list with the given flags and a full-screen clip.
func newTestList(flags imdraw.DrawListFlags) *imdraw.DrawList {
	data := imdraw.NewDrawListSharedData()
	data.InitialFlags = flags
	dl := imdraw.NewDrawList(data)
	dl.PushClipRectFullScreen()
	return dl
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestAddLineCounts(t *testing.T) {
	tests := []struct {
		name      string
		flags     imdraw.DrawListFlags
		thickness float32
		idx, vtx  int
	}{
		{"aa thin", imdraw.DrawListFlagsAntiAliasedLines, 1, 12, 6},
		{"aa thick", imdraw.DrawListFlagsAntiAliasedLines, 3, 18, 8},
		{"no aa", imdraw.DrawListFlagsNone, 1, 6, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dl := newTestList(tt.flags)
			dl.AddLine(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 100, Y: 10}, imdraw.ColorWhite, tt.thickness)
			if len(dl.IdxBuffer) != tt.idx || len(dl.VtxBuffer) != tt.vtx {
				t.Errorf("got %d indices / %d vertices, want %d / %d", len(dl.IdxBuffer), len(dl.VtxBuffer), tt.idx, tt.vtx)
			}
			if got := dl.CmdBuffer[len(dl.CmdBuffer)-1].ElemCount; int(got) != tt.idx {
				t.Errorf("ElemCount = %d, want %d", got, tt.idx)
			}
		})
	}
}

func TestTransparentColorEmitsNothing(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsAntiAliasedLines | imdraw.DrawListFlagsAntiAliasedFill)
	dl.AddLine(imdraw.Vec2{}, imdraw.Vec2{X: 10, Y: 10}, imdraw.ColorTransparent, 1)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 10, Y: 10}, imdraw.ColorTransparent, 0, imdraw.DrawFlagsNone)
	dl.AddCircle(imdraw.Vec2{X: 50, Y: 50}, 20, imdraw.RGBA(255, 0, 0, 0), 0, 1)
	if len(dl.VtxBuffer) != 0 || len(dl.IdxBuffer) != 0 {
		t.Errorf("expected no geometry, got %d vertices / %d indices", len(dl.VtxBuffer), len(dl.IdxBuffer))
	}
}

func TestAddRectFilled(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsAntiAliasedFill)
	dl.AddRectFilled(imdraw.Vec2{X: 10, Y: 20}, imdraw.Vec2{X: 30, Y: 40}, imdraw.ColorRed, 0, imdraw.DrawFlagsNone)

	wantVtx := []imdraw.Vertex{
		{Pos: imdraw.Vec2{X: 10, Y: 20}, Col: imdraw.ColorRed},
		{Pos: imdraw.Vec2{X: 30, Y: 20}, Col: imdraw.ColorRed},
		{Pos: imdraw.Vec2{X: 30, Y: 40}, Col: imdraw.ColorRed},
		{Pos: imdraw.Vec2{X: 10, Y: 40}, Col: imdraw.ColorRed},
	}
	if diff := cmp.Diff(wantVtx, dl.VtxBuffer); diff != "" {
		t.Errorf("VtxBuffer mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]imdraw.DrawIdx{0, 1, 2, 0, 2, 3}, dl.IdxBuffer); diff != "" {
		t.Errorf("IdxBuffer mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRectFilledRounded(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 100, Y: 100}, imdraw.ColorRed, 10, imdraw.DrawFlagsNone)
	if len(dl.VtxBuffer) <= 4 {
		t.Fatalf("rounded rect should have more than 4 vertices, got %d", len(dl.VtxBuffer))
	}
	// A triangle fan: 3 indices per vertex beyond the first two.
	if want := (len(dl.VtxBuffer) - 2) * 3; len(dl.IdxBuffer) != want {
		t.Errorf("got %d indices, want %d", len(dl.IdxBuffer), want)
	}

	// Rounding disabled per corner falls back to the plain quad.
	dl = newTestList(imdraw.DrawListFlagsNone)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 100, Y: 100}, imdraw.ColorRed, 10, imdraw.DrawFlagsRoundCornersNone)
	if len(dl.VtxBuffer) != 4 {
		t.Errorf("got %d vertices, want 4", len(dl.VtxBuffer))
	}
}

func TestConvexPolyFilled(t *testing.T) {
	tri := []imdraw.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 25, Y: 40}}

	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.AddConvexPolyFilled(tri, imdraw.ColorGreen)
	if len(dl.IdxBuffer) != 3 || len(dl.VtxBuffer) != 3 {
		t.Errorf("non-AA: got %d indices / %d vertices, want 3 / 3", len(dl.IdxBuffer), len(dl.VtxBuffer))
	}

	dl = newTestList(imdraw.DrawListFlagsAntiAliasedFill)
	dl.AddConvexPolyFilled(tri, imdraw.ColorGreen)
	if len(dl.IdxBuffer) != 21 || len(dl.VtxBuffer) != 6 {
		t.Errorf("AA: got %d indices / %d vertices, want 21 / 6", len(dl.IdxBuffer), len(dl.VtxBuffer))
	}
	// Inner vertices keep the color, outer ones fade out.
	for i, v := range dl.VtxBuffer {
		wantAlpha := uint8(0xFF)
		if i%2 == 1 {
			wantAlpha = 0
		}
		if _, _, _, a := imdraw.UnpackRGBA(v.Col); a != wantAlpha {
			t.Errorf("vertex %d alpha = %d, want %d", i, a, wantAlpha)
		}
	}

	// Fewer than three points draw nothing.
	dl = newTestList(imdraw.DrawListFlagsAntiAliasedFill)
	dl.AddConvexPolyFilled(tri[:2], imdraw.ColorGreen)
	if len(dl.VtxBuffer) != 0 {
		t.Errorf("degenerate polygon emitted %d vertices", len(dl.VtxBuffer))
	}
}

func TestIndicesStayInRange(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsAntiAliasedLines | imdraw.DrawListFlagsAntiAliasedFill)
	dl.AddCircleFilled(imdraw.Vec2{X: 100, Y: 100}, 50, imdraw.ColorBlue, 0)
	dl.AddRect(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 90, Y: 60}, imdraw.ColorWhite, 6, imdraw.DrawFlagsNone, 2)
	dl.AddBezierQuadratic(imdraw.Vec2{}, imdraw.Vec2{X: 50, Y: 100}, imdraw.Vec2{X: 100, Y: 0}, imdraw.ColorYellow, 1, 0)
	dl.AddEllipseFilled(imdraw.Vec2{X: 200, Y: 200}, imdraw.Vec2{X: 40, Y: 20}, imdraw.ColorCyan, 0.3, 0)
	dl.AddNgon(imdraw.Vec2{X: 300, Y: 300}, 30, imdraw.ColorMagenta, 6, 1.5)

	for i, idx := range dl.IdxBuffer {
		if int(idx) >= len(dl.VtxBuffer) {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, idx, len(dl.VtxBuffer))
		}
	}
	if len(dl.IdxBuffer)%3 != 0 {
		t.Errorf("index count %d is not a multiple of 3", len(dl.IdxBuffer))
	}
}

func TestCircleAndCurveCounts(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsAntiAliasedLines)
	dl.AddCircle(imdraw.Vec2{X: 50, Y: 50}, 20, imdraw.ColorWhite, 8, 1)
	// Closed thin AA stroke over 8 points.
	if len(dl.IdxBuffer) != 8*12 || len(dl.VtxBuffer) != 8*3 {
		t.Errorf("circle: got %d indices / %d vertices, want 96 / 24", len(dl.IdxBuffer), len(dl.VtxBuffer))
	}

	dl = newTestList(imdraw.DrawListFlagsNone)
	dl.AddBezierCubic(imdraw.Vec2{}, imdraw.Vec2{X: 10, Y: 40}, imdraw.Vec2{X: 40, Y: 40}, imdraw.Vec2{X: 50, Y: 0}, imdraw.ColorWhite, 1, 4)
	// Five points, four non-AA segments.
	if len(dl.IdxBuffer) != 24 || len(dl.VtxBuffer) != 16 {
		t.Errorf("bezier: got %d indices / %d vertices, want 24 / 16", len(dl.IdxBuffer), len(dl.VtxBuffer))
	}
}

func TestPathArcTo(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	center := imdraw.Vec2{X: 100, Y: 100}
	dl.PathArcTo(center, 10, 0, 3.14159265, 2)
	want := []imdraw.Vec2{{X: 110, Y: 100}, {X: 100, Y: 110}, {X: 90, Y: 100}}
	if diff := cmp.Diff(want, dl.Path(), cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Errorf("arc points mismatch (-want +got):\n%s", diff)
	}
	dl.PathClear()

	// Tiny radii collapse to the center.
	dl.PathArcTo(center, 0.25, 0, 3, 0)
	if diff := cmp.Diff([]imdraw.Vec2{center}, dl.Path()); diff != "" {
		t.Errorf("tiny arc mismatch (-want +got):\n%s", diff)
	}
	dl.PathClear()

	// Auto-tessellated arcs begin and end exactly at the requested angles.
	dl.PathArcTo(center, 40, 0, 3.14159265/2, 0)
	path := dl.Path()
	if len(path) < 3 {
		t.Fatalf("auto arc has %d points", len(path))
	}
	ends := []imdraw.Vec2{path[0], path[len(path)-1]}
	if diff := cmp.Diff([]imdraw.Vec2{{X: 140, Y: 100}, {X: 100, Y: 140}}, ends, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Errorf("auto arc ends mismatch (-want +got):\n%s", diff)
	}
}

func TestClipRectCommands(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	full := dl.CmdBuffer[0].ClipRect
	rect := func() {
		dl.AddRectFilled(imdraw.Vec2{X: 1, Y: 1}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)
	}

	rect()
	dl.PushClipRect(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 20, Y: 20}, true)
	rect()
	dl.PopClipRect()
	rect()

	want := []imdraw.DrawCmd{
		{ClipRect: full, IdxOffset: 0, ElemCount: 6},
		{ClipRect: imdraw.Vec4{X: 10, Y: 10, Z: 20, W: 20}, IdxOffset: 6, ElemCount: 6},
		{ClipRect: full, IdxOffset: 12, ElemCount: 6},
	}
	if diff := cmp.Diff(want, dl.CmdBuffer, cmpopts.IgnoreFields(imdraw.DrawCmd{}, "UserCallback")); diff != "" {
		t.Errorf("CmdBuffer mismatch (-want +got):\n%s", diff)
	}
}

func TestPushPopWithoutGeometryMerges(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)
	dl.PushClipRect(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 20, Y: 20}, false)
	dl.PopClipRect()
	dl.PushTextureID(7)
	dl.PopTextureID()
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)

	if len(dl.CmdBuffer) != 1 {
		t.Fatalf("got %d commands, want 1", len(dl.CmdBuffer))
	}
	if dl.CmdBuffer[0].ElemCount != 12 {
		t.Errorf("ElemCount = %d, want 12", dl.CmdBuffer[0].ElemCount)
	}
}

func TestIntersectClipRect(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.PushClipRect(imdraw.Vec2{X: 0, Y: 0}, imdraw.Vec2{X: 100, Y: 100}, false)
	dl.PushClipRect(imdraw.Vec2{X: 50, Y: -20}, imdraw.Vec2{X: 200, Y: 60}, true)
	if got, want := dl.ClipRectMin(), (imdraw.Vec2{X: 50, Y: 0}); got != want {
		t.Errorf("ClipRectMin = %v, want %v", got, want)
	}
	if got, want := dl.ClipRectMax(), (imdraw.Vec2{X: 100, Y: 60}); got != want {
		t.Errorf("ClipRectMax = %v, want %v", got, want)
	}

	// Disjoint rectangles collapse to an empty one.
	dl.PushClipRect(imdraw.Vec2{X: 150, Y: 150}, imdraw.Vec2{X: 160, Y: 160}, true)
	lo, hi := dl.ClipRectMin(), dl.ClipRectMax()
	if hi.X < lo.X || hi.Y < lo.Y {
		t.Errorf("inverted clip rect %v..%v", lo, hi)
	}
}

func TestTextureCommands(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.PushTextureID(5)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)
	dl.PopTextureID()
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)

	if len(dl.CmdBuffer) != 2 {
		t.Fatalf("got %d commands, want 2", len(dl.CmdBuffer))
	}
	if dl.CmdBuffer[0].TextureID != 5 || dl.CmdBuffer[1].TextureID != 0 {
		t.Errorf("texture ids = %d, %d, want 5, 0", dl.CmdBuffer[0].TextureID, dl.CmdBuffer[1].TextureID)
	}

	mustPanic(t, "PopTextureID underflow", func() { dl.PopTextureID() })
}

func TestAddImageRestoresTexture(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.PushTextureID(1)
	dl.AddImage(9, imdraw.Vec2{}, imdraw.Vec2{X: 8, Y: 8}, imdraw.Vec2{}, imdraw.Vec2{X: 1, Y: 1}, imdraw.ColorWhite)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)

	got := []imdraw.TextureID{}
	for _, cmd := range dl.CmdBuffer {
		got = append(got, cmd.TextureID)
	}
	if diff := cmp.Diff([]imdraw.TextureID{9, 1}, got); diff != "" {
		t.Errorf("texture ids mismatch (-want +got):\n%s", diff)
	}
	if uv := dl.VtxBuffer[2].UV; uv != (imdraw.Vec2{X: 1, Y: 1}) {
		t.Errorf("image bottom-right uv = %v", uv)
	}
}

func TestCallbackCommand(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)

	var called []any
	dl.AddCallback(func(_ *imdraw.DrawList, cmd *imdraw.DrawCmd) {
		called = append(called, cmd.UserCallbackData)
	}, "payload")
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)

	if len(dl.CmdBuffer) != 3 {
		t.Fatalf("got %d commands, want 3", len(dl.CmdBuffer))
	}
	cb := dl.CmdBuffer[1]
	if cb.UserCallback == nil || cb.ElemCount != 0 {
		t.Fatalf("command 1 should be a callback without geometry: %+v", cb)
	}
	if dl.CmdBuffer[2].IdxOffset != 6 || dl.CmdBuffer[2].ElemCount != 6 {
		t.Errorf("command 2 = %+v, want IdxOffset 6 ElemCount 6", dl.CmdBuffer[2])
	}

	// Renderers call it in place of drawing.
	for i := range dl.CmdBuffer {
		if cmd := &dl.CmdBuffer[i]; cmd.UserCallback != nil {
			cmd.UserCallback(dl, cmd)
		}
	}
	if diff := cmp.Diff([]any{"payload"}, called); diff != "" {
		t.Errorf("callback calls mismatch (-want +got):\n%s", diff)
	}

	mustPanic(t, "nil callback", func() { dl.AddCallback(nil, nil) })
}

func TestChannelsMerge(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.ChannelsSplit(2)
	dl.ChannelsSetCurrent(1)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorRed, 0, imdraw.DrawFlagsNone)
	dl.ChannelsSetCurrent(0)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorBlue, 0, imdraw.DrawFlagsNone)
	dl.ChannelsMerge()

	// Vertices stay in emission order; channel 0 indices come first.
	if dl.VtxBuffer[0].Col != imdraw.ColorRed || dl.VtxBuffer[4].Col != imdraw.ColorBlue {
		t.Errorf("unexpected vertex order")
	}
	if diff := cmp.Diff([]imdraw.DrawIdx{4, 5, 6, 4, 6, 7, 0, 1, 2, 0, 2, 3}, dl.IdxBuffer); diff != "" {
		t.Errorf("IdxBuffer mismatch (-want +got):\n%s", diff)
	}
	// Matching headers join into a single command.
	if len(dl.CmdBuffer) != 1 || dl.CmdBuffer[0].ElemCount != 12 {
		t.Errorf("CmdBuffer = %+v, want one command of 12 indices", dl.CmdBuffer)
	}

	var data imdraw.DrawData
	data.AddDrawList(dl)
	if data.TotalIdxCount != 12 {
		t.Errorf("TotalIdxCount = %d, want 12", data.TotalIdxCount)
	}
}

func TestChannelsWithDifferentClipRects(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.ChannelsSplit(2)
	dl.ChannelsSetCurrent(1)
	dl.PushClipRect(imdraw.Vec2{}, imdraw.Vec2{X: 10, Y: 10}, true)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorRed, 0, imdraw.DrawFlagsNone)
	dl.PopClipRect()
	dl.ChannelsSetCurrent(0)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorBlue, 0, imdraw.DrawFlagsNone)
	dl.ChannelsMerge()

	if len(dl.CmdBuffer) < 2 {
		t.Fatalf("got %d commands, want at least 2", len(dl.CmdBuffer))
	}
	if got := dl.CmdBuffer[1]; got.IdxOffset != 6 || got.ClipRect != (imdraw.Vec4{Z: 10, W: 10}) {
		t.Errorf("second command = %+v", got)
	}
}

func TestNestedSplitPanics(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.ChannelsSplit(2)
	dl.ChannelsSetCurrent(1)
	mustPanic(t, "nested split", func() { dl.ChannelsSplit(2) })
}

func TestPrimReserveUnreserve(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.PrimReserve(12, 8)
	dl.PrimRect(imdraw.Vec2{}, imdraw.Vec2{X: 1, Y: 1}, imdraw.ColorWhite)
	dl.PrimUnreserve(6, 4)

	var data imdraw.DrawData
	data.AddDrawList(dl)
	if data.TotalVtxCount != 4 || data.TotalIdxCount != 6 {
		t.Errorf("totals = %d / %d, want 4 / 6", data.TotalVtxCount, data.TotalIdxCount)
	}
}

func TestAddDrawListRejectsUnwrittenReservation(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.PrimReserve(6, 4)
	var data imdraw.DrawData
	mustPanic(t, "unwritten reservation", func() { data.AddDrawList(dl) })
}

func TestDrawData(t *testing.T) {
	empty := newTestList(imdraw.DrawListFlagsNone)
	a := newTestList(imdraw.DrawListFlagsNone)
	a.AddRectFilled(imdraw.Vec2{X: 1, Y: 2}, imdraw.Vec2{X: 3, Y: 4}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)
	b := newTestList(imdraw.DrawListFlagsNone)
	b.AddTriangleFilled(imdraw.Vec2{}, imdraw.Vec2{X: 4, Y: 0}, imdraw.Vec2{X: 0, Y: 4}, imdraw.ColorWhite)

	var data imdraw.DrawData
	data.AddDrawList(empty)
	data.AddDrawList(a)
	data.AddDrawList(b)
	if len(data.CmdLists) != 2 {
		t.Fatalf("got %d lists, want 2 (empty list skipped)", len(data.CmdLists))
	}
	if data.TotalVtxCount != 7 || data.TotalIdxCount != 9 {
		t.Errorf("totals = %d / %d, want 7 / 9", data.TotalVtxCount, data.TotalIdxCount)
	}

	data.ScaleClipRects(imdraw.Vec2{X: 2, Y: 0.5})
	if got, want := a.CmdBuffer[0].ClipRect, (imdraw.Vec4{X: -16384, Y: -4096, Z: 16384, W: 4096}); got != want {
		t.Errorf("scaled clip = %v, want %v", got, want)
	}

	data.DeIndexAllBuffers()
	if len(a.IdxBuffer) != 0 || len(a.VtxBuffer) != 6 {
		t.Fatalf("de-indexed list has %d indices / %d vertices, want 0 / 6", len(a.IdxBuffer), len(a.VtxBuffer))
	}
	wantPos := []imdraw.Vec2{{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 4}, {X: 1, Y: 2}, {X: 3, Y: 4}, {X: 1, Y: 4}}
	var gotPos []imdraw.Vec2
	for _, v := range a.VtxBuffer {
		gotPos = append(gotPos, v.Pos)
	}
	if diff := cmp.Diff(wantPos, gotPos); diff != "" {
		t.Errorf("de-indexed positions mismatch (-want +got):\n%s", diff)
	}
	if data.TotalVtxCount != 9 {
		t.Errorf("TotalVtxCount after de-index = %d, want 9", data.TotalVtxCount)
	}

	data.Clear()
	if data.Valid || len(data.CmdLists) != 0 || data.TotalVtxCount != 0 {
		t.Errorf("Clear left %+v", data)
	}
}

func TestCloneOutput(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)
	clone := dl.CloneOutput()
	dl.ResetForNewFrame()

	if len(clone.VtxBuffer) != 4 || len(clone.IdxBuffer) != 6 || len(clone.CmdBuffer) != 1 {
		t.Errorf("clone = %d vtx / %d idx / %d cmds", len(clone.VtxBuffer), len(clone.IdxBuffer), len(clone.CmdBuffer))
	}
	if len(dl.VtxBuffer) != 0 || len(dl.CmdBuffer) != 1 {
		t.Errorf("reset list still has %d vertices / %d commands", len(dl.VtxBuffer), len(dl.CmdBuffer))
	}
}

func TestDrawListPool(t *testing.T) {
	data := imdraw.NewDrawListSharedData()
	dl := imdraw.AcquireDrawList(data)
	dl.PushClipRectFullScreen()
	dl.AddRectFilled(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5}, imdraw.ColorWhite, 0, imdraw.DrawFlagsNone)
	imdraw.ReleaseDrawList(dl)

	dl = imdraw.AcquireDrawList(data)
	defer imdraw.ReleaseDrawList(dl)
	if len(dl.VtxBuffer) != 0 || len(dl.IdxBuffer) != 0 || len(dl.CmdBuffer) != 1 {
		t.Errorf("acquired list is not reset: %d vtx / %d idx / %d cmds", len(dl.VtxBuffer), len(dl.IdxBuffer), len(dl.CmdBuffer))
	}
	if dl.SharedData() != data {
		t.Error("acquired list is not bound to the shared data")
	}
}

func TestCallbackOnlyListKeptWithoutGeometry(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsNone)
	var calls int
	dl.AddCallback(func(*imdraw.DrawList, *imdraw.DrawCmd) { calls++ }, nil)

	var data imdraw.DrawData
	data.AddDrawList(dl)
	if len(data.CmdLists) != 1 {
		t.Fatalf("got %d lists, want the callback list kept", len(data.CmdLists))
	}
	if len(dl.VtxBuffer) != 0 || len(dl.IdxBuffer) != 0 || data.TotalVtxCount != 0 {
		t.Errorf("callback list has %d vertices / %d indices", len(dl.VtxBuffer), len(dl.IdxBuffer))
	}
	if len(dl.CmdBuffer) != 1 || dl.CmdBuffer[0].UserCallback == nil {
		t.Fatalf("commands = %+v, want the callback alone", dl.CmdBuffer)
	}

	data.DeIndexAllBuffers()
	if len(dl.VtxBuffer) != 0 || len(dl.CmdBuffer) != 1 {
		t.Errorf("de-indexing changed the callback list: %d vertices / %d commands", len(dl.VtxBuffer), len(dl.CmdBuffer))
	}
	cmd := &dl.CmdBuffer[0]
	cmd.UserCallback(dl, cmd)
	if calls != 1 {
		t.Errorf("callback ran %d times", calls)
	}
}

func TestTexturedLines(t *testing.T) {
	newTexList := func() *imdraw.DrawList {
		dl := newTestList(imdraw.DrawListFlagsAntiAliasedLines | imdraw.DrawListFlagsAntiAliasedLinesUseTex)
		uvLines := make([]imdraw.Vec4, imdraw.TexLinesWidthMax+1)
		uvLines[1] = imdraw.Vec4{X: 0.1, Y: 0.5, Z: 0.2, W: 0.5}
		uvLines[2] = imdraw.Vec4{X: 0.3, Y: 0.6, Z: 0.4, W: 0.6}
		dl.SharedData().TexUvLines = uvLines
		return dl
	}

	t.Run("one segment", func(t *testing.T) {
		dl := newTexList()
		dl.AddLine(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 100, Y: 10}, imdraw.ColorWhite, 1)

		// Half width is thickness/2 plus the one pixel of baked fringe.
		uv0, uv1 := imdraw.Vec2{X: 0.1, Y: 0.5}, imdraw.Vec2{X: 0.2, Y: 0.5}
		wantVtx := []imdraw.Vertex{
			{Pos: imdraw.Vec2{X: 10.5, Y: 9}, UV: uv0, Col: imdraw.ColorWhite},
			{Pos: imdraw.Vec2{X: 10.5, Y: 12}, UV: uv1, Col: imdraw.ColorWhite},
			{Pos: imdraw.Vec2{X: 100.5, Y: 9}, UV: uv0, Col: imdraw.ColorWhite},
			{Pos: imdraw.Vec2{X: 100.5, Y: 12}, UV: uv1, Col: imdraw.ColorWhite},
		}
		if diff := cmp.Diff(wantVtx, dl.VtxBuffer, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
			t.Errorf("VtxBuffer mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]imdraw.DrawIdx{2, 0, 1, 3, 1, 2}, dl.IdxBuffer); diff != "" {
			t.Errorf("IdxBuffer mismatch (-want +got):\n%s", diff)
		}
		if got := dl.CmdBuffer[len(dl.CmdBuffer)-1].ElemCount; got != 6 {
			t.Errorf("ElemCount = %d, want 6", got)
		}
	})

	t.Run("width picks its row", func(t *testing.T) {
		dl := newTexList()
		dl.AddLine(imdraw.Vec2{X: 0, Y: 0}, imdraw.Vec2{X: 0, Y: 50}, imdraw.ColorRed, 2)
		if len(dl.VtxBuffer) != 4 || len(dl.IdxBuffer) != 6 {
			t.Fatalf("got %d vertices / %d indices, want 4 / 6", len(dl.VtxBuffer), len(dl.IdxBuffer))
		}
		want := []imdraw.Vec2{{X: 0.3, Y: 0.6}, {X: 0.4, Y: 0.6}, {X: 0.3, Y: 0.6}, {X: 0.4, Y: 0.6}}
		var got []imdraw.Vec2
		for _, v := range dl.VtxBuffer {
			got = append(got, v.UV)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("UVs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("polyline", func(t *testing.T) {
		dl := newTexList()
		points := []imdraw.Vec2{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}}
		dl.AddPolyline(points, imdraw.ColorWhite, imdraw.DrawFlagsNone, 1)
		if len(dl.VtxBuffer) != 6 || len(dl.IdxBuffer) != 12 {
			t.Errorf("open: got %d vertices / %d indices, want 6 / 12", len(dl.VtxBuffer), len(dl.IdxBuffer))
		}

		dl = newTexList()
		dl.AddPolyline(points, imdraw.ColorWhite, imdraw.DrawFlagsClosed, 1)
		if len(dl.VtxBuffer) != 6 || len(dl.IdxBuffer) != 18 {
			t.Errorf("closed: got %d vertices / %d indices, want 6 / 18", len(dl.VtxBuffer), len(dl.IdxBuffer))
		}
	})

	t.Run("fractional width falls back", func(t *testing.T) {
		dl := newTexList()
		dl.AddLine(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 100, Y: 10}, imdraw.ColorWhite, 2.5)
		if len(dl.VtxBuffer) != 8 || len(dl.IdxBuffer) != 18 {
			t.Errorf("got %d vertices / %d indices, want 8 / 18", len(dl.VtxBuffer), len(dl.IdxBuffer))
		}
	})

	t.Run("no baked lines", func(t *testing.T) {
		dl := newTexList()
		dl.SharedData().TexUvLines = nil
		dl.AddLine(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 100, Y: 10}, imdraw.ColorWhite, 1)
		if len(dl.VtxBuffer) != 6 || len(dl.IdxBuffer) != 12 {
			t.Errorf("got %d vertices / %d indices, want 6 / 12", len(dl.VtxBuffer), len(dl.IdxBuffer))
		}
	})
}

func TestAddRectFilledMultiColor(t *testing.T) {
	dl := newTestList(imdraw.DrawListFlagsAntiAliasedFill)
	dl.AddRectFilledMultiColor(imdraw.Vec2{X: 0, Y: 0}, imdraw.Vec2{X: 10, Y: 20},
		imdraw.ColorRed, imdraw.ColorGreen, imdraw.ColorBlue, imdraw.ColorWhite)

	wantVtx := []imdraw.Vertex{
		{Pos: imdraw.Vec2{X: 0, Y: 0}, Col: imdraw.ColorRed},
		{Pos: imdraw.Vec2{X: 10, Y: 0}, Col: imdraw.ColorGreen},
		{Pos: imdraw.Vec2{X: 10, Y: 20}, Col: imdraw.ColorBlue},
		{Pos: imdraw.Vec2{X: 0, Y: 20}, Col: imdraw.ColorWhite},
	}
	if diff := cmp.Diff(wantVtx, dl.VtxBuffer); diff != "" {
		t.Errorf("VtxBuffer mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]imdraw.DrawIdx{0, 1, 2, 0, 2, 3}, dl.IdxBuffer); diff != "" {
		t.Errorf("IdxBuffer mismatch (-want +got):\n%s", diff)
	}

	// One visible corner is enough to draw.
	dl.AddRectFilledMultiColor(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5},
		imdraw.ColorTransparent, imdraw.ColorTransparent, imdraw.ColorRed, imdraw.ColorTransparent)
	if len(dl.VtxBuffer) != 8 {
		t.Errorf("got %d vertices, want 8", len(dl.VtxBuffer))
	}
	dl.AddRectFilledMultiColor(imdraw.Vec2{}, imdraw.Vec2{X: 5, Y: 5},
		imdraw.ColorTransparent, imdraw.ColorTransparent, imdraw.ColorTransparent, imdraw.ColorTransparent)
	if len(dl.VtxBuffer) != 8 {
		t.Errorf("transparent rect emitted %d vertices", len(dl.VtxBuffer)-8)
	}
}

func TestBezierSubdivisionDepth(t *testing.T) {
	start := imdraw.Vec2{X: 0, Y: 0}
	end := imdraw.Vec2{X: 100, Y: 0}

	// With a negligible tolerance no piece of a curved bezier is ever flat
	// enough, so subdivision stops at the depth cap and drops the pieces.
	dl := newTestList(imdraw.DrawListFlagsNone)
	dl.SharedData().CurveTessellationTol = 1e-20
	dl.PathLineTo(start)
	dl.PathBezierCubicCurveTo(imdraw.Vec2{X: 0, Y: 100}, imdraw.Vec2{X: 100, Y: 100}, end, 0)
	if diff := cmp.Diff([]imdraw.Vec2{start}, dl.Path()); diff != "" {
		t.Errorf("cubic path mismatch (-want +got):\n%s", diff)
	}
	dl.PathClear()
	dl.PathLineTo(start)
	dl.PathBezierQuadraticCurveTo(imdraw.Vec2{X: 50, Y: 100}, end, 0)
	if diff := cmp.Diff([]imdraw.Vec2{start}, dl.Path()); diff != "" {
		t.Errorf("quadratic path mismatch (-want +got):\n%s", diff)
	}
	dl.PathClear()
	dl.SharedData().CurveTessellationTol = 0
	dl.PathLineTo(start)
	mustPanic(t, "zero tolerance", func() {
		dl.PathBezierCubicCurveTo(imdraw.Vec2{X: 0, Y: 100}, imdraw.Vec2{X: 100, Y: 100}, end, 0)
	})
	dl.PathClear()

	// A small tolerance yields at most one point per leaf of a depth 10 tree.
	dl.SharedData().CurveTessellationTol = 1e-3
	dl.PathLineTo(start)
	dl.PathBezierCubicCurveTo(imdraw.Vec2{X: 0, Y: 100}, imdraw.Vec2{X: 100, Y: 100}, end, 0)
	path := dl.Path()
	if n := len(path) - 1; n < 2 || n > 1<<10 {
		t.Errorf("cubic flattened into %d points, want 2..1024", n)
	}
	if path[len(path)-1] != end {
		t.Errorf("cubic ends at %v, want %v", path[len(path)-1], end)
	}

	// A straight curve is flat at the first level.
	dl.PathClear()
	dl.SharedData().CurveTessellationTol = imdraw.DefaultCurveTessellationTol
	dl.PathLineTo(start)
	dl.PathBezierCubicCurveTo(imdraw.Vec2{X: 25, Y: 0}, imdraw.Vec2{X: 75, Y: 0}, end, 0)
	if diff := cmp.Diff([]imdraw.Vec2{start, end}, dl.Path()); diff != "" {
		t.Errorf("straight cubic mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkAddRectFilled(b *testing.B) {
	dl := newTestList(imdraw.DrawListFlagsAntiAliasedFill)
	for b.Loop() {
		dl.ResetForNewFrame()
		dl.PushClipRectFullScreen()
		for i := range 100 {
			x := float32(i)
			dl.AddRectFilled(imdraw.Vec2{X: x, Y: x}, imdraw.Vec2{X: x + 10, Y: x + 10}, imdraw.ColorWhite, 4, imdraw.DrawFlagsNone)
		}
	}
}
