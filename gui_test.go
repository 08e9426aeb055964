package imdraw_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/imdraw"
)

// mockRenderer is a test renderer that records what it is given.
type mockRenderer struct {
	renderCalls int
	lastData    *imdraw.DrawData
	lists       int
	err         error
	width       int
	height      int
}

func (m *mockRenderer) Render(data *imdraw.DrawData) error {
	m.renderCalls++
	m.lastData = data
	m.lists = len(data.CmdLists)
	return m.err
}

func (m *mockRenderer) Resize(width, height int) {
	m.width, m.height = width, height
}

func newTestContext(t *testing.T, renderer imdraw.Renderer, opts ...imdraw.Option) (*imdraw.Context, *imdraw.FontAtlas) {
	t.Helper()
	atlas, _ := buildASCIIAtlas(t, imdraw.FontAtlasFlagsNone)
	atlas.SetTexID(7)
	ctx := imdraw.New(renderer, append([]imdraw.Option{imdraw.WithAtlas(atlas)}, opts...)...)
	t.Cleanup(ctx.Shutdown)
	return ctx, atlas
}

func TestContextBasicUsage(t *testing.T) {
	renderer := &mockRenderer{}
	ctx, atlas := newTestContext(t, renderer)
	displaySize := imdraw.Vec2{X: 800, Y: 600}

	if err := ctx.NewFrame(displaySize, imdraw.Vec2{X: 2, Y: 2}); err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if !atlas.Locked {
		t.Error("atlas not locked during the frame")
	}
	if ctx.Font() != atlas.Fonts[0] {
		t.Error("context font is not the atlas' first font")
	}

	first := ctx.NewDrawList()
	first.AddRectFilled(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 50, Y: 50}, imdraw.ColorRed, 0, imdraw.DrawFlagsNone)
	second := ctx.NewDrawList()
	second.AddText(imdraw.Vec2{X: 10, Y: 60}, imdraw.ColorWhite, "Hello World")
	fg := ctx.ForegroundDrawList()
	fg.AddLine(imdraw.Vec2{}, imdraw.Vec2{X: 100, Y: 100}, imdraw.ColorWhite, 1)

	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if renderer.renderCalls != 1 {
		t.Errorf("expected 1 render call, got %d", renderer.renderCalls)
	}
	if atlas.Locked {
		t.Error("atlas still locked after the frame")
	}

	data := renderer.lastData
	if data != ctx.DrawData() || !data.Valid {
		t.Fatal("renderer did not receive the frame's draw data")
	}
	// The background list is empty and skipped.
	if renderer.lists != 3 || data.CmdLists[0] != first || data.CmdLists[1] != second || data.CmdLists[2] != fg {
		t.Errorf("got %d lists in the wrong order", renderer.lists)
	}
	if diff := cmp.Diff(displaySize, data.DisplaySize); diff != "" {
		t.Errorf("DisplaySize mismatch (-want +got):\n%s", diff)
	}
	if data.FramebufferScale != (imdraw.Vec2{X: 2, Y: 2}) {
		t.Errorf("FramebufferScale = %v", data.FramebufferScale)
	}
	for i, dl := range data.CmdLists {
		cmd := dl.CmdBuffer[0]
		if cmd.TextureID != 7 {
			t.Errorf("list %d TextureID = %d, want 7", i, cmd.TextureID)
		}
		if cmd.ClipRect != (imdraw.Vec4{X: 0, Y: 0, Z: 800, W: 600}) {
			t.Errorf("list %d ClipRect = %v", i, cmd.ClipRect)
		}
	}
}

func TestContextFlagsFromOptions(t *testing.T) {
	ctx, _ := newTestContext(t, nil,
		imdraw.WithAntiAliasedLines(false),
		imdraw.WithAntiAliasedFill(true),
		imdraw.WithRendererHasVtxOffset(true),
		imdraw.WithFontSize(20),
	)
	if err := ctx.NewFrame(imdraw.Vec2{X: 100, Y: 100}, imdraw.Vec2{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	dl := ctx.NewDrawList()
	want := imdraw.DrawListFlagsAntiAliasedLinesUseTex | imdraw.DrawListFlagsAntiAliasedFill | imdraw.DrawListFlagsAllowVtxOffset
	if dl.Flags != want {
		t.Errorf("Flags = %b, want %b", dl.Flags, want)
	}
	if ctx.SharedData().FontSize != 20 {
		t.Errorf("FontSize = %v, want 20", ctx.SharedData().FontSize)
	}
	ctx.Render()
}

func TestContextBuildsAtlasOnFirstFrame(t *testing.T) {
	ctx := imdraw.New(nil)
	defer ctx.Shutdown()
	if ctx.Atlas().IsBuilt() {
		t.Fatal("atlas built before the first frame")
	}
	if err := ctx.NewFrame(imdraw.Vec2{X: 100, Y: 100}, imdraw.Vec2{X: 1, Y: 1}); err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if !ctx.Atlas().IsBuilt() || ctx.Font() == nil {
		t.Error("atlas not built by NewFrame")
	}
	if err := ctx.EndFrame(); err != nil {
		t.Errorf("EndFrame without renderer: %v", err)
	}
}

func TestContextAtlasErrorFailsFrame(t *testing.T) {
	atlas := imdraw.NewFontAtlas()
	if _, err := atlas.AddFontFromMemoryTTF([]byte("bogus"), 13, nil, nil); err != nil {
		t.Fatal(err)
	}
	ctx := imdraw.New(nil, imdraw.WithAtlas(atlas))
	err := ctx.NewFrame(imdraw.Vec2{X: 100, Y: 100}, imdraw.Vec2{X: 1, Y: 1})
	if !errors.Is(err, imdraw.ErrInvalidFontData) {
		t.Fatalf("NewFrame error = %v, want ErrInvalidFontData", err)
	}
	if atlas.Locked {
		t.Error("failed frame left the atlas locked")
	}
}

func TestContextRendererError(t *testing.T) {
	renderErr := errors.New("device lost")
	ctx, _ := newTestContext(t, &mockRenderer{err: renderErr})
	if err := ctx.NewFrame(imdraw.Vec2{X: 100, Y: 100}, imdraw.Vec2{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if err := ctx.EndFrame(); !errors.Is(err, renderErr) {
		t.Errorf("EndFrame error = %v, want %v", err, renderErr)
	}
}

func TestContextFrameContract(t *testing.T) {
	ctx, atlas := newTestContext(t, &mockRenderer{})

	mustPanic(t, "NewDrawList outside frame", func() { ctx.NewDrawList() })
	mustPanic(t, "ForegroundDrawList outside frame", func() { ctx.ForegroundDrawList() })
	mustPanic(t, "Render without NewFrame", func() { ctx.Render() })

	if err := ctx.NewFrame(imdraw.Vec2{X: 100, Y: 100}, imdraw.Vec2{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	mustPanic(t, "NewFrame twice", func() { _ = ctx.NewFrame(imdraw.Vec2{X: 100, Y: 100}, imdraw.Vec2{X: 1, Y: 1}) })
	mustPanic(t, "AddFont during frame", func() { _, _ = atlas.AddFontDefault(nil) })
	ctx.Render()

	// Lists of the previous frame are recycled on the next one.
	if err := ctx.NewFrame(imdraw.Vec2{X: 100, Y: 100}, imdraw.Vec2{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if ctx.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", ctx.FrameCount)
	}
	if data := ctx.Render(); len(data.CmdLists) != 0 || data.TotalVtxCount != 0 {
		t.Errorf("empty frame produced %d lists", len(data.CmdLists))
	}
}

func TestContextResize(t *testing.T) {
	renderer := &mockRenderer{}
	ctx, _ := newTestContext(t, renderer)
	ctx.Resize(640, 480)
	if renderer.width != 640 || renderer.height != 480 {
		t.Errorf("renderer size = %dx%d, want 640x480", renderer.width, renderer.height)
	}
}
