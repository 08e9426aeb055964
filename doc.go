/*
Package imdraw is the drawing core of an immediate-mode GUI, modelled on
Dear ImGui's draw lists and font atlas.

# Overview

Every frame, UI code appends shapes and text to one or more DrawList
values. A DrawList turns them into triangles: a vertex buffer, an index
buffer and a list of draw commands, each command covering a run of
indices that share one clip rectangle and one texture. A renderer backend
uploads the buffers and issues one indexed draw call per command.

Text and anti-aliased lines are drawn from a single Alpha8 texture built
by a FontAtlas. The atlas rasterizes TrueType/OpenType glyphs, packs them
together with mouse cursor sprites, pre-baked line strips and user custom
rectangles, and exposes the white texel every solid primitive samples.

# Quick Start

	// Setup
	renderer, _ := opengl.NewRenderer(1920, 1080)
	atlas := imdraw.NewFontAtlas()
	atlas.AddFontDefault(nil)
	renderer.CreateFontsTexture(atlas)
	ctx := imdraw.New(renderer, imdraw.WithAtlas(atlas))

	// Frame loop
	for !window.ShouldClose() {
	    ctx.NewFrame(imdraw.Vec2{X: 1920, Y: 1080}, imdraw.Vec2{X: 1, Y: 1})

	    dl := ctx.NewDrawList()
	    dl.AddRectFilled(imdraw.Vec2{X: 10, Y: 10}, imdraw.Vec2{X: 200, Y: 80}, imdraw.ColorGray, 6, imdraw.DrawFlagsNone)
	    dl.AddText(imdraw.Vec2{X: 20, Y: 20}, imdraw.ColorWhite, "Hello World")

	    ctx.EndFrame()
	    window.SwapBuffers()
	}

# Draw Lists

Primitives:

	AddLine, AddRect, AddRectFilled, AddRectFilledMultiColor
	AddQuad, AddQuadFilled, AddTriangle, AddTriangleFilled
	AddCircle, AddCircleFilled, AddNgon, AddNgonFilled
	AddEllipse, AddEllipseFilled
	AddBezierCubic, AddBezierQuadratic
	AddPolyline, AddConvexPolyFilled
	AddImage, AddImageQuad, AddImageRounded
	AddText, AddTextFont

Paths are built with PathLineTo, PathArcTo, PathArcToFast, PathEllipticalArcTo,
PathBezierCubicCurveTo, PathBezierQuadraticCurveTo and PathRect, then
emitted with PathFillConvex or PathStroke.

Command state is stacked: PushClipRect/PopClipRect and
PushTextureID/PopTextureID. Consecutive commands with identical state are
merged, so changing state back and forth costs nothing when no geometry
was emitted in between.

Channels let callers emit geometry out of order: ChannelsSplit,
ChannelsSetCurrent and ChannelsMerge, or a standalone DrawListSplitter.

Low-level writers reserve space with PrimReserve and fill it with
PrimRect, PrimRectUV, PrimQuadUV or PrimWriteVtx/PrimWriteIdx. Unused
reservations are returned with PrimUnreserve.

# Index Size

DrawIdx is 16 bits by default. A renderer that honours DrawCmd.VtxOffset
can be declared with WithRendererHasVtxOffset; lists then start a new
command every 64K vertices. Build with the imdraw_idx32 tag for 32-bit
indices.

# Fonts

	atlas := imdraw.NewFontAtlas()
	font, err := atlas.AddFontFromFileTTF("Roboto.ttf", 16, nil, imdraw.GlyphRangesDefault())

	// Merge Greek glyphs from a second file into the same font
	cfg := imdraw.DefaultFontConfig()
	cfg.MergeMode = true
	atlas.AddFontFromFileTTF("Symbols.ttf", 16, &cfg, imdraw.GlyphRangesGreek())

	if err := atlas.Build(); err != nil {
	    // errors.Is(err, imdraw.ErrInvalidFontData)
	}

Glyph ranges are zero-terminated pairs of inclusive codepoints. Use
GlyphRangesBuilder or GlyphRangesFromTables to build them from text or
unicode range tables.

Custom rectangles reserve texture space for user pixels
(AddCustomRectRegular) or for glyphs drawn by the application
(AddCustomRectFontGlyph).

# Text Utilities

	lines := imdraw.WrapText(font, 16, text, maxWidth, imdraw.WrapModeAuto)
	short := imdraw.TruncateText(font, 16, text, maxWidth)
	dl.RenderTextEllipsis(min, max, clipMaxX, ellipsisMaxX, col, text)

WrapMode values: WrapModeWord, WrapModeChar, WrapModeAuto

# Logging

The package is silent by default. Install a *slog.Logger with SetLogger
to see atlas build statistics and frame diagnostics.

# Performance Optimizations

  - sync.Pool for DrawList buffer reuse (AcquireDrawList/ReleaseDrawList)
  - Batched rendering by clip rectangle and texture
  - Pre-computed circle vertices for small arcs
  - Anti-aliased thin lines drawn from baked texture strips
  - Text is clipped per line before any glyph is emitted
*/
package imdraw
