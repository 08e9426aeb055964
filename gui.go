package imdraw

// Renderer consumes the draw data of a frame.
type Renderer interface {
	Render(data *DrawData) error
	Resize(width, height int)
}

// Context drives frames: it owns the shared tessellation data, a
// background and a foreground draw list, and hands out per-frame draw
// lists. Between NewFrame and Render the font atlas is locked.
type Context struct {
	renderer   Renderer
	atlas      *FontAtlas
	sharedData *DrawListSharedData
	drawData   DrawData

	background *DrawList
	foreground *DrawList
	lists      []*DrawList // Acquired through NewDrawList this frame

	antiAliasedLines       bool
	antiAliasedLinesUseTex bool
	antiAliasedFill        bool
	rendererHasVtxOffset   bool
	curveTessellationTol   float32
	circleMaxError         float32
	fontSize               float32

	DisplaySize      Vec2
	FramebufferScale Vec2
	FrameCount       uint64
	inFrame          bool
}

// Option configures a Context.
type Option func(*Context)

// WithAtlas uses a caller-provided font atlas instead of a default one.
func WithAtlas(atlas *FontAtlas) Option {
	return func(c *Context) { c.atlas = atlas }
}

// WithAntiAliasedLines toggles AA fringes on stroked paths.
func WithAntiAliasedLines(enabled bool) Option {
	return func(c *Context) { c.antiAliasedLines = enabled }
}

// WithAntiAliasedLinesUseTex toggles drawing thin AA lines from the baked
// line texture.
func WithAntiAliasedLinesUseTex(enabled bool) Option {
	return func(c *Context) { c.antiAliasedLinesUseTex = enabled }
}

// WithAntiAliasedFill toggles AA fringes on filled shapes.
func WithAntiAliasedFill(enabled bool) Option {
	return func(c *Context) { c.antiAliasedFill = enabled }
}

// WithRendererHasVtxOffset declares that the renderer honours
// DrawCmd.VtxOffset, letting lists exceed 64K vertices with 16-bit indices.
func WithRendererHasVtxOffset(enabled bool) Option {
	return func(c *Context) { c.rendererHasVtxOffset = enabled }
}

// WithCircleTessellationMaxError sets the maximum chord error of
// automatically tessellated circles.
func WithCircleTessellationMaxError(maxError float32) Option {
	return func(c *Context) { c.circleMaxError = maxError }
}

// WithCurveTessellationTol sets the bezier flatness tolerance.
func WithCurveTessellationTol(tol float32) Option {
	return func(c *Context) { c.curveTessellationTol = tol }
}

// WithFontSize sets the text size used by DrawList.AddText. Zero uses
// the size the font was built at.
func WithFontSize(size float32) Option {
	return func(c *Context) { c.fontSize = size }
}

// New creates a frame context. renderer may be nil when the caller only
// wants the DrawData returned by Render.
func New(renderer Renderer, opts ...Option) *Context {
	c := &Context{
		renderer:               renderer,
		sharedData:             NewDrawListSharedData(),
		antiAliasedLines:       true,
		antiAliasedLinesUseTex: true,
		antiAliasedFill:        true,
		curveTessellationTol:   DefaultCurveTessellationTol,
		circleMaxError:         DefaultCircleTessellationMaxError,
		FramebufferScale:       Vec2{1, 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.atlas == nil {
		c.atlas = NewFontAtlas()
	}
	return c
}

// Atlas returns the font atlas.
func (c *Context) Atlas() *FontAtlas { return c.atlas }

// SharedData returns the tessellation data shared by the context's lists.
func (c *Context) SharedData() *DrawListSharedData { return c.sharedData }

// Font returns the font used by AddText.
func (c *Context) Font() *Font { return c.sharedData.Font }

// NewFrame starts a frame. The atlas is built if needed and locked, the
// shared data is refreshed and the background and foreground lists are
// reset with a full-screen clip and the font texture bound.
func (c *Context) NewFrame(displaySize, framebufferScale Vec2) error {
	assert(!c.inFrame, "NewFrame called twice without Render")
	if !c.atlas.IsBuilt() {
		if err := c.atlas.Build(); err != nil {
			return err
		}
	}

	c.FrameCount++
	c.DisplaySize = displaySize
	c.FramebufferScale = framebufferScale
	c.atlas.Locked = true
	c.inFrame = true

	c.updateSharedData()
	c.releaseLists()

	c.background = c.resetList(c.background)
	c.foreground = c.resetList(c.foreground)
	return nil
}

func (c *Context) updateSharedData() {
	d := c.sharedData
	d.Font = c.atlas.Fonts[0]
	d.FontSize = c.fontSize
	if d.FontSize <= 0 {
		d.FontSize = d.Font.FontSize
	}
	d.TexUvWhitePixel = c.atlas.TexUvWhitePixel
	d.TexUvLines = c.atlas.TexUvLines[:]
	d.ClipRectFullscreen = Vec4{0, 0, c.DisplaySize.X, c.DisplaySize.Y}
	d.CurveTessellationTol = c.curveTessellationTol
	d.SetCircleTessellationMaxError(c.circleMaxError)

	d.InitialFlags = DrawListFlagsNone
	if c.antiAliasedLines {
		d.InitialFlags |= DrawListFlagsAntiAliasedLines
	}
	if c.antiAliasedLinesUseTex && c.atlas.Flags&FontAtlasFlagsNoBakedLines == 0 {
		d.InitialFlags |= DrawListFlagsAntiAliasedLinesUseTex
	}
	if c.antiAliasedFill {
		d.InitialFlags |= DrawListFlagsAntiAliasedFill
	}
	if c.rendererHasVtxOffset {
		d.InitialFlags |= DrawListFlagsAllowVtxOffset
	}
}

// resetList prepares dl (acquiring one when nil) for a frame.
func (c *Context) resetList(dl *DrawList) *DrawList {
	if dl == nil {
		dl = AcquireDrawList(c.sharedData)
	} else {
		dl.ResetForNewFrame()
	}
	dl.PushTextureID(c.atlas.TexID)
	dl.PushClipRectFullScreen()
	return dl
}

func (c *Context) releaseLists() {
	for _, dl := range c.lists {
		ReleaseDrawList(dl)
	}
	clear(c.lists)
	c.lists = c.lists[:0]
}

// BackgroundDrawList returns the list rendered before all others.
func (c *Context) BackgroundDrawList() *DrawList {
	assert(c.inFrame, "BackgroundDrawList outside of a frame")
	return c.background
}

// ForegroundDrawList returns the list rendered after all others.
func (c *Context) ForegroundDrawList() *DrawList {
	assert(c.inFrame, "ForegroundDrawList outside of a frame")
	return c.foreground
}

// NewDrawList returns a list for this frame only, rendered in creation
// order between the background and foreground lists.
func (c *Context) NewDrawList() *DrawList {
	assert(c.inFrame, "NewDrawList outside of a frame")
	dl := c.resetList(nil)
	c.lists = append(c.lists, dl)
	return dl
}

// Render ends the frame and assembles its DrawData. The returned data
// stays valid until the next NewFrame. The atlas is unlocked.
func (c *Context) Render() *DrawData {
	assert(c.inFrame, "Render without NewFrame")
	d := &c.drawData
	d.Clear()
	d.AddDrawList(c.background)
	for _, dl := range c.lists {
		d.AddDrawList(dl)
	}
	d.AddDrawList(c.foreground)
	d.DisplayPos = Vec2{}
	d.DisplaySize = c.DisplaySize
	d.FramebufferScale = c.FramebufferScale
	d.Valid = true

	c.atlas.Locked = false
	c.inFrame = false
	Logger().Debug("imdraw: frame rendered",
		"frame", c.FrameCount, "lists", len(d.CmdLists),
		"vertices", d.TotalVtxCount, "indices", d.TotalIdxCount)
	return d
}

// EndFrame renders the frame through the renderer.
func (c *Context) EndFrame() error {
	d := c.Render()
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Render(d)
}

// DrawData returns the data assembled by the last Render.
func (c *Context) DrawData() *DrawData { return &c.drawData }

// Resize notifies the renderer of a display size change.
func (c *Context) Resize(width, height int) {
	if c.renderer != nil {
		c.renderer.Resize(width, height)
	}
}

// Shutdown returns every draw list to the pool and unlocks the atlas.
func (c *Context) Shutdown() {
	c.drawData.Clear()
	c.releaseLists()
	ReleaseDrawList(c.background)
	ReleaseDrawList(c.foreground)
	c.background, c.foreground = nil, nil
	c.atlas.Locked = false
	c.inFrame = false
}
