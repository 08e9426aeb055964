// Package imdraw turns drawing requests into batches of textured triangles
// for an immediate-mode GUI, and builds the glyph atlas those batches sample
// for text. Geometry is written into DrawLists, gathered into DrawData at
// the end of a frame and handed to a Renderer.
package imdraw

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product.
func (v Vec2) MulVec(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

// Vec4 holds a rectangle as (X, Y) = min and (Z, W) = max, or four scalars.
type Vec4 struct {
	X, Y, Z, W float32
}

// Vertex represents a vertex for UI rendering.
// Memory layout matches OpenGL vertex attribute expectations.
type Vertex struct {
	Pos Vec2   // Position (x, y)
	UV  Vec2   // Texture coordinates (u, v)
	Col uint32 // RGBA packed color
}

// TextureID is a renderer texture handle. Zero means no texture.
type TextureID uint32

// DrawCallback is invoked by the renderer in place of drawing a command.
type DrawCallback func(dl *DrawList, cmd *DrawCmd)

// DrawCmd is one batch: a range of indices sharing a clip rectangle, a
// texture and a vertex offset, or a user callback.
type DrawCmd struct {
	ClipRect  Vec4      // Clip rectangle (x1, y1, x2, y2)
	TextureID TextureID // Texture bound while drawing
	VtxOffset uint32    // Added to every index of this command
	IdxOffset uint32    // First index in the index buffer
	ElemCount uint32    // Number of indices to draw

	UserCallback     DrawCallback
	UserCallbackData any
}

// drawCmdHeader is the part of a DrawCmd that decides batching.
type drawCmdHeader struct {
	ClipRect  Vec4
	TextureID TextureID
	VtxOffset uint32
}

func (c *DrawCmd) header() drawCmdHeader {
	return drawCmdHeader{ClipRect: c.ClipRect, TextureID: c.TextureID, VtxOffset: c.VtxOffset}
}

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorYellow      uint32 = 0xFF00FFFF
	ColorCyan        uint32 = 0xFFFFFF00
	ColorMagenta     uint32 = 0xFFFF00FF
	ColorGray        uint32 = 0xFF808080
	ColorTransparent uint32 = 0x00000000

	colorAlphaMask  uint32 = 0xFF000000
	colorAlphaShift        = 24
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// RGBAf creates a packed color from float components (0.0-1.0).
func RGBAf(r, g, b, a float32) uint32 {
	return RGBA(
		uint8(clampf(r, 0, 1)*255+0.5),
		uint8(clampf(g, 0, 1)*255+0.5),
		uint8(clampf(b, 0, 1)*255+0.5),
		uint8(clampf(a, 0, 1)*255+0.5),
	)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// transparent reports whether col has zero alpha.
func transparent(col uint32) bool {
	return col&colorAlphaMask == 0
}
