package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/imdraw"
)

// GLFWWindow adapts a GLFW window to the frame context: it reports the
// display size and framebuffer scale and forwards resizes.
type GLFWWindow struct {
	window *glfw.Window
}

// NewGLFWWindow wraps window and routes framebuffer resizes to ctx.
func NewGLFWWindow(window *glfw.Window, ctx *imdraw.Context) *GLFWWindow {
	w := &GLFWWindow{window: window}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		ctx.Resize(width, height)
	})
	return w
}

// Metrics returns the window size in display units and the framebuffer
// pixels per unit, as NewFrame expects them.
func (w *GLFWWindow) Metrics() (displaySize, framebufferScale imdraw.Vec2) {
	ww, wh := w.window.GetSize()
	fw, fh := w.window.GetFramebufferSize()
	displaySize = imdraw.Vec2{X: float32(ww), Y: float32(wh)}
	framebufferScale = imdraw.Vec2{X: 1, Y: 1}
	if ww > 0 && wh > 0 {
		framebufferScale = imdraw.Vec2{X: float32(fw) / float32(ww), Y: float32(fh) / float32(wh)}
	}
	return displaySize, framebufferScale
}

// MousePos returns the cursor position in display units.
func (w *GLFWWindow) MousePos() imdraw.Vec2 {
	x, y := w.window.GetCursorPos()
	return imdraw.Vec2{X: float32(x), Y: float32(y)}
}

// DrawSoftwareCursor draws the atlas cursor sprite at the mouse position
// on the foreground list, with a drop shadow. The OS cursor is hidden
// while the mouse is over the window.
func (w *GLFWWindow) DrawSoftwareCursor(dl *imdraw.DrawList, atlas *imdraw.FontAtlas, cursor imdraw.MouseCursor, scale float32) {
	offset, size, uvBorder, uvFill, ok := atlas.GetMouseCursorTexData(cursor)
	if !ok {
		w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		return
	}
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)

	pos := w.MousePos().Sub(offset.Mul(scale))
	sz := size.Mul(scale)
	shadow := imdraw.RGBA(0, 0, 0, 48)
	for _, dx := range []float32{1, 2} {
		p := pos.Add(imdraw.Vec2{X: dx * scale})
		dl.AddImage(atlas.TexID, p, p.Add(sz), uvBorder[0], uvBorder[1], shadow)
	}
	dl.AddImage(atlas.TexID, pos, pos.Add(sz), uvBorder[0], uvBorder[1], imdraw.ColorBlack)
	dl.AddImage(atlas.TexID, pos, pos.Add(sz), uvFill[0], uvFill[1], imdraw.ColorWhite)
}
