// Example draws shapes and text with imdraw in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The example creates a GLFW window, uploads the font atlas through the
// OpenGL renderer and rebuilds a few draw lists every frame.
package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/imdraw"
	"github.com/go-theft-auto/imdraw/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "imdraw example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	imdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fw, fh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fw, fh)
	if err != nil {
		return fmt.Errorf("imdraw renderer: %w", err)
	}
	defer renderer.Delete()

	atlas := imdraw.NewFontAtlas()
	cfg := imdraw.DefaultFontConfig()
	cfg.SizePixels = 18
	if _, err := atlas.AddFontDefault(&cfg); err != nil {
		return fmt.Errorf("add font: %w", err)
	}
	if err := renderer.CreateFontsTexture(atlas); err != nil {
		return err
	}

	ctx := imdraw.New(renderer, imdraw.WithAtlas(atlas), imdraw.WithRendererHasVtxOffset(true))
	defer ctx.Shutdown()
	win := opengl.NewGLFWWindow(window, ctx)

	for frame := 0; !window.ShouldClose(); frame++ {
		glfw.PollEvents()

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		displaySize, fbScale := win.Metrics()
		if err := ctx.NewFrame(displaySize, fbScale); err != nil {
			return fmt.Errorf("new frame: %w", err)
		}
		drawScene(ctx.NewDrawList(), float32(frame)/60)
		win.DrawSoftwareCursor(ctx.ForegroundDrawList(), atlas, imdraw.MouseCursorArrow, 1)

		if err := ctx.EndFrame(); err != nil {
			return fmt.Errorf("imdraw render: %w", err)
		}
		window.SwapBuffers()
	}
	return nil
}

func drawScene(dl *imdraw.DrawList, t float32) {
	dl.AddRectFilled(imdraw.Vec2{X: 20, Y: 20}, imdraw.Vec2{X: 380, Y: 200}, imdraw.RGBA(40, 44, 52, 255), 8, imdraw.DrawFlagsNone)
	dl.AddRect(imdraw.Vec2{X: 20, Y: 20}, imdraw.Vec2{X: 380, Y: 200}, imdraw.RGBA(97, 175, 239, 255), 8, imdraw.DrawFlagsNone, 2)
	dl.AddText(imdraw.Vec2{X: 36, Y: 32}, imdraw.ColorWhite, "Hello from imdraw!")

	center := imdraw.Vec2{X: 120, Y: 130}
	dl.AddCircleFilled(center, 40, imdraw.RGBA(224, 108, 117, 255), 0)
	angle := t * 2
	hand := imdraw.Vec2{X: center.X + 36*float32(math.Cos(float64(angle))), Y: center.Y + 36*float32(math.Sin(float64(angle)))}
	dl.AddLine(center, hand, imdraw.ColorWhite, 3)

	dl.AddBezierCubic(imdraw.Vec2{X: 200, Y: 170}, imdraw.Vec2{X: 240, Y: 80}, imdraw.Vec2{X: 320, Y: 180}, imdraw.Vec2{X: 360, Y: 90}, imdraw.RGBA(152, 195, 121, 255), 2, 0)
	dl.AddTriangleFilled(imdraw.Vec2{X: 420, Y: 200}, imdraw.Vec2{X: 500, Y: 40}, imdraw.Vec2{X: 580, Y: 200}, imdraw.RGBA(229, 192, 123, 255))

	clipMin, clipMax := imdraw.Vec2{X: 20, Y: 240}, imdraw.Vec2{X: 220, Y: 270}
	dl.AddRectFilled(clipMin, clipMax, imdraw.RGBA(60, 60, 70, 255), 0, imdraw.DrawFlagsNone)
	dl.RenderTextEllipsis(clipMin, clipMax, clipMax.X, clipMax.X, imdraw.ColorWhite, "This sentence is far too long for its box")
}
