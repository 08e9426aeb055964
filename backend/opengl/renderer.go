// Package opengl provides an OpenGL 4.1 backend for imdraw.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/imdraw"
)

// Renderer draws imdraw.DrawData using OpenGL.
type Renderer struct {
	shader       uint32
	vao, vbo     uint32
	ebo          uint32
	fontTex      uint32
	projLoc      int32
	texLoc       int32
	hasTexLoc    int32
	rgbaLoc      int32
	width        int
	height       int
	rgbaTextures map[uint32]bool // Textures sampled as RGBA instead of coverage
}

// vertexShaderSource transforms display coordinates with an orthographic
// projection covering DrawData.DisplayPos..DisplayPos+DisplaySize.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 Position;
layout (location = 1) in vec2 UV;
layout (location = 2) in vec4 Color;

uniform mat4 ProjMtx;

out vec2 FragUV;
out vec4 FragColor;

void main() {
    FragUV = UV;
    FragColor = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
` + "\x00"

// fragmentShaderSource samples the bound texture. The font atlas is an
// Alpha8 texture uploaded as GL_RED, so its red channel is coverage; RGBA
// images registered with RegisterRGBATexture modulate the vertex color.
const fragmentShaderSource = `
#version 410 core
in vec2 FragUV;
in vec4 FragColor;

uniform sampler2D Texture;
uniform bool HasTexture;
uniform bool TextureIsRGBA;

layout (location = 0) out vec4 OutColor;

void main() {
    if (!HasTexture) {
        OutColor = FragColor;
        return;
    }
    vec4 t = texture(Texture, FragUV.st);
    OutColor = TextureIsRGBA ? FragColor * t : vec4(FragColor.rgb, FragColor.a * t.r);
}
` + "\x00"

// indexType is the GL type matching imdraw.DrawIdx.
var indexType uint32 = gl.UNSIGNED_SHORT

func init() {
	if unsafe.Sizeof(imdraw.DrawIdx(0)) == 4 {
		indexType = gl.UNSIGNED_INT
	}
}

// NewRenderer creates a new OpenGL renderer for a width×height viewport.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:        width,
		height:       height,
		rgbaTextures: make(map[uint32]bool),
	}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("ProjMtx\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("Texture\x00"))
	r.hasTexLoc = gl.GetUniformLocation(r.shader, gl.Str("HasTexture\x00"))
	r.rgbaLoc = gl.GetUniformLocation(r.shader, gl.Str("TextureIsRGBA\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// Vertex layout: Pos (2 floats) + UV (2 floats) + Col (1 uint32)
	stride := int32(unsafe.Sizeof(imdraw.Vertex{}))

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, unsafe.Offsetof(imdraw.Vertex{}.Pos))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(imdraw.Vertex{}.UV))
	gl.EnableVertexAttribArray(1)

	// Color is normalized uint8x4
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(imdraw.Vertex{}.Col))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return r, nil
}

// CreateFontsTexture builds the atlas if needed, uploads its Alpha8
// pixels and stores the texture name as the atlas TexID.
func (r *Renderer) CreateFontsTexture(atlas *imdraw.FontAtlas) error {
	tex, err := atlas.GetTexDataAsAlpha8()
	if err != nil {
		return fmt.Errorf("font atlas: %w", err)
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.GenTextures(1, &r.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(tex.Width), int32(tex.Height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	atlas.SetTexID(imdraw.TextureID(r.fontTex))
	imdraw.Logger().Debug("opengl: font texture uploaded", "texture", r.fontTex, "width", tex.Width, "height", tex.Height)
	return nil
}

// FontTextureID returns the OpenGL texture name of the font atlas.
func (r *Renderer) FontTextureID() uint32 {
	return r.fontTex
}

// RegisterRGBATexture marks a texture as RGBA (vs alpha-only).
// RGBA textures use all four channels for color, while alpha-only textures
// use just the R channel for alpha (tinted by vertex color).
func (r *Renderer) RegisterRGBATexture(textureID uint32) {
	r.rgbaTextures[textureID] = true
}

// UnregisterRGBATexture removes a texture from the RGBA tracking.
func (r *Renderer) UnregisterRGBATexture(textureID uint32) {
	delete(r.rgbaTextures, textureID)
}

// Resize updates the viewport size in framebuffer pixels.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Render draws every list of data in order.
func (r *Renderer) Render(data *imdraw.DrawData) error {
	if data == nil || !data.Valid || len(data.CmdLists) == 0 {
		return nil
	}
	fbWidth := int32(data.DisplaySize.X * data.FramebufferScale.X)
	fbHeight := int32(data.DisplaySize.Y * data.FramebufferScale.Y)
	if fbWidth <= 0 || fbHeight <= 0 {
		return nil
	}

	// Save GL state
	var lastProgram, lastTexture int32
	var lastBlendSrc, lastBlendDst int32
	var lastScissorBox [4]int32
	var blendEnabled, depthEnabled, cullEnabled, scissorEnabled bool

	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &lastBlendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &lastBlendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	blendEnabled = gl.IsEnabled(gl.BLEND)
	depthEnabled = gl.IsEnabled(gl.DEPTH_TEST)
	cullEnabled = gl.IsEnabled(gl.CULL_FACE)
	scissorEnabled = gl.IsEnabled(gl.SCISSOR_TEST)

	r.setupRenderState(data)

	idxSize := int(unsafe.Sizeof(imdraw.DrawIdx(0)))
	clipOff := data.DisplayPos
	clipScale := data.FramebufferScale

	for _, dl := range data.CmdLists {
		// Callback-only lists carry no geometry and gl.Ptr rejects empty slices.
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		if len(dl.VtxBuffer) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(dl.VtxBuffer)*int(unsafe.Sizeof(imdraw.Vertex{})),
				gl.Ptr(dl.VtxBuffer), gl.STREAM_DRAW)
		}

		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		if len(dl.IdxBuffer) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(dl.IdxBuffer)*idxSize,
				gl.Ptr(dl.IdxBuffer), gl.STREAM_DRAW)
		}

		for i := range dl.CmdBuffer {
			cmd := &dl.CmdBuffer[i]
			if cmd.UserCallback != nil {
				cmd.UserCallback(dl, cmd)
				r.setupRenderState(data)
				continue
			}
			if cmd.ElemCount == 0 {
				continue
			}

			// Clip rectangle in framebuffer space, Y flipped for GL
			minX := (cmd.ClipRect.X - clipOff.X) * clipScale.X
			minY := (cmd.ClipRect.Y - clipOff.Y) * clipScale.Y
			maxX := (cmd.ClipRect.Z - clipOff.X) * clipScale.X
			maxY := (cmd.ClipRect.W - clipOff.Y) * clipScale.Y
			if maxX <= minX || maxY <= minY {
				continue
			}
			gl.Scissor(int32(minX), fbHeight-int32(maxY), int32(maxX-minX), int32(maxY-minY))

			r.bindTexture(cmd.TextureID)

			if len(dl.IdxBuffer) == 0 {
				// De-indexed data: IdxOffset addresses vertices
				gl.DrawArrays(gl.TRIANGLES, int32(cmd.IdxOffset), int32(cmd.ElemCount))
				continue
			}
			gl.DrawElementsBaseVertexWithOffset(
				gl.TRIANGLES,
				int32(cmd.ElemCount),
				indexType,
				uintptr(cmd.IdxOffset)*uintptr(idxSize),
				int32(cmd.VtxOffset),
			)
		}
	}

	// Restore GL state
	gl.UseProgram(uint32(lastProgram))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
	gl.BlendFunc(uint32(lastBlendSrc), uint32(lastBlendDst))
	setEnabled(gl.BLEND, blendEnabled)
	setEnabled(gl.DEPTH_TEST, depthEnabled)
	setEnabled(gl.CULL_FACE, cullEnabled)
	setEnabled(gl.SCISSOR_TEST, scissorEnabled)
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
	gl.BindVertexArray(0)

	if err := gl.GetError(); err != gl.NO_ERROR {
		return fmt.Errorf("opengl: render error 0x%x", err)
	}
	return nil
}

// bindTexture binds id for the next draw. Zero draws untextured, which
// only happens before the font texture is uploaded.
func (r *Renderer) bindTexture(id imdraw.TextureID) {
	tex := uint32(id)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(r.hasTexLoc, boolToInt32(tex != 0))
	gl.Uniform1i(r.rgbaLoc, boolToInt32(r.rgbaTextures[tex]))
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// setupRenderState binds the program and buffers and sets the projection
// for data's display rectangle. It is re-run after each user callback.
func (r *Renderer) setupRenderState(data *imdraw.DrawData) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(data.DisplaySize.X*data.FramebufferScale.X), int32(data.DisplaySize.Y*data.FramebufferScale.Y))

	gl.UseProgram(r.shader)
	l := data.DisplayPos.X
	t := data.DisplayPos.Y
	proj := orthoMatrix(l, l+data.DisplaySize.X, t+data.DisplaySize.Y, t, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.texLoc, 0)
	gl.BindVertexArray(r.vao)
}

func setEnabled(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	// Linked into the program now
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", string(log))
	}
	return shader, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
