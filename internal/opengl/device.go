// Package opengl implements the gfx device contract on OpenGL 4.1 core.
//
// Every call must come from the goroutine that owns the current GL context.
package opengl

import (
	"fmt"
	"image"
	"log/slog"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-demo/core"
	"render-demo/gfx"
)

// Swapper presents the back buffer; *window.Window satisfies it.
type Swapper interface {
	SwapBuffers()
}

// Device owns the program pipeline that vertex and pixel stages attach to.
type Device struct {
	swapper  Swapper
	pipeline uint32

	viewportW int32
	viewportH int32
}

var _ gfx.Device = (*Device)(nil)

// NewDevice initialises OpenGL. The window's context must already be current.
func NewDevice(swapper Swapper) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("opengl initialised",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)

	d := &Device{swapper: swapper}
	gl.GenProgramPipelines(1, &d.pipeline)
	gl.BindProgramPipeline(d.pipeline)
	return d, nil
}

// SetViewport resizes the GL viewport to the framebuffer size.
func (d *Device) SetViewport(width, height int) {
	d.viewportW = int32(width)
	d.viewportH = int32(height)
	gl.Viewport(0, 0, d.viewportW, d.viewportH)
}

// vertexBuffer carries the VAO that records the attribute layout.
type vertexBuffer struct {
	vao uint32
	vbo uint32
}

func (b *vertexBuffer) Release() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteVertexArrays(1, &b.vao)
		b.vbo, b.vao = 0, 0
	}
}

type indexBuffer struct {
	ebo uint32
}

func (b *indexBuffer) Release() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}

func (d *Device) CreateBuffers(vertices []core.Vertex, indices []uint32) (gfx.Buffer, gfx.Buffer, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, nil, fmt.Errorf("create buffers: %d vertices, %d indices", len(vertices), len(indices))
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	vb := &vertexBuffer{}
	ib := &indexBuffer{}

	gl.GenVertexArrays(1, &vb.vao)
	gl.BindVertexArray(vb.vao)

	gl.GenBuffers(1, &vb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))

	gl.GenBuffers(1, &ib.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	if err := glError("create buffers"); err != nil {
		vb.Release()
		ib.Release()
		return nil, nil, err
	}
	return vb, ib, nil
}

func (d *Device) CreateTexture(name string, img *image.RGBA) (gfx.Texture, error) {
	return newTexture(name, img)
}

func (d *Device) CreateSampler(desc gfx.SamplerDesc) (gfx.SamplerState, error) {
	return newSampler(desc)
}

func (d *Device) Clear(color core.Color) {
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) SetBuffers(vb, ib gfx.Buffer) {
	gl.BindVertexArray(vb.(*vertexBuffer).vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.(*indexBuffer).ebo)
}

func (d *Device) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT,
		gl.PtrOffset(int(startIndex)*4), baseVertex)
}

// Present swaps buffers and reports any GL error raised during the frame.
func (d *Device) Present() error {
	err := glError("frame")
	d.swapper.SwapBuffers()
	return err
}

func (d *Device) Destroy() {
	gl.BindProgramPipeline(0)
	gl.DeleteProgramPipelines(1, &d.pipeline)
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}
