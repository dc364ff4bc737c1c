// Package gfx is the contract between the renderer core and a graphics API.
//
// A Device owns buffers and issues draws; a ShaderStage buffers named constant
// values until CopyAllBufferData flushes them to the device. Bound state is
// global per device, so callers bind everything for one draw immediately
// before submitting it.
package gfx

import (
	"image"

	"render-demo/core"
	"render-demo/math"
)

// Buffer is an opaque GPU vertex or index buffer.
type Buffer interface {
	Release()
}

// Texture is an opaque shader-readable image.
type Texture interface {
	Release()
}

// SamplerState is an opaque texture sampling configuration.
type SamplerState interface {
	Release()
}

// ShaderStage is one programmable stage. Setters return false when the stage
// has no variable with the given name.
type ShaderStage interface {
	SetMatrix4x4(name string, m math.Mat4) bool
	SetFloat4(name string, v [4]float32) bool
	SetFloat3(name string, v math.Vec3) bool
	SetShaderResourceView(name string, tex Texture) bool
	SetSamplerState(name string, sampler SamplerState) bool

	// SetShader makes this stage active for subsequent draws.
	SetShader()
	// CopyAllBufferData uploads every value set since the last flush.
	CopyAllBufferData()
}

type VertexShader interface {
	ShaderStage
}

type PixelShader interface {
	ShaderStage
}

type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
	WrapMirror
)

// SamplerDesc describes how a texture is sampled.
type SamplerDesc struct {
	Filter Filter
	Wrap   Wrap
}

// Device creates GPU resources and submits indexed triangle lists.
type Device interface {
	CreateBuffers(vertices []core.Vertex, indices []uint32) (vertexBuffer, indexBuffer Buffer, err error)
	CreateTexture(name string, img *image.RGBA) (Texture, error)
	CreateSampler(desc SamplerDesc) (SamplerState, error)
	Clear(color core.Color)
	SetBuffers(vertexBuffer, indexBuffer Buffer)
	DrawIndexed(indexCount, startIndex uint32, baseVertex int32)
	Present() error
}
