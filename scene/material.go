package scene

import "render-demo/gfx"

// Shader variable names a material binds on its pixel stage.
const (
	DiffuseTextureName = "diffuseTexture"
	NormalTextureName  = "normalTexture"
	SamplerName        = "basicSampler"
)

// Material pairs a vertex and pixel stage with optional textures. It is
// immutable after construction and shared by pointer between entities.
type Material struct {
	name         string
	vertexShader gfx.VertexShader
	pixelShader  gfx.PixelShader
	diffuse      gfx.Texture
	normal       gfx.Texture
	sampler      gfx.SamplerState
}

type MaterialOption func(*Material)

func WithDiffuseTexture(tex gfx.Texture) MaterialOption {
	return func(m *Material) { m.diffuse = tex }
}

func WithNormalTexture(tex gfx.Texture) MaterialOption {
	return func(m *Material) { m.normal = tex }
}

func WithSampler(sampler gfx.SamplerState) MaterialOption {
	return func(m *Material) { m.sampler = sampler }
}

func NewMaterial(name string, vs gfx.VertexShader, ps gfx.PixelShader, opts ...MaterialOption) *Material {
	m := &Material{name: name, vertexShader: vs, pixelShader: ps}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Material) Name() string {
	return m.name
}

func (m *Material) VertexShader() gfx.VertexShader {
	return m.vertexShader
}

func (m *Material) PixelShader() gfx.PixelShader {
	return m.pixelShader
}

func (m *Material) DiffuseTexture() (gfx.Texture, bool) {
	return m.diffuse, m.diffuse != nil
}

func (m *Material) NormalTexture() (gfx.Texture, bool) {
	return m.normal, m.normal != nil
}

func (m *Material) Sampler() (gfx.SamplerState, bool) {
	return m.sampler, m.sampler != nil
}

// bindTextures sets whichever textures and sampler are present on the pixel stage.
func (m *Material) bindTextures() {
	if tex, ok := m.DiffuseTexture(); ok {
		m.pixelShader.SetShaderResourceView(DiffuseTextureName, tex)
	}
	if tex, ok := m.NormalTexture(); ok {
		m.pixelShader.SetShaderResourceView(NormalTextureName, tex)
	}
	if sampler, ok := m.Sampler(); ok {
		m.pixelShader.SetSamplerState(SamplerName, sampler)
	}
}
