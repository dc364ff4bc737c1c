package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"render-demo/core"
	"render-demo/gfx"
)

// MeshData is CPU-side indexed triangle-list geometry.
type MeshData struct {
	Vertices []core.Vertex
	Indices  []uint32
}

// Validate checks that there is at least one triangle and every index is in range.
func (d MeshData) Validate() error {
	if len(d.Indices) == 0 || len(d.Indices)%3 != 0 {
		return fmt.Errorf("mesh index count %d is not a positive multiple of 3", len(d.Indices))
	}
	for i, idx := range d.Indices {
		if int(idx) >= len(d.Vertices) {
			return fmt.Errorf("mesh index %d at %d out of range (%d vertices)", idx, i, len(d.Vertices))
		}
	}
	return nil
}

// Mesh is geometry uploaded to the device. Meshes are owned by a Scene and
// shared by pointer between entities.
type Mesh struct {
	name         string
	vertexBuffer gfx.Buffer
	indexBuffer  gfx.Buffer
	indexCount   uint32
	vertexCount  uint32
}

func newMesh(device gfx.Device, name string, data MeshData) (*Mesh, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	vb, ib, err := device.CreateBuffers(data.Vertices, data.Indices)
	if err != nil {
		return nil, fmt.Errorf("create buffers for mesh %q: %w", name, err)
	}
	return &Mesh{
		name:         name,
		vertexBuffer: vb,
		indexBuffer:  ib,
		indexCount:   uint32(len(data.Indices)),
		vertexCount:  uint32(len(data.Vertices)),
	}, nil
}

func (m *Mesh) Name() string {
	return m.name
}

func (m *Mesh) VertexBuffer() gfx.Buffer {
	return m.vertexBuffer
}

func (m *Mesh) IndexBuffer() gfx.Buffer {
	return m.indexBuffer
}

func (m *Mesh) IndexCount() uint32 {
	return m.indexCount
}

func (m *Mesh) VertexCount() uint32 {
	return m.vertexCount
}

func (m *Mesh) release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

// LoadMeshFile loads geometry from disk, choosing the parser by extension.
func LoadMeshFile(path string) (MeshData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return MeshData{}, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}
