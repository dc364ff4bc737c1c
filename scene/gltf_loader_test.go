package scene

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render-demo/math"
)

var gltfTriangle = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

// writeGLB saves a single-primitive binary glTF. nil normals or indices leave
// the attribute out.
func writeGLB(t *testing.T, positions, normals [][3]float32, indices []uint16) string {
	t.Helper()
	doc := gltf.NewDocument()
	attrs := map[string]int{"POSITION": modeler.WritePosition(doc, positions)}
	if normals != nil {
		attrs["NORMAL"] = modeler.WriteNormal(doc, normals)
	}
	prim := &gltf.Primitive{Attributes: attrs}
	if indices != nil {
		idx := modeler.WriteIndices(doc, indices)
		prim.Indices = &idx
	}
	doc.Meshes = []*gltf.Mesh{{Name: "mesh", Primitives: []*gltf.Primitive{prim}}}

	path := filepath.Join(t.TempDir(), "mesh.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLTFIndexedWithNormals(t *testing.T) {
	normals := [][3]float32{{0, 0, -1}, {0, 0, -1}, {0, 0, -1}}
	data, err := LoadGLTF(writeGLB(t, gltfTriangle, normals, []uint16{0, 2, 1}))
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 2, 1}, data.Indices)
	require.Len(t, data.Vertices, 3)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 0}, data.Vertices[1].Position)
	for _, v := range data.Vertices {
		assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: -1}, v.Normal)
	}
	assert.NoError(t, data.Validate())
}

func TestLoadGLTFNonIndexedGeneratesNormals(t *testing.T) {
	data, err := LoadGLTF(writeGLB(t, gltfTriangle, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2}, data.Indices)
	for _, v := range data.Vertices {
		assertVec3(t, math.Vec3{X: 0, Y: 0, Z: 1}, v.Normal)
	}
}

func TestLoadGLTFRejectsOutOfRangeIndex(t *testing.T) {
	path := writeGLB(t, gltfTriangle, nil, []uint16{0, 1, 7})

	var err error
	require.NotPanics(t, func() { _, err = LoadGLTF(path) })
	assert.ErrorContains(t, err, "out of range")
}

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}

func TestLoadMeshFileDispatchesGLB(t *testing.T) {
	data, err := LoadMeshFile(writeGLB(t, gltfTriangle, nil, []uint16{0, 1, 2}))
	require.NoError(t, err)
	assert.Len(t, data.Indices, 3)
}
