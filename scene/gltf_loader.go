package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"render-demo/core"
	"render-demo/math"
)

// LoadGLTF opens a .glb or .gltf file and merges every triangle primitive of
// every mesh into one MeshData. Node transforms and materials are not applied.
func LoadGLTF(path string) (MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return MeshData{}, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var data MeshData
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendGLTFPrimitive(doc, *prim, &data); err != nil {
				return MeshData{}, fmt.Errorf("gltf %q mesh %d prim %d: %w", path, mi, pi, err)
			}
		}
	}
	if len(data.Indices) == 0 {
		return MeshData{}, fmt.Errorf("gltf %q: no triangle geometry", path)
	}
	return data, nil
}

// appendGLTFPrimitive converts one primitive and appends it to data, offsetting
// its indices past the vertices already present.
func appendGLTFPrimitive(doc *gltf.Document, prim gltf.Primitive, data *MeshData) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("uvs: %w", err)
		}
	}

	base := uint32(len(data.Vertices))
	for i, p := range positions {
		v := core.Vertex{Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]}}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		data.Vertices = append(data.Vertices, v)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d at %d out of range (%d positions)", idx, i, len(positions))
		}
	}

	start := len(data.Indices)
	for _, idx := range indices {
		data.Indices = append(data.Indices, base+idx)
	}

	if len(normals) == 0 {
		missing := make([]bool, len(data.Vertices))
		for i := int(base); i < len(missing); i++ {
			missing[i] = true
		}
		generateSmoothNormals(data.Vertices, data.Indices[start:], missing)
	}
	return nil
}
