package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"render-demo/core"
	remath "render-demo/math"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int // 0-based position / UV / normal indices (-1 = absent)
}

// LoadOBJ parses a Wavefront .obj file into a single mesh. Objects and groups
// are merged; material directives are ignored.
func LoadOBJ(path string) (MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return MeshData{}, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	data, err := ParseOBJ(f)
	if err != nil {
		return MeshData{}, fmt.Errorf("load obj %q: %w", path, err)
	}
	return data, nil
}

// ParseOBJ reads OBJ text. Polygons are fan-triangulated and identical
// v/vt/vn triples share one vertex.
func ParseOBJ(r io.Reader) (MeshData, error) {
	var positions []remath.Vec3
	var normals []remath.Vec3
	var uvs []remath.Vec2
	var faces []objFace

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v", "vn":
			if len(fields) < 4 {
				return MeshData{}, fmt.Errorf("line %d: %s needs 3 components", lineNo, fields[0])
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return MeshData{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if fields[0] == "v" {
				positions = append(positions, v)
			} else {
				normals = append(normals, v)
			}

		case "vt":
			if len(fields) < 3 {
				return MeshData{}, fmt.Errorf("line %d: vt needs 2 components", lineNo)
			}
			u, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return MeshData{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseFloat(fields[2], 32)
			if err != nil {
				return MeshData{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, remath.Vec2{X: float32(u), Y: float32(v)})

		case "f":
			if len(fields) < 4 {
				continue
			}
			fverts := make([]faceVertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fv, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return MeshData{}, fmt.Errorf("line %d: %w", lineNo, err)
				}
				fverts = append(fverts, fv)
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(fverts); i++ {
				f0, f1, f2 := fverts[0], fverts[i], fverts[i+1]
				faces = append(faces, objFace{
					vIdx:  [3]int{f0.v, f1.v, f2.v},
					vtIdx: [3]int{f0.vt, f1.vt, f2.vt},
					vnIdx: [3]int{f0.vn, f1.vn, f2.vn},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return MeshData{}, fmt.Errorf("scan obj: %w", err)
	}
	if len(faces) == 0 {
		return MeshData{}, fmt.Errorf("no faces found")
	}

	return buildMeshFromOBJ(faces, positions, normals, uvs), nil
}

func parseVec3(fields []string) (remath.Vec3, error) {
	var out [3]float32
	for i, s := range fields {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return remath.Vec3{}, err
		}
		out[i] = float32(f)
	}
	return remath.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

type faceVertex struct{ v, vt, vn int }

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// OBJ indices are 1-based; negative indices count back from the current end.
func parseFaceVertex(tok string, nv, nvt, nvn int) (faceVertex, error) {
	parseIdx := func(s string, count int) (int, error) {
		if s == "" {
			return -1, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return -1, fmt.Errorf("face index %q: %w", s, err)
		}
		if n < 0 {
			n = count + n
		} else {
			n--
		}
		if n < 0 || n >= count {
			return -1, fmt.Errorf("face index %q out of range", s)
		}
		return n, nil
	}

	parts := strings.Split(tok, "/")
	res := faceVertex{v: -1, vt: -1, vn: -1}
	var err error
	if res.v, err = parseIdx(parts[0], nv); err != nil {
		return res, err
	}
	if res.v < 0 {
		return res, fmt.Errorf("face vertex %q has no position", tok)
	}
	if len(parts) > 1 {
		if res.vt, err = parseIdx(parts[1], nvt); err != nil {
			return res, err
		}
	}
	if len(parts) > 2 {
		if res.vn, err = parseIdx(parts[2], nvn); err != nil {
			return res, err
		}
	}
	return res, nil
}

// buildMeshFromOBJ converts parsed face data into deduplicated vertices.
func buildMeshFromOBJ(
	faces []objFace,
	positions []remath.Vec3,
	normals []remath.Vec3,
	uvs []remath.Vec2,
) MeshData {
	vertMap := map[faceVertex]uint32{}
	var vertices []core.Vertex
	var indices []uint32
	var missing []bool
	missingNormals := false

	for _, face := range faces {
		for c := 0; c < 3; c++ {
			k := faceVertex{face.vIdx[c], face.vtIdx[c], face.vnIdx[c]}
			if idx, ok := vertMap[k]; ok {
				indices = append(indices, idx)
				continue
			}
			v := core.Vertex{Position: positions[k.v]}
			if k.vt >= 0 {
				v.UV = uvs[k.vt]
			}
			if k.vn >= 0 {
				v.Normal = normals[k.vn]
			} else {
				missingNormals = true
			}
			idx := uint32(len(vertices))
			vertices = append(vertices, v)
			missing = append(missing, k.vn < 0)
			vertMap[k] = idx
			indices = append(indices, idx)
		}
	}

	if missingNormals {
		generateSmoothNormals(vertices, indices, missing)
	}
	return MeshData{Vertices: vertices, Indices: indices}
}

// generateSmoothNormals computes area-weighted vertex normals in place. Only
// vertices flagged in missing are written; a nil missing writes them all.
func generateSmoothNormals(vertices []core.Vertex, indices []uint32, missing []bool) {
	accum := make([]remath.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		v1 := vertices[i1].Position
		v2 := vertices[i2].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if missing != nil && !missing[i] {
			continue
		}
		if accum[i].Length() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}
