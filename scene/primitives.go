package scene

import (
	"github.com/chewxy/math32"

	"render-demo/core"
	"render-demo/math"
)

// Triangle is a single triangle in the z = -1 plane facing -Z.
func Triangle() MeshData {
	normal := math.Vec3{X: 0, Y: 0, Z: -1}
	return MeshData{
		Vertices: []core.Vertex{
			{Position: math.Vec3{X: -1, Y: 0, Z: -1}, Normal: normal, UV: math.Vec2{X: 0.5, Y: 0}},
			{Position: math.Vec3{X: 0.5, Y: -2, Z: -1}, Normal: normal, UV: math.Vec2{X: 1, Y: 1}},
			{Position: math.Vec3{X: -2.5, Y: -2, Z: -1}, Normal: normal, UV: math.Vec2{X: 0, Y: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

// Cube is an axis-aligned cube centred on the origin with per-face normals.
func Cube(size float32) MeshData {
	s := size / 2
	faces := []struct {
		normal, u, v math.Vec3
	}{
		{math.Vec3{X: 0, Y: 0, Z: 1}, math.Vec3{X: -1, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 1, Z: 0}},
		{math.Vec3{X: 0, Y: 0, Z: -1}, math.Vec3{X: 1, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 1, Z: 0}},
		{math.Vec3{X: 0, Y: 1, Z: 0}, math.Vec3{X: 1, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}},
		{math.Vec3{X: 0, Y: -1, Z: 0}, math.Vec3{X: 1, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: -1}},
		{math.Vec3{X: 1, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, math.Vec3{X: 0, Y: 1, Z: 0}},
		{math.Vec3{X: -1, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: -1}, math.Vec3{X: 0, Y: 1, Z: 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	var data MeshData
	for _, f := range faces {
		base := uint32(len(data.Vertices))
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(s)
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: p,
				Normal:   f.normal,
				UV:       math.Vec2{X: (c[0] + 1) / 2, Y: (1 - c[1]) / 2},
			})
		}
		data.Indices = append(data.Indices, base, base+2, base+1, base, base+3, base+2)
	}
	return data
}

// Sphere generates a UV sphere.
func Sphere(radius float32, segments, rings int) MeshData {
	segments = max(segments, 3)
	rings = max(rings, 2)

	var data MeshData
	for ring := 0; ring <= rings; ring++ {
		sinPhi, cosPhi := math32.Sincos(float32(ring) * math32.Pi / float32(rings))
		for seg := 0; seg <= segments; seg++ {
			sinTheta, cosTheta := math32.Sincos(float32(seg) * 2 * math32.Pi / float32(segments))
			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       math.Vec2{X: float32(seg) / float32(segments), Y: float32(ring) / float32(rings)},
			})
		}
	}
	data.Indices = gridIndices(rings, segments)
	return data
}

// Torus generates a ring around the Y axis.
func Torus(majorRadius, minorRadius float32, majorSegments, minorSegments int) MeshData {
	return sweepTube(1, 0, majorRadius, minorRadius, majorSegments, minorSegments)
}

// Helix generates a tube coiled around the Y axis, centred on the origin.
// rise is the height gained per turn.
func Helix(turns, rise, majorRadius, minorRadius float32, segmentsPerTurn, minorSegments int) MeshData {
	majorSegments := int(math32.Ceil(turns * float32(max(segmentsPerTurn, 3))))
	return sweepTube(turns, rise, majorRadius, minorRadius, majorSegments, minorSegments)
}

// sweepTube sweeps a circle of minorRadius along a helix of majorRadius
// around Y. With turns = 1 and rise = 0 the result is a torus.
func sweepTube(turns, rise, majorRadius, minorRadius float32, majorSegments, minorSegments int) MeshData {
	majorSegments = max(majorSegments, 3)
	minorSegments = max(minorSegments, 3)
	sweep := turns * 2 * math32.Pi
	height := turns * rise
	risePerRadian := rise / (2 * math32.Pi)

	var data MeshData
	for i := 0; i <= majorSegments; i++ {
		t := float32(i) / float32(majorSegments)
		sinTheta, cosTheta := math32.Sincos(t * sweep)

		center := math.Vec3{X: majorRadius * cosTheta, Y: t*height - height/2, Z: majorRadius * sinTheta}
		radial := math.Vec3{X: cosTheta, Y: 0, Z: sinTheta}
		tangent := math.Vec3{X: -majorRadius * sinTheta, Y: risePerRadian, Z: majorRadius * cosTheta}
		binormal := tangent.Cross(radial).Normalize()

		for j := 0; j <= minorSegments; j++ {
			sinPhi, cosPhi := math32.Sincos(float32(j) * 2 * math32.Pi / float32(minorSegments))
			normal := radial.Mul(cosPhi).Add(binormal.Mul(sinPhi))
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: center.Add(normal.Mul(minorRadius)),
				Normal:   normal,
				UV:       math.Vec2{X: t, Y: float32(j) / float32(minorSegments)},
			})
		}
	}
	data.Indices = gridIndices(majorSegments, minorSegments)
	return data
}

// gridIndices triangulates a (rows+1) x (cols+1) vertex grid.
func gridIndices(rows, cols int) []uint32 {
	indices := make([]uint32, 0, rows*cols*6)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			current := uint32(r*(cols+1) + c)
			next := current + uint32(cols+1)
			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}
	return indices
}
