package scene

import (
	"render-demo/core"
	"render-demo/math"
)

// Grid builds a flat, upward-facing square on the XZ plane centred on the
// origin, split into divisions cells along each axis. UVs repeat once per cell
// so a tiling texture lines up with the cells.
func Grid(size float32, divisions int) MeshData {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)

	vertices := make([]core.Vertex, 0, (divisions+1)*(divisions+1))
	for row := 0; row <= divisions; row++ {
		z := -half + float32(row)*step
		for col := 0; col <= divisions; col++ {
			x := -half + float32(col)*step
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: x, Y: 0, Z: z},
				Normal:   math.Vec3Up,
				UV:       math.Vec2{X: float32(col), Y: float32(row)},
			})
		}
	}
	return MeshData{Vertices: vertices, Indices: gridIndices(divisions, divisions)}
}
