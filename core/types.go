package core

import (
	"render-demo/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}

	// ColorCornflower is the default clear colour of the demo.
	ColorCornflower = Color{0.4, 0.6, 0.75, 0}
)

// Array returns the colour as r, g, b, a for shader upload.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Vertex is the interleaved layout submitted to the vertex stage.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}
