package scene

import (
	"render-demo/core"
	"render-demo/gfx"
	"render-demo/math"
)

// DirectionalLight is uploaded verbatim to a pixel stage every frame.
type DirectionalLight struct {
	AmbientColor core.Color
	DiffuseColor core.Color
	Direction    math.Vec3
}

// Upload writes the light's fields as name.AmbientColor, name.DiffuseColor
// and name.Direction. It reports whether the stage accepted all three.
func (l DirectionalLight) Upload(stage gfx.ShaderStage, name string) bool {
	ok := stage.SetFloat4(name+".AmbientColor", l.AmbientColor.Array())
	ok = stage.SetFloat4(name+".DiffuseColor", l.DiffuseColor.Array()) && ok
	ok = stage.SetFloat3(name+".Direction", l.Direction) && ok
	return ok
}

// DefaultLights are the two lights of the demo scene, keyed by shader name.
func DefaultLights() map[string]DirectionalLight {
	return map[string]DirectionalLight{
		"light": {
			AmbientColor: core.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
			DiffuseColor: core.Color{R: 0, G: 0, B: 1, A: 1},
			Direction:    math.Vec3{X: 1, Y: -1, Z: 0},
		},
		"green_light": {
			AmbientColor: core.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
			DiffuseColor: core.Color{R: 1, G: 0.1, B: 0.1, A: 1},
			Direction:    math.Vec3{X: 1, Y: -1, Z: 0.5},
		},
	}
}
