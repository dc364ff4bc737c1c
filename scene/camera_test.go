package scene

import (
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render-demo/input"
	"render-demo/math"
)

const eps = 1e-5

func assertVec3(t *testing.T, expected, actual math.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, eps, "X")
	assert.InDelta(t, expected.Y, actual.Y, eps, "Y")
	assert.InDelta(t, expected.Z, actual.Z, eps, "Z")
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())

	assertVec3(t, math.Vec3{X: 0, Y: 0, Z: -1}, c.Position())
	assertVec3(t, math.Vec3Forward, c.ForwardDirection())
	assert.Zero(t, c.Yaw())
	assert.Zero(t, c.Pitch())
	assert.InDelta(t, 0.005, c.HorizontalRotationSpeed(), eps)
	assert.InDelta(t, 0.005, c.VerticalRotationSpeed(), eps)
	assert.False(t, c.DoRotation())
	assert.False(t, c.InvertAxis())

	expected := math.Mat4LookToLH(math.Vec3{X: 0, Y: 0, Z: -1}, math.Vec3Forward, math.Vec3Up).Transpose()
	assert.True(t, c.ViewMatrix().ApproxEqual(expected, eps))
}

func TestCameraMouseInputStaysInRange(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 1000; i++ {
		dx := (rng.Float32() - 0.5) * 2000
		dy := (rng.Float32() - 0.5) * 2000
		c.UpdateMouseInput(dx, dy)
		require.True(t, c.YawRange().Contains(c.Yaw()), "yaw %v after step %d", c.Yaw(), i)
		require.True(t, c.PitchRange().Contains(c.Pitch()), "pitch %v after step %d", c.Pitch(), i)
	}
}

func TestCameraMouseInputClampsToLegacyRange(t *testing.T) {
	cfg := DefaultCameraConfig()
	cfg.YawRange = Range{Min: -90, Max: -85}
	cfg.PitchRange = Range{Min: -90, Max: -85}
	c := NewCamera(cfg)

	c.UpdateMouseInput(0, 0)
	assert.Equal(t, float32(-85), c.Yaw())
	assert.Equal(t, float32(-85), c.Pitch())

	c.UpdateMouseInput(-1e6, -1e6)
	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(-90), c.Pitch())
}

func TestCameraMouseInputDoesNotRebuildView(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())
	before := c.ViewMatrix()

	c.UpdateMouseInput(100, 50)
	assert.Equal(t, before, c.ViewMatrix())

	c.Update(0, input.State{})
	assert.NotEqual(t, before, c.ViewMatrix())
}

func TestCameraProjectionDependsOnlyOnAspect(t *testing.T) {
	a := NewCamera(DefaultCameraConfig())
	b := NewCamera(DefaultCameraConfig())

	a.UpdateProjectionMatrix(1280, 720)
	b.UpdateProjectionMatrix(640, 360)
	assert.True(t, a.ProjectionMatrix().ApproxEqual(b.ProjectionMatrix(), eps))

	expected := math.Mat4PerspectiveFovLH(0.25*math32.Pi, 1280.0/720.0, 0.1, 100).Transpose()
	assert.True(t, a.ProjectionMatrix().ApproxEqual(expected, eps))
}

func TestCameraProjectionZeroHeight(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())
	c.UpdateProjectionMatrix(800, 0)
	for _, row := range c.ProjectionMatrix() {
		for _, v := range row {
			assert.False(t, math32.IsNaN(v) || math32.IsInf(v, 0))
		}
	}
}

func TestCameraForwardMovesOneUnit(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())

	c.Update(1, input.State{}.With(input.Forward))
	assertVec3(t, math.Vec3Zero, c.Position())

	c.Update(1, input.State{}.With(input.Back))
	assertVec3(t, math.Vec3{X: 0, Y: 0, Z: -1}, c.Position())
}

func TestCameraStrafeAndVertical(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())

	c.Update(0.5, input.State{}.With(input.StrafeRight, input.Up))
	assertVec3(t, math.Vec3{X: 0.5, Y: 0.5, Z: -1}, c.Position())

	c.Update(0.5, input.State{}.With(input.StrafeLeft, input.Down))
	assertVec3(t, math.Vec3{X: 0, Y: 0, Z: -1}, c.Position())
}

func TestCameraOpposingKeysCancel(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())
	c.Update(1, input.State{}.With(input.Forward, input.Back, input.StrafeLeft, input.StrafeRight))
	assertVec3(t, math.Vec3{X: 0, Y: 0, Z: -1}, c.Position())
}

func TestCameraNoInputIsStable(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())
	c.Update(1, input.State{}.With(input.Forward))
	pos, view := c.Position(), c.ViewMatrix()

	for i := 0; i < 10; i++ {
		c.Update(0.016, input.State{})
	}
	assertVec3(t, pos, c.Position())
	assert.True(t, view.ApproxEqual(c.ViewMatrix(), eps))
}

func TestCameraYawTurnsLookDirection(t *testing.T) {
	cfg := DefaultCameraConfig()
	cfg.HorizontalRotationSpeed = 1
	c := NewCamera(cfg)

	c.UpdateMouseInput(math32.Pi/2, 0)
	c.Update(1, input.State{}.With(input.Forward))

	assertVec3(t, math.Vec3Right, c.ForwardDirection())
	assertVec3(t, math.Vec3{X: 1, Y: 0, Z: -1}, c.Position())
}

func TestCameraInvertAxisSwapsRoles(t *testing.T) {
	cfg := DefaultCameraConfig()
	cfg.HorizontalRotationSpeed = 1
	c := NewCamera(cfg)
	c.SetInvertAxis(true)
	require.True(t, c.InvertAxis())

	c.UpdateMouseInput(math32.Pi/4, 0)
	c.Update(0, input.State{})

	s := math32.Sqrt(0.5)
	assertVec3(t, math.Vec3{X: 0, Y: -s, Z: s}, c.ForwardDirection())
}

func TestCameraDoRotationFlag(t *testing.T) {
	c := NewCamera(DefaultCameraConfig())
	c.SetDoRotation(true)
	assert.True(t, c.DoRotation())
	c.SetDoRotation(false)
	assert.False(t, c.DoRotation())
}

func BenchmarkCameraUpdate(b *testing.B) {
	c := NewCamera(DefaultCameraConfig())
	in := input.State{}.With(input.Forward, input.StrafeRight)
	for i := 0; i < b.N; i++ {
		c.UpdateMouseInput(1, 1)
		c.Update(0.016, in)
	}
}
