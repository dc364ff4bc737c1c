package scene

import (
	"log/slog"

	"github.com/chewxy/math32"

	"render-demo/input"
	"render-demo/math"
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

func (r Range) Clamp(v float32) float32 {
	return max(r.Min, min(v, r.Max))
}

func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// CameraConfig holds the tunables of a free-flying camera. Angles are radians.
type CameraConfig struct {
	Position                math.Vec3
	HorizontalRotationSpeed float32
	VerticalRotationSpeed   float32
	YawRange                Range
	PitchRange              Range
	InvertAxis              bool

	FieldOfView float32
	NearPlane   float32
	FarPlane    float32
}

func DefaultCameraConfig() CameraConfig {
	pitchLimit := 85 * math32.Pi / 180
	return CameraConfig{
		Position:                math.Vec3{X: 0, Y: 0, Z: -1},
		HorizontalRotationSpeed: 0.005,
		VerticalRotationSpeed:   0.005,
		YawRange:                Range{Min: -math32.Pi, Max: math32.Pi},
		PitchRange:              Range{Min: -pitchLimit, Max: pitchLimit},
		FieldOfView:             0.25 * math32.Pi,
		NearPlane:               0.1,
		FarPlane:                100,
	}
}

// Camera is a first-person camera driven by yaw/pitch mouse input and
// per-frame movement input. View and projection are stored transposed, ready
// for upload.
type Camera struct {
	position         math.Vec3
	forwardDirection math.Vec3
	yaw              float32
	pitch            float32
	relativeInput    math.Vec3

	horizontalRotationSpeed float32
	verticalRotationSpeed   float32
	yawRange                Range
	pitchRange              Range
	doRotation              bool
	invertAxis              bool

	fieldOfView float32
	nearPlane   float32
	farPlane    float32

	viewMatrix       math.Mat4
	projectionMatrix math.Mat4
}

func NewCamera(cfg CameraConfig) *Camera {
	c := &Camera{
		position:                cfg.Position,
		forwardDirection:        math.Vec3Forward,
		horizontalRotationSpeed: cfg.HorizontalRotationSpeed,
		verticalRotationSpeed:   cfg.VerticalRotationSpeed,
		yawRange:                cfg.YawRange,
		pitchRange:              cfg.PitchRange,
		invertAxis:              cfg.InvertAxis,
		fieldOfView:             cfg.FieldOfView,
		nearPlane:               cfg.NearPlane,
		farPlane:                cfg.FarPlane,
		projectionMatrix:        math.Mat4Identity(),
	}
	c.updateViewMatrix()
	return c
}

// Update applies one frame of movement input. Vertical input moves along
// world Y; forward and strafe input move relative to the look direction.
func (c *Camera) Update(deltaTime float32, in input.State) {
	c.relativeInput = math.Vec3{
		X: in.Axis(input.StrafeLeft, input.StrafeRight),
		Y: in.Axis(input.Down, input.Up),
		Z: in.Axis(input.Back, input.Forward),
	}.Mul(deltaTime)

	c.position.Y += c.relativeInput.Y
	c.updateViewMatrix()
}

// UpdateMouseInput accumulates mouse deltas into yaw and pitch. The view
// matrix picks up the change on the next Update.
func (c *Camera) UpdateMouseInput(deltaX, deltaY float32) {
	c.yaw = c.yawRange.Clamp(c.yaw + deltaX*c.horizontalRotationSpeed)
	c.pitch = c.pitchRange.Clamp(c.pitch + deltaY*c.verticalRotationSpeed)
	slog.Debug("camera rotation", "yaw", c.yaw, "pitch", c.pitch)
}

// UpdateProjectionMatrix rebuilds the projection for a framebuffer size.
func (c *Camera) UpdateProjectionMatrix(width, height uint32) {
	if height == 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	p := math.Mat4PerspectiveFovLH(c.fieldOfView, aspect, c.nearPlane, c.farPlane)
	c.projectionMatrix = p.Transpose()
}

func (c *Camera) updateViewMatrix() {
	var rotation math.Quaternion
	if c.invertAxis {
		rotation = math.QuaternionRollPitchYaw(c.yaw, c.pitch, 0)
	} else {
		rotation = math.QuaternionRollPitchYaw(c.pitch, c.yaw, 0)
	}

	look := rotation.RotateVector(math.Vec3Forward)
	left := look.Cross(math.Vec3Up)

	position := c.position.Add(look.Mul(c.relativeInput.Z))
	position = position.Sub(left.Mul(c.relativeInput.X))

	c.viewMatrix = math.Mat4LookToLH(position, look, math.Vec3Up).Transpose()
	c.position = position
	c.forwardDirection = look
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

// ForwardDirection is the look direction of the last view update.
func (c *Camera) ForwardDirection() math.Vec3 {
	return c.forwardDirection
}

// Yaw is the accumulated rotation driven by horizontal mouse movement.
func (c *Camera) Yaw() float32 {
	return c.yaw
}

// Pitch is the accumulated rotation driven by vertical mouse movement.
func (c *Camera) Pitch() float32 {
	return c.pitch
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return c.viewMatrix
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return c.projectionMatrix
}

func (c *Camera) HorizontalRotationSpeed() float32 {
	return c.horizontalRotationSpeed
}

func (c *Camera) VerticalRotationSpeed() float32 {
	return c.verticalRotationSpeed
}

func (c *Camera) YawRange() Range {
	return c.yawRange
}

func (c *Camera) PitchRange() Range {
	return c.pitchRange
}

func (c *Camera) DoRotation() bool {
	return c.doRotation
}

func (c *Camera) SetDoRotation(doRotation bool) {
	c.doRotation = doRotation
}

func (c *Camera) InvertAxis() bool {
	return c.invertAxis
}

func (c *Camera) SetInvertAxis(invert bool) {
	c.invertAxis = invert
}
