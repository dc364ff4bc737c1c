package math

// Euler holds rotation angles in radians: X is pitch, Y is yaw, Z is roll.
// Rotations apply roll first, then pitch, then yaw.
type Euler struct {
	X, Y, Z float32
}

func NewEuler(x, y, z float32) Euler {
	return Euler{X: x, Y: y, Z: z}
}

func (e Euler) ToQuaternion() Quaternion {
	return QuaternionRollPitchYaw(e.X, e.Y, e.Z)
}

func (e Euler) ToMat4() Mat4 {
	return Mat4RotationRollPitchYaw(e.X, e.Y, e.Z)
}
