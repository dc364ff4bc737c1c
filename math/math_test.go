package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = float32(1e-5)

func assertVec3(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, float64(tol), "X")
	assert.InDelta(t, expected.Y, actual.Y, float64(tol), "Y")
	assert.InDelta(t, expected.Z, actual.Z, float64(tol), "Z")
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))

	// Left-handed: Forward x Up points left.
	assert.Equal(t, NewVec3(-1, 0, 0), Vec3Forward.Cross(Vec3Up))
	assert.Equal(t, Vec3Forward, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	assert.Equal(t, NewVec3(1, 0, 0), NewVec3(3, 0, 0).Normalize())
	assert.InDelta(t, 1, NewVec3(1, 2, 3).Normalize().Length(), 1e-6)
	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	assert.Equal(t, m, m.Transpose())
	assert.Equal(t, m, m.Mul(m))

	p := NewVec3(1, -2, 3)
	assert.Equal(t, p, m.TransformPoint(p))
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	assert.Equal(t, [4]float32{1, 2, 3, 1}, m[3])
	assert.Equal(t, translation, m.TransformPoint(Vec3Zero))
}

func TestMat4TransposeRoundTrip(t *testing.T) {
	m := Mat4ScaleRotationTranslation(NewVec3(2, 3, 4), NewEuler(0.3, 0.2, 0.1), NewVec3(5, 6, 7))
	assert.Equal(t, m, m.Transpose().Transpose())
	assert.Equal(t, m[3][0], m.Transpose()[0][3])
}

func TestMat4RotationY(t *testing.T) {
	// A quarter turn about Y carries +Z onto +X.
	m := Mat4RotationY(math32.Pi / 2)
	assertVec3(t, Vec3Right, m.TransformPoint(Vec3Forward))
}

func TestScaleRotationTranslationIdentity(t *testing.T) {
	m := Mat4ScaleRotationTranslation(Vec3One, Euler{}, Vec3Zero)
	assert.Equal(t, Mat4Identity(), m)
}

func TestScaleRotationTranslationOrder(t *testing.T) {
	// Scale x2, yaw a quarter turn, then move up: +X -> 2X -> -2Z -> (0,1,-2).
	m := Mat4ScaleRotationTranslation(NewVec3(2, 2, 2), NewEuler(0, math32.Pi/2, 0), NewVec3(0, 1, 0))
	assertVec3(t, NewVec3(0, 1, -2), m.TransformPoint(Vec3Right))
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()
	assert.Equal(t, Quaternion{0, 0, 0, 1}, q)
	assert.Equal(t, NewVec3(4, 5, 6), q.RotateVector(NewVec3(4, 5, 6)))
	assert.Equal(t, q, QuaternionRollPitchYaw(0, 0, 0))
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, math32.Pi/2)
	assertVec3(t, NewVec3(0, 0, -1), q.RotateVector(Vec3Right))
}

func TestQuaternionMatchesRollPitchYawMatrix(t *testing.T) {
	cases := []Euler{
		{0.4, 0, 0},
		{0, 1.1, 0},
		{0, 0, -0.7},
		{0.3, -1.2, 0.5},
		{-1.4, 2.9, 0.05},
	}
	points := []Vec3{Vec3Right, Vec3Up, Vec3Forward, NewVec3(1, -2, 3)}

	for _, e := range cases {
		q := e.ToQuaternion()
		m := e.ToMat4()
		assert.True(t, q.ToMat4().ApproxEqual(m, tol), "euler %v", e)
		for _, p := range points {
			assertVec3(t, m.TransformPoint(p), q.RotateVector(p))
		}
	}
}

func TestMat4PerspectiveFovLH(t *testing.T) {
	m := Mat4PerspectiveFovLH(math32.Pi/4, 16.0/9.0, 0.1, 100)

	// Near plane maps to depth 0, far plane to depth 1.
	near := NewVec4(0, 0, 0.1, 1).MulMat(m)
	far := NewVec4(0, 0, 100, 1).MulMat(m)
	assert.InDelta(t, 0, near.Z/near.W, 1e-5)
	assert.InDelta(t, 1, far.Z/far.W, 1e-5)

	assert.InDelta(t, m[1][1]/(16.0/9.0), m[0][0], 1e-6)
}

func TestMat4LookToLH(t *testing.T) {
	eye := NewVec3(1, 2, -5)
	dir := NewVec3(0, 0, 1)
	m := Mat4LookToLH(eye, dir, Vec3Up)

	assertVec3(t, Vec3Zero, m.TransformPoint(eye))
	// A point ahead of the eye lands on +Z in view space.
	assertVec3(t, NewVec3(0, 0, 3), m.TransformPoint(eye.Add(dir.Mul(3))))
	// A point to the right of the eye lands on +X.
	assertVec3(t, NewVec3(2, 0, 0), m.TransformPoint(eye.Add(NewVec3(2, 0, 0))))
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationRollPitchYaw(0.1, 0.2, 0.3)
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkQuaternionRotateVector(b *testing.B) {
	q := QuaternionRollPitchYaw(0.1, 0.2, 0.3)
	v := NewVec3(1, 2, 3)

	for i := 0; i < b.N; i++ {
		_ = q.RotateVector(v)
	}
}
