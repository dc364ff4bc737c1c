package math

import "github.com/chewxy/math32"

// Mat4 is a row-major 4x4 matrix for row vectors (v' = v * M): translation lives
// in row 3 and transforms compose left to right.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// TransformPoint applies m to the point p (w = 1) without a perspective divide.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return p.ToVec4(1).MulMat(m).ToVec3()
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// ApproxEqual reports whether every element differs by at most tol.
func (m Mat4) ApproxEqual(other Mat4, tol float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math32.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func Mat4Translation(t Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = t.X
	m[3][1] = t.Y
	m[3][2] = t.Z
	return m
}

func Mat4Scale(s Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mat4RotationRollPitchYaw rotates by roll about Z, then pitch about X, then
// yaw about Y.
func Mat4RotationRollPitchYaw(pitch, yaw, roll float32) Mat4 {
	return Mat4RotationZ(roll).Mul(Mat4RotationX(pitch)).Mul(Mat4RotationY(yaw))
}

// Mat4ScaleRotationTranslation composes scale, then Euler rotation, then
// translation.
func Mat4ScaleRotationTranslation(scale Vec3, rotation Euler, translation Vec3) Mat4 {
	return Mat4Scale(scale).Mul(rotation.ToMat4()).Mul(Mat4Translation(translation))
}

// Mat4PerspectiveFovLH builds a left-handed perspective projection mapping
// view-space depth [near, far] to [0, 1].
func Mat4PerspectiveFovLH(fovY, aspect, near, far float32) Mat4 {
	sin, cos := math32.Sincos(fovY * 0.5)
	h := cos / sin
	w := h / aspect
	fRange := far / (far - near)

	return Mat4{
		{w, 0, 0, 0},
		{0, h, 0, 0},
		{0, 0, fRange, 1},
		{0, 0, -fRange * near, 0},
	}
}

// Mat4LookToLH builds a left-handed view matrix for an eye looking along dir.
func Mat4LookToLH(eye, dir, up Vec3) Mat4 {
	zAxis := dir.Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}
