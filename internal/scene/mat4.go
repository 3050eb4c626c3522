package scene

import "math"

// Mat4 is a column-major 4x4 matrix, laid out for gl.UniformMatrix4fv.
type Mat4 [16]float32

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 { return m[c*4+r] }

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12] = float32(v.X)
	m[13] = float32(v.Y)
	m[14] = float32(v.Z)
	return m
}

func ScaleUniform(s float64) Mat4 {
	m := Identity()
	m[0] = float32(s)
	m[5] = float32(s)
	m[10] = float32(s)
	return m
}

func RotateX(a float64) Mat4 {
	c, s := float32(math.Cos(a)), float32(math.Sin(a))
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

func RotateY(a float64) Mat4 {
	c, s := float32(math.Cos(a)), float32(math.Sin(a))
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

func RotateZ(a float64) Mat4 {
	c, s := float32(math.Cos(a)), float32(math.Sin(a))
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Perspective builds an OpenGL projection. fovY is in degrees.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovY*math.Pi/360.0)
	var m Mat4
	m[0] = float32(f / aspect)
	m[5] = float32(f)
	m[10] = float32((far + near) / (near - far))
	m[11] = -1
	m[14] = float32(2 * far * near / (near - far))
	return m
}

// Model composes translate * Rx * Ry * Rz * scale, the XYZ Euler order.
func (s *Shape) Model() Mat4 {
	return Translate(s.Position).
		Mul(RotateX(s.Rotation.X)).
		Mul(RotateY(s.Rotation.Y)).
		Mul(RotateZ(s.Rotation.Z)).
		Mul(ScaleUniform(s.Size * s.Scale))
}

// Apply transforms point p by m (w = 1) and returns the homogeneous result.
func (m Mat4) Apply(p Vec3) (x, y, z, w float64) {
	px, py, pz := float32(p.X), float32(p.Y), float32(p.Z)
	x = float64(m[0]*px + m[4]*py + m[8]*pz + m[12])
	y = float64(m[1]*px + m[5]*py + m[9]*pz + m[13])
	z = float64(m[2]*px + m[6]*py + m[10]*pz + m[14])
	w = float64(m[3]*px + m[7]*py + m[11]*pz + m[15])
	return
}
