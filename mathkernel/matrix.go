package mathkernel

// Mat4 is a 4x4 affine matrix stored row-major as a flat 16-element array
// (index = row*4+col). The module uses the row-vector convention called
// out by spec §4.4: a point is transformed as `p' = p · M`, and composing
// a child transform with its parent is `combined = local · parent` (apply
// local first, then parent) — NOT the column-major, v'=M·v convention used
// by the teacher's own common/math.go (which this package deliberately
// does not reuse verbatim for Mul/Compose, since that convention would
// silently invert the spec's composition order). Identity layout is the
// same regardless of convention, so Identity is ported directly.
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// at returns the element at row r, column c.
func (m Mat4) at(r, c int) float32 { return m[r*4+c] }

// Mul returns this · other: applying the combined matrix to a row-vector
// point is equivalent to applying `m` first and then `other`. This is the
// order LocalToModelJob needs for `output[i] = L_i · parent`.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.at(r, k) * other.at(k, c)
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Compose builds the affine matrix for a TRS transform (scale, then
// rotate, then translate) in row-vector convention, matching the
// derivation in LocalToModelJob: row i (i<3) is the i-th rotation row
// scaled by the corresponding scale component, row 3 is the translation.
func Compose(scale Vec3, rot Quat, translation Vec3) Mat4 {
	x, y, z, w := rot.X, rot.Y, rot.Z, rot.W

	r00 := 1 - 2*(y*y+z*z)
	r01 := 2 * (x*y + w*z)
	r02 := 2 * (x*z - w*y)

	r10 := 2 * (x*y - w*z)
	r11 := 1 - 2*(x*x+z*z)
	r12 := 2 * (y*z + w*x)

	r20 := 2 * (x*z + w*y)
	r21 := 2 * (y*z - w*x)
	r22 := 1 - 2*(x*x+y*y)

	var m Mat4
	m[0], m[1], m[2], m[3] = r00*scale.X, r01*scale.X, r02*scale.X, 0
	m[4], m[5], m[6], m[7] = r10*scale.Y, r11*scale.Y, r12*scale.Y, 0
	m[8], m[9], m[10], m[11] = r20*scale.Z, r21*scale.Z, r22*scale.Z, 0
	m[12], m[13], m[14], m[15] = translation.X, translation.Y, translation.Z, 1
	return m
}

// TransformPoint applies m to p treated as the row-vector (p.X, p.Y, p.Z, 1),
// i.e. includes the translation row.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: p.X*m.at(0, 0) + p.Y*m.at(1, 0) + p.Z*m.at(2, 0) + m.at(3, 0),
		Y: p.X*m.at(0, 1) + p.Y*m.at(1, 1) + p.Z*m.at(2, 1) + m.at(3, 1),
		Z: p.X*m.at(0, 2) + p.Y*m.at(1, 2) + p.Z*m.at(2, 2) + m.at(3, 2),
	}
}

// TransformDirection applies m to p treated as the row-vector (p.X, p.Y, p.Z, 0),
// i.e. ignores translation — used for normals and tangents in SkinningJob.
func (m Mat4) TransformDirection(p Vec3) Vec3 {
	return Vec3{
		X: p.X*m.at(0, 0) + p.Y*m.at(1, 0) + p.Z*m.at(2, 0),
		Y: p.X*m.at(0, 1) + p.Y*m.at(1, 1) + p.Z*m.at(2, 1),
		Z: p.X*m.at(0, 2) + p.Y*m.at(1, 2) + p.Z*m.at(2, 2),
	}
}
