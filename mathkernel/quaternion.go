package mathkernel

import "math"

// Quat is a unit quaternion stored x, y, z, w — the same component order
// used on the wire (§3) and by the teacher's GPUBoneInfo.LocalRotation.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// Dot returns the dot product of q and r, used to detect the shortest
// interpolation path before Slerp/Nlerp.
func (q Quat) Dot(r Quat) float32 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// LengthSq returns the squared norm of q; Normalize uses it to detect a
// near-zero quaternion before taking the square root.
func (q Quat) LengthSq() float32 {
	return q.Dot(q)
}

// Normalize returns q scaled to unit length. A near-zero quaternion (which
// should never occur for valid animation data) is returned unchanged
// rather than dividing by zero.
func (q Quat) Normalize() Quat {
	lenSq := q.LengthSq()
	if lenSq <= 1e-12 {
		return q
	}
	inv := 1.0 / float32(math.Sqrt(float64(lenSq)))
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Scale multiplies every component of q by s.
func (q Quat) Scale(s float32) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// Add adds r to q component-wise.
func (q Quat) Add(r Quat) Quat {
	return Quat{q.X + r.X, q.Y + r.Y, q.Z + r.Z, q.W + r.W}
}

// Negate flips the sign of every component, yielding an equivalent
// rotation (q and -q represent the same orientation).
func (q Quat) Negate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

// Mul returns q * r — applying rotation r followed by rotation q when used
// to rotate a vector (Hamilton product, matches gazed-vu's lin.Q.Mult).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Slerp performs spherical linear interpolation from q to r at t ∈ [0,1],
// always taking the shortest arc (negating r first if the dot product is
// negative). Per spec §4.1 the offline builder guarantees adjacent
// keyframe quaternions are never more than 90° apart, so this never needs
// to fall back to Nlerp for numerical stability near t extremes, but the
// fallback is included anyway for robustness on nearly-parallel inputs.
//
// Parameters:
//   - r: the target quaternion
//   - t: interpolation factor, typically in [0,1]
//
// Returns:
//   - Quat: the interpolated, unit-length quaternion
func (q Quat) Slerp(r Quat, t float32) Quat {
	cosHalfTheta := q.Dot(r)
	if cosHalfTheta < 0 {
		r = r.Negate()
		cosHalfTheta = -cosHalfTheta
	}

	const epsilon = 1e-6
	if cosHalfTheta > 1-epsilon {
		return q.Add(r.Add(q.Negate()).Scale(t)).Normalize()
	}

	halfTheta := float32(math.Acos(float64(clampf(cosHalfTheta, -1, 1))))
	sinHalfTheta := float32(math.Sin(float64(halfTheta)))

	ratioA := float32(math.Sin(float64((1-t)*halfTheta))) / sinHalfTheta
	ratioB := float32(math.Sin(float64(t*halfTheta))) / sinHalfTheta

	return Quat{
		X: q.X*ratioA + r.X*ratioB,
		Y: q.Y*ratioA + r.Y*ratioB,
		Z: q.Z*ratioA + r.Z*ratioB,
		W: q.W*ratioA + r.W*ratioB,
	}.Normalize()
}

// Nlerp performs a normalized linear interpolation from q to r at t,
// taking the shortest arc. Cheaper than Slerp; not used by BlendingJob or
// SamplingJob (both require true Slerp per §4.1/§4.3) but kept as a
// utility for callers that can tolerate the approximation, mirroring
// gazed-vu's lin.Q.Nlerp.
func (q Quat) Nlerp(r Quat, t float32) Quat {
	if q.Dot(r) < 0 {
		r = r.Negate()
	}
	return q.Add(r.Add(q.Negate()).Scale(t)).Normalize()
}

func clampf(v, lo, hi float32) float32 {
	return Clamp(v, lo, hi)
}
