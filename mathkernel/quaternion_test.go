package mathkernel

import (
	"math"
	"testing"
)

func approxEqf(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestQuatSlerpIdentity(t *testing.T) {
	q := QuatIdentity()
	got := q.Slerp(q, 0.5)
	want := QuatIdentity()
	if !approxEqf(got.X, want.X, 1e-6) || !approxEqf(got.Y, want.Y, 1e-6) ||
		!approxEqf(got.Z, want.Z, 1e-6) || !approxEqf(got.W, want.W, 1e-6) {
		t.Errorf("Slerp(identity, identity, 0.5) = %+v, want %+v", got, want)
	}
}

func TestQuatSlerpHalfway(t *testing.T) {
	// rotation of pi/2 about +Z: (0,0,sin(pi/4),cos(pi/4))
	half := float32(math.Pi / 4)
	rotZ90 := Quat{0, 0, float32(math.Sin(float64(half))), float32(math.Cos(float64(half)))}
	got := QuatIdentity().Slerp(rotZ90, 0.5)
	// expect rotation of pi/4 about Z: (0,0,sin(pi/8),cos(pi/8))
	wantZ := float32(math.Sin(math.Pi / 8))
	wantW := float32(math.Cos(math.Pi / 8))
	if !approxEqf(got.Z, wantZ, 1e-5) || !approxEqf(got.W, wantW, 1e-5) {
		t.Errorf("Slerp halfway = %+v, want Z=%v W=%v", got, wantZ, wantW)
	}
}

func TestQuatSlerpShortestPath(t *testing.T) {
	q := QuatIdentity()
	negQ := q.Negate()
	got := q.Slerp(negQ, 0.0)
	if !approxEqf(got.W, 1, 1e-6) {
		t.Errorf("Slerp(q, -q, 0) should reproduce q via shortest path, got %+v", got)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{1, 2, 3, 4}
	n := q.Normalize()
	lenSq := n.LengthSq()
	if !approxEqf(lenSq, 1, 1e-5) {
		t.Errorf("Normalize() length^2 = %v, want 1", lenSq)
	}
}

func TestQuatMulIdentity(t *testing.T) {
	q := Quat{0.1, 0.2, 0.3, 0.9}.Normalize()
	got := q.Mul(QuatIdentity())
	if !approxEqf(got.X, q.X, 1e-6) || !approxEqf(got.W, q.W, 1e-6) {
		t.Errorf("q * identity = %+v, want %+v", got, q)
	}
}
