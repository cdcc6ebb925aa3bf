package rawanim

import (
	"math"
	"testing"

	"github.com/lumenforge/skelcore/mathkernel"
)

func approxEq(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestValidateRejectsNonPositiveDuration(t *testing.T) {
	a := &RawAnimation{Duration: 0}
	if a.Validate() != ErrNonPositiveDuration {
		t.Errorf("Validate() = %v, want ErrNonPositiveDuration", a.Validate())
	}
}

func TestValidateRejectsUnsortedKeys(t *testing.T) {
	a := &RawAnimation{
		Duration: 1,
		Tracks: []Track{{
			Translations: []VectorKey{{Time: 0.5}, {Time: 0.2}},
		}},
	}
	if a.Validate() == nil {
		t.Errorf("expected error for unsorted keys")
	}
}

func TestValidateRejectsOutOfRangeTime(t *testing.T) {
	a := &RawAnimation{
		Duration: 1,
		Tracks: []Track{{
			Translations: []VectorKey{{Time: 1.5}},
		}},
	}
	if a.Validate() == nil {
		t.Errorf("expected error for out-of-range time")
	}
}

// rotZQuat returns the quaternion for a rotation of angle radians about +Z.
func rotZQuat(angle float64) mathkernel.Quat {
	return mathkernel.Quat{
		Z: float32(math.Sin(angle / 2)),
		W: float32(math.Cos(angle / 2)),
	}
}

func TestRawSamplingJobRotationHalfway(t *testing.T) {
	// spec §8 scenario 1: child rotates 90deg about +Z over 1s.
	anim := &RawAnimation{
		Duration: 1,
		Tracks: []Track{
			{}, // root: static
			{
				Rotations: []QuatKey{
					{Time: 0, Value: rotZQuat(0)},
					{Time: 1, Value: rotZQuat(math.Pi / 2)},
				},
			},
		},
	}
	out := make([]mathkernel.TRS, 2)
	job := &RawSamplingJob{Animation: anim, Ratio: 0.5, Output: out}
	if !job.Run() {
		t.Fatalf("Run() = false")
	}
	want := rotZQuat(math.Pi / 4)
	got := out[1].Rotation
	if !approxEq(got.Z, want.Z, 1e-5) || !approxEq(got.W, want.W, 1e-5) {
		t.Errorf("rotation at r=0.5 = %+v, want %+v", got, want)
	}
}

func TestRawSamplingJobBoundaryRatios(t *testing.T) {
	anim := &RawAnimation{
		Duration: 2,
		Tracks: []Track{{
			Translations: []VectorKey{
				{Time: 0, Value: mathkernel.Vec3{X: 1}},
				{Time: 2, Value: mathkernel.Vec3{X: 5}},
			},
		}},
	}
	out := make([]mathkernel.TRS, 1)

	job := &RawSamplingJob{Animation: anim, Ratio: 0, Output: out}
	job.Run()
	if out[0].Translation.X != 1 {
		t.Errorf("ratio=0: X = %v, want 1", out[0].Translation.X)
	}

	job = &RawSamplingJob{Animation: anim, Ratio: 1, Output: out}
	job.Run()
	if out[0].Translation.X != 5 {
		t.Errorf("ratio=1: X = %v, want 5", out[0].Translation.X)
	}
}

func TestRawSamplingJobInvalidWithoutAnimation(t *testing.T) {
	job := &RawSamplingJob{Output: make([]mathkernel.TRS, 1)}
	if job.Run() {
		t.Errorf("Run() with nil Animation should fail")
	}
}

func TestRawSamplingJobEmptyOutputFailsValidation(t *testing.T) {
	anim := &RawAnimation{Duration: 1, Tracks: []Track{{}}}
	job := &RawSamplingJob{Animation: anim, Output: nil}
	if job.Run() {
		t.Errorf("Run() with empty output should fail validation per job contract")
	}
}

func TestRawSamplingJobZeroTracksWritesNothing(t *testing.T) {
	anim := &RawAnimation{Duration: 1, Tracks: nil}
	out := []mathkernel.TRS{mathkernel.IdentityTRS()}
	job := &RawSamplingJob{Animation: anim, Output: out}
	if !job.Run() {
		t.Fatalf("Run() with zero tracks should succeed")
	}
	if out[0] != mathkernel.IdentityTRS() {
		t.Errorf("output beyond NumTracks should be left untouched")
	}
}
