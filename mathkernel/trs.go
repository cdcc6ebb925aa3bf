package mathkernel

// TRS is a decomposed local transform: translation, unit-quaternion
// rotation, and per-axis scale. It is the per-joint output of SamplingJob
// and BlendingJob and the per-joint input of LocalToModelJob.
type TRS struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// IdentityTRS returns the transform with zero translation, identity
// rotation, and unit scale.
func IdentityTRS() TRS {
	return TRS{
		Translation: Vec3{0, 0, 0},
		Rotation:    QuatIdentity(),
		Scale:       Vec3{1, 1, 1},
	}
}

// Blend performs the per-component Blend(a, b, t) referenced by §4.3:
// lerp on translation and scale, slerp on rotation.
func Blend(a, b TRS, t float32) TRS {
	return TRS{
		Translation: a.Translation.Lerp(b.Translation, t),
		Rotation:    a.Rotation.Slerp(b.Rotation, t),
		Scale:       a.Scale.Lerp(b.Scale, t),
	}
}
