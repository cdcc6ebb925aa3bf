package animation

import "github.com/lumenforge/skelcore/mathkernel"

// SamplingJob samples a compressed Animation at Ratio into Output,
// reusing Context's cursor cache across calls (§4.1). Like every job in
// this module it validates up front and either fully succeeds or writes
// nothing.
type SamplingJob struct {
	Animation *Animation
	Context   *Context
	Ratio     float32
	Output    []mathkernel.TRS
}

// Validate reports whether Run can proceed: Animation and Context must
// be set, Context must have enough track capacity for Animation, and
// Output must be non-empty.
func (j *SamplingJob) Validate() bool {
	if j.Animation == nil || j.Context == nil || len(j.Output) == 0 {
		return false
	}
	return j.Context.MaxTracks() >= j.Animation.NumTracks()
}

// Run validates, advances the Context's cursors to Ratio, decompresses
// every track's bracket, and interpolates into Output. Returns false
// (writing nothing) if Validate fails.
func (j *SamplingJob) Run() bool {
	if !j.Validate() {
		return false
	}
	r := mathkernel.Clamp(j.Ratio, 0, 1)
	a := j.Animation
	ctx := j.Context
	numTracks := a.NumTracks()

	ctx.invalidate(a, r)

	stepFloat3 := func(c *float3Channel, keys []Float3Key) {
		if len(keys) == 0 {
			return
		}
		if c.cursor == 0 {
			c.seed(numTracks)
		}
		c.advance(keys, r)
		c.refresh(keys, numTracks)
	}
	stepFloat3(&ctx.translation, a.Translations)
	stepFloat3(&ctx.scale, a.Scales)

	if len(a.Rotations) != 0 {
		if ctx.rotation.cursor == 0 {
			ctx.rotation.seed(numTracks)
		}
		ctx.rotation.advance(a.Rotations, r)
		ctx.rotation.refresh(a.Rotations, numTracks)
	}

	n := len(j.Output)
	if n > numTracks {
		n = numTracks
	}
	for i := 0; i < n; i++ {
		j.Output[i] = mathkernel.TRS{
			Translation: sampleOrFallback3(&ctx.translation, a.Translations, i, r, mathkernel.Vec3{}),
			Rotation:    sampleOrFallbackQuat(&ctx.rotation, a.Rotations, i, r),
			Scale:       sampleOrFallback3(&ctx.scale, a.Scales, i, r, mathkernel.Vec3{X: 1, Y: 1, Z: 1}),
		}
	}
	return true
}

func sampleOrFallback3(c *float3Channel, keys []Float3Key, track int, r float32, fallback mathkernel.Vec3) mathkernel.Vec3 {
	if len(keys) == 0 {
		return fallback
	}
	return c.sample(track, r)
}

func sampleOrFallbackQuat(c *quatChannel, keys []RotationKey, track int, r float32) mathkernel.Quat {
	if len(keys) == 0 {
		return mathkernel.QuatIdentity()
	}
	return c.sample(track, r)
}
