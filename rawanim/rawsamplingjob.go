package rawanim

import "github.com/lumenforge/skelcore/mathkernel"

// RawSamplingJob is the oracle sampler for RawAnimation (§4.2): for each
// track it scans for the pair of keys bracketing the requested time and
// interpolates (lerp for vec3 channels, slerp for rotation). It keeps no
// cache and is O(num_tracks + num_keys) every call — acceptable for an
// oracle used in tests and for small unbaked clips, unlike the
// cache-coherent animation.SamplingJob.
type RawSamplingJob struct {
	Animation *RawAnimation
	Ratio     float32
	Output    []mathkernel.TRS
}

// Validate reports whether the job can Run: Animation must be set and
// Output must be non-empty. Mirrors spec §4.6's "validate, then run
// purely" policy — no partial output is ever written.
func (j *RawSamplingJob) Validate() bool {
	return j.Animation != nil && len(j.Output) > 0
}

// Run validates and, on success, samples every track at Ratio·Duration
// into Output[0:min(len(Output), NumTracks())]. Returns false (writing
// nothing) if Validate fails.
func (j *RawSamplingJob) Run() bool {
	if !j.Validate() {
		return false
	}
	r := mathkernel.Clamp(j.Ratio, 0, 1)
	t := r * j.Animation.Duration

	n := len(j.Output)
	if n > j.Animation.NumTracks() {
		n = j.Animation.NumTracks()
	}
	for i := 0; i < n; i++ {
		track := &j.Animation.Tracks[i]
		j.Output[i] = mathkernel.TRS{
			Translation: sampleVector(track.Translations, t, mathkernel.Vec3{X: 0, Y: 0, Z: 0}),
			Rotation:    sampleQuat(track.Rotations, t),
			Scale:       sampleVector(track.Scales, t, mathkernel.Vec3{X: 1, Y: 1, Z: 1}),
		}
	}
	return true
}

// sampleVector finds the keys bracketing t and lerps between them. An
// empty key list falls back to fallback (the identity value for that
// channel) so a track that only animates, say, rotation still produces a
// sane TRS.
func sampleVector(keys []VectorKey, t float32, fallback mathkernel.Vec3) mathkernel.Vec3 {
	if len(keys) == 0 {
		return fallback
	}
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := len(keys) - 1
	if t >= keys[last].Time {
		return keys[last].Value
	}
	lo, hi := bracketVector(keys, t)
	left, right := keys[lo], keys[hi]
	u := (t - left.Time) / (right.Time - left.Time)
	return left.Value.Lerp(right.Value, u)
}

func sampleQuat(keys []QuatKey, t float32) mathkernel.Quat {
	if len(keys) == 0 {
		return mathkernel.QuatIdentity()
	}
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := len(keys) - 1
	if t >= keys[last].Time {
		return keys[last].Value
	}
	lo, hi := bracketQuat(keys, t)
	left, right := keys[lo], keys[hi]
	u := (t - left.Time) / (right.Time - left.Time)
	return left.Value.Slerp(right.Value, u)
}

// bracketVector binary-searches for the index pair (lo, lo+1) such that
// keys[lo].Time <= t < keys[lo+1].Time.
func bracketVector(keys []VectorKey, t float32) (int, int) {
	lo, hi := 0, len(keys)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if keys[mid].Time <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, hi
}

func bracketQuat(keys []QuatKey, t float32) (int, int) {
	lo, hi := 0, len(keys)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if keys[mid].Time <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, hi
}
