// Package blending implements BlendingJob (§4.3): weighted accumulation
// of per-joint local transforms across normal layers, an additive-layer
// post-pass, and a rest-pose fallback for any joint whose accumulated
// weight falls short of a threshold.
package blending

import "github.com/lumenforge/skelcore/mathkernel"

// Layer is one blend input: a uniform Weight, a per-joint Transform
// buffer (length >= N, N being the rest pose's joint count), and an
// optional per-joint JointWeights mask (nil means every joint uses
// Weight uniformly).
type Layer struct {
	Weight       float32
	Transform    []mathkernel.TRS
	JointWeights []float32
}

// BlendingJob blends Layers (normal) and AdditiveLayers into Output,
// falling back toward RestPose wherever a joint's accumulated weight
// stays under Threshold.
type BlendingJob struct {
	RestPose       []mathkernel.TRS
	Layers         []Layer
	AdditiveLayers []Layer
	Output         []mathkernel.TRS
	Threshold      float32
}

// Validate reports whether Run can proceed: RestPose and Output must be
// non-empty, Threshold must be positive, and every layer's Transform
// (and, if present, JointWeights) must cover at least len(RestPose)
// joints.
func (j *BlendingJob) Validate() bool {
	n := len(j.RestPose)
	if n == 0 || len(j.Output) == 0 || j.Threshold <= 0 {
		return false
	}
	return layersFit(j.Layers, n) && layersFit(j.AdditiveLayers, n)
}

func layersFit(layers []Layer, n int) bool {
	for _, l := range layers {
		if len(l.Transform) < n {
			return false
		}
		if l.JointWeights != nil && len(l.JointWeights) < n {
			return false
		}
	}
	return true
}

// Run validates, blends every normal layer into Output, applies the
// threshold rest-pose fallback, then applies every additive layer.
// Returns false (writing nothing) if Validate fails.
func (j *BlendingJob) Run() bool {
	if !j.Validate() {
		return false
	}
	n := len(j.RestPose)
	if n > len(j.Output) {
		n = len(j.Output)
	}

	blendAccum := make([]float32, n) // per-joint accumulator used for masked blend ratios (§4.3 accumulated_weights)
	jointTotal := make([]float32, n) // per-joint total weight received, for the threshold fallback
	accumulatedWeight := float32(0)
	numPasses := 0

	for _, l := range j.Layers {
		if l.Weight <= 0 {
			continue
		}
		lw := l.Weight
		accumulatedWeight += lw
		for i := 0; i < n; i++ {
			wi := lw
			if l.JointWeights != nil {
				wi = lw * l.JointWeights[i]
			}
			jointTotal[i] += wi

			if numPasses == 0 {
				j.Output[i] = l.Transform[i]
				if l.JointWeights != nil {
					blendAccum[i] = wi
				}
				continue
			}

			var t float32
			if l.JointWeights != nil {
				blendAccum[i] += wi
				if blendAccum[i] > 0 {
					t = wi / blendAccum[i]
				}
			} else if accumulatedWeight > 0 {
				t = lw / accumulatedWeight
			}
			j.Output[i] = mathkernel.Blend(j.Output[i], l.Transform[i], t)
		}
		numPasses++
	}

	if numPasses == 0 {
		copy(j.Output[:n], j.RestPose[:n])
	}

	for i := 0; i < n; i++ {
		if jointTotal[i] >= j.Threshold {
			continue
		}
		t := 1 - jointTotal[i]/j.Threshold
		t = mathkernel.Clamp(t, 0, 1)
		j.Output[i] = mathkernel.Blend(j.Output[i], j.RestPose[i], t)
	}

	for _, l := range j.AdditiveLayers {
		if l.Weight <= 0 {
			continue
		}
		lw := l.Weight
		for i := 0; i < n; i++ {
			wi := lw
			if l.JointWeights != nil {
				wi = lw * l.JointWeights[i]
			}
			if wi <= 0 {
				continue
			}
			src := l.Transform[i]
			out := j.Output[i]

			out.Translation = out.Translation.Add(src.Translation.Scale(wi))
			out.Scale = mathkernel.Vec3{
				X: out.Scale.X * ((1 - wi) + wi*src.Scale.X),
				Y: out.Scale.Y * ((1 - wi) + wi*src.Scale.Y),
				Z: out.Scale.Z * ((1 - wi) + wi*src.Scale.Z),
			}
			// Literal additive formula (normalize(src.rotation * wi) * out.rotation):
			// degenerate for 0<wi<1 since normalizing a scaled unit quaternion just
			// recovers the original direction, but this is the specified behavior,
			// not a gap to patch — see DESIGN.md.
			weighted := src.Rotation.Scale(wi).Normalize()
			out.Rotation = weighted.Mul(out.Rotation)

			j.Output[i] = out
		}
	}

	return true
}
