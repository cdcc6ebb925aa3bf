// Package animation holds the compressed clip representation (§3
// Animation) and its cache-coherent sampler (§4.1 SamplingJob +
// Context) — the largest single component of the runtime (~25% of the
// core per spec §2). Keyframes are stored AoS on the wire and in memory,
// pre-sorted per the §3 keyframe-ordering invariant, and decompressed
// on demand into a per-track scratch pair ready for interpolation.
package animation

import (
	"math"

	"github.com/lumenforge/skelcore/mathkernel"
)

// Float3Key is a translation or scale keyframe as stored on the wire
// (§3/§6): ratio, track index, and three IEEE-754 binary16 components.
type Float3Key struct {
	Ratio float32
	Track uint16
	Value [3]uint16
}

// Decode returns the key's value as a float32 vector.
func (k Float3Key) Decode() mathkernel.Vec3 {
	return mathkernel.Vec3{
		X: mathkernel.HalfToFloat32(k.Value[0]),
		Y: mathkernel.HalfToFloat32(k.Value[1]),
		Z: mathkernel.HalfToFloat32(k.Value[2]),
	}
}

// EncodeFloat3Key builds a Float3Key from a plain vector. This is a test/
// fixture helper that performs the same half-precision quantization the
// wire format requires (§6); it is not an offline compressor (no
// rate-distortion search, no keyframe reduction) — the "raw → runtime"
// asset bakery itself stays out of scope per spec §1.
func EncodeFloat3Key(track uint16, ratio float32, v mathkernel.Vec3) Float3Key {
	return Float3Key{
		Ratio: ratio,
		Track: track,
		Value: [3]uint16{
			mathkernel.Float32ToHalf(v.X),
			mathkernel.Float32ToHalf(v.Y),
			mathkernel.Float32ToHalf(v.Z),
		},
	}
}

// RotationKey is a quantised quaternion keyframe as stored on the wire
// (§3/§6): the three smallest components times √2, quantised to signed
// 16-bit, plus which component position was dropped (Largest) and its
// sign. Track is logically 13 bits, Largest 2 bits, Sign 1 bit; they are
// kept as plain Go fields rather than bit-packed in memory (the §6
// bit-packing is a wire-only detail the loader unpacks once).
type RotationKey struct {
	Ratio   float32
	Track   uint16
	Largest uint8
	Sign    uint8
	Value   [3]int16
}

const quatQuantScale = 1.0 / (32767.0 * math.Sqrt2)

// Decode reconstructs the full unit quaternion: the three stored
// components are dequantised and placed at every position except
// Largest; Largest is recomputed as √(1−Σvᵢ²), clamped at zero to avoid
// NaN from accumulated quantisation error (§9 open question, resolved:
// clamp rather than trust the radicand), and negated when Sign == 1.
func (k RotationKey) Decode() mathkernel.Quat {
	var comp [4]float32
	vi := 0
	var sumSq float32
	for i := 0; i < 4; i++ {
		if uint8(i) == k.Largest {
			continue
		}
		v := float32(k.Value[vi]) * quatQuantScale
		comp[i] = v
		sumSq += v * v
		vi++
	}
	radicand := 1 - sumSq
	if radicand < 0 {
		radicand = 0
	}
	largest := float32(math.Sqrt(float64(radicand)))
	if k.Sign == 1 {
		largest = -largest
	}
	comp[k.Largest] = largest
	return mathkernel.Quat{X: comp[0], Y: comp[1], Z: comp[2], W: comp[3]}
}

// EncodeRotationKey builds a RotationKey from a unit quaternion, dropping
// whichever component has the largest magnitude (the decoder reconstructs
// it from the unit-norm constraint). A test/fixture helper, grounded on
// the same §3/§6 wire contract Decode reverses; not part of an offline
// compressor.
func EncodeRotationKey(track uint16, ratio float32, q mathkernel.Quat) RotationKey {
	q = q.Normalize()
	comp := [4]float32{q.X, q.Y, q.Z, q.W}
	largest := 0
	for i := 1; i < 4; i++ {
		if abs32(comp[i]) > abs32(comp[largest]) {
			largest = i
		}
	}
	sign := uint8(0)
	if comp[largest] < 0 {
		sign = 1
	}
	var value [3]int16
	vi := 0
	for i := 0; i < 4; i++ {
		if i == largest {
			continue
		}
		value[vi] = int16(mathkernel.Clamp(comp[i]/quatQuantScale, -32767, 32767))
		vi++
	}
	return RotationKey{Ratio: ratio, Track: track, Largest: uint8(largest), Sign: sign, Value: value}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Animation is the compressed, triple-SoA clip representation (§3):
// independently-sized translation/rotation/scale keyframe arrays, each
// pre-sorted per the keyframe-ordering invariant (a seeding prefix of the
// two ratio-0 keys per track, in track order, followed by the remaining
// keys sorted by ratio ascending).
type Animation struct {
	Duration     float32
	numTracks    int
	Translations []Float3Key
	Rotations    []RotationKey
	Scales       []Float3Key
}

// NewAnimation constructs an Animation for numTracks joints. Callers are
// responsible for populating Translations/Rotations/Scales in the §3
// ordering (e.g. via the asset loader, or directly in tests) before use;
// this module does not include an offline keyframe encoder/optimizer.
func NewAnimation(duration float32, numTracks int, translations []Float3Key, rotations []RotationKey, scales []Float3Key) *Animation {
	return &Animation{
		Duration:     duration,
		numTracks:    numTracks,
		Translations: translations,
		Rotations:    rotations,
		Scales:       scales,
	}
}

// NumTracks returns the joint count this clip animates.
func (a *Animation) NumTracks() int {
	return a.numTracks
}
