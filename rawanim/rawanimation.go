// Package rawanim holds the uncompressed reference animation
// representation (§3 RawAnimation) and its oracle sampler (§4.2
// RawSamplingJob): simple per-track, strictly-ascending-time keyframe
// lists with no keyframe-ordering trick and no cursor cache. It exists to
// validate the compressed sampler (animation package) against ground
// truth and to serve unbaked assets that skip the offline compression
// step, exactly as spec §4.2 describes.
package rawanim

import (
	"errors"
	"fmt"

	"github.com/lumenforge/skelcore/mathkernel"
)

// VectorKey is a single translation or scale keyframe.
type VectorKey struct {
	Time  float32
	Value mathkernel.Vec3
}

// QuatKey is a single rotation keyframe.
type QuatKey struct {
	Time  float32
	Value mathkernel.Quat
}

// Track holds the three independently-sized key lists for one joint.
type Track struct {
	Translations []VectorKey
	Rotations    []QuatKey
	Scales       []VectorKey
}

// RawAnimation is the uncompressed per-track keyframe representation
// (§3). Duration must be positive; every key's time must be strictly
// ascending within its list and fall within [0, Duration].
type RawAnimation struct {
	Duration float32
	Tracks   []Track
}

// NumTracks returns the number of animated joints.
func (a *RawAnimation) NumTracks() int {
	return len(a.Tracks)
}

// ErrNonPositiveDuration is returned by Validate when Duration <= 0.
var ErrNonPositiveDuration = errors.New("rawanim: duration must be positive")

// ErrUnsortedKeys is returned by Validate when a key list is not strictly
// ascending in time.
var ErrUnsortedKeys = errors.New("rawanim: keys must be strictly ascending in time")

// ErrTimeOutOfRange is returned by Validate when a key's time falls
// outside [0, Duration].
var ErrTimeOutOfRange = errors.New("rawanim: key time out of [0, duration] range")

// Validate checks the §3 RawAnimation invariants: duration > 0; for every
// track and every key list, times are strictly ascending and within
// [0, duration].
func (a *RawAnimation) Validate() error {
	if a.Duration <= 0 {
		return ErrNonPositiveDuration
	}
	for ti, tr := range a.Tracks {
		if err := validateVectorKeys(tr.Translations, a.Duration); err != nil {
			return fmt.Errorf("track %d translations: %w", ti, err)
		}
		if err := validateQuatKeys(tr.Rotations, a.Duration); err != nil {
			return fmt.Errorf("track %d rotations: %w", ti, err)
		}
		if err := validateVectorKeys(tr.Scales, a.Duration); err != nil {
			return fmt.Errorf("track %d scales: %w", ti, err)
		}
	}
	return nil
}

func validateVectorKeys(keys []VectorKey, duration float32) error {
	for i, k := range keys {
		if k.Time < 0 || k.Time > duration {
			return fmt.Errorf("%w: time %v", ErrTimeOutOfRange, k.Time)
		}
		if i > 0 && keys[i-1].Time >= k.Time {
			return ErrUnsortedKeys
		}
	}
	return nil
}

func validateQuatKeys(keys []QuatKey, duration float32) error {
	for i, k := range keys {
		if k.Time < 0 || k.Time > duration {
			return fmt.Errorf("%w: time %v", ErrTimeOutOfRange, k.Time)
		}
		if i > 0 && keys[i-1].Time >= k.Time {
			return ErrUnsortedKeys
		}
	}
	return nil
}
