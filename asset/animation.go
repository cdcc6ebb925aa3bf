package asset

import (
	"io"

	anim "github.com/lumenforge/skelcore/animation"
)

const (
	animationTag     = "ozz-animation"
	animationVersion = 6
)

// LoadAnimation reads a §6 compressed Animation asset.
func LoadAnimation(r io.Reader) (*anim.Animation, error) {
	br := bufferedReader(r)
	if err := readHeader(br, "LoadAnimation", animationTag, animationVersion); err != nil {
		return nil, err
	}

	duration, err := readF32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	numTracks, err := readI32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	nameLen, err := readI32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	numTrans, err := readI32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	numRot, err := readI32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	numScale, err := readI32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	if numTracks < 0 || numTrans < 0 || numRot < 0 || numScale < 0 || nameLen < 0 {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: errBadCounts}
	}

	name := make([]byte, nameLen)
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}

	translations, err := readFloat3Keys(br, int(numTrans))
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	rotations, err := readRotationKeys(br, int(numRot))
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}
	scales, err := readFloat3Keys(br, int(numScale))
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadAnimation", Err: err}
	}

	return anim.NewAnimation(duration, int(numTracks), translations, rotations, scales), nil
}

func readFloat3Keys(r io.Reader, count int) ([]anim.Float3Key, error) {
	keys := make([]anim.Float3Key, count)
	for i := range keys {
		ratio, err := readF32(r)
		if err != nil {
			return nil, err
		}
		track, err := readU16(r)
		if err != nil {
			return nil, err
		}
		var value [3]uint16
		for j := range value {
			v, err := readU16(r)
			if err != nil {
				return nil, err
			}
			value[j] = v
		}
		keys[i] = anim.Float3Key{Ratio: ratio, Track: track, Value: value}
	}
	return keys, nil
}

func readRotationKeys(r io.Reader, count int) ([]anim.RotationKey, error) {
	keys := make([]anim.RotationKey, count)
	for i := range keys {
		ratio, err := readF32(r)
		if err != nil {
			return nil, err
		}
		track, err := readU16(r)
		if err != nil {
			return nil, err
		}
		var largest, sign [1]byte
		if _, err := io.ReadFull(r, largest[:]); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, sign[:]); err != nil {
			return nil, err
		}
		var value [3]int16
		for j := range value {
			v, err := readU16(r)
			if err != nil {
				return nil, err
			}
			value[j] = int16(v)
		}
		keys[i] = anim.RotationKey{Ratio: ratio, Track: track, Largest: largest[0], Sign: sign[0], Value: value}
	}
	return keys, nil
}
