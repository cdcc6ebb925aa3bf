package asset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lumenforge/skelcore/mathkernel"
	"github.com/lumenforge/skelcore/rawanim"
)

const (
	rawAnimationTag     = "ozz-raw_animation"
	rawAnimationVersion = 3
	trackVersion        = 1
	keyVersion          = 1
)

// LoadRawAnimation reads a §6 RawAnimation asset.
func LoadRawAnimation(r io.Reader) (*rawanim.RawAnimation, error) {
	br := bufferedReader(r)
	if err := readHeader(br, "LoadRawAnimation", rawAnimationTag, rawAnimationVersion); err != nil {
		return nil, err
	}

	duration, err := readF32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
	}
	numTracks, err := readU32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
	}
	ver, err := readU32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
	}
	if ver != trackVersion {
		return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: fmt.Errorf("%w: got %d", errUnsupportedVers, ver)}
	}

	tracks := make([]rawanim.Track, numTracks)
	for i := range tracks {
		trans, err := readVectorKeys(br)
		if err != nil {
			return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
		}
		rots, err := readQuatKeys(br)
		if err != nil {
			return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
		}
		scales, err := readVectorKeys(br)
		if err != nil {
			return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
		}
		tracks[i] = rawanim.Track{Translations: trans, Rotations: rots, Scales: scales}
	}

	nameLen, err := readU32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, &AssetFormatError{Op: "LoadRawAnimation", Err: err}
	}

	return &rawanim.RawAnimation{Duration: duration, Tracks: tracks}, nil
}

func readVectorKeys(r io.Reader) ([]rawanim.VectorKey, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	ver, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if ver != keyVersion {
		return nil, fmt.Errorf("%w: got %d", errUnsupportedVers, ver)
	}
	keys := make([]rawanim.VectorKey, count)
	for i := range keys {
		time, err := readF32(r)
		if err != nil {
			return nil, err
		}
		var v mathkernel.Vec3
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, err
		}
		keys[i] = rawanim.VectorKey{Time: time, Value: v}
	}
	return keys, nil
}

func readQuatKeys(r io.Reader) ([]rawanim.QuatKey, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	ver, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if ver != keyVersion {
		return nil, fmt.Errorf("%w: got %d", errUnsupportedVers, ver)
	}
	keys := make([]rawanim.QuatKey, count)
	for i := range keys {
		time, err := readF32(r)
		if err != nil {
			return nil, err
		}
		var q mathkernel.Quat
		if err := binary.Read(r, binary.LittleEndian, &q); err != nil {
			return nil, err
		}
		keys[i] = rawanim.QuatKey{Time: time, Value: q}
	}
	return keys, nil
}
