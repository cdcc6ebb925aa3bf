package asset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lumenforge/skelcore/mathkernel"
	"github.com/lumenforge/skelcore/skeleton"
)

const (
	skeletonTag     = "ozz-raw_skeleton"
	skeletonVersion = 1
	jointVersion    = 1
)

// LoadSkeleton reads a §6 Skeleton asset: a recursive joint tree flattened
// depth-first into a skeleton.Skeleton with parent indices.
func LoadSkeleton(r io.Reader) (*skeleton.Skeleton, error) {
	br := bufferedReader(r)
	if err := readHeader(br, "LoadSkeleton", skeletonTag, skeletonVersion); err != nil {
		return nil, err
	}

	numRoots, err := readU32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadSkeleton", Err: err}
	}
	ver, err := readU32(br)
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadSkeleton", Err: err}
	}
	if ver != jointVersion {
		return nil, &AssetFormatError{Op: "LoadSkeleton", Err: fmt.Errorf("%w: got %d", errUnsupportedVers, ver)}
	}

	b := skeleton.NewBuilder()
	for i := uint32(0); i < numRoots; i++ {
		if err := readJointRecord(br, -1, b); err != nil {
			return nil, &AssetFormatError{Op: "LoadSkeleton", Err: err}
		}
	}

	sk, err := b.Build()
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadSkeleton", Err: err}
	}
	return sk, nil
}

func readJointRecord(r io.Reader, parent int16, b *skeleton.Builder) error {
	nameLen, err := readU32(r)
	if err != nil {
		return err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return err
	}

	var trs mathkernel.TRS
	if err := binary.Read(r, binary.LittleEndian, &trs.Translation); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &trs.Rotation); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &trs.Scale); err != nil {
		return err
	}

	idx, err := b.AddJoint(string(name), parent, trs)
	if err != nil {
		return err
	}

	numChildren, err := readU32(r)
	if err != nil {
		return err
	}
	if numChildren > 0 {
		ver, err := readU32(r)
		if err != nil {
			return err
		}
		if ver != jointVersion {
			return fmt.Errorf("%w: got %d", errUnsupportedVers, ver)
		}
	}
	for c := uint32(0); c < numChildren; c++ {
		if err := readJointRecord(r, int16(idx), b); err != nil {
			return err
		}
	}
	return nil
}
