package asset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/lumenforge/skelcore/mathkernel"
	meshpkg "github.com/lumenforge/skelcore/mesh"
)

const (
	meshTag         = "ozz-sample-Mesh"
	meshVersion     = 1
	meshPartVersion = 1
)

// LoadMeshes reads a §6 Mesh asset file: meshes are packed back-to-back
// until EOF, so the loader keeps reading additional meshes until the
// next read hits io.EOF cleanly at a mesh boundary.
func LoadMeshes(r io.Reader) ([]*meshpkg.Mesh, error) {
	br := bufferedReader(r)
	if err := readHeader(br, "LoadMeshes", meshTag, meshVersion); err != nil {
		return nil, err
	}

	var meshes []*meshpkg.Mesh
	for {
		numParts, err := readU32(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &AssetFormatError{Op: "LoadMeshes", Err: err}
		}
		m, err := readOneMesh(br, numParts)
		if err != nil {
			return nil, &AssetFormatError{Op: "LoadMeshes", Err: err}
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func readOneMesh(r io.Reader, numParts uint32) (*meshpkg.Mesh, error) {
	ver, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if ver != meshPartVersion {
		return nil, fmt.Errorf("%w: got %d", errUnsupportedVers, ver)
	}

	parts := make([]meshpkg.Part, numParts)
	for i := range parts {
		p, err := readPart(r)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}

	triangleIndices, err := readU32Array(r)
	if err != nil {
		return nil, err
	}
	jointRemaps, err := readU16Array(r)
	if err != nil {
		return nil, err
	}
	inverseBindPoses, err := readMat4Array(r)
	if err != nil {
		return nil, err
	}

	return &meshpkg.Mesh{
		Parts:            parts,
		TriangleIndices:  triangleIndices,
		JointRemaps:      jointRemaps,
		InverseBindPoses: inverseBindPoses,
	}, nil
}

func readPart(r io.Reader) (meshpkg.Part, error) {
	positions, err := readVec3Array(r)
	if err != nil {
		return meshpkg.Part{}, err
	}
	normals, err := readVec3Array(r)
	if err != nil {
		return meshpkg.Part{}, err
	}
	tangents, err := readVec3Array(r)
	if err != nil {
		return meshpkg.Part{}, err
	}
	uvs, err := readUVArray(r)
	if err != nil {
		return meshpkg.Part{}, err
	}
	colors, err := readColorArray(r)
	if err != nil {
		return meshpkg.Part{}, err
	}
	jointIndices, err := readU16Array(r)
	if err != nil {
		return meshpkg.Part{}, err
	}
	jointWeights, err := readF32Array(r)
	if err != nil {
		return meshpkg.Part{}, err
	}

	influences := 0
	if len(positions) > 0 {
		influences = len(jointIndices) / len(positions)
	}

	return meshpkg.Part{
		Positions:       positions,
		Normals:         nilIfEmptyVec3(normals),
		Tangents:        nilIfEmptyVec3(tangents),
		UVs:             uvs,
		Colors:          colors,
		InfluencesCount: influences,
		JointIndices:    jointIndices,
		JointWeights:    jointWeights,
	}, nil
}

func nilIfEmptyVec3(v []mathkernel.Vec3) []mathkernel.Vec3 {
	if len(v) == 0 {
		return nil
	}
	return v
}

func readVec3Array(r io.Reader) ([]mathkernel.Vec3, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]mathkernel.Vec3, count)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readUVArray(r io.Reader) ([]meshpkg.UV, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]meshpkg.UV, count)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readColorArray(r io.Reader) ([]meshpkg.Color, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]meshpkg.Color, count)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readU16Array(r io.Reader) ([]uint16, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := range out {
		v, err := readU16(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readF32Array(r io.Reader) ([]float32, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		v, err := readF32(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU32Array(r io.Reader) ([]uint32, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		v, err := readU32(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readMat4Array(r io.Reader) ([]mathkernel.Mat4, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]mathkernel.Mat4, count)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
