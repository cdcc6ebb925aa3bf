package asset

import (
	"encoding/binary"
	"io"

	anim "github.com/lumenforge/skelcore/animation"
	"github.com/lumenforge/skelcore/mathkernel"
	meshpkg "github.com/lumenforge/skelcore/mesh"
	"github.com/lumenforge/skelcore/rawanim"
	"github.com/lumenforge/skelcore/skeleton"
)

func writeHeader(w io.Writer, tag string, version uint32) error {
	if _, err := w.Write([]byte{hostEndiannessByte}); err != nil {
		return err
	}
	if _, err := io.WriteString(w, tag); err != nil {
		return err
	}
	if _, err := w.Write([]byte{0}); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, version)
}

func writeU32(w io.Writer, v uint32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeI32(w io.Writer, v int32) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeF32(w io.Writer, v float32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeU16(w io.Writer, v uint16) error { return binary.Write(w, binary.LittleEndian, v) }

// WriteSkeleton serializes sk as a §6 Skeleton asset. Joints are written
// as a recursive tree rooted at each parent-less joint, each record
// followed by all of its children in index order; since Skeleton itself
// keeps only parent indices, the child lists are rebuilt first — the
// loader's own flattening contract, just run in reverse.
func WriteSkeleton(w io.Writer, sk *skeleton.Skeleton) error {
	if err := writeHeader(w, skeletonTag, skeletonVersion); err != nil {
		return err
	}
	children := childLists(sk)
	roots := children[skeletonRootKey]
	if err := writeU32(w, uint32(len(roots))); err != nil {
		return err
	}
	if err := writeU32(w, jointVersion); err != nil {
		return err
	}
	for _, root := range roots {
		if err := writeJointRecord(w, sk, root, children); err != nil {
			return err
		}
	}
	return nil
}

const skeletonRootKey = -1

func childLists(sk *skeleton.Skeleton) map[int][]int {
	out := map[int][]int{}
	for i := 0; i < sk.NumJoints(); i++ {
		p := int(sk.Parent(i))
		out[p] = append(out[p], i)
	}
	return out
}

func writeJointRecord(w io.Writer, sk *skeleton.Skeleton, joint int, children map[int][]int) error {
	name := sk.Name(joint)
	if err := writeU32(w, uint32(len(name))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	rest := sk.Rest(joint)
	if err := binary.Write(w, binary.LittleEndian, rest.Translation); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, rest.Rotation); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, rest.Scale); err != nil {
		return err
	}
	kids := children[joint]
	if err := writeU32(w, uint32(len(kids))); err != nil {
		return err
	}
	if len(kids) > 0 {
		if err := writeU32(w, jointVersion); err != nil {
			return err
		}
	}
	for _, k := range kids {
		if err := writeJointRecord(w, sk, k, children); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnimation serializes a as a §6 compressed Animation asset. name is
// stored verbatim (the in-memory Animation type does not itself keep a
// name field, matching §3's definition of the type, so callers supply
// one at the asset boundary).
func WriteAnimation(w io.Writer, a *anim.Animation, name string) error {
	if err := writeHeader(w, animationTag, animationVersion); err != nil {
		return err
	}
	if err := writeF32(w, a.Duration); err != nil {
		return err
	}
	if err := writeI32(w, int32(a.NumTracks())); err != nil {
		return err
	}
	if err := writeI32(w, int32(len(name))); err != nil {
		return err
	}
	if err := writeI32(w, int32(len(a.Translations))); err != nil {
		return err
	}
	if err := writeI32(w, int32(len(a.Rotations))); err != nil {
		return err
	}
	if err := writeI32(w, int32(len(a.Scales))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	for _, k := range a.Translations {
		if err := writeFloat3Key(w, k); err != nil {
			return err
		}
	}
	for _, k := range a.Rotations {
		if err := writeRotationKey(w, k); err != nil {
			return err
		}
	}
	for _, k := range a.Scales {
		if err := writeFloat3Key(w, k); err != nil {
			return err
		}
	}
	return nil
}

func writeFloat3Key(w io.Writer, k anim.Float3Key) error {
	if err := writeF32(w, k.Ratio); err != nil {
		return err
	}
	if err := writeU16(w, k.Track); err != nil {
		return err
	}
	for _, v := range k.Value {
		if err := writeU16(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeRotationKey(w io.Writer, k anim.RotationKey) error {
	if err := writeF32(w, k.Ratio); err != nil {
		return err
	}
	if err := writeU16(w, k.Track); err != nil {
		return err
	}
	if _, err := w.Write([]byte{k.Largest, k.Sign}); err != nil {
		return err
	}
	for _, v := range k.Value {
		if err := writeU16(w, uint16(v)); err != nil {
			return err
		}
	}
	return nil
}

// WriteRawAnimation serializes a as a §6 RawAnimation asset.
func WriteRawAnimation(w io.Writer, a *rawanim.RawAnimation, name string) error {
	if err := writeHeader(w, rawAnimationTag, rawAnimationVersion); err != nil {
		return err
	}
	if err := writeF32(w, a.Duration); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(a.Tracks))); err != nil {
		return err
	}
	if err := writeU32(w, trackVersion); err != nil {
		return err
	}
	for _, tr := range a.Tracks {
		if err := writeVectorKeys(w, tr.Translations); err != nil {
			return err
		}
		if err := writeQuatKeys(w, tr.Rotations); err != nil {
			return err
		}
		if err := writeVectorKeys(w, tr.Scales); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(name))); err != nil {
		return err
	}
	_, err := io.WriteString(w, name)
	return err
}

func writeVectorKeys(w io.Writer, keys []rawanim.VectorKey) error {
	if err := writeU32(w, uint32(len(keys))); err != nil {
		return err
	}
	if err := writeU32(w, keyVersion); err != nil {
		return err
	}
	for _, k := range keys {
		if err := writeF32(w, k.Time); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, k.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeQuatKeys(w io.Writer, keys []rawanim.QuatKey) error {
	if err := writeU32(w, uint32(len(keys))); err != nil {
		return err
	}
	if err := writeU32(w, keyVersion); err != nil {
		return err
	}
	for _, k := range keys {
		if err := writeF32(w, k.Time); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, k.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteMeshes serializes one or more meshes as a single §6 Mesh asset
// file (meshes packed back-to-back).
func WriteMeshes(w io.Writer, meshes []*meshpkg.Mesh) error {
	if err := writeHeader(w, meshTag, meshVersion); err != nil {
		return err
	}
	for _, m := range meshes {
		if err := writeOneMesh(w, m); err != nil {
			return err
		}
	}
	return nil
}

func writeOneMesh(w io.Writer, m *meshpkg.Mesh) error {
	if err := writeU32(w, uint32(len(m.Parts))); err != nil {
		return err
	}
	if err := writeU32(w, meshPartVersion); err != nil {
		return err
	}
	for _, p := range m.Parts {
		if err := writePart(w, p); err != nil {
			return err
		}
	}
	if err := writeU32Array(w, m.TriangleIndices); err != nil {
		return err
	}
	if err := writeU16Array(w, m.JointRemaps); err != nil {
		return err
	}
	return writeMat4Array(w, m.InverseBindPoses)
}

func writePart(w io.Writer, p meshpkg.Part) error {
	if err := writeVec3Array(w, p.Positions); err != nil {
		return err
	}
	if err := writeVec3Array(w, p.Normals); err != nil {
		return err
	}
	if err := writeVec3Array(w, p.Tangents); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(p.UVs))); err != nil {
		return err
	}
	for _, uv := range p.UVs {
		if err := binary.Write(w, binary.LittleEndian, uv); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(p.Colors))); err != nil {
		return err
	}
	for _, c := range p.Colors {
		if err := binary.Write(w, binary.LittleEndian, c); err != nil {
			return err
		}
	}
	if err := writeU16Array(w, p.JointIndices); err != nil {
		return err
	}
	return writeF32Array(w, p.JointWeights)
}

func writeVec3Array(w io.Writer, vs []mathkernel.Vec3) error {
	if err := writeU32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func writeU16Array(w io.Writer, vs []uint16) error {
	if err := writeU32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := writeU16(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeU32Array(w io.Writer, vs []uint32) error {
	if err := writeU32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeF32Array(w io.Writer, vs []float32) error {
	if err := writeU32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := writeF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeMat4Array(w io.Writer, vs []mathkernel.Mat4) error {
	if err := writeU32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}
