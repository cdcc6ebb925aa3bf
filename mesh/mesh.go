// Package mesh holds the renderable mesh representation (§6): one or
// more Parts (each a set of planar vertex-attribute arrays plus skinning
// influences), shared top-level triangle indices, joint remapping, and
// inverse bind poses.
package mesh

import "github.com/lumenforge/skelcore/mathkernel"

// UV is a single 2D texture coordinate.
type UV struct{ U, V float32 }

// Color is a single RGBA vertex color.
type Color struct{ R, G, B, A float32 }

// Part is one draw-call's worth of planar vertex attributes. Normals,
// Tangents, UVs and Colors are optional (nil when the part has none);
// JointIndices/JointWeights follow the same strided, last-weight-omitted
// convention as skinning.SkinningJob.
type Part struct {
	Positions       []mathkernel.Vec3
	Normals         []mathkernel.Vec3
	Tangents        []mathkernel.Vec3
	UVs             []UV
	Colors          []Color
	InfluencesCount int
	JointIndices    []uint16
	JointWeights    []float32
}

// VertexCount returns the number of vertices in the part, derived from
// Positions (the one mandatory attribute).
func (p *Part) VertexCount() int {
	return len(p.Positions)
}

// Mesh is a full mesh asset (§6 tag "ozz-sample-Mesh"): one or more
// Parts sharing a single joint remap table and inverse bind pose set.
type Mesh struct {
	Parts             []Part
	TriangleIndices   []uint32
	JointRemaps       []uint16
	InverseBindPoses  []mathkernel.Mat4
}

// NumParts returns the number of draw-call parts in the mesh.
func (m *Mesh) NumParts() int {
	return len(m.Parts)
}

// SkinningPalette builds the per-draw joint matrix palette for this mesh
// from a skeleton's model-space matrices (the LocalToModelJob output):
// palette[k] = InverseBindPoses[k] · modelSpace[JointRemaps[k]], as
// required by SkinningJob's JointMatrices input (§4.5).
func (m *Mesh) SkinningPalette(modelSpace []mathkernel.Mat4) []mathkernel.Mat4 {
	palette := make([]mathkernel.Mat4, len(m.JointRemaps))
	for k, joint := range m.JointRemaps {
		palette[k] = m.InverseBindPoses[k].Mul(modelSpace[joint])
	}
	return palette
}
