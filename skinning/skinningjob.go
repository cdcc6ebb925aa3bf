// Package skinning implements SkinningJob (§4.5): linear-blend vertex
// skinning over strided input/output buffers, driven once per mesh part
// by the caller.
package skinning

import "github.com/lumenforge/skelcore/mathkernel"

// SkinningJob skins VertexCount vertices, each influenced by
// InfluencesCount joints from the JointMatrices palette.
//
// JointIndices and JointWeights are strided: JointIndices has
// VertexCount*InfluencesCount entries and JointWeights has
// VertexCount*(InfluencesCount-1), because the last influence's weight is
// never stored; it is reconstructed as 1 minus the sum of the others. With
// InfluencesCount == 1 (a single, implicit full-weight influence) no
// weight buffer is needed at all.
//
// InPositions is mandatory; InNormals and InTangents are optional
// (InTangents requires InNormals). Output buffers mirror whichever
// inputs are present.
type SkinningJob struct {
	VertexCount      int
	InfluencesCount  int
	JointMatrices    []mathkernel.Mat4
	JointIndices     []uint16
	JointWeights     []float32
	InPositions      []mathkernel.Vec3
	InNormals        []mathkernel.Vec3
	InTangents       []mathkernel.Vec3
	OutPositions     []mathkernel.Vec3
	OutNormals       []mathkernel.Vec3
	OutTangents      []mathkernel.Vec3
}

// Validate reports whether Run can proceed: influences_count >= 1,
// positions present and sized for VertexCount, joint indices sized for
// VertexCount*InfluencesCount, joint weights present and correctly sized
// unless InfluencesCount == 1, tangents only paired with normals, and
// every optional channel's output buffer sized to match its input.
func (j *SkinningJob) Validate() bool {
	if j.VertexCount < 0 || j.InfluencesCount < 1 {
		return false
	}
	n := j.VertexCount
	stride := j.InfluencesCount

	if len(j.InPositions) < n || len(j.OutPositions) < n {
		return false
	}
	if len(j.JointIndices) < n*stride {
		return false
	}
	if stride > 1 && len(j.JointWeights) < n*(stride-1) {
		return false
	}
	if j.InTangents != nil && j.InNormals == nil {
		return false
	}
	if j.InNormals != nil && len(j.InNormals) < n {
		return false
	}
	if j.InNormals != nil && len(j.OutNormals) < n {
		return false
	}
	if j.InTangents != nil && (len(j.InTangents) < n || len(j.OutTangents) < n) {
		return false
	}
	for _, idx := range j.JointIndices[:n*stride] {
		if int(idx) >= len(j.JointMatrices) {
			return false
		}
	}
	return true
}

// Run validates and, on success, skins every vertex. Returns false
// (writing nothing) if Validate fails.
func (j *SkinningJob) Run() bool {
	if !j.Validate() {
		return false
	}
	stride := j.InfluencesCount
	hasNormals := j.InNormals != nil
	hasTangents := j.InTangents != nil

	for v := 0; v < j.VertexCount; v++ {
		var p, n, tg mathkernel.Vec3
		var weightSum float32

		for k := 0; k < stride; k++ {
			idx := j.JointIndices[v*stride+k]
			m := j.JointMatrices[idx]

			var w float32
			if stride == 1 {
				w = 1
			} else if k == stride-1 {
				w = 1 - weightSum
			} else {
				w = j.JointWeights[v*(stride-1)+k]
				weightSum += w
			}

			p = p.Add(m.TransformPoint(j.InPositions[v]).Scale(w))
			if hasNormals {
				n = n.Add(m.TransformDirection(j.InNormals[v]).Scale(w))
			}
			if hasTangents {
				tg = tg.Add(m.TransformDirection(j.InTangents[v]).Scale(w))
			}
		}

		j.OutPositions[v] = p
		if hasNormals {
			j.OutNormals[v] = n
		}
		if hasTangents {
			j.OutTangents[v] = tg
		}
	}
	return true
}
