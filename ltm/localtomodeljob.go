// Package ltm implements LocalToModelJob (§4.4): a single forward sweep
// that composes per-joint local TRS transforms into model-space
// matrices, exploiting the skeleton's depth-first layout guarantee that
// parent[i] < i.
package ltm

import (
	"github.com/lumenforge/skelcore/mathkernel"
	"github.com/lumenforge/skelcore/skeleton"
)

// LocalToModelJob composes Input (local TRS per joint) into Output
// (model-space matrices per joint), optionally restricted to a range
// starting at From.
type LocalToModelJob struct {
	Skeleton *skeleton.Skeleton
	Root     *mathkernel.Mat4 // nil means identity
	Input    []mathkernel.TRS
	Output   []mathkernel.Mat4

	// From restricts the sweep to joint From (inclusive unless
	// FromExcluded) and the later joints whose parent index is at least
	// From; in a branching skeleton that can include joints outside From's
	// own sub-tree. A negative value means "from the skeleton root", i.e.
	// no restriction. The zero value 0 is not negative: it starts at joint
	// 0 and skips any later root.
	From         int
	To           int // joints with index > To are skipped when To >= 0; negative means no upper bound
	FromExcluded bool
}

// Validate reports whether Run can proceed: Skeleton must be set and
// Input/Output must each cover every joint.
func (j *LocalToModelJob) Validate() bool {
	if j.Skeleton == nil {
		return false
	}
	n := j.Skeleton.NumJoints()
	return len(j.Input) >= n && len(j.Output) >= n
}

// Run validates and, on success, sweeps joints 0..NumJoints in order,
// composing each into output[parent == -1 ? root : output[parent]].
// Returns false (writing nothing) if Validate fails.
func (j *LocalToModelJob) Run() bool {
	if !j.Validate() {
		return false
	}
	root := mathkernel.Identity()
	if j.Root != nil {
		root = *j.Root
	}
	n := j.Skeleton.NumJoints()
	from := j.From
	if from < 0 {
		from = 0
	}
	to := j.To
	if to < 0 || to >= n {
		to = n - 1
	}

	for i := from; i <= to; i++ {
		parent := j.Skeleton.Parent(i)
		if i == from {
			// the sub-hierarchy root's own parent lies outside [from, to]
			// by construction; FromExcluded means leave output[from] as the
			// caller already has it (e.g. from a prior full sweep) and only
			// recompute its descendants.
			if j.FromExcluded {
				continue
			}
		} else if int(parent) < from {
			continue // parent outside the requested sub-tree: not a descendant of `from`
		}

		trs := j.Input[i]
		local := mathkernel.Compose(trs.Scale, trs.Rotation, trs.Translation)
		var parentMat mathkernel.Mat4
		if parent == -1 {
			parentMat = root
		} else {
			parentMat = j.Output[parent]
		}
		j.Output[i] = local.Mul(parentMat)
	}
	return true
}

// AttachTo composes a single local transform onto an already-computed
// model-space joint matrix, for attaching a prop or a secondary object
// to a skeleton without running a full LocalToModelJob.
func AttachTo(output []mathkernel.Mat4, joint int, local mathkernel.Mat4) mathkernel.Mat4 {
	return local.Mul(output[joint])
}
