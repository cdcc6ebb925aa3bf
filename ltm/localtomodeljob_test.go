package ltm

import (
	"testing"

	"github.com/lumenforge/skelcore/mathkernel"
	"github.com/lumenforge/skelcore/skeleton"
)

func approxEqf(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// chain3 builds a 3-joint chain: root -> mid -> tip, each translated by
// (1,0,0) relative to its parent.
func chain3(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	b := skeleton.NewBuilder()
	b.AddJoint("root", -1, mathkernel.IdentityTRS())
	b.AddJoint("mid", 0, mathkernel.TRS{Translation: mathkernel.Vec3{X: 1}, Rotation: mathkernel.QuatIdentity(), Scale: mathkernel.Vec3{X: 1, Y: 1, Z: 1}})
	b.AddJoint("tip", 1, mathkernel.TRS{Translation: mathkernel.Vec3{X: 1}, Rotation: mathkernel.QuatIdentity(), Scale: mathkernel.Vec3{X: 1, Y: 1, Z: 1}})
	sk, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return sk
}

func identityTRSInput(n int) []mathkernel.TRS {
	out := make([]mathkernel.TRS, n)
	for i := range out {
		out[i] = mathkernel.IdentityTRS()
		out[i].Translation = mathkernel.Vec3{X: 1}
	}
	return out
}

func TestLocalToModelChainAccumulatesTranslation(t *testing.T) {
	sk := chain3(t)
	input := identityTRSInput(3)
	output := make([]mathkernel.Mat4, 3)
	job := &LocalToModelJob{Skeleton: sk, Input: input, Output: output, From: -1, To: -1}
	if !job.Run() {
		t.Fatalf("Run() = false")
	}
	p := output[2].TransformPoint(mathkernel.Vec3{})
	if !approxEqf(p.X, 3, 1e-5) {
		t.Errorf("tip model position X = %v, want 3", p.X)
	}
}

func TestLocalToModelWithRoot(t *testing.T) {
	sk := chain3(t)
	input := identityTRSInput(3)
	output := make([]mathkernel.Mat4, 3)
	root := mathkernel.Compose(mathkernel.Vec3{X: 1, Y: 1, Z: 1}, mathkernel.QuatIdentity(), mathkernel.Vec3{X: 10})
	job := &LocalToModelJob{Skeleton: sk, Root: &root, Input: input, Output: output, From: -1, To: -1}
	if !job.Run() {
		t.Fatalf("Run() = false")
	}
	p := output[0].TransformPoint(mathkernel.Vec3{})
	if !approxEqf(p.X, 11, 1e-5) {
		t.Errorf("root joint model position X = %v, want 11", p.X)
	}
}

func TestLocalToModelSubHierarchyFromExcluded(t *testing.T) {
	sk := chain3(t)
	input := identityTRSInput(3)
	output := make([]mathkernel.Mat4, 3)

	full := &LocalToModelJob{Skeleton: sk, Input: input, Output: output, From: -1, To: -1}
	full.Run()
	before := output[1]

	// move the tip's local input, recompute only from "mid" onward, excluding "mid" itself.
	input[2].Translation.X = 5
	job := &LocalToModelJob{Skeleton: sk, Input: input, Output: output, From: 1, To: -1, FromExcluded: true}
	if !job.Run() {
		t.Fatalf("Run() = false")
	}
	if output[1] != before {
		t.Errorf("excluded sub-root output was overwritten: got %v, want %v", output[1], before)
	}
	p := output[2].TransformPoint(mathkernel.Vec3{})
	if !approxEqf(p.X, 7, 1e-5) {
		t.Errorf("tip model position X after partial update = %v, want 7", p.X)
	}
}

func TestValidateRejectsMissingSkeleton(t *testing.T) {
	job := &LocalToModelJob{Input: make([]mathkernel.TRS, 1), Output: make([]mathkernel.Mat4, 1)}
	if job.Validate() {
		t.Errorf("expected Validate() = false with nil Skeleton")
	}
}

func TestValidateRejectsUndersizedBuffers(t *testing.T) {
	sk := chain3(t)
	job := &LocalToModelJob{Skeleton: sk, Input: make([]mathkernel.TRS, 1), Output: make([]mathkernel.Mat4, 3)}
	if job.Validate() {
		t.Errorf("expected Validate() = false with undersized Input")
	}
}

func TestAttachTo(t *testing.T) {
	sk := chain3(t)
	input := identityTRSInput(3)
	output := make([]mathkernel.Mat4, 3)
	job := &LocalToModelJob{Skeleton: sk, Input: input, Output: output, From: -1, To: -1}
	job.Run()

	local := mathkernel.Compose(mathkernel.Vec3{X: 1, Y: 1, Z: 1}, mathkernel.QuatIdentity(), mathkernel.Vec3{X: 1})
	attached := AttachTo(output, 2, local)
	p := attached.TransformPoint(mathkernel.Vec3{})
	if !approxEqf(p.X, 4, 1e-5) {
		t.Errorf("attached position X = %v, want 4", p.X)
	}
}
