package asset

import (
	"bytes"
	"math"
	"testing"

	anim "github.com/lumenforge/skelcore/animation"
	"github.com/lumenforge/skelcore/mathkernel"
	meshpkg "github.com/lumenforge/skelcore/mesh"
	"github.com/lumenforge/skelcore/rawanim"
	"github.com/lumenforge/skelcore/skeleton"
)

func approxEqf(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func buildSampleSkeleton(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	b := skeleton.NewBuilder()
	b.AddJoint("root", -1, mathkernel.IdentityTRS())
	child := mathkernel.IdentityTRS()
	child.Translation = mathkernel.Vec3{X: 1, Y: 2, Z: 3}
	b.AddJoint("child", 0, child)
	sk, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return sk
}

func TestSkeletonRoundTrip(t *testing.T) {
	sk := buildSampleSkeleton(t)
	var buf bytes.Buffer
	if err := WriteSkeleton(&buf, sk); err != nil {
		t.Fatalf("WriteSkeleton: %v", err)
	}
	got, err := LoadSkeleton(&buf)
	if err != nil {
		t.Fatalf("LoadSkeleton: %v", err)
	}
	if got.NumJoints() != sk.NumJoints() {
		t.Fatalf("NumJoints = %d, want %d", got.NumJoints(), sk.NumJoints())
	}
	for i := 0; i < sk.NumJoints(); i++ {
		if got.Name(i) != sk.Name(i) {
			t.Errorf("joint %d name = %q, want %q", i, got.Name(i), sk.Name(i))
		}
		if got.Parent(i) != sk.Parent(i) {
			t.Errorf("joint %d parent = %d, want %d", i, got.Parent(i), sk.Parent(i))
		}
		if got.Rest(i).Translation != sk.Rest(i).Translation {
			t.Errorf("joint %d rest translation = %v, want %v", i, got.Rest(i).Translation, sk.Rest(i).Translation)
		}
	}
}

func TestSkeletonLoadRejectsWrongTag(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(hostEndiannessByte)
	buf.WriteString("not-a-skeleton\x00")
	if _, err := LoadSkeleton(&buf); err == nil {
		t.Errorf("expected error for wrong tag")
	}
}

func TestAnimationRoundTrip(t *testing.T) {
	q := mathkernel.Quat{Z: float32(math.Sin(math.Pi / 8)), W: float32(math.Cos(math.Pi / 8))}
	rot := []anim.RotationKey{
		anim.EncodeRotationKey(0, 0, mathkernel.QuatIdentity()),
		anim.EncodeRotationKey(0, 0, mathkernel.QuatIdentity()),
		anim.EncodeRotationKey(0, 1, q),
	}
	a := anim.NewAnimation(2, 1, nil, rot, nil)

	var buf bytes.Buffer
	if err := WriteAnimation(&buf, a, "walk"); err != nil {
		t.Fatalf("WriteAnimation: %v", err)
	}
	got, err := LoadAnimation(&buf)
	if err != nil {
		t.Fatalf("LoadAnimation: %v", err)
	}
	if got.Duration != a.Duration || got.NumTracks() != a.NumTracks() {
		t.Fatalf("Duration/NumTracks mismatch: got %v/%d, want %v/%d", got.Duration, got.NumTracks(), a.Duration, a.NumTracks())
	}
	if len(got.Rotations) != len(a.Rotations) {
		t.Fatalf("len(Rotations) = %d, want %d", len(got.Rotations), len(a.Rotations))
	}
	gotQ := got.Rotations[2].Decode()
	if !approxEqf(gotQ.Z, q.Z, 1e-3) || !approxEqf(gotQ.W, q.W, 1e-3) {
		t.Errorf("decoded rotation = %+v, want %+v", gotQ, q)
	}
}

func TestRawAnimationRoundTrip(t *testing.T) {
	a := &rawanim.RawAnimation{
		Duration: 1.5,
		Tracks: []rawanim.Track{
			{
				Translations: []rawanim.VectorKey{
					{Time: 0, Value: mathkernel.Vec3{X: 1}},
					{Time: 1.5, Value: mathkernel.Vec3{X: 2}},
				},
				Rotations: []rawanim.QuatKey{
					{Time: 0, Value: mathkernel.QuatIdentity()},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := WriteRawAnimation(&buf, a, "jump"); err != nil {
		t.Fatalf("WriteRawAnimation: %v", err)
	}
	got, err := LoadRawAnimation(&buf)
	if err != nil {
		t.Fatalf("LoadRawAnimation: %v", err)
	}
	if got.Duration != a.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, a.Duration)
	}
	if len(got.Tracks) != 1 || len(got.Tracks[0].Translations) != 2 {
		t.Fatalf("tracks mismatch: %+v", got.Tracks)
	}
	if got.Tracks[0].Translations[1].Value.X != 2 {
		t.Errorf("translation[1].X = %v, want 2", got.Tracks[0].Translations[1].Value.X)
	}
}

func TestMeshRoundTrip(t *testing.T) {
	m := &meshpkg.Mesh{
		Parts: []meshpkg.Part{
			{
				Positions:       []mathkernel.Vec3{{X: 0}, {X: 1}},
				InfluencesCount: 1,
				JointIndices:    []uint16{0, 0},
			},
		},
		TriangleIndices:  []uint32{0, 1, 0},
		JointRemaps:      []uint16{0},
		InverseBindPoses: []mathkernel.Mat4{mathkernel.Identity()},
	}
	var buf bytes.Buffer
	if err := WriteMeshes(&buf, []*meshpkg.Mesh{m}); err != nil {
		t.Fatalf("WriteMeshes: %v", err)
	}
	got, err := LoadMeshes(&buf)
	if err != nil {
		t.Fatalf("LoadMeshes: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(meshes) = %d, want 1", len(got))
	}
	if len(got[0].Parts) != 1 || got[0].Parts[0].VertexCount() != 2 {
		t.Fatalf("unexpected part shape: %+v", got[0].Parts)
	}
	if got[0].Parts[0].InfluencesCount != 1 {
		t.Errorf("InfluencesCount = %d, want 1", got[0].Parts[0].InfluencesCount)
	}
	if len(got[0].TriangleIndices) != 3 {
		t.Errorf("len(TriangleIndices) = %d, want 3", len(got[0].TriangleIndices))
	}
}
