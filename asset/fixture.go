package asset

import (
	"fmt"
	"io"

	"github.com/lumenforge/skelcore/mathkernel"
	"github.com/lumenforge/skelcore/skeleton"
	"gopkg.in/yaml.v3"
)

// SkeletonFixture is a human-authorable front door for small test/sample
// skeletons, distinct from the binary tagged format above: a flat YAML
// joint list where each joint names its parent by index. Grounded on the
// rest of the retrieval pack's text-fixture loaders (e.g. gazed-vu's
// `load` package, which accepts both a binary model format and a plain
// text one) rather than on anything in the teacher, which has no
// equivalent front door of its own.
type SkeletonFixture struct {
	Joints []JointFixture `yaml:"joints"`
}

// JointFixture is one entry of a SkeletonFixture. Parent is -1 for a
// root joint. Translation/Rotation/Scale default to the identity TRS
// when omitted, so a fixture author can leave a joint's rest pose
// unspecified.
type JointFixture struct {
	Name        string     `yaml:"name"`
	Parent      int        `yaml:"parent"`
	Translation [3]float32 `yaml:"translation,omitempty"`
	Rotation    [4]float32 `yaml:"rotation,omitempty"`
	Scale       [3]float32 `yaml:"scale,omitempty"`
}

// LoadSkeletonFixture decodes a YAML skeleton description and builds a
// skeleton.Skeleton from it via skeleton.Builder, in joint-list order
// (so a fixture's parent indices must already satisfy parent < child,
// the same ordering invariant the binary loader's recursive joint
// records produce implicitly).
func LoadSkeletonFixture(r io.Reader) (*skeleton.Skeleton, error) {
	var fx SkeletonFixture
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&fx); err != nil {
		return nil, &AssetFormatError{Op: "LoadSkeletonFixture", Err: fmt.Errorf("decode yaml: %w", err)}
	}

	b := skeleton.NewBuilder()
	for _, j := range fx.Joints {
		rest := mathkernel.TRS{
			Translation: mathkernel.Vec3{X: j.Translation[0], Y: j.Translation[1], Z: j.Translation[2]},
			Rotation:    mathkernel.Quat{X: j.Rotation[0], Y: j.Rotation[1], Z: j.Rotation[2], W: j.Rotation[3]},
			Scale:       mathkernel.Vec3{X: j.Scale[0], Y: j.Scale[1], Z: j.Scale[2]},
		}
		if rest.Rotation == (mathkernel.Quat{}) {
			rest.Rotation = mathkernel.QuatIdentity()
		}
		if rest.Scale == (mathkernel.Vec3{}) {
			rest.Scale = mathkernel.Vec3{X: 1, Y: 1, Z: 1}
		}
		if _, err := b.AddJoint(j.Name, int16(j.Parent), rest); err != nil {
			return nil, &AssetFormatError{Op: "LoadSkeletonFixture", Err: err}
		}
	}
	sk, err := b.Build()
	if err != nil {
		return nil, &AssetFormatError{Op: "LoadSkeletonFixture", Err: err}
	}
	return sk, nil
}

// WriteSkeletonFixture encodes sk back into the YAML fixture form, for
// round-tripping in tests and for dumping a binary asset into an
// editable shape.
func WriteSkeletonFixture(w io.Writer, sk *skeleton.Skeleton) error {
	fx := SkeletonFixture{Joints: make([]JointFixture, sk.NumJoints())}
	for i := 0; i < sk.NumJoints(); i++ {
		rest := sk.Rest(i)
		fx.Joints[i] = JointFixture{
			Name:        sk.Name(i),
			Parent:      int(sk.Parent(i)),
			Translation: [3]float32{rest.Translation.X, rest.Translation.Y, rest.Translation.Z},
			Rotation:    [4]float32{rest.Rotation.X, rest.Rotation.Y, rest.Rotation.Z, rest.Rotation.W},
			Scale:       [3]float32{rest.Scale.X, rest.Scale.Y, rest.Scale.Z},
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(&fx); err != nil {
		return &AssetFormatError{Op: "WriteSkeletonFixture", Err: err}
	}
	return nil
}
