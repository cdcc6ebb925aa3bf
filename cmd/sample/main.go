// Command sample is a headless driver that runs one frame of the
// Sample → LocalToModel pipeline end to end, reproducing the rotating-
// child scenario used to validate the runtime: a two-joint skeleton
// (root at the origin, child offset by (1,0,0)) whose child rotates 90°
// about +Z over one second, sampled halfway through.
package main

import (
	"log"
	"math"

	"github.com/lumenforge/skelcore/ltm"
	"github.com/lumenforge/skelcore/mathkernel"
	"github.com/lumenforge/skelcore/rawanim"
	"github.com/lumenforge/skelcore/skeleton"
)

func rotZ(angle float64) mathkernel.Quat {
	return mathkernel.Quat{Z: float32(math.Sin(angle / 2)), W: float32(math.Cos(angle / 2))}
}

func main() {
	b := skeleton.NewBuilder()
	if _, err := b.AddJoint("root", -1, mathkernel.IdentityTRS()); err != nil {
		log.Fatalf("add root joint: %v", err)
	}
	childRest := mathkernel.IdentityTRS()
	childRest.Translation = mathkernel.Vec3{X: 1}
	if _, err := b.AddJoint("child", 0, childRest); err != nil {
		log.Fatalf("add child joint: %v", err)
	}
	sk, err := b.Build()
	if err != nil {
		log.Fatalf("build skeleton: %v", err)
	}

	anim := &rawanim.RawAnimation{
		Duration: 1,
		Tracks: []rawanim.Track{
			{}, // root: static
			{
				Rotations: []rawanim.QuatKey{
					{Time: 0, Value: rotZ(0)},
					{Time: 1, Value: rotZ(math.Pi / 2)},
				},
			},
		},
	}
	if err := anim.Validate(); err != nil {
		log.Fatalf("invalid animation: %v", err)
	}

	localPose := make([]mathkernel.TRS, sk.NumJoints())
	samplingJob := &rawanim.RawSamplingJob{Animation: anim, Ratio: 0.5, Output: localPose}
	if !samplingJob.Run() {
		log.Fatalf("sampling job failed validation")
	}

	modelPose := make([]mathkernel.Mat4, sk.NumJoints())
	ltmJob := &ltm.LocalToModelJob{Skeleton: sk, Input: localPose, Output: modelPose, From: -1, To: -1}
	if !ltmJob.Run() {
		log.Fatalf("local-to-model job failed validation")
	}

	childPos := modelPose[1].TransformPoint(mathkernel.Vec3{X: 1})
	log.Printf("root model position:  %+v", modelPose[0].TransformPoint(mathkernel.Vec3{}))
	log.Printf("child model position: %+v (want approx (%.4f, %.4f, 0))", childPos, math.Cos(math.Pi/4), math.Sin(math.Pi/4))
}
