package export

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/spriteforge/pkg/math"
)

// Camera distance as a multiple of the subject extent. Far enough that the
// whole subject sits inside the depth range at every angle.
const cameraDistanceFactor = 2.5

// Plan is the fixed camera for one export job: a view transform and an
// orthographic projection that keep the full animated bounds in frame. It
// is computed once and never re-derived mid-export, so the framing cannot
// jitter between frames.
type Plan struct {
	View       math.Mat4
	Projection math.Mat4

	Eye    math.Vec3
	Target math.Vec3

	// OrthoScale is the world-space span mapped onto the frame's shorter
	// pixel dimension.
	OrthoScale float32

	Mirror bool
}

// viewDirection maps an angle to its fixed view direction.
func viewDirection(angle Angle, custom math.Vec3) (math.Vec3, error) {
	switch angle {
	case AngleFront:
		return math.Vec3{X: 0, Y: -1, Z: 0}, nil
	case AngleIsometric:
		return math.Vec3{X: 1, Y: -1, Z: 1}.Normalize(), nil
	case AngleSide:
		return math.Vec3{X: -1, Y: 0, Z: 0}, nil
	case AngleCustom:
		if custom.IsZero() {
			return math.Vec3{}, fmt.Errorf("%w: custom direction is zero", ErrInvalidCameraAngle)
		}
		return custom.Normalize(), nil
	default:
		return math.Vec3{}, fmt.Errorf("%w: %q", ErrInvalidCameraAngle, angle)
	}
}

// PlanCamera computes the single camera used for every frame of the job.
// It unions the sampled bounds, places an orthographic camera on the
// configured angle and scales the projection so the padded subject extent
// exactly fills the frame's shorter dimension, preserving aspect ratio.
//
// Pure function of its inputs: the same samples and job always yield the
// same Plan.
func PlanCamera(job Job, samples []Sample) (Plan, error) {
	if job.Padding < 0 || job.Padding > 1 {
		return Plan{}, fmt.Errorf("%w: %v not in [0, 1]", ErrInvalidPadding, job.Padding)
	}
	dir, err := viewDirection(job.Angle, job.CustomDir)
	if err != nil {
		return Plan{}, err
	}
	if len(samples) == 0 {
		return Plan{}, fmt.Errorf("%w: no samples", ErrNoAnimationData)
	}

	union := math.EmptyBox3()
	for _, s := range samples {
		union = union.Union(s.Bounds)
	}
	if union.IsDegenerate() {
		return Plan{}, fmt.Errorf("%w: union box has zero volume", ErrDegenerateBounds)
	}

	center := union.Center()
	distance := union.MaxExtent() * cameraDistanceFactor
	eye := center.Sub(dir.Scale(distance))

	up := math.Vec3{X: 0, Y: 0, Z: 1}
	if d := dir.Dot(up); d > 0.999 || d < -0.999 {
		// Looking straight up or down the world Z axis.
		up = math.Vec3{X: 0, Y: 1, Z: 0}
	}
	view := math.LookAt(eye, center, up)

	// Project the union box corners into view space and span the two
	// visible axes. The larger span, padded, becomes the ortho scale for
	// the shorter frame dimension.
	inf := float32(gomath.Inf(1))
	spanMin := math.Vec2{X: inf, Y: inf}
	spanMax := math.Vec2{X: -inf, Y: -inf}
	for _, c := range union.Corners() {
		p := view.TransformPoint(c)
		if p.X < spanMin.X {
			spanMin.X = p.X
		}
		if p.Y < spanMin.Y {
			spanMin.Y = p.Y
		}
		if p.X > spanMax.X {
			spanMax.X = p.X
		}
		if p.Y > spanMax.Y {
			spanMax.Y = p.Y
		}
	}
	extent := spanMax.Sub(spanMin).MaxComponent()
	// A union box flat along the view axis projects to nothing; an ortho
	// volume with zero width would divide by zero.
	if extent <= 0 {
		return Plan{}, fmt.Errorf("%w: subject has no visible extent from angle %q", ErrDegenerateBounds, job.Angle)
	}
	scale := extent * (1 + job.Padding)

	// Aspect-correct ortho volume: the shorter dimension shows exactly
	// scale world units, the longer proportionally more. No per-axis
	// stretch.
	w, h := float32(job.FrameWidth), float32(job.FrameHeight)
	orthoW, orthoH := scale, scale
	if w >= h {
		orthoW = scale * w / h
	} else {
		orthoH = scale * h / w
	}

	near := distance * 0.01
	far := distance * 4
	proj := math.Ortho(-orthoW/2, orthoW/2, -orthoH/2, orthoH/2, near, far)

	return Plan{
		View:       view,
		Projection: proj,
		Eye:        eye,
		Target:     center,
		OrthoScale: scale,
		Mirror:     job.Mirror,
	}, nil
}
