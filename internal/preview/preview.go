// Package preview provides a self-contained software backend implementing
// the scene interfaces: a procedural hopping-ball animation and an
// orthographic silhouette rasterizer. It lets the exporter run end to end
// without a 3D host, and gives tests a deterministic pixel source.
package preview

import (
	"image"
	gomath "math"

	"github.com/Faultbox/spriteforge/pkg/math"
)

// Scene is a minimal animated scene: a ball of radius 1 hopping along the
// world Z axis. It implements both scene.Animator and scene.Renderer.
type Scene struct {
	time   int
	length int

	view math.Mat4
	proj math.Mat4
}

// NewScene creates a scene whose hop cycle spans length animation frames.
func NewScene(length int) *Scene {
	if length < 1 {
		length = 1
	}
	return &Scene{length: length}
}

// Time returns the current animation frame.
func (s *Scene) Time() int { return s.time }

// SetTime advances the animation to the given frame.
func (s *Scene) SetTime(frame int) { s.time = frame }

// body returns the ball's world-space center and radius at the current time.
func (s *Scene) body() (math.Vec3, float32) {
	t := float64(s.time) / float64(s.length)
	hop := float32(gomath.Abs(gomath.Sin(t * 2 * gomath.Pi)))
	return math.Vec3{X: 0, Y: 0, Z: 1 + hop*1.5}, 1
}

// WorldBounds returns the AABB around the ball.
func (s *Scene) WorldBounds() (math.Box3, bool) {
	c, r := s.body()
	pad := math.Vec3{X: r, Y: r, Z: r}
	return math.NewBox3(c.Sub(pad), c.Add(pad)), true
}

// SetCamera installs the view and projection for subsequent renders.
func (s *Scene) SetCamera(view, projection math.Mat4) {
	s.view = view
	s.proj = projection
}

// StashCamera snapshots the current camera and returns its restore
// function, so export jobs leave the preview camera untouched.
func (s *Scene) StashCamera() (restore func()) {
	view, proj := s.view, s.proj
	return func() {
		s.view = view
		s.proj = proj
	}
}

// Render rasterizes the ball as a filled circle on a transparent
// background, with an off-center eye dot so orientation (and mirroring) is
// visible in the output.
func (s *Scene) Render(width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	center, radius := s.body()
	vp := s.proj.Mul(s.view)

	cx, cy := ndcToPixel(vp.TransformPoint(center), width, height)

	// The pixel radius is the largest projected displacement of a
	// radius-length offset along each world axis.
	pr := float32(0)
	for _, off := range []math.Vec3{{X: radius}, {Y: radius}, {Z: radius}} {
		ox, oy := ndcToPixel(vp.TransformPoint(center.Add(off)), width, height)
		d := math.Vec2{X: ox - cx, Y: oy - cy}.Length()
		if d > pr {
			pr = d
		}
	}
	if pr <= 0 {
		return img, nil
	}

	ex := cx + pr*0.45
	ey := cy - pr*0.3
	er := pr * 0.15

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float32(x) + 0.5 - cx
			dy := float32(y) + 0.5 - cy
			if dx*dx+dy*dy > pr*pr {
				continue
			}
			i := img.PixOffset(x, y)
			edx := float32(x) + 0.5 - ex
			edy := float32(y) + 0.5 - ey
			if edx*edx+edy*edy <= er*er {
				img.Pix[i+0] = 30
				img.Pix[i+1] = 30
				img.Pix[i+2] = 40
			} else {
				img.Pix[i+0] = 96
				img.Pix[i+1] = 160
				img.Pix[i+2] = 220
			}
			img.Pix[i+3] = 255
		}
	}
	return img, nil
}

// ndcToPixel maps normalized device coordinates to pixel coordinates with Y
// down.
func ndcToPixel(p math.Vec3, width, height int) (float32, float32) {
	x := (p.X + 1) / 2 * float32(width)
	y := (1 - (p.Y+1)/2) * float32(height)
	return x, y
}
