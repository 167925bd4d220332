package export

import (
	"errors"
	"image"

	"github.com/Faultbox/spriteforge/pkg/math"
)

// fakeAnimator is a scriptable scene.Animator.
type fakeAnimator struct {
	time     int
	setCalls []int

	// bounds returns the world bounds at the given frame. nil means a
	// unit box drifting along X with time.
	bounds func(frame int) (math.Box3, bool)
}

func (f *fakeAnimator) Time() int { return f.time }

func (f *fakeAnimator) SetTime(frame int) {
	f.time = frame
	f.setCalls = append(f.setCalls, frame)
}

func (f *fakeAnimator) WorldBounds() (math.Box3, bool) {
	if f.bounds != nil {
		return f.bounds(f.time)
	}
	x := float32(f.time) * 0.1
	return math.NewBox3(
		math.Vec3{X: x - 1, Y: -1, Z: 0},
		math.Vec3{X: x + 1, Y: 1, Z: 2},
	), true
}

// fakeRenderer is a scriptable scene.Renderer producing an opaque dot in
// the buffer center.
type fakeRenderer struct {
	cameraSet   int
	renderCalls int

	// failAtCall makes the Nth Render call (1-based) fail. Zero never
	// fails.
	failAtCall int

	// badSize makes Render return a buffer of the wrong dimensions.
	badSize bool
}

var errFakeRender = errors.New("fake renderer failure")

func (f *fakeRenderer) SetCamera(view, projection math.Mat4) {
	f.cameraSet++
}

func (f *fakeRenderer) Render(width, height int) (*image.NRGBA, error) {
	f.renderCalls++
	if f.failAtCall > 0 && f.renderCalls == f.failAtCall {
		return nil, errFakeRender
	}
	if f.badSize {
		width++
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	i := img.PixOffset(width/2, height/2)
	img.Pix[i+0] = 255
	img.Pix[i+3] = 255
	return img, nil
}
