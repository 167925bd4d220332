package export

import (
	"fmt"

	"github.com/Faultbox/spriteforge/internal/scene"
	"github.com/Faultbox/spriteforge/pkg/math"
)

// Sample pairs an animation frame with the subject's world-space bounds at
// that frame. Immutable once produced.
type Sample struct {
	Frame  int
	Bounds math.Box3
}

// SampleBounds walks the frame range with the given stride and collects the
// subject's world bounds at each sample. The scene's animation time is
// restored before returning, on success and on failure.
//
// A stride above 1 trades exactness for speed on long ranges; the end frame
// is always sampled so the range extremes stay inside the framing box.
func SampleBounds(anim scene.Animator, start, end, stride int) ([]Sample, error) {
	if end < start {
		return nil, fmt.Errorf("frame range [%d, %d] is inverted", start, end)
	}
	if stride < 1 {
		stride = 1
	}

	guard := scene.GuardTime(anim)
	defer guard.Restore()

	samples := make([]Sample, 0, (end-start)/stride+2)
	sampleAt := func(frame int) error {
		anim.SetTime(frame)
		bounds, ok := anim.WorldBounds()
		if !ok || bounds.IsDegenerate() {
			return fmt.Errorf("%w: frame %d has no visible geometry", ErrNoAnimationData, frame)
		}
		samples = append(samples, Sample{Frame: frame, Bounds: bounds})
		return nil
	}

	last := start - 1
	for f := start; f <= end; f += stride {
		if err := sampleAt(f); err != nil {
			return nil, err
		}
		last = f
	}
	if last != end {
		if err := sampleAt(end); err != nil {
			return nil, err
		}
	}
	return samples, nil
}
