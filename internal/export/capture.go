package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spriteforge/internal/logger"
	"github.com/Faultbox/spriteforge/internal/scene"
)

// DriverState tracks the capture state machine.
type DriverState int

// Capture driver states. The happy path is Idle -> Priming -> Capturing ->
// Drained; Cancelled is terminal and reached only between frames.
const (
	StateIdle DriverState = iota
	StatePriming
	StateCapturing
	StateDrained
	StateCancelled
)

// String returns the state name.
func (s DriverState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePriming:
		return "priming"
	case StateCapturing:
		return "capturing"
	case StateDrained:
		return "drained"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Driver steps animation time across the job's range and persists one
// rendered frame per step. Capture is strictly sequential: the renderer and
// animator are stateful and not reentrant.
type Driver struct {
	anim  scene.Animator
	rend  scene.Renderer
	store *FrameStore
	job   Job
	plan  Plan

	state DriverState
	frame int // animation frame currently being captured
}

// NewDriver builds a capture driver owning the plan for the job's duration.
func NewDriver(anim scene.Animator, rend scene.Renderer, store *FrameStore, job Job, plan Plan) *Driver {
	return &Driver{
		anim:  anim,
		rend:  rend,
		store: store,
		job:   job,
		plan:  plan,
		state: StateIdle,
	}
}

// State returns the current machine state.
func (d *Driver) State() DriverState { return d.state }

// Run captures every frame in the job's range. The camera is applied
// exactly once before the first frame; re-deriving it per frame would
// reintroduce framing jitter. Cancellation is honored between frames only,
// never mid-render. On success the store holds FrameCount() contiguous
// frames starting at index 0.
func (d *Driver) Run(ctx context.Context) error {
	d.state = StatePriming
	d.rend.SetCamera(d.plan.View, d.plan.Projection)

	step := d.job.step()
	out := 0
	for f := d.job.Start; f <= d.job.End; f += step {
		if err := ctx.Err(); err != nil {
			d.state = StateCancelled
			return fmt.Errorf("%w at frame %d: %v", ErrCancelled, f, err)
		}

		d.state = StateCapturing
		d.frame = f

		d.anim.SetTime(f)
		img, err := d.rend.Render(d.job.FrameWidth, d.job.FrameHeight)
		if err != nil {
			return &RenderError{Frame: f, Err: err}
		}
		if b := img.Bounds(); b.Dx() != d.job.FrameWidth || b.Dy() != d.job.FrameHeight {
			return &RenderError{
				Frame: f,
				Err:   fmt.Errorf("renderer returned %dx%d, want %dx%d", b.Dx(), b.Dy(), d.job.FrameWidth, d.job.FrameHeight),
			}
		}

		if err := d.store.Put(out, img); err != nil {
			return err
		}
		logger.Debug("captured frame",
			zap.Int("animFrame", f),
			zap.Int("index", out),
		)
		out++
	}

	d.state = StateDrained
	return nil
}
