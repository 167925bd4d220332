package export

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/spriteforge/internal/logger"
	"github.com/Faultbox/spriteforge/internal/scene"
)

// Result is the single terminal outcome of a successful job: output paths
// and the layout they were packed with.
type Result struct {
	Paths      []string
	Layout     Layout
	FrameCount int
}

// Exporter runs export jobs against one scene. The scene's camera and
// animation time are exclusively owned by the running job, so only one job
// may run at a time.
type Exporter struct {
	anim scene.Animator
	rend scene.Renderer

	// TempDir overrides the base directory for per-job frame storage.
	// Empty means the system temp dir.
	TempDir string

	running atomic.Bool
}

// New creates an Exporter bound to the given collaborators.
func New(anim scene.Animator, rend scene.Renderer) *Exporter {
	return &Exporter{anim: anim, rend: rend}
}

// Export runs one job end to end: validate, sample bounds, plan the camera,
// capture every frame, solve the grid and compose the output. Temporary
// frame storage is removed and the scene's animation time restored on every
// exit path, including cancellation. The caller gets exactly one terminal
// result: output paths, or a tagged error — never a partial job.
func (e *Exporter) Export(ctx context.Context, job Job) (*Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrJobAlreadyRunning
	}
	defer e.running.Store(false)

	// Everything checkable without touching the scene fails here, with
	// zero side effects.
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	logger.Info("export started",
		zap.String("name", job.Name),
		zap.Int("start", job.Start),
		zap.Int("end", job.End),
		zap.String("angle", string(job.Angle)),
		zap.String("mode", string(job.Mode)),
		zap.String("format", string(job.Format)),
	)

	samples, err := SampleBounds(e.anim, job.Start, job.End, job.BoundsStride)
	if err != nil {
		return nil, err
	}
	plan, err := PlanCamera(job, samples)
	if err != nil {
		return nil, err
	}
	logger.Debug("camera planned",
		zap.Int("samples", len(samples)),
		zap.Float32("orthoScale", plan.OrthoScale),
	)

	store, err := NewFrameStore(e.TempDir, job.Name, job.FrameWidth, job.FrameHeight)
	if err != nil {
		return nil, err
	}
	guard := scene.GuardTime(e.anim)
	restoreCamera := func() {}
	if stash, ok := e.rend.(scene.CameraStash); ok {
		restoreCamera = stash.StashCamera()
	}
	// Cleanup runs whether the job succeeds, fails mid-pipeline or is
	// cancelled. Removal errors are logged and swallowed so they can
	// never mask the job's primary outcome.
	defer func() {
		if err := store.Remove(); err != nil {
			logger.Warn("removing frame store failed",
				zap.String("dir", store.Dir()),
				zap.Error(err),
			)
		}
		guard.Restore()
		restoreCamera()
	}()

	driver := NewDriver(e.anim, e.rend, store, job, plan)
	if err := driver.Run(ctx); err != nil {
		logger.Warn("capture aborted",
			zap.String("state", driver.State().String()),
			zap.Error(err),
		)
		return nil, err
	}

	layout, err := SolveGrid(store.Count(), job.Grid)
	if err != nil {
		return nil, err
	}

	var paths []string
	switch job.Mode {
	case ModeFrames:
		paths, err = WriteFrames(job, store)
	default:
		var path string
		path, err = WriteSheet(job, store, layout)
		paths = []string{path}
	}
	if err != nil {
		return nil, err
	}

	logger.Info("export finished",
		zap.Int("frames", store.Count()),
		zap.Int("rows", layout.Rows),
		zap.Int("cols", layout.Cols),
		zap.Strings("paths", paths),
	)
	return &Result{
		Paths:      paths,
		Layout:     layout,
		FrameCount: store.Count(),
	}, nil
}
