package export

import (
	"errors"
	"fmt"
)

// Sentinel errors for the export pipeline. Validation errors surface before
// any rendering begins; mid-pipeline errors always pass through cleanup
// before reaching the caller.
var (
	// ErrNoAnimationData means the scene had no animated geometry (or
	// zero-volume bounds) at a sampled frame.
	ErrNoAnimationData = errors.New("no animation data")

	// ErrDegenerateBounds means the union bounding box across all samples
	// encloses zero volume.
	ErrDegenerateBounds = errors.New("degenerate bounds")

	// ErrInvalidCameraAngle means an unknown angle, or a custom angle
	// with a zero direction vector.
	ErrInvalidCameraAngle = errors.New("invalid camera angle")

	// ErrInvalidPadding means the padding fraction is outside [0, 1].
	ErrInvalidPadding = errors.New("invalid padding")

	// ErrStorageExhausted means temporary frame storage ran out of disk
	// headroom mid-capture.
	ErrStorageExhausted = errors.New("storage exhausted")

	// ErrGridTooSmall means a manual grid cannot hold the frame count.
	ErrGridTooSmall = errors.New("grid too small")

	// ErrJobAlreadyRunning means a second export was requested while one
	// holds the scene.
	ErrJobAlreadyRunning = errors.New("export job already running")

	// ErrCancelled means the job was cancelled between frames.
	ErrCancelled = errors.New("export cancelled")
)

// RenderError reports a renderer failure at a specific animation frame. A
// single render failure aborts the whole job; a sheet with holes is worse
// than no sheet.
type RenderError struct {
	Frame int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed at frame %d: %v", e.Frame, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// EncodeError reports that an output format could not encode a frame or
// sheet.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("encode failed for format %q", e.Format)
	}
	return fmt.Sprintf("encode failed for format %q: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
