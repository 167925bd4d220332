package export

import (
	"fmt"
	gomath "math"
)

// Layout is the solved sheet grid: rows x cols cells, row-major placement.
type Layout struct {
	Rows int
	Cols int
}

// CanvasSize returns the pixel dimensions of the sheet canvas for the given
// frame size.
func (l Layout) CanvasSize(frameW, frameH int) (w, h int) {
	return l.Cols * frameW, l.Rows * frameH
}

// SolveGrid picks the sheet layout for frameCount frames. A manual layout
// is validated against the frame count; auto mode uses the closed form
// cols = ceil(sqrt(n)), rows = ceil(n/cols), which minimizes wasted cells
// with a near-square shape for every n >= 1.
func SolveGrid(frameCount int, manual *GridSpec) (Layout, error) {
	if frameCount < 1 {
		return Layout{}, fmt.Errorf("frame count %d must be >= 1", frameCount)
	}
	if manual != nil {
		if manual.Rows < 1 || manual.Cols < 1 {
			return Layout{}, fmt.Errorf("manual grid %dx%d has non-positive dimension", manual.Rows, manual.Cols)
		}
		if manual.Rows*manual.Cols < frameCount {
			return Layout{}, fmt.Errorf("%w: %dx%d holds %d cells, need %d",
				ErrGridTooSmall, manual.Rows, manual.Cols, manual.Rows*manual.Cols, frameCount)
		}
		return Layout{Rows: manual.Rows, Cols: manual.Cols}, nil
	}

	cols := int(gomath.Ceil(gomath.Sqrt(float64(frameCount))))
	rows := (frameCount + cols - 1) / cols
	return Layout{Rows: rows, Cols: cols}, nil
}
