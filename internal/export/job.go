// Package export implements the sprite export pipeline: bounds sampling,
// camera framing, sequential frame capture, grid layout and sheet
// composition, wrapped in a cleanup discipline that leaves no temporary
// state behind.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/spriteforge/pkg/math"
)

// Angle selects the fixed camera direction for a job.
type Angle string

// Supported camera angles.
const (
	AngleFront     Angle = "front"     // view along -Y
	AngleIsometric Angle = "isometric" // view along normalized (1,-1,1)
	AngleSide      Angle = "side"      // view along -X
	AngleCustom    Angle = "custom"    // caller-supplied direction
)

// Format is the output image encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatWEBP Format = "webp"
)

// Mode selects between one packed sheet and individual frame files.
type Mode string

// Supported output modes.
const (
	ModeSheet  Mode = "sheet"
	ModeFrames Mode = "frames"
)

// GridSpec is a manual rows x cols override for the sheet layout.
type GridSpec struct {
	Rows int
	Cols int
}

// Frame size limits, matching the host's preset range.
const (
	MinFrameSize = 64
	MaxFrameSize = 2048
)

// Job describes one export request. It is immutable for the duration of the
// run; changing any setting means a new Job and a fresh camera plan.
type Job struct {
	// Name is the animation name; it feeds output filenames after
	// sanitization.
	Name string

	FrameWidth  int
	FrameHeight int

	// Start and End are the inclusive animation frame range.
	Start int
	End   int

	// FrameStep decimates the range: every FrameStep-th frame is
	// captured. Zero means 1 (every frame).
	FrameStep int

	Angle     Angle
	CustomDir math.Vec3 // direction for AngleCustom

	// Padding is the uniform framing margin as a fraction of the subject
	// extent, in [0, 1].
	Padding float32

	// Mirror flips every frame horizontally during composition.
	Mirror bool

	Format Format
	Mode   Mode

	// Grid is an optional manual layout; nil selects the auto grid.
	Grid *GridSpec

	// BoundsStride samples every Nth frame for camera framing analysis.
	// Zero means 1 (exact).
	BoundsStride int

	// OutputDir receives the encoded files.
	OutputDir string
}

// Validate checks everything that can be checked before touching the scene.
func (j *Job) Validate() error {
	if j.FrameWidth < MinFrameSize || j.FrameWidth > MaxFrameSize ||
		j.FrameHeight < MinFrameSize || j.FrameHeight > MaxFrameSize {
		return fmt.Errorf("frame size %dx%d outside [%d, %d]",
			j.FrameWidth, j.FrameHeight, MinFrameSize, MaxFrameSize)
	}
	if j.End < j.Start {
		return fmt.Errorf("frame range [%d, %d] is inverted", j.Start, j.End)
	}
	if j.FrameStep < 0 {
		return fmt.Errorf("frame step %d is negative", j.FrameStep)
	}
	if j.BoundsStride < 0 {
		return fmt.Errorf("bounds stride %d is negative", j.BoundsStride)
	}
	if j.Padding < 0 || j.Padding > 1 {
		return fmt.Errorf("%w: %v not in [0, 1]", ErrInvalidPadding, j.Padding)
	}
	switch j.Angle {
	case AngleFront, AngleIsometric, AngleSide:
	case AngleCustom:
		if j.CustomDir.IsZero() {
			return fmt.Errorf("%w: custom direction is zero", ErrInvalidCameraAngle)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCameraAngle, j.Angle)
	}
	switch j.Format {
	case FormatPNG, FormatWEBP:
	default:
		return &EncodeError{Format: j.Format}
	}
	switch j.Mode {
	case ModeSheet, ModeFrames:
	default:
		return fmt.Errorf("unknown output mode %q", j.Mode)
	}
	if j.Grid != nil {
		if j.Grid.Rows < 1 || j.Grid.Cols < 1 {
			return fmt.Errorf("manual grid %dx%d has non-positive dimension", j.Grid.Rows, j.Grid.Cols)
		}
		if j.Grid.Rows*j.Grid.Cols < j.FrameCount() {
			return fmt.Errorf("%w: %dx%d holds %d cells, need %d",
				ErrGridTooSmall, j.Grid.Rows, j.Grid.Cols, j.Grid.Rows*j.Grid.Cols, j.FrameCount())
		}
	}
	if j.OutputDir == "" {
		return fmt.Errorf("output directory not set")
	}
	return nil
}

// step returns the effective frame step, never below 1.
func (j *Job) step() int {
	if j.FrameStep < 1 {
		return 1
	}
	return j.FrameStep
}

// FrameCount returns the number of frames this job captures.
func (j *Job) FrameCount() int {
	return (j.End-j.Start)/j.step() + 1
}

// sanitizeName replaces filename-hostile characters with underscores.
func sanitizeName(name string) string {
	if name == "" {
		return "animation"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '|', ':', '*', '?', '<', '>', '"', '/', '\\':
			return '_'
		}
		return r
	}, name)
}

// SheetPath returns the output path for sheet mode.
func (j *Job) SheetPath() string {
	return filepath.Join(j.OutputDir,
		fmt.Sprintf("%s_sheet.%s", sanitizeName(j.Name), j.Format))
}

// FramePath returns the output path for frame index i in frames mode.
// Indices are zero-padded to at least four digits, wider when the range
// needs it.
func (j *Job) FramePath(i int) string {
	width := len(fmt.Sprintf("%d", j.FrameCount()-1))
	if width < 4 {
		width = 4
	}
	return filepath.Join(j.OutputDir,
		fmt.Sprintf("%s_%0*d.%s", sanitizeName(j.Name), width, i, j.Format))
}
