// Package scene defines the narrow interfaces through which the exporter
// talks to the hosting 3D engine. The exporter never sees meshes, armatures
// or materials; it only moves animation time, positions a camera and asks
// for pixels.
package scene

import (
	"image"

	"github.com/Faultbox/spriteforge/pkg/math"
)

// Animator exposes the host's animation evaluation. Implementations are
// stateful and not reentrant: the exporter owns the scene exclusively for
// the duration of one job.
type Animator interface {
	// Time returns the current animation time in frames.
	Time() int

	// SetTime advances the scene to the given animation frame and
	// re-evaluates all animated geometry.
	SetTime(frame int)

	// WorldBounds returns the world-space AABB of all visible animated
	// geometry at the current time. ok is false when the scene holds no
	// animated geometry.
	WorldBounds() (bounds math.Box3, ok bool)
}

// Renderer rasterizes the current scene state into an RGBA buffer.
type Renderer interface {
	// SetCamera installs the view and projection used by subsequent
	// Render calls. Called once per export job.
	SetCamera(view, projection math.Mat4)

	// Render rasterizes the current scene into a width x height RGBA
	// image with a fully transparent background.
	Render(width, height int) (*image.NRGBA, error)
}

// CameraStash is an optional Renderer extension for hosts whose camera
// state outlives a render call. When implemented, the exporter stashes the
// camera before installing its own and restores it during cleanup, so a job
// leaves the host's viewport exactly as it found it. Renderer has no camera
// getter, so only the host can take this snapshot.
type CameraStash interface {
	// StashCamera snapshots the current camera and returns the function
	// that restores it.
	StashCamera() (restore func())
}

// TimeGuard captures the scene's animation time so the exporter can restore
// it after mutating shared state.
type TimeGuard struct {
	anim  Animator
	saved int
}

// GuardTime records the current animation time of anim.
func GuardTime(anim Animator) *TimeGuard {
	return &TimeGuard{anim: anim, saved: anim.Time()}
}

// Restore puts the scene back at the recorded time. Safe to call more than
// once.
func (g *TimeGuard) Restore() {
	g.anim.SetTime(g.saved)
}
