package math

import "math"

// Box3 is an axis-aligned bounding box defined by its minimum and maximum
// corners in world space.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// NewBox3 creates a Box3 from its minimum and maximum corners.
func NewBox3(min, max Vec3) Box3 {
	return Box3{Min: min, Max: max}
}

// EmptyBox3 returns a box with inverted infinite corners, so that the first
// Union or ExpandByPoint establishes real bounds.
func EmptyBox3() Box3 {
	inf := float32(math.Inf(1))
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box has max < min on any axis.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// IsDegenerate reports whether the box encloses zero volume: empty, or flat
// on every axis.
func (b Box3) IsDegenerate() bool {
	if b.IsEmpty() {
		return true
	}
	s := b.Size()
	return s.X == 0 && s.Y == 0 && s.Z == 0
}

// Size returns the extent along each axis.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the minimal box containing both b and other.
func (b Box3) Union(other Box3) Box3 {
	return Box3{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// ExpandByPoint returns the box grown to contain p.
func (b Box3) ExpandByPoint(p Vec3) Box3 {
	return Box3{
		Min: b.Min.Min(p),
		Max: b.Max.Max(p),
	}
}

// Expand returns the box padded by d on all sides.
func (b Box3) Expand(d float32) Box3 {
	pad := Vec3{d, d, d}
	return Box3{
		Min: b.Min.Sub(pad),
		Max: b.Max.Add(pad),
	}
}

// MaxExtent returns the largest extent across the three axes.
func (b Box3) MaxExtent() float32 {
	s := b.Size()
	return maxf(s.X, maxf(s.Y, s.Z))
}

// Corners returns the eight corner points of the box.
func (b Box3) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}
