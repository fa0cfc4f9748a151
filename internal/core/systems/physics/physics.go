package physics

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct{ X, Y float64 }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }

func (v Vec2) Equal(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Vec3 is a translation; Z only orders drawing.
type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Add offsets the planar part of v and keeps Z.
func (v Vec3) Add(o Vec2) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z} }

// Box is an axis-aligned rectangle given by its center and full size.
type Box struct {
	Center Vec2
	Size   Vec2
}

func (b Box) Min() Vec2 { return Vec2{b.Center.X - b.Size.X/2, b.Center.Y - b.Size.Y/2} }
func (b Box) Max() Vec2 { return Vec2{b.Center.X + b.Size.X/2, b.Center.Y + b.Size.Y/2} }

// Overlaps reports whether a and b share interior area. Boxes that only
// touch along an edge do not overlap.
func Overlaps(a, b Box) bool {
	return math.Abs(a.Center.X-b.Center.X) < (a.Size.X+b.Size.X)/2 &&
		math.Abs(a.Center.Y-b.Center.Y) < (a.Size.Y+b.Size.Y)/2
}

// HalfRange returns the largest offset from the arena center at which an
// object of the given size still fits on one axis. It is never negative.
func HalfRange(arena, size float64) float64 {
	return math.Max(0, (arena-size)/2)
}

// ClampAxis restricts v to [-HalfRange, +HalfRange].
func ClampAxis(v, arena, size float64) float64 {
	limit := HalfRange(arena, size)
	return math.Max(-limit, math.Min(limit, v))
}

// DirectionalVelocity turns direction signs in {-1,0,1} into a velocity whose
// magnitude never exceeds speed: when both axes are active each component is
// divided by sqrt(2).
func DirectionalVelocity(dx, dy, speed float64) Vec2 {
	v := Vec2{dx * speed, dy * speed}
	if dx != 0 && dy != 0 {
		v = v.Scale(1 / math.Sqrt2)
	}
	return v
}
