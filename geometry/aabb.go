package geometry

// Axis-aligned bounding box, stored as min/max corner points.
//
// An AABB is well-formed when Min <= Max on every axis. Zero value is the
// empty box at the origin, which is well-formed.
type AABB struct {
	Min Vector3
	Max Vector3
}

func NewAABB(min, max Vector3) AABB {
	return AABB{Min: min, Max: max}
}

func AABBFromCenterAndExtents(center, extents Vector3) AABB {
	return AABB{
		Min: Sub(center, extents),
		Max: Add(center, extents),
	}
}

// MaxAABB is the largest well-formed box. It is the sentinel returned for
// the bounds of an empty tree.
func MaxAABB() AABB {
	return AABB{
		Min: Vector3{-0.5 * FloatMax, -0.5 * FloatMax, -0.5 * FloatMax},
		Max: Vector3{0.5 * FloatMax, 0.5 * FloatMax, 0.5 * FloatMax},
	}
}

// InverseMaxAABB is the inverted sentinel: absorbing any point into it
// yields exactly that point, so it is the identity for accumulation loops.
func InverseMaxAABB() AABB {
	return AABB{
		Min: Vector3{0.5 * FloatMax, 0.5 * FloatMax, 0.5 * FloatMax},
		Max: Vector3{-0.5 * FloatMax, -0.5 * FloatMax, -0.5 * FloatMax},
	}
}

func Merged(a AABB, b AABB) AABB {
	return AABB{
		Min: Min(a.Min, b.Min),
		Max: Max(a.Max, b.Max),
	}
}

func (a AABB) Center() Vector3 {
	return Mul(Add(a.Min, a.Max), 0.5)
}

func (a AABB) Dimensions() Vector3 {
	return Sub(a.Max, a.Min)
}

func (a AABB) Extents() Vector3 {
	return Mul(a.Dimensions(), 0.5)
}

func (a AABB) SurfaceArea() float32 {
	d := a.Dimensions()
	return 2.0 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// Expanded oversizes the box by f, distributed half to each side per axis.
func (a AABB) Expanded(f float32) AABB {
	half := Vector3{0.5 * f, 0.5 * f, 0.5 * f}
	return AABB{
		Min: Sub(a.Min, half),
		Max: Add(a.Max, half),
	}
}

func (a *AABB) AbsorbPoint(p Vector3) {
	a.Min = Min(a.Min, p)
	a.Max = Max(a.Max, p)
}

func (a AABB) Contains(b AABB) bool {
	return b.Min.GreaterOrEqualThan(a.Min) && b.Max.LesserOrEqualThan(a.Max)
}

func (a AABB) ContainsPoint(p Vector3) bool {
	return p.GreaterOrEqualThan(a.Min) && p.LesserOrEqualThan(a.Max)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.LesserOrEqualThan(b.Max) && b.Min.LesserOrEqualThan(a.Max)
}

func (a AABB) IsValid() bool {
	return a.Max.GreaterOrEqualThan(a.Min)
}

func (a AABB) Equal(b AABB) bool {
	return a.Min.Equal(b.Min) && a.Max.Equal(b.Max)
}

func (a AABB) EqualWithEpsilon(b AABB, epsilon float64) bool {
	return a.Min.EqualWithEpsilon(b.Min, epsilon) && a.Max.EqualWithEpsilon(b.Max, epsilon)
}

// EffectiveRadius projects the box extents onto direction, giving the
// radius of the box as seen along that direction.
func (a AABB) EffectiveRadius(direction Vector3) float32 {
	return Abs(direction).Dot(a.Extents())
}
