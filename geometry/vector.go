package geometry

import "math"

// FloatMax is the largest representable component value. AABB sentinels are
// built from half of it so that merging two sentinels cannot overflow.
const FloatMax = math.MaxFloat32

func EqualWithEpsilon(a float32, b float32, epsilon float64) bool {
	return math.Abs((float64)(a-b)) <= epsilon
}

type Vector3 struct {
	X float32
	Y float32
	Z float32
}

func NewVector3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

func (v1 Vector3) Equal(v2 Vector3) bool {
	return v1.X == v2.X && v1.Y == v2.Y && v1.Z == v2.Z
}

func (v1 Vector3) EqualWithEpsilon(v2 Vector3, epsilon float64) bool {
	return math.Abs((float64)(v1.X-v2.X)) <= epsilon &&
		math.Abs((float64)(v1.Y-v2.Y)) <= epsilon &&
		math.Abs((float64)(v1.Z-v2.Z)) <= epsilon
}

func (v1 Vector3) GreaterOrEqualThan(v2 Vector3) bool {
	return v1.X >= v2.X && v1.Y >= v2.Y && v1.Z >= v2.Z
}

func (v1 Vector3) LesserOrEqualThan(v2 Vector3) bool {
	return v1.X <= v2.X && v1.Y <= v2.Y && v1.Z <= v2.Z
}

func Add(a Vector3, b Vector3) Vector3 {
	return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a Vector3, b Vector3) Vector3 {
	return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Mul(a Vector3, s float32) Vector3 {
	return Vector3{a.X * s, a.Y * s, a.Z * s}
}

func Min(a Vector3, b Vector3) Vector3 {
	return Vector3{
		(float32)(math.Min((float64)(a.X), (float64)(b.X))),
		(float32)(math.Min((float64)(a.Y), (float64)(b.Y))),
		(float32)(math.Min((float64)(a.Z), (float64)(b.Z))),
	}
}

func Max(a Vector3, b Vector3) Vector3 {
	return Vector3{
		(float32)(math.Max((float64)(a.X), (float64)(b.X))),
		(float32)(math.Max((float64)(a.Y), (float64)(b.Y))),
		(float32)(math.Max((float64)(a.Z), (float64)(b.Z))),
	}
}

func (a Vector3) Dot(b Vector3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a Vector3, b Vector3) Vector3 {
	return Vector3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}

func (a Vector3) Length() float64 {
	return math.Sqrt((float64)(a.X*a.X + a.Y*a.Y + a.Z*a.Z))
}

func Normalized(a Vector3) Vector3 {
	lenght := (float32)(a.Length())
	result := a
	if lenght != 0 {
		result.X /= lenght
		result.Y /= lenght
		result.Z /= lenght
	}
	return result
}

// Abs returns the component-wise absolute value, used for effective radius
// computations against plane normals.
func Abs(a Vector3) Vector3 {
	return Vector3{
		(float32)(math.Abs((float64)(a.X))),
		(float32)(math.Abs((float64)(a.Y))),
		(float32)(math.Abs((float64)(a.Z))),
	}
}
