package geometry

// Plane in constant-normal form: Normal.Dot(p) + D == 0 for points p on the
// plane. Points with positive distance are on the normal side.
type Plane struct {
	Normal Vector3
	D      float32
}

func PlaneFromPositionAndNormal(position Vector3, normal Vector3) Plane {
	n := Normalized(normal)
	return Plane{
		Normal: n,
		D:      -n.Dot(position),
	}
}

// DotCoordinate returns the signed distance from p to the plane.
func (pl Plane) DotCoordinate(p Vector3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// FrustumTestResult is the tri-state outcome of a Frustum vs. AABB test.
type FrustumTestResult int

const (
	// FrustumDisjoint means the volume is fully outside the frustum.
	FrustumDisjoint FrustumTestResult = iota

	// FrustumIntersects means the volume straddles at least one plane.
	FrustumIntersects

	// FrustumContains means the volume is fully inside the frustum.
	FrustumContains
)

// Frustum is a convex volume bounded by six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

func FrustumFromPlanes(near, far, left, right, top, bottom Plane) Frustum {
	return Frustum{
		Planes: [6]Plane{near, far, left, right, top, bottom},
	}
}

// Intersects classifies aabb against the frustum. Tested with the
// center/effective-radius distance per plane, so a box that straddles any
// plane reports FrustumIntersects even when a corner-exact test could
// still prove containment.
//
// A box touching a plane exactly from the outside is disjoint; a box
// inscribed exactly within the planes is contained.
func (f Frustum) Intersects(aabb AABB) FrustumTestResult {
	center := aabb.Center()

	result := FrustumContains
	for i := 0; i < len(f.Planes); i++ {
		radius := aabb.EffectiveRadius(f.Planes[i].Normal)
		distance := f.Planes[i].DotCoordinate(center)

		if distance <= -radius {
			return FrustumDisjoint
		}
		if distance < radius {
			result = FrustumIntersects
		}
	}
	return result
}
