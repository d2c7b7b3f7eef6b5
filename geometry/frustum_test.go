package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// cubeFrustum bounds the cube [-1,1]^3 with inward-facing planes.
func cubeFrustum() Frustum {
	return FrustumFromPlanes(
		PlaneFromPositionAndNormal(NewVector3(0, 0, 1), NewVector3(0, 0, -1)),
		PlaneFromPositionAndNormal(NewVector3(0, 0, -1), NewVector3(0, 0, 1)),
		PlaneFromPositionAndNormal(NewVector3(-1, 0, 0), NewVector3(1, 0, 0)),
		PlaneFromPositionAndNormal(NewVector3(1, 0, 0), NewVector3(-1, 0, 0)),
		PlaneFromPositionAndNormal(NewVector3(0, 1, 0), NewVector3(0, -1, 0)),
		PlaneFromPositionAndNormal(NewVector3(0, -1, 0), NewVector3(0, 1, 0)),
	)
}

func TestPlane(t *testing.T) {
	plane := PlaneFromPositionAndNormal(NewVector3(0, 0, 5), NewVector3(0, 0, 2))

	// the normal is normalized and distances are signed:
	require.True(t, plane.Normal.Equal(NewVector3(0, 0, 1)))
	require.True(t, plane.DotCoordinate(NewVector3(0, 0, 5)) == 0)
	require.True(t, plane.DotCoordinate(NewVector3(3, -3, 7)) == 2)
	require.True(t, plane.DotCoordinate(NewVector3(0, 0, 1)) == -4)
}

func TestFrustumIntersects(t *testing.T) {
	frustum := cubeFrustum()

	require.Equal(t, FrustumContains, frustum.Intersects(
		AABBFromCenterAndExtents(Vector3{}, NewVector3(0.5, 0.5, 0.5))))

	require.Equal(t, FrustumDisjoint, frustum.Intersects(
		NewAABB(NewVector3(5, 5, 5), NewVector3(6, 6, 6))))

	require.Equal(t, FrustumIntersects, frustum.Intersects(
		NewAABB(NewVector3(0.5, -0.5, -0.5), NewVector3(2, 0.5, 0.5))))

	// a box covering the whole frustum still reports intersecting, which
	// is what keeps descent alive during tree traversal:
	require.Equal(t, FrustumIntersects, frustum.Intersects(
		AABBFromCenterAndExtents(Vector3{}, NewVector3(10, 10, 10))))
}

func TestFrustumIntersectsBoundary(t *testing.T) {
	frustum := cubeFrustum()

	// a box touching the frustum exactly from the outside is disjoint:
	require.Equal(t, FrustumDisjoint, frustum.Intersects(
		NewAABB(NewVector3(1, 1, 1), NewVector3(2, 2, 2))))

	// a box inscribed exactly within the planes is contained:
	require.Equal(t, FrustumContains, frustum.Intersects(
		NewAABB(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))))
}
