package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAABBBasic(t *testing.T) {
	aabb := NewAABB(NewVector3(-1, -2, -3), NewVector3(3, 2, 1))

	require.True(t, aabb.Dimensions().Equal(NewVector3(4, 4, 4)))
	require.True(t, aabb.Extents().Equal(NewVector3(2, 2, 2)))
	require.True(t, aabb.Center().Equal(NewVector3(1, 0, -1)))
	require.True(t, aabb.Equal(AABBFromCenterAndExtents(aabb.Center(), aabb.Extents())))
	require.True(t, aabb.SurfaceArea() == 96)
	require.True(t, aabb.IsValid())
}

func TestAABBSentinels(t *testing.T) {
	require.True(t, MaxAABB().IsValid())
	require.False(t, InverseMaxAABB().IsValid())

	// absorbing a point into the inverse sentinel yields that point:
	inv := InverseMaxAABB()
	inv.AbsorbPoint(NewVector3(1, 2, 3))
	require.True(t, inv.Equal(NewAABB(NewVector3(1, 2, 3), NewVector3(1, 2, 3))))

	// the max sentinel contains everything well-formed:
	require.True(t, MaxAABB().Contains(NewAABB(NewVector3(-1000, -1000, -1000), NewVector3(1000, 1000, 1000))))
}

func TestAABBMerged(t *testing.T) {
	require.True(t, Merged(AABB{}, AABB{}).Equal(AABB{}))

	merged := Merged(
		NewAABB(NewVector3(-1, -1, -1), NewVector3(0, 0, 0)),
		NewAABB(NewVector3(0, 0, 0), NewVector3(1, 1, 1)),
	)
	require.True(t, merged.Equal(AABBFromCenterAndExtents(Vector3{}, NewVector3(1, 1, 1))))

	// merging is symmetric and contains both inputs:
	a := NewAABB(NewVector3(0, 0, 0), NewVector3(2, 1, 1))
	b := NewAABB(NewVector3(5, 5, 5), NewVector3(6, 6, 6))
	require.True(t, Merged(a, b).Equal(Merged(b, a)))
	require.True(t, Merged(a, b).Contains(a))
	require.True(t, Merged(a, b).Contains(b))
}

func TestAABBExpanded(t *testing.T) {
	// expansion is distributed half to each side:
	expanded := AABB{}.Expanded(2)
	require.True(t, expanded.Equal(NewAABB(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))))

	require.True(t, AABB{}.Expanded(0).Equal(AABB{}))
}

func TestAABBContainsIntersects(t *testing.T) {
	outer := NewAABB(NewVector3(0, 0, 0), NewVector3(4, 4, 4))
	inner := NewAABB(NewVector3(1, 1, 1), NewVector3(2, 2, 2))
	shifted := NewAABB(NewVector3(2, 2, 2), NewVector3(6, 6, 6))
	disjoint := NewAABB(NewVector3(10, 10, 10), NewVector3(11, 11, 11))

	require.True(t, outer.Contains(inner))
	require.True(t, outer.Intersects(inner))

	require.False(t, outer.Contains(shifted))
	require.True(t, outer.Intersects(shifted))

	require.False(t, outer.Contains(disjoint))
	require.False(t, outer.Intersects(disjoint))

	// touching boxes intersect:
	require.True(t, AABB{}.Intersects(AABB{}))
	require.True(t, outer.ContainsPoint(NewVector3(4, 4, 4)))
	require.False(t, outer.ContainsPoint(NewVector3(4.1, 4, 4)))
}

func TestAABBEffectiveRadius(t *testing.T) {
	aabb := NewAABB(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))

	require.True(t, aabb.EffectiveRadius(NewVector3(1, 0, 0)) == 1)
	require.True(t, aabb.EffectiveRadius(NewVector3(-1, 0, 0)) == 1)
	require.True(t, aabb.EffectiveRadius(NewVector3(0, 1, 0)) == 1)
	require.True(t, aabb.EffectiveRadius(NewVector3(0, 0, -1)) == 1)

	diagonal := Normalized(NewVector3(1, 1, 1))
	require.True(t, EqualWithEpsilon(
		aabb.EffectiveRadius(diagonal),
		(float32)(NewVector3(1, 1, 1).Length()),
		1e-4,
	))
}
