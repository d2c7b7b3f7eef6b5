package spatial

import (
	"github.com/aukilabs/yggdrasil/geometry"
)

// queryStackSize is the fixed stack space of a Query call. Exceeding the
// space results in a recursive call.
const queryStackSize = 64

// Query issues a spatial query with an AABB against the tree.
//
// callback is invoked once per leaf object whose stored AABB intersects
// aabb, in an unspecified order. Returning false from the callback stops
// the whole traversal immediately.
func (t *Tree[T]) Query(callback func(T) bool, aabb geometry.AABB) {
	instrumentQuery()
	t.innerQueryAABB(callback, aabb, t.root)
}

// QueryFrustum issues a spatial query with a Frustum against the tree.
// Semantics match Query; descent is only cut off for volumes fully
// disjoint from the frustum.
func (t *Tree[T]) QueryFrustum(callback func(T) bool, frustum geometry.Frustum) {
	instrumentQuery()
	t.innerQueryFrustum(callback, frustum, t.root)
}

// innerQueryAABB is the (possibly) recursive inner of a Query call. It
// uses a fixed-size id stack until it is full, then recurses.
func (t *Tree[T]) innerQueryAABB(callback func(T) bool, aabb geometry.AABB, root ID) bool {
	var stack [queryStackSize]ID

	// Initial stack population.
	top := 0
	stack[top] = root
	top++

	// Loop until consumed.
	for top > 0 {
		// Pop the next node - if invalid, skip.
		top--
		id := stack[top]
		if id == InvalidID {
			continue
		}

		n := &t.nodes[id]
		if !n.aabb.Intersects(aabb) {
			continue
		}

		// If the node is a leaf, invoke the callback on its object - a
		// false return means "stop querying", so return immediately.
		if n.isLeaf() {
			if !callback(t.objects[n.object]) {
				return false
			}
			continue
		}

		// If there is not enough id stack space for 2 more ids, push
		// the first child id, then recurse on the second. Otherwise,
		// push both children and iterate.
		if top+1 == len(stack) {
			stack[top] = n.childA
			top++
			if !t.innerQueryAABB(callback, aabb, n.childB) {
				return false
			}
		} else {
			stack[top] = n.childA
			top++
			stack[top] = n.childB
			top++
		}
	}

	return true
}

// innerQueryFrustum is the frustum variant of innerQueryAABB. Only a fully
// disjoint volume cuts off descent; intersecting and contained volumes are
// both explored.
func (t *Tree[T]) innerQueryFrustum(callback func(T) bool, frustum geometry.Frustum, root ID) bool {
	var stack [queryStackSize]ID

	top := 0
	stack[top] = root
	top++

	for top > 0 {
		top--
		id := stack[top]
		if id == InvalidID {
			continue
		}

		n := &t.nodes[id]
		if frustum.Intersects(n.aabb) == geometry.FrustumDisjoint {
			continue
		}

		if n.isLeaf() {
			if !callback(t.objects[n.object]) {
				return false
			}
			continue
		}

		if top+1 == len(stack) {
			stack[top] = n.childA
			top++
			if !t.innerQueryFrustum(callback, frustum, n.childB) {
				return false
			}
		} else {
			stack[top] = n.childA
			top++
			stack[top] = n.childB
			top++
		}
	}

	return true
}
