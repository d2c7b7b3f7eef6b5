// Package spatial implements a dynamic spatial query structure: a mutable
// binary tree forming a bounding volume hierarchy of AABBs.
//
// The tree is single-writer. Queries are read-only and may run concurrently
// with each other, but never with Add, Update or Remove.
package spatial

import (
	"github.com/aukilabs/yggdrasil/geometry"
)

// Tree is a dynamic bounding volume hierarchy of AABBs over objects of
// type T.
//
// Node and object storage live in flat arenas owned by the tree. Released
// slots are recycled through two independent free lists, so the arenas only
// ever grow.
type Tree[T any] struct {
	root ID
	free ID

	nodes       []node
	freeObjects []ID
	objects     []T

	// expansion oversizes AABBs on insertion. Useful to minimize the
	// degree of reinsertion in exchange for Query accuracy.
	expansion float32
}

// NewTree creates a spatial tree with initialCapacity node storage
// pre-reserved and the desired AABB expansion constant.
//
// initialCapacity is a performance hint only. expansion trades Update
// churn against query tightness and does not affect correctness.
func NewTree[T any](initialCapacity uint32, expansion float32) *Tree[T] {
	t := &Tree[T]{
		root:      InvalidID,
		free:      InvalidID,
		expansion: expansion,
	}
	if initialCapacity > 0 {
		t.nodes = make([]node, 0, initialCapacity)
	}
	return t
}

// Add inserts a new object into the tree and returns the node id used to
// store it. The id stays valid until Remove is called with it.
func (t *Tree[T]) Add(object T, aabb geometry.AABB) ID {
	id := t.allocateNode()

	n := &t.nodes[id]
	n.aabb = aabb.Expanded(t.expansion)
	n.object = t.addObject(object)

	t.addLeafNode(id)

	instrumentAddObject()
	return id
}

// Update replaces the AABB of the leaf node referenced by id.
//
// When the new AABB still fits inside the node's stored (expanded) AABB,
// nothing changes and Update returns false. Otherwise the leaf is pulled
// out of the tree, re-expanded around aabb and reinserted, and Update
// returns true.
//
// id must be a currently valid id previously returned by Add.
func (t *Tree[T]) Update(id ID, aabb geometry.AABB) bool {
	n := &t.nodes[id]
	if n.aabb.Contains(aabb) {
		return false
	}

	// Remove and then reinsert the node.
	t.removeLeafNode(id)
	n.aabb = aabb.Expanded(t.expansion)
	t.addLeafNode(id)

	instrumentReinsertObject()
	return true
}

// Remove releases the leaf node referenced by id and the object it tracks.
//
// id must be a currently valid id previously returned by Add.
func (t *Tree[T]) Remove(id ID) {
	t.removeObject(t.nodes[id].object)
	t.removeLeafNode(id)
	t.releaseNode(id)

	instrumentRemoveObject()
}

// GetRootAABB returns the overall dimensions of the tree. It is
// geometry.MaxAABB() when the tree is empty.
func (t *Tree[T]) GetRootAABB() geometry.AABB {
	if t.root == InvalidID {
		return geometry.MaxAABB()
	}
	return t.nodes[t.root].aabb
}

// GetObject returns the object associated with node id.
func (t *Tree[T]) GetObject(id ID) T {
	return t.objects[t.nodes[id].object]
}

// GetObjectAABB returns the tree AABB stored for node id. This is the
// object's true AABB oversized by the tree's expansion constant.
func (t *Tree[T]) GetObjectAABB(id ID) geometry.AABB {
	return t.nodes[id].aabb
}

// GetObjects returns the full object storage of the tree.
//
// The slice contains holes: zero-value entries for slots that are not
// currently members of the tree. It is typically only useful when T is a
// pointer type.
func (t *Tree[T]) GetObjects() []T {
	return t.objects
}

// GetNodeCapacity returns the total number of allocated nodes. Not the
// same as the number of nodes currently in the tree.
func (t *Tree[T]) GetNodeCapacity() uint32 {
	return (uint32)(len(t.nodes))
}

// ComputeFreeNodeCount walks the node free list and returns its length.
// For debugging and testing, O(n) of the number of free nodes.
func (t *Tree[T]) ComputeFreeNodeCount() uint32 {
	count := (uint32)(0)
	id := t.free
	for id != InvalidID {
		count++
		id = t.nodes[id].parent
	}
	return count
}

// allocateNode pops the free list, or grows the arena when the free list
// is empty. The returned node has all fields reset.
func (t *Tree[T]) allocateNode() ID {
	// No nodes on the free list, instantiate a new one.
	if t.free == InvalidID {
		id := (ID)(len(t.nodes))
		n := node{}
		n.reset()
		t.nodes = append(t.nodes, n)

		instrumentGrowNodeCapacity()
		return id
	}

	// Reuse a current free node.
	id := t.free
	n := &t.nodes[id]
	t.free = n.parent
	n.reset()
	return id
}

// releaseNode pushes a node onto the free list.
func (t *Tree[T]) releaseNode(id ID) {
	t.nodes[id].parent = t.free
	t.free = id
}

// addObject adds an object to the tracked object storage, recycling a free
// slot when one is available.
func (t *Tree[T]) addObject(object T) ID {
	if len(t.freeObjects) == 0 {
		id := (ID)(len(t.objects))
		t.objects = append(t.objects, object)
		return id
	}

	id := t.freeObjects[len(t.freeObjects)-1]
	t.freeObjects = t.freeObjects[:len(t.freeObjects)-1]
	t.objects[id] = object
	return id
}

// removeObject releases a tracked object slot. The slot is cleared to the
// zero value so non-trivial payloads are released promptly rather than
// held until slot reuse.
func (t *Tree[T]) removeObject(id ID) {
	var zero T
	t.objects[id] = zero
	t.freeObjects = append(t.freeObjects, id)
}

// addLeafNode inserts a previously allocated leaf node into the tree,
// choosing its sibling by surface area cost.
func (t *Tree[T]) addLeafNode(leaf ID) {
	// No root yet, insert and return immediately.
	if t.root == InvalidID {
		t.root = leaf
		t.nodes[leaf].parent = InvalidID
		return
	}

	leafAABB := t.nodes[leaf].aabb

	// Find the sibling to join to the leaf node.
	sibling := t.root
	for !t.nodes[sibling].isLeaf() {
		siblingAABB := t.nodes[sibling].aabb
		surfaceArea := siblingAABB.SurfaceArea()

		// Surface area of the current node expanded to contain the
		// leaf (the case of inserting at the current node).
		mergedAABB := geometry.Merged(siblingAABB, leafAABB)
		expandedSurfaceArea := mergedAABB.SurfaceArea()

		currentCost := 2.0 * expandedSurfaceArea
		growthCost := 2.0 * (expandedSurfaceArea - surfaceArea)

		// Cost of descending into either child of the current node.
		childA := t.nodes[sibling].childA
		childACost := t.insertionCost(childA, leafAABB) + growthCost
		childB := t.nodes[sibling].childB
		childBCost := t.insertionCost(childB, leafAABB) + growthCost

		// Done if the cost of descent into either child is greater
		// than inserting at the current node.
		if childACost >= currentCost && childBCost >= currentCost {
			break
		}

		// Proceed into the best child.
		if childACost < childBCost {
			sibling = childA
		} else {
			sibling = childB
		}
	}

	// Split and insert:
	newParent := t.allocateNode()
	oldParent := t.nodes[sibling].parent

	parent := &t.nodes[newParent]
	parent.parent = oldParent
	parent.object = InvalidID
	parent.aabb = geometry.Merged(leafAABB, t.nodes[sibling].aabb)
	parent.childA = sibling
	parent.childB = leaf
	t.nodes[sibling].parent = newParent
	t.nodes[leaf].parent = newParent

	if oldParent == InvalidID {
		// If no previous parent, inserting as root.
		t.root = newParent
	} else {
		// Reparent.
		if t.nodes[oldParent].childA == sibling {
			t.nodes[oldParent].childA = newParent
		} else {
			t.nodes[oldParent].childB = newParent
		}
	}

	// Fixup AABBs to the root.
	t.recomputeAABBsToRoot(t.nodes[leaf].parent)
}

// insertionCost computes the cost of inserting a new node with aabb as a
// sibling of node id.
func (t *Tree[T]) insertionCost(id ID, aabb geometry.AABB) float32 {
	n := &t.nodes[id]
	mergedAABB := geometry.Merged(aabb, n.aabb)

	// If the candidate is a leaf, choosing it terminates the descent, so
	// its full merged area counts. If it is an inner node, its own area
	// is factored out since the descent would continue into its subtree.
	if n.isLeaf() {
		return mergedAABB.SurfaceArea()
	}
	return mergedAABB.SurfaceArea() - n.aabb.SurfaceArea()
}

// removeLeafNode takes a leaf node out of the tree, promoting its sibling
// into their shared parent's slot. The node itself is not released.
func (t *Tree[T]) removeLeafNode(leaf ID) {
	// The root node is an easy case.
	if leaf == t.root {
		t.root = InvalidID
		return
	}

	// Get the parent, and its parent, then find our sibling.
	parent := t.nodes[leaf].parent
	parentParent := t.nodes[parent].parent
	var sibling ID
	if leaf == t.nodes[parent].childA {
		sibling = t.nodes[parent].childB
	} else {
		sibling = t.nodes[parent].childA
	}

	// If our parent has no parent, then it is the root, and we only need
	// to replace the root with our sibling.
	if parentParent == InvalidID {
		t.root = sibling
		t.nodes[sibling].parent = InvalidID
		t.releaseNode(parent)
		return
	}

	// Pop parent and remove.
	if t.nodes[parentParent].childA == parent {
		t.nodes[parentParent].childA = sibling
	} else {
		t.nodes[parentParent].childB = sibling
	}
	t.nodes[sibling].parent = parentParent
	t.releaseNode(parent)

	// Fixup AABBs to the root.
	t.recomputeAABBsToRoot(parentParent)
}

// recomputeAABBsToRoot walks from parent to the root, recomputing each
// AABB from its children. O(log n) for a balanced tree.
func (t *Tree[T]) recomputeAABBsToRoot(parent ID) {
	for parent != InvalidID {
		p := &t.nodes[parent]
		p.aabb = geometry.Merged(
			t.nodes[p.childA].aabb,
			t.nodes[p.childB].aabb,
		)
		parent = p.parent
	}
}
