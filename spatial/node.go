package spatial

import (
	"math"

	"github.com/aukilabs/yggdrasil/geometry"
)

// ID references a tree node. Ids returned by Add stay valid across arena
// growth, which is why nodes reference each other by index rather than by
// pointer.
type ID uint32

// InvalidID marks an absent reference: no parent (root), no object
// (internal node), or no child (leaf).
const InvalidID ID = math.MaxUint32

// node is a record in the tree arena. A node is a leaf exactly when object
// is a valid id; childA and childB are only meaningful on internal nodes.
//
// While a node sits on the free list, its parent field doubles as the link
// to the next free node.
type node struct {
	aabb   geometry.AABB
	parent ID
	object ID
	childA ID
	childB ID
}

// isLeaf reports whether the node carries an object reference.
func (n *node) isLeaf() bool {
	return n.object != InvalidID
}

// reset clears all state of the node, except for the AABB.
func (n *node) reset() {
	n.parent = InvalidID
	n.object = InvalidID
	n.childA = InvalidID
	n.childB = InvalidID
}
