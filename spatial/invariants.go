package spatial

import (
	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/aukilabs/yggdrasil/geometry"
)

// CheckInvariants verifies the structural invariants of the tree:
// every internal node has exactly two children whose parent links point
// back to it and whose merged AABB equals the node's AABB, every leaf
// references its own live object slot, and node and object accounting
// (live + free == allocated) holds.
//
// O(n), intended for tests and soak tooling, not for hot paths.
func (t *Tree[T]) CheckInvariants() error {
	live := (uint32)(0)

	freeObjects := make(map[ID]bool, len(t.freeObjects))
	for _, id := range t.freeObjects {
		freeObjects[id] = true
	}
	liveObjects := make(map[ID]bool)

	if t.root != InvalidID {
		if t.nodes[t.root].parent != InvalidID {
			return errors.New("root has a parent").
				WithTag("root", t.root)
		}

		stack := []ID{t.root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			live++

			n := &t.nodes[id]
			if n.isLeaf() {
				if (int)(n.object) >= len(t.objects) {
					return errors.New("leaf references an object slot out of range").
						WithTag("node", id).
						WithTag("object", n.object)
				}
				if freeObjects[n.object] {
					return errors.New("leaf references an object slot on the free list").
						WithTag("node", id).
						WithTag("object", n.object)
				}
				if liveObjects[n.object] {
					return errors.New("object slot referenced by more than one leaf").
						WithTag("node", id).
						WithTag("object", n.object)
				}
				liveObjects[n.object] = true
				continue
			}

			if n.childA == InvalidID || n.childB == InvalidID {
				return errors.New("internal node does not have two children").
					WithTag("node", id)
			}
			if t.nodes[n.childA].parent != id || t.nodes[n.childB].parent != id {
				return errors.New("child parent link does not point back").
					WithTag("node", id)
			}

			merged := geometry.Merged(t.nodes[n.childA].aabb, t.nodes[n.childB].aabb)
			if !n.aabb.Equal(merged) {
				return errors.New("internal node aabb is not the merge of its children").
					WithTag("node", id)
			}

			stack = append(stack, n.childA, n.childB)
		}
	}

	if live+t.ComputeFreeNodeCount() != t.GetNodeCapacity() {
		return errors.New("node accounting mismatch").
			WithTag("live", live).
			WithTag("free", t.ComputeFreeNodeCount()).
			WithTag("capacity", t.GetNodeCapacity())
	}

	if len(liveObjects)+len(t.freeObjects) != len(t.objects) {
		return errors.New("object accounting mismatch").
			WithTag("live", len(liveObjects)).
			WithTag("free", len(t.freeObjects)).
			WithTag("capacity", len(t.objects))
	}

	return nil
}
