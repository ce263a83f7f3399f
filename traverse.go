// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"fmt"
)

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal

type (
	// TraverseComm communicates a walked Node between a Forest's Walk & its callers.
	TraverseComm[T Constraint] struct {
		node   *Node[T]
		parent *Node[T]

		// newPeers marks the first Node of a level.
		newPeers bool
	}
)

const (
	traverseBufferSize = 10
)

// Node obtains the walked Node.
func (t TraverseComm[T]) Node() *Node[T] { return t.node }

// Parent obtains the walked Node's parent, nil for roots.
func (t TraverseComm[T]) Parent() *Node[T] { return t.parent }

// NewPeers reports whether the walked Node starts a new level.
func (t TraverseComm[T]) NewPeers() bool { return t.newPeers }

// Walk performs breadth-first traversal on a Forest, pushing its Nodes to traverseChan & closing it
// once done.
//
// A context.Context is used to terminate the walk operation.
func (f Forest[T]) Walk(ctx context.Context, traverseChan chan<- TraverseComm[T]) {
	defer close(traverseChan)

	type entry struct{ node, parent *Node[T] }

	queue := make([]entry, 0, len(f))
	for _, root := range f {
		queue = append(queue, entry{node: root})
	}

	for len(queue) > 0 {
		newPeers := true
		for queueLen := len(queue); queueLen > 0; queueLen-- {
			var front entry
			front, queue = queue[0], queue[1:]

			select {
			case <-ctx.Done():
				return
			case traverseChan <- TraverseComm[T]{node: front.node, parent: front.parent, newPeers: newPeers}:
			}
			newPeers = false

			for _, child := range front.node.children {
				queue = append(queue, entry{node: child, parent: front.node})
			}
		}
	}
}

// walk drains a Walk, calling fn for each Node until it returns false.
func (f Forest[T]) walk(ctx context.Context, fn func(TraverseComm[T]) bool) error {
	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	traverseChan := make(chan TraverseComm[T], traverseBufferSize)
	go f.Walk(walkCtx, traverseChan)

	for resl := range traverseChan {
		if !fn(resl) {
			cancel()
			// Drain until Walk observes the cancellation.
			for range traverseChan {
			}
			return nil
		}
	}

	return ctx.Err()
}

// AllNodes lists every Node of the Forest in level order.
func (f Forest[T]) AllNodes(ctx context.Context) (nodes List[T], err error) {
	nodes = make(List[T], 0)
	err = f.walk(ctx, func(resl TraverseComm[T]) bool {
		nodes = append(nodes, resl.node)
		return true
	})

	return
}

// Levels lists every Node of the Forest grouped by depth.
func (f Forest[T]) Levels(ctx context.Context) (levels LevelList[T], err error) {
	levels = make(LevelList[T], 0)
	err = f.walk(ctx, func(resl TraverseComm[T]) bool {
		if resl.newPeers {
			levels = append(levels, List[T]{})
		}
		levels[len(levels)-1] = append(levels[len(levels)-1], resl.node)

		return true
	})

	return
}

// Leaves lists the Nodes lacking subordinates, in level order.
func (f Forest[T]) Leaves(ctx context.Context) (leaves List[T], err error) {
	leaves = make(List[T], 0)
	if err = f.walk(ctx, func(resl TraverseComm[T]) bool {
		if resl.node.IsLeaf() {
			leaves = append(leaves, resl.node)
		}
		return true
	}); err != nil {
		return
	}

	if len(leaves) < 1 {
		err = ErrNoLeaves
	}

	return
}

// Locate searches for an id & returns its Node.
func (f Forest[T]) Locate(ctx context.Context, id T) (node *Node[T], err error) {
	node, _, err = f.locate(ctx, id)
	return
}

// ParentTo returns the parent Node for some Node identified by its id; nil for roots.
func (f Forest[T]) ParentTo(ctx context.Context, id T) (parent *Node[T], err error) {
	_, parent, err = f.locate(ctx, id)
	return
}

func (f Forest[T]) locate(ctx context.Context, id T) (node, parent *Node[T], err error) {
	if err = f.walk(ctx, func(resl TraverseComm[T]) bool {
		if resl.node.record.ID != id {
			return true
		}

		node, parent = resl.node, resl.parent
		return false
	}); err != nil {
		return
	}

	if node == nil {
		err = fmt.Errorf("(%v) %w", id, ErrNotFound)
	}

	return
}
