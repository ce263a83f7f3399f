// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"sort"

	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// Node is a Record augmented with its ordered subordinates.
	//
	// Nodes are produced by BuildForest & treated as read-only; rebuild instead of patching.
	Node[T Constraint] struct {
		record Record[T]

		// children holds the subordinates in Relation order.
		children List[T]
	}

	// List is a type wrapper for []*Node.
	List[T Constraint] []*Node[T]

	// LevelList groups Nodes by depth.
	LevelList[T Constraint] []List[T]
)

func newNode[T Constraint](record Record[T]) *Node[T] {
	return &Node[T]{record: record, children: List[T]{}}
}

// Record obtains the wrapped Record.
func (n *Node[T]) Record() Record[T] { return n.record }

// Value obtains the Node's id.
func (n *Node[T]) Value() T { return n.record.ID }

// ManagerID obtains the wrapped Record's manager reference, as found in the Relation.
func (n *Node[T]) ManagerID() T { return n.record.ManagerID }

// Attributes obtains the wrapped Record's descriptive fields.
func (n *Node[T]) Attributes() types.Attributes { return n.record.Attributes }

// Children lists the immediate subordinates in Relation order.
func (n *Node[T]) Children() List[T] {
	children := make(List[T], len(n.children))
	copy(children, n.children)

	return children
}

// Child retrieves an immediate subordinate.
func (n *Node[T]) Child(id T) (child *Node[T], ok bool) {
	for _, child = range n.children {
		if child.record.ID == id {
			return child, true
		}
	}

	return nil, false
}

// IsLeaf reports whether the Node lacks subordinates.
func (n *Node[T]) IsLeaf() bool { return len(n.children) < 1 }

// Len counts the Node & all its descendants.
func (n *Node[T]) Len() (count int) {
	count = 1
	for _, child := range n.children {
		count += child.Len()
	}

	return
}

// AllChildren lists immediate and children-of children for a Node, in level order.
func (n *Node[T]) AllChildren(ctx context.Context) (children List[T], err error) {
	if children, err = (Forest[T]{n}).AllNodes(ctx); err != nil {
		return
	}

	// Omit self from the list.
	if children = children[1:]; len(children) < 1 {
		err = ErrNoChildren
	}

	return
}

// AllChildrenByLevel lists immediate and children-of children for a Node by level.
func (n *Node[T]) AllChildrenByLevel(ctx context.Context) (children LevelList[T], err error) {
	if children, err = (Forest[T]{n}).Levels(ctx); err != nil {
		return
	}

	// Omit self from the list.
	if children = children[1:]; len(children) < 1 {
		err = ErrNoChildren
	}

	return
}

// Len is the number of elements in the collection.
func (l *List[T]) Len() int { return len(*l) }

// Less reports whether the element with index i must sort before the element with index j.
func (l *List[T]) Less(i int, j int) bool { return (*l)[i].record.ID < (*l)[j].record.ID }

// Swap swaps the elements with indexes i and j.
func (l *List[T]) Swap(i int, j int) { (*l)[i], (*l)[j] = (*l)[j], (*l)[i] }

// Values returns the ids of a List, optionally sorted.
func (l List[T]) Values(sortValues ...bool) (values []T) {
	values = make([]T, len(l))
	for index := range l {
		values[index] = l[index].record.ID
	}

	if len(sortValues) > 0 && sortValues[0] {
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	}

	return
}

// Values returns an array-of-arrays of ids for a LevelList.
func (l LevelList[T]) Values(sortValues ...bool) (values [][]T) {
	values = make([][]T, len(l))
	for index := range l {
		values[index] = l[index].Values(sortValues...)
	}

	return
}
