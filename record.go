// SPDX-License-Identifier: MIT
package orgchart

import (
	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// Record is a flat entity optionally referencing its manager.
	Record[T Constraint] struct {
		// ID uniquely identifies the Record within a Relation.
		ID T

		// ManagerID references another Record's ID; the zero value means "no manager".
		ManagerID T

		// Attributes carries descriptive fields, opaque to the hierarchy.
		Attributes types.Attributes
	}

	// Relation is the ordered, flat sequence of Records.
	Relation[T Constraint] []Record[T]
)

// NewRecord instantiates a Record.
func NewRecord[T Constraint](id, managerID T, attributes ...types.Attributes) Record[T] {
	r := Record[T]{ID: id, ManagerID: managerID}
	for _, attrs := range attributes {
		r.Attributes.Merge(attrs)
	}

	return r
}

// Value obtains the Record's ID.
func (r Record[T]) Value() T { return r.ID }

// Parent obtains the Record's ManagerID.
func (r Record[T]) Parent() T { return r.ManagerID }

// HasManager reports whether the Record references a manager.
func (r Record[T]) HasManager() bool {
	var none T
	return r.ManagerID != none
}

// Clone returns a copy of the Relation; Records are values & are copied with it.
func (rel Relation[T]) Clone() Relation[T] {
	if rel == nil {
		return nil
	}

	out := make(Relation[T], len(rel))
	copy(out, rel)

	return out
}

// IDs lists the Relation's ids in order.
func (rel Relation[T]) IDs() []T {
	ids := make([]T, len(rel))
	for index := range rel {
		ids[index] = rel[index].ID
	}

	return ids
}

// Find the first Record with the given id.
func (rel Relation[T]) Find(id T) (record Record[T], ok bool) {
	for index := range rel {
		if rel[index].ID == id {
			return rel[index], true
		}
	}

	return
}

// index maps ids to their position in the Relation, last write wins.
func (rel Relation[T]) index() map[T]int {
	idx := make(map[T]int, len(rel))
	for index := range rel {
		idx[rel[index].ID] = index
	}

	return idx
}
