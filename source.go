// SPDX-License-Identifier: MIT
package orgchart

import "context"

type (
	// Source supplies the Relation, e.g. from a file, database or network fetch.
	//
	// The returned Relation is treated as read-only.
	Source[T Constraint] interface {
		Fetch(ctx context.Context) (Relation[T], error)
	}

	// SourceFunc adapts a function into a Source.
	SourceFunc[T Constraint] func(ctx context.Context) (Relation[T], error)

	// Sink persists a Relation.
	Sink[T Constraint] interface {
		Save(ctx context.Context, relation Relation[T]) error
	}
)

// Fetch calls f.
func (f SourceFunc[T]) Fetch(ctx context.Context) (Relation[T], error) { return f(ctx) }

// Static returns a Source supplying a copy of relation.
func Static[T Constraint](relation Relation[T]) Source[T] {
	return SourceFunc[T](func(context.Context) (Relation[T], error) { return relation.Clone(), nil })
}
