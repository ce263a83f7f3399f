// SPDX-License-Identifier: MIT
package orgchart

import (
	"errors"
	"fmt"

	"gitlab.com/fisherprime/orgchart/types"
)

// Relation validation errors.
var (
	ErrInvalidRelation = errors.New("invalid relation")

	ErrDuplicateID    = errors.New("duplicate id")
	ErrCyclicRelation = errors.New("cyclic manager reference")
)

const (
	unvisited = iota
	visiting
	visited
)

// Duplicates lists ids occurring more than once, in order of first repetition.
func Duplicates[T Constraint](relation Relation[T]) (ids types.Slice[T]) {
	ids = types.Slice[T]{}
	seen := make(map[T]struct{}, len(relation))
	for index := range relation {
		id := relation[index].ID
		if _, ok := seen[id]; ok {
			ids.UniqueAppend(id)
			continue
		}
		seen[id] = struct{}{}
	}

	return
}

// Orphans lists ids whose manager is absent from the Relation, in Relation order.
func Orphans[T Constraint](relation Relation[T]) (ids types.Slice[T]) {
	ids = types.Slice[T]{}
	idx := relation.index()
	for index := range relation {
		if !relation[index].HasManager() {
			continue
		}

		if _, ok := idx[relation[index].ManagerID]; !ok {
			ids = append(ids, relation[index].ID)
		}
	}

	return
}

// Cycles lists every manager cycle, each starting with its first member met in Relation order.
//
// Every Record's ancestor chain is walked at most once; the walk stops at a root, a dangling
// reference, or a previously walked Record.
func Cycles[T Constraint](relation Relation[T]) (cycles [][]T) {
	cycles = [][]T{}
	idx := relation.index()
	state := make([]int, len(relation))

	path := make([]int, 0)
	for start := range relation {
		path = path[:0]

		for current := start; ; {
			if state[current] == visited {
				break
			}

			if state[current] == visiting {
				cycles = append(cycles, cycleFrom(relation, path, current))
				break
			}

			state[current] = visiting
			path = append(path, current)

			record := relation[current]
			if !record.HasManager() {
				break
			}

			next, ok := idx[record.ManagerID]
			if !ok {
				break
			}
			current = next
		}

		for _, pos := range path {
			state[pos] = visited
		}
	}

	return
}

// cycleFrom extracts the ids of the path segment beginning at pos.
func cycleFrom[T Constraint](relation Relation[T], path []int, pos int) (cycle []T) {
	for index := range path {
		if path[index] != pos {
			continue
		}

		for _, member := range path[index:] {
			cycle = append(cycle, relation[member].ID)
		}
		break
	}

	return
}

// Validate reports duplicate ids & manager cycles.
//
// Dangling manager references are valid, BuildForest treats them as roots.
func Validate[T Constraint](relation Relation[T]) (err error) {
	var errs []error
	if dups := Duplicates(relation); len(dups) > 0 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrDuplicateID, dups))
	}

	if cycles := Cycles(relation); len(cycles) > 0 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrCyclicRelation, cycles))
	}

	if len(errs) > 0 {
		err = fmt.Errorf("%w: %w", ErrInvalidRelation, errors.Join(errs...))
	}

	return
}
