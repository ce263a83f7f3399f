// SPDX-License-Identifier: MIT
package types

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

type (
	// Slice is an ordered collection of identifiers.
	Slice[T constraints.Ordered] []T
)

// Locate the index of val, -1 when absent.
func (sl *Slice[T]) Locate(val T) (resl int) {
	resl = -1

	for index := range *sl {
		if (*sl)[index] == val {
			resl = index
			return
		}
	}

	return
}

// UniqueAppend values absent from the Slice.
func (sl *Slice[T]) UniqueAppend(values ...T) {
	for index := range values {
		newValue := values[index]
		if sl.Locate(newValue) > -1 {
			continue
		}

		*sl = append(*sl, newValue)
	}
}

// Sort the Slice in ascending order.
func (sl *Slice[T]) Sort() {
	sort.Slice(*sl, func(i, j int) bool { return (*sl)[i] < (*sl)[j] })
}

// String is the fmt.Stringer implementation for Slice.
func (sl Slice[T]) String() string {
	var buffer strings.Builder
	buffer.WriteString("[")
	for index := range sl {
		if index > 0 {
			buffer.WriteString(",")
		}
		fmt.Fprint(&buffer, sl[index])
	}
	buffer.WriteString("]")

	return buffer.String()
}
