// SPDX-License-Identifier: MIT
package orgchart

import "fmt"

type (
	// DiagnosticKind identifies an input irregularity absorbed by a fallback behaviour.
	DiagnosticKind int

	// Diagnostic reports an input irregularity without altering the operation's result.
	Diagnostic[T Constraint] struct {
		Kind DiagnosticKind

		// ID of the affected Record.
		ID T

		// ManagerID of the affected Record, as found in the input.
		ManagerID T
	}

	// DiagnosticFunc receives Diagnostics; it is called synchronously, in input order.
	DiagnosticFunc[T Constraint] func(Diagnostic[T])
)

const (
	_ DiagnosticKind = iota

	// DiagOrphan marks a Record whose manager is absent from the Relation, treated as a root.
	DiagOrphan

	// DiagDuplicateID marks a repeated id; later Records shadow earlier ones for manager lookups.
	DiagDuplicateID

	// DiagUnreachable marks a Record not reachable from any root, i.e. part of or beneath a
	// manager cycle.
	DiagUnreachable

	// DiagNotFound marks a removal target absent from the Relation.
	DiagNotFound
)

// String implements fmt.Stringer for DiagnosticKind.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagOrphan:
		return "orphan"
	case DiagDuplicateID:
		return "duplicate id"
	case DiagUnreachable:
		return "unreachable"
	case DiagNotFound:
		return "not found"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// String implements fmt.Stringer for Diagnostic.
func (d Diagnostic[T]) String() string {
	return fmt.Sprintf("%s: id (%v) manager (%v)", d.Kind, d.ID, d.ManagerID)
}

// CollectDiagnostics returns a DiagnosticFunc appending to dst.
func CollectDiagnostics[T Constraint](dst *[]Diagnostic[T]) DiagnosticFunc[T] {
	return func(d Diagnostic[T]) { *dst = append(*dst, d) }
}
