// SPDX-License-Identifier: MIT
package orgchart

// Remove returns a new Relation lacking target, its subordinates re-pointed to target's manager.
//
// Subordinates of a root target become roots. The input Relation & its Records are never
// modified; affected Records are copied before their ManagerID changes. Removing an absent id
// returns an equal copy of the Relation.
//
// Callers wanting an updated Forest rebuild it from the returned Relation.
func Remove[T Constraint](relation Relation[T], target Record[T], options ...Option[T]) (out Relation[T]) {
	o := newOptions(options)
	if relation == nil {
		o.report(Diagnostic[T]{Kind: DiagNotFound, ID: target.ID, ManagerID: target.ManagerID})
		return
	}

	removed := 0
	out = make(Relation[T], 0, len(relation))
	for _, record := range relation {
		if record.ID == target.ID {
			removed++
			continue
		}

		// record is a copy, the caller's Relation is left untouched.
		if record.HasManager() && record.ManagerID == target.ID {
			record.ManagerID = target.ManagerID
		}
		out = append(out, record)
	}

	if removed < 1 {
		o.report(Diagnostic[T]{Kind: DiagNotFound, ID: target.ID, ManagerID: target.ManagerID})
	}

	if o.cfg.Debug {
		o.cfg.Logger.Debugf("removed (%v) under (%v): %s", target.ID, target.ManagerID, o.dump(out))
	}

	return
}

// RemoveByID resolves id's manager from the Relation & performs Remove.
//
// An absent id yields an equal copy of the Relation.
func RemoveByID[T Constraint](relation Relation[T], id T, options ...Option[T]) Relation[T] {
	target, ok := relation.Find(id)
	if !ok {
		target = Record[T]{ID: id}
	}

	return Remove(relation, target, options...)
}
