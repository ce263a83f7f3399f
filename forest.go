// SPDX-License-Identifier: MIT
package orgchart

type (
	// Forest is the ordered sequence of root Nodes derived from a Relation.
	Forest[T Constraint] []*Node[T]
)

// BuildForest converts a Relation into a Forest.
//
// Roots are Records lacking a manager or referencing an absent one, in Relation order; every
// other Record is nested under its manager, siblings in Relation order. The Relation is read
// once to index ids & once to attach Nodes; it is never modified.
func BuildForest[T Constraint](relation Relation[T], options ...Option[T]) (forest Forest[T]) {
	o := newOptions(options)
	if o.cfg.Debug {
		o.cfg.Logger.Debugf("build forest from: %s", o.dump(relation))
	}

	// Every Record gets its own Node, the index resolves manager references.
	nodes := make([]*Node[T], len(relation))
	index := make(map[T]*Node[T], len(relation))
	for pos := range relation {
		node := newNode(relation[pos])
		nodes[pos] = node

		id := relation[pos].ID
		if _, ok := index[id]; ok {
			o.report(Diagnostic[T]{Kind: DiagDuplicateID, ID: id, ManagerID: relation[pos].ManagerID})
		}
		index[id] = node
	}

	forest = make(Forest[T], 0)
	for pos, node := range nodes {
		record := relation[pos]
		if !record.HasManager() {
			forest = append(forest, node)
			continue
		}

		parent, ok := index[record.ManagerID]
		if !ok {
			// Dangling reference.
			o.report(Diagnostic[T]{Kind: DiagOrphan, ID: record.ID, ManagerID: record.ManagerID})
			forest = append(forest, node)
			continue
		}

		parent.children = append(parent.children, node)
	}

	if o.diagnose != nil || o.cfg.Debug {
		forest.reportUnreachable(o, relation, nodes)
	}

	if o.cfg.Debug {
		o.cfg.Logger.Debugf("built forest: %s", o.dump(forest.ids()))
	}

	return
}

// reportUnreachable reports Nodes the Forest cannot reach, which only manager cycles produce.
func (f Forest[T]) reportUnreachable(o *Options[T], relation Relation[T], nodes []*Node[T]) {
	reached := make(map[*Node[T]]struct{}, len(nodes))

	stack := make([]*Node[T], len(f))
	copy(stack, f)
	for len(stack) > 0 {
		var top *Node[T]
		top, stack = stack[len(stack)-1], stack[:len(stack)-1]
		if _, ok := reached[top]; ok {
			continue
		}

		reached[top] = struct{}{}
		stack = append(stack, top.children...)
	}

	if len(reached) == len(nodes) {
		return
	}

	for pos, node := range nodes {
		if _, ok := reached[node]; !ok {
			o.report(Diagnostic[T]{Kind: DiagUnreachable, ID: relation[pos].ID, ManagerID: relation[pos].ManagerID})
		}
	}
}

// Count the Nodes held by the Forest, descendants included.
func (f Forest[T]) Count() (count int) {
	for _, root := range f {
		count += root.Len()
	}

	return
}

// Roots lists the root ids in order.
func (f Forest[T]) Roots() []T { return List[T](f).Values() }

// ids renders the Forest as nested ids for debug messages.
func (f Forest[T]) ids() (out []any) {
	out = make([]any, len(f))
	for index, root := range f {
		if root.IsLeaf() {
			out[index] = root.record.ID
			continue
		}

		out[index] = map[T][]any{root.record.ID: Forest[T](root.children).ids()}
	}

	return
}
