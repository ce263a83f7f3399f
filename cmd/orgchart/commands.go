// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"strings"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/lexer"
)

// TreeCmd prints the hierarchy.
type TreeCmd struct {
	Orphans bool `help:"Mark users whose manager is missing."`
}

// Run prints the hierarchy.
func (c *TreeCmd) Run(app *App) error {
	var orphans map[string]struct{}
	options := []orgchart.StoreOption[string]{}
	if c.Orphans {
		orphans = make(map[string]struct{})
		options = append(options, orgchart.WithStoreDiagnostics(func(d orgchart.Diagnostic[string]) {
			if d.Kind == orgchart.DiagOrphan {
				orphans[d.ID] = struct{}{}
			}
		}))
	}

	s, _, cleanup, err := app.store(options...)
	if err != nil {
		return err
	}
	defer cleanup()

	render(app.out, s.Forest(), orphans)

	return nil
}

// RemoveCmd removes a user.
type RemoveCmd struct {
	ID    string `arg:"" help:"Id of the user to remove."`
	Write bool   `help:"Persist the updated relation."`
}

// Run removes the user & prints the rebuilt hierarchy.
func (c *RemoveCmd) Run(app *App) error {
	s, b, cleanup, err := app.store()
	if err != nil {
		return err
	}
	defer cleanup()

	removed, err := s.RemoveByID(app.ctx, c.ID)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(app.out, "no user (%s), nothing removed\n", c.ID)
		return nil
	}

	render(app.out, s.Forest(), nil)

	if !c.Write {
		return nil
	}

	return b.Save(app.ctx, s.Relation())
}

// ValidateCmd reports relation irregularities.
type ValidateCmd struct{}

// Run reports orphans & fails on duplicate ids or manager cycles.
func (c *ValidateCmd) Run(app *App) error {
	b, release, err := app.open()
	if err != nil {
		return err
	}
	defer release()

	relation, err := b.Fetch(app.ctx)
	if err != nil {
		return err
	}

	for _, id := range orgchart.Orphans(relation) {
		fmt.Fprintf(app.out, "orphan: %s (treated as root)\n", id)
	}

	if err = orgchart.Validate(relation); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%d records, valid\n", len(relation))

	return nil
}

// ExportCmd prints the serialized hierarchy.
type ExportCmd struct{}

// Run prints the serialized hierarchy.
func (c *ExportCmd) Run(app *App) error {
	s, _, cleanup, err := app.store()
	if err != nil {
		return err
	}
	defer cleanup()

	output, err := s.Forest().Serialize(app.ctx, &lexer.Config{Logger: app.cfg.Logger, Debug: app.cfg.Debug})
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, output)

	return nil
}

// ImportCmd replaces the relation with a serialized hierarchy.
type ImportCmd struct {
	Serialized string `arg:"" help:"Serialized hierarchy, e.g. 1,2)),3)."`
}

// Run parses the hierarchy & saves it, carrying over attributes of known ids.
func (c *ImportCmd) Run(app *App) error {
	b, release, err := app.open()
	if err != nil {
		return err
	}
	defer release()

	relation, err := orgchart.Deserialize[string](app.ctx, strings.NewReader(c.Serialized),
		&lexer.Config{Logger: app.cfg.Logger, Debug: app.cfg.Debug})
	if err != nil {
		return err
	}

	// A missing backend simply has no attributes to carry over.
	if previous, fetchErr := b.Fetch(app.ctx); fetchErr == nil {
		relation = carryAttributes(relation, previous)
	} else {
		app.cfg.Logger.Debugf("import without previous relation: %v", fetchErr)
	}

	if app.strict {
		if err = orgchart.Validate(relation); err != nil {
			return err
		}
	}

	if err = b.Save(app.ctx, relation); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "imported %d records\n", len(relation))

	return nil
}

func carryAttributes(relation, previous orgchart.Relation[string]) orgchart.Relation[string] {
	for index := range relation {
		if record, ok := previous.Find(relation[index].ID); ok {
			relation[index].Attributes = record.Attributes
		}
	}

	return relation
}

// render writes the Forest as an indented outline.
func render(w io.Writer, forest orgchart.Forest[string], orphans map[string]struct{}) {
	if len(forest) < 1 {
		fmt.Fprintln(w, "(empty)")
		return
	}

	for _, root := range forest {
		renderNode(w, root, 0, orphans)
	}
}

func renderNode(w io.Writer, node *orgchart.Node[string], depth int, orphans map[string]struct{}) {
	line := fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", depth), node.Attributes().Name(node.Value()), node.Value())
	if _, ok := orphans[node.Value()]; ok {
		line += " [manager " + node.ManagerID() + " missing]"
	}
	fmt.Fprintln(w, line)

	for _, child := range node.Children() {
		renderNode(w, child, depth+1, orphans)
	}
}
