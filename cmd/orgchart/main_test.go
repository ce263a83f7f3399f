// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/source"
)

const sampleYAML = `
- id: ceo
  name: Ada
- id: cto
  managerId: ceo
  name: Grace
- id: dev
  managerId: cto
- id: ops
  managerId: cfo
`

// run parses args against a fresh CLI & executes the selected command.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name("orgchart"), kong.Exit(func(int) { t.Fatalf("unexpected exit") }))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	app, err := newApp(context.Background(), &cli, &out)
	if err != nil {
		return "", err
	}

	err = kctx.Run(app)

	return out.String(), err
}

func sampleFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "org.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	return path
}

func TestTree(t *testing.T) {
	path := sampleFile(t)

	out, err := run(t, "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "Ada (ceo)\n  Grace (cto)\n    dev (dev)\nops (ops)\n", out)

	out, err = run(t, "--file", path, "tree", "--orphans")
	require.NoError(t, err)
	assert.Contains(t, out, "ops (ops) [manager cfo missing]\n")
}

func TestRemove(t *testing.T) {
	path := sampleFile(t)

	out, err := run(t, "--file", path, "remove", "cto")
	require.NoError(t, err)
	assert.Equal(t, "Ada (ceo)\n  dev (dev)\nops (ops)\n", out)

	// Without --write the file is untouched.
	relation, err := source.NewFile(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, relation, 4)

	_, err = run(t, "--file", path, "remove", "cto", "--write")
	require.NoError(t, err)

	relation, err = source.NewFile(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ceo", "dev", "ops"}, relation.IDs())

	dev, ok := relation.Find("dev")
	require.True(t, ok)
	assert.Equal(t, "ceo", dev.ManagerID)

	out, err = run(t, "--file", path, "remove", "cfo")
	require.NoError(t, err)
	assert.Equal(t, "no user (cfo), nothing removed\n", out)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "--file", sampleFile(t), "validate")
	require.NoError(t, err)
	assert.Equal(t, "orphan: ops (treated as root)\n4 records, valid\n", out)

	path := filepath.Join(t.TempDir(), "cycle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {id: a, managerId: b}\n- {id: b, managerId: a}\n"), 0o600))

	_, err = run(t, "--file", path, "validate")
	assert.ErrorIs(t, err, orgchart.ErrCyclicRelation)

	_, err = run(t, "--file", path, "--strict")
	assert.ErrorIs(t, err, orgchart.ErrCyclicRelation)
}

func TestExportImport(t *testing.T) {
	path := sampleFile(t)

	out, err := run(t, "--file", path, "export")
	require.NoError(t, err)
	assert.Equal(t, "ceo,cto,dev))),ops)\n", out)

	out, err = run(t, "--file", path, "import", "ceo,dev),ops))")
	require.NoError(t, err)
	assert.Equal(t, "imported 3 records\n", out)

	out, err = run(t, "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "Ada (ceo)\n  dev (dev)\n  ops (ops)\n", out)
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "org.db")

	relation, err := source.NewFile(sampleFile(t)).Fetch(context.Background())
	require.NoError(t, err)

	db, err := source.OpenSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Save(context.Background(), relation))
	require.NoError(t, db.Close())

	out, err := run(t, "--db", dbPath, "remove", "ceo", "--write")
	require.NoError(t, err)
	assert.Equal(t, "Grace (cto)\n  dev (dev)\nops (ops)\n", out)

	out, err = run(t, "--db", dbPath, "export")
	require.NoError(t, err)
	assert.Equal(t, "cto,dev)),ops)\n", out)
}

func TestMissingSource(t *testing.T) {

	_, err := run(t, "validate")
	assert.Error(t, err)

	_, err = run(t, "--file", "a.yaml", "--db", "b.db", "validate")
	assert.Error(t, err)
}
