// SPDX-License-Identifier: MIT

// Command orgchart loads a Relation of users, prints its hierarchy & removes users while keeping
// their subordinates attached.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/source"
	"gitlab.com/fisherprime/orgchart/types"
)

// CLI defines the orgchart commands & global flags.
type CLI struct {
	File   string `help:"YAML/JSON relation file." env:"ORGCHART_FILE" type:"path" xor:"source"`
	DB     string `help:"SQLite relation database." env:"ORGCHART_DB" type:"path" xor:"source"`
	Debug  bool   `help:"Enable debug logging." env:"ORGCHART_DEBUG"`
	Strict bool   `help:"Reject relations with duplicate ids or manager cycles."`

	Tree     TreeCmd     `cmd:"" default:"1" help:"Print the hierarchy."`
	Remove   RemoveCmd   `cmd:"" help:"Remove a user, re-parenting their subordinates."`
	Validate ValidateCmd `cmd:"" help:"Report duplicate ids, manager cycles & orphans."`
	Export   ExportCmd   `cmd:"" help:"Print the hierarchy in its serialized form."`
	Import   ImportCmd   `cmd:"" help:"Replace the relation with a serialized hierarchy."`
}

// App carries the dependencies shared by commands.
type App struct {
	ctx    context.Context
	cfg    *orgchart.Config
	out    io.Writer
	strict bool

	file string
	db   string
}

func main() {
	cli := CLI{}
	kctx := kong.Parse(&cli,
		kong.Name("orgchart"),
		kong.Description("Navigate & edit a manager hierarchy."),
		kong.UsageOnError(),
	)

	app, err := newApp(context.Background(), &cli, os.Stdout)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(kctx.Run(app))
}

func newApp(ctx context.Context, cli *CLI, out io.Writer) (*App, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cli.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	orgchart.SetLogger(logger)
	source.SetLogger(logger)
	types.SetLogger(logger)

	if cli.File == "" && cli.DB == "" {
		return nil, fmt.Errorf("one of --file or --db is required")
	}

	return &App{
		ctx:    ctx,
		cfg:    &orgchart.Config{Logger: logger, Debug: cli.Debug},
		out:    out,
		strict: cli.Strict,
		file:   cli.File,
		db:     cli.DB,
	}, nil
}

// backend is a Source that can persist updates.
type backend interface {
	orgchart.Source[string]
	orgchart.Sink[string]
}

// open returns the configured backend & a function releasing it.
func (a *App) open() (backend, func(), error) {
	if a.file != "" {
		return source.NewFile(a.file), func() {}, nil
	}

	db, err := source.OpenSQLite(a.db)
	if err != nil {
		return nil, nil, err
	}

	return db, func() { _ = db.Close() }, nil
}

// store opens the backend & loads it into a Store.
func (a *App) store(options ...orgchart.StoreOption[string]) (*orgchart.Store[string], backend, func(), error) {
	b, release, err := a.open()
	if err != nil {
		return nil, nil, nil, err
	}

	options = append([]orgchart.StoreOption[string]{
		orgchart.WithStoreConfig[string](a.cfg),
		orgchart.WithStrict[string](a.strict),
	}, options...)

	s, err := orgchart.NewStore(options...)
	if err != nil {
		release()
		return nil, nil, nil, err
	}

	cleanup := func() {
		s.Close()
		release()
	}

	if err = s.Load(a.ctx, b); err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return s, b, cleanup, nil
}
