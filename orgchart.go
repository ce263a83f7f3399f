// SPDX-License-Identifier: MIT

// Package orgchart converts a flat, manager-referencing relation of records into a forest & removes
// records while re-parenting their subordinates.
//
// The relation is the source of truth; a Forest is a derived, disposable view rebuilt from it
// whenever the relation changes.
package orgchart

import (
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
//
// The zero value of a Constraint type doubles as the "no manager" sentinel.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Config defines logging options shared by the builder, remover & Store.
	Config struct {
		// Logger for orgchart messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Options holds the per-call configuration of BuildForest & Remove.
	Options[T Constraint] struct {
		cfg      *Config
		diagnose DiagnosticFunc[T]
	}

	// Option defines the functional option type for BuildForest & Remove.
	Option[T Constraint] func(*Options[T])
)

// Errors encountered when querying a Forest.
var (
	ErrNotFound   = errors.New("not found")
	ErrNoChildren = errors.New("lacks children")
	ErrNoLeaves   = errors.New("lacks leaves")
)

var defConfig = DefConfig()

// DefConfig obtains the package's default Config.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// SetLogger configures the logrus.FieldLogger used when no Config is supplied.
func SetLogger(l logrus.FieldLogger) { defConfig.Logger = l }

// WithConfig configures the Config.
func WithConfig[T Constraint](cfg *Config) Option[T] {
	return func(o *Options[T]) {
		if cfg != nil {
			o.cfg = cfg
		}
	}
}

// WithDiagnostics registers a handler for silently absorbed input irregularities.
func WithDiagnostics[T Constraint](fn DiagnosticFunc[T]) Option[T] {
	return func(o *Options[T]) { o.diagnose = fn }
}

func newOptions[T Constraint](options []Option[T]) *Options[T] {
	o := &Options[T]{cfg: defConfig}
	for _, opt := range options {
		opt(o)
	}

	o.cfg = o.cfg.resolve()

	return o
}

// resolve obtains a copy of the Config with a Logger set; the receiver is left untouched.
func (c *Config) resolve() *Config {
	if c.Logger != nil {
		return c
	}

	resolved := *c
	resolved.Logger = logrus.New()

	return &resolved
}

// report forwards a Diagnostic to the registered handler, logging it in debug mode.
func (o *Options[T]) report(d Diagnostic[T]) {
	if o.cfg.Debug {
		o.cfg.Logger.WithFields(logrus.Fields{"kind": d.Kind, "id": d.ID, "manager": d.ManagerID}).
			Debug("hierarchy diagnostic")
	}

	if o.diagnose != nil {
		o.diagnose(d)
	}
}

// dump renders a value for debug messages, skipping the work when not debugging.
func (o *Options[T]) dump(v any) string {
	if !o.cfg.Debug {
		return ""
	}

	return spew.Sprint(v)
}
