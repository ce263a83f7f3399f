// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines the markers shared by forest serialization & the Lexer.
	Config struct {
		Logger    logrus.FieldLogger
		EndMarker rune
		Debug     bool
		Splitter  rune
	}
)

const (
	// DefaultEndMarker a `rune` indicating the end of a node's children.
	DefaultEndMarker = ')'

	// DefaultSplitter is the character separating serialized nodes.
	DefaultSplitter = ','

	emptyRune rune = 0
)

// DefaultConfig obtains a Config populated with the default markers.
func DefaultConfig() *Config {
	return &Config{
		EndMarker: DefaultEndMarker,
		Splitter:  DefaultSplitter,
		Logger:    logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.EndMarker == emptyRune {
		c.EndMarker = DefaultEndMarker
	}
	if c.Splitter == emptyRune {
		c.Splitter = DefaultSplitter
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// Resolve obtains a validated copy of the Config, DefaultConfig for a nil one.
//
// The receiver is left untouched.
func (c *Config) Resolve() *Config {
	if c == nil {
		return DefaultConfig()
	}

	resolved := *c
	resolved.Validate()

	return &resolved
}

// Options converts the Config into Lexer options, defaults filling the gaps.
func (c *Config) Options() []Option {
	cfg := c.Resolve()

	return []Option{
		WithDebug(cfg.Debug),
		WithEndMarker(cfg.EndMarker),
		WithSplitter(cfg.Splitter),
		WithLogger(cfg.Logger),
	}
}
