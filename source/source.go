// SPDX-License-Identifier: MIT

// Package source supplies & persists string-keyed orgchart Relations.
package source

import (
	"errors"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// Relation is the string-keyed Relation handled by this package.
	Relation = orgchart.Relation[string]

	// Record is the string-keyed Record handled by this package.
	Record = orgchart.Record[string]
)

// Source errors.
var (
	ErrMissingID = errors.New("record lacks an id")
)

var fLogger logrus.FieldLogger = logrus.New()

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { fLogger = l }

// newRecord builds a Record, dropping empty attribute values.
func newRecord(id, managerID string, attributes types.Attributes) Record {
	attrs := make(types.Attributes, len(attributes))
	for k, v := range attributes {
		if v == nil || v == "" {
			continue
		}
		attrs[k] = v
	}
	if len(attrs) < 1 {
		return orgchart.NewRecord(id, managerID)
	}

	return orgchart.NewRecord(id, managerID, attrs)
}
