// SPDX-License-Identifier: MIT
package types

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type (
	// Attributes carries a record's descriptive fields (name, contact info, image reference).
	//
	// The hierarchy never interprets these values; they travel with the record unchanged.
	Attributes map[string]any
)

const (
	// ReadErrFmt is the format used when an attribute cannot be read as the requested type.
	ReadErrFmt = "failed to read (%s): %w"

	// Well-known attribute keys.
	AttrName  = "name"
	AttrEmail = "email"
	AttrImage = "image"
)

// Attribute errors.
var (
	ErrInvalidType = errors.New("invalid data type")
)

var fLogger logrus.FieldLogger = logrus.New()

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { fLogger = l }

// Clone returns a shallow copy of the Attributes.
func (a Attributes) Clone() (out Attributes) {
	if a == nil {
		return
	}

	out = make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}

	return
}

// Get value from Attributes as a string.
func (a Attributes) Get(key string) (out string, ok bool) {
	var val any
	if val, ok = a[key]; ok && val != nil {
		out = fmt.Sprint(val)
	}

	return
}

// GetValString reads a string attribute; a missing key yields an empty string.
func (a Attributes) GetValString(key string) (strVal string, err error) {
	val, ok := a[key]
	if !ok || val == nil {
		return
	}

	if strVal, ok = val.(string); !ok {
		fLogger.Debugf("attribute %s has type %T", key, val)
		err = fmt.Errorf(ReadErrFmt, key, ErrInvalidType)
	}

	return
}

// Name obtains the AttrName attribute, falling back to fallback when unset.
func (a Attributes) Name(fallback string) string {
	if name, ok := a.Get(AttrName); ok && name != "" {
		return name
	}

	return fallback
}

// Merge another Attributes into the current one, overwriting existing keys.
func (a *Attributes) Merge(data Attributes) {
	if *a == nil {
		*a = make(Attributes, len(data))
	}

	for k, v := range data {
		(*a)[k] = v
	}
}
