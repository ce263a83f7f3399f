// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"gitlab.com/fisherprime/orgchart/lexer"
)

// Deserialization errors.
var (
	ErrInvalidSerialization = errors.New("invalid serialized forest")
	ErrExcessiveValues      = errors.New("the deserialization source has excessive values")
	ErrExcessiveEndMarkers  = errors.New("the deserialization source has excessive end markers")
)

// Deserialize transforms a serialized Forest into a Relation, in pre-order.
//
// Each Record's manager is its enclosing Node; descriptive attributes are not serialized.
func Deserialize[T Constraint](ctx context.Context, source io.RuneReader, cfg *lexer.Config) (relation Relation[T], err error) {
	cfg = cfg.Resolve()

	lexCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := lexer.New(append(cfg.Options(), lexer.WithSource(source))...)
	go l.Lex(lexCtx)

	var none T
	relation = Relation[T]{}
	for {
		var id lexer.ItemID
		if id, err = deserialize(ctx, l, none, &relation); err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidSerialization, err)
			return
		}

		switch id {
		case lexer.ItemEOF:
			if cfg.Debug {
				cfg.Logger.Debugf("deserialized relation: %+v", relation)
			}
			return
		case lexer.ItemEndMarker:
			// The counters settle once the Lexer stops.
			cancel()
			l.Drain()

			err = fmt.Errorf("%w: %w (%d values, %d end markers)", ErrInvalidSerialization,
				ErrExcessiveEndMarkers, l.ValueCounter(), l.EndCounter())
			return
		}
	}
}

// deserialize consumes one Item; a value is appended under manager along with its subordinates.
//
// The returned ItemID is the consumed Item's type.
func deserialize[T Constraint](ctx context.Context, l *lexer.Lexer, manager T, relation *Relation[T]) (id lexer.ItemID, err error) {
	select {
	case <-ctx.Done():
		return lexer.ItemError, ctx.Err()
	default:
	}

	item, proceed := l.Item()
	if !proceed {
		return lexer.ItemEOF, nil
	}

	switch item.ID {
	case lexer.ItemError:
		return item.ID, item.Err
	case lexer.ItemValue:
	default:
		return item.ID, nil
	}

	var value T
	if value, err = parseValue[T](item.Val); err != nil {
		return item.ID, err
	}
	*relation = append(*relation, Record[T]{ID: value, ManagerID: manager})

	for {
		var next lexer.ItemID
		if next, err = deserialize(ctx, l, value, relation); err != nil {
			return
		}

		switch next {
		case lexer.ItemEndMarker:
			return item.ID, nil
		case lexer.ItemEOF:
			return item.ID, fmt.Errorf("%w: (%d values, %d end markers)", ErrExcessiveValues,
				l.ValueCounter(), l.EndCounter())
		}
	}
}

// parseValue converts a lexed identifier into T; string kinds are taken verbatim.
func parseValue[T Constraint](raw []byte) (value T, err error) {
	rv := reflect.ValueOf(&value).Elem()
	if rv.Kind() == reflect.String {
		rv.SetString(string(raw))
		return
	}

	if err = json.Unmarshal(raw, &value); err != nil {
		err = fmt.Errorf("parse (%s): %w", raw, err)
	}

	return
}
