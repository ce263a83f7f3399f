// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/orgchart/lexer"
)

// REF: https://www.geeksforgeeks.org/serialize-deserialize-n-ary-tree

// Serialization errors.
var (
	ErrUnserializableValue = errors.New("value cannot be serialized")
)

// Serialize transforms a Forest into a string.
//
// Each Node is written as its id followed by its children, each preceded by the splitter, & closed
// by the end marker; roots are separated by the splitter: "1,2)),3)".
func (f Forest[T]) Serialize(ctx context.Context, cfg *lexer.Config) (output string, err error) {
	cfg = cfg.Resolve()

	var buffer strings.Builder
	for index, root := range f {
		if index > 0 {
			buffer.WriteRune(cfg.Splitter)
		}

		if err = root.serialize(ctx, cfg, &buffer); err != nil {
			return
		}
	}

	output = buffer.String()
	if cfg.Debug {
		cfg.Logger.Debugf("serialized forest: %s", output)
	}

	return
}

// serialize performs the serialization grunt work.
func (n *Node[T]) serialize(ctx context.Context, cfg *lexer.Config, buffer *strings.Builder) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	value := fmt.Sprint(n.record.ID)
	if value == "" || strings.IndexFunc(value, func(r rune) bool { return !lexer.IsValue(r) }) > -1 {
		return fmt.Errorf("%w: (%s)", ErrUnserializableValue, value)
	}
	buffer.WriteString(value)

	for _, child := range n.children {
		buffer.WriteRune(cfg.Splitter)
		if err = child.serialize(ctx, cfg, buffer); err != nil {
			return
		}
	}
	buffer.WriteRune(cfg.EndMarker)

	return
}
