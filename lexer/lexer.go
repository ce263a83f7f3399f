// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://dave.cheney.net/high-performance-json.html

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// stateFn lexes part of the input, returning the state to run next; nil stops the Lexer.
	stateFn func(context.Context) stateFn

	// Lexer tokenizes a serialized forest into Items.
	//
	// Lex runs the state machine & is meant for its own goroutine; Item & Drain consume its
	// output. The counters are only safe to read once the Item channel is closed.
	Lexer struct {
		Debug     bool
		endMarker rune
		splitter  rune
		logger    logrus.FieldLogger

		items chan Item
		src   io.RuneReader

		// pending holds runes read from src; pending[:pos] makes up the token being lexed.
		pending []rune
		pos     int

		valueCounter int
		endCounter   int
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

const (
	itemBufferSize = 10
	readAhead      = 16
)

// Lexing errors.
var (
	ErrUnknownTokens = errors.New("unknown tokens")
)

var (
	whitespace = [utf8.RuneSelf]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	valueSymbols = [utf8.RuneSelf]bool{
		'_': true,
		'-': true,
	}
)

// New creates a Lexer reading from the configured source, an empty one by default.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		endMarker: DefaultEndMarker,
		splitter:  DefaultSplitter,
		logger:    logrus.New(),

		items:   make(chan Item, itemBufferSize),
		src:     strings.NewReader(""),
		pending: make([]rune, 0, readAhead),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.Debug = debug } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option { return func(l *Lexer) { l.endMarker = r } }

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option { return func(l *Lexer) { l.splitter = r } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.src = source } }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured value splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// ValueCounter obtains the number of lexed values.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter obtains the number of lexed end markers.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Lex runs the state machine until the input is exhausted, an error occurs or ctx is cancelled,
// closing the Item channel on return.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.items)

	for state := l.lexBetween; state != nil; {
		if ctx.Err() != nil {
			return
		}
		state = state(ctx)
	}
}

// Item obtains the next lexed Item; ok is false once the Lexer has stopped.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.items
	return
}

// Drain discards Items until the Lexer stops.
//
// Cancel the context passed to Lex first, otherwise Drain lexes the remaining input.
func (l *Lexer) Drain() {
	for range l.items {
	}
}

// lexBetween skips whitespace & dispatches on the rune that follows.
func (l *Lexer) lexBetween(ctx context.Context) stateFn {
	if !l.acceptWhile(IsWhitespace) {
		l.emitEOF(ctx)
		return nil
	}
	l.discard()

	r, _ := l.next()
	switch {
	case r == l.endMarker:
		l.endCounter++
		l.emit(ctx, ItemEndMarker)
	case r == l.splitter:
		l.emit(ctx, ItemSplitter)
	case IsValue(r):
		return l.lexValue
	default:
		l.send(ctx, Item{ID: ItemError, Err: fmt.Errorf("%w: %q", ErrUnknownTokens, r)})
		return nil
	}

	return l.lexBetween
}

// lexValue consumes the remainder of a node identifier.
func (l *Lexer) lexValue(ctx context.Context) stateFn {
	more := l.acceptWhile(IsValue)

	l.valueCounter++
	l.emit(ctx, ItemValue)

	if !more {
		l.emitEOF(ctx)
		return nil
	}

	return l.lexBetween
}

// next consumes a rune, ok is false at the end of the source.
func (l *Lexer) next() (r rune, ok bool) {
	if l.pos >= len(l.pending) && !l.fill() {
		return
	}

	r, ok = l.pending[l.pos], true
	l.pos++

	return
}

// fill reads ahead from the source, reporting whether anything was read.
func (l *Lexer) fill() bool {
	read := 0
	for ; read < readAhead; read++ {
		r, _, err := l.src.ReadRune()
		if err != nil {
			break
		}
		l.pending = append(l.pending, r)
	}

	return read > 0
}

// acceptWhile consumes runes satisfying fn; false means the source ran out first.
func (l *Lexer) acceptWhile(fn func(rune) bool) bool {
	for {
		r, ok := l.next()
		if !ok {
			return false
		}

		if !fn(r) {
			l.pos--
			return true
		}
	}
}

// discard drops the consumed runes.
func (l *Lexer) discard() {
	l.pending = l.pending[l.pos:]
	l.pos = 0
}

// emit sends the consumed runes as an Item of type id.
func (l *Lexer) emit(ctx context.Context, id ItemID) {
	val := []byte(string(l.pending[:l.pos]))
	l.discard()

	if l.Debug {
		l.logger.WithField("item", id).Debugf("lexed %q", val)
	}

	l.send(ctx, Item{ID: id, Val: val})
}

func (l *Lexer) emitEOF(ctx context.Context) { l.send(ctx, Item{ID: ItemEOF}) }

func (l *Lexer) send(ctx context.Context, item Item) {
	select {
	case <-ctx.Done():
	case l.items <- item:
	}
}

// IsWhitespace return true for whitespace, newline & carriage return.
func IsWhitespace(r rune) bool { return r < utf8.RuneSelf && whitespace[r] }

// IsValue return true for runes permitted in a node identifier.
func IsValue(r rune) bool {
	if r < utf8.RuneSelf && valueSymbols[r] {
		return true
	}

	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
