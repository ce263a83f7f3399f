// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type lexed struct {
	ID  ItemID
	Val string
}

func collect(ctx context.Context, l *Lexer) (items []lexed, err error) {
	go l.Lex(ctx)

	for {
		item, proceed := l.Item()
		if !proceed {
			return
		}
		if item.ID == ItemError {
			err = item.Err
			continue
		}

		items = append(items, lexed{item.ID, string(item.Val)})
	}
}

func TestLexer_Lex(t *testing.T) {
	logger := logrus.New()

	tests := []struct {
		name      string
		src       string
		opts      []Option
		want      []lexed
		wantCount [2]int
		wantErr   bool
	}{
		{
			name: "single tree",
			src:  "2,3))",
			want: []lexed{
				{ItemValue, "2"}, {ItemSplitter, ","}, {ItemValue, "3"},
				{ItemEndMarker, ")"}, {ItemEndMarker, ")"}, {ItemEOF, ""},
			},
			wantCount: [2]int{2, 2},
		},
		{
			name: "whitespace & identifiers",
			src:  "  ceo_1 ,\n\tvp-2 )\t)  ",
			want: []lexed{
				{ItemValue, "ceo_1"}, {ItemSplitter, ","}, {ItemValue, "vp-2"},
				{ItemEndMarker, ")"}, {ItemEndMarker, ")"}, {ItemEOF, ""},
			},
			wantCount: [2]int{2, 2},
		},
		{
			name:      "value terminates input",
			src:       "7",
			want:      []lexed{{ItemValue, "7"}, {ItemEOF, ""}},
			wantCount: [2]int{1, 0},
		},
		{
			name: "custom markers",
			src:  "a;b]]",
			opts: []Option{WithSplitter(';'), WithEndMarker(']')},
			want: []lexed{
				{ItemValue, "a"}, {ItemSplitter, ";"}, {ItemValue, "b"},
				{ItemEndMarker, "]"}, {ItemEndMarker, "]"}, {ItemEOF, ""},
			},
			wantCount: [2]int{2, 2},
		},
		{
			name:      "unknown token",
			src:       "1,2.5))",
			want:      []lexed{{ItemValue, "1"}, {ItemSplitter, ","}, {ItemValue, "2"}},
			wantCount: [2]int{2, 0},
			wantErr:   true,
		},
		{
			name:      "empty",
			src:       "",
			want:      []lexed{{ItemEOF, ""}},
			wantCount: [2]int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithLogger(logger), WithSource(strings.NewReader(tt.src))}, tt.opts...)
			l := New(opts...)

			got, err := collect(context.Background(), l)
			if (err != nil) != tt.wantErr {
				t.Errorf("Lexer.Lex() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lexer.Lex() = %+v, want %+v", got, tt.want)
			}
			if gotCount := [2]int{l.ValueCounter(), l.EndCounter()}; gotCount != tt.wantCount {
				t.Errorf("Lexer counters = %v, want %v", gotCount, tt.wantCount)
			}
		})
	}
}

func TestLexer_LexCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(WithSource(strings.NewReader(strings.Repeat("1,", 100))))
	l.Lex(ctx)

	count := 0
	for {
		if _, proceed := l.Item(); !proceed {
			break
		}
		count++
	}
	if count > 0 {
		t.Errorf("Lexer.Lex() emitted %d items after cancellation", count)
	}
}

func TestLexer_Drain(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := New(WithSource(strings.NewReader("1))" + strings.Repeat(",2)", 200))))
	go l.Lex(ctx)

	if item, _ := l.Item(); item.ID != ItemValue {
		t.Fatalf("Lexer.Item() = %v, want %v", item.ID, ItemValue)
	}

	cancel()
	l.Drain()

	// Lex has returned, the counters are settled.
	if values, ends := l.ValueCounter(), l.EndCounter(); values < 1 || values > 201 || ends > 202 {
		t.Errorf("Lexer counters = %d, %d", values, ends)
	}
	if _, proceed := l.Item(); proceed {
		t.Errorf("Lexer.Item() proceeded after Drain")
	}
}

func TestConfig_Resolve(t *testing.T) {
	cfg := &Config{Splitter: ';'}

	resolved := cfg.Resolve()
	if resolved.Splitter != ';' || resolved.EndMarker != DefaultEndMarker || resolved.Logger == nil {
		t.Errorf("Config.Resolve() = %+v", resolved)
	}
	if cfg.EndMarker != emptyRune || cfg.Logger != nil {
		t.Errorf("Config.Resolve() modified its receiver: %+v", cfg)
	}

	var none *Config
	if got := none.Resolve(); got.Splitter != DefaultSplitter {
		t.Errorf("nil Config.Resolve() = %+v", got)
	}
	New(cfg.Options()...)
	if cfg.Logger != nil {
		t.Errorf("Config.Options() modified its receiver: %+v", cfg)
	}
}

func TestIsValue(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true}, {'Z', true}, {'9', true}, {'_', true}, {'-', true},
		{'é', true}, {'.', false}, {',', false}, {')', false}, {' ', false}, {'€', false},
	}

	for _, tt := range tests {
		if got := IsValue(tt.r); got != tt.want {
			t.Errorf("IsValue(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func BenchmarkLexer_Lex(b *testing.B) {
	src := "2,3,4)),5,6))"

	logger := logrus.New()
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		l := New(WithLogger(logger), WithSource(strings.NewReader(src)))
		b.StartTimer()

		go l.Lex(ctx)

		for {
			if item, proceed := l.Item(); !proceed || item.ID == ItemEOF {
				break
			}
		}
	}
}
