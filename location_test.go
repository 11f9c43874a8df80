package jsonc_test

import (
	"testing"

	"github.com/creachadair/jsonc"
)

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  jsonc.Location
		want string
	}{
		{jsonc.Location{}, "0:0-0"},
		{jsonc.Location{
			First: jsonc.LineCol{Line: 1, Column: 0},
			Last:  jsonc.LineCol{Line: 1, Column: 5},
		}, "1:0-5"},
		{jsonc.Location{
			First: jsonc.LineCol{Line: 2, Column: 3},
			Last:  jsonc.LineCol{Line: 4, Column: 1},
		}, "2:3-4:1"},
	}
	for _, test := range tests {
		if got := test.loc.String(); got != test.want {
			t.Errorf("String %+v: got %q, want %q", test.loc, got, test.want)
		}
	}
}

func TestSpanLen(t *testing.T) {
	tests := []struct {
		span jsonc.Span
		want int
	}{
		{jsonc.Span{}, 0},
		{jsonc.Span{Pos: 2, End: 2}, 0},
		{jsonc.Span{Pos: 3, End: 9}, 6},
	}
	for _, test := range tests {
		if got := test.span.Len(); got != test.want {
			t.Errorf("Len %+v: got %d, want %d", test.span, got, test.want)
		}
	}
}
