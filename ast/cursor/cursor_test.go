// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jsonc/ast"
	"github.com/creachadair/jsonc/ast/cursor"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func TestCursor(t *testing.T) {
	v, errs := ast.ParseTree(testJSON, nil)
	if len(errs) != 0 {
		t.Fatalf("ParseTree reported errors: %v", errs)
	}
	root := v.(*ast.Object)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{11}, v, true},

		{"ArrayPos", []any{"list", 1},
			root.Find("list").Value.(*ast.Array).Values[1],
			false,
		},
		{"ArrayNeg", []any{"list", -1},
			root.Find("list").Value.(*ast.Array).Values[1],
			false,
		},
		{"ArrayRange", []any{"o", 25},
			root.Find("o").Value,
			true,
		},
		{"ObjPath", []any{"xyz", "d"},
			root.Find("xyz").Value.(*ast.Object).Find("d"),
			false,
		},
		{"ObjIndex", []any{"xyz", 2},
			root.Find("xyz").Value.(*ast.Object).Members[2],
			false,
		},
		{"NilDeref", []any{"y", nil},
			root.Find("y").Value,
			false,
		},

		{"FuncArray", []any{"o", testPathFunc}, ast.ToValue(2), false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.ToValue(3), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc},
			root.Find("xyz").Value.(*ast.Object).Find("d").Value,
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Errorf("Down %+v: no error, but wanted one", tc.path)
			}
			got := c.Value()
			if got != tc.want {
				// Constructed values cannot match by identity; compare their
				// unwrapped forms instead.
				if diff := cmp.Diff(ast.Unwrap(tc.want), ast.Unwrap(got)); diff != "" {
					t.Errorf("Down %+v: wrong result (-want, +got):\n%s", tc.path, diff)
				}
			}
		})
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case *ast.Array:
		return ast.ToValue(t.Len()), nil
	case *ast.Object:
		return ast.ToValue(t.Len()), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}

func TestCursorMoves(t *testing.T) {
	v, errs := ast.ParseTree(testJSON, nil)
	if len(errs) != 0 {
		t.Fatalf("ParseTree reported errors: %v", errs)
	}
	root := v.(*ast.Object)

	c := cursor.New(v)
	if !c.AtOrigin() {
		t.Error("A new cursor is not at its origin")
	}
	if got := c.Origin(); got != v {
		t.Errorf("Origin: got %v, want %v", got, v)
	}

	c.Down("list", 0)
	if c.Err() != nil {
		t.Fatalf("Down: unexpected error: %v", c.Err())
	}
	wantObj := root.Find("list").Value.(*ast.Array).Values[0]
	if got := c.Value(); got != wantObj {
		t.Errorf("Value: got %v, want %v", got, wantObj)
	}
	if c.AtOrigin() {
		t.Error("The cursor should not be at its origin after Down")
	}

	// The path runs from the origin through the member and array.
	if got := c.Path(); len(got) != 4 || got[0] != v || got[3] != wantObj {
		t.Errorf("Path: got %v, want 4 values from root", got)
	}

	// Up steps back to the array containing the value.
	c.Up()
	if got, want := c.Value(), root.Find("list").Value; got != want {
		t.Errorf("Value after Up: got %v, want %v", got, want)
	}

	// Up at the origin stays at the origin.
	c.Reset()
	if c.Up().Value() != v {
		t.Error("Up at origin moved the cursor")
	}

	// Reset clears the error state.
	c.Down("nonesuch")
	if c.Err() == nil {
		t.Error("Down: no error, but wanted one")
	}
	c.Reset()
	if c.Err() != nil {
		t.Errorf("Err after Reset: got %v, want nil", c.Err())
	}
	if !c.AtOrigin() {
		t.Error("The cursor is not at its origin after Reset")
	}
}

func TestCursorDamaged(t *testing.T) {
	// A member recovered without a value cannot be traversed through.
	v, errs := ast.ParseTree(`{"a": }`, nil)
	if len(errs) == 0 {
		t.Fatal("ParseTree reported no errors")
	}
	c := cursor.New(v).Down("a", nil)
	if c.Err() == nil {
		t.Errorf("Down: no error, but wanted one (value %v)", c.Value())
	}

	// Stopping on the member itself is fine.
	c.Reset()
	if c.Down("a").Err() != nil {
		t.Errorf("Down: unexpected error: %v", c.Err())
	}
}

func TestPath(t *testing.T) {
	v, errs := ast.ParseTree(testJSON, nil)
	if len(errs) != 0 {
		t.Fatalf("ParseTree reported errors: %v", errs)
	}
	root := v.(*ast.Object)

	t.Run("OK", func(t *testing.T) {
		got, err := cursor.Path[*ast.Quoted](v, "o", 1)
		if err != nil {
			t.Fatalf("Path: unexpected error: %v", err)
		}
		if want := root.Find("o").Value.(*ast.Array).Values[1]; got != want {
			t.Errorf("Path: got %v, want %v", got, want)
		}
		if got.Value() != "yourself" {
			t.Errorf("Value: got %q, want %q", got.Value(), "yourself")
		}
	})
	t.Run("WrongType", func(t *testing.T) {
		got, err := cursor.Path[*ast.Number](v, "o", 1)
		if err == nil {
			t.Errorf("Path: got %v, want error", got)
		}
	})
	t.Run("BadPath", func(t *testing.T) {
		got, err := cursor.Path[ast.Value](v, "o", 99)
		if err == nil {
			t.Errorf("Path: got %v, want error", got)
		}
	})
}
