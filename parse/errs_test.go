package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/lax/token"
)

func TestDuplicateKey(t *testing.T) {
	node, errs := ParseString("key: 1\nkey: 2")
	want := []ParseError{{
		Message: `duplicate key "key"`,
		Code:    DuplicateKey,
		Start:   token.Pos{Line: 1},
		End:     token.Pos{Line: 1, Character: 3},
	}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if len(node.Fields) != 2 || node.Values[0].Number != 1 || node.Values[1].Number != 2 {
		t.Errorf("both properties should be kept, got %d", len(node.Fields))
	}
}

func TestAllowDuplicateKeys(t *testing.T) {
	node, errs := ParseString("key: 1\nkey: 2", AllowDuplicateKeys(true))
	if len(errs) != 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	if len(node.Fields) != 2 {
		t.Errorf("got %d properties", len(node.Fields))
	}
}

func TestDuplicateKeyScopes(t *testing.T) {
	tests := []struct {
		in   string
		dups int
	}{
		{"a:\n  x: 1\nb:\n  x: 2", 0},
		{"{a: 1, a: 2}", 1},
		{"{a: 1, b: {a: 2}}", 0},
		{"- a: 1\n  a: 2\n- a: 3", 1},
		{"a: 1\na: 2\na: 3", 2},
		{`"a": 1` + "\na: 2", 1},
	}
	for _, tc := range tests {
		_, errs := ParseString(tc.in)
		n := 0
		for i := range errs {
			if errs[i].Code == DuplicateKey {
				n++
			}
		}
		if n != tc.dups {
			t.Errorf("%q: got %d duplicate errors want %d: %v", tc.in, n, tc.dups, errs)
		}
	}
}

func TestIndentation(t *testing.T) {
	node, errs := ParseString("key: 1\n    stray: value")
	want := []ParseError{{
		Message: "unexpected indentation: expected 0, got 4",
		Code:    Indentation,
		Start:   token.Pos{Line: 1},
		End:     token.Pos{Line: 1, Character: 16},
	}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	var keys []string
	for _, f := range node.Fields {
		keys = append(keys, f.String)
	}
	if diff := cmp.Diff([]string{"key", "stray"}, keys); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestIndentationNested(t *testing.T) {
	_, errs := ParseString("a:\n  b: 1\n   c: 2\n  d: 3")
	if len(errs) != 1 || errs[0].Code != Indentation || errs[0].Start.Line != 2 {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestParseErrorString(t *testing.T) {
	e := &ParseError{Message: "boom", Code: Indentation, Start: token.Pos{Line: 2, Character: 3}}
	if got, want := e.Error(), "2:3: boom (Indentation)"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	d, err := DuplicateKey.MarshalText()
	if err != nil || string(d) != "DuplicateKey" {
		t.Errorf("got %q, %v", d, err)
	}
}
