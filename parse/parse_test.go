package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/token"
)

type parseTest struct {
	in   string
	want any
}

func runParseTests(t *testing.T, tests []parseTest) {
	t.Helper()
	for _, tc := range tests {
		node, errs := ParseString(tc.in)
		if len(errs) != 0 {
			t.Errorf("%q: unexpected errors %v", tc.in, errs)
		}
		if node == nil {
			t.Errorf("%q: nil node", tc.in)
			continue
		}
		if diff := cmp.Diff(tc.want, ir.ToAny(node)); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", tc.in, diff)
		}
		checkSpans(t, tc.in, node, errs)
	}
}

func TestScalars(t *testing.T) {
	runParseTests(t, []parseTest{
		{in: "123", want: 123.0},
		{in: "-42", want: -42.0},
		{in: "+7", want: 7.0},
		{in: "1.5", want: 1.5},
		{in: ".5", want: 0.5},
		{in: "1.", want: "1."},
		{in: "1.2.3", want: "1.2.3"},
		{in: "1e3", want: "1e3"},
		{in: "true", want: true},
		{in: "false", want: false},
		{in: "True", want: "True"},
		{in: "null", want: nil},
		{in: "~", want: nil},
		{in: "nulls", want: "nulls"},
		{in: "hello", want: "hello"},
		{in: "hello world", want: "hello world"},
		{in: "a # comment", want: "a"},
		{in: "a,b]", want: "a,b]"},
		{in: `"quoted"`, want: "quoted"},
		{in: `"123"`, want: "123"},
		{in: `'single'`, want: "single"},
		{in: `'it''s'`, want: "it"},
		{in: `""`, want: ""},
		{in: `"unterminated`, want: `"unterminated`},
		{in: `"a # b"`, want: "a # b"},
		{in: `'a:b'`, want: "a:b"},
		{in: `"x" # 1:2`, want: "x"},
	})
}

func TestScalarTypes(t *testing.T) {
	tests := []struct {
		in   string
		want ir.Type
	}{
		{"1", ir.NumberType},
		{"-0.25", ir.NumberType},
		{"true", ir.BoolType},
		{"~", ir.NullType},
		{"x", ir.StringType},
		{`"true"`, ir.StringType},
		{"[]", ir.ArrayType},
		{"{}", ir.ObjectType},
	}
	for _, tc := range tests {
		node, _ := ParseString(tc.in)
		if node.Type != tc.want {
			t.Errorf("%q: got %s want %s", tc.in, node.Type, tc.want)
		}
	}
}

func TestScalarSpans(t *testing.T) {
	tests := []struct {
		in         string
		start, end token.Pos
	}{
		{"  hello  ", token.Pos{Character: 2}, token.Pos{Character: 7}},
		{`"ab"`, token.Pos{}, token.Pos{Character: 4}},
		{"\n\n  42 # c", token.Pos{Line: 2, Character: 2}, token.Pos{Line: 2, Character: 4}},
	}
	for _, tc := range tests {
		node, _ := ParseString(tc.in)
		if node.Start != tc.start || node.End != tc.end {
			t.Errorf("%q: got %s-%s want %s-%s", tc.in, node.Start, node.End, tc.start, tc.end)
		}
	}
}

func TestEmpty(t *testing.T) {
	for _, in := range []string{
		"",
		"\n\n",
		"   \n\t\n",
		"# only\n  # comments\n",
		"\r\n# c\r\n",
	} {
		node, errs := ParseString(in)
		if node != nil {
			t.Errorf("%q: expected nil node, got %s", in, node.Type)
		}
		if len(errs) != 0 {
			t.Errorf("%q: unexpected errors %v", in, errs)
		}
	}
}

func TestBlockObject(t *testing.T) {
	runParseTests(t, []parseTest{
		{
			in:   "a: 1\nb: two\nc: true",
			want: map[string]any{"a": 1.0, "b": "two", "c": true},
		},
		{
			in: `server:
  host: localhost
  ports:
    - 80
    - 443
  tls:
name: x
`,
			want: map[string]any{
				"server": map[string]any{
					"host":  "localhost",
					"ports": []any{80.0, 443.0},
					"tls":   "",
				},
				"name": "x",
			},
		},
		{
			in:   "a:\n  hello\nb: 2",
			want: map[string]any{"a": "hello", "b": 2.0},
		},
		{
			in:   "a: # comment\n  b: 1",
			want: map[string]any{"a": map[string]any{"b": 1.0}},
		},
		{
			in:   "a:\n\n# between\n\n  b: 1\n",
			want: map[string]any{"a": map[string]any{"b": 1.0}},
		},
		{
			in:   "url: http://x.io:80/p\nt: 12:30",
			want: map[string]any{"url": "http://x.io:80/p", "t": "12:30"},
		},
		{
			in:   "a:b\nc: d",
			want: map[string]any{"a": "b", "c": "d"},
		},
		{in: "key:value", want: map[string]any{"key": "value"}},
		{in: "a :b:c", want: map[string]any{"a": "b:c"}},
		{
			in:   "x:\n  y:1\n'p:q': 2",
			want: map[string]any{"x": map[string]any{"y": 1.0}, "p:q": 2.0},
		},
		{
			in:   `"a: b": 1` + "\n'c': 2",
			want: map[string]any{"a: b": 1.0, "c": 2.0},
		},
		{
			in:   "a: 1\nlonely\nb: 2",
			want: map[string]any{"a": 1.0, "lonely": "", "b": 2.0},
		},
		{
			in:   "a:\n\tb: 1",
			want: map[string]any{"a": map[string]any{"b": 1.0}},
		},
		{
			in:   "a: 1\r\nb: 2\r\n",
			want: map[string]any{"a": 1.0, "b": 2.0},
		},
	})
}

func TestColonKeySpan(t *testing.T) {
	node, _ := ParseString("a:b\nc: d")
	k, v := node.Fields[0], node.Values[0]
	if k.End != (token.Pos{Character: 1}) {
		t.Errorf("key end %s", k.End)
	}
	if v.Start != (token.Pos{Character: 2}) || v.End != (token.Pos{Character: 3}) {
		t.Errorf("value span %s-%s", v.Start, v.End)
	}
}

func TestPropertyOrder(t *testing.T) {
	node, _ := ParseString("z: 1\na: 2\nm: 3\nb: {y: 1, x: 2}")
	var got []string
	for _, kv := range node.KeyVals() {
		got = append(got, kv.Key.String)
	}
	if diff := cmp.Diff([]string{"z", "a", "m", "b"}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	inner := ir.Get(node, "b")
	got = got[:0]
	for _, f := range inner.Fields {
		got = append(got, f.String)
	}
	if diff := cmp.Diff([]string{"y", "x"}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestBlockArray(t *testing.T) {
	runParseTests(t, []parseTest{
		{in: "- 42", want: []any{42.0}},
		{in: "- a\n- b\n- c", want: []any{"a", "b", "c"}},
		{
			in: `- name: a
  value: 1
- name: b
-
  nested: true
- [x, y]
- {k: v}
`,
			want: []any{
				map[string]any{"name": "a", "value": 1.0},
				map[string]any{"name": "b"},
				map[string]any{"nested": true},
				[]any{"x", "y"},
				map[string]any{"k": "v"},
			},
		},
		{
			in:   "-\n  - a\n  - b\n- c",
			want: []any{[]any{"a", "b"}, "c"},
		},
		{
			in:   "- a:\n    - 1\n  b: 2",
			want: []any{map[string]any{"a": []any{1.0}, "b": 2.0}},
		},
		{
			in:   "-\n- # c\n- x",
			want: []any{"", "", "x"},
		},
		{
			in:   "-\n  text",
			want: []any{"text"},
		},
		{
			in:   "- -1\n- -x",
			want: []any{-1.0, "-x"},
		},
		{
			in:   "- k:v\n- http://x.io",
			want: []any{map[string]any{"k": "v"}, map[string]any{"http": "//x.io"}},
		},
		{
			in:   "-\n  'a:b'\n- [a:b]\n- {k:v}",
			want: []any{"a:b", []any{"a:b"}, map[string]any{"k": "v"}},
		},
	})
}

func TestFlow(t *testing.T) {
	runParseTests(t, []parseTest{
		{in: "[]", want: []any{}},
		{in: "{}", want: map[string]any{}},
		{
			in:   "[1, two, [3], {a: b}]",
			want: []any{1.0, "two", []any{3.0}, map[string]any{"a": "b"}},
		},
		{
			in:   "{\n  a: 1, # c\n  b: [x,\n y]\n}",
			want: map[string]any{"a": 1.0, "b": []any{"x", "y"}},
		},
		{
			in:   "tools: [#r",
			want: map[string]any{"tools": []any{}},
		},
		{in: "[a, , b]", want: []any{"a", "b"}},
		{in: `["", a]`, want: []any{"", "a"}},
		{in: "[#c\n, a]", want: []any{"a"}},
		{in: "[a, b,]", want: []any{"a", "b"}},
		{in: "[a}b]", want: []any{"a", "b"}},
		{in: "[", want: []any{}},
		{in: "{", want: map[string]any{}},
		{in: "{a", want: map[string]any{"a": ""}},
		{in: "{a: }", want: map[string]any{"a": ""}},
		{in: "['a, b]", want: []any{"'a", "b"}},
		{in: `{"k,1": [1, "2"]}`, want: map[string]any{"k,1": []any{1.0, "2"}}},
		{in: "[a b, c\td]", want: []any{"a b", "c\td"}},
		{in: "[1] trailing", want: []any{1.0}},
		{in: "x: [1,\n2]\ny: 3", want: map[string]any{"x": []any{1.0, 2.0}, "y": 3.0}},
	})
}

func TestFlowUnterminatedSpan(t *testing.T) {
	node, errs := ParseString("tools: [#r")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	arr := ir.Get(node, "tools")
	if arr == nil || arr.Type != ir.ArrayType || len(arr.Values) != 0 {
		t.Fatalf("expected empty array, got %v", arr)
	}
	if want := (token.Pos{Character: 7}); arr.Start != want {
		t.Errorf("start %s want %s", arr.Start, want)
	}
	if want := (token.Pos{Character: 10}); arr.End != want {
		t.Errorf("end %s want %s", arr.End, want)
	}
}

func TestIdempotent(t *testing.T) {
	doc := `# config
name: demo
name: again
list:
  - a
  - k: v
      deep: 1
flow: {x: [1, 2,
  3], y: "q"}
`
	n1, e1 := ParseString(doc)
	n2, e2 := ParseString(doc)
	if diff := cmp.Diff(n1, n2); diff != "" {
		t.Errorf("trees differ (-first +second)\n%s", diff)
	}
	if diff := cmp.Diff(e1, e2); diff != "" {
		t.Errorf("errors differ (-first +second)\n%s", diff)
	}
}

func TestDiscardErrors(t *testing.T) {
	node := Parse("a: 1\na: 2", nil)
	if node == nil || len(node.Fields) != 2 {
		t.Fatalf("unexpected result %v", node)
	}
}

func TestLarge(t *testing.T) {
	var b strings.Builder
	for i := range 1000 {
		b.WriteString("key")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString(string(rune('a' + i%26)))
		b.WriteString(": ")
		b.WriteString("value\n")
	}
	node := Parse(b.String(), nil, AllowDuplicateKeys(true))
	if n := len(node.Fields); n != 1000 {
		t.Errorf("got %d properties want 1000", n)
	}

	b.Reset()
	const depth = 50
	for i := range depth {
		b.WriteString(strings.Repeat("  ", i))
		b.WriteString("k:\n")
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("leaf: true\n")
	node, errs := ParseString(b.String())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	d := 0
	for node.Type == ir.ObjectType {
		node = node.Values[0]
		d++
	}
	if d != depth+1 || node.Type != ir.BoolType {
		t.Errorf("got depth %d ending in %s", d, node.Type)
	}
}
