package encode_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/format"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"
)

const mixed = `a: 1
b: [x, y]
c:
  d: true
  e: ~
list:
  - 1
  - k: v
    j: w
  -
    - n
empty: []
`

func mustParse(t *testing.T, d string) *ir.Node {
	t.Helper()
	node, errs := parse.ParseString(d)
	if len(errs) != 0 {
		t.Fatalf("%q: %v", d, errs)
	}
	return node
}

func encodeString(t *testing.T, node *ir.Node, opts ...encode.EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestEncodeBlock(t *testing.T) {
	want := `a: 1
b:
  - x
  - y
c:
  d: true
  e: null
list:
  - 1
  - k: v
    j: w
  -
    - n
empty: []
`
	got := encodeString(t, mustParse(t, mixed))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestEncodeColonItem(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.FromString("a:b"), ir.FromString("c")})
	want := "-\n  \"a:b\"\n- c\n"
	if diff := cmp.Diff(want, encodeString(t, node)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if back := mustParse(t, want); !ir.Equal(node, back) {
		t.Errorf("read back as %s", encode.MustString(back, encode.EncodeFlow(true)))
	}
}

func TestEncodeFlow(t *testing.T) {
	want := "{a: 1, b: [x, y], c: {d: true, e: null}, list: [1, {k: v, j: w}, [n]], empty: []}\n"
	got := encodeString(t, mustParse(t, mixed), encode.EncodeFlow(true))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestEncodeNil(t *testing.T) {
	if got := encodeString(t, nil); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestScalarQuoting(t *testing.T) {
	tests := []struct {
		in, block, flow string
	}{
		{"plain", "plain", "plain"},
		{"two words", "two words", "two words"},
		{"true", `"true"`, `"true"`},
		{"12", `"12"`, `"12"`},
		{"-1.5", `"-1.5"`, `"-1.5"`},
		{"~", `"~"`, `"~"`},
		{"", `""`, `""`},
		{"a: b", `"a: b"`, `"a: b"`},
		{"x:", `"x:"`, `"x:"`},
		{"a:b", `"a:b"`, `"a:b"`},
		{"http://x.io", `"http://x.io"`, `"http://x.io"`},
		{"a,b", "a,b", `"a,b"`},
		{"a]", "a]", `"a]"`},
		{"#c", `"#c"`, `"#c"`},
		{"a#b", `"a#b"`, `"a#b"`},
		{"-x", `"-x"`, `"-x"`},
		{"[x", `"[x"`, `"[x"`},
		{" pad", `" pad"`, `" pad"`},
		{`say "hi"`, `'say "hi"'`, `'say "hi"'`},
		{"1.2.3", "1.2.3", "1.2.3"},
	}
	for _, tc := range tests {
		node := ir.FromString(tc.in)
		if got := encode.MustString(node); got != tc.block {
			t.Errorf("%q block: got %s want %s", tc.in, got, tc.block)
		}
		arr := ir.FromSlice([]*ir.Node{node})
		if got := encode.MustString(arr, encode.EncodeFlow(true)); got != "["+tc.flow+"]" {
			t.Errorf("%q flow: got %s want [%s]", tc.in, got, tc.flow)
		}
		back, _ := parse.ParseString(encode.MustString(node))
		if !ir.Equal(node, back) {
			t.Errorf("%q: read back as %s %q", tc.in, back.Type, back.String)
		}
	}
}

func TestKeyQuoting(t *testing.T) {
	tests := []struct {
		key, want string
	}{
		{"true", "true: 1"},
		{"42", "42: 1"},
		{"a: b", `"a: b": 1`},
		{"", `"": 1`},
		{"- x", `"- x": 1`},
		{"a:b", `"a:b": 1`},
	}
	for _, tc := range tests {
		node := ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString(tc.key), Val: ir.FromNumber(1)}})
		got := encode.MustString(node)
		if got != tc.want {
			t.Errorf("%q: got %s want %s", tc.key, got, tc.want)
		}
		back := mustParse(t, got)
		if !ir.Equal(node, back) {
			t.Errorf("%q: read back as %s", tc.key, encode.MustString(back, encode.EncodeFlow(true)))
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	for _, s := range []string{"line\nbreak", `"both'`, "cr\r"} {
		err := encode.Encode(ir.FromString(s), bytes.NewBuffer(nil))
		if !errors.Is(err, encode.ErrEncoding) {
			t.Errorf("%q: got %v", s, err)
		}
	}
}

var roundTrips = []string{
	mixed,
	"- 1\n- [a, {b: c}]\n- k: v\n  w: 'q'\n",
	`{s: "a, b", t: "x: y", u: "true", v: "", w: "#"}`,
	"a: []\nb: {}\nc:\n  - []\n  - {}\n",
	"n: -1.5\nm: 0.25\nbig: 1000000\n",
	"- a:\n    - 1\n  b: 2\n",
	"-\n  -\n    - deep\n",
	"x: \"it's\"\ny: 'say \"hi\"'\n",
	"url: http://x.io\nt: 12:30\nl:\n  -\n    'a:b'\n",
}

func TestRoundTrip(t *testing.T) {
	optSets := [][]encode.EncodeOption{
		nil,
		{encode.EncodeFlow(true)},
		{encode.EncodeIndent(4)},
		{encode.EncodeIndent(1)},
	}
	for _, doc := range roundTrips {
		node := mustParse(t, doc)
		for i, opts := range optSets {
			out := encodeString(t, node, opts...)
			back, errs := parse.ParseString(out)
			if len(errs) != 0 {
				t.Errorf("%d %q: errors %v", i, out, errs)
			}
			if !ir.Equal(node, back) {
				t.Errorf("%d: %q encoded as\n%s", i, doc, out)
			}
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	node := parse.Parse("a: 1\na: [true, null, x]\n\"q\\\": 'v'", nil, parse.AllowDuplicateKeys(true))
	want := `{"a":1,"a":[true,null,"x"],"q\\":"v"}` + "\n"
	got := encodeString(t, node, encode.EncodeFormat(format.JSONFormat))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	node := mustParse(t, "a: 1\nb: [x, 2.5, true, null]\nc:\n  d: e\n")
	out := encodeString(t, node, encode.EncodeFormat(format.YAMLFormat))
	var got any
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("%q: %v", out, err)
	}
	if diff := cmp.Diff(ir.ToAny(node), normalize(got)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	ia, ib, ic := strings.Index(out, "a:"), strings.Index(out, "b:"), strings.Index(out, "c:")
	if ia < 0 || ia > ib || ib > ic {
		t.Errorf("property order not kept:\n%s", out)
	}
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case map[string]any:
		for k, vv := range x {
			x[k] = normalize(vv)
		}
		return x
	case []any:
		for i, vv := range x {
			x[i] = normalize(vv)
		}
		return x
	default:
		return v
	}
}

func TestEncodeColors(t *testing.T) {
	colors := &encode.Colors{
		Default: func(s string, _ ...any) string { return "<" + s + ">" },
		Map:     map[encode.Colorable]func(string, ...any) string{},
	}
	got := encodeString(t, mustParse(t, "a: [1]"), encode.EncodeColors(colors), encode.EncodeFlow(true))
	if want := "<{><a><:> <[><1><]><}>\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	nc := encode.NewColors()
	for _, typ := range ir.Types() {
		if nc.Get(typ, encode.SepColor) == nil {
			t.Errorf("no separator color for %s", typ)
		}
	}
}

func TestFormatFromOpts(t *testing.T) {
	if f := encode.FormatFromOpts(encode.EncodeFormat(format.YAMLFormat)); f != format.YAMLFormat {
		t.Errorf("got %s", f)
	}
}

func TestEncodeCBOR(t *testing.T) {
	node, _ := parse.ParseString("b: [true, ~]\na: 1.5\ns: text\n")
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeFormat(format.CBORFormat)); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := cbor.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": 1.5, "b": []any{true, nil}, "s": "text"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	again := bytes.NewBuffer(nil)
	other, _ := parse.ParseString("{s: text, a: 1.5, b: [true, null]}")
	if err := encode.Encode(other, again, encode.EncodeFormat(format.CBORFormat)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Errorf("canonical encodings differ")
	}
}
