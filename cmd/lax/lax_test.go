package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"
	"github.com/signadot/lax/schema"
)

func TestFormatDoc(t *testing.T) {
	cfg := &MainConfig{}
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"# only comments\n", ""},
		{"b:   [x,y]\n# c\na: 'q'\n", "b:\n  - x\n  - y\na: q\n"},
		{"- {k: '1'}\n", "- k: \"1\"\n"},
		{"key: 1\nkey: 2\n", "key: 1\nkey: 2\n"},
	}
	for _, tc := range tests {
		got, err := formatDoc(cfg, tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", tc.in, diff)
		}
	}

	cfg.B = true
	got, err := formatDoc(cfg, "a:\n  - 1\n")
	if err != nil || got != "{a: [1]}\n" {
		t.Errorf("flow: got %q, %v", got, err)
	}
}

func TestWriteDiff(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	writeDiff(buf, "f", "a: 1\nb: 2\n", "a: 1\nb: 3\n")
	want := "--- f\n+++ f (formatted)\n a: 1\n-b: 2\n+b: 3\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	buf.Reset()
	writeDiff(buf, "f", "same\n", "same\n")
	if buf.Len() != 0 {
		t.Errorf("got %q", buf.String())
	}
}

func TestQuery(t *testing.T) {
	cfg := &GetConfig{MainConfig: &MainConfig{}}
	doc := "a: [1, 2]\nb:\n  c: x\n"
	res, err := query(cfg, doc, "$.a[1]")
	if err != nil || encode.MustString(res) != "2" {
		t.Errorf("got %v, %v", res, err)
	}
	if _, err := query(cfg, doc, "$.zz"); !errors.Is(err, ir.ErrNotFound) {
		t.Errorf("got %v", err)
	}
	cfg.List = true
	res, err = query(cfg, doc, "$..c")
	if err != nil || encode.MustString(res, encode.EncodeFlow(true)) != "[x]" {
		t.Errorf("got %v, %v", res, err)
	}
	res, err = query(cfg, "", "$")
	if err != nil || res.Type != ir.ArrayType || len(res.Values) != 1 {
		t.Errorf("empty document: got %v, %v", res, err)
	}
}

func TestSuggestPath(t *testing.T) {
	cfg := &GetConfig{MainConfig: &MainConfig{}}
	doc := "server:\n  port: 80\nname: x\n"
	tests := []struct {
		path, want string
	}{
		{"$.srv.port", "$.server.port"},
		{"$.nmae", "$.name"},
		{"$.zzzzzz", ""},
	}
	for _, tc := range tests {
		_, err := query(cfg, doc, tc.path)
		if !errors.Is(err, ir.ErrNotFound) {
			t.Errorf("%s: got %v", tc.path, err)
			continue
		}
		hint := "did you mean " + tc.want + "?"
		if got := strings.Contains(err.Error(), hint); got != (tc.want != "") {
			t.Errorf("%s: got %q", tc.path, err)
		}
	}
}

func TestCheckDoc(t *testing.T) {
	cfg := &CheckConfig{MainConfig: &MainConfig{}}
	buf := bytes.NewBuffer(nil)
	if n := checkDoc(cfg, nil, buf, "f", "a: 1\na: 2"); n != 1 {
		t.Errorf("got %d diagnostics", n)
	}
	if diff := cmp.Diff("f:2:1: DuplicateKey: duplicate key \"a\"\n", buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	buf.Reset()
	cfg.Dup = true
	if n := checkDoc(cfg, nil, buf, "f", "a: 1\na: 2"); n != 0 || buf.Len() != 0 {
		t.Errorf("-dup: got %d, %q", n, buf.String())
	}

	buf.Reset()
	cfg.Header = true
	checkDoc(cfg, nil, buf, "f", "---\nx: 1\n  y: 2\n---\nbody: text\n")
	want := "f:3:1: Indentation: unexpected indentation: expected 0, got 2\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestCheckSchema(t *testing.T) {
	node, _ := parse.ParseString("type: object\nproperties:\n  a: {type: string}\n")
	sch, err := schema.Compile(node)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &CheckConfig{MainConfig: &MainConfig{}}
	buf := bytes.NewBuffer(nil)
	if n := checkDoc(cfg, sch, buf, "f", "b: 0\na: 1\n"); n != 1 {
		t.Errorf("got %d diagnostics", n)
	}
	if got := buf.String(); !strings.HasPrefix(got, "f:2:4: Schema: /a: ") {
		t.Errorf("got %q", got)
	}
	buf.Reset()
	if n := checkDoc(cfg, sch, buf, "f", "a: ok\n"); n != 0 {
		t.Errorf("got %q", buf.String())
	}
}

func TestWatchLoop(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ran := make(chan string, 10)
	done := make(chan error, 1)
	watched := map[string]string{"/w/a.lax": "a.lax"}
	go func() {
		done <- watchLoop(ctx, events, errs, watched, 50*time.Millisecond, func(arg string) {
			ran <- arg
		})
	}()
	events <- fsnotify.Event{Name: "/w/other.lax", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/w/a.lax", Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: "/w/a.lax", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/w/./a.lax", Op: fsnotify.Create}
	select {
	case got := <-ran:
		if got != "a.lax" {
			t.Errorf("ran %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no check after write")
	}
	select {
	case got := <-ran:
		t.Errorf("burst checked %q again", got)
	case <-time.After(200 * time.Millisecond):
	}
	cancel()
	if err := <-done; err != nil {
		t.Error(err)
	}
}
