package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"

	"github.com/scott-cotton/cli"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var errUnstable = errors.New("formatting changed the document")

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	for _, arg := range inputArgs(args) {
		d, err := readArg(cc, arg)
		if err != nil {
			return err
		}
		name := displayName(arg)
		out, err := formatDoc(cfg.MainConfig, d)
		if err != nil {
			return fmt.Errorf("error formatting %s: %w", name, err)
		}
		switch {
		case cfg.Diff:
			writeDiff(cc.Out, name, d, out)
		case cfg.Write:
			if out == d {
				continue
			}
			if err := writeFile(arg, out); err != nil {
				return err
			}
			theLog.Info("formatted", "file", arg)
		default:
			if _, err := io.WriteString(cc.Out, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatDoc encodes d in block style and checks that the result reads
// back to the same tree.
func formatDoc(cfg *MainConfig, d string) (string, error) {
	opts := cfg.parseOpts()
	node := parse.Parse(d, nil, opts...)
	if node == nil {
		return "", nil
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, cfg.layoutOpts()...); err != nil {
		return "", err
	}
	out := buf.String()
	if back := parse.Parse(out, nil, opts...); !ir.Equal(node, back) {
		return "", fmt.Errorf("%w:\n%s", errUnstable, out)
	}
	return out, nil
}

func writeFile(path, d string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(d), info.Mode().Perm())
}

// writeDiff writes a line diff from a to b, nothing if they are equal.
func writeDiff(w io.Writer, name, a, b string) {
	if a == b {
		return
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	fmt.Fprintf(w, "--- %s\n+++ %s (formatted)\n", name, name)
	for _, diff := range diffs {
		prefix := " "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		text := strings.TrimSuffix(diff.Text, "\n")
		for _, ln := range strings.Split(text, "\n") {
			fmt.Fprintf(w, "%s%s\n", prefix, ln)
		}
	}
}
