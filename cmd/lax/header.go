package main

import (
	"fmt"
	"os"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/format"
	"github.com/signadot/lax/frontmatter"

	"github.com/scott-cotton/cli"
)

func header(cfg *HeaderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Header.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out, format.LaxFormat)
	failed := false
	for _, arg := range inputArgs(args) {
		d, err := readArg(cc, arg)
		if err != nil {
			return err
		}
		name := displayName(arg)
		doc := frontmatter.Split(d)
		if !doc.HasHeader {
			theLog.Warn("no header", "file", name)
			continue
		}
		node, diags := doc.Parse(cfg.parseOpts()...)
		for i := range diags {
			diag := &diags[i]
			printDiag(os.Stderr, name, diag)
			if diag.Severity == frontmatter.SeverityError {
				failed = true
			}
		}
		if node == nil {
			continue
		}
		if err := encode.Encode(node, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding header of %s: %w", name, err)
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}
