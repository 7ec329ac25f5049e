package main

import (
	"fmt"
	"io"

	"github.com/signadot/lax/frontmatter"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"
	"github.com/signadot/lax/schema"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	sch, err := loadSchema(cfg, cc)
	if err != nil {
		return err
	}
	files := inputArgs(args)
	n := 0
	for _, arg := range files {
		d, err := readArg(cc, arg)
		if err != nil {
			return err
		}
		n += checkDoc(cfg, sch, cc.Out, displayName(arg), d)
	}
	if cfg.Watch {
		return watchCheck(cfg, cc, sch, files)
	}
	if n != 0 {
		theLog.Debug("check", "diagnostics", n)
		return cli.ExitCodeErr(1)
	}
	return nil
}

// loadSchema compiles the schema named by -schema, if any.
func loadSchema(cfg *CheckConfig, cc *cli.Context) (*schema.Schema, error) {
	if cfg.Schema == "" {
		return nil, nil
	}
	d, err := readArg(cc, cfg.Schema)
	if err != nil {
		return nil, err
	}
	var errs []parse.ParseError
	node := parse.Parse(d, &errs)
	if len(errs) != 0 {
		return nil, fmt.Errorf("schema %s: %w", cfg.Schema, &errs[0])
	}
	sch, err := schema.Compile(node)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", cfg.Schema, err)
	}
	return sch, nil
}

// checkDoc writes the diagnostics of d and returns how many there were.
// With -header only the header of d is checked.
func checkDoc(cfg *CheckConfig, sch *schema.Schema, w io.Writer, name, d string) int {
	var (
		doc   = &frontmatter.Document{Body: d}
		node  *ir.Node
		diags []frontmatter.Diagnostic
	)
	if cfg.Header {
		doc = frontmatter.Split(d)
		node, diags = doc.Parse(cfg.parseOpts()...)
	} else {
		var errs []parse.ParseError
		node = parse.Parse(d, &errs, cfg.parseOpts()...)
		for i := range errs {
			diags = append(diags, doc.FromParseError(&errs[i]))
		}
	}
	if sch != nil && node != nil {
		for _, v := range sch.Validate(node) {
			diags = append(diags, frontmatter.Diagnostic{
				Severity: frontmatter.SeverityError,
				Code:     schema.Code,
				Message:  fmt.Sprintf("%s: %s", pointerName(v.Pointer), v.Message),
				Range:    frontmatter.Range{Start: doc.HostPos(v.Node.Start), End: doc.HostPos(v.Node.End)},
			})
		}
	}
	for i := range diags {
		printDiag(w, name, &diags[i])
	}
	return len(diags)
}

func pointerName(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func printDiag(w io.Writer, name string, diag *frontmatter.Diagnostic) {
	start := diag.Range.Start
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", name, start.Line, start.Column, diag.Code, diag.Message)
}
