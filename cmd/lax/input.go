package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

// inputArgs returns args, or "-" for standard input when there are none.
func inputArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func readArg(cc *cli.Context, arg string) (string, error) {
	var r io.Reader
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return "", fmt.Errorf("could not open %q: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", arg, err)
	}
	return string(d), nil
}

// displayName is the file name used in diagnostics.
func displayName(arg string) string {
	if arg == "-" {
		return "<stdin>"
	}
	return arg
}
