package main

import (
	"fmt"
	"io"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/format"
	"github.com/signadot/lax/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return encodeArgs(cfg.MainConfig, cc, args, format.LaxFormat)
}

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	return encodeArgs(cfg.MainConfig, cc, args, format.JSONFormat)
}

// encodeArgs parses each input and writes it in the output format, def
// unless -O was given.
func encodeArgs(cfg *MainConfig, cc *cli.Context, args []string, def format.Format) error {
	opts := cfg.encOpts(cc.Out, def)
	for _, arg := range inputArgs(args) {
		d, err := readArg(cc, arg)
		if err != nil {
			return err
		}
		if err := encodeDoc(cfg, cc.Out, d, opts); err != nil {
			return fmt.Errorf("error processing %s: %w", displayName(arg), err)
		}
	}
	return nil
}

func encodeDoc(cfg *MainConfig, w io.Writer, d string, opts []encode.EncodeOption) error {
	node := parse.Parse(d, nil, cfg.parseOpts()...)
	if node == nil {
		return nil
	}
	if err := encode.Encode(node, w, opts...); err != nil {
		return fmt.Errorf("error encoding: %w", err)
	}
	return nil
}
