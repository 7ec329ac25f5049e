package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/format"
	"github.com/signadot/lax/ir"
	"github.com/signadot/lax/parse"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an object path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	if path[0] != '$' {
		path = "$" + path
	}
	if _, err := ir.ParsePath(path); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	truth := true
	for _, arg := range inputArgs(args[1:]) {
		d, err := readArg(cc, arg)
		if err != nil {
			return err
		}
		res, err := query(cfg, d, path)
		if err != nil {
			if cfg.Quiet && errors.Is(err, ir.ErrNotFound) {
				truth = false
				continue
			}
			return fmt.Errorf("error querying %s with %s: %w", displayName(arg), path, err)
		}
		if cfg.Quiet {
			truth = truth && ir.Truth(res)
			continue
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out, format.LaxFormat)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	if !truth {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func query(cfg *GetConfig, d, path string) (*ir.Node, error) {
	target := parse.Parse(d, nil, cfg.parseOpts()...)
	if target == nil {
		target = ir.Null()
	}
	if cfg.List {
		res, err := target.ListPath(nil, path)
		if err != nil {
			return nil, err
		}
		return ir.FromSlice(res), nil
	}
	res, err := target.GetPath(path)
	if errors.Is(err, ir.ErrNotFound) {
		if s := suggestPath(target, path); s != "" {
			return nil, fmt.Errorf("%w, did you mean %s?", err, s)
		}
	}
	return res, err
}

// suggestPath returns the path in node closest to path, or "" if none is
// close.  Paths containing the letters of path in order are preferred.
func suggestPath(node *ir.Node, path string) string {
	paths := node.Paths()
	ranks := fuzzy.RankFindFold(path, paths)
	if len(ranks) != 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", len(path)/3+1
	for _, p := range paths {
		if d := fuzzy.LevenshteinDistance(path, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
