package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/format"
	"github.com/signadot/lax/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	B      bool `cli:"name=b desc='encode in flow style with brackets'"`
	Color  bool `cli:"name=color desc='encode with color'"`
	Indent int  `cli:"name=indent desc='block indentation, 0 for the default of 2'"`
	Trace  bool `cli:"name=trace desc='trace the parser on stderr'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{parse.AllowDuplicateKeys(true)}
	if cfg.Trace {
		res = append(res, parse.Trace(true))
	}
	return res
}

// layoutOpts are the encoding options which do not depend on the output.
func (cfg *MainConfig) layoutOpts() []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodeFlow(cfg.B)}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	return res
}

func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if f, ok := format.FromPath(cfg.Out); ok {
		return f
	}
	return def
}

func (cfg *MainConfig) encOpts(w io.Writer, def format.Format) []encode.EncodeOption {
	res := append(cfg.layoutOpts(), encode.EncodeFormat(cfg.outFormat(def)))
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type CheckConfig struct {
	*MainConfig
	Dup    bool   `cli:"name=dup desc='allow duplicate keys'"`
	Header bool   `cli:"name=header desc='check only the --- delimited header'"`
	Schema string `cli:"name=schema desc='validate documents against the JSON Schema in this file'"`
	Watch  bool   `cli:"name=watch desc='check files again whenever they change'"`

	Check *cli.Command
}

func (cfg *CheckConfig) parseOpts() []parse.ParseOption {
	return append(cfg.MainConfig.parseOpts(), parse.AllowDuplicateKeys(cfg.Dup))
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Diff  bool `cli:"name=d desc='print a diff instead of the formatted document'"`
	Write bool `cli:"name=w desc='write the result back to the files'"`

	Fmt *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	Convert *cli.Command
}

type GetConfig struct {
	*MainConfig
	List  bool `cli:"name=l aliases=list desc='list all matches, allowing [*] and ..'"`
	Quiet bool `cli:"name=q desc='print nothing, exit 1 unless the result is true'"`

	Get *cli.Command
}

type HeaderConfig struct {
	*MainConfig
	Dup bool `cli:"name=dup desc='allow duplicate keys'"`

	Header *cli.Command
}

func (cfg *HeaderConfig) parseOpts() []parse.ParseOption {
	return append(cfg.MainConfig.parseOpts(), parse.AllowDuplicateKeys(cfg.Dup))
}
