package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/plist-format/go-plist/encode"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/parse"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color      bool   `cli:"name=color desc='encode with color'"`
	Sort       bool   `cli:"name=sort desc='write dictionary keys in order'"`
	Indent     int    `cli:"name=indent desc='indentation of json, yaml and pretty output'"`
	Dates      bool   `cli:"name=dates desc='read rfc3339 strings in json and yaml as dates'"`
	Debug      string `cli:"name=debug desc='log level: debug, info, warn, error'"`
	ConfigFile string `cli:"name=config desc='settings file (toml)'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Settings Settings
	Heap     *plist.Heap

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
	res := []parse.ParseOption{
		parse.ParseHeap(cfg.heap()),
		parse.ParseDates(cfg.Dates),
	}
	if cfg.InFormat != nil {
		res = append(res, parse.ParseFormat(*cfg.InFormat))
	}
	return res
}

func (cfg *MainConfig) heap() *plist.Heap {
	if cfg.Heap == nil {
		return plist.Default()
	}
	return cfg.Heap
}

// outFormat is the -O format, else the settings format, else def.
func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return def
}

func (cfg *MainConfig) encOpts(w io.Writer, def format.Format) []encode.EncodeOption {
	f := cfg.outFormat(def)
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.SortKeys(cfg.Sort),
		encode.Indent(cfg.Indent),
	}
	if f != format.PrettyFormat {
		return res
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if cfg.Main != nil && optSet(cfg.Main, "color") {
		return res
	}
	if cfg.Settings.Color != nil {
		if *cfg.Settings.Color {
			res = append(res, encode.EncodeColors(encode.NewColors()))
		}
		return res
	}
	fd, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(fd.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ConvertConfig struct {
	*MainConfig
	Replace bool `cli:"name=r desc='rewrite files in place'"`

	Convert *cli.Command
}

type PrintConfig struct {
	*MainConfig

	Print *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type KeysConfig struct {
	*MainConfig
	Path string `cli:"name=p desc='key path of the dictionary'"`

	Keys *cli.Command
}

type SetConfig struct {
	*MainConfig
	Replace bool `cli:"name=r desc='rewrite the file in place'"`

	Set *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type LintConfig struct {
	*MainConfig

	Lint *cli.Command
}

type ExprConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='print nothing; exit 1 unless every result is true'"`

	Expr *cli.Command
}
