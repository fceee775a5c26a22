package main

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.OutFormat == nil {
		return fmt.Errorf("%w: convert requires an output format (-O or settings)", cli.ErrUsage)
	}
	if cfg.Replace && len(args) == 0 {
		return fmt.Errorf("%w: -r requires files", cli.ErrUsage)
	}
	return eachArg(cc, cfg.MainConfig, args, func(path string, n *plist.Node, _ format.Format) error {
		if cfg.Replace {
			return writeFile(cfg.MainConfig, path, n, *cfg.OutFormat)
		}
		return encodeTo(cfg.MainConfig, cc.Out, n, *cfg.OutFormat)
	})
}
