package main

import (
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func printFiles(cfg *PrintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Print.Parse(cc, args)
	if err != nil {
		cfg.Print.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachArg(cc, cfg.MainConfig, args, func(_ string, n *plist.Node, _ format.Format) error {
		return encodeTo(cfg.MainConfig, cc.Out, n, format.PrettyFormat)
	})
}
