package main

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a key path", cli.ErrUsage)
	}
	path := args[0]
	return eachArg(cc, cfg.MainConfig, args[1:], func(_ string, n *plist.Node, _ format.Format) error {
		res, err := n.GetKPath(path)
		if err != nil {
			return fmt.Errorf("error getting %s: %w", path, err)
		}
		return encodeTo(cfg.MainConfig, cc.Out, res, format.PrettyFormat)
	})
}
