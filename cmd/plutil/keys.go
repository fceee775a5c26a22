package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		cfg.Keys.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachArg(cc, cfg.MainConfig, args, func(_ string, n *plist.Node, _ format.Format) error {
		return writeKeys(cc.Out, n, cfg.Path, cfg.Sort)
	})
}

func writeKeys(w io.Writer, root *plist.Node, path string, sorted bool) error {
	d, err := root.GetKPath(path)
	if err != nil {
		return err
	}
	if d.Kind() != plist.DictKind {
		return fmt.Errorf("%w: %q is a %s", plist.ErrInvalidArg, path, d.Kind())
	}
	ks, err := d.DictKeys()
	if err != nil {
		return err
	}
	if sorted {
		slices.Sort(ks)
	}
	for _, k := range ks {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}
