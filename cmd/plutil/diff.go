package main

import (
	"fmt"
	"io"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/libdiff"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, _, err := getObjFile(cc, cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	defer a.Free()
	b, _, err := getObjFile(cc, cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	defer b.Free()
	differs, err := diffInputs(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, w io.Writer, a, b *plist.Node) (bool, error) {
	changes, err := libdiff.Diff(a, b)
	if err != nil {
		return false, err
	}
	if debug.Diff() {
		debug.LogAny(map[string]int{"changes": len(changes)})
	}
	if len(changes) == 0 {
		return false, nil
	}
	if cfg.Reverse {
		changes = libdiff.Reverse(changes)
	}
	for i := range changes {
		if _, err := fmt.Fprintln(w, changes[i].String()); err != nil {
			return false, err
		}
	}
	return true, nil
}
