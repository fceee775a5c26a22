package main

import (
	"fmt"
	"io"

	"github.com/signadot/plist-format/go-plist/parse"

	"github.com/scott-cotton/cli"
)

func lint(cfg *LintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Lint.Parse(cc, args)
	if err != nil {
		cfg.Lint.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := 0
	for _, arg := range args {
		d, err := readArg(cc, arg)
		if err == nil {
			err = lintData(cfg.MainConfig, d)
		}
		if !reportLint(cc.Out, arg, err) {
			failed++
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func lintData(cfg *MainConfig, d []byte) error {
	n, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	n.Free()
	return nil
}

func reportLint(w io.Writer, name string, err error) bool {
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return false
	}
	fmt.Fprintf(w, "%s: OK\n", name)
	return true
}
