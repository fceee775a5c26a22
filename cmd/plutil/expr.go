package main

import (
	"fmt"
	"io"

	"github.com/signadot/plist-format/go-plist/encode"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	j "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
)

func evalExpr(cfg *ExprConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Expr.Parse(cc, args)
	if err != nil {
		cfg.Expr.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: expr requires an expression", cli.ErrUsage)
	}
	program, err := compileExpr(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	allTrue := true
	err = eachArg(cc, cfg.MainConfig, args[1:], func(_ string, n *plist.Node, _ format.Format) error {
		res, err := runExpr(program, n)
		if err != nil {
			return err
		}
		if b, ok := res.(bool); !ok || !b {
			allTrue = false
		}
		if cfg.Quiet {
			return nil
		}
		return writeResult(cc.Out, res)
	})
	if err != nil {
		return err
	}
	if cfg.Quiet && !allTrue {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func compileExpr(code string) (*vm.Program, error) {
	return expr.Compile(code, expr.AllowUndefinedVariables())
}

// exprEnv exposes the document as root and, for a dictionary, each top
// level entry under its key.
func exprEnv(n *plist.Node) (map[string]any, error) {
	v, err := encode.Value(n)
	if err != nil {
		return nil, err
	}
	env := map[string]any{}
	if m, ok := v.(map[string]any); ok {
		for k, x := range m {
			env[k] = x
		}
	}
	env["root"] = v
	return env, nil
}

func runExpr(program *vm.Program, n *plist.Node) (any, error) {
	env, err := exprEnv(n)
	if err != nil {
		return nil, err
	}
	return expr.Run(program, env)
}

func writeResult(w io.Writer, res any) error {
	switch res.(type) {
	case map[string]any, []any, []byte:
		d, err := j.Marshal(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return err
	}
	_, err := fmt.Fprintln(w, res)
	return err
}
