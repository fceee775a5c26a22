package main

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/kpath"
	"github.com/signadot/plist-format/go-plist/parse"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a key path, a value and at most one file", cli.ErrUsage)
	}
	path, text := args[0], args[1]
	return editArg(cfg, cc, args[2:], func(root *plist.Node) error {
		v, err := valueArg(cfg.heap(), text, cfg.Dates)
		if err != nil {
			return fmt.Errorf("error decoding value %q: %w", text, err)
		}
		cfg.heap().Logger().Debug("set", "path", path, "value", debug.Node(v))
		if err := setPath(root, path, v); err != nil {
			v.Free()
			return err
		}
		return nil
	})
}

// valueArg reads a set value as JSON; text that is not JSON is taken as a
// string.
func valueArg(h *plist.Heap, text string, dates bool) (*plist.Node, error) {
	v, err := parse.ParseString(text, parse.ParseJSON(), parse.ParseHeap(h), parse.ParseDates(dates))
	if err == nil {
		return v, nil
	}
	h.Logger().Debug("set: value is not JSON", "text", text, "error", err)
	return h.NewString(text)
}

func remove(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: remove requires a key path and at most one file", cli.ErrUsage)
	}
	path := args[0]
	return editArg(cfg, cc, args[1:], func(root *plist.Node) error {
		return removePath(root, path)
	})
}

// editArg applies edit to the single file argument, or stdin, and writes
// the result in the format it was read in unless -O says otherwise.
func editArg(cfg *SetConfig, cc *cli.Context, args []string, edit func(*plist.Node) error) error {
	if cfg.Replace && len(args) == 0 {
		return fmt.Errorf("%w: -r requires a file", cli.ErrUsage)
	}
	return eachArg(cc, cfg.MainConfig, args, func(path string, n *plist.Node, f format.Format) error {
		if err := edit(n); err != nil {
			return err
		}
		if cfg.Replace {
			return writeFile(cfg.MainConfig, path, n, f)
		}
		return encodeTo(cfg.MainConfig, cc.Out, n, f)
	})
}

// container returns the node holding the last segment of path, and that
// segment.
func container(root *plist.Node, path string) (*plist.Node, *kpath.KPath, error) {
	kp, err := kpath.Parse(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", plist.ErrInvalidArg, err)
	}
	if kp == nil {
		return nil, nil, fmt.Errorf("%w: empty key path", plist.ErrInvalidArg)
	}
	if kp.HasWildcard() {
		return nil, nil, fmt.Errorf("%w: wildcard in %q", plist.ErrInvalidArg, path)
	}
	parent := root
	if pp := kp.Parent(); pp != nil {
		parent, err = root.GetKPath(pp.String())
		if err != nil {
			return nil, nil, err
		}
	}
	return parent, kp.Last(), nil
}

// setPath stores v at path, replacing what is there. An index equal to
// the array size appends. On success v is owned by root.
func setPath(root *plist.Node, path string, v *plist.Node) error {
	parent, last, err := container(root, path)
	if err != nil {
		return err
	}
	switch {
	case last.Field != nil:
		if parent.Kind() != plist.DictKind {
			return fmt.Errorf("%w: key %q applied to %s node", plist.ErrInvalidArg, *last.Field, parent.Kind())
		}
		return parent.DictSetItem(*last.Field, v)
	case last.Index != nil:
		if parent.Kind() != plist.ArrayKind {
			return fmt.Errorf("%w: index %d applied to %s node", plist.ErrInvalidArg, *last.Index, parent.Kind())
		}
		size, err := parent.ArraySize()
		if err != nil {
			return err
		}
		i := *last.Index
		if i < 0 || i > int(size) {
			return fmt.Errorf("%w: index %d of %d", plist.ErrNotFound, i, size)
		}
		if i == int(size) {
			return parent.ArrayAppendItem(v)
		}
		return parent.ArraySetItem(v, uint32(i))
	}
	return fmt.Errorf("%w: %q", plist.ErrInvalidArg, path)
}

func removePath(root *plist.Node, path string) error {
	parent, last, err := container(root, path)
	if err != nil {
		return err
	}
	switch {
	case last.Field != nil:
		if parent.Kind() != plist.DictKind {
			return fmt.Errorf("%w: key %q applied to %s node", plist.ErrInvalidArg, *last.Field, parent.Kind())
		}
		return parent.DictRemoveItem(*last.Field)
	case last.Index != nil:
		if parent.Kind() != plist.ArrayKind {
			return fmt.Errorf("%w: index %d applied to %s node", plist.ErrInvalidArg, *last.Index, parent.Kind())
		}
		if *last.Index < 0 {
			return fmt.Errorf("%w: index %d", plist.ErrNotFound, *last.Index)
		}
		return parent.ArrayRemoveItem(uint32(*last.Index))
	}
	return fmt.Errorf("%w: %q", plist.ErrInvalidArg, path)
}
