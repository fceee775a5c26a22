package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/encode"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/parse"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func readArg(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getObjFile parses path, "-" being stdin, and reports the format it was
// read in.
func getObjFile(cc *cli.Context, cfg *MainConfig, path string) (*plist.Node, format.Format, error) {
	d, err := readArg(cc, path)
	if err != nil {
		return nil, 0, err
	}
	f := parse.Detect(d)
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	n, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return nil, f, fmt.Errorf("error decoding %s: %w", path, err)
	}
	if debug.Codec() {
		debug.LogAny(map[string]string{"file": path, "format": f.String(), "kind": n.Kind().String()})
	}
	return n, f, nil
}

// eachArg runs fn on every file argument, or on stdin when there are
// none.
func eachArg(cc *cli.Context, cfg *MainConfig, args []string, fn func(path string, n *plist.Node, f format.Format) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		n, f, err := getObjFile(cc, cfg, arg)
		if err != nil {
			return err
		}
		err = fn(arg, n, f)
		n.Free()
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
	}
	return nil
}

// writeFile encodes n into path through a temporary file, keeping the
// permissions of an existing path.
func writeFile(cfg *MainConfig, path string, n *plist.Node, def format.Format) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".plutil-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if fi, err := os.Stat(path); err == nil {
		if err := tmp.Chmod(fi.Mode().Perm()); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := encodeTo(cfg, tmp, n, def); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func encodeTo(cfg *MainConfig, w io.Writer, n *plist.Node, def format.Format) error {
	return encode.Encode(n, w, cfg.encOpts(w, def)...)
}
