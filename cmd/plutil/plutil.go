package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/scott-cotton/cli"
)

func plutilMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// setup merges the configuration file into unset flags and creates the
// heap every command allocates on.
func (cfg *MainConfig) setup() error {
	path := cfg.ConfigFile
	if path == "" {
		path = defaultConfigPath()
	}
	settings := DefaultSettings()
	if path != "" {
		s, err := LoadSettings(path)
		if err != nil {
			return err
		}
		settings = s
	}
	cfg.Settings = settings
	if cfg.OutFormat == nil {
		cfg.OutFormat = settings.Format
	}
	if !optSet(cfg.Main, "sort") {
		cfg.Sort = settings.SortKeys
	}
	if !optSet(cfg.Main, "indent") {
		cfg.Indent = settings.Indent
	}
	lvl := settings.LogLevel
	if cfg.Debug != "" {
		l, err := debug.ParseLevel(cfg.Debug)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		lvl = l
	} else if debug.Level() < lvl {
		lvl = debug.Level()
	}
	cfg.Heap = plist.NewHeap(plist.WithLogger(debug.NewLogger(os.Stderr, lvl)))
	return nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func optSet(cmd *cli.Command, name string) bool {
	for _, opt := range cmd.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}
