package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bbtab/bbtab"
	"github.com/bbtab/bbtab/cfg"
	"github.com/bbtab/bbtab/traj/crd"
)

//newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "bbtab",
		Usage:   "Tabulate backbone coordinates extracted from an MD trajectory",
		Version: Version,
		Commands: []*cli.Command{
			runCmd(),
			headerCmd(),
		},
	}
	return app
}

//configFlags are the flags shared by every command: the configuration file
//plus the overrides for its most commonly changed fields.
func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Required: true, Usage: "YAML run configuration"},
		&cli.IntFlag{Name: "start", Usage: "Override the first frame"},
		&cli.IntFlag{Name: "end", Usage: "Override the last frame"},
		&cli.StringFlag{Name: "traj", Usage: "Override the coordinate dump path"},
		&cli.StringFlag{Name: "outdir", Usage: "Override the output directory"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "No progress logging"},
	}
}

//loadCfg reads the configuration named by -c and applies the flag
//overrides, rechecking the result.
func loadCfg(c *cli.Context) (*cfg.Cfg, error) {
	conf, err := cfg.New(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("start") {
		conf.Start = c.Int("start")
	}
	if c.IsSet("end") {
		conf.End = c.Int("end")
	}
	if c.IsSet("traj") {
		conf.Traj = c.String("traj")
	}
	if c.IsSet("outdir") {
		conf.OutDir = c.String("outdir")
	}
	if c.Bool("quiet") {
		conf.Quiet = true
	}
	if err := conf.Check(); err != nil {
		return nil, err
	}
	return conf, nil
}

//runCmd creates the run command.
func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Build the coordinate table for one run configuration",
		Flags: configFlags(),
		Action: func(c *cli.Context) error {
			conf, err := loadCfg(c)
			if err != nil {
				return err
			}
			src, err := crd.New(conf.Traj)
			if err != nil {
				return err
			}
			defer src.Close()
			return conf.Pipeline().Run(src)
		},
	}
}

//headerCmd creates the header command. It reads the dump, builds the atom
//catalog and prints the header line the table would carry, which is handy
//for checking the column order before a long run or for diffing two
//extractions.
func headerCmd() *cli.Command {
	return &cli.Command{
		Name:  "header",
		Usage: "Print the header the table would have, without building it",
		Flags: configFlags(),
		Action: func(c *cli.Context) error {
			conf, err := loadCfg(c)
			if err != nil {
				return err
			}
			src, err := crd.New(conf.Traj)
			if err != nil {
				return err
			}
			defer src.Close()
			cb := bbtab.NewCatalogBuilder()
			for {
				rec, err := src.Next()
				if err != nil {
					if _, ok := err.(bbtab.LastFrameError); ok {
						break
					}
					return err
				}
				cb.Add(rec)
			}
			cat, err := cb.Catalog()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, strings.Join(bbtab.Header(cat), " "))
			return nil
		},
	}
}
