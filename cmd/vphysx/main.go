package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"viper-physics/internal/commands"
	"viper-physics/internal/engineconfig"
)

func main() {
	reg := commands.NewRegistry()
	registerRun(reg)
	registerCheck(reg)
	registerDefaults(reg)

	if len(os.Args) < 2 {
		usage(reg)
		os.Exit(2)
	}
	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "vphysx:", err)
		if errors.Is(err, commands.ErrUnknownCommand) {
			usage(reg)
		}
		os.Exit(1)
	}
}

func usage(reg *commands.Registry) {
	fmt.Fprintln(os.Stderr, "usage: vphysx <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands:")
	reg.Usage(os.Stderr)
}

func registerRun(reg *commands.Registry) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	opts := runOptions{}
	fs.StringVar(&opts.configPath, "config", engineconfig.EngineConfigPath, "engine config file (missing file uses defaults)")
	fs.StringVar(&opts.scenePath, "scene", "", "scene file or http(s) URL (.yaml, .yml, .hjson, .json); empty runs the built-in demo scene")
	fs.IntVar(&opts.frames, "frames", 300, "host frames to simulate")
	fs.Float64Var(&opts.frameDelta, "frame-dt", 1.0/60.0, "host frame duration in seconds")
	fs.IntVar(&opts.every, "every", 0, "log body states every N frames (0 disables)")
	fs.IntVar(&opts.terrain, "terrain", 0, "prepend an N x N procedural terrain of kinematic boxes (0 disables)")
	fs.Int64Var(&opts.seed, "seed", 1, "terrain noise seed (0 picks a time-based seed)")
	fs.StringVar(&opts.profile, "profile", "", "write a profile to the working directory: cpu or mem")
	reg.Register("run", "simulate a scene and print the final body states", fs, func() error {
		return run(opts, os.Stdout)
	})
}

func registerCheck(reg *commands.Registry) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var scenePath string
	fs.StringVar(&scenePath, "scene", "", "scene file or http(s) URL to validate")
	reg.Register("check", "load and validate a scene file", fs, func() error {
		return check(scenePath, os.Stdout)
	})
}

func registerDefaults(reg *commands.Registry) {
	fs := flag.NewFlagSet("defaults", flag.ContinueOnError)
	var configPath, scenePath string
	fs.StringVar(&configPath, "config", engineconfig.EngineConfigPath, "where to write the default engine config")
	fs.StringVar(&scenePath, "scene", "scenes/demo.yaml", "where to write the demo scene")
	reg.Register("defaults", "write the default engine config and demo scene", fs, func() error {
		return writeDefaults(configPath, scenePath)
	})
}
