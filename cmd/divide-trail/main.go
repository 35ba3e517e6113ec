package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/appengine-ltd/divide-trail/internal/cli"
)

// version, commit, date are injected at build time (see .goreleaser.yaml).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
		loadSlot    string
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to an expedition config file")
	flag.StringVar(&loadSlot, "load", "", "resume from a named save slot")
	flag.Int64Var(&seed, "seed", 0, "override the expedition seed")
	flag.Parse()

	if showVersion {
		fmt.Printf("The Great Divide Trail %s (%s) %s\n", version, commit, date)
		return
	}

	app := cli.NewApp(cli.AppConfig{
		Version:    version,
		ConfigPath: configPath,
		LoadSlot:   loadSlot,
		Seed:       seed,
	}, os.Stdin, os.Stdout)

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
