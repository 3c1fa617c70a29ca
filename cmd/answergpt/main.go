package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sant0-9/answergpt/internal/cli"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/tui"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, found, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := &cli.App{
		Config:      cfg,
		ConfigFound: found,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		RunTUI: tui.Run,
	}

	root := cli.NewRootCmd(app)
	root.Version = version
	return root.Execute()
}
