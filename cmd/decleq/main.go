package main

import (
	"fmt"
	"log"
	"os"

	"github.com/decleq/decleq/internal/cli"
	"github.com/decleq/decleq/internal/matcher"
	"github.com/decleq/decleq/internal/parser"
	"github.com/decleq/decleq/internal/report"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	var renderer report.Renderer
	switch cfg.Format {
	case "yaml":
		renderer = report.NewYAMLRenderer()
	default:
		renderer = report.NewTextRenderer()
	}

	runner := cli.NewRunner(
		parser.New(),
		matcher.NewFirstMatcher(),
		matcher.NewLastMatcher(),
		renderer,
		os.Stdout,
	)

	allEquivalent, err := runner.Run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if !allEquivalent {
		os.Exit(1)
	}
}
