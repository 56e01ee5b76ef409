// Package main provides the dbnstab CLI for the engine-free parts of the
// structure-learning workflow: deriving constraint blacklists, validating
// seed-edge files, and applying feature selections.
//
// Anything that needs a search or fit engine (structure learning,
// stability analysis, cross validation) is library-level; the engine is
// an external collaborator wired in by the embedding program.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	app := &cli.App{
		Name:  "dbnstab",
		Usage: "Prepare and check inputs for constraint-aware network structure learning",
		Commands: []*cli.Command{
			blacklistCommand(log),
			seedCheckCommand(log),
			featuresCommand(log),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// openOutput returns the writer for --output, stdout when path is "-".
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { f.Close() }, nil
}
