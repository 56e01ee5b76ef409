package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/dbnstab/blacklist"
	"github.com/katalvlaran/dbnstab/seedgraph"
)

// seedCheckCommand validates a seed-edge file against a dataset: every
// edge must reference a known variable and the edge set must be acyclic.
// Edges that the derived blacklist forbids are reported as errors too,
// since the search engine could never keep them.
func seedCheckCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "seed-check",
		Usage: "Validate a seed-edge CSV against a dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Dataset CSV with a header row",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "seed",
				Aliases:  []string{"s"},
				Usage:    "Seed-edge CSV of from,to rows",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "lags",
				Aliases: []string{"l"},
				Usage:   "Number of lag slices present in the data",
			},
			&cli.StringSliceFlag{
				Name:  "id-column",
				Usage: "Identifier column excluded from modeling (repeatable)",
			},
		},
		Action: func(c *cli.Context) error {
			return runSeedCheck(c, log)
		},
	}
}

func runSeedCheck(c *cli.Context, log *logrus.Logger) error {
	p, err := classifyData(c)
	if err != nil {
		return err
	}

	f, err := os.Open(c.String("seed"))
	if err != nil {
		return err
	}
	defer f.Close()

	edges, err := seedgraph.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.String("seed"), err)
	}

	g, err := seedgraph.Load(edges, p.Names())
	if err != nil {
		return err
	}

	bl, err := blacklist.Build(p)
	if err != nil {
		return err
	}
	if violations := bl.Violations(g); len(violations) > 0 {
		for _, e := range violations {
			log.WithField("edge", e.String()).Error("seed edge is blacklisted")
		}

		return fmt.Errorf("%d seed edge(s) violate the constraint blacklist", len(violations))
	}

	log.WithFields(logrus.Fields{
		"vertices": len(g.Vertices()),
		"edges":    len(g.Edges()),
	}).Info("seed graph is valid")

	return nil
}
