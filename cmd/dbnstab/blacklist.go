package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/dbnstab/blacklist"
	"github.com/katalvlaran/dbnstab/dataset"
	"github.com/katalvlaran/dbnstab/variables"
)

// blacklistCommand derives the forbidden edge set for a dataset and lag
// count and exports it as from,to CSV.
func blacklistCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "blacklist",
		Usage: "Derive the constraint blacklist for a lagged dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Dataset CSV with a header row",
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
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Destination CSV, - for stdout",
				Value:   "-",
			},
		},
		Action: func(c *cli.Context) error {
			return runBlacklist(c, log)
		},
	}
}

func runBlacklist(c *cli.Context, log *logrus.Logger) error {
	p, err := classifyData(c)
	if err != nil {
		return err
	}

	bl, err := blacklist.Build(p)
	if err != nil {
		return err
	}

	out, done, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer done()
	if err := bl.WriteCSV(out); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"variables": len(p.Names()),
		"lags":      p.NumLags(),
		"forbidden": bl.Len(),
	}).Info("blacklist derived")

	return nil
}

// classifyData loads --data and partitions its columns under --lags,
// excluding any --id-column.
func classifyData(c *cli.Context) (*variables.Partition, error) {
	f, err := os.Open(c.String("data"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := dataset.FromCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.String("data"), err)
	}

	return variables.Classify(d.Columns(), c.Int("lags"), c.StringSlice("id-column")...)
}
