package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/dbnstab/dataset"
)

// featuresCommand applies a feature-selection CSV to a dataset and
// reports the surviving columns, optionally writing the reduced dataset.
func featuresCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "features",
		Usage: "Apply a feature-selection file to a dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Dataset CSV with a header row",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "features",
				Aliases:  []string{"f"},
				Usage:    "Selection CSV of feature,include rows",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "id-column",
				Usage: "Identifier column always kept (repeatable)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the reduced dataset CSV here, - for stdout; empty lists columns only",
			},
		},
		Action: func(c *cli.Context) error {
			return runFeatures(c, log)
		},
	}
}

func runFeatures(c *cli.Context, log *logrus.Logger) error {
	df, err := os.Open(c.String("data"))
	if err != nil {
		return err
	}
	defer df.Close()

	d, err := dataset.FromCSV(df)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.String("data"), err)
	}

	sf, err := os.Open(c.String("features"))
	if err != nil {
		return err
	}
	defer sf.Close()

	sel, err := dataset.LoadFeatureSelection(sf)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.String("features"), err)
	}

	reduced, err := d.ApplyFeatureSelection(sel, c.StringSlice("id-column")...)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"before": d.NumColumns(),
		"after":  reduced.NumColumns(),
	}).Info("feature selection applied")

	if path := c.String("output"); path != "" {
		out, done, err := openOutput(path)
		if err != nil {
			return err
		}
		defer done()

		return reduced.WriteCSV(out)
	}

	for _, col := range reduced.Columns() {
		fmt.Println(col)
	}

	return nil
}
