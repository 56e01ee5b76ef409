package crossval

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/katalvlaran/dbnstab/search"
)

// RunResult is the outcome of one hold-out run: a loss value, or the
// error that prevented one.
type RunResult struct {
	// Run is the 1-based run index.
	Run int

	// ConfigID identifies the configuration the run belongs to.
	ConfigID string

	// Loss is the hold-out log-likelihood loss; meaningful only when Err
	// is nil.
	Loss float64

	// Err is the failure that voided this run, nil on success.
	Err error
}

// LossReport aggregates the runs of one cross-validation invocation,
// ordered by run index.
type LossReport struct {
	// ConfigID identifies the validated configuration.
	ConfigID string

	// FitMethod is the parameter-fitting method used before evaluation.
	FitMethod search.FitMethod

	// Runs holds every run's result, failures included.
	Runs []RunResult
}

// Failed returns the number of runs that produced no loss value.
func (r *LossReport) Failed() int {
	n := 0
	for _, run := range r.Runs {
		if run.Err != nil {
			n++
		}
	}

	return n
}

// MeanLoss averages the losses of the successful runs. It returns NaN-free
// zero when no run succeeded; check Failed against len(Runs) first.
func (r *LossReport) MeanLoss() float64 {
	sum, n := 0.0, 0
	for _, run := range r.Runs {
		if run.Err == nil {
			sum += run.Loss
			n++
		}
	}
	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

// Losses returns the successful runs' losses in run order.
func (r *LossReport) Losses() []float64 {
	out := make([]float64, 0, len(r.Runs))
	for _, run := range r.Runs {
		if run.Err == nil {
			out = append(out, run.Loss)
		}
	}

	return out
}

// Err collects the per-run failures into one error, nil when every run
// succeeded.
func (r *LossReport) Err() error {
	var merr *multierror.Error
	for _, run := range r.Runs {
		if run.Err != nil {
			merr = multierror.Append(merr, run.Err)
		}
	}

	return merr.ErrorOrNil()
}

// WriteCSV exports the report as run,configuration,loss,error rows in run
// order. Failed runs carry an empty loss cell and the error text.
func (r *LossReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run", "configuration", "loss", "error"}); err != nil {
		return fmt.Errorf("crossval: write header: %w", err)
	}
	for _, run := range r.Runs {
		loss, errText := "", ""
		if run.Err != nil {
			errText = run.Err.Error()
		} else {
			loss = strconv.FormatFloat(run.Loss, 'g', -1, 64)
		}
		row := []string{strconv.Itoa(run.Run), run.ConfigID, loss, errText}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("crossval: write run %d: %w", run.Run, err)
		}
	}
	cw.Flush()

	return cw.Error()
}
