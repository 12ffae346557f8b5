// SPDX-License-Identifier: MIT

// Package bench runs benchmark variants, times them and cross-checks their results.
//
// Purpose:
//   - Driver: per variant reset → enter section → reps × step → leave → validate.
//   - Timer: named wall-clock sections with call counts.
//   - CheckVector: elementwise tolerance comparison against the reference.
//   - Metrics: Prometheus text-file export of the timings.
//
// Determinism:
//   - Variants run sequentially in the order given; the first one that runs
//     with full repetitions produces the reference.
package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvbench/backend"
)

// Status is the outcome class of one variant.
type Status string

const (
	StatusReference Status = "reference"
	StatusOK        Status = "ok"
	StatusMismatch  Status = "mismatch"
	StatusSkipped   Status = "skipped"
	StatusReduced   Status = "reduced"
	StatusUnchecked Status = "unchecked"
)

// Policy limits Expensive variants on large problems.
type Policy struct {
	// MaxN skips expensive variants when n >= MaxN; 0 disables the limit.
	MaxN int `json:"max_n" yaml:"max_n"`
	// RepsDivisor divides the repetition count of expensive variants; <= 1 keeps it.
	RepsDivisor int `json:"reps_divisor" yaml:"reps_divisor"`
}

var (
	// DefaultDensePolicy applies to the dense cubed case.
	DefaultDensePolicy = Policy{MaxN: 250, RepsDivisor: 100}
	// DefaultSparsePolicy applies to the sparse case.
	DefaultSparsePolicy = Policy{MaxN: 300, RepsDivisor: 1}
)

// Reps returns the repetitions an expensive variant gets on an n-sized
// problem, and false when it must be skipped.
func (p Policy) Reps(n, reps int) (int, bool) {
	if p.MaxN > 0 && n >= p.MaxN {
		return 0, false
	}
	if p.RepsDivisor > 1 {
		return reps / p.RepsDivisor, true
	}

	return reps, true
}

// Outcome is the record of one variant.
type Outcome struct {
	Variant string
	Backend string
	Style   backend.Style
	Reps    int
	Status  Status
	Wall    time.Duration
	Result  []float64 // copy of the final vector; nil when skipped
	Err     error     // *MismatchError when Status is StatusMismatch
}

// Result collects the outcomes of one run.
type Result struct {
	Case     string
	N        int
	Reps     int
	Outcomes []Outcome
	Failures int
}

// Err joins every validation failure; nil when all variants agreed.
func (r *Result) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}

	return errors.Join(errs...)
}

// Driver executes variants over one problem.
type Driver struct {
	Case      string
	N         int
	Reps      int
	Policy    Policy
	Tolerance Tolerance
	Check     bool
	Timer     *Timer          // created on first Run when nil
	Logger    *zerolog.Logger // nil means no logging
	Metrics   *Metrics        // optional
}

// Run executes every variant in order.
//
// Implementation:
//   - Stage 1: apply the threshold policy to Expensive variants.
//   - Stage 2: build the kernel, reset it, time reps steps inside the variant's section.
//   - Stage 3: keep the first full run as reference and check later full runs against it.
//
// Errors:
//   - Kernel construction or Step failures abort the run and are returned
//     together with the outcomes collected so far. Mismatches do not abort;
//     see Result.Err.
func (d *Driver) Run(variants []backend.Variant) (*Result, error) {
	if d.Timer == nil {
		d.Timer = NewTimer(nil)
	}
	log := zerolog.Nop()
	if d.Logger != nil {
		log = *d.Logger
	}

	res := &Result{Case: d.Case, N: d.N, Reps: d.Reps}
	var ref []float64
	for _, v := range variants {
		out := Outcome{Variant: v.Name, Backend: v.Backend, Style: v.Style, Reps: d.Reps}
		reduced := false
		if v.Expensive {
			reps, ok := d.Policy.Reps(d.N, d.Reps)
			if !ok {
				out.Reps, out.Status = 0, StatusSkipped
				log.Info().Str("variant", v.Name).Int("n", d.N).Int("max_n", d.Policy.MaxN).Msg("skipping expensive variant")
				res.Outcomes = append(res.Outcomes, out)
				continue
			}
			out.Reps, reduced = reps, reps != d.Reps
		}

		wall, result, err := d.runVariant(v, out.Reps)
		if err != nil {
			return res, fmt.Errorf("Driver.Run(%s): %w", v.Name, err)
		}
		out.Wall, out.Result = wall, result

		switch {
		case reduced:
			out.Status = StatusReduced
		case ref == nil:
			ref, out.Status = result, StatusReference
		case !d.Check:
			out.Status = StatusUnchecked
		default:
			out.Status = StatusOK
			if cerr := CheckVector(v.Name, ref, result, d.Tolerance); cerr != nil {
				out.Status, out.Err = StatusMismatch, cerr
				res.Failures++
				log.Error().Err(cerr).Str("case", d.Case).Msg("validation failed")
				if d.Metrics != nil {
					d.Metrics.ValidationFailure(d.Case)
				}
			}
		}
		log.Debug().Str("variant", v.Name).Int("reps", out.Reps).Dur("wall", wall).Str("status", string(out.Status)).Msg("variant done")
		res.Outcomes = append(res.Outcomes, out)
	}

	if d.Metrics != nil {
		d.Metrics.ObserveSections(d.Case, d.Timer.Sections())
	}

	return res, nil
}

// runVariant times reps steps of a fresh kernel and returns the time spent
// in this call with a copy of the final vector.
func (d *Driver) runVariant(v backend.Variant, reps int) (time.Duration, []float64, error) {
	k, err := v.New()
	if err != nil {
		return 0, nil, err
	}
	k.Reset()

	before, _ := d.Timer.Section(v.Name)
	if err = d.Timer.Enter(v.Name); err != nil {
		return 0, nil, err
	}
	for r := 0; r < reps && err == nil; r++ {
		err = k.Step()
	}
	if lerr := d.Timer.Leave(); err == nil {
		err = lerr
	}
	if err != nil {
		return 0, nil, err
	}
	after, _ := d.Timer.Section(v.Name)

	return after.Wall - before.Wall, append([]float64(nil), k.Result()...), nil
}
