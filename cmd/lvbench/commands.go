// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvbench/backend"
	"github.com/katalvlaran/lvbench/bench"
	"github.com/katalvlaran/lvbench/config"
	"github.com/katalvlaran/lvbench/provider"
	"github.com/katalvlaran/lvbench/report"
)

// benchCase is one benchmark case exposed as a subcommand.
type benchCase struct {
	use    string
	short  string
	power  int
	sparse bool
	policy bench.Policy
}

var cases = []benchCase{
	{
		use:    "full <n> <reps>",
		short:  "Case 1: dense n×n matrix, one multiply per repetition",
		power:  1,
		policy: bench.DefaultDensePolicy,
	},
	{
		use:    "full-cubed <n> <reps>",
		short:  "Case 2: dense n×n matrix, A·A·A per repetition",
		power:  3,
		policy: bench.DefaultDensePolicy,
	},
	{
		use:    "sparse <refinement> <reps>",
		short:  "Case 3: Q1 Laplace matrix of a refined unit square, A·A·A per repetition",
		power:  3,
		sparse: true,
		policy: bench.DefaultSparsePolicy,
	},
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	stderr  io.Writer
	log     zerolog.Logger
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stderr: stderr, log: newLogger(stderr, zerolog.InfoLevel)}

	root := &cobra.Command{
		Use:           "lvbench",
		Short:         "Benchmark repeated matrix-vector products across linear-algebra backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(a.stderr, cfg.Level())

			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file")
	config.RegisterFlags(root.PersistentFlags())

	for _, bc := range cases {
		root.AddCommand(a.caseCmd(bc))
	}
	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	return root
}

func (a *app) caseCmd(bc benchCase) *cobra.Command {
	return &cobra.Command{
		Use:   bc.use,
		Short: bc.short,
		Args: func(_ *cobra.Command, args []string) error {
			_, _, err := config.ParseArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCase(cmd, bc, args)
		},
	}
}

// errValidation marks a completed run with mismatching variants.
var errValidation = errors.New("validation failed")

func (a *app) runCase(cmd *cobra.Command, bc benchCase, args []string) error {
	size, reps, err := config.ParseArgs(args)
	if err != nil {
		return err
	}
	var p *provider.Problem
	if bc.sparse {
		p, err = provider.Sparse(size)
	} else {
		p, err = provider.Dense(size,
			provider.WithPattern(provider.Pattern(a.cfg.Pattern)),
			provider.WithSeed(a.cfg.Seed))
	}
	if err != nil {
		return err
	}
	backends, err := backend.All(p)
	if err != nil {
		return err
	}

	caseName := cmd.Name()
	a.log.Info().Str("case", caseName).Str("label", p.Label).Int("n", p.N).Int("nnz", p.NNZ()).Int("reps", reps).Msg("starting")

	d := &bench.Driver{
		Case:      caseName,
		N:         p.N,
		Reps:      reps,
		Policy:    a.cfg.Policy(bc.policy),
		Tolerance: a.cfg.Tolerance(),
		Check:     !a.cfg.NoCheck,
		Timer:     bench.NewTimer(nil),
		Logger:    &a.log,
	}
	if a.cfg.MetricsFile != "" {
		d.Metrics = bench.NewMetrics()
	}

	res, err := d.Run(backend.Variants(backends, bc.power))
	if err != nil {
		return err
	}

	r := report.New(p, res, d.Timer, a.cfg.Dump)
	if a.cfg.Format == config.FormatJSON {
		err = r.WriteJSON(cmd.OutOrStdout())
	} else {
		err = r.WriteText(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}
	if d.Metrics != nil {
		if err = d.Metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			return err
		}
		a.log.Debug().Str("path", a.cfg.MetricsFile).Msg("metrics written")
	}

	if res.Failures > 0 {
		return fmt.Errorf("%w: %d variant(s): %w", errValidation, res.Failures, res.Err())
	}

	return nil
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		log := newLogger(stderr, zerolog.InfoLevel)
		log.Error().Err(err).Msg("lvbench failed")
		return 1
	}

	return 0
}
