// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ajroetker/hwyverify/hwy"
	"github.com/ajroetker/hwyverify/hwy/results"
	"github.com/ajroetker/hwyverify/hwy/ulp"
	"github.com/ajroetker/hwyverify/hwy/verify"
	"github.com/ajroetker/hwyverify/hwy/verify/selfcheck"
)

// errChecksFailed is returned when the run completed with failed checks.
var errChecksFailed = errors.New("checks failed")

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "hwyverify",
		Short:         "Compare kernel results across SIMD targets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with HWYVERIFY_* settings")

	runCmd := newRunCmd(&envFile, stdout, stderr)
	root.RunE = runCmd.RunE
	root.Flags().AddFlagSet(runCmd.Flags())
	root.AddCommand(runCmd, newTargetsCmd(stdout), newULPCmd(stdout))
	return root
}

func newRunCmd(envFile *string, stdout, stderr io.Writer) *cobra.Command {
	var flags Config
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the self-check suite and compare every target with the baseline",
		Args:  cobra.NoArgs,
	}
	f := cmd.Flags()
	f.StringVar(&flags.Baseline, "baseline", "scalar", "target the others are compared against")
	f.StringSliceVar(&flags.Targets, "targets", nil, "comma-separated targets (default: all available)")
	f.StringVar(&flags.Cases, "cases", "", "glob selecting cases by name")
	f.StringVar(&flags.Tolerances, "tolerances", "", "YAML file with per-case starting tolerances")
	f.IntVar(&flags.Workers, "workers", 0, "targets recorded at once (default: GOMAXPROCS)")
	f.StringVar(&flags.MetricsOut, "metrics-out", "", "write Prometheus counters to this textfile")
	f.StringVar(&flags.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.BoolVar(&flags.LogJSON, "json", false, "log as JSON instead of console text")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(*envFile)
		if err != nil {
			return err
		}
		overrideChanged(cmd, &cfg, flags)
		return runSuite(cfg, stdout, stderr)
	}
	return cmd
}

// overrideChanged copies every flag the user set onto cfg.
func overrideChanged(cmd *cobra.Command, cfg *Config, flags Config) {
	set := cmd.Flags().Changed
	if set("baseline") {
		cfg.Baseline = flags.Baseline
	}
	if set("targets") {
		cfg.Targets = flags.Targets
	}
	if set("cases") {
		cfg.Cases = flags.Cases
	}
	if set("tolerances") {
		cfg.Tolerances = flags.Tolerances
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("metrics-out") {
		cfg.MetricsOut = flags.MetricsOut
	}
	if set("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if set("json") {
		cfg.LogJSON = flags.LogJSON
	}
}

func runSuite(cfg Config, stdout, stderr io.Writer) error {
	log, err := cfg.logger(stderr)
	if err != nil {
		return err
	}
	base, targets, err := cfg.levels()
	if err != nil {
		return err
	}

	var tol verify.Tolerances
	if cfg.Tolerances != "" {
		if tol, err = verify.LoadTolerances(cfg.Tolerances); err != nil {
			return err
		}
	}

	var reg *prometheus.Registry
	var metrics *results.Metrics
	if cfg.MetricsOut != "" {
		reg = prometheus.NewRegistry()
		metrics = results.NewMetrics(reg)
	}

	suite := verify.NewSuite()
	selfcheck.Register(suite)
	sum, err := verify.NewRunner(suite, verify.Config{
		Baseline:   base,
		Targets:    targets,
		Filter:     cfg.Cases,
		Tolerances: tol,
		Workers:    cfg.Workers,
		Logger:     &log,
		Metrics:    metrics,
	}).Run(stdout)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d cases, %d checks passed, %d failed\n", sum.Cases, sum.Passed, sum.Failed)

	// A requested metrics file that cannot be written fails the run even
	// when every check passed.
	if reg != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsOut, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	if !sum.OK() {
		return fmt.Errorf("%w: %v", errChecksFailed, sum.FailedCases)
	}
	return nil
}

func newTargetsCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the SIMD targets this CPU can run",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, l := range hwy.AvailableLevels() {
				mark := ""
				if l == hwy.CurrentLevel() {
					mark = " (current)"
				}
				fmt.Fprintf(stdout, "%-8s %3d bytes%s\n", l, hwy.LevelWidth(l), mark)
			}
			return nil
		},
	}
}

func newULPCmd(stdout io.Writer) *cobra.Command {
	var single bool
	cmd := &cobra.Command{
		Use:   "ulp A B",
		Short: "Print how many representable steps separate two values",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			format, bitSize := ulp.Float64, 64
			if single {
				format, bitSize = ulp.Float32, 32
			}
			var bits [2]uint64
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, bitSize)
				if err != nil {
					return fmt.Errorf("parsing %q: %w", arg, err)
				}
				if single {
					bits[i] = uint64(math.Float32bits(float32(v)))
				} else {
					bits[i] = math.Float64bits(v)
				}
			}
			d, ok := format.Distance(bits[0], bits[1])
			if !ok {
				return fmt.Errorf("no finite distance between %s and %s", args[0], args[1])
			}
			width := format.Size() * 2
			fmt.Fprintf(stdout, "%0*x -> %0*x: %d ULP (%s)\n", width, bits[0], width, bits[1], d, format.Name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&single, "float32", false, "compare as float32 instead of float64")
	return cmd
}
